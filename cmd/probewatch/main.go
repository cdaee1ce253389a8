package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"printer_probe/internal/models"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gorilla/websocket"
)

// probewatch follows the daemon's state stream and renders a live panel:
// probe/bed/hotend readouts, the display status line, and a probe
// temperature sparkline.

const historyLen = 60

func main() {
	url := flag.String("url", "ws://127.0.0.1:8080/ws", "daemon websocket URL")
	flag.Parse()

	states := make(chan models.ProbeState, 8)
	errs := make(chan error, 1)
	go readStream(*url, states, errs)

	p := tea.NewProgram(watchModel{}, tea.WithAltScreen())
	go func() {
		for {
			select {
			case st := <-states:
				p.Send(stateMsg(st))
			case err := <-errs:
				p.Send(errMsg{err})
				return
			}
		}
	}()

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// readStream keeps the websocket open and forwards state envelopes.
func readStream(url string, states chan<- models.ProbeState, errs chan<- error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		errs <- fmt.Errorf("dial %s: %w", url, err)
		return
	}
	defer func() { _ = conn.Close() }()

	type envelope struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	for {
		var env envelope
		if err := conn.ReadJSON(&env); err != nil {
			errs <- err
			return
		}
		if env.Type != "state" {
			continue
		}
		var st models.ProbeState
		if err := json.Unmarshal(env.Data, &st); err != nil {
			continue
		}
		states <- st
	}
}

// ── Model ────────────────────────────────────────────────────────────

type stateMsg models.ProbeState

type errMsg struct{ err error }

type watchModel struct {
	state   models.ProbeState
	history []float64 // recent probe readings
	gotOne  bool
	err     error
	width   int
}

func (m watchModel) Init() tea.Cmd { return nil }

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case stateMsg:
		m.state = models.ProbeState(msg)
		m.gotOne = true
		m.history = append(m.history, m.state.ProbeC)
		if len(m.history) > historyLen {
			m.history = m.history[len(m.history)-historyLen:]
		}
	case errMsg:
		m.err = msg.err
	}
	return m, nil
}

// ── View ─────────────────────────────────────────────────────────────

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Width(10)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Italic(true)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

func (m watchModel) View() string {
	var b []string
	b = append(b, titleStyle.Render("probewatch"), "")

	if m.err != nil {
		b = append(b, errStyle.Render("stream error: "+m.err.Error()), "")
		b = append(b, helpStyle.Render("q to quit"))
		return lipgloss.JoinVertical(lipgloss.Left, b...)
	}
	if !m.gotOne {
		b = append(b, "waiting for first state update…", "")
		b = append(b, helpStyle.Render("q to quit"))
		return lipgloss.JoinVertical(lipgloss.Left, b...)
	}

	st := m.state
	b = append(b,
		readout("Probe", st.ProbeC, float64(st.ProbeTargetC), st.Waiting),
		readout("Bed", st.BedC, st.BedTargetC, st.BedTargetC > 0),
		readout("Hotend", st.HotendC, st.HotendTargetC, st.HotendTargetC > 0),
		"",
		labelStyle.Render("Motors")+valueStyle.Render(onOff(st.MotorsOn)),
		labelStyle.Render("Status")+statusStyle.Render(st.StatusLine),
		"",
		sparkline(m.history, historyLen),
		helpStyle.Render(st.UpdatedAt.Local().Format(time.Kitchen)+"  ·  q to quit"),
	)
	return lipgloss.JoinVertical(lipgloss.Left, b...)
}

// readout renders one "Label  cur °C / target" row.
func readout(label string, cur, target float64, active bool) string {
	style := valueStyle
	if active {
		style = activeStyle
	}
	val := fmt.Sprintf("%6.1f °C", cur)
	if target > 0 {
		val += fmt.Sprintf("  / %.0f", target)
	}
	return labelStyle.Render(label) + style.Render(val)
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

// sparkline renders recent probe temperatures as unicode blocks scaled to
// the observed range.
func sparkline(values []float64, width int) string {
	if len(values) == 0 {
		return ""
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	span := hi - lo
	out := make([]rune, 0, width)
	for _, v := range values {
		idx := 0
		if span > 0 {
			idx = int((v - lo) / span * float64(len(sparkBlocks)-1))
		}
		out = append(out, sparkBlocks[idx])
	}
	return valueStyle.Render(string(out)) + helpStyle.Render(fmt.Sprintf("  %.1f–%.1f °C", lo, hi))
}
