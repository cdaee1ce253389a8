package sink

import "sync"

// DefaultStatusLine is what the panel shows when no operation owns it.
const DefaultStatusLine = "ready"

// Display receives short status lines meant for an operator-facing surface
// (LCD panel, serial console). Implementations must tolerate being called
// once per second for the duration of a wait.
type Display interface {
	// ShowStatus replaces the current status line.
	ShowStatus(line string)
	// Reset restores the default status content.
	Reset()
}

// StatusPanel is the in-process stand-in for an LCD status row. Monitoring
// reads its current line into state snapshots.
type StatusPanel struct {
	mu   sync.Mutex
	line string
}

// NewStatusPanel returns a panel showing the default line.
func NewStatusPanel() *StatusPanel {
	return &StatusPanel{line: DefaultStatusLine}
}

func (p *StatusPanel) ShowStatus(line string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.line = line
}

func (p *StatusPanel) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.line = DefaultStatusLine
}

// Line returns the current status content.
func (p *StatusPanel) Line() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.line
}

// Nop discards all status output. Used when the build configuration has no
// display surface at all.
type Nop struct{}

func (Nop) ShowStatus(string) {}
func (Nop) Reset()            {}

// multi fans a status line out to several displays.
type multi struct {
	displays []Display
}

// Multi combines displays into one. With no arguments it behaves like Nop.
func Multi(displays ...Display) Display {
	return multi{displays: displays}
}

func (m multi) ShowStatus(line string) {
	for _, d := range m.displays {
		d.ShowStatus(line)
	}
}

func (m multi) Reset() {
	for _, d := range m.displays {
		d.Reset()
	}
}
