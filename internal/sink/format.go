package sink

import (
	"fmt"

	pongo2 "github.com/flosch/pongo2/v5"
)

// DefaultStatusTemplate renders the conventional probe progress line,
// e.g. "P:41/50 heating".
const DefaultStatusTemplate = "P:{{ current }}/{{ target }} {{ verb }}"

// StatusFormatter renders the display progress line from a template, so
// deployments can reword the panel text without a rebuild.
type StatusFormatter struct {
	tpl *pongo2.Template
}

// NewStatusFormatter compiles the template; an empty string selects the
// default. The template sees integer "current", integer "target" and the
// direction verb ("heating" or "cooling").
func NewStatusFormatter(template string) (*StatusFormatter, error) {
	if template == "" {
		template = DefaultStatusTemplate
	}
	tpl, err := pongo2.FromString(template)
	if err != nil {
		return nil, fmt.Errorf("compile status template %q: %w", template, err)
	}
	return &StatusFormatter{tpl: tpl}, nil
}

// Format renders the progress line. The current reading is truncated to an
// integer, matching the panel's fixed-width layout.
func (f *StatusFormatter) Format(currentC float64, targetC int, verb string) string {
	out, err := f.tpl.Execute(pongo2.Context{
		"current": int(currentC),
		"target":  targetC,
		"verb":    verb,
	})
	if err != nil {
		// Template was validated at construction; a render failure here can
		// only come from exotic filters, fall back to the plain form.
		return fmt.Sprintf("P:%d/%d %s", int(currentC), targetC, verb)
	}
	return out
}
