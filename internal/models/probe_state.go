package models

import "time"

// ProbeState is the current snapshot of the probe and the heaters that feed
// direction inference.
type ProbeState struct {
	ID            int       `json:"id"`
	ProbeC        float64   `json:"probe_c"`                  // °C
	ProbeTargetC  int       `json:"probe_target_c,omitempty"` // °C, 0 = no wait active
	BedC          float64   `json:"bed_c"`                    // °C
	BedTargetC    float64   `json:"bed_target_c,omitempty"`   // °C
	HotendC       float64   `json:"hotend_c"`                 // °C
	HotendTargetC float64   `json:"hotend_target_c,omitempty"`
	MotorsOn      bool      `json:"motors_on"`
	Waiting       bool      `json:"waiting"`
	StatusLine    string    `json:"status_line,omitempty"` // display panel content
	UpdatedAt     time.Time `json:"updated_at"`
}
