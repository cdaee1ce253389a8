package models

import "time"

// ProbeEvent is a single log entry.
type ProbeEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // WAIT_START | WAIT_REACHED | WAIT_TIMEOUT | MOTORS_OFF | TELEMETRY
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
