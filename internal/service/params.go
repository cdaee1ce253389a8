package service

import "time"

// WaitParams mirrors the command parameters of the wait operation. HasTarget
// reflects whether the caller supplied a target at all; without one the
// whole operation is a no-op.
type WaitParams struct {
	HasTarget  bool
	TargetC    int  // device-native °C
	ForceCool  bool // C flag
	ForceWarm  bool // W flag, wins over C
	TimeoutSec int  // T flag; 0 = unbounded
	Tool       int  // hotend addressed for direction inference
}

// WaitOutcome is the terminal state of a wait.
type WaitOutcome string

const (
	OutcomeReached  WaitOutcome = "REACHED"
	OutcomeTimedOut WaitOutcome = "TIMED_OUT"
	OutcomeSkipped  WaitOutcome = "SKIPPED"
)

// WaitResult reports how a wait ended.
type WaitResult struct {
	Outcome    WaitOutcome   `json:"outcome"`
	Direction  string        `json:"direction,omitempty"` // "warm up" | "cool down"
	ProbeC     float64       `json:"probe_c,omitempty"`   // last reading
	TargetC    int           `json:"target_c,omitempty"`
	Elapsed    time.Duration `json:"-"`
	Iterations int           `json:"iterations,omitempty"`
}

// LogFilter supports history filtering by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "WAIT_START", "WAIT_REACHED", "WAIT_TIMEOUT", "MOTORS_OFF", "TELEMETRY"
}
