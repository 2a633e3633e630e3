/*
NAME
  state.go

DESCRIPTION
  state.go implements the capture session state machine as a tagged struct,
  since Go has no sum types. Ported from original_source's CaptureState enum.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package capture

// Kind identifies which variant of State is populated.
type Kind int

const (
	StateIdle Kind = iota
	StateConfiguring
	StateReady
	StateCapturing
	StatePaused
	StateStopping
	StateCompleted
	StateFailed
)

func (k Kind) String() string {
	switch k {
	case StateIdle:
		return "idle"
	case StateConfiguring:
		return "configuring"
	case StateReady:
		return "ready"
	case StateCapturing:
		return "capturing"
	case StatePaused:
		return "paused"
	case StateStopping:
		return "stopping"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is the tagged union of a capture session's lifecycle. Only the
// field(s) relevant to Kind are populated:
//
//	Capturing / Paused -> DurationSecs
//	Completed          -> Result
//	Failed             -> Err
type State struct {
	Kind         Kind
	DurationSecs float64
	Result       RecordingResult
	Err          *Error
}

// Idle returns the initial session state.
func Idle() State { return State{Kind: StateIdle} }

// Configuring returns the Configuring state.
func Configuring() State { return State{Kind: StateConfiguring} }

// Ready returns the Ready state.
func Ready() State { return State{Kind: StateReady} }

// Capturing returns the Capturing state with the given elapsed duration.
func Capturing(durationSecs float64) State {
	return State{Kind: StateCapturing, DurationSecs: durationSecs}
}

// Paused returns the Paused state with the given elapsed duration.
func Paused(durationSecs float64) State {
	return State{Kind: StatePaused, DurationSecs: durationSecs}
}

// Stopping returns the Stopping state.
func Stopping() State { return State{Kind: StateStopping} }

// Completed returns the Completed state carrying the final result.
func Completed(result RecordingResult) State {
	return State{Kind: StateCompleted, Result: result}
}

// Failed returns the Failed state carrying the triggering error.
func Failed(err *Error) State {
	return State{Kind: StateFailed, Err: err}
}

// IsIdle reports whether s is the Idle state.
func (s State) IsIdle() bool { return s.Kind == StateIdle }

// IsCapturing reports whether s is the Capturing state.
func (s State) IsCapturing() bool { return s.Kind == StateCapturing }

// IsPaused reports whether s is the Paused state.
func (s State) IsPaused() bool { return s.Kind == StatePaused }

// IsTerminal reports whether s is Completed or Failed.
func (s State) IsTerminal() bool { return s.Kind == StateCompleted || s.Kind == StateFailed }

// Duration returns the session's current duration and whether s is a state
// that tracks one (Capturing, Paused, or Completed).
func (s State) Duration() (float64, bool) {
	switch s.Kind {
	case StateCapturing, StatePaused:
		return s.DurationSecs, true
	case StateCompleted:
		return s.Result.DurationSecs, true
	default:
		return 0, false
	}
}
