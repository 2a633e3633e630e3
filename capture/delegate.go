/*
NAME
  delegate.go

DESCRIPTION
  delegate.go defines the Delegate contract used by session.Session to
  notify a caller of state changes, level updates, errors, and completion.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package capture

// Delegate receives capture session notifications. State changes and
// completion are reported synchronously on the goroutine that called
// Configure, StartCapture, PauseCapture, ResumeCapture, or StopCapture;
// level updates, mix-loop write errors, and a max-duration auto-stop are
// reported from the session's internal worker goroutines. Implementations
// that touch a UI must marshal to it themselves.
type Delegate interface {
	// OnStateChanged is called whenever the session transitions state.
	OnStateChanged(state State)

	// OnLevelsUpdated is called periodically with updated audio levels.
	OnLevelsUpdated(levels Levels)

	// OnError is called when an error occurs during capture.
	OnError(err *Error)

	// OnCaptureFinished is called once capture completes and the file is
	// finalized.
	OnCaptureFinished(result RecordingResult)
}
