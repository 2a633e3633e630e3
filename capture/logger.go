/*
NAME
  logger.go

DESCRIPTION
  logger.go defines the Logger interface used throughout this module,
  lifted directly from revid.Logger.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package capture

// Logger is implemented by anything session.Session and the providers/*
// packages can log to. cmd/capturectl wires a zap-backed implementation.
type Logger interface {
	SetLevel(int8)
	Log(level int8, message string, params ...interface{})
}

// Log levels, matching the scale revid.Logger's implementations use.
const (
	DebugLevel int8 = iota
	InfoLevel
	WarningLevel
	ErrorLevel
	FatalLevel
)

// NopLogger discards everything logged to it. Useful as a default when a
// caller does not supply one.
type NopLogger struct{}

func (NopLogger) SetLevel(int8)                               {}
func (NopLogger) Log(level int8, message string, params ...interface{}) {}
