/*
NAME
  logging.go

DESCRIPTION
  logging.go wires a zap.Logger, rotated through lumberjack.Logger, into a
  capture.Logger implementation, the way cmd/speaker/main.go wires
  ausocean/utils/logging through a lumberjack file sink — except here the
  sink feeds zapcore instead of the teacher's own logging package.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package main

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"

	"github.com/pablohealth/audiocapturekit/capture"
)

const (
	logMaxSizeMB  = 50
	logMaxBackups = 5
	logMaxAgeDays = 28
)

// zapLogger adapts a *zap.SugaredLogger to capture.Logger. level is shared
// with the underlying cores so SetLevel takes effect on already-running
// sessions, not just at construction.
type zapLogger struct {
	sugar *zap.SugaredLogger
	level zap.AtomicLevel
}

// newZapLogger builds a capture.Logger that writes structured logs to
// stdout and, if logFile is non-empty, to a lumberjack-rotated file too.
func newZapLogger(logFile string) *zapLogger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(os.Stdout), level)

	if logFile != "" {
		rotated := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    logMaxSizeMB,
			MaxBackups: logMaxBackups,
			MaxAge:     logMaxAgeDays,
		}
		fileCore := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(rotated), level)
		core = zapcore.NewTee(core, fileCore)
	}

	logger := zap.New(core)
	return &zapLogger{sugar: logger.Sugar(), level: level}
}

// SetLevel maps a capture log level onto the underlying zap atomic level.
func (z *zapLogger) SetLevel(level int8) {
	switch level {
	case capture.DebugLevel:
		z.level.SetLevel(zapcore.DebugLevel)
	case capture.InfoLevel:
		z.level.SetLevel(zapcore.InfoLevel)
	case capture.WarningLevel:
		z.level.SetLevel(zapcore.WarnLevel)
	case capture.ErrorLevel, capture.FatalLevel:
		z.level.SetLevel(zapcore.ErrorLevel)
	}
}

// Log writes message with params as structured key/value fields.
func (z *zapLogger) Log(level int8, message string, params ...interface{}) {
	switch level {
	case capture.DebugLevel:
		z.sugar.Debugw(message, params...)
	case capture.InfoLevel:
		z.sugar.Infow(message, params...)
	case capture.WarningLevel:
		z.sugar.Warnw(message, params...)
	case capture.ErrorLevel:
		z.sugar.Errorw(message, params...)
	case capture.FatalLevel:
		z.sugar.Fatalw(message, params...)
	default:
		z.sugar.Infow(message, params...)
	}
}

// sync flushes any buffered log entries. Call before process exit.
func (z *zapLogger) sync() { _ = z.sugar.Sync() }
