/*
NAME
  errors.go

DESCRIPTION
  errors.go defines the ErrorKind taxonomy used throughout a capture session,
  following the same tagged-error-with-typed-collection idiom as
  device.MultiError.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package capture

import "fmt"

// ErrorKind classifies the kind of failure a capture operation hit.
type ErrorKind int

const (
	// ErrPermissionDenied means the OS denied access to an audio device.
	ErrPermissionDenied ErrorKind = iota
	// ErrDeviceNotAvailable means the requested device could not be opened.
	ErrDeviceNotAvailable
	// ErrConfigurationFailed means Configure (or a state transition) was
	// called with invalid parameters or from an illegal state.
	ErrConfigurationFailed
	// ErrEncodingFailed means PCM conversion or mixing failed.
	ErrEncodingFailed
	// ErrEncryptionFailed means a chunk could not be sealed.
	ErrEncryptionFailed
	// ErrStorageError means a file-system operation failed.
	ErrStorageError
	// ErrTimeout means an operation did not complete in time.
	ErrTimeout
	// ErrUnknown is a catch-all for anything not otherwise classified.
	ErrUnknown
)

// Error is the error type returned by every capture operation. Message is
// empty for kinds that carry no detail (PermissionDenied, DeviceNotAvailable,
// Timeout).
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrPermissionDenied:
		return "permission denied"
	case ErrDeviceNotAvailable:
		return "device not available"
	case ErrConfigurationFailed:
		return fmt.Sprintf("configuration failed: %s", e.Message)
	case ErrEncodingFailed:
		return fmt.Sprintf("encoding failed: %s", e.Message)
	case ErrEncryptionFailed:
		return fmt.Sprintf("encryption failed: %s", e.Message)
	case ErrStorageError:
		return fmt.Sprintf("storage error: %s", e.Message)
	case ErrTimeout:
		return "timeout"
	default:
		return fmt.Sprintf("unknown error: %s", e.Message)
	}
}

// NewPermissionDenied returns an ErrPermissionDenied Error.
func NewPermissionDenied() *Error { return &Error{Kind: ErrPermissionDenied} }

// NewDeviceNotAvailable returns an ErrDeviceNotAvailable Error.
func NewDeviceNotAvailable() *Error { return &Error{Kind: ErrDeviceNotAvailable} }

// NewConfigurationFailed returns an ErrConfigurationFailed Error carrying msg.
func NewConfigurationFailed(msg string) *Error {
	return &Error{Kind: ErrConfigurationFailed, Message: msg}
}

// NewEncodingFailed returns an ErrEncodingFailed Error carrying msg.
func NewEncodingFailed(msg string) *Error {
	return &Error{Kind: ErrEncodingFailed, Message: msg}
}

// NewEncryptionFailed returns an ErrEncryptionFailed Error carrying msg.
func NewEncryptionFailed(msg string) *Error {
	return &Error{Kind: ErrEncryptionFailed, Message: msg}
}

// NewStorageError returns an ErrStorageError Error carrying msg.
func NewStorageError(msg string) *Error {
	return &Error{Kind: ErrStorageError, Message: msg}
}

// NewTimeout returns an ErrTimeout Error.
func NewTimeout() *Error { return &Error{Kind: ErrTimeout} }

// NewUnknown returns an ErrUnknown Error carrying msg.
func NewUnknown(msg string) *Error { return &Error{Kind: ErrUnknown, Message: msg} }

// MultiError collects several errors encountered while validating a Config,
// following the same pattern as device.MultiError in the teacher codebase.
type MultiError []error

func (me MultiError) Error() string {
	if len(me) == 0 {
		panic("capture: invalid use of MultiError")
	}
	return fmt.Sprintf("%v", []error(me))
}
