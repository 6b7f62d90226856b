package errors

import (
	"fmt"
)

// Sentinel errors for the capture-to-transcription pipeline. Callers match
// them with errors.Is after any number of Wrap calls.
var (
	// ErrDeviceUnavailable means the capture or playback device could not be
	// acquired. No state is mutated when this is returned.
	ErrDeviceUnavailable = New("audio device unavailable")

	// ErrPromotionFailed means the temp-to-permanent move of an asset failed.
	// The temporary file is left in place for diagnostics.
	ErrPromotionFailed = New("asset promotion failed")

	// ErrTranscriptionUnavailable covers authorization denial, unsupported
	// locale and recognition failure alike; the distinction only matters in
	// logs, the note simply stays transcript-less.
	ErrTranscriptionUnavailable = New("transcription unavailable")

	// ErrAssetNotFound means an expected permanent asset is missing on disk.
	ErrAssetNotFound = New("audio asset not found")

	// ErrNotFound means a metadata record is absent.
	ErrNotFound = New("note not found")

	// ErrPersistenceFailure means a metadata store write failed.
	ErrPersistenceFailure = New("metadata persistence failed")

	// ErrSessionConsumed means a recording session was used past its single
	// Idle -> Capturing -> Stopped lifetime.
	ErrSessionConsumed = New("recording session already consumed")
)

// Error is a message plus an optional cause, comparable by message.
type Error struct {
	message string
	cause   error
}

// New creates a new error.
func New(message string) *Error {
	return &Error{message: message}
}

// Newf creates a new formatted error.
func Newf(format string, args ...interface{}) *Error {
	return &Error{message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with additional context. Returns nil for a nil cause.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{message: message, cause: err}
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{message: fmt.Sprintf(format, args...), cause: err}
}

// WrapSentinel attaches cause under one of the sentinel errors above, so that
// errors.Is(result, sentinel) holds while the cause stays visible in the text.
func WrapSentinel(sentinel *Error, cause error) error {
	return &Error{message: sentinel.message, cause: cause}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches two Errors by message, which makes wrapped sentinels comparable.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.message == t.message
}
