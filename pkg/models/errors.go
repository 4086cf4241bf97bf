package models

import (
	"errors"
	"fmt"
)

// ErrorKind tags an error with the failure class it belongs to, so callers
// can decide between failing the whole batch and recording a per-item error
// without string matching.
type ErrorKind string

const (
	// ErrorKindResolution means the channel or entity could not be resolved.
	// Fatal to the whole fetch.
	ErrorKindResolution ErrorKind = "resolution"
	// ErrorKindAuthorization means the session is not authenticated. Fatal,
	// and user-actionable: re-run the authenticate command.
	ErrorKindAuthorization ErrorKind = "authorization"
	// ErrorKindTransfer means a single item's media body failed to download
	// or failed size verification. Local to that item.
	ErrorKindTransfer ErrorKind = "transfer"
	// ErrorKindTranscode means the external conversion failed. Always
	// downgraded to keeping the original file.
	ErrorKindTranscode ErrorKind = "transcode"
	// ErrorKindFilesystem means a rename or overwrite failed. Downgraded to
	// keeping the pre-rename name.
	ErrorKindFilesystem ErrorKind = "filesystem"
)

// ClassifiedError wraps an error with its kind
type ClassifiedError struct {
	Kind ErrorKind
	Err  error
}

func (e *ClassifiedError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Err)
}

func (e *ClassifiedError) Unwrap() error {
	return e.Err
}

// NewResolutionError wraps err as a resolution failure
func NewResolutionError(err error) error {
	return &ClassifiedError{Kind: ErrorKindResolution, Err: err}
}

// NewAuthorizationError wraps err as an authorization failure
func NewAuthorizationError(err error) error {
	return &ClassifiedError{Kind: ErrorKindAuthorization, Err: err}
}

// NewTransferError wraps err as a per-item transfer failure
func NewTransferError(err error) error {
	return &ClassifiedError{Kind: ErrorKindTransfer, Err: err}
}

// NewTranscodeError wraps err as a best-effort transcode failure
func NewTranscodeError(err error) error {
	return &ClassifiedError{Kind: ErrorKindTranscode, Err: err}
}

// NewFilesystemError wraps err as a rename/overwrite failure
func NewFilesystemError(err error) error {
	return &ClassifiedError{Kind: ErrorKindFilesystem, Err: err}
}

// KindOf returns the error's kind, or ErrorKindTransfer for untagged errors
// so that unknown item-level failures stay local to their item.
func KindOf(err error) ErrorKind {
	var classified *ClassifiedError
	if errors.As(err, &classified) {
		return classified.Kind
	}
	return ErrorKindTransfer
}

// IsFatal reports whether the error should fail the whole batch call rather
// than a single item.
func IsFatal(err error) bool {
	kind := KindOf(err)
	return kind == ErrorKindResolution || kind == ErrorKindAuthorization
}
