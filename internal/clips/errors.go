package clips

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so the HTTP layer can map it to a status code
// and callers know whether a retry can ever help.
type Kind int

const (
	// KindNotFound means a clip, file, or share token does not exist.
	KindNotFound Kind = iota + 1
	// KindInvalidArgument means the request itself is unacceptable
	// (bad trim window, too few merge inputs, oversized upload).
	KindInvalidArgument
	// KindIOFailure means a storage read or write failed.
	KindIOFailure
	// KindDelegateFailure means the external transcoder reported an error.
	KindDelegateFailure
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalidArgument:
		return "invalid_argument"
	case KindIOFailure:
		return "io_failure"
	case KindDelegateFailure:
		return "delegate_failure"
	default:
		return "unknown"
	}
}

// Error is the typed failure returned by every operation in this package.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// NotFoundf builds a NotFound failure.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// InvalidArgumentf builds an InvalidArgument failure.
func InvalidArgumentf(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// IOFailuref wraps a storage fault.
func IOFailuref(err error, format string, args ...any) *Error {
	return &Error{Kind: KindIOFailure, Message: fmt.Sprintf(format, args...), Err: err}
}

// DelegateFailure carries the external transcoder's message unmodified.
func DelegateFailure(message string) *Error {
	return &Error{Kind: KindDelegateFailure, Message: message}
}

// KindOf returns the Kind of err, or 0 if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
