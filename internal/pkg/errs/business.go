package errs

import (
	"errors"
	"fmt"
)

// Kind is the coarse category of a business failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindForbidden
	KindConflict
	KindBadRequest
)

var (
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrConflict   = errors.New("conflict")
	ErrBadRequest = errors.New("bad request")
)

var kindNames = map[Kind]string{
	KindUnknown:    "unknown",
	KindNotFound:   "not_found",
	KindForbidden:  "forbidden",
	KindConflict:   "conflict",
	KindBadRequest: "bad_request",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[KindUnknown]
}

func (k Kind) sentinel() error {
	switch k {
	case KindNotFound:
		return ErrNotFound
	case KindForbidden:
		return ErrForbidden
	case KindConflict:
		return ErrConflict
	case KindBadRequest:
		return ErrBadRequest
	default:
		return nil
	}
}

// BusinessError carries a stable machine-readable Code next to a human message.
// Two business errors with the same code match under errors.Is, so package level
// values can be compared even after WithCause copies them.
type BusinessError struct {
	Kind    Kind
	Code    string
	Message string
	Cause   error
}

func NewNotFound(code, message string) *BusinessError {
	return &BusinessError{Kind: KindNotFound, Code: code, Message: message}
}

func NewForbidden(code, message string) *BusinessError {
	return &BusinessError{Kind: KindForbidden, Code: code, Message: message}
}

func NewConflict(code, message string) *BusinessError {
	return &BusinessError{Kind: KindConflict, Code: code, Message: message}
}

func NewBadRequest(code, message string) *BusinessError {
	return &BusinessError{Kind: KindBadRequest, Code: code, Message: message}
}

func (e *BusinessError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() []error {
	wrapped := make([]error, 0, 2)
	if s := e.Kind.sentinel(); s != nil {
		wrapped = append(wrapped, s)
	}
	if e.Cause != nil {
		wrapped = append(wrapped, e.Cause)
	}
	return wrapped
}

func (e *BusinessError) Is(target error) bool {
	var other *BusinessError
	if !errors.As(target, &other) {
		return false
	}
	return other.Code == e.Code
}

// WithCause returns a copy of e wrapping cause.
func (e *BusinessError) WithCause(cause error) *BusinessError {
	cp := *e
	cp.Cause = cause
	return &cp
}

// WithMessage returns a copy of e with a more specific message.
func (e *BusinessError) WithMessage(format string, args ...any) *BusinessError {
	cp := *e
	cp.Message = fmt.Sprintf(format, args...)
	return &cp
}

// CodeOf returns the code of the outermost BusinessError in the chain, or "".
func CodeOf(err error) string {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

// KindOf classifies err. Value errors count as bad requests and missing
// objects as not found.
func KindOf(err error) Kind {
	var be *BusinessError
	switch {
	case err == nil:
		return KindUnknown
	case errors.As(err, &be):
		return be.Kind
	case errors.Is(err, ErrObjectNotFound):
		return KindNotFound
	case errors.Is(err, ErrValueIsRequired),
		errors.Is(err, ErrValueIsInvalid),
		errors.Is(err, ErrValueIsOutOfRange):
		return KindBadRequest
	default:
		return KindUnknown
	}
}
