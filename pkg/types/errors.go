package types

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindValidation
	KindTransport
	KindNotFound
	KindNotAuthorized
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindTransport:
		return "transport"
	case KindNotFound:
		return "not_found"
	case KindNotAuthorized:
		return "not_authorized"
	}
	return "unknown"
}

// HttpStatus is the status the API answers with for this kind.
func (k ErrorKind) HttpStatus() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindNotAuthorized:
		return http.StatusForbidden
	case KindTransport:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

var (
	ErrValidation    = &Error{Kind: KindValidation, Msg: "invalid request"}
	ErrTransport     = &Error{Kind: KindTransport, Msg: "error loading"}
	ErrNotFound      = &Error{Kind: KindNotFound, Msg: "not found"}
	ErrNotAuthorized = &Error{Kind: KindNotAuthorized, Msg: "not authorized"}
)

// Error carries the kind used to pick a view state, and the upstream status
// code when there was one.
type Error struct {
	Kind  ErrorKind
	Code  int
	Msg   string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Msg
	}
	return fmt.Sprintf("%s: %v", e.Msg, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrNotFound)
// works for every not-found error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func NewValidationError(format string, args ...any) error {
	return &Error{Kind: KindValidation, Code: http.StatusBadRequest, Msg: fmt.Sprintf(format, args...)}
}

func NewTransportError(msg string, cause error) error {
	return &Error{Kind: KindTransport, Msg: msg, Cause: cause}
}

// FromStatus maps an upstream HTTP status to an error, nil for 2xx.
func FromStatus(code int, msg string) error {
	if code >= 200 && code < 300 {
		return nil
	}
	kind := KindTransport
	switch code {
	case http.StatusBadRequest:
		kind = KindValidation
	case http.StatusUnauthorized, http.StatusForbidden:
		kind = KindNotAuthorized
	case http.StatusNotFound:
		kind = KindNotFound
	}
	if msg == "" {
		msg = http.StatusText(code)
	}
	return &Error{Kind: kind, Code: code, Msg: msg}
}

func KindOf(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
