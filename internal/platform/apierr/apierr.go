package apierr

import (
	"fmt"
	"net/http"
)

// Wire codes. The public contract carries them verbatim in the "error" field.
const (
	CodeInvalidJSON      = "invalid json"
	CodeQueryRequired    = "query required"
	CodeMethodNotAllowed = "method not allowed"
	CodeUpstream         = "upstream"
	CodeModelCallFailed  = "model call failed"
	CodeInternal         = "internal server error"
)

type Error struct {
	Status int
	Code   string
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func Validation(code string, err error) *Error {
	return New(http.StatusBadRequest, code, err)
}

func MethodNotAllowed() *Error {
	return New(http.StatusMethodNotAllowed, CodeMethodNotAllowed, nil)
}

// Upstream wraps a failed completion call. detail is passed through to the
// caller as best-effort diagnostics.
func Upstream(code string, detail string, err error) *Error {
	return &Error{Status: http.StatusBadGateway, Code: code, Detail: detail, Err: err}
}
