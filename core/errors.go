package core

import (
	"errors"
	"fmt"
)

// General error codes
const (
	NOERROR       int = 0
	EMISSING      int = 122 // resource does not exist
	EINVALID      int = 123 // validation failed
	EFONTFORMAT   int = 124 // font file cannot be interpreted
	EGLYPHMISSING int = 125 // code-point has no glyph in font
	ERASTER       int = 126 // glyph could not be rasterized
	ESURFACE      int = 127 // output surface failed
	EINTERNAL     int = 128 // internal error
)

// errorTexts maps error codes to display strings. It is built once and never
// changed afterwards.
var errorTexts = map[int]string{
	NOERROR:       "OK",
	EMISSING:      "not found",
	EINVALID:      "invalid",
	EFONTFORMAT:   "unsupported font format",
	EGLYPHMISSING: "glyph not found in font",
	ERASTER:       "rasterizer error",
	ESURFACE:      "output surface error",
	EINTERNAL:     "internal error",
}

func errorText(ecode int) string {
	if s, ok := errorTexts[ecode]; ok {
		return s
	}
	return "undefined error"
}

// ErrorText returns the display string for an error code.
func ErrorText(ecode int) string {
	return errorText(ecode)
}

// AppError is an error with an associated error code and a user-message.
type AppError interface {
	error
	ErrorCode() int
	UserMessage() string
}

type coreError struct {
	error
	code int
	msg  string
}

func (e coreError) Unwrap() error {
	return e.error
}

func (e coreError) Error() string {
	return fmt.Sprintf("[%d] %v", e.code, e.error)
}

func (e coreError) ErrorCode() int {
	return e.code
}

func (e coreError) UserMessage() string {
	return e.msg
}

var _ AppError = coreError{}

// WrapError wraps an error in a core error, featuring an error code and
// a user message.
// If err is nil, an error denoting the code's text is wrapped.
func WrapError(err error, code int, format string, v ...interface{}) error {
	if err == nil {
		err = errors.New(errorText(code))
	}
	msg := fmt.Sprintf(format, v...)
	return coreError{err, code, msg}
}

// Code returns the status code associated with an error.
// If no status code is found, it returns EINTERNAL.
// If err is nil, NOERROR is returned.
func Code(err error) (code int) {
	if err == nil {
		return NOERROR
	}
	if e := AppError(nil); errors.As(err, &e) {
		return e.ErrorCode()
	}
	return EINTERNAL
}

// UserMessage returns the user message associated with an error.
// If no message is found, it checks StatusCode and returns that message.
// If err is nil, it returns "".
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if e := AppError(nil); errors.As(err, &e) {
		return e.UserMessage()
	}
	return errorText(Code(err))
}

// Error creates an error with an error code and a user-message.
func Error(code int, format string, v ...interface{}) error {
	return coreError{
		errors.New(errorText(code)),
		code,
		fmt.Sprintf(format, v...),
	}
}
