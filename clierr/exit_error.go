package clierr

import (
	"errors"
	"fmt"
)

// ExitError carries an explicit process exit code alongside a user-facing
// message. It supports wrapping so errors.Is/As keep working.
type ExitError struct {
	code  int
	msg   string
	cause error
}

func (e *ExitError) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return fmt.Sprintf("%s: %v", e.msg, e.cause)
}

func (e *ExitError) ExitCode() int { return e.code }

func (e *ExitError) Unwrap() error { return e.cause }

func New(code int, msg string) error {
	return &ExitError{code: normalize(code), msg: msg}
}

func Newf(code int, format string, args ...any) error {
	return &ExitError{code: normalize(code), msg: fmt.Sprintf(format, args...)}
}

func Wrap(code int, msg string, cause error) error {
	if cause == nil {
		return New(code, msg)
	}
	return &ExitError{code: normalize(code), msg: msg, cause: cause}
}

// ExitCodeOf extracts the exit code from any error, defaulting to 1 so
// main never has to duplicate errors.As logic.
func ExitCodeOf(err error) int {
	if err == nil {
		return 0
	}
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.ExitCode()
	}
	return 1
}

func normalize(code int) int {
	if code <= 0 {
		return 1
	}
	return code
}
