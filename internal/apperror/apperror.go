package apperror

import "errors"

type Code string

const (
	// Timeout: a network call exceeded its deadline. Aborts the current
	// symbol's job only.
	Timeout Code = "TIMEOUT"
	// Structure: an expected HTML container or table was not found; the
	// source page layout no longer matches assumptions.
	Structure Code = "STRUCTURE"
	// Format: a table cell's text does not match its expected type.
	Format Code = "FORMAT"
	// Config: the run cannot start at all (e.g. missing symbol file).
	Config Code = "CONFIG"
)

type AppError struct {
	code    Code
	message string
	cause   error
}

func New(code Code, message string) *AppError {
	return &AppError{code: code, message: message}
}

func Wrap(code Code, message string, cause error) *AppError {
	return &AppError{code: code, message: message, cause: cause}
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return e.message + ": " + e.cause.Error()
	}
	return e.message
}

func (e *AppError) Code() Code    { return e.code }
func (e *AppError) Unwrap() error { return e.cause }

// CodeOf extracts the classification code from err, or "" when err is
// not an AppError anywhere in its chain.
func CodeOf(err error) Code {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.code
	}
	return ""
}
