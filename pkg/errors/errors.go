package errors

import "errors"

// Well-known error codes shared across domains. Provider codes mirror the
// reason strings surfaced by the diagnostic AI provider.
const (
	CodeInvalidInput       = "invalid_input"
	CodeQuotaExceeded      = "QUOTA_EXCEEDED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeProviderError      = "PROVIDER_ERROR"
)

// AppError encodes domain specific error details.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Wrap produces a new AppError instance.
func Wrap(code, message string, err error) error {
	if err == nil {
		return &AppError{Code: code, Message: message}
	}
	return &AppError{Code: code, Message: message, Err: err}
}

// IsCode helps callers differentiate failures.
func IsCode(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// IsProvider reports whether the error originated in the AI provider path.
func IsProvider(err error) bool {
	return IsCode(err, CodeQuotaExceeded) || IsCode(err, CodeInvalidCredentials) || IsCode(err, CodeProviderError)
}
