package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
	ErrorTypeExternal     ErrorType = "EXTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidDate      ErrorCode = "INVALID_DATE"
	ErrCodeInvalidFile      ErrorCode = "INVALID_FILE"
	ErrCodeFileTooLarge     ErrorCode = "FILE_TOO_LARGE"

	// StoreUnavailable is fatal: the embedded store could not be opened or
	// migrated. Callers surface it as "reload the application".
	ErrCodeStoreUnavailable ErrorCode = "STORE_UNAVAILABLE"

	// DuplicateKey and the *_NOT_FOUND codes indicate store contract
	// violations by calling code and must never be silently swallowed.
	ErrCodeDuplicateKey      ErrorCode = "DUPLICATE_KEY"
	ErrCodeUserNotFound      ErrorCode = "USER_NOT_FOUND"
	ErrCodeAdmissionNotFound ErrorCode = "ADMISSION_NOT_FOUND"

	ErrCodeAuthenticationFailed ErrorCode = "AUTHENTICATION_FAILED"
	ErrCodeForbiddenHospital    ErrorCode = "FORBIDDEN_HOSPITAL"
	ErrCodeAdminRequired        ErrorCode = "ADMIN_REQUIRED"
	ErrCodeInvalidToken         ErrorCode = "INVALID_TOKEN"

	ErrCodeTranscriptionFailed ErrorCode = "TRANSCRIPTION_FAILED"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	clone := *e
	clone.Cause = cause
	return &clone
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewForbiddenError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

func NewExternalError(message string, code ErrorCode, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeExternal,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadGateway,
		Cause:      cause,
	}
}

var (
	ErrStoreUnavailable = &AppError{
		Type:       ErrorTypeInternal,
		Code:       ErrCodeStoreUnavailable,
		Message:    "audit store unavailable, reload the application",
		StatusCode: http.StatusServiceUnavailable,
	}

	ErrDuplicateKey         = NewConflictError("record with this id already exists", ErrCodeDuplicateKey)
	ErrUserNotFound         = NewNotFoundError("user not found", ErrCodeUserNotFound)
	ErrAdmissionNotFound    = NewNotFoundError("admission not found", ErrCodeAdmissionNotFound)
	ErrAuthenticationFailed = NewUnauthorizedError("invalid email or password", ErrCodeAuthenticationFailed)
	ErrForbiddenHospital    = NewForbiddenError("hospital not visible to this user", ErrCodeForbiddenHospital)
	ErrAdminRequired        = NewForbiddenError("administrator role required", ErrCodeAdminRequired)
	ErrInvalidToken         = NewUnauthorizedError("invalid token", ErrCodeInvalidToken)
	ErrTranscriptionFailed  = NewExternalError("transcription failed, please retry", ErrCodeTranscriptionFailed, nil)
)

func IsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
