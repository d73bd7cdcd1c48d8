package errors

import (
	"fmt"
)

// ErrorType represents the category of error
type ErrorType int

const (
	ErrorTypeValidation ErrorType = iota
	ErrorTypeNotFound
	ErrorTypeDatabase
	ErrorTypeInvalidInput
	ErrorTypeTimeout
	ErrorTypePermission
	ErrorTypeRoomLimit
	ErrorTypeGuestLimit
	ErrorTypeNonAdminEdit
	ErrorTypeNonAdminDelete
	ErrorTypeNameTaken
	ErrorTypeEmptyName
	ErrorTypeMissingRoom
	ErrorTypeNameTooLong
	ErrorTypeCancelDelete
	ErrorTypeCorruptData
)

// String returns the string representation of the error type
func (et ErrorType) String() string {
	switch et {
	case ErrorTypeValidation:
		return "validation"
	case ErrorTypeNotFound:
		return "not_found"
	case ErrorTypeDatabase:
		return "database"
	case ErrorTypeInvalidInput:
		return "invalid_input"
	case ErrorTypeTimeout:
		return "timeout"
	case ErrorTypePermission:
		return "permission"
	case ErrorTypeRoomLimit:
		return "room_limit_reached"
	case ErrorTypeGuestLimit:
		return "guest_limit_reached"
	case ErrorTypeNonAdminEdit:
		return "non_admin_edit"
	case ErrorTypeNonAdminDelete:
		return "non_admin_delete"
	case ErrorTypeNameTaken:
		return "name_taken"
	case ErrorTypeEmptyName:
		return "empty_name"
	case ErrorTypeMissingRoom:
		return "missing_room"
	case ErrorTypeNameTooLong:
		return "name_too_long"
	case ErrorTypeCancelDelete:
		return "cancel_delete"
	case ErrorTypeCorruptData:
		return "corrupt_data"
	default:
		return "unknown"
	}
}

// IsRoomError reports whether the type belongs to the room list taxonomy
func (et ErrorType) IsRoomError() bool {
	return et >= ErrorTypeRoomLimit && et <= ErrorTypeCorruptData
}

// AppError represents a structured application error
type AppError struct {
	Type    ErrorType
	Message string
	Code    string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type.String(), e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type.String(), e.Message)
}

// Unwrap returns the underlying error for error unwrapping
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches the target error type
func (e *AppError) Is(target error) bool {
	if appErr, ok := target.(*AppError); ok {
		return e.Type == appErr.Type && e.Code == appErr.Code
	}
	return false
}

// IsType checks if this error is of the specified type
func (e *AppError) IsType(errorType ErrorType) bool {
	return e.Type == errorType
}

// WithContext adds context information to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// GetContext retrieves context information from the error
func (e *AppError) GetContext(key string) (interface{}, bool) {
	if e.Context == nil {
		return nil, false
	}
	value, exists := e.Context[key]
	return value, exists
}