package cli

import (
	"fmt"

	"chore-rooms/internal/errors"
	"chore-rooms/internal/validation"

	"go.uber.org/zap"
)

// ErrorHandler provides centralized error handling for command handlers
type ErrorHandler struct {
	logger *zap.Logger
}

// NewErrorHandler creates a new error handler. A nil logger disables logging.
func NewErrorHandler(logger *zap.Logger) *ErrorHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ErrorHandler{logger: logger}
}

// Handle provides user-friendly error messages for validation and other errors
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if err == nil {
		return nil
	}
	eh.log(operation, err)

	// Handle validation errors first (legacy support)
	if validationErr, ok := err.(*validation.ValidationError); ok {
		return fmt.Errorf("failed to %s: %s", operation, validationErr.GetUserFriendlyMessage())
	}

	// Room errors carry a message meant for the user as is
	if eh.IsRoomError(err) {
		return fmt.Errorf("%s", errors.GetUserMessage(err))
	}

	if _, ok := errors.AsAppError(err); ok {
		userMessage := errors.GetUserMessage(err)
		return fmt.Errorf("failed to %s: %s", operation, userMessage)
	}

	// Fallback for unknown errors
	return fmt.Errorf("failed to %s: %w", operation, err)
}

// HandleSimple provides user-friendly error messages without operation context
func (eh *ErrorHandler) HandleSimple(err error) error {
	if err == nil {
		return nil
	}

	// Handle validation errors first (legacy support)
	if validationErr, ok := err.(*validation.ValidationError); ok {
		return fmt.Errorf("%s", validationErr.GetUserFriendlyMessage())
	}

	if _, ok := errors.AsAppError(err); ok {
		return fmt.Errorf("%s", errors.GetUserMessage(err))
	}

	// Fallback for unknown errors
	return err
}

func (eh *ErrorHandler) log(operation string, err error) {
	if !errors.ShouldLogError(err) {
		return
	}
	eh.logger.Error("command failed",
		zap.String("operation", operation),
		zap.String("code", errors.GetErrorCode(err)),
		zap.Error(err))
}

// IsValidationError checks if an error is a validation error
func (eh *ErrorHandler) IsValidationError(err error) bool {
	if validation.IsValidationError(err) {
		return true
	}
	return errors.IsErrorType(err, errors.ErrorTypeValidation)
}

// IsNotFoundError checks if an error is a not found error
func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeNotFound) || errors.IsErrorType(err, errors.ErrorTypeMissingRoom)
}

// IsDatabaseError checks if an error is a database error
func (eh *ErrorHandler) IsDatabaseError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeDatabase)
}

// IsRoomError checks if an error belongs to the room error taxonomy
func (eh *ErrorHandler) IsRoomError(err error) bool {
	appErr, ok := errors.AsAppError(err)
	return ok && appErr.Type.IsRoomError()
}

// IsCancelled checks if the user backed out of a confirmation
func (eh *ErrorHandler) IsCancelled(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeCancelDelete)
}

// GetErrorCode returns the error code for structured errors
func (eh *ErrorHandler) GetErrorCode(err error) string {
	return errors.GetErrorCode(err)
}
