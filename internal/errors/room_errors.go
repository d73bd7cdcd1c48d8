package errors

import "fmt"

// NewRoomLimitError is returned when a registered user has no house room slots left
func NewRoomLimitError(limit int) *AppError {
	return &AppError{
		Type:    ErrorTypeRoomLimit,
		Message: fmt.Sprintf("house room limit of %d reached", limit),
		Code:    "ROOM_LIMIT_REACHED",
		Context: map[string]interface{}{
			"limit": limit,
		},
	}
}

// NewGuestLimitError is returned when a guest has no house room slots left
func NewGuestLimitError(limit int) *AppError {
	return &AppError{
		Type:    ErrorTypeGuestLimit,
		Message: fmt.Sprintf("guest house room limit of %d reached", limit),
		Code:    "GUEST_LIMIT_REACHED",
		Context: map[string]interface{}{
			"limit": limit,
		},
	}
}

// NewNonAdminEditError creates an error for edits that need house admin rights
func NewNonAdminEditError(roomID string) *AppError {
	return &AppError{
		Type:    ErrorTypeNonAdminEdit,
		Message: "only a house admin can edit this room",
		Code:    "NON_ADMIN_EDIT",
		Context: map[string]interface{}{
			"room_id": roomID,
		},
	}
}

// NewNonAdminDeleteError creates an error for deletes that need house admin rights
func NewNonAdminDeleteError(roomID string) *AppError {
	return &AppError{
		Type:    ErrorTypeNonAdminDelete,
		Message: "only a house admin can delete this room",
		Code:    "NON_ADMIN_DELETE",
		Context: map[string]interface{}{
			"room_id": roomID,
		},
	}
}

// NewNameTakenError creates an error for a room name already used in the same section
func NewNameTakenError(name string) *AppError {
	return &AppError{
		Type:    ErrorTypeNameTaken,
		Message: fmt.Sprintf("a room named %q already exists", name),
		Code:    "NAME_TAKEN",
		Context: map[string]interface{}{
			"name": name,
		},
	}
}

// NewEmptyNameError creates an error for a blank room or task name
func NewEmptyNameError(field string) *AppError {
	return &AppError{
		Type:    ErrorTypeEmptyName,
		Message: fmt.Sprintf("%s cannot be empty", field),
		Code:    "EMPTY_NAME",
		Context: map[string]interface{}{
			"field": field,
		},
	}
}

// NewMissingRoomError creates an error for a room id that is not in the list
func NewMissingRoomError(roomID string) *AppError {
	return &AppError{
		Type:    ErrorTypeMissingRoom,
		Message: fmt.Sprintf("room not found: %s", roomID),
		Code:    "MISSING_ROOM",
		Context: map[string]interface{}{
			"room_id": roomID,
		},
	}
}

// NewNameTooLongError creates an error for a name over the configured maximum
func NewNameTooLongError(field string, max int) *AppError {
	return &AppError{
		Type:    ErrorTypeNameTooLong,
		Message: fmt.Sprintf("%s cannot exceed %d characters", field, max),
		Code:    "NAME_TOO_LONG",
		Context: map[string]interface{}{
			"field": field,
			"max":   max,
		},
	}
}

// NewCancelDeleteError is returned when the user backs out of a delete confirmation
func NewCancelDeleteError(roomID string) *AppError {
	return &AppError{
		Type:    ErrorTypeCancelDelete,
		Message: "delete cancelled",
		Code:    "CANCEL_DELETE",
		Context: map[string]interface{}{
			"room_id": roomID,
		},
	}
}

// NewCorruptDataError creates an error for stored data that cannot be read back
func NewCorruptDataError(what string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeCorruptData,
		Message: fmt.Sprintf("stored %s is corrupt", what),
		Code:    "CORRUPT_DATA",
		Cause:   cause,
		Context: map[string]interface{}{
			"what": what,
		},
	}
}

// roomUserMessage returns the message shown to the user for room list errors
func roomUserMessage(appErr *AppError) string {
	switch appErr.Type {
	case ErrorTypeRoomLimit:
		return "You've reached your house-room limit. Upgrade to iCleanMePro, or delete another room to make space for a new one."
	case ErrorTypeGuestLimit:
		return "You've reached your house-room limit. Create an account by linking a sign-in method, or delete another room to make space for a new one."
	case ErrorTypeNonAdminEdit:
		return "You do not have permission to edit this room. Please ask a house admin to make the change."
	case ErrorTypeNonAdminDelete:
		return "You do not have permission to delete this room. Please ask a house admin to perform the delete."
	case ErrorTypeNameTaken:
		if name, ok := appErr.GetContext("name"); ok {
			return fmt.Sprintf("A room named '%v' already exists. Please choose another name.", name)
		}
		return "That room name is already taken. Please choose another name."
	case ErrorTypeCorruptData:
		return "Some saved data could not be read. Please try again."
	default:
		return appErr.Message
	}
}
