package validation

import (
	"chore-rooms/internal/config"
	"chore-rooms/internal/domain"
	apperrors "chore-rooms/internal/errors"
)

// RoomValidator provides validation for room and room task operations
type RoomValidator struct {
	validator *Validator
}

// NewRoomValidator creates a new room validator with default limits
func NewRoomValidator() *RoomValidator {
	return &RoomValidator{
		validator: NewValidator(),
	}
}

// NewRoomValidatorWithConfig creates a room validator using configured limits
func NewRoomValidatorWithConfig(cfg *config.Config) *RoomValidator {
	return &RoomValidator{
		validator: NewValidatorWithConfig(cfg),
	}
}

// ValidateRoomName validates a room name for creation or rename
func (rv *RoomValidator) ValidateRoomName(name string) error {
	return rv.validateName("room_name", name, rv.validator.RoomNameMaxLength())
}

// ValidateTaskName validates a room task name
func (rv *RoomValidator) ValidateTaskName(name string) error {
	return rv.validateName("task_name", name, rv.validator.TaskNameMaxLength())
}

func (rv *RoomValidator) validateName(field, name string, maxLen int) error {
	validationError := NewValidationError()

	trimmedName := rv.validator.TrimAndValidateString(name)

	if !rv.validator.IsNonEmptyString(trimmedName) {
		validationError.AddRequiredError(field)
		return validationError
	}

	if !rv.validator.IsValidStringLength(trimmedName, 1, maxLen) {
		validationError.AddInvalidLengthError(field, trimmedName, 0, maxLen)
	}

	if rv.validator.HasControlCharacters(trimmedName) {
		validationError.AddInvalidCharacterError(field, trimmedName)
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// ValidateRoom checks a room about to be saved against the other rooms of its
// section. Failures are reported with the room error taxonomy: empty name,
// name too long, or name taken when a sibling with another id has the same name.
func (rv *RoomValidator) ValidateRoom(room domain.Room, siblings []domain.Room) error {
	if err := rv.ValidateRoomName(room.Name); err != nil {
		if ve, ok := err.(*ValidationError); ok {
			return ve.ToAppError()
		}
		return err
	}

	for _, other := range siblings {
		if other.ID == room.ID && room.ID != "" {
			continue
		}
		if rv.validator.SameName(other.Name, room.Name) {
			return apperrors.NewNameTakenError(rv.validator.TrimAndValidateString(room.Name))
		}
	}

	return nil
}

// ValidateTask checks a task name and reports it with the room error taxonomy
func (rv *RoomValidator) ValidateTask(task domain.RoomTask) error {
	if err := rv.ValidateTaskName(task.Name); err != nil {
		if ve, ok := err.(*ValidationError); ok {
			return ve.ToAppError()
		}
		return err
	}
	return nil
}

// ValidateRoomID validates a persisted room id
func (rv *RoomValidator) ValidateRoomID(id string) error {
	if !rv.validator.IsValidRoomID(id) {
		validationError := NewValidationError()
		validationError.AddInvalidValueError("room_id", id, "must name a saved room")
		return validationError
	}
	return nil
}

// GetValidRoomName returns a cleaned room name if valid
func (rv *RoomValidator) GetValidRoomName(name string) (string, error) {
	if err := rv.ValidateRoomName(name); err != nil {
		return "", err
	}
	return rv.validator.TrimAndValidateString(name), nil
}

// GetValidTaskName returns a cleaned task name if valid
func (rv *RoomValidator) GetValidTaskName(name string) (string, error) {
	if err := rv.ValidateTaskName(name); err != nil {
		return "", err
	}
	return rv.validator.TrimAndValidateString(name), nil
}
