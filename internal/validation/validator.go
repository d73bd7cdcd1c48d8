package validation

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"chore-rooms/internal/config"
	"chore-rooms/internal/domain"
)

const (
	defaultRoomNameMaxLength = 50
	defaultTaskNameMaxLength = 80
)

// Validator provides common validation utilities
type Validator struct {
	config *config.Config
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		config: nil, // Use defaults
	}
}

// NewValidatorWithConfig creates a new validator instance with configuration
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{
		config: cfg,
	}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks if a string length in characters is within the specified range
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := utf8.RuneCountInString(strings.TrimSpace(s))
	return length >= min && length <= max
}

// HasControlCharacters reports whether s contains newlines, tabs or other control characters
func (v *Validator) HasControlCharacters(s string) bool {
	for _, r := range s {
		if unicode.IsControl(r) {
			return true
		}
	}
	return false
}

// IsValidRoomID checks that a room id is set and is not one of the synthetic list rows
func (v *Validator) IsValidRoomID(id string) bool {
	id = strings.TrimSpace(id)
	return id != "" && id != domain.AllRoomID && id != domain.ReminderRoomID
}

// SameName compares names the way duplicate detection does: trimmed and case-insensitive
func (v *Validator) SameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

// RoomNameMaxLength returns the configured maximum room name length or default
func (v *Validator) RoomNameMaxLength() int {
	if v.config != nil {
		return v.config.Validation.RoomNameMaxLength
	}
	return defaultRoomNameMaxLength
}

// TaskNameMaxLength returns the configured maximum task name length or default
func (v *Validator) TaskNameMaxLength() int {
	if v.config != nil {
		return v.config.Validation.TaskNameMaxLength
	}
	return defaultTaskNameMaxLength
}
