package validation

import (
	"errors"
	"strings"
)

// ErrInvalid matches every *Error with errors.Is.
var ErrInvalid = errors.New("validation failed")

// FieldError represents a validation error for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error lists the fields that failed validation.
type Error struct {
	Fields []FieldError `json:"fields"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	messages := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		messages[i] = f.Field + ": " + f.Message
	}
	return "validation: " + strings.Join(messages, "; ")
}

// Is reports whether target is ErrInvalid.
func (e *Error) Is(target error) bool {
	return target == ErrInvalid
}

// Field returns the message recorded for field.
func (e *Error) Field(field string) (string, bool) {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message, true
		}
	}
	return "", false
}
