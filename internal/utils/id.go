package utils

import "github.com/google/uuid"

// NewID returns a new opaque identifier for entries and tags.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether value is a syntactically valid identifier (canonical UUID form).
func ValidID(value string) bool {
	if len(value) != 36 {
		return false
	}
	_, err := uuid.Parse(value)
	return err == nil
}
