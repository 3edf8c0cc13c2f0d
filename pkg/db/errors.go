package db

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// IsUniqueViolation reports whether the error is a uniqueness-constraint
// failure. GORM's translated sentinel covers both drivers; the message check
// catches raw postgres errors that bypass translation. When constraintName is
// provided, the helper looks for the constraint text in the error message.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	if constraintName != "" {
		return strings.Contains(err.Error(), constraintName)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") || strings.Contains(msg, "UNIQUE constraint failed")
}
