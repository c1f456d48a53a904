package service

import (
	"errors"
	"fmt"
	"strings"

	"pharmaops/pkg/apperror"

	"gorm.io/gorm"
)

// notFoundOr maps gorm.ErrRecordNotFound to a NotFound error and wraps
// anything else as a database error.
func notFoundOr(err error, format string, args ...interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.Wrap(err, apperror.KindNotFound, format, args...)
	}
	return fmt.Errorf("database error: %w", err)
}

// isDuplicateKey recognizes unique violations whether or not the dialect
// translated them.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
