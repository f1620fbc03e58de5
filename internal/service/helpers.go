package service

import (
	"errors"

	"gorm.io/gorm"
)

// ErrDuplicateField indicates a uniqueness violation in the account store,
// surfaced to clients as "Duplicate field value entered".
var ErrDuplicateField = errors.New("duplicate field value entered")

// translateStoreError maps persistence-layer failures onto service sentinels.
// notFound is the sentinel to substitute for a missing record.
func translateStoreError(err, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateField
	default:
		return err
	}
}
