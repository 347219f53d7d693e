package repo

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound reports a primary-key or filter lookup that matched
	// no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate reports an insert or update rejected by a unique
	// constraint (user email, post title).
	ErrDuplicate = errors.New("duplicate value")
)

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	}
	return err
}
