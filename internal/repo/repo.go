package repo

import (
	"errors"

	"gorm.io/gorm"
)

var ErrAlreadyExists = errors.New("already exists")

type GormRepo struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}

// alreadyExists maps a unique violation from a concurrent insert, which
// FirstOrCreate cannot see coming, onto ErrAlreadyExists.
func alreadyExists(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAlreadyExists
	}
	return err
}
