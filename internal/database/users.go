package database

import (
	"errors"

	"gorm.io/gorm"

	"github.com/shelfwise/library-api/internal/entities"
)

func (d *Database) CreateUser(user *entities.User) error {
	return d.DB.Create(user).Error
}

func (d *Database) GetUserByID(id uint) (*entities.User, error) {
	var user entities.User
	err := d.DB.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail returns (nil, nil) when no user with the email exists, so
// callers can distinguish "not registered" from a query failure.
func (d *Database) GetUserByEmail(email string) (*entities.User, error) {
	var user entities.User
	err := d.DB.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
