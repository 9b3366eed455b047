package model

import (
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 14

type User struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"type:timestamp"`
	UpdatedAt time.Time `gorm:"type:timestamp"`
	Username  string    `gorm:"uniqueIndex;not null;size:150"`
	Email     string    `gorm:"size:254"`
	Password  string    `gorm:"not null"`
}

func (u *User) GetID() uint {
	if u == nil {
		return 0
	}

	return u.ID
}

func (u *User) GetUsername() string {
	if u == nil {
		return ""
	}

	return u.Username
}

func (u *User) CheckPassword(password string) bool {
	if u == nil {
		return false
	}

	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	if err != nil {
		slog.Debug("password check failed", slog.Any("error", err))
		return false
	}

	return true
}

func (u *User) SetPassword(password string) error {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}

	u.Password = string(b)

	return nil
}

func (u *User) DTO() *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
	}
}
