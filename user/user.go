package user

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const StatusActive = "Active"

var (
	ErrInvalidPassword = errors.New("invalid password")
	// ErrPasswordTooLong is returned for passwords bcrypt cannot hash.
	ErrPasswordTooLong = errors.New("password longer than 72 bytes")
)

type User struct {
	ID           int64
	Name         string
	Email        string
	Phone        string
	PasswordHash string    `db:"password_hash"`
	RegisteredAt time.Time `db:"registered_at"`
	Status       string

	// Running totals, only ever incremented by completed rides.
	TotalRides int     `db:"total_rides"`
	TotalHours float64 `db:"total_hours"`
	TotalSpent int64   `db:"total_spent"`
}

// New builds an active user with a bcrypt hash of password.
func New(id int64, name, email, phone, password string, now time.Time) (User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return User{}, ErrPasswordTooLong
	}
	if err != nil {
		return User{}, err
	}
	return User{
		ID:           id,
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: string(hash),
		RegisteredAt: now,
		Status:       StatusActive,
	}, nil
}

func (u User) CheckPassword(password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrInvalidPassword
	}
	return err
}
