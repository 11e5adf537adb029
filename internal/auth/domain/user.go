package domain

import "time"

type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt encoded
	Role         Role
	FirstName    string
	LastName     string
	Country      string
	City         string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
