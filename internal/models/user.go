package models

import "time"

type User struct {
	Base
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"` // Bcrypt hash, hidden from JSON
	Name         string `gorm:"not null" json:"name"`
	// CategoriesSeededAt is set once the default categories were offered.
	CategoriesSeededAt *time.Time `json:"-"`
}

// PublicUser is the redacted view handed to clients.
type PublicUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email, Name: u.Name}
}
