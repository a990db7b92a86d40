package models

import (
	"strings"
	"time"
)

type User struct {
	ID         uint      `gorm:"primaryKey"`
	Username   string    `gorm:"size:150;not null;uniqueIndex"`
	Email      string    `gorm:"size:254"`
	FirstName  string    `gorm:"size:30"`
	LastName   string    `gorm:"size:150"`
	IsStaff    bool      `gorm:"not null"`
	IsActive   bool      `gorm:"not null"`
	DateJoined time.Time `gorm:"autoCreateTime"`
	LastLogin  *time.Time
}

// FullName joins first and last name, skipping empty parts.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// DisplayName is the name shown next to records the user created.
func (u *User) DisplayName() string {
	if name := u.FullName(); name != "" {
		return name
	}
	if u.Email != "" {
		return u.Email
	}
	return u.Username
}

// DisplayNameOf returns the display name of u, or nil when u is unset.
func DisplayNameOf(u *User) interface{} {
	if u == nil {
		return nil
	}
	return u.DisplayName()
}
