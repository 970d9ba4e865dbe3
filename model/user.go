// Package model provides data models for the order approval system.
package model

import (
	"strings"
	"time"
)

// User represents a user in the system
type User struct {
	Key          string    `json:"_key,omitempty"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash,omitempty"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SystemActorKey is the sentinel actor recorded on automatic transitions.
const SystemActorKey = "system"

// NewUser creates a new user with default values
func NewUser(name, email string) *User {
	now := time.Now().UTC()
	return &User{
		Name:      name,
		Email:     strings.ToLower(strings.TrimSpace(email)),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NormalizedEmail returns the lower-cased email used for whitelist matching.
func (u *User) NormalizedEmail() string {
	return strings.ToLower(strings.TrimSpace(u.Email))
}
