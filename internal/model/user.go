// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a registered account.
//
// WHY PasswordHash HAS json:"-"?
// The bcrypt hash must never leave the server. The "-" tag tells encoding/json
// to skip the field entirely, so a User can be written straight into an API
// response without a separate DTO.
//
// WHY Birthday *time.Time?
// Birthday is optional at registration. A nil pointer serialises as null and
// maps to a NULL column, which is clearer than a zero time.Time ("0001-01-01").
type User struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Prefecture   string     `json:"prefecture,omitempty"`
	Birthday     *time.Time `json:"birthday,omitempty"`
	Gender       string     `json:"gender,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}
