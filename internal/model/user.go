// Package model defines the data structures used throughout the application.
package model

import "time"

// Role values a user account can hold.
//
// The portal distinguishes three kinds of people: students (the default),
// teachers, and admins. Anything else is rejected at signup.
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

// DefaultProfilePicture is the placeholder avatar assigned to accounts that
// never uploaded one.
const DefaultProfilePicture = "https://lh3.googleusercontent.com/aida-public/AB6AXuDJ7alwZ4VtU9QjSG7VKafpieuWwNgPDgp2Y4KxAjlKwzhLF9QwtgPuE_RxEueIXjzAiJU3DrN2mg8myDX5Rfxgw2ifFs1p5OCij9LY2ZGhTKIh0kYMHHC3Mtg1ufz4cR_l1c73jMMIalIAWIrN_SQWZVBn-C9kHQB0yE-qHi9Fo1cK2mGRyJk9nbq4IFvGPJGk4WnaxiN08atgc4Ee_rrBwEKGkl90Fub5d2GJsgmGbs3F0VpIEi4oxFCGFJO761a2Q4R5x811WzyZ"

// ValidRole reports whether role is one of the three allowed values.
func ValidRole(role string) bool {
	switch role {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return true
	}
	return false
}

// User represents a registered account.
//
// WHY json:"-" ON PasswordHash?
// The hash must never leave the server. Tagging it `json:"-"` means even a
// careless writeJSON(w, user) cannot leak it — encoding/json skips the field
// entirely. On top of that, the repository's default read paths never even
// scan the hash column; only the login flow asks for it explicitly. Two
// layers, same invariant.
//
// Email is stored lowercase. Normalization happens once, in the auth
// service, before the value ever reaches the repository — so the UNIQUE
// index on the email column is effectively case-insensitive.
type User struct {
	ID             string    `json:"id"             db:"id"`
	Name           string    `json:"name"           db:"name"`
	Email          string    `json:"email"          db:"email"`
	PasswordHash   string    `json:"-"              db:"password_hash"`
	Role           string    `json:"role"           db:"role"`
	ProfilePicture string    `json:"profilePicture" db:"profile_picture"`
	CreatedAt      time.Time `json:"createdAt"      db:"created_at"`
}
