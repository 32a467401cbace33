package domain

import "time"

// User models a registered identity. The password hash never leaves the
// identity service: it is excluded from every JSON encoding.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	FullName     string `json:"fullName"`
}

// Profile returns the sanitized view of the user.
func (u *User) Profile() UserProfile {
	return UserProfile{Email: u.Email, FullName: u.FullName}
}

// UserProfile is the only user shape returned to clients.
type UserProfile struct {
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

// SessionClaims are the claims carried by an access token. Subject is the
// user id and doubles as the owner reference on products.
type SessionClaims struct {
	Subject   string
	Email     string
	FullName  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Session is the result of a successful login.
type Session struct {
	AccessToken string      `json:"accessToken"`
	User        UserProfile `json:"user"`
}
