package auth

import "time"

// StoredUser is a locally registered account.
type StoredUser struct {
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session is the signed-in user as recorded in the session document.
type Session struct {
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	ExpiresAt time.Time `json:"expires_at"`
}

type sessionDocument struct {
	AccessToken string `json:"access_token"`
}

// RegisterRequest holds the sign-up form. Name is optional.
type RegisterRequest struct {
	Email    string
	Password string
	Name     string
}
