package models

import "time"

// LoginRequest holds the credentials submitted to the login route.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	IP       string `json:"-"`
}

// Session is the outcome of a successful login. Token travels in the cookie only.
type Session struct {
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
	Account   *Account  `json:"user"`
}
