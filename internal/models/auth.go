package models

import "github.com/golang-jwt/jwt/v5"

// LoginRequest is the payload shared by all three login surfaces.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SessionUser is the authenticated identity returned to the client.
// Learner logins leave Subject/Classes empty; staff logins leave Grade
// empty. The master override fills the wildcard values.
type SessionUser struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        StaffRole `json:"role,omitempty"`
	Subject     string    `json:"subject,omitempty"`
	Classes     string    `json:"classes,omitempty"`
	Grade       string    `json:"grade,omitempty"`
	Gender      string    `json:"gender,omitempty"`
	FeesBlocked bool      `json:"fees_blocked"`
}

// LoginResponse carries the session user and a signed access token.
type LoginResponse struct {
	User  SessionUser `json:"user"`
	Token string      `json:"token"`
}

// JWTClaims are the registered claims plus portal identity fields.
type JWTClaims struct {
	UserID string    `json:"user_id"`
	Role   StaffRole `json:"role"`
	Email  string    `json:"email"`
	jwt.RegisteredClaims
}
