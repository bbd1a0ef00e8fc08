package models

import "github.com/golang-jwt/jwt/v5"

// UserClaims is the bearer token payload issued by the session service.
type UserClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}
