package models

import "github.com/golang-jwt/jwt/v5"

// JWTClaims are the claims carried by access tokens issued by the hosted
// identity provider. This service only validates them.
type JWTClaims struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
