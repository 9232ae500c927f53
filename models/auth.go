package models

import "github.com/golang-jwt/jwt/v5"

const (
	RoleUser     = "user"
	RoleBusiness = "business"
)

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Address  string `json:"address,omitempty"`
}

// Claims are the gateway's own session claims. SessionID keys the stored
// upstream bearer token.
type Claims struct {
	Email     string `json:"email"`
	Role      string `json:"role"`
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}
