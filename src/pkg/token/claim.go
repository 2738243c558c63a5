package token

import "github.com/golang-jwt/jwt/v5"

// Claim mirrors the payload minted by the auth service.
type Claim struct {
	Metadata Metadata `json:"metadata"`
	jwt.RegisteredClaims
}

type Metadata struct {
	UserID   string `json:"user_id"`
	FullName string `json:"full_name"`
	IsAdmin  bool   `json:"is_admin"`
}
