package jwt

import "github.com/golang-jwt/jwt"

// Identity holds the non-secret user fields a token carries.
// It never contains a password or password hash.
type Identity struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Payload defines the structure of the JSON Web Token (JWT) claims for Remix.
type Payload struct {
	// StandardClaims embeds the registered claims. IssuedAt is always set;
	// ExpiresAt only when the signer has a token lifetime.
	jwt.StandardClaims

	Identity
}
