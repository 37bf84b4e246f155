package types

import "github.com/golang-jwt/jwt/v5"

// Claims represents the JWT claims. The user is reloaded from the store on every
// request, so the token only carries the id.
type Claims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}
