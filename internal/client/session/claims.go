package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the displayable subset of the backend's JWT payload.
type TokenClaims struct {
	Subject   string
	ExpiresAt time.Time
}

// PeekClaims decodes a token's claims WITHOUT verifying the signature. The
// client has no signing key and never trusts these values for authorization;
// they only feed the status bar ("logged in as ...") and the local
// expired-session hint. The backend remains the authority on every request.
func PeekClaims(token string) (TokenClaims, error) {
	parser := jwt.NewParser()
	claims := jwt.RegisteredClaims{}
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return TokenClaims{}, err
	}
	out := TokenClaims{Subject: claims.Subject}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}

// Expired reports whether the token carries an exp claim in the past.
// Tokens without an exp claim never read as expired.
func (c TokenClaims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && c.ExpiresAt.Before(now)
}
