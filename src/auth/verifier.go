package auth

import (
	"context"
	"errors"

	"dalla-server/src/apperr"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the verified subset of the token payload the rest of the system
// consumes.
type Claims struct {
	Subject string
	Email   string
}

// Verifier validates bearer tokens issued by the external identity provider.
// All internal failure detail is normalized to apperr.ErrUnauthenticated or
// apperr.ErrUnavailable before it leaves this package.
type Verifier struct {
	parser *jwt.Parser
	keys   *KeySet
}

func NewVerifier(issuer, audience, jwksURL string) (*Verifier, error) {
	keys, err := NewKeySet(jwksURL)
	if err != nil {
		return nil, err
	}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
	)
	return &Verifier{parser: parser, keys: keys}, nil
}

func (v *Verifier) Verify(ctx context.Context, tokenString string) (Claims, error) {
	if tokenString == "" {
		return Claims{}, apperr.Unauthenticated("missing token")
	}

	claims := jwt.MapClaims{}
	token, err := v.parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, apperr.Unauthenticated("missing key id")
		}
		return v.keys.Key(ctx, kid)
	})
	if err != nil {
		if errors.Is(err, apperr.ErrUnavailable) {
			return Claims{}, apperr.Unavailable("identity provider unreachable")
		}
		return Claims{}, apperr.Unauthenticated("invalid or expired token")
	}
	if !token.Valid {
		return Claims{}, apperr.Unauthenticated("invalid or expired token")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return Claims{}, apperr.Unauthenticated("missing sub claim")
	}
	email, _ := claims["email"].(string)

	return Claims{Subject: sub, Email: email}, nil
}
