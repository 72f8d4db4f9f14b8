// Package googleauth verifies Google ID tokens for federated sign-in.
package googleauth

import (
	"context"
	"fmt"

	"google.golang.org/api/idtoken"
)

// Claims are the identity fields extracted from a verified ID token.
type Claims struct {
	Email   string
	Name    string
	Picture string
}

// Verifier validates a federated ID token and returns its claims.
type Verifier interface {
	Verify(ctx context.Context, rawToken string) (*Claims, error)
}

type googleVerifier struct {
	clientID string
}

// NewVerifier returns a Verifier that validates tokens issued for the
// given OAuth client ID against Google's public keys.
func NewVerifier(clientID string) Verifier {
	return &googleVerifier{clientID: clientID}
}

func (v *googleVerifier) Verify(ctx context.Context, rawToken string) (*Claims, error) {
	payload, err := idtoken.Validate(ctx, rawToken, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("validate id token: %w", err)
	}

	claims := &Claims{
		Email:   stringClaim(payload.Claims, "email"),
		Name:    stringClaim(payload.Claims, "name"),
		Picture: stringClaim(payload.Claims, "picture"),
	}
	if claims.Email == "" {
		return nil, fmt.Errorf("id token carries no email claim")
	}
	return claims, nil
}

func stringClaim(claims map[string]any, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
