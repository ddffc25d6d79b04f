package admission

import (
	"context"
	"strings"

	"github.com/adarsh20n06-web/vetra-server/internal/domain/apikey"
)

// APIKeyResolver resolves identity by verifying the bearer credential
// against the key store. A successful resolve consumes one use.
type APIKeyResolver struct {
	keys *apikey.Service
}

// NewAPIKeyResolver constructs an APIKeyResolver.
func NewAPIKeyResolver(keys *apikey.Service) *APIKeyResolver {
	return &APIKeyResolver{keys: keys}
}

func (r *APIKeyResolver) Resolve(ctx context.Context, req Request) (Identity, error) {
	if req.Credential == "" {
		return Identity{}, ErrMissingCredential
	}
	grant, err := r.keys.VerifyAndConsume(ctx, req.Credential, req.RemoteAddr)
	if err != nil {
		return Identity{}, err
	}
	keyID := grant.KeyID
	return Identity{OwnerEmail: grant.OwnerEmail, KeyID: &keyID}, nil
}

// TrustedResolver accepts the identity established by an outer session
// layer. It performs no credential checks of its own.
type TrustedResolver struct{}

// NewTrustedResolver constructs a TrustedResolver.
func NewTrustedResolver() *TrustedResolver {
	return &TrustedResolver{}
}

func (r *TrustedResolver) Resolve(_ context.Context, req Request) (Identity, error) {
	owner := strings.ToLower(strings.TrimSpace(req.TrustedOwner))
	if owner == "" {
		return Identity{}, ErrMissingCredential
	}
	return Identity{OwnerEmail: owner}, nil
}
