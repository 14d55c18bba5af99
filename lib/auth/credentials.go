package auth

import (
	"context"

	"github.com/google/uuid"
)

// Credentials are what the login handshake needs from an account: the session
// access token and the selected profile.
type Credentials struct {
	AccessToken string
	Profile     uuid.UUID
	Username    string
}

// Provider supplies session credentials. Acquiring them (device code flows,
// token refresh) happens outside this module.
type Provider interface {
	SessionCredentials(ctx context.Context) (Credentials, error)
}

type ProviderFunc func(ctx context.Context) (Credentials, error)

func (T ProviderFunc) SessionCredentials(ctx context.Context) (Credentials, error) {
	return T(ctx)
}

// Joiner tells the session service that the profile is joining the server
// identified by serverHash, so the server can verify the login.
type Joiner interface {
	Join(ctx context.Context, accessToken string, profile uuid.UUID, serverHash string) error
}
