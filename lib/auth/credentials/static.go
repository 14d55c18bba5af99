package credentials

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"gfx.cafe/gfx/mcwire/lib/auth"
)

// Static hands out a fixed token and profile, for tokens obtained ahead of
// time.
type Static struct {
	AccessToken string
	Profile     uuid.UUID
	Username    string
}

func (T Static) SessionCredentials(context.Context) (auth.Credentials, error) {
	if T.AccessToken == "" {
		return auth.Credentials{}, fmt.Errorf("%w: %w", auth.ErrAuth, auth.ErrNoAccessToken)
	}
	if T.Profile == uuid.Nil {
		return auth.Credentials{}, fmt.Errorf("%w: %w", auth.ErrAuth, auth.ErrProfileMissing)
	}
	return auth.Credentials{
		AccessToken: T.AccessToken,
		Profile:     T.Profile,
		Username:    T.Username,
	}, nil
}

var _ auth.Provider = Static{}
