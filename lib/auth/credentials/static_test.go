package credentials

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"gfx.cafe/gfx/mcwire/lib/auth"
)

func TestStatic(t *testing.T) {
	profile := uuid.New()

	creds, err := Static{AccessToken: "token", Profile: profile, Username: "Notch"}.SessionCredentials(context.Background())
	require.NoError(t, err)
	require.Equal(t, auth.Credentials{AccessToken: "token", Profile: profile, Username: "Notch"}, creds)

	_, err = Static{Profile: profile}.SessionCredentials(context.Background())
	require.ErrorIs(t, err, auth.ErrAuth)
	require.ErrorIs(t, err, auth.ErrNoAccessToken)

	_, err = Static{AccessToken: "token"}.SessionCredentials(context.Background())
	require.ErrorIs(t, err, auth.ErrAuth)
	require.ErrorIs(t, err, auth.ErrProfileMissing)
}
