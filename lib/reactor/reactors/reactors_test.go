package reactors

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"gfx.cafe/gfx/mcwire/lib/auth"
	"gfx.cafe/gfx/mcwire/lib/auth/credentials"
	"gfx.cafe/gfx/mcwire/lib/crypt"
	"gfx.cafe/gfx/mcwire/lib/proto"
	packets "gfx.cafe/gfx/mcwire/lib/proto/packets/v762"
	"gfx.cafe/gfx/mcwire/lib/reactor"
	"gfx.cafe/gfx/mcwire/lib/reactor/reactortest"
)

type joinCall struct {
	token   string
	profile uuid.UUID
	hash    string
}

type recordingJoiner struct {
	calls []joinCall
	err   error
}

func (T *recordingJoiner) Join(_ context.Context, accessToken string, profile uuid.UUID, serverHash string) error {
	T.calls = append(T.calls, joinCall{accessToken, profile, serverHash})
	return T.err
}

func dispatch(t *testing.T, target reactor.Target, state proto.State, packet proto.Packet) reactor.Outcome {
	t.Helper()
	outcome, err := reactor.NewDispatcher(Default(), nil).Dispatch(context.Background(), target, state, packet)
	require.NoError(t, err)
	return outcome
}

func TestDefault(t *testing.T) {
	require.Same(t, Default(), Default())
	require.Equal(t, len(Login())+len(Play()), Default().Len())

	_, ok := Default().Lookup(proto.Login, packets.TypeSetCompression)
	require.True(t, ok)
	_, ok = Default().Lookup(proto.Play, packets.TypeKeepAlive)
	require.True(t, ok)
	_, ok = Default().Lookup(proto.Play, packets.TypeBlockEntityData)
	require.False(t, ok)
}

func TestSetCompression(t *testing.T) {
	target := reactortest.NewTarget(proto.Login)
	require.Equal(t, reactor.Applied, dispatch(t, target, proto.Login, &packets.SetCompression{Threshold: 256}))
	require.Equal(t, 256, target.Compression())

	target = reactortest.NewTarget(proto.Login)
	dispatch(t, target, proto.Login, &packets.SetCompression{Threshold: -1})
	require.Equal(t, -1, target.Compression())
}

func TestEncryptionRequest(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 1024)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)

	profile := uuid.New()
	joiner := &recordingJoiner{}
	target := reactortest.NewTarget(proto.Login)
	target.Log = zaptest.NewLogger(t)
	target.Provider = credentials.Static{AccessToken: "token", Profile: profile}
	target.Joiner = joiner

	token := []byte{1, 2, 3, 4}
	outcome := dispatch(t, target, proto.Login, &packets.EncryptionRequest{
		ServerID:    "",
		PublicKey:   der,
		VerifyToken: token,
	})
	require.Equal(t, reactor.Applied, outcome)

	secret := target.Secret()
	require.Len(t, secret, crypt.SharedSecretLength)

	sent := target.Sent()
	require.Len(t, sent, 1)
	resp, ok := sent[0].(*packets.EncryptionResponse)
	require.True(t, ok)

	got, err := rsa.DecryptPKCS1v15(nil, key, resp.SharedSecret)
	require.NoError(t, err)
	require.Equal(t, secret, got)
	got, err = rsa.DecryptPKCS1v15(nil, key, resp.VerifyToken)
	require.NoError(t, err)
	require.Equal(t, token, got)

	require.Equal(t, []joinCall{{
		token:   "token",
		profile: profile,
		hash:    crypt.ServerHash("", secret, der),
	}}, joiner.calls)
}

func TestEncryptionRequest_AuthFailure(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 1024)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	request := &packets.EncryptionRequest{PublicKey: der, VerifyToken: []byte{1}}
	d := reactor.NewDispatcher(Default(), nil)

	// joiner without credentials
	target := reactortest.NewTarget(proto.Login)
	target.Joiner = &recordingJoiner{}
	_, err = d.Dispatch(context.Background(), target, proto.Login, request)
	require.ErrorIs(t, err, auth.ErrAuth)
	require.Empty(t, target.Sent())
	require.Nil(t, target.Secret())

	// provider failure is reported as an auth error
	target = reactortest.NewTarget(proto.Login)
	target.Joiner = &recordingJoiner{}
	target.Provider = auth.ProviderFunc(func(context.Context) (auth.Credentials, error) {
		return auth.Credentials{}, errors.New("token expired")
	})
	_, err = d.Dispatch(context.Background(), target, proto.Login, request)
	require.ErrorIs(t, err, auth.ErrAuth)
	require.Empty(t, target.Sent())
}

func TestEncryptionRequest_Offline(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 1024)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)

	target := reactortest.NewTarget(proto.Login)
	dispatch(t, target, proto.Login, &packets.EncryptionRequest{PublicKey: der, VerifyToken: []byte{1}})
	require.Len(t, target.Sent(), 1)
	require.NotNil(t, target.Secret())
}

func TestLoginSuccess(t *testing.T) {
	target := reactortest.NewTarget(proto.Login)
	outcome := dispatch(t, target, proto.Login, &packets.LoginSuccess{Username: "Notch"})
	require.Equal(t, reactor.Forwarded, outcome)
	require.Equal(t, []proto.State{proto.Play}, target.Transitions())
}

func TestLoginDisconnect(t *testing.T) {
	target := reactortest.NewTarget(proto.Login)
	outcome := dispatch(t, target, proto.Login, &packets.LoginDisconnect{Reason: `{"text":"banned"}`})
	require.Equal(t, reactor.Forwarded, outcome)
	require.True(t, target.Closed())

	require.ErrorIs(t, target.Cause(), ErrKicked)
	var kick *KickError
	require.ErrorAs(t, target.Cause(), &kick)
	require.Equal(t, &KickError{State: proto.Login, Reason: `{"text":"banned"}`}, kick)
}

func TestLoginPluginRequest(t *testing.T) {
	target := reactortest.NewTarget(proto.Login)
	dispatch(t, target, proto.Login, &packets.LoginPluginRequest{MessageID: 5, Channel: "velocity:player_info"})
	require.Equal(t, []proto.Packet{&packets.LoginPluginResponse{MessageID: 5}}, target.Sent())
}

func TestPlay(t *testing.T) {
	target := reactortest.NewTarget(proto.Play)
	require.Equal(t, reactor.Applied, dispatch(t, target, proto.Play, &packets.KeepAlive{ID: 77}))
	require.Equal(t, reactor.Applied, dispatch(t, target, proto.Play, &packets.Ping{ID: 3}))
	require.Equal(t, []proto.Packet{
		&packets.KeepAliveResponse{ID: 77},
		&packets.Pong{ID: 3},
	}, target.Sent())

	require.Equal(t, reactor.Forwarded, dispatch(t, target, proto.Play, &packets.PlayDisconnect{Reason: "{}"}))
	require.True(t, target.Closed())
	require.Equal(t, &KickError{State: proto.Play, Reason: "{}"}, target.Cause())
}

func TestSynchronizePlayerPosition(t *testing.T) {
	target := reactortest.NewTarget(proto.Play)
	outcome := dispatch(t, target, proto.Play, &packets.SynchronizePlayerPosition{X: 1, Y: 64, Z: 2, Yaw: 90, TeleportID: 9})
	require.Equal(t, reactor.Forwarded, outcome)
	require.Equal(t, []proto.Packet{
		&packets.ConfirmTeleportation{TeleportID: 9},
		&packets.SetPlayerPositionAndRotation{X: 1, FeetY: 64, Z: 2, Yaw: 90, OnGround: true},
	}, target.Sent())

	target = reactortest.NewTarget(proto.Play)
	dispatch(t, target, proto.Play, &packets.SynchronizePlayerPosition{Flags: packets.RelativeX, TeleportID: 10})
	require.Equal(t, []proto.Packet{&packets.ConfirmTeleportation{TeleportID: 10}}, target.Sent())
}
