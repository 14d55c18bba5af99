package reactors

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"gfx.cafe/gfx/mcwire/lib/auth"
	"gfx.cafe/gfx/mcwire/lib/crypt"
	"gfx.cafe/gfx/mcwire/lib/proto"
	packets "gfx.cafe/gfx/mcwire/lib/proto/packets/v762"
	"gfx.cafe/gfx/mcwire/lib/reactor"
)

func Login() []reactor.Binding {
	return []reactor.Binding{
		reactor.Bind("SetCompression", SetCompression),
		reactor.Bind("EncryptionRequest", EncryptionRequest),
		reactor.Bind("LoginSuccess", LoginSuccess).Forwarded(),
		reactor.Bind("LoginDisconnect", LoginDisconnect).Forwarded(),
		reactor.Bind("LoginPluginRequest", LoginPluginRequest),
	}
}

// SetCompression enables compression for every later frame. A negative
// threshold leaves it off.
func SetCompression(_ context.Context, target reactor.Target, packet *packets.SetCompression) error {
	if packet.Threshold < 0 {
		target.Logger().Debug("server left compression disabled", zap.Int32("threshold", packet.Threshold))
		return nil
	}
	return target.Pipeline().EnableCompression(int(packet.Threshold))
}

// EncryptionRequest answers with a fresh shared secret, joins the session when
// a joiner is configured, and turns on encryption. The response itself goes
// out in the clear.
func EncryptionRequest(ctx context.Context, target reactor.Target, packet *packets.EncryptionRequest) error {
	secret, err := crypt.GenerateSharedSecret()
	if err != nil {
		return err
	}
	encSecret, encToken, err := crypt.EncryptSecret(packet.PublicKey, secret, packet.VerifyToken)
	if err != nil {
		return err
	}

	provider, joiner := target.Session()
	if joiner != nil {
		if provider == nil {
			return fmt.Errorf("%w: server requested a session join but no credentials are configured", auth.ErrAuth)
		}
		creds, err := provider.SessionCredentials(ctx)
		if err != nil {
			if !errors.Is(err, auth.ErrAuth) {
				err = fmt.Errorf("%w: %w", auth.ErrAuth, err)
			}
			return err
		}
		hash := crypt.ServerHash(packet.ServerID, secret, packet.PublicKey)
		if err = joiner.Join(ctx, creds.AccessToken, creds.Profile, hash); err != nil {
			return err
		}
		target.Logger().Debug("joined session", zap.Stringer("profile", creds.Profile))
	}

	if err = target.Send(ctx, &packets.EncryptionResponse{
		SharedSecret: encSecret,
		VerifyToken:  encToken,
	}); err != nil {
		return err
	}
	return target.Pipeline().EnableEncryption(secret)
}

func LoginSuccess(_ context.Context, target reactor.Target, packet *packets.LoginSuccess) error {
	if err := target.Transition(proto.Play); err != nil {
		return err
	}
	target.Logger().Info("logged in",
		zap.String("username", packet.Username),
		zap.Stringer("uuid", packet.UUID))
	return nil
}

func LoginDisconnect(_ context.Context, target reactor.Target, packet *packets.LoginDisconnect) error {
	target.Logger().Warn("disconnected during login", zap.String("reason", packet.Reason))
	target.Disconnect(&KickError{State: proto.Login, Reason: packet.Reason})
	return nil
}

// LoginPluginRequest tells the server no plugin channel is understood.
func LoginPluginRequest(ctx context.Context, target reactor.Target, packet *packets.LoginPluginRequest) error {
	target.Logger().Debug("declining login plugin request", zap.String("channel", packet.Channel))
	return target.Send(ctx, &packets.LoginPluginResponse{
		MessageID: packet.MessageID,
	})
}
