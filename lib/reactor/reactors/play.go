package reactors

import (
	"context"

	"go.uber.org/zap"

	"gfx.cafe/gfx/mcwire/lib/proto"
	packets "gfx.cafe/gfx/mcwire/lib/proto/packets/v762"
	"gfx.cafe/gfx/mcwire/lib/reactor"
)

func Play() []reactor.Binding {
	return []reactor.Binding{
		reactor.Bind("KeepAlive", KeepAlive),
		reactor.Bind("Ping", Ping),
		reactor.Bind("PlayDisconnect", PlayDisconnect).Forwarded(),
		reactor.Bind("SynchronizePlayerPosition", SynchronizePlayerPosition).Forwarded(),
	}
}

func KeepAlive(ctx context.Context, target reactor.Target, packet *packets.KeepAlive) error {
	return target.Send(ctx, &packets.KeepAliveResponse{ID: packet.ID})
}

func Ping(ctx context.Context, target reactor.Target, packet *packets.Ping) error {
	return target.Send(ctx, &packets.Pong{ID: packet.ID})
}

func PlayDisconnect(_ context.Context, target reactor.Target, packet *packets.PlayDisconnect) error {
	target.Logger().Warn("disconnected during play", zap.String("reason", packet.Reason))
	target.Disconnect(&KickError{State: proto.Play, Reason: packet.Reason})
	return nil
}

// SynchronizePlayerPosition confirms the teleport. When the position is
// absolute it is echoed back, which is what lets the server finish spawning
// the player.
func SynchronizePlayerPosition(ctx context.Context, target reactor.Target, packet *packets.SynchronizePlayerPosition) error {
	if err := target.Send(ctx, &packets.ConfirmTeleportation{TeleportID: packet.TeleportID}); err != nil {
		return err
	}
	if packet.Flags != 0 {
		return nil
	}
	return target.Send(ctx, &packets.SetPlayerPositionAndRotation{
		X:        packet.X,
		FeetY:    packet.Y,
		Z:        packet.Z,
		Yaw:      packet.Yaw,
		Pitch:    packet.Pitch,
		OnGround: true,
	})
}
