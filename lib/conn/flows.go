package conn

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"gfx.cafe/gfx/mcwire/lib/proto"
	packets "gfx.cafe/gfx/mcwire/lib/proto/packets/v762"
)

// Login starts a login: a Handshake announcing the login intent followed by
// LoginStart. The reactions and the handler carry the rest; start Run before
// or right after calling Login.
func Login(ctx context.Context, c *Conn, name string, profile uuid.UUID) error {
	if err := c.Send(ctx, &packets.Handshake{
		ProtocolVersion: packets.ProtocolVersion,
		ServerAddress:   c.options.ServerAddress,
		ServerPort:      c.options.ServerPort,
		NextState:       packets.NextStateLogin,
	}); err != nil {
		return err
	}
	return c.Send(ctx, &packets.LoginStart{
		Name:    name,
		HasUUID: profile != uuid.Nil,
		UUID:    profile,
	})
}

type PingResult struct {
	Status packets.ServerStatus
	// JSON is the raw status document.
	JSON    string
	Latency time.Duration
}

// Ping dials addr, runs the status exchange and closes the connection.
// options.Handler is replaced for the duration.
func Ping(ctx context.Context, addr string, options Options) (PingResult, error) {
	responses := make(chan proto.Packet, 2)
	options.Handler = func(_ proto.State, packet proto.Packet) {
		switch packet.(type) {
		case *packets.StatusResponse, *packets.PingResponse:
			select {
			case responses <- packet:
			default:
			}
		}
	}

	c, err := Dial(ctx, addr, options)
	if err != nil {
		return PingResult{}, err
	}

	finished := make(chan struct{})
	var runErr error
	go func() {
		defer close(finished)
		runErr = c.Run(ctx)
	}()

	result, err := status(ctx, c, responses, finished)
	_ = c.Close()
	<-finished

	if err != nil {
		if errors.Is(err, ErrNotConnected) && runErr != nil {
			return PingResult{}, runErr
		}
		return PingResult{}, err
	}
	return result, nil
}

func status(ctx context.Context, c *Conn, responses <-chan proto.Packet, finished <-chan struct{}) (PingResult, error) {
	var result PingResult

	if err := c.Send(ctx, &packets.Handshake{
		ProtocolVersion: packets.ProtocolVersion,
		ServerAddress:   c.options.ServerAddress,
		ServerPort:      c.options.ServerPort,
		NextState:       packets.NextStateStatus,
	}); err != nil {
		return result, err
	}
	if err := c.Send(ctx, &packets.StatusRequest{}); err != nil {
		return result, err
	}

	packet, err := await(ctx, responses, finished)
	if err != nil {
		return result, err
	}
	resp, ok := packet.(*packets.StatusResponse)
	if !ok {
		return result, fmt.Errorf("expected status response, got %s", packet.Key())
	}
	result.JSON = resp.JSON
	if result.Status, err = resp.Status(); err != nil {
		return result, fmt.Errorf("status document: %w", err)
	}

	start := time.Now()
	payload := start.UnixMilli()
	if err = c.Send(ctx, &packets.PingRequest{Payload: payload}); err != nil {
		return result, err
	}
	if packet, err = await(ctx, responses, finished); err != nil {
		return result, err
	}
	pong, ok := packet.(*packets.PingResponse)
	if !ok || pong.Payload != payload {
		return result, errors.New("ping response does not match request")
	}
	result.Latency = time.Since(start)
	return result, nil
}

// await waits for the next response. finished closes when the read loop has
// returned and every queued packet has been handed to the handler.
func await(ctx context.Context, responses <-chan proto.Packet, finished <-chan struct{}) (proto.Packet, error) {
	select {
	case p := <-responses:
		return p, nil
	case <-finished:
		select {
		case p := <-responses:
			return p, nil
		default:
			return nil, ErrNotConnected
		}
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
