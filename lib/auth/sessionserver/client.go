// Package sessionserver joins a server session on the account session
// service during an online mode login.
package sessionserver

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/hashicorp/go-cleanhttp"
	jsoniter "github.com/json-iterator/go"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"gfx.cafe/gfx/mcwire/lib/auth"
)

const DefaultURL = "https://sessionserver.mojang.com/session/minecraft/join"

type joinRequest struct {
	AccessToken     string `json:"accessToken"`
	SelectedProfile string `json:"selectedProfile"`
	ServerID        string `json:"serverId"`
}

type Client struct {
	// URL of the join endpoint, DefaultURL when empty.
	URL  string
	HTTP *http.Client
}

func NewClient() *Client {
	hc := cleanhttp.DefaultPooledClient()
	hc.Transport = otelhttp.NewTransport(hc.Transport)
	return &Client{
		URL:  DefaultURL,
		HTTP: hc,
	}
}

func (T *Client) Join(ctx context.Context, accessToken string, profile uuid.UUID, serverHash string) error {
	body, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(joinRequest{
		AccessToken:     accessToken,
		SelectedProfile: strings.ReplaceAll(profile.String(), "-", ""),
		ServerID:        serverHash,
	})
	if err != nil {
		return err
	}

	url := T.URL
	if url == "" {
		url = DefaultURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	hc := T.HTTP
	if hc == nil {
		hc = cleanhttp.DefaultClient()
	}
	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: join session: %w", auth.ErrAuth, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: join session: %s: %s", auth.ErrAuth, resp.Status, bytes.TrimSpace(msg))
	}
	return nil
}

var _ auth.Joiner = (*Client)(nil)
