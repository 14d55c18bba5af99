package sessionserver

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"

	"gfx.cafe/gfx/mcwire/lib/auth"
)

func TestClient_Join(t *testing.T) {
	profile := uuid.MustParse("069a79f4-44e9-4726-a5be-fca90e38aaf5")

	var got joinRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		b, err := io.ReadAll(r.Body)
		if err == nil {
			err = jsoniter.Unmarshal(b, &got)
		}
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient()
	c.URL = srv.URL
	require.NoError(t, c.Join(context.Background(), "token", profile, "-7c9d5b"))
	require.Equal(t, joinRequest{
		AccessToken:     "token",
		SelectedProfile: "069a79f444e94726a5befca90e38aaf5",
		ServerID:        "-7c9d5b",
	}, got)
}

func TestClient_JoinRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"ForbiddenOperationException"}`, http.StatusForbidden)
	}))
	defer srv.Close()

	c := &Client{URL: srv.URL}
	err := c.Join(context.Background(), "token", uuid.New(), "abc")
	require.ErrorIs(t, err, auth.ErrAuth)
	require.Contains(t, err.Error(), "403")
}
