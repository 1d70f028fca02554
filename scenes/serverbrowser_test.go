package scenes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/automoto/pong/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchServerListOrdersOpenSeatsFirst(t *testing.T) {
	var gotVersion string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotVersion = r.URL.Query().Get("version")
		_ = json.NewEncoder(w).Encode([]ui.ServerEntry{
			{ID: "a", Name: "full", Address: "h:1", Players: 2},
			{ID: "b", Name: "open", Address: "h:2", Players: 1},
			{ID: "c", Name: "broken", Players: 0},
		})
	}))
	defer srv.Close()

	servers, err := fetchServerList(context.Background(), srv.Client(), srv.URL, "1.0 beta")
	require.NoError(t, err)

	assert.Equal(t, "1.0 beta", gotVersion)
	require.Len(t, servers, 2)
	assert.Equal(t, "b", servers[0].ID)
	assert.Equal(t, "a", servers[1].ID)
}

func TestFetchServerListBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := fetchServerList(context.Background(), srv.Client(), srv.URL, "1")
	assert.ErrorContains(t, err, "503")
}

func TestFetchServerListCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("[]"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fetchServerList(ctx, srv.Client(), srv.URL, "1")
	assert.ErrorIs(t, err, context.Canceled)
}
