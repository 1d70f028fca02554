package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryExpiresSilentServers(t *testing.T) {
	now := time.Unix(1000, 0)
	reg := NewRegistry(90 * time.Second)
	reg.now = func() time.Time { return now }

	stale := reg.Register(ServerInfo{Name: "stale"})
	fresh := reg.Register(ServerInfo{Name: "fresh"})

	now = now.Add(60 * time.Second)
	require.True(t, reg.Heartbeat(fresh, TableStatus{Players: 2, Score: [2]int{3, 1}, Match: "playing"}))

	now = now.Add(40 * time.Second)
	reg.expire()

	list := reg.List("")
	require.Len(t, list, 1)
	assert.Equal(t, "fresh", list[0].Name)
	assert.Equal(t, 2, list[0].Players)
	assert.Equal(t, [2]int{3, 1}, list[0].Score)
	assert.Equal(t, "playing", list[0].Match)
	assert.False(t, reg.Heartbeat(stale, TableStatus{Players: 1}))
}

func TestRegistryListFiltersVersionAndSorts(t *testing.T) {
	reg := NewRegistry(time.Minute)
	reg.Register(ServerInfo{Name: "b", Version: "1.0", Players: 1})
	reg.Register(ServerInfo{Name: "a", Version: "1.0", Players: 1})
	reg.Register(ServerInfo{Name: "old", Version: "0.9", Players: 3})
	reg.Register(ServerInfo{Name: "any", Players: 2})

	var names []string
	for _, s := range reg.List("1.0") {
		names = append(names, s.Name)
	}

	assert.Equal(t, []string{"any", "a", "b"}, names)
}

func TestRegisterThenListOverHTTP(t *testing.T) {
	ts := httptest.NewServer(newMux(NewRegistry(time.Minute)))
	defer ts.Close()

	body := `{"name":"table","address":"pong.example:7373","players":1,"maxPlayers":6,"version":"1.0","arena":"classic","targetScore":11}`
	resp, err := http.Post(ts.URL+"/servers/register", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created registerResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.NotEmpty(t, created.ID)

	list, err := http.Get(ts.URL + "/servers?version=1.0")
	require.NoError(t, err)
	defer list.Body.Close()

	var servers []ServerInfo
	require.NoError(t, json.NewDecoder(list.Body).Decode(&servers))
	require.Len(t, servers, 1)
	assert.Equal(t, ServerInfo{
		ID:          created.ID,
		Name:        "table",
		Address:     "pong.example:7373",
		Players:     1,
		MaxPlayers:  6,
		Version:     "1.0",
		Arena:       "classic",
		TargetScore: 11,
		Match:       "waiting",
	}, servers[0])
}

func TestRegisterRejectsIncompleteRequests(t *testing.T) {
	ts := httptest.NewServer(newMux(NewRegistry(time.Minute)))
	defer ts.Close()

	for _, body := range []string{`{"name":"x"}`, `not json`} {
		resp, err := http.Post(ts.URL+"/servers/register", "application/json", strings.NewReader(body))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
	}
}

func TestHeartbeatUnknownServer(t *testing.T) {
	ts := httptest.NewServer(newMux(NewRegistry(time.Minute)))
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/servers/heartbeat", "application/json", strings.NewReader(`{"id":"nope","players":1}`))
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUnregisterDropsListing(t *testing.T) {
	reg := NewRegistry(time.Minute)
	ts := httptest.NewServer(newMux(reg))
	defer ts.Close()

	id := reg.Register(ServerInfo{Name: "leaving", Address: "x:1"})

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/servers/"+id, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, reg.List(""))
	assert.False(t, reg.Unregister(id))
}

func TestHeartbeatKeepsMatchWhenOmitted(t *testing.T) {
	reg := NewRegistry(time.Minute)
	id := reg.Register(ServerInfo{Name: "t"})

	require.True(t, reg.Heartbeat(id, TableStatus{Players: 1}))

	assert.Equal(t, "waiting", reg.List("")[0].Match)
}
