package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatServerEntry(t *testing.T) {
	tests := []struct {
		name  string
		entry ServerEntry
		want  string
	}{
		{
			name:  "waiting endless",
			entry: ServerEntry{Name: "table", Players: 1, MaxPlayers: 6, Arena: "classic", Match: "waiting"},
			want:  "table  1/6  classic  endless  waiting",
		},
		{
			name:  "playing to a target",
			entry: ServerEntry{Name: "league", Players: 2, MaxPlayers: 4, Arena: "classic", TargetScore: 11, Score: [2]int{7, 3}, Match: "playing"},
			want:  "league  2/4  classic  first to 11  playing 7-3",
		},
		{
			name:  "full",
			entry: ServerEntry{Name: "busy", Players: 2, MaxPlayers: 2, Arena: "classic", Match: "finished", Score: [2]int{11, 9}},
			want:  "busy  2/2  classic  endless  finished 11-9  FULL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatServerEntry(tt.entry))
		})
	}
}

func TestResolveAddress(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "localhost:7373"},
		{"  ", "localhost:7373"},
		{"pong.example.net", "pong.example.net:7373"},
		{"pong.example.net:9000", "pong.example.net:9000"},
		{":9000", "localhost:9000"},
		{"10.0.0.2:", "10.0.0.2:7373"},
		{"[::1]:9000", "[::1]:9000"},
		{"[::1]", "[::1]:7373"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveAddress(tt.input, "localhost", "7373"))
		})
	}
}
