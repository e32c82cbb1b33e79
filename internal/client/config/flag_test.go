package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"cmd", "-a", "127.0.0.1:9090", "-g", "http://gen:1", "-d", "x.db",
				"-i", "10", "-w", "500", "-t", "4", "-l", "out.log"},
			expected: &Config{
				ServerEndpointAddr:  "127.0.0.1:9090",
				GenerationURL:       "http://gen:1",
				DatabaseDSN:         "x.db",
				OnlineCheckInterval: 10 * time.Second,
				AutosaveDelay:       500 * time.Millisecond,
				RequestTimeout:      4 * time.Second,
				LogFile:             "out.log",
			},
		},
		{
			name: "unknown flags are ignored",
			args: []string{"cmd", "-x", "1", "--a=host:1", "-c", "file.json"},
			expected: &Config{
				ServerEndpointAddr: "host:1",
			},
		},
		{name: "incorrect check interval", args: []string{"cmd", "-i", "abc"}, expectPanic: true, expected: &Config{}},
		{name: "incorrect autosave delay", args: []string{"cmd", "-w", "soon"}, expectPanic: true, expected: &Config{}},
	}

	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
