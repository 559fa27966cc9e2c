package config

import (
	"flag"
	"os"
	"testing"
	"time"

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
		{name: "Test1 OK", args: []string{"cmd", "-a", "http://desk.example:9000", "-r", "agent", "-t", "10"}, expectPanic: false,
			expected: &Config{ServerBaseURL: "http://desk.example:9000", Role: RoleAgent, RequestTimeout: 10 * time.Second}},
		{name: "Test2 incorrect timeout", args: []string{"cmd", "-a", "http://desk.example:9000", "-t", "abc"}, expectPanic: true, expected: &Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)

			origArgs := os.Args
			t.Cleanup(func() { os.Args = origArgs })
			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Equal(t, tt.expected.ServerBaseURL, config.ServerBaseURL)
				assert.Equal(t, tt.expected.Role, config.Role)
				assert.Equal(t, tt.expected.RequestTimeout, config.RequestTimeout)
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
