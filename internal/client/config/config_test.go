package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://localhost:8000", c.ServerBaseURL)
	assert.Equal(t, RoleUser, c.Role)
	assert.Equal(t, "deskmate.db", c.StateDBPath)
	assert.Equal(t, "deskmate.log", c.LogFilePath)
	assert.Equal(t, 15*time.Second, c.RequestTimeout)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "http://localhost:8000", cfg.ServerBaseURL)
	assert.Equal(t, RoleUser, cfg.Role)
}
