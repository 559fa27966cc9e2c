package config

import "time"

// Role selects which portal the client renders and which session token it
// uses. The two portals never share a session.
type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

// Config holds runtime settings for the deskmate client.
//
// Fields:
//   - ServerBaseURL: origin of the help-desk REST backend.
//   - Role: portal to render ("user" or "agent").
//   - StateDBPath: sqlite file holding session tokens and selected ids.
//   - LogFilePath: destination for structured logs (stdout is the TUI's).
//   - RequestTimeout: per-request HTTP client timeout.
type Config struct {
	ServerBaseURL  string
	Role           Role
	StateDBPath    string
	LogFilePath    string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:8000"
	c.Role = RoleUser
	c.StateDBPath = "deskmate.db"
	c.LogFilePath = "deskmate.log"
	c.RequestTimeout = 15 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
