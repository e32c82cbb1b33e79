package config

import "time"

// Config holds runtime settings for the planner client.
//
// Fields:
//   - ServerEndpointAddr: host:port of the postcard gRPC service.
//   - GenerationURL: base URL of the generation HTTP service.
//   - DatabaseDSN: SQLite file holding editor backups.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - AutosaveDelay: quiet period before an editor change is committed.
//   - RequestTimeout: bound on a single CRUD call.
//   - GenerationTimeout: bound on a bulk generation call.
//   - LogFile: where logs go; the REPL owns stdout.
type Config struct {
	ServerEndpointAddr  string
	GenerationURL       string
	DatabaseDSN         string
	OnlineCheckInterval time.Duration
	AutosaveDelay       time.Duration
	RequestTimeout      time.Duration
	GenerationTimeout   time.Duration
	LogFile             string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.GenerationURL = "http://127.0.0.1:8080"
	c.DatabaseDSN = "postplanner.db"
	c.OnlineCheckInterval = 3 * time.Second
	c.AutosaveDelay = 2000 * time.Millisecond
	c.RequestTimeout = 10 * time.Second
	c.GenerationTimeout = 2 * time.Minute
	c.LogFile = "postplanner.log"
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
