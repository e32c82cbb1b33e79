// Package config handles configuration for the reference server,
// including defaults, environment, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the post planner server.
//
// Fields:
//   - EndpointAddrGRPC: bind address of the postcard gRPC service.
//   - EndpointAddrHTTP: bind address of the generation HTTP API.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty keeps postcards in memory.
//   - AIProvider / AIAPIKey / AIModel / AIEndpoint: the language model used
//     for phase generation. Without a key generation answers 503.
//   - GenerationTimeout: bound on one generation request.
//   - Debug: debug-level logs and gin debug mode.
type Config struct {
	EndpointAddrGRPC  string
	EndpointAddrHTTP  string
	DatabaseDSN       string
	AIProvider        string
	AIAPIKey          string
	AIModel           string
	AIEndpoint        string
	GenerationTimeout time.Duration
	Debug             bool
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddrGRPC = ":50051"
	c.EndpointAddrHTTP = ":8080"
	c.DatabaseDSN = ""
	c.AIProvider = "openai"
	c.AIAPIKey = ""
	c.AIModel = ""
	c.AIEndpoint = ""
	c.GenerationTimeout = 90 * time.Second
	c.Debug = false
}

// LoadConfig builds a Config by applying defaults, then the environment
// (including a .env file), then an optional JSON file and finally
// command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
