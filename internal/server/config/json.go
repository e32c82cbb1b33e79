package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/postplanner/internal/flagx"
	"github.com/dmitrijs2005/postplanner/internal/timex"
	"github.com/tidwall/jsonc"
)

// JsonConfig is the on-disk shape of the server config. It uses
// timex.Duration for interval fields, which allows parsing both string
// values such as "1s" and integer nanoseconds.
type JsonConfig struct {
	EndpointAddrGRPC  string         `json:"endpoint_addr_grpc"`
	EndpointAddrHTTP  string         `json:"endpoint_addr_http"`
	DatabaseDSN       string         `json:"database_dsn"`
	AIProvider        string         `json:"ai_provider"`
	AIAPIKey          string         `json:"ai_api_key"`
	AIModel           string         `json:"ai_model"`
	AIEndpoint        string         `json:"ai_endpoint"`
	GenerationTimeout timex.Duration `json:"generation_timeout"`
	Debug             *bool          `json:"debug"`
}

// parseJson loads configuration values from the JSON file named by the -c
// or -config flag. Without the flag nothing is loaded. Only fields present
// in the file override cfg. The file may carry comments and trailing commas.
// If the file cannot be read or contains invalid JSON, the function panics.
func parseJson(config *Config) {

	// try flags
	jsonConfigFile := flagx.ConfigFile()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(jsonc.ToJSON(file), c)
	if err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.AIProvider, c.AIProvider)
	setString(&config.AIAPIKey, c.AIAPIKey)
	setString(&config.AIModel, c.AIModel)
	setString(&config.AIEndpoint, c.AIEndpoint)
	if c.GenerationTimeout.Duration > 0 {
		config.GenerationTimeout = c.GenerationTimeout.Duration
	}
	if c.Debug != nil {
		config.Debug = *c.Debug
	}
}
