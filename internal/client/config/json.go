package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/postplanner/internal/flagx"
	"github.com/dmitrijs2005/postplanner/internal/timex"
	"github.com/tidwall/jsonc"
)

// JsonConfig is the on-disk shape of the client config. Durations accept
// "3s" style strings or integer nanoseconds.
type JsonConfig struct {
	ServerEndpointAddr  string         `json:"server_endpoint_addr"`
	GenerationURL       string         `json:"generation_url"`
	DatabaseDSN         string         `json:"database_dsn"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	AutosaveDelay       timex.Duration `json:"autosave_delay"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
	GenerationTimeout   timex.Duration `json:"generation_timeout"`
	LogFile             string         `json:"log_file"`
}

// parseJson overlays cfg with the fields set in the file named by -c or
// -config. The file may carry comments and trailing commas. Read and decode
// errors panic.
func parseJson(cfg *Config) {
	path := flagx.ConfigFile()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(jsonc.ToJSON(data), &jc); err != nil {
		panic(err)
	}

	setString(&cfg.ServerEndpointAddr, jc.ServerEndpointAddr)
	setString(&cfg.GenerationURL, jc.GenerationURL)
	setString(&cfg.DatabaseDSN, jc.DatabaseDSN)
	setString(&cfg.LogFile, jc.LogFile)
	if jc.OnlineCheckInterval.Duration > 0 {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.AutosaveDelay.Duration > 0 {
		cfg.AutosaveDelay = jc.AutosaveDelay.Duration
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.GenerationTimeout.Duration > 0 {
		cfg.GenerationTimeout = jc.GenerationTimeout.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
