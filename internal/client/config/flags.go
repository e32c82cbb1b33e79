package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/postplanner/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   postcard service address
//	-g string   generation service base URL
//	-d string   SQLite database file
//	-i int      online check interval (seconds)
//	-w int      autosave delay (milliseconds)
//	-t int      request timeout (seconds)
//	-l string   log file
//
// Only these flags are read from os.Args, so other loaders may define theirs.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-g", "-d", "-i", "-w", "-t", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port of the postcard service")
	fs.StringVar(&cfg.GenerationURL, "g", cfg.GenerationURL, "generation service base URL")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "local SQLite database file")
	fs.StringVar(&cfg.LogFile, "l", cfg.LogFile, "log file")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	autosaveDelay := fs.Int("w", int(cfg.AutosaveDelay.Milliseconds()), "autosave delay (in milliseconds)")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
	cfg.AutosaveDelay = time.Duration(*autosaveDelay) * time.Millisecond
	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
