package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/postplanner/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-h string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN; empty keeps postcards in memory
//	-p string   AI provider: openai or anthropic
//	-k string   AI API key
//	-m string   AI model
//	-e string   AI endpoint base URL
//	-t int      generation timeout, seconds
//	-v          debug logging
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-h", "-d", "-p", "-k", "-m", "-e", "-t", "-v"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "gRPC address and port")
	fs.StringVar(&config.EndpointAddrHTTP, "h", config.EndpointAddrHTTP, "HTTP address and port")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.AIProvider, "p", config.AIProvider, "AI provider")
	fs.StringVar(&config.AIAPIKey, "k", config.AIAPIKey, "AI API key")
	fs.StringVar(&config.AIModel, "m", config.AIModel, "AI model")
	fs.StringVar(&config.AIEndpoint, "e", config.AIEndpoint, "AI endpoint")
	fs.BoolVar(&config.Debug, "v", config.Debug, "debug logging")

	generationTimeout := fs.Int("t", int(config.GenerationTimeout.Seconds()), "generation timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.GenerationTimeout = time.Duration(*generationTimeout) * time.Second
}
