// Package config loads runtime configuration for the planner client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config. Comments and trailing
//     commas are allowed; fields left out keep their defaults.
//  3. Command-line flags, which override earlier values.
//
// # JSON schema
//
//	{
//	  // postcard service
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "generation_url": "http://127.0.0.1:8080",
//	  "database_dsn": "postplanner.db",
//	  "online_check_interval": "3s",
//	  "autosave_delay": "2s",
//	  "request_timeout": "10s",
//	  "generation_timeout": "2m",
//	  "log_file": "postplanner.log",
//	}
package config
