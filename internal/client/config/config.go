package config

import "time"

// Config holds runtime settings for the graphauth CLI.
type Config struct {
	// ServerEndpointAddr is the host:port of the server's gRPC endpoint.
	ServerEndpointAddr string
	// OnlineCheckInterval is how often the CLI pings the server.
	OnlineCheckInterval time.Duration
}

// LoadDefaults populates c with defaults matching the server's.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 5 * time.Second
}

// LoadConfig applies defaults, then the JSON file, then flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
