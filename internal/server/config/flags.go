package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/graphauth/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-m string   store backend: memory, sqlite, postgres, s3
//	-d string   PostgreSQL DSN
//	-f string   SQLite database file
//	-s string   grant token HMAC secret key
//	-t int      grant token validity, minutes
//	-l int      lockout delay, seconds
//	-x int      login session TTL, minutes
//	-q int      rate limit, requests per second
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-v string   log level
//
// Only the flags above are passed to the parser, so -c/-config and flags
// of other components never collide.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-a", "-m", "-d", "-f", "-s", "-t", "-l", "-x", "-q", "-u", "-p", "-b", "-g", "-e", "-v",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.StoreBackend, "m", config.StoreBackend, "store backend (memory, sqlite, postgres, s3)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SQLitePath, "f", config.SQLitePath, "sqlite database file")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	tokenValidity := fs.Int("t", int(config.TokenValidityDuration.Minutes()), "token_validity_duration (in minutes)")
	lockoutDelay := fs.Int("l", int(config.LockoutDelay.Seconds()), "lockout_delay (in seconds)")
	sessionTTL := fs.Int("x", int(config.SessionTTL.Minutes()), "session_ttl (in minutes)")

	fs.IntVar(&config.RateLimit, "q", config.RateLimit, "requests per second")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 root bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 root region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.LogLevel, "v", config.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Minute
	config.LockoutDelay = time.Duration(*lockoutDelay) * time.Second
	config.SessionTTL = time.Duration(*sessionTTL) * time.Minute
}
