package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           int
	BackendURL     string
	BackendToken   string
	SnapshotPath   string
	RequestTimeout time.Duration
}

// ParseFlags validates flags, falling back to environment variables. A
// .env file in the working directory is loaded first when present.
func ParseFlags(args []string) (Config, error) {
	// Missing .env is the normal case outside development.
	_ = godotenv.Load()

	var cfg Config
	var timeoutSec int

	fs := flag.NewFlagSet("survey-relay", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Relay port")
	fs.StringVar(&cfg.BackendURL, "b", "", "Survey backend base URL")
	fs.IntVar(&timeoutSec, "timeout", 0, "Backend request timeout in seconds")

	// Secrets and local state (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.BackendToken, "token", "", "Backend bearer token (prefer env)")
	fs.StringVar(&cfg.SnapshotPath, "snapshot", "", "Path to the local snapshot file (empty disables persistence)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 8080 // default
		}
	}
	if cfg.BackendURL == "" {
		cfg.BackendURL = os.Getenv("BACKEND_URL")
	}
	if cfg.BackendURL == "" {
		return Config{}, errors.New("backend URL required (use -b or BACKEND_URL env)")
	}

	if cfg.BackendToken == "" {
		cfg.BackendToken = os.Getenv("BACKEND_TOKEN")
	}
	if cfg.SnapshotPath == "" {
		cfg.SnapshotPath = os.Getenv("SNAPSHOT_PATH")
	}

	if timeoutSec == 0 {
		if s := os.Getenv("REQUEST_TIMEOUT_SECONDS"); s != "" {
			sec, err := strconv.Atoi(s)
			if err != nil {
				return Config{}, errors.New("invalid REQUEST_TIMEOUT_SECONDS env variable")
			}
			timeoutSec = sec
		} else {
			timeoutSec = 15 // default
		}
	}
	cfg.RequestTimeout = time.Duration(timeoutSec) * time.Second

	return cfg, nil
}
