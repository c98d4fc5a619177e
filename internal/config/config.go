// Package config loads process settings from flags, the environment and an
// optional .env file.
package config

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const ServiceName = "discussion"

// DefaultCORSOrigins are the web clients allowed when CORS_ORIGINS is unset.
const DefaultCORSOrigins = "http://localhost:5173,https://b9a12-client-side-44fahadhasan.netlify.app"

type Config struct {
	Addr     string
	DiagAddr string
	Routes   bool

	MongoURI  string
	DBName    string
	DBTimeout time.Duration

	TokenSecret string
	CORSOrigins []string

	ShutdownTimeout time.Duration
	LogDevelopment  bool
}

// Load reads .env (a missing file is fine), then parses args with defaults
// taken from the environment. args excludes the program name.
func Load(args []string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	fs := flag.NewFlagSet(ServiceName, flag.ContinueOnError)

	var origins string
	fs.BoolVar(&cfg.Routes, "routes", getEnvBool("ROUTES", false), "Generate router documentation")
	fs.StringVar(&cfg.Addr, "addr", ":"+getEnv("PORT", "5003"), "application address")
	fs.StringVar(&cfg.DiagAddr, "diag_addr", getEnv("DIAG_ADDR", ":9999"), "diag address")
	fs.StringVar(&cfg.MongoURI, "mongodb_uri", getEnv("MONGODB_URI", mongoURI(
		getEnv("DB_USER", ""), getEnv("DB_PASS", ""), getEnv("DB_HOST", ""),
	)), "MongoDB connection string")
	fs.StringVar(&cfg.DBName, "db_name", getEnv("DB_NAME", ServiceName), "database name")
	fs.DurationVar(&cfg.DBTimeout, "db_timeout", getEnvDuration("DB_TIMEOUT", 10*time.Second), "per-operation database timeout")
	fs.StringVar(&origins, "cors_origins", getEnv("CORS_ORIGINS", DefaultCORSOrigins), "comma-separated allowed origins")
	fs.DurationVar(&cfg.ShutdownTimeout, "shutdown_timeout", getEnvDuration("SHUTDOWN_TIMEOUT", 15*time.Second), "graceful shutdown timeout")
	fs.BoolVar(&cfg.LogDevelopment, "log_development", getEnvBool("LOG_DEVELOPMENT", false), "human-readable development logs")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.TokenSecret = getEnv("ACCESS_TOKEN_SECRET", "")
	cfg.CORSOrigins = splitList(origins)

	// -routes only prints the route table and never touches the database.
	if cfg.Routes {
		return cfg, nil
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.MongoURI == "" {
		return errors.New("missing database config: provide MONGODB_URI or DB_USER/DB_PASS/DB_HOST")
	}
	if c.TokenSecret == "" {
		return errors.New("missing ACCESS_TOKEN_SECRET")
	}
	if c.DBTimeout <= 0 {
		return fmt.Errorf("invalid db timeout %s", c.DBTimeout)
	}

	return nil
}

// mongoURI builds an Atlas SRV connection string. Any missing part leaves it
// empty and validation reports it.
func mongoURI(user, pass, host string) string {
	if user == "" || pass == "" || host == "" {
		return ""
	}

	u := &url.URL{
		Scheme:   "mongodb+srv",
		User:     url.UserPassword(user, pass),
		Host:     host,
		Path:     "/",
		RawQuery: "retryWrites=true&w=majority",
	}

	return u.String()
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}

func getEnv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}

	return def
}

func getEnvBool(k string, def bool) bool {
	v, err := strconv.ParseBool(getEnv(k, ""))
	if err != nil {
		return def
	}

	return v
}

func getEnvDuration(k string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(k, ""))
	if err != nil {
		return def
	}

	return d
}
