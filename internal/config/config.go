package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/romario-developer/despesas-pwa/internal/export"
	"github.com/romario-developer/despesas-pwa/internal/months"
)

// Config holds runtime settings for the despesas terminal client.
//
// Units: Timeout and HealthInterval are time.Duration values.
type Config struct {
	APIURL         string
	DBPath         string
	Timeout        time.Duration
	HealthInterval time.Duration
	Verbose        bool

	LogLevel  string
	LogFormat string

	Timezone string

	AMQPURL      string
	AMQPExchange string

	ExportDir  string
	AdminToken string
	S3         export.S3Config
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIURL = ""
	c.DBPath = defaultDBPath()
	c.Timeout = 15 * time.Second
	c.HealthInterval = 30 * time.Second
	c.Verbose = false
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.Timezone = months.DefaultTimezone
	c.AMQPURL = ""
	c.AMQPExchange = "despesas.entries"
	c.ExportDir = "exports"
	c.AdminToken = ""
	c.S3 = export.S3Config{}
}

// S3Enabled reports whether exports should go to a bucket instead of ExportDir.
func (c *Config) S3Enabled() bool {
	return c.S3.Bucket != ""
}

// Load builds a Config by applying defaults, then the environment, then the
// JSON file named by -c/-config, then command-line flags. Later sources take
// precedence over earlier ones. args excludes the program name.
func Load(args []string, getenv func(string) string) (*Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}

	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseEnv(cfg, getenv); err != nil {
		return nil, err
	}
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig reads an optional .env file and then calls Load with os.Args and
// the process environment.
func LoadConfig() (*Config, error) {
	if err := LoadDotEnv(); err != nil {
		return nil, err
	}
	return Load(os.Args[1:], os.Getenv)
}

func defaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return "despesas.db"
	}
	return filepath.Join(dir, "despesas", "despesas.db")
}
