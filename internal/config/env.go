package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads KEY=VALUE pairs from the given files (".env" when none is
// given) into the process environment. Variables that are already set win, and
// missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

func parseEnv(cfg *Config, getenv func(string) string) error {
	get := func(key string) string { return strings.TrimSpace(getenv(key)) }

	if v := get("DESPESAS_API_URL"); v != "" {
		cfg.APIURL = v
	} else if v := get("VITE_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := get("DESPESAS_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := get("DESPESAS_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid DESPESAS_TIMEOUT %q: %w", v, err)
		}
		cfg.Timeout = d
	}
	if v := get("DESPESAS_HEALTH_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid DESPESAS_HEALTH_INTERVAL %q: %w", v, err)
		}
		cfg.HealthInterval = d
	}
	if v := get("DESPESAS_VERBOSE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid DESPESAS_VERBOSE %q: %w", v, err)
		}
		cfg.Verbose = b
	}
	if v := get("DESPESAS_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := get("DESPESAS_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := get("DESPESAS_TIMEZONE"); v != "" {
		cfg.Timezone = v
	}
	if v := get("AMQP_URL"); v != "" {
		cfg.AMQPURL = v
	}
	if v := get("AMQP_EXCHANGE"); v != "" {
		cfg.AMQPExchange = v
	}
	if v := get("EXPORT_DIR"); v != "" {
		cfg.ExportDir = v
	}
	if v := get("DESPESAS_ADMIN_TOKEN"); v != "" {
		cfg.AdminToken = v
	}

	if v := get("S3_REGION"); v != "" {
		cfg.S3.Region = v
	}
	if v := get("S3_ACCESS_KEY"); v != "" {
		cfg.S3.AccessKey = v
	}
	if v := get("S3_SECRET_KEY"); v != "" {
		cfg.S3.SecretKey = v
	}
	if v := get("S3_ENDPOINT"); v != "" {
		cfg.S3.Endpoint = v
	}
	if v := get("S3_BUCKET"); v != "" {
		cfg.S3.Bucket = v
	}
	if v := get("S3_PREFIX"); v != "" {
		cfg.S3.Prefix = v
	}
	return nil
}
