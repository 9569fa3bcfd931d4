package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/romario-developer/despesas-pwa/internal/client"
	"github.com/romario-developer/despesas-pwa/internal/logging"
)

// Validate returns an error listing every problem found in c.
func (c *Config) Validate() error {
	var errors []string

	if _, _, err := client.ResolveBaseURL(c.APIURL); err != nil {
		errors = append(errors, fmt.Sprintf("invalid API URL '%s': %v", c.APIURL, err))
	}

	if strings.TrimSpace(c.DBPath) == "" {
		errors = append(errors, "database path cannot be empty")
	}

	if c.Timeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid timeout %v: must be at least 1 second", c.Timeout))
	}
	if c.HealthInterval < time.Second {
		errors = append(errors, fmt.Sprintf("invalid health interval %v: must be at least 1 second", c.HealthInterval))
	}

	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, err.Error())
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be text or json", c.LogFormat))
	}

	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errors = append(errors, fmt.Sprintf("invalid timezone '%s': %v", c.Timezone, err))
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
	}

	if c.S3Enabled() {
		if c.S3.Region == "" {
			errors = append(errors, "S3 region is required when S3_BUCKET is set")
		}
		if (c.S3.AccessKey == "") != (c.S3.SecretKey == "") {
			errors = append(errors, "S3 access key and secret key must be provided together")
		}
	} else if strings.TrimSpace(c.ExportDir) == "" {
		errors = append(errors, "export directory cannot be empty when S3 is not configured")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}
