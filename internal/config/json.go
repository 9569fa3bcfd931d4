package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/romario-developer/despesas-pwa/internal/flagx"
	"github.com/romario-developer/despesas-pwa/internal/timex"
)

// JsonConfig is a DTO used only for JSON unmarshalling. Pointer and zero
// values mean "not set" so the file overlays earlier sources field by field.
type JsonConfig struct {
	APIURL         string          `json:"api_url"`
	DBPath         string          `json:"db_path"`
	Timeout        *timex.Duration `json:"timeout"`
	HealthInterval *timex.Duration `json:"health_interval"`
	Verbose        *bool           `json:"verbose"`
	LogLevel       string          `json:"log_level"`
	LogFormat      string          `json:"log_format"`
	Timezone       string          `json:"timezone"`
	AMQPURL        string          `json:"amqp_url"`
	AMQPExchange   string          `json:"amqp_exchange"`
	ExportDir      string          `json:"export_dir"`
	AdminToken     string          `json:"admin_token"`
	S3             *jsonS3         `json:"s3"`
}

type jsonS3 struct {
	Region    string `json:"region"`
	AccessKey string `json:"access_key"`
	SecretKey string `json:"secret_key"`
	Endpoint  string `json:"endpoint"`
	Bucket    string `json:"bucket"`
	Prefix    string `json:"prefix"`
}

// parseJson overlays cfg with the file named by -c or -config, if any.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&cfg.APIURL, jc.APIURL)
	setString(&cfg.DBPath, jc.DBPath)
	if jc.Timeout != nil {
		cfg.Timeout = jc.Timeout.Duration
	}
	if jc.HealthInterval != nil {
		cfg.HealthInterval = jc.HealthInterval.Duration
	}
	if jc.Verbose != nil {
		cfg.Verbose = *jc.Verbose
	}
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)
	setString(&cfg.Timezone, jc.Timezone)
	setString(&cfg.AMQPURL, jc.AMQPURL)
	setString(&cfg.AMQPExchange, jc.AMQPExchange)
	setString(&cfg.ExportDir, jc.ExportDir)
	setString(&cfg.AdminToken, jc.AdminToken)

	if s := jc.S3; s != nil {
		setString(&cfg.S3.Region, s.Region)
		setString(&cfg.S3.AccessKey, s.AccessKey)
		setString(&cfg.S3.SecretKey, s.SecretKey)
		setString(&cfg.S3.Endpoint, s.Endpoint)
		setString(&cfg.S3.Bucket, s.Bucket)
		setString(&cfg.S3.Prefix, s.Prefix)
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
