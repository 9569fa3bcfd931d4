// Package config loads runtime configuration for the despesas terminal client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, optionally seeded from a .env file (LoadDotEnv).
//  3. Optional JSON file selected via -c or -config.
//  4. Command-line flags, which override everything else.
//
// Environment
//
//	DESPESAS_API_URL (fallback VITE_API_URL), DESPESAS_DB_PATH,
//	DESPESAS_TIMEOUT, DESPESAS_HEALTH_INTERVAL, DESPESAS_VERBOSE,
//	DESPESAS_LOG_LEVEL, DESPESAS_LOG_FORMAT, DESPESAS_TIMEZONE,
//	DESPESAS_ADMIN_TOKEN, AMQP_URL, AMQP_EXCHANGE, EXPORT_DIR,
//	S3_REGION, S3_ACCESS_KEY, S3_SECRET_KEY, S3_ENDPOINT, S3_BUCKET, S3_PREFIX
//
// Supported flags
//
//	-a string   backend base URL
//	-d string   local database path
//	-t int      request timeout (seconds)
//	-i int      health check interval (seconds)
//	-v          verbose request logging
//
// # JSON schema
//
// Durations use timex.Duration, so "15s" and integer nanoseconds both work:
//
//	{
//	  "api_url": "https://despesas.example.com",
//	  "timeout": "15s",
//	  "health_interval": "30s",
//	  "s3": {"region": "us-east-1", "bucket": "exports"}
//	}
package config
