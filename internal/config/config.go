// Package config loads the host soil-probe settings from the environment,
// optionally seeded from a .env file.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"somo1-go/drivers/somo1"
	"somo1-go/errcode"

	"github.com/joho/godotenv"
)

// Environment keys.
const (
	EnvBus       = "SOMO1_I2C_BUS"
	EnvPrecision = "SOMO1_PRECISION"
	EnvRaw0      = "SOMO1_RAW_0"
	EnvRaw100    = "SOMO1_RAW_100"
	EnvInterval  = "SOMO1_INTERVAL"
	EnvLogLevel  = "SOMO1_LOG_LEVEL"

	EnvInfluxURL    = "INFLUX_URL"
	EnvInfluxToken  = "INFLUX_TOKEN"
	EnvInfluxOrg    = "INFLUX_ORG"
	EnvInfluxBucket = "INFLUX_BUCKET"
)

const (
	defaultInterval = 10 * time.Second
	defaultLogLevel = "info"
)

// Influx is the optional telemetry sink. Disabled when URL is empty.
type Influx struct {
	URL    string
	Token  string
	Org    string
	Bucket string
}

func (i Influx) Enabled() bool { return i.URL != "" }

// Config is everything cmd/soilprobe needs.
type Config struct {
	Bus         string
	Precision   somo1.Precision
	Calibration somo1.Calibration
	Interval    time.Duration
	LogLevel    string
	Influx      Influx
}

// Load reads files (default ".env") into the environment without overriding
// variables already set, then builds a Config. A missing .env is not an error.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return Config{}, &errcode.E{C: errcode.InvalidParams, Op: "load_env", Msg: f, Err: err}
		}
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv.
func FromEnv(getenv func(string) string) (Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		Bus:         get(EnvBus, ""),
		Calibration: somo1.DefaultCalibration(),
		LogLevel:    strings.ToLower(get(EnvLogLevel, defaultLogLevel)),
		Influx: Influx{
			URL:    get(EnvInfluxURL, ""),
			Token:  get(EnvInfluxToken, ""),
			Org:    get(EnvInfluxOrg, ""),
			Bucket: get(EnvInfluxBucket, ""),
		},
	}

	p, err := ParsePrecision(get(EnvPrecision, "high"))
	if err != nil {
		return Config{}, err
	}
	cfg.Precision = p

	if v := get(EnvRaw0, ""); v != "" {
		if cfg.Calibration.RawAt0Percent, err = parseRaw(EnvRaw0, v); err != nil {
			return Config{}, err
		}
	}
	if v := get(EnvRaw100, ""); v != "" {
		if cfg.Calibration.RawAt100Percent, err = parseRaw(EnvRaw100, v); err != nil {
			return Config{}, err
		}
	}

	cfg.Interval = defaultInterval
	if v := get(EnvInterval, ""); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, &errcode.E{C: errcode.InvalidParams, Op: EnvInterval, Msg: v, Err: err}
		}
		cfg.Interval = d
	}

	if cfg.Influx.Enabled() && (cfg.Influx.Org == "" || cfg.Influx.Bucket == "") {
		return Config{}, &errcode.E{C: errcode.InvalidParams, Op: EnvInfluxURL, Msg: "org and bucket are required"}
	}
	return cfg, nil
}

// ParsePrecision accepts low, medium or high (case-insensitive).
func ParsePrecision(s string) (somo1.Precision, error) {
	switch strings.ToLower(s) {
	case "high":
		return somo1.PrecisionHigh, nil
	case "medium":
		return somo1.PrecisionMedium, nil
	case "low":
		return somo1.PrecisionLow, nil
	}
	return 0, &errcode.E{C: errcode.InvalidParams, Op: EnvPrecision, Msg: s}
}

func parseRaw(key, v string) (int16, error) {
	n, err := strconv.ParseInt(v, 0, 16)
	if err != nil {
		return 0, &errcode.E{C: errcode.InvalidParams, Op: key, Msg: v, Err: err}
	}
	return int16(n), nil
}
