package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment variables that override the file and defaults.
const (
	EnvAddr            = "TECHCENSUS_ADDR"
	EnvReadTimeout     = "TECHCENSUS_READ_TIMEOUT"
	EnvWriteTimeout    = "TECHCENSUS_WRITE_TIMEOUT"
	EnvShutdownTimeout = "TECHCENSUS_SHUTDOWN_TIMEOUT"
	EnvRateLimit       = "TECHCENSUS_RATE_LIMIT"
	EnvRateBurst       = "TECHCENSUS_RATE_BURST"
	EnvCORSOrigins     = "TECHCENSUS_CORS_ORIGINS"
	EnvDataPath        = "TECHCENSUS_DATA_PATH"
	EnvLogLevel        = "TECHCENSUS_LOG_LEVEL"
	EnvLogPretty       = "TECHCENSUS_LOG_PRETTY"
)

// applyEnv overrides config with any TECHCENSUS_* variables that are set.
func applyEnv(c *Config) error {
	bindings := []struct {
		name string
		set  func(string) error
	}{
		{EnvAddr, setString(&c.Server.Addr)},
		{EnvReadTimeout, setDuration(&c.Server.ReadTimeout)},
		{EnvWriteTimeout, setDuration(&c.Server.WriteTimeout)},
		{EnvShutdownTimeout, setDuration(&c.Server.ShutdownTimeout)},
		{EnvRateLimit, setFloat(&c.Server.RateLimit)},
		{EnvRateBurst, setInt(&c.Server.RateBurst)},
		{EnvCORSOrigins, setList(&c.Server.CORSOrigins)},
		{EnvDataPath, setString(&c.Data.Path)},
		{EnvLogLevel, setString(&c.Logging.Level)},
		{EnvLogPretty, setBool(&c.Logging.Pretty)},
	}

	for _, b := range bindings {
		v, ok := os.LookupEnv(b.name)
		if !ok {
			continue
		}
		if err := b.set(v); err != nil {
			return fmt.Errorf("%s: %w", b.name, err)
		}
	}
	return nil
}

func setString(dst *string) func(string) error {
	return func(v string) error {
		*dst = v
		return nil
	}
}

func setDuration(dst *time.Duration) func(string) error {
	return func(v string) error {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid duration format: %w", err)
		}
		*dst = d
		return nil
	}
}

func setFloat(dst *float64) func(string) error {
	return func(v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid float format: %w", err)
		}
		*dst = f
		return nil
	}
}

func setInt(dst *int) func(string) error {
	return func(v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid integer format: %w", err)
		}
		*dst = n
		return nil
	}
}

func setBool(dst *bool) func(string) error {
	return func(v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid boolean format: %w", err)
		}
		*dst = b
		return nil
	}
}

// setList splits on commas and drops blank entries.
func setList(dst *[]string) func(string) error {
	return func(v string) error {
		var items []string
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				items = append(items, s)
			}
		}
		*dst = items
		return nil
	}
}
