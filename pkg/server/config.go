// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/devsecops/zero-trust-pipeline/pkg/defaults"
	ztperrors "github.com/devsecops/zero-trust-pipeline/pkg/errors"
)

// Config holds server configuration
type Config struct {
	// Server identity
	Name    string
	Version string

	// Server configuration
	Address string `env:"ADDRESS"`
	Port    int    `env:"PORT"`

	// RootPage serves the informational HTML page on GET /.
	RootPage bool `env:"ROOT_PAGE"`

	// LogLevel is the slog level name (debug, info, warn, error).
	LogLevel string `env:"LOG_LEVEL"`

	// Rate limiting configuration for the API router
	RateLimit      float64 `env:"RATE_LIMIT"`       // requests per second
	RateLimitBurst int     `env:"RATE_LIMIT_BURST"` // burst size

	// BodyLimit is the maximum decoded JSON request body in bytes.
	BodyLimit int64 `env:"BODY_LIMIT"`

	// Timeouts
	ReadTimeout       time.Duration `env:"READ_TIMEOUT"`
	ReadHeaderTimeout time.Duration `env:"READ_HEADER_TIMEOUT"`
	WriteTimeout      time.Duration `env:"WRITE_TIMEOUT"`
	IdleTimeout       time.Duration `env:"IDLE_TIMEOUT"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

// NewConfig returns a Config with defaults overridden by the process environment.
// Unset or empty variables keep their defaults.
func NewConfig() (*Config, error) {
	return parseConfig(nil)
}

// defaultConfig returns sensible defaults
func defaultConfig() *Config {
	return &Config{
		Name:              "server",
		Version:           "undefined",
		Address:           "",
		Port:              defaults.ServerPort,
		RootPage:          true,
		LogLevel:          "info",
		RateLimit:         defaults.RateLimit,
		RateLimitBurst:    defaults.RateLimitBurst,
		BodyLimit:         defaults.BodyLimit,
		ReadTimeout:       defaults.ServerReadTimeout,
		ReadHeaderTimeout: defaults.ServerReadHeaderTimeout,
		WriteTimeout:      defaults.ServerWriteTimeout,
		IdleTimeout:       defaults.ServerIdleTimeout,
		ShutdownTimeout:   defaults.ServerShutdownTimeout,
	}
}

// parseConfig applies environ on top of the defaults. A nil environ reads the
// process environment. Empty values keep their defaults.
func parseConfig(environ map[string]string) (*Config, error) {
	if environ == nil {
		environ = env.ToMap(os.Environ())
	}
	set := make(map[string]string, len(environ))
	for k, v := range environ {
		if v != "" {
			set[k] = v
		}
	}

	cfg := defaultConfig()
	if err := env.ParseWithOptions(cfg, env.Options{Environment: set}); err != nil {
		return nil, ztperrors.Wrap(ztperrors.ErrCodeInvalidConfig, "failed to parse environment configuration", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks value ranges that the environment parser cannot express.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > defaults.ServerMaxPort {
		return ztperrors.NewWithContext(ztperrors.ErrCodeInvalidConfig,
			fmt.Sprintf("port must be between 0 and %d", defaults.ServerMaxPort),
			map[string]any{"port": c.Port})
	}
	if c.RateLimit < 0 || c.RateLimitBurst < 0 {
		return ztperrors.NewWithContext(ztperrors.ErrCodeInvalidConfig, "rate limit values must not be negative",
			map[string]any{"rateLimit": c.RateLimit, "rateLimitBurst": c.RateLimitBurst})
	}
	if c.BodyLimit <= 0 {
		return ztperrors.NewWithContext(ztperrors.ErrCodeInvalidConfig, "body limit must be positive",
			map[string]any{"bodyLimit": c.BodyLimit})
	}
	if c.ShutdownTimeout <= 0 {
		return ztperrors.NewWithContext(ztperrors.ErrCodeInvalidConfig, "shutdown timeout must be positive",
			map[string]any{"shutdownTimeout": c.ShutdownTimeout.String()})
	}
	return nil
}

// StartupMessage is the line written to stdout once the listener is bound.
func (c *Config) StartupMessage(port int) string {
	if c.RootPage {
		return fmt.Sprintf("Server is running securely on port %d", port)
	}
	return fmt.Sprintf("Server running on port %d", port)
}
