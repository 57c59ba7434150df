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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ztperrors "github.com/devsecops/zero-trust-pipeline/pkg/errors"
)

func TestParseConfig(t *testing.T) {
	t.Run("default config", func(t *testing.T) {
		cfg, err := parseConfig(map[string]string{})
		require.NoError(t, err)

		assert.Empty(t, cfg.Address)
		assert.Equal(t, 3000, cfg.Port)
		assert.True(t, cfg.RootPage)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.InDelta(t, 100, cfg.RateLimit, 0)
		assert.Equal(t, 200, cfg.RateLimitBurst)
		assert.Equal(t, int64(100*1024), cfg.BodyLimit)
		assert.Equal(t, 10*time.Second, cfg.ReadTimeout)
		assert.Equal(t, 5*time.Second, cfg.ReadHeaderTimeout)
		assert.Equal(t, 30*time.Second, cfg.WriteTimeout)
		assert.Equal(t, 120*time.Second, cfg.IdleTimeout)
		assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	})

	t.Run("custom values from environment", func(t *testing.T) {
		cfg, err := parseConfig(map[string]string{
			"PORT":             "5050",
			"ADDRESS":          "127.0.0.1",
			"ROOT_PAGE":        "false",
			"LOG_LEVEL":        "debug",
			"RATE_LIMIT":       "2.5",
			"RATE_LIMIT_BURST": "5",
			"BODY_LIMIT":       "2048",
			"SHUTDOWN_TIMEOUT": "3s",
		})
		require.NoError(t, err)

		assert.Equal(t, 5050, cfg.Port)
		assert.Equal(t, "127.0.0.1", cfg.Address)
		assert.False(t, cfg.RootPage)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.InDelta(t, 2.5, cfg.RateLimit, 0)
		assert.Equal(t, 5, cfg.RateLimitBurst)
		assert.Equal(t, int64(2048), cfg.BodyLimit)
		assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	})

	t.Run("empty port uses default", func(t *testing.T) {
		cfg, err := parseConfig(map[string]string{"PORT": ""})
		require.NoError(t, err)
		assert.Equal(t, 3000, cfg.Port)
	})

	t.Run("invalid values are rejected", func(t *testing.T) {
		tests := map[string]map[string]string{
			"non-numeric port":    {"PORT": "invalid"},
			"port out of range":   {"PORT": "70000"},
			"negative port":       {"PORT": "-1"},
			"non-boolean page":    {"ROOT_PAGE": "maybe"},
			"zero body limit":     {"BODY_LIMIT": "0"},
			"negative rate limit": {"RATE_LIMIT": "-1"},
			"bad duration":        {"IDLE_TIMEOUT": "soon"},
		}
		for name, environ := range tests {
			t.Run(name, func(t *testing.T) {
				_, err := parseConfig(environ)
				require.Error(t, err)
				assert.Equal(t, ztperrors.ErrCodeInvalidConfig, ztperrors.CodeOf(err))
			})
		}
	})
}

func TestNewConfig_ReadsProcessEnvironment(t *testing.T) {
	t.Setenv("PORT", "5050")
	t.Setenv("ROOT_PAGE", "false")

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, 5050, cfg.Port)
	assert.False(t, cfg.RootPage)
}

func TestNewConfig_EmptyPortUsesDefault(t *testing.T) {
	t.Setenv("PORT", "")

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Port)
}

func TestConfig_StartupMessage(t *testing.T) {
	cfg := defaultConfig()
	assert.Equal(t, "Server is running securely on port 3000", cfg.StartupMessage(3000))

	cfg.RootPage = false
	assert.Equal(t, "Server running on port 5050", cfg.StartupMessage(5050))
}
