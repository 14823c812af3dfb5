package config

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Defaults apply without a file", func(t *testing.T) {
		// When: loading from a path that does not exist
		conf, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

		// Then: every field carries its default
		require.NoError(t, err)
		assert.Equal(t, "info", conf.LogLevel)
		assert.Equal(t, HTTP{
			Port:            "3000",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			IdleTimeout:     30 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		}, conf.HTTP)
		assert.Equal(t, WebSocket{
			Path:           "/ws",
			MaxMessageSize: 4096,
			WriteWait:      10 * time.Second,
			PongWait:       60 * time.Second,
			MaxPending:     256,
		}, conf.WebSocket)
		assert.Equal(t, ":3000", conf.HTTP.Addr())
	})

	t.Run("File values override defaults", func(t *testing.T) {
		path := writeConfig(t, `
log-level: debug
http:
  port: "8081"
websocket:
  path: /play
  pong-wait: 15s
  check-origin: true
`)

		conf, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "8081", conf.HTTP.Port)
		assert.Equal(t, "/play", conf.WebSocket.Path)
		assert.Equal(t, 15*time.Second, conf.WebSocket.PongWait)
		assert.True(t, conf.WebSocket.CheckOrigin)
		assert.Equal(t, 256, conf.WebSocket.MaxPending)
	})

	t.Run("Environment overrides the file", func(t *testing.T) {
		// Given: a file with one port and an env var with another
		path := writeConfig(t, "http:\n  port: \"8081\"\n")
		t.Setenv("PORT", "9000")

		// When: loading
		conf, err := Load(path)

		// Then: the env var wins
		require.NoError(t, err)
		assert.Equal(t, "9000", conf.HTTP.Port)
	})

	t.Run("Invalid values are rejected", func(t *testing.T) {
		path := writeConfig(t, "log-level: loud\nwebsocket:\n  max-pending: -1\n")

		_, err := Load(path)

		require.ErrorIs(t, err, ErrInvalidConfig)
		assert.Contains(t, err.Error(), "log-level")
		assert.Contains(t, err.Error(), "max-pending")
	})
}

func TestMustLoad(t *testing.T) {
	path := writeConfig(t, "http:\n  port: nope\n")

	assert.Panics(t, func() { MustLoad(path) })
}

func validConfig() *Config {
	return &Config{
		LogLevel: "info",
		HTTP: HTTP{
			Port:            "3000",
			ShutdownTimeout: time.Second,
		},
		WebSocket: WebSocket{
			Path:           "/ws",
			MaxMessageSize: 1,
			WriteWait:      time.Second,
			PongWait:       time.Second,
			MaxPending:     1,
		},
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Run("Any port in range is accepted", func(t *testing.T) {
		rapid.Check(t, func(t *rapid.T) {
			conf := validConfig()
			conf.HTTP.Port = strconv.Itoa(rapid.IntRange(0, 65535).Draw(t, "port"))

			if err := conf.Validate(); err != nil {
				t.Fatalf("valid port rejected: %v", err)
			}
		})
	})

	t.Run("Ports out of range are rejected", func(t *testing.T) {
		rapid.Check(t, func(t *rapid.T) {
			conf := validConfig()
			conf.HTTP.Port = strconv.Itoa(rapid.OneOf(rapid.IntMax(-1), rapid.IntMin(65536)).Draw(t, "port"))

			if err := conf.Validate(); err == nil {
				t.Fatalf("port %s accepted", conf.HTTP.Port)
			}
		})
	})

	for _, path := range []string{"", "/", "ws", "/ping", "/healthz"} {
		t.Run("Websocket path "+strconv.Quote(path)+" is rejected", func(t *testing.T) {
			// Given: a config whose websocket path cannot be routed
			conf := validConfig()
			conf.WebSocket.Path = path

			// When: validating
			err := conf.Validate()

			// Then: the path is named in the error
			require.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), "websocket.path")
		})
	}

	t.Run("Reserved path from the file fails Load", func(t *testing.T) {
		path := writeConfig(t, "websocket:\n  path: /healthz\n")

		_, err := Load(path)

		require.ErrorIs(t, err, ErrInvalidConfig)
	})
}
