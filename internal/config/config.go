package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

var ErrInvalidConfig = errors.New("invalid config")

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// reservedPaths are served by the HTTP router itself.
var reservedPaths = map[string]bool{"/ping": true, "/healthz": true}

type Config struct {
	LogLevel  string    `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTP      HTTP      `yaml:"http"`
	WebSocket WebSocket `yaml:"websocket"`
}

type HTTP struct {
	Port            string        `yaml:"port" env:"PORT" env-default:"3000"`
	ReadTimeout     time.Duration `yaml:"read-timeout" env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write-timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout     time.Duration `yaml:"idle-timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"30s"`
	ShutdownTimeout time.Duration `yaml:"shutdown-timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

type WebSocket struct {
	Path           string        `yaml:"path" env:"WS_PATH" env-default:"/ws"`
	MaxMessageSize int64         `yaml:"max-message-size" env:"WS_MAX_MESSAGE_SIZE" env-default:"4096"`
	WriteWait      time.Duration `yaml:"write-wait" env:"WS_WRITE_WAIT" env-default:"10s"`
	PongWait       time.Duration `yaml:"pong-wait" env:"WS_PONG_WAIT" env-default:"60s"`
	MaxPending     int           `yaml:"max-pending" env:"WS_MAX_PENDING" env-default:"256"`
	CheckOrigin    bool          `yaml:"check-origin" env:"WS_CHECK_ORIGIN" env-default:"false"`
}

// Load reads the config file at path with environment overrides. Without a
// file only the environment and the defaults are used.
func Load(path string) (*Config, error) {
	config := &Config{}

	var err error
	if fileExists(path) {
		err = cleanenv.ReadConfig(path, config)
	} else {
		err = cleanenv.ReadEnv(config)
	}

	if err != nil {
		return nil, fmt.Errorf("unable to load config: %w", err)
	}

	if err = config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func (that *Config) Validate() error {
	var errs []error

	if !logLevels[strings.ToLower(that.LogLevel)] {
		errs = append(errs, fmt.Errorf("log-level %q is not one of debug, info, warn, error", that.LogLevel))
	}

	if port, err := strconv.Atoi(that.HTTP.Port); err != nil || port < 0 || port > 65535 {
		errs = append(errs, fmt.Errorf("http.port %q is not a valid port", that.HTTP.Port))
	}

	if !strings.HasPrefix(that.WebSocket.Path, "/") || that.WebSocket.Path == "/" {
		errs = append(errs, fmt.Errorf("websocket.path %q must start with / and not be the root", that.WebSocket.Path))
	}

	if reservedPaths[that.WebSocket.Path] {
		errs = append(errs, fmt.Errorf("websocket.path %q is already served by the http router", that.WebSocket.Path))
	}

	if that.WebSocket.MaxMessageSize <= 0 {
		errs = append(errs, errors.New("websocket.max-message-size must be positive"))
	}

	if that.WebSocket.MaxPending <= 0 {
		errs = append(errs, errors.New("websocket.max-pending must be positive"))
	}

	if that.WebSocket.WriteWait <= 0 || that.WebSocket.PongWait <= 0 {
		errs = append(errs, errors.New("websocket.write-wait and websocket.pong-wait must be positive"))
	}

	if that.HTTP.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("http.shutdown-timeout must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}

	return nil
}

func (that *HTTP) Addr() string {
	return ":" + that.Port
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}

	info, err := os.Stat(path)

	return err == nil && !info.IsDir()
}
