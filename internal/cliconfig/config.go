package cliconfig

import (
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/bft-labs/uartship/internal/domain"
)

// Defaults for the serial link and files.
const (
	DefaultSourcePath = "send.txt"
	DefaultOutputPath = "received.txt"
	DefaultBaudRate   = 2400
	DefaultTimeout    = 5 * time.Second
	DefaultChunkSize  = 512
	DefaultPause      = time.Second
	DefaultLogLevel   = "info"
)

// Config holds CLI configuration for uartship.
type Config struct {
	Port       string
	SourcePath string
	OutputPath string

	BaudRate  int
	Timeout   time.Duration
	ChunkSize int
	Pause     time.Duration

	ProgressBar bool
	Watch       bool
	LogLevel    string
}

// DefaultPort returns the conventional first USB serial adapter name
// for the running OS.
func DefaultPort() string {
	if runtime.GOOS == "windows" {
		return "COM4"
	}
	return "/dev/ttyUSB0"
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Port:       DefaultPort(),
		SourcePath: DefaultSourcePath,
		OutputPath: DefaultOutputPath,
		BaudRate:   DefaultBaudRate,
		Timeout:    DefaultTimeout,
		ChunkSize:  DefaultChunkSize,
		Pause:      DefaultPause,
		LogLevel:   DefaultLogLevel,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("%w: port is required", domain.ErrInvalidConfig)
	}
	if c.BaudRate <= 0 {
		return fmt.Errorf("%w: baud rate must be positive", domain.ErrInvalidConfig)
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk size must be positive", domain.ErrInvalidConfig)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: timeout must not be negative", domain.ErrInvalidConfig)
	}
	if c.Pause < 0 {
		return fmt.Errorf("%w: pause must not be negative", domain.ErrInvalidConfig)
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log level: %v", domain.ErrInvalidConfig, err)
	}
	return nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
// Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
