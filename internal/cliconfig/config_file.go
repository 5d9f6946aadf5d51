package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	Port        string `toml:"port"`
	SourcePath  string `toml:"file"`
	OutputPath  string `toml:"output"`
	BaudRate    int    `toml:"baud_rate"`
	Timeout     string `toml:"timeout"`
	ChunkSize   int    `toml:"chunk_size"`
	Pause       string `toml:"pause"`
	ProgressBar *bool  `toml:"progress_bar"`
	Watch       *bool  `toml:"watch"`
	LogLevel    string `toml:"log_level"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.uartship/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".uartship", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("port", fc.Port, &cfg.Port)
	s.setString("file", fc.SourcePath, &cfg.SourcePath)
	s.setString("output", fc.OutputPath, &cfg.OutputPath)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	if err := s.setDuration("timeout", fc.Timeout, &cfg.Timeout); err != nil {
		return err
	}
	if err := s.setDuration("pause", fc.Pause, &cfg.Pause); err != nil {
		return err
	}

	s.setInt("baud", fc.BaudRate, &cfg.BaudRate)
	s.setInt("chunk-size", fc.ChunkSize, &cfg.ChunkSize)

	s.setBool("progress-bar", fc.ProgressBar, &cfg.ProgressBar)
	s.setBool("watch", fc.Watch, &cfg.Watch)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
