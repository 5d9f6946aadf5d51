package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (UARTSHIP_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("port", os.Getenv("UARTSHIP_PORT"), &cfg.Port)
	s.setString("file", os.Getenv("UARTSHIP_FILE"), &cfg.SourcePath)
	s.setString("output", os.Getenv("UARTSHIP_OUTPUT"), &cfg.OutputPath)
	s.setString("log-level", os.Getenv("UARTSHIP_LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setDuration("timeout", os.Getenv("UARTSHIP_TIMEOUT"), &cfg.Timeout); err != nil {
		return err
	}
	if err := s.setDuration("pause", os.Getenv("UARTSHIP_PAUSE"), &cfg.Pause); err != nil {
		return err
	}

	if err := s.setIntFromString("baud", os.Getenv("UARTSHIP_BAUD_RATE"), &cfg.BaudRate); err != nil {
		return err
	}
	if err := s.setIntFromString("chunk-size", os.Getenv("UARTSHIP_CHUNK_SIZE"), &cfg.ChunkSize); err != nil {
		return err
	}

	s.setBoolFromString("progress-bar", os.Getenv("UARTSHIP_PROGRESS_BAR"), &cfg.ProgressBar)
	s.setBoolFromString("watch", os.Getenv("UARTSHIP_WATCH"), &cfg.Watch)

	return nil
}
