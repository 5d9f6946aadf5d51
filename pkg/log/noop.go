package log

// NoopLogger drops every line. The zero value is ready to use.
type NoopLogger struct{}

// NewNoopLogger returns the logger components fall back to when none is given.
func NewNoopLogger() Logger {
	return NoopLogger{}
}

func (NoopLogger) Debug(string, ...Field) {}
func (NoopLogger) Info(string, ...Field)  {}
func (NoopLogger) Warn(string, ...Field)  {}
func (NoopLogger) Error(string, ...Field) {}
