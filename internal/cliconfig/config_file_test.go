package cliconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestApplyFileConfig(t *testing.T) {
	trueVal := true
	falseVal := false

	tests := []struct {
		name       string
		fileConfig FileConfig
		changed    map[string]bool
		initial    Config
		expected   Config
		wantErr    bool
	}{
		{
			name: "applies all valid config values",
			fileConfig: FileConfig{
				Port:      "/dev/ttyS1",
				BaudRate:  9600,
				Timeout:   "2s",
				ChunkSize: 64,
				Watch:     &trueVal,
			},
			changed: map[string]bool{},
			initial: Config{},
			expected: Config{
				Port:      "/dev/ttyS1",
				BaudRate:  9600,
				Timeout:   2 * time.Second,
				ChunkSize: 64,
				Watch:     true,
			},
		},
		{
			name: "respects changed flags",
			fileConfig: FileConfig{
				Port:     "/dev/ttyS1",
				BaudRate: 9600,
			},
			changed: map[string]bool{"port": true},
			initial: Config{
				Port:     "COM7",
				BaudRate: 2400,
			},
			expected: Config{
				Port:     "COM7", // unchanged because flag was set
				BaudRate: 9600,
			},
		},
		{
			name: "zero values keep defaults",
			fileConfig: FileConfig{
				BaudRate:  0,
				ChunkSize: -5,
			},
			changed:  map[string]bool{},
			initial:  Config{BaudRate: 2400, ChunkSize: 512},
			expected: Config{BaudRate: 2400, ChunkSize: 512},
		},
		{
			name: "handles all field types correctly",
			fileConfig: FileConfig{
				Port:        "COM3",
				SourcePath:  "/data/in.txt",
				OutputPath:  "/data/out.txt",
				BaudRate:    115200,
				Timeout:     "500ms",
				ChunkSize:   1024,
				Pause:       "3s",
				ProgressBar: &trueVal,
				Watch:       &falseVal,
				LogLevel:    "debug",
			},
			changed: map[string]bool{},
			initial: Config{Watch: true},
			expected: Config{
				Port:        "COM3",
				SourcePath:  "/data/in.txt",
				OutputPath:  "/data/out.txt",
				BaudRate:    115200,
				Timeout:     500 * time.Millisecond,
				ChunkSize:   1024,
				Pause:       3 * time.Second,
				ProgressBar: true,
				Watch:       false,
				LogLevel:    "debug",
			},
		},
		{
			name:       "invalid timeout",
			fileConfig: FileConfig{Timeout: "five seconds"},
			changed:    map[string]bool{},
			wantErr:    true,
		},
		{
			name:       "invalid pause",
			fileConfig: FileConfig{Pause: "soon"},
			changed:    map[string]bool{},
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.initial
			err := ApplyFileConfig(&cfg, tt.fileConfig, tt.changed)

			if tt.wantErr && err == nil {
				t.Error("ApplyFileConfig() expected error but got nil")
				return
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ApplyFileConfig() unexpected error: %v", err)
				return
			}

			if !tt.wantErr && cfg != tt.expected {
				t.Errorf("ApplyFileConfig() = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}

func TestLoadFileConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.toml")

	tomlContent := `
port = "COM4"
file = "send.txt"
baud_rate = 2400
timeout = "5s"
chunk_size = 512
progress_bar = true
`

	if err := os.WriteFile(configPath, []byte(tomlContent), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	fc, err := LoadFileConfig(configPath)
	if err != nil {
		t.Fatalf("LoadFileConfig() error = %v", err)
	}

	if fc.Port != "COM4" {
		t.Errorf("Port = %v, want COM4", fc.Port)
	}
	if fc.SourcePath != "send.txt" {
		t.Errorf("SourcePath = %v, want send.txt", fc.SourcePath)
	}
	if fc.BaudRate != 2400 {
		t.Errorf("BaudRate = %v, want 2400", fc.BaudRate)
	}
	if fc.Timeout != "5s" {
		t.Errorf("Timeout = %v, want 5s", fc.Timeout)
	}
	if fc.ChunkSize != 512 {
		t.Errorf("ChunkSize = %v, want 512", fc.ChunkSize)
	}
	if fc.ProgressBar == nil || *fc.ProgressBar != true {
		t.Errorf("ProgressBar = %v, want true", fc.ProgressBar)
	}
	if fc.Watch != nil {
		t.Errorf("Watch = %v, want nil", fc.Watch)
	}
}

func TestLoadFileConfig_InvalidFile(t *testing.T) {
	_, err := LoadFileConfig("/nonexistent/path/config.toml")
	if err == nil {
		t.Error("LoadFileConfig() expected error for nonexistent file")
	}
}

func TestLoadFileConfig_InvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.toml")

	invalidContent := `
port = "COM4"
this is not valid toml
`

	if err := os.WriteFile(configPath, []byte(invalidContent), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	_, err := LoadFileConfig(configPath)
	if err == nil {
		t.Error("LoadFileConfig() expected error for invalid TOML")
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()

	if path != "" && !strings.Contains(path, ".uartship") {
		t.Errorf("DefaultConfigPath() = %v, should contain .uartship", path)
	}
}

func TestFileExists(t *testing.T) {
	tmpDir := t.TempDir()
	existingFile := filepath.Join(tmpDir, "exists.txt")

	if err := os.WriteFile(existingFile, []byte("test"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	if !FileExists(existingFile) {
		t.Error("FileExists() = false, want true for existing file")
	}

	if FileExists(filepath.Join(tmpDir, "nonexistent.txt")) {
		t.Error("FileExists() = true, want false for nonexistent file")
	}
}
