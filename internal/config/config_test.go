package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "downsize.yaml")

	configContent := `
max_width: 1920
max_height: 1080
quality: 90
`
	if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(configFile)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.MaxWidth != 1920 {
		t.Errorf("Expected max_width 1920, got %d", cfg.MaxWidth)
	}
	if cfg.MaxHeight != 1080 {
		t.Errorf("Expected max_height 1080, got %d", cfg.MaxHeight)
	}
	if cfg.Quality != 90 {
		t.Errorf("Expected quality 90, got %d", cfg.Quality)
	}
}

func TestLoadConfigPartial(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "downsize.yaml")
	if err := os.WriteFile(configFile, []byte("quality: 70\n"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(configFile)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	want := Default()
	want.Quality = 70
	if cfg != want {
		t.Errorf("Expected %+v, got %+v", want, cfg)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"zero width", "max_width: 0\n", "max_width"},
		{"negative height", "max_height: -5\n", "max_height"},
		{"quality too high", "quality: 150\n", "quality"},
		{"malformed yaml", "max_width: [1, 2\n", "failed to parse config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configFile := filepath.Join(t.TempDir(), "downsize.yaml")
			if err := os.WriteFile(configFile, []byte(tt.content), 0644); err != nil {
				t.Fatalf("Failed to write config: %v", err)
			}

			_, err := Load(configFile)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected not-exist error, got %v", err)
	}
}
