package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"frec/internal/errors"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.MaxCommits != 3000 {
		t.Errorf("MaxCommits = %d, want 3000", cfg.MaxCommits)
	}
	if cfg.Sort != "descending" {
		t.Errorf("Sort = %q, want descending", cfg.Sort)
	}
	if cfg.Decay.HalfLife != 300 {
		t.Errorf("HalfLife = %v, want 300", cfg.Decay.HalfLife)
	}
	if cfg.Decay.BaseWeight != 1.0 {
		t.Errorf("BaseWeight = %v, want 1.0", cfg.Decay.BaseWeight)
	}
	if cfg.Git.Renames != "both" {
		t.Errorf("Renames = %q, want both", cfg.Git.Renames)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadConfigMissingFiles(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.MaxCommits != 3000 {
		t.Errorf("missing files should yield defaults, got MaxCommits = %d", cfg.MaxCommits)
	}
}

func TestLoadConfigJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, ConfigDir), 0755); err != nil {
		t.Fatal(err)
	}
	content := `{"maxCommits": 500, "decay": {"halfLife": 100}}`
	if err := os.WriteFile(filepath.Join(dir, ConfigDir, "config.json"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.MaxCommits != 500 {
		t.Errorf("MaxCommits = %d, want 500", cfg.MaxCommits)
	}
	if cfg.Decay.HalfLife != 100 {
		t.Errorf("HalfLife = %v, want 100", cfg.Decay.HalfLife)
	}
	// Untouched keys keep defaults.
	if cfg.Sort != "descending" {
		t.Errorf("Sort = %q, want default", cfg.Sort)
	}
}

func TestLoadConfigDotfileOverrides(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, ConfigDir), 0755); err != nil {
		t.Fatal(err)
	}
	jsonContent := `{"maxCommits": 500}`
	if err := os.WriteFile(filepath.Join(dir, ConfigDir, "config.json"), []byte(jsonContent), 0644); err != nil {
		t.Fatal(err)
	}
	yamlContent := "maxCommits: 200\ndecay:\n  profile: hot\n"
	if err := os.WriteFile(filepath.Join(dir, DotfileName), []byte(yamlContent), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	// Dotfile wins over config.json.
	if cfg.MaxCommits != 200 {
		t.Errorf("MaxCommits = %d, want 200", cfg.MaxCommits)
	}
	if cfg.Decay.Profile != "hot" {
		t.Errorf("Profile = %q, want hot", cfg.Decay.Profile)
	}
	if cfg.Decay.HalfLife != 300 {
		t.Errorf("HalfLife = %v, want untouched default", cfg.Decay.HalfLife)
	}
}

func TestLoadConfigMalformedDotfile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, DotfileName), []byte("maxCommits: [not an int"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadConfig(dir)
	if err == nil {
		t.Fatal("expected error for malformed dotfile")
	}
	var fe *errors.FrecError
	if !stderrors.As(err, &fe) || fe.Code != errors.InvalidConfig {
		t.Errorf("error = %v, want INVALID_CONFIG", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"negative maxCommits", func(c *Config) { c.MaxCommits = -1 }, true},
		{"unbounded maxCommits", func(c *Config) { c.MaxCommits = 0 }, false},
		{"bad sort", func(c *Config) { c.Sort = "random" }, true},
		{"ascending sort", func(c *Config) { c.Sort = "ascending" }, false},
		{"bad renames", func(c *Config) { c.Git.Renames = "old-only" }, true},
		{"new-only renames", func(c *Config) { c.Git.Renames = "new-only" }, false},
		{"underflow", func(c *Config) { c.Decay.HalfLife = 1; c.MaxCommits = 3000 }, true},
		{"zero half-life", func(c *Config) { c.Decay.HalfLife = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
