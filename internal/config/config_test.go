package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adibhanna/focusup/internal/models"
	"github.com/adibhanna/focusup/internal/storage"
)

func TestNewManagerCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "focusup", "config.yaml")
	m, err := NewManager(path)
	if err != nil {
		t.Fatalf("NewManager() error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	cfg := m.Config()
	if cfg.DataDir != filepath.Dir(path) || cfg.Store != storage.BackendFile {
		t.Errorf("config = %+v", cfg)
	}
	if len(cfg.Leaderboard.Entries) != 7 || cfg.Motivation.Interval != 30*time.Second {
		t.Errorf("defaults missing: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
}

func TestNewManagerReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `
data_dir: /tmp/focus-data
store: sqlite
session:
  target_minutes: 240
  pattern: deep-work
motivation:
  interval: 1m
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	m, err := NewManager(path)
	if err != nil {
		t.Fatalf("NewManager() error: %v", err)
	}
	cfg := m.Config()
	if cfg.DataDir != "/tmp/focus-data" || cfg.Store != storage.BackendSQLite {
		t.Errorf("config = %+v", cfg)
	}
	if cfg.Motivation.Interval != time.Minute || len(cfg.Motivation.Messages) == 0 {
		t.Errorf("motivation = %+v", cfg.Motivation)
	}
	s, err := cfg.DefaultSettings()
	if err != nil {
		t.Fatalf("DefaultSettings() error: %v", err)
	}
	want := models.SessionSettings{TargetMinutes: 240, Pattern: models.PatternDeepWork, FocusMinutes: 50, BreakMinutes: 10}
	if s != want {
		t.Errorf("DefaultSettings() = %+v, want %+v", s, want)
	}
}

func TestNewManagerRejectsBrokenYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(path, []byte("store: [unterminated"), 0644)
	if _, err := NewManager(path); err == nil {
		t.Error("NewManager() accepted broken YAML")
	}
}

func TestUpdateSessionPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	m, err := NewManager(path)
	if err != nil {
		t.Fatal(err)
	}
	s := SessionConfig{TargetMinutes: 90, Pattern: models.PatternCustom, CustomFocusMinutes: 40, CustomBreakMinutes: 10}
	if err := m.UpdateSession(s); err != nil {
		t.Fatalf("UpdateSession() error: %v", err)
	}
	again, err := NewManager(path)
	if err != nil {
		t.Fatal(err)
	}
	if again.Config().Session != s {
		t.Errorf("session = %+v, want %+v", again.Config().Session, s)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("FOCUSUP_DATA_DIR", "/var/lib/focusup")
	t.Setenv("FOCUSUP_STORE", "sqlite")
	t.Setenv("FOCUSUP_SEED_DEMO", "true")

	cfg := Default()
	if err := ApplyEnv(cfg); err != nil {
		t.Fatalf("ApplyEnv() error: %v", err)
	}
	if cfg.DataDir != "/var/lib/focusup" || cfg.Store != "sqlite" || !cfg.SeedDemo {
		t.Errorf("config = %+v", cfg)
	}
}

func TestApplyEnvRejectsBadBool(t *testing.T) {
	t.Setenv("FOCUSUP_SEED_DEMO", "maybe")
	if err := ApplyEnv(Default()); err == nil {
		t.Error("ApplyEnv() accepted a non-boolean")
	}
}

func TestApplyEnvKeepsFileValues(t *testing.T) {
	cfg := Default()
	cfg.DataDir = "/from/file"
	if err := ApplyEnv(cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.DataDir != "/from/file" || cfg.SeedDemo {
		t.Errorf("config = %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.DataDir = "/tmp"
	cfg.Store = "redis"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() accepted unknown store")
	}
}
