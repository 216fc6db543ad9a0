package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/adibhanna/focusup/internal/leaderboard"
	"github.com/adibhanna/focusup/internal/models"
	"github.com/adibhanna/focusup/internal/pattern"
	"github.com/adibhanna/focusup/internal/storage"
)

type Config struct {
	DataDir     string            `yaml:"data_dir"`
	Store       string            `yaml:"store"`
	SeedDemo    bool              `yaml:"seed_demo"`
	Session     SessionConfig     `yaml:"session"`
	Motivation  MotivationConfig  `yaml:"motivation"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
}

type SessionConfig struct {
	TargetMinutes      int            `yaml:"target_minutes"`
	Pattern            models.Pattern `yaml:"pattern"`
	CustomFocusMinutes int            `yaml:"custom_focus_minutes"`
	CustomBreakMinutes int            `yaml:"custom_break_minutes"`
}

type MotivationConfig struct {
	Interval time.Duration `yaml:"interval"`
	Messages []string      `yaml:"messages"`
}

type LeaderboardConfig struct {
	Entries []leaderboard.Entry `yaml:"entries"`
}

func Default() *Config {
	return &Config{
		Store: storage.BackendFile,
		Session: SessionConfig{
			TargetMinutes:      120,
			Pattern:            models.PatternPomodoro,
			CustomFocusMinutes: 45,
			CustomBreakMinutes: 15,
		},
		Motivation: MotivationConfig{
			Interval: 30 * time.Second,
			Messages: []string{
				"Procrastination is the thief of time. Are you going to let it rob you?",
				"The expert in anything was once a beginner. Keep going.",
				"Don't watch the clock; do what it does. Keep going.",
				"Even the greatest were beginners. Don't be afraid to take that first step.",
				"That 'someday' you keep talking about? It's today.",
				"Success is the sum of small efforts, repeated day in and day out.",
				"Is your future self going to thank you for what you're doing right now?",
				"Discipline is just choosing between what you want now and what you want most.",
				"Stop doubting yourself. Work hard and make it happen.",
			},
		},
		Leaderboard: LeaderboardConfig{
			Entries: []leaderboard.Entry{
				{ID: "101", Name: "Rizky S.", WeeklyMinutes: 2430},
				{ID: "102", Name: "Dewi L.", WeeklyMinutes: 2250},
				{ID: "103", Name: "Budi P.", WeeklyMinutes: 2100},
				{ID: "104", Name: "Siti A.", WeeklyMinutes: 1980},
				{ID: "105", Name: "Agus H.", WeeklyMinutes: 1800},
				{ID: "106", Name: "Ani W.", WeeklyMinutes: 1750},
				{ID: "107", Name: "Eko S.", WeeklyMinutes: 1600},
			},
		},
	}
}

// DefaultSettings resolves the configured session defaults.
func (c *Config) DefaultSettings() (models.SessionSettings, error) {
	s := c.Session
	return pattern.Settings(s.Pattern, s.TargetMinutes, s.CustomFocusMinutes, s.CustomBreakMinutes)
}

func (c *Config) Validate() error {
	switch c.Store {
	case storage.BackendFile, storage.BackendSQLite:
	default:
		return fmt.Errorf("store must be %q or %q, got %q", storage.BackendFile, storage.BackendSQLite, c.Store)
	}
	if c.DataDir == "" {
		return errors.New("data_dir is required")
	}
	return nil
}

type Manager struct {
	config     *Config
	configPath string
}

// NewManager loads the config file at path, creating it with defaults when it
// does not exist. An empty path means ~/.focusup/config.yaml.
func NewManager(path string) (*Manager, error) {
	if path == "" {
		dir, err := storage.DefaultDataDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "config.yaml")
	}

	m := &Manager{configPath: path}
	if err := m.loadConfig(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
		m.config = Default()
		m.config.DataDir = filepath.Dir(path)
		if err := m.SaveConfig(); err != nil {
			return nil, err
		}
	}
	if m.config.DataDir == "" {
		m.config.DataDir = filepath.Dir(path)
	}
	if m.config.Store == "" {
		m.config.Store = storage.BackendFile
	}
	return m, nil
}

func (m *Manager) loadConfig() error {
	data, err := os.ReadFile(m.configPath)
	if err != nil {
		return err
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return err
	}

	m.config = config
	return nil
}

func (m *Manager) SaveConfig() error {
	data, err := yaml.Marshal(m.config)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(m.configPath), 0755); err != nil {
		return err
	}

	return os.WriteFile(m.configPath, data, 0644)
}

func (m *Manager) Config() *Config {
	return m.config
}

func (m *Manager) Path() string {
	return m.configPath
}

// UpdateSession stores new session defaults.
func (m *Manager) UpdateSession(s SessionConfig) error {
	m.config.Session = s
	return m.SaveConfig()
}

// LoadEnv reads a .env file from the working directory when there is one.
func LoadEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Println("config: reading .env:", err)
	}
}

type envOverrides struct {
	DataDir  string `envconfig:"DATA_DIR"`
	Store    string `envconfig:"STORE"`
	SeedDemo *bool  `envconfig:"SEED_DEMO"`
}

// ApplyEnv lets FOCUSUP_* variables override the file.
func ApplyEnv(c *Config) error {
	var env envOverrides
	if err := envconfig.Process("focusup", &env); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}
	if env.DataDir != "" {
		c.DataDir = env.DataDir
	}
	if env.Store != "" {
		c.Store = env.Store
	}
	if env.SeedDemo != nil {
		c.SeedDemo = *env.SeedDemo
	}
	return nil
}
