package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file settings.
const (
	EnvAPIKey           = "GEMINI_API_KEY"
	EnvModel            = "DOCASSIST_MODEL"
	EnvRendererDisabled = "DOCASSIST_RENDERER_DISABLED"
	EnvOutputDir        = "DOCASSIST_OUTPUT_DIR"
	EnvLogLevel         = "DOCASSIST_LOG_LEVEL"
)

// Defaults applied when neither the file nor the environment set a value.
const (
	DefaultModel         = "gemini-2.5-flash"
	DefaultDPI           = 72
	DefaultMaxPages      = 3
	DefaultExcerptRunes  = 2000
	DefaultLeadSentences = 3
	DefaultMaxInputRunes = 60000
	DefaultOutputDir     = "docassist-out"
	DefaultHTTPAddr      = ":8090"
)

// DefaultRasterizers lists the external rasterizers tried in order.
var DefaultRasterizers = []string{"pdftoppm", "mutool"}

// RendererConfig controls the optional page rasterizer.
type RendererConfig struct {
	// Binaries are candidate rasterizer names, searched on PATH in order.
	Binaries     []string `yaml:"binaries,omitempty"`
	Disabled     bool     `yaml:"disabled,omitempty"`
	DPI          int      `yaml:"dpi,omitempty"`
	MaxPages     int      `yaml:"maxPages,omitempty"`
	ExcerptRunes int      `yaml:"excerptRunes,omitempty"`
}

// AssistantConfig controls the optional generative-AI summarizer.
type AssistantConfig struct {
	Model         string `yaml:"model,omitempty"`
	APIKey        string `yaml:"apiKey,omitempty"`
	LeadSentences int    `yaml:"leadSentences,omitempty"`
	MaxInputRunes int    `yaml:"maxInputRunes,omitempty"`
}

// Config holds docassist settings loaded from docassist.yml.
type Config struct {
	OutputDir string          `yaml:"outputDir,omitempty"`
	LogLevel  string          `yaml:"logLevel,omitempty"`
	HTTPAddr  string          `yaml:"httpAddr,omitempty"`
	Renderer  RendererConfig  `yaml:"renderer,omitempty"`
	Assistant AssistantConfig `yaml:"assistant,omitempty"`
}

// Load reads docassist.yml or docassist.yaml from dir, loads dir/.env into the
// process environment, applies environment overrides and fills defaults.
// A missing config file is not an error.
func Load(dir string) (*Config, error) {
	if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}
	for _, name := range []string{"docassist.yml", "docassist.yaml"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		break
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Default returns a config with only defaults and environment overrides.
func Default() *Config {
	cfg := &Config{}
	// Malformed env booleans are ignored here; Load reports them.
	_ = cfg.applyEnv()
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvAPIKey); v != "" {
		c.Assistant.APIKey = v
	}
	if v := os.Getenv(EnvModel); v != "" {
		c.Assistant.Model = v
	}
	if v := os.Getenv(EnvOutputDir); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv(EnvRendererDisabled); v != "" {
		disabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRendererDisabled, err)
		}
		c.Renderer.Disabled = disabled
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.HTTPAddr == "" {
		c.HTTPAddr = DefaultHTTPAddr
	}
	if len(c.Renderer.Binaries) == 0 {
		c.Renderer.Binaries = append([]string(nil), DefaultRasterizers...)
	}
	if c.Renderer.DPI <= 0 {
		c.Renderer.DPI = DefaultDPI
	}
	if c.Renderer.MaxPages <= 0 {
		c.Renderer.MaxPages = DefaultMaxPages
	}
	if c.Renderer.ExcerptRunes <= 0 {
		c.Renderer.ExcerptRunes = DefaultExcerptRunes
	}
	if c.Assistant.Model == "" {
		c.Assistant.Model = DefaultModel
	}
	if c.Assistant.LeadSentences <= 0 {
		c.Assistant.LeadSentences = DefaultLeadSentences
	}
	if c.Assistant.MaxInputRunes <= 0 {
		c.Assistant.MaxInputRunes = DefaultMaxInputRunes
	}
}
