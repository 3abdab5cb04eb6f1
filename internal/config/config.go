package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var DefaultConfigYAML []byte

type Config struct {
	Sources    Sources    `yaml:"sources"`
	Summarizer Summarizer `yaml:"summarizer"`
	Ingest     Ingest     `yaml:"ingest"`
	Output     Output     `yaml:"output"`
	Server     Server     `yaml:"server"`
}

type Sources struct {
	Feeds []Feed `yaml:"feeds"`
}

type Feed struct {
	URL  string `yaml:"url"`
	Name string `yaml:"name"`
}

type Summarizer struct {
	Provider     string `yaml:"provider"` // "huggingface" or "openai"
	HFModel      string `yaml:"hf_model"`
	HFAPIKeyEnv  string `yaml:"hf_api_key_env"`
	OpenAIModel  string `yaml:"openai_model"`
	OpenAIKeyEnv string `yaml:"openai_key_env"`
	MaxLength    int    `yaml:"max_length"`
}

type Ingest struct {
	PerFeedLimit    int `yaml:"per_feed_limit"`
	MinContentChars int `yaml:"min_content_chars"`
	PaceMs          int `yaml:"pace_ms"`
}

type Output struct {
	DataDir string `yaml:"data_dir"`
}

type Server struct {
	Port        int    `yaml:"port"`
	RefreshCron string `yaml:"refresh_cron"`
}

// ConfigDir returns the XDG config directory for newsagg.
func ConfigDir() string {
	return filepath.Join(homeDir(), ".config", "newsagg")
}

// DataDir returns the XDG data directory for newsagg.
func DataDir() string {
	return filepath.Join(homeDir(), ".local", "share", "newsagg")
}

// ResolveConfigPath finds the config file following priority:
// explicit path > ~/.config/newsagg/config.yaml > ./config.yaml
func ResolveConfigPath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	xdgConfig := filepath.Join(ConfigDir(), "config.yaml")
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig, nil
	}

	cwdConfig := "config.yaml"
	if _, err := os.Stat(cwdConfig); err == nil {
		return cwdConfig, nil
	}

	return "", fmt.Errorf(
		"no config file found; searched:\n  %s\n  ./config.yaml\n\nRun 'newsagg init' to create a default config",
		xdgConfig,
	)
}

// Load reads and parses a config YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return parse(data)
}

// parse parses YAML bytes into a Config, applying defaults.
func parse(data []byte) (*Config, error) {
	cfg := &Config{
		Summarizer: Summarizer{
			Provider:     "huggingface",
			HFModel:      "facebook/bart-large-cnn",
			HFAPIKeyEnv:  "HUGGINGFACE_TOKEN",
			OpenAIModel:  "gpt-4o-mini",
			OpenAIKeyEnv: "OPENAI_API_KEY",
			MaxLength:    150,
		},
		Ingest: Ingest{
			PerFeedLimit:    10,
			MinContentChars: 100,
			PaceMs:          500,
		},
		Server: Server{Port: 8000},
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// GetDataDir returns the effective data directory from config or XDG default.
func (c *Config) GetDataDir() string {
	if c.Output.DataDir != "" {
		return c.Output.DataDir
	}
	return DataDir()
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
