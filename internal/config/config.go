package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"miren.dev/fixme/internal/extract"
)

const (
	TrackerLinear = "linear"
	TrackerGitHub = "github"

	DefaultConcurrency = 4
)

// Profile is one set of tracker credentials.
type Profile struct {
	Name    string `mapstructure:"name"`
	Tracker string `mapstructure:"tracker"`
	APIKey  string `mapstructure:"api_key"`
	TeamKey string `mapstructure:"team_key"`
	Repo    string `mapstructure:"repo"` // owner/name, github only
}

// LabelNames maps each issue kind to the tracker label it is filed under.
type LabelNames struct {
	FIXME string `mapstructure:"fixme"`
	TODO  string `mapstructure:"todo"`
}

// For returns the label name for kind.
func (n LabelNames) For(kind extract.Kind) string {
	switch kind {
	case extract.FIXME:
		return n.FIXME
	case extract.TODO:
		return n.TODO
	default:
		return kind.String()
	}
}

// Map returns the label name of every kind.
func (n LabelNames) Map() map[extract.Kind]string {
	m := make(map[extract.Kind]string, len(extract.Kinds))
	for _, k := range extract.Kinds {
		m[k] = n.For(k)
	}
	return m
}

type Config struct {
	LogLevel    string     `mapstructure:"log_level"`
	Concurrency int        `mapstructure:"concurrency"`
	Profiles    []Profile  `mapstructure:"profiles"`
	LabelNames  LabelNames `mapstructure:"label_names"`

	// File is the config file that was read, empty when none was found.
	File string `mapstructure:"-"`
}

// DefaultDir returns the per-user config directory searched for fixme.toml.
func DefaultDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "fixme")
}

// Load reads fixme.toml. An explicit path must exist; without one the
// working directory and DefaultDir are searched and a missing file yields
// the defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("log_level", "info")
	v.SetDefault("concurrency", DefaultConcurrency)
	for _, k := range extract.Kinds {
		v.SetDefault("label_names."+strings.ToLower(k.String()), k.String())
	}

	v.SetConfigType("toml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		if dir := DefaultDir(); dir != "" {
			v.AddConfigPath(dir)
		}
		v.SetConfigName("fixme")
	}

	v.SetEnvPrefix("FIXME")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()
	if _, err := os.Stat(cfg.File); err != nil {
		cfg.File = ""
	}

	if cfg.Concurrency < 1 {
		return nil, fmt.Errorf("concurrency must be at least 1, got %d", cfg.Concurrency)
	}

	return &cfg, nil
}

// Profile returns the named profile, or the last one when name is empty.
// Missing credentials are filled from LINEAR_API_KEY or GITHUB_TOKEN.
func (c *Config) Profile(name string) (*Profile, error) {
	if len(c.Profiles) == 0 {
		return nil, fmt.Errorf("no profiles in config file")
	}

	var p Profile
	if name == "" {
		p = c.Profiles[len(c.Profiles)-1]
	} else {
		found := false
		for _, candidate := range c.Profiles {
			if candidate.Name == name {
				p, found = candidate, true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("profile %q not found", name)
		}
	}

	if p.Tracker == "" {
		p.Tracker = TrackerLinear
	}

	switch p.Tracker {
	case TrackerLinear:
		if p.APIKey == "" {
			p.APIKey = os.Getenv("LINEAR_API_KEY")
		}
		if p.APIKey == "" {
			return nil, fmt.Errorf("profile %q: api_key or LINEAR_API_KEY is required", p.Name)
		}
		if p.TeamKey == "" {
			return nil, fmt.Errorf("profile %q: team_key is required", p.Name)
		}
		p.TeamKey = strings.ToUpper(p.TeamKey)
	case TrackerGitHub:
		if p.APIKey == "" {
			p.APIKey = os.Getenv("GITHUB_TOKEN")
		}
		if p.APIKey == "" {
			return nil, fmt.Errorf("profile %q: api_key or GITHUB_TOKEN is required", p.Name)
		}
		if _, _, err := p.RepoParts(); err != nil {
			return nil, fmt.Errorf("profile %q: %w", p.Name, err)
		}
	default:
		return nil, fmt.Errorf("profile %q: invalid tracker %q (must be %q or %q)", p.Name, p.Tracker, TrackerLinear, TrackerGitHub)
	}

	return &p, nil
}

// RepoParts splits Repo into owner and name.
func (p *Profile) RepoParts() (owner, name string, err error) {
	parts := strings.SplitN(p.Repo, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repo format %q, want owner/repo", p.Repo)
	}
	return parts[0], parts[1], nil
}
