package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"sdx/internal/common/fsutil"
	"sdx/internal/sderr"
)

// DefaultExecutable is looked up on PATH when sd_cli_path is not configured.
const DefaultExecutable = "sd-cli"

// Config is the on-disk configuration. Zero values mean "unspecified".
type Config struct {
	SDCLIPath    string `json:"sd_cli_path" yaml:"sd_cli_path" toml:"sd_cli_path"`
	DefaultModel string `json:"default_model" yaml:"default_model" toml:"default_model"`
	LogLevel     string `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogFormat    string `json:"log_format" yaml:"log_format" toml:"log_format"`
	LogFile      string `json:"log_file" yaml:"log_file" toml:"log_file"`

	Server ServerConfig           `json:"server" yaml:"server" toml:"server"`
	Models map[string]ModelConfig `json:"models" yaml:"models" toml:"models"`
}

// ServerConfig holds `sdx serve` settings.
type ServerConfig struct {
	Host         string   `json:"host" yaml:"host" toml:"host"`
	Port         int      `json:"port" yaml:"port" toml:"port"`
	MaxBodyBytes int64    `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`
	CORSOrigins  []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`
	TempDir      string   `json:"temp_dir" yaml:"temp_dir" toml:"temp_dir"`
}

// ModelConfig is one [models.<name>] table: weight paths plus optional
// generation defaults. Nil pointers mean "not set".
type ModelConfig struct {
	Model          string `json:"model" yaml:"model" toml:"model"`
	DiffusionModel string `json:"diffusion_model" yaml:"diffusion_model" toml:"diffusion_model"`
	ClipL          string `json:"clip_l" yaml:"clip_l" toml:"clip_l"`
	ClipG          string `json:"clip_g" yaml:"clip_g" toml:"clip_g"`
	T5XXL          string `json:"t5xxl" yaml:"t5xxl" toml:"t5xxl"`
	VAE            string `json:"vae" yaml:"vae" toml:"vae"`

	Width          *int     `json:"width" yaml:"width" toml:"width"`
	Height         *int     `json:"height" yaml:"height" toml:"height"`
	Steps          *int     `json:"steps" yaml:"steps" toml:"steps"`
	CFGScale       *float64 `json:"cfg_scale" yaml:"cfg_scale" toml:"cfg_scale"`
	Guidance       *float64 `json:"guidance" yaml:"guidance" toml:"guidance"`
	SamplingMethod *string  `json:"sampling_method" yaml:"sampling_method" toml:"sampling_method"`
	Scheduler      *string  `json:"scheduler" yaml:"scheduler" toml:"scheduler"`
	Seed           *int64   `json:"seed" yaml:"seed" toml:"seed"`
	BatchCount     *int     `json:"batch_count" yaml:"batch_count" toml:"batch_count"`
	NegativePrompt *string  `json:"negative_prompt" yaml:"negative_prompt" toml:"negative_prompt"`
}

// DefaultPath returns $XDG_CONFIG_HOME/sdx/config.toml (or ~/.config/...).
func DefaultPath() string {
	return filepath.Join(fsutil.ConfigHome(), "sdx", "config.toml")
}

// Load reads a configuration file based on its extension.
// Supports: .toml (also used for unknown extensions), .yaml/.yml, .json
func Load(path string) (Config, error) {
	if path == "" {
		return Config{}, fmt.Errorf("empty config path")
	}
	p, err := fsutil.ExpandHome(path)
	if err != nil {
		return Config{}, sderr.IO("expand config path", err)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, sderr.ConfigNotFound(p)
		}
		return Config{}, sderr.IO("read config", err)
	}
	return Parse(b, strings.ToLower(filepath.Ext(p)))
}

// Parse decodes data in the format named by ext, expands '~' in paths and
// validates the result.
func Parse(data []byte, ext string) (Config, error) {
	var cfg Config
	var err error
	switch ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".json":
		err = json.Unmarshal(data, &cfg)
	default:
		err = toml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, sderr.InvalidConfig("%v", err)
	}
	if err := cfg.expandPaths(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every model definition and that default_model, when set,
// names one of them. Models are visited in name order so the reported model
// is deterministic.
func (c Config) Validate() error {
	if c.DefaultModel != "" {
		if _, ok := c.Models[c.DefaultModel]; !ok {
			return sderr.InvalidConfig("default_model '%s' is not a configured model", c.DefaultModel)
		}
	}
	for _, name := range c.ModelNames() {
		m := c.Models[name]
		if m.Model == "" && m.DiffusionModel == "" {
			return sderr.InvalidConfig("model '%s' must have either 'model' or 'diffusion_model' path", name)
		}
		if m.Model != "" && m.HasComponentPaths() {
			return sderr.InvalidConfig("model '%s' sets 'model' together with component paths; use one or the other", name)
		}
	}
	return nil
}

// HasComponentPaths reports whether any multi-file path is set.
func (m ModelConfig) HasComponentPaths() bool {
	return m.DiffusionModel != "" || m.ClipL != "" || m.ClipG != "" || m.T5XXL != "" || m.VAE != ""
}

// ModelNames returns configured model names sorted lexicographically.
func (c Config) ModelNames() []string {
	names := make([]string, 0, len(c.Models))
	for n := range c.Models {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ApplyEnv overlays SDX_* variables onto c. getenv is usually os.Getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := strings.TrimSpace(getenv("SDX_SD_CLI_PATH")); v != "" {
		p, err := fsutil.ExpandHome(v)
		if err != nil {
			return sderr.IO("expand SDX_SD_CLI_PATH", err)
		}
		c.SDCLIPath = p
	}
	if v := strings.TrimSpace(getenv("SDX_LOG_LEVEL")); v != "" {
		c.LogLevel = v
	}
	if v := strings.TrimSpace(getenv("SDX_HOST")); v != "" {
		c.Server.Host = v
	}
	if v := strings.TrimSpace(getenv("SDX_PORT")); v != "" {
		var port int
		if _, err := fmt.Sscanf(v, "%d", &port); err != nil || port <= 0 || port > 65535 {
			return sderr.InvalidConfig("SDX_PORT must be a port number, got %q", v)
		}
		c.Server.Port = port
	}
	return nil
}

// ExecutablePath returns the configured sd-cli path, else the PATH lookup of
// DefaultExecutable, else DefaultExecutable itself. The result is not
// guaranteed to exist; callers check before running it.
func (c Config) ExecutablePath() string {
	if c.SDCLIPath != "" {
		return c.SDCLIPath
	}
	if p, err := exec.LookPath(DefaultExecutable); err == nil {
		return p
	}
	return DefaultExecutable
}

func (c *Config) expandPaths() error {
	var err error
	expand := func(p *string) {
		if err != nil || *p == "" {
			return
		}
		*p, err = fsutil.ExpandHome(*p)
	}
	expand(&c.SDCLIPath)
	expand(&c.LogFile)
	expand(&c.Server.TempDir)
	for name, m := range c.Models {
		expand(&m.Model)
		expand(&m.DiffusionModel)
		expand(&m.ClipL)
		expand(&m.ClipG)
		expand(&m.T5XXL)
		expand(&m.VAE)
		c.Models[name] = m
	}
	if err != nil {
		return sderr.IO("expand path", err)
	}
	return nil
}
