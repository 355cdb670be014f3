// Package config loads refprune settings from refprune.yaml, REFPRUNE_*
// environment variables (optionally seeded from a .env file) and flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/morozRed/refprune/internal/corpus"
	"github.com/morozRed/refprune/internal/fileutil"
	"github.com/morozRed/refprune/internal/layout"
)

const (
	FileName  = "refprune.yaml"
	EnvPrefix = "REFPRUNE"
)

// Config holds every setting of a run.
type Config struct {
	Root        string   `yaml:"root" mapstructure:"root"`
	ContentDir  string   `yaml:"content_dir" mapstructure:"content_dir"`
	MarkerFile  string   `yaml:"marker_file" mapstructure:"marker_file"`
	Attachments []string `yaml:"attachments" mapstructure:"attachments"`
	Remove      []string `yaml:"remove" mapstructure:"remove"`
	Exclude     []string `yaml:"exclude" mapstructure:"exclude"`
	Strict      bool     `yaml:"strict" mapstructure:"strict"`
	DryRun      bool     `yaml:"dry_run" mapstructure:"dry_run"`
	Indent      int      `yaml:"indent" mapstructure:"indent"`
	CacheSize   int      `yaml:"cache_size" mapstructure:"cache_size"`
	LogFile     string   `yaml:"log_file" mapstructure:"log_file"`
}

// Default returns a config with the built-in layout defaults.
func Default() *Config {
	return &Config{
		Root:        ".",
		ContentDir:  layout.DefaultContentDir,
		MarkerFile:  layout.DefaultMarkerFile,
		Attachments: append([]string(nil), layout.DefaultAttachmentCategories...),
		Remove:      []string{},
		Exclude:     []string{},
		Indent:      2,
		CacheSize:   corpus.DefaultCacheSize,
	}
}

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"content-dir": "content_dir",
	"marker-file": "marker_file",
	"attachments": "attachments",
	"remove":      "remove",
	"exclude":     "exclude",
	"strict":      "strict",
	"dry-run":     "dry_run",
	"indent":      "indent",
	"cache-size":  "cache_size",
	"log-file":    "log_file",
}

type LoadOptions struct {
	// ConfigFile is an explicit config path. When empty, refprune.yaml is
	// looked up in Dir and is optional.
	ConfigFile string
	Dir        string
	// EnvFile is loaded into the process environment before reading
	// REFPRUNE_* variables. A missing file is ignored.
	EnvFile string
	Flags   *pflag.FlagSet
}

// Load merges defaults, config file, environment, and changed flags, in
// increasing order of precedence.
func Load(opts LoadOptions) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = filepath.Join(opts.Dir, ".env")
	}
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	v := viper.New()
	setDefaults(v, Default())
	v.SetConfigType("yaml")

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", opts.ConfigFile, err)
		}
	} else {
		dir := opts.Dir
		if dir == "" {
			dir = "."
		}
		v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if opts.Flags != nil {
		for flagName, key := range flagKeys {
			flag := opts.Flags.Lookup(flagName)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("failed to bind --%s flag: %w", flagName, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("root", cfg.Root)
	v.SetDefault("content_dir", cfg.ContentDir)
	v.SetDefault("marker_file", cfg.MarkerFile)
	v.SetDefault("attachments", cfg.Attachments)
	v.SetDefault("remove", cfg.Remove)
	v.SetDefault("exclude", cfg.Exclude)
	v.SetDefault("strict", cfg.Strict)
	v.SetDefault("dry_run", cfg.DryRun)
	v.SetDefault("indent", cfg.Indent)
	v.SetDefault("cache_size", cfg.CacheSize)
	v.SetDefault("log_file", cfg.LogFile)
}

// Validate rejects settings a run cannot use.
func (c *Config) Validate() error {
	if len(c.Attachments) == 0 {
		return errors.New("no attachment categories configured")
	}
	if c.Indent < 0 || c.Indent > 8 {
		return fmt.Errorf("indent must be between 0 and 8, got %d", c.Indent)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("cache_size must not be negative, got %d", c.CacheSize)
	}
	return nil
}

// IndentString is the per-level indent for rewritten files; 0 selects a tab.
func (c *Config) IndentString() string {
	if c.Indent == 0 {
		return "\t"
	}
	return strings.Repeat(" ", c.Indent)
}

// WriteDefault writes a default config file at path unless one already exists.
func WriteDefault(path string) (bool, error) {
	data, err := yaml.Marshal(Default())
	if err != nil {
		return false, fmt.Errorf("failed to marshal config: %w", err)
	}
	header := "# refprune configuration. Every key can be overridden with REFPRUNE_<KEY>.\n"
	return fileutil.WriteIfMissing(path, append([]byte(header), data...), 0644)
}
