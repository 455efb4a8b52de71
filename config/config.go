// Package config loads the run-wide settings of the downloader.
//
// Sources are applied in this order, later ones win:
// defaults, the YAML file, .env files and WALLPYPER_* environment variables, command-line overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const envPrefix = "WALLPYPER_"

var ErrNoHomeDirectory = errors.New("couldn't resolve home directory")

// Config is immutable once Load returns, every component gets it passed explicitly.
type Config struct {
	Default DefaultSection `yaml:"default"`
	Reddit  RedditSection  `yaml:"reddit"`
	Size    SizeSection    `yaml:"size"`
}

type DefaultSection struct {
	// Directory is the base directory, images are saved to Directory/Subreddit.
	Directory string `yaml:"directory" validate:"required"`
	// JSONLimit is the amount of posts requested per page, reddit allows at most 100.
	JSONLimit int `yaml:"jsonLimit" validate:"min=1,max=100"`
	// Loops is the amount of pages requested.
	Loops int `yaml:"loops" validate:"min=1"`

	UserAgent       string        `yaml:"user_agent" validate:"required"`
	RequestInterval time.Duration `yaml:"request_interval" validate:"gte=0"`
	Timeout         time.Duration `yaml:"timeout" validate:"gt=0"`
	MetricsFile     string        `yaml:"metrics_file"`
}

type RedditSection struct {
	Subreddit string `yaml:"subs" validate:"required,excludesall=/?#&"`
	Sort      string `yaml:"sort" validate:"oneof=hot new top rising controversial best"`
	Timeframe string `yaml:"timeframe" validate:"oneof=hour day week month year all"`
}

type SizeSection struct {
	MinWidth  int `yaml:"min_width" validate:"gte=0"`
	MinHeight int `yaml:"min_height" validate:"gte=0"`
}

// Overrides are values given on the command line, nil fields are left untouched.
type Overrides struct {
	Directory       *string
	Subreddit       *string
	Sort            *string
	Timeframe       *string
	MinWidth        *int
	MinHeight       *int
	JSONLimit       *int
	Loops           *int
	RequestInterval *time.Duration
	Timeout         *time.Duration
	MetricsFile     *string
}

// Default returns a Config with the values used when nothing else is configured.
func Default() *Config {
	return &Config{
		Default: DefaultSection{
			Directory: "~/Pictures/wallpapers",
			JSONLimit: 100,
			Loops:     1,
			UserAgent: "go:wallpyper",
			Timeout:   time.Minute,
		},
		Reddit: RedditSection{
			Subreddit: "wallpaper",
			Sort:      "top",
			Timeframe: "all",
		},
		Size: SizeSection{
			MinWidth:  1920,
			MinHeight: 1080,
		},
	}
}

// Load builds the configuration from all sources. An empty path searches the default locations,
// an explicit path has to exist.
func Load(path string, overrides *Overrides) (*Config, error) {
	if err := loadEnvFile(".env"); err != nil {
		return nil, err
	}
	if home, err := os.UserHomeDir(); err == nil {
		if err := loadEnvFile(filepath.Join(home, ".wallpyper.env")); err != nil {
			return nil, err
		}
	}

	cfg := Default()

	if err := cfg.LoadFromFile(path); err != nil {
		return nil, err
	}
	if err := cfg.LoadFromEnv(); err != nil {
		return nil, err
	}
	cfg.Merge(overrides)

	dir, err := ExpandHome(cfg.Default.Directory)
	if err != nil {
		return nil, err
	}
	cfg.Default.Directory = dir

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid configuration", err)
	}

	return cfg, nil
}

// LoadFromFile reads a YAML file into c.
func (c *Config) LoadFromFile(path string) error {
	if path == "" {
		path = findConfigFile()
		if path == "" {
			return nil
		}
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: couldn't read config file(path=%s)", err, path)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("%w: couldn't parse config file(path=%s)", err, path)
	}

	return nil
}

// LoadFromEnv applies the WALLPYPER_* environment variables.
func (c *Config) LoadFromEnv() error {
	strs := map[string]*string{
		"DIRECTORY":    &c.Default.Directory,
		"USER_AGENT":   &c.Default.UserAgent,
		"METRICS_FILE": &c.Default.MetricsFile,
		"SUBREDDIT":    &c.Reddit.Subreddit,
		"SORT":         &c.Reddit.Sort,
		"TIMEFRAME":    &c.Reddit.Timeframe,
	}
	for key, dst := range strs {
		if v, ok := os.LookupEnv(envPrefix + key); ok && v != "" {
			*dst = v
		}
	}

	ints := map[string]*int{
		"JSON_LIMIT": &c.Default.JSONLimit,
		"LOOPS":      &c.Default.Loops,
		"MIN_WIDTH":  &c.Size.MinWidth,
		"MIN_HEIGHT": &c.Size.MinHeight,
	}
	for key, dst := range ints {
		v, ok := os.LookupEnv(envPrefix + key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: invalid integer in %s%s", err, envPrefix, key)
		}
		*dst = n
	}

	durations := map[string]*time.Duration{
		"REQUEST_INTERVAL": &c.Default.RequestInterval,
		"TIMEOUT":          &c.Default.Timeout,
	}
	for key, dst := range durations {
		v, ok := os.LookupEnv(envPrefix + key)
		if !ok || v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: invalid duration in %s%s", err, envPrefix, key)
		}
		*dst = d
	}

	return nil
}

// Merge applies the non-nil overrides.
func (c *Config) Merge(o *Overrides) {
	if o == nil {
		return
	}
	setIf(&c.Default.Directory, o.Directory)
	setIf(&c.Default.JSONLimit, o.JSONLimit)
	setIf(&c.Default.Loops, o.Loops)
	setIf(&c.Default.RequestInterval, o.RequestInterval)
	setIf(&c.Default.Timeout, o.Timeout)
	setIf(&c.Default.MetricsFile, o.MetricsFile)
	setIf(&c.Reddit.Subreddit, o.Subreddit)
	setIf(&c.Reddit.Sort, o.Sort)
	setIf(&c.Reddit.Timeframe, o.Timeframe)
	setIf(&c.Size.MinWidth, o.MinWidth)
	setIf(&c.Size.MinHeight, o.MinHeight)
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	return validator.New(validator.WithRequiredStructEnabled()).Struct(c)
}

// DownloadDirectory is where the images of the configured subreddit are stored.
func (c *Config) DownloadDirectory() string {
	return filepath.Join(c.Default.Directory, c.Reddit.Subreddit)
}

// MaxDownloads is the upper bound of posts a run can look at.
func (c *Config) MaxDownloads() int {
	return c.Default.JSONLimit * c.Default.Loops
}

// ExpandHome replaces a leading "~" with the home directory of the current user.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNoHomeDirectory, err)
	}

	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// loadEnvFile loads path into the environment, a missing file is not an error.
func loadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: couldn't load env file(path=%s)", err, path)
	}
	return nil
}

func findConfigFile() string {
	locations := []string{
		"wallpyper.yaml",
		"wallpyper.yml",
	}
	if dir, err := os.UserConfigDir(); err == nil {
		locations = append(locations, filepath.Join(dir, "wallpyper", "config.yaml"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(home, ".wallpyper.yaml"))
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}
