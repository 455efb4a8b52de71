package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the home and config directories at a temporary directory, so no real
// configuration of the user leaks into the test.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	return home
}

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()
	cfg := Default()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 100, cfg.Default.JSONLimit)
	assert.Equal(t, 1, cfg.Default.Loops)
	assert.Equal(t, "top", cfg.Reddit.Sort)
	assert.Equal(t, "all", cfg.Reddit.Timeframe)
}

func TestLoadFromFile(t *testing.T) {
	home := isolate(t)

	cfg, err := Load("testdata/config.yaml", nil)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "wallpapers"), cfg.Default.Directory)
	assert.Equal(t, 50, cfg.Default.JSONLimit)
	assert.Equal(t, 3, cfg.Default.Loops)
	assert.Equal(t, 2*time.Second, cfg.Default.RequestInterval)
	assert.Equal(t, "earthporn", cfg.Reddit.Subreddit)
	assert.Equal(t, "week", cfg.Reddit.Timeframe)
	assert.Equal(t, 2560, cfg.Size.MinWidth)
	assert.Equal(t, 1440, cfg.Size.MinHeight)
	assert.Equal(t, "go:wallpyper", cfg.Default.UserAgent, "defaults must survive partial files")

	assert.Equal(t, filepath.Join(home, "wallpapers", "earthporn"), cfg.DownloadDirectory())
	assert.Equal(t, 150, cfg.MaxDownloads())
}

func TestLoadMissingExplicitFile(t *testing.T) {
	isolate(t)
	_, err := Load("testdata/does-not-exist.yaml", nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadBrokenFile(t *testing.T) {
	isolate(t)
	_, err := Load("testdata/broken.yaml", nil)
	assert.Error(t, err)
}

func TestLoadInvalidFile(t *testing.T) {
	isolate(t)
	_, err := Load("testdata/invalid.yaml", nil)
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	assert.ElementsMatch(t, []string{"JSONLimit", "Loops", "Subreddit", "Sort"}, fields)
}

func TestLoadSearchesDefaultLocations(t *testing.T) {
	home := isolate(t)

	b, err := os.ReadFile("testdata/config.yaml")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(home, ".wallpyper.yaml"), b, 0o600))

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "earthporn", cfg.Reddit.Subreddit)
}

func TestLoadWithoutFile(t *testing.T) {
	home := isolate(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "Pictures", "wallpapers"), cfg.Default.Directory)
	assert.Equal(t, "wallpaper", cfg.Reddit.Subreddit)
}

func TestLoadFromEnv(t *testing.T) {
	isolate(t)
	t.Setenv("WALLPYPER_DIRECTORY", "/tmp/walls")
	t.Setenv("WALLPYPER_SUBREDDIT", "wallpapers")
	t.Setenv("WALLPYPER_JSON_LIMIT", "25")
	t.Setenv("WALLPYPER_LOOPS", "4")
	t.Setenv("WALLPYPER_MIN_WIDTH", "800")
	t.Setenv("WALLPYPER_MIN_HEIGHT", "600")
	t.Setenv("WALLPYPER_REQUEST_INTERVAL", "750ms")
	t.Setenv("WALLPYPER_TIMEOUT", "15s")

	cfg, err := Load("testdata/config.yaml", nil)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/walls", cfg.Default.Directory)
	assert.Equal(t, "wallpapers", cfg.Reddit.Subreddit)
	assert.Equal(t, 25, cfg.Default.JSONLimit)
	assert.Equal(t, 4, cfg.Default.Loops)
	assert.Equal(t, 800, cfg.Size.MinWidth)
	assert.Equal(t, 600, cfg.Size.MinHeight)
	assert.Equal(t, 750*time.Millisecond, cfg.Default.RequestInterval)
	assert.Equal(t, 15*time.Second, cfg.Default.Timeout)
}

func TestLoadFromEnvInvalid(t *testing.T) {
	isolate(t)
	t.Setenv("WALLPYPER_LOOPS", "many")
	_, err := Load("", nil)
	assert.Error(t, err)
}

func TestLoadFromDotEnv(t *testing.T) {
	home := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, ".wallpyper.env"), []byte("WALLPYPER_SUBREDDIT=spaceporn\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("WALLPYPER_SUBREDDIT") })

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "spaceporn", cfg.Reddit.Subreddit)
}

func TestLoadMalformedDotEnv(t *testing.T) {
	home := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, ".wallpyper.env"), []byte("WALLPYPER_SUBREDDIT=\"unterminated\n"), 0o600))

	_, err := Load("", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".wallpyper.env")
}

func TestOverridesWin(t *testing.T) {
	isolate(t)
	t.Setenv("WALLPYPER_SUBREDDIT", "wallpapers")

	var (
		sub     = "cityporn"
		loops   = 2
		width   = 0
		timeout = 5 * time.Second
	)
	cfg, err := Load("testdata/config.yaml", &Overrides{
		Subreddit: &sub,
		Loops:     &loops,
		MinWidth:  &width,
		Timeout:   &timeout,
	})
	require.NoError(t, err)

	assert.Equal(t, "cityporn", cfg.Reddit.Subreddit)
	assert.Equal(t, 2, cfg.Default.Loops)
	assert.Equal(t, 0, cfg.Size.MinWidth)
	assert.Equal(t, 5*time.Second, cfg.Default.Timeout)
	assert.Equal(t, 1440, cfg.Size.MinHeight, "nil overrides must not change anything")
}

func TestValidate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{"default", func(*Config) {}, true},
		{"limit of 100", func(c *Config) { c.Default.JSONLimit = 100 }, true},
		{"limit over 100", func(c *Config) { c.Default.JSONLimit = 101 }, false},
		{"zero limit", func(c *Config) { c.Default.JSONLimit = 0 }, false},
		{"zero loops", func(c *Config) { c.Default.Loops = 0 }, false},
		{"negative width", func(c *Config) { c.Size.MinWidth = -1 }, false},
		{"no directory", func(c *Config) { c.Default.Directory = "" }, false},
		{"no subreddit", func(c *Config) { c.Reddit.Subreddit = "" }, false},
		{"subreddit with slash", func(c *Config) { c.Reddit.Subreddit = "a/b" }, false},
		{"unknown sort", func(c *Config) { c.Reddit.Sort = "best-ever" }, false},
		{"unknown timeframe", func(c *Config) { c.Reddit.Timeframe = "decade" }, false},
		{"negative interval", func(c *Config) { c.Default.RequestInterval = -time.Second }, false},
		{"zero timeout", func(c *Config) { c.Default.Timeout = 0 }, false},
	}

	for _, test := range tests {
		cfg := Default()
		test.mutate(cfg)
		err := cfg.Validate()
		if test.valid {
			assert.NoError(t, err, test.name)
		} else {
			assert.Error(t, err, test.name)
		}
	}
}

func TestExpandHome(t *testing.T) {
	home := isolate(t)

	tests := []struct {
		path, want string
	}{
		{"~", home},
		{"~/walls", filepath.Join(home, "walls")},
		{"/abs/walls", "/abs/walls"},
		{"relative/walls", "relative/walls"},
		{"~user/walls", "~user/walls"},
	}

	for _, test := range tests {
		got, err := ExpandHome(test.path)
		assert.NoError(t, err)
		assert.Equal(t, test.want, got, test.path)
	}
}
