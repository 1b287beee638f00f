package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/config"
)

type sampleConfig struct {
	Name  string        `env:"CONFIG_TEST_NAME" envDefault:"formkit"`
	Delay time.Duration `env:"CONFIG_TEST_DELAY" envDefault:"1s"`
	Tags  []string      `env:"CONFIG_TEST_TAGS" envSeparator:","`
}

type requiredConfig struct {
	Secret string `env:"CONFIG_TEST_REQUIRED,required"`
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		config.ResetCache()
		var cfg sampleConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "formkit", cfg.Name)
		assert.Equal(t, time.Second, cfg.Delay)
	})

	t.Run("environment and cache", func(t *testing.T) {
		config.ResetCache()
		t.Setenv("CONFIG_TEST_NAME", "demo")
		t.Setenv("CONFIG_TEST_TAGS", "a,b")

		var cfg sampleConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "demo", cfg.Name)
		assert.Equal(t, []string{"a", "b"}, cfg.Tags)

		t.Setenv("CONFIG_TEST_NAME", "changed")
		var again sampleConfig
		require.NoError(t, config.Load(&again))
		assert.Equal(t, "demo", again.Name, "served from cache")

		config.ResetCache()
		require.NoError(t, config.Load(&again))
		assert.Equal(t, "changed", again.Name)
	})

	t.Run("required missing", func(t *testing.T) {
		config.ResetCache()
		var cfg requiredConfig
		err := config.Load(&cfg)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
		assert.Panics(t, func() { config.MustLoad(&cfg) })
	})

	t.Run("nil pointer", func(t *testing.T) {
		assert.ErrorIs(t, config.Load[sampleConfig](nil), config.ErrNilPointer)
	})
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, ".env")
	override := filepath.Join(dir, ".env.override")
	require.NoError(t, os.WriteFile(base, []byte("CONFIG_TEST_NAME=from_base\nCONFIG_TEST_DELAY=250ms\n"), 0o600))
	require.NoError(t, os.WriteFile(override, []byte("CONFIG_TEST_NAME=\"from override\"\n"), 0o600))

	// Registered so t.Setenv restores the original values afterwards.
	t.Setenv("CONFIG_TEST_NAME", "")
	t.Setenv("CONFIG_TEST_DELAY", "")
	config.ResetCache()

	require.NoError(t, config.LoadEnv(base, override))
	var cfg sampleConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "from override", cfg.Name)
	assert.Equal(t, 250*time.Millisecond, cfg.Delay)

	assert.ErrorIs(t, config.LoadEnv(filepath.Join(dir, "missing.env")), config.ErrLoadingEnvFile)
	assert.NoError(t, config.LoadEnv())
}
