package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
	assert.True(t, c.KanjiFallback)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "furigana.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
lossy: true
workers: 3
log:
  level: debug
  dir: reports
`), 0o644))

	c, err := Load(path, nil)
	require.NoError(t, err)
	assert.True(t, c.Lossy)
	assert.Equal(t, 3, c.Workers)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, "text", c.Log.Format)
	assert.Equal(t, "reports", c.Log.Dir)
}

func TestLoadEnvAndFlags(t *testing.T) {
	t.Setenv("FURIGANA_WORKERS", "5")
	t.Setenv("FURIGANA_LOG_FORMAT", "json")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int("workers", 1, "")
	fs.Bool("literal", false, "")
	require.NoError(t, fs.Parse([]string{"--literal"}))

	c, err := Load("", fs)
	require.NoError(t, err)
	assert.Equal(t, 5, c.Workers)
	assert.True(t, c.LiteralMatch)
	assert.Equal(t, "json", c.Log.Format)

	require.NoError(t, fs.Parse([]string{"--workers", "2"}))
	c, err = Load("", fs)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Workers)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)

	t.Setenv("FURIGANA_WORKERS", "0")
	_, err = Load("", nil)
	assert.ErrorContains(t, err, "workers")
}

func TestValidate(t *testing.T) {
	c := Default()
	c.CacheSize = -1
	c.Log.Format = "xml"
	err := c.Validate()
	assert.ErrorContains(t, err, "cache_size")
	assert.ErrorContains(t, err, "xml")
}
