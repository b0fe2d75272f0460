package configs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsAreValid(t *testing.T) {
	cfg, err := UploadLocalConfiguration("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 2, cfg.KeyLength)
	assert.Equal(t, 50051, cfg.HTTPPort)
}

func TestUploadLocalConfiguration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"rules_path": "en.tsv", "cache_size": 500}`), 0644))

	cfg, err := UploadLocalConfiguration(path)
	require.NoError(t, err)
	assert.Equal(t, "en.tsv", cfg.RulesPath)
	assert.Equal(t, 500, cfg.CacheSize)
	assert.Equal(t, 8, cfg.WorkersCount, "absent keys keep defaults")

	_, err = UploadLocalConfiguration(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte(`{`), 0644))
	_, err = UploadLocalConfiguration(path)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("LEMMAGEN_LANGUAGE=sl\nLEMMAGEN_CACHE_SIZE=64\n"), 0644))
	t.Setenv("LEMMAGEN_LANGUAGE", "")
	t.Setenv("LEMMAGEN_CACHE_SIZE", "")
	os.Unsetenv("LEMMAGEN_LANGUAGE")
	os.Unsetenv("LEMMAGEN_CACHE_SIZE")
	t.Setenv("LEMMAGEN_PORT", "8080")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(envFile))
	assert.Equal(t, "sl", cfg.Language)
	assert.Equal(t, 64, cfg.CacheSize)
	assert.Equal(t, 8080, cfg.HTTPPort)

	require.NoError(t, Default().ApplyEnv(filepath.Join(t.TempDir(), "absent.env")))

	t.Setenv("LEMMAGEN_WORKERS", "many")
	assert.Error(t, Default().ApplyEnv(""))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ConfigData)
		ok     bool
	}{
		{"defaults", func(*ConfigData) {}, true},
		{"key length zero", func(c *ConfigData) { c.KeyLength = 0 }, false},
		{"key length too long", func(c *ConfigData) { c.KeyLength = 9 }, false},
		{"negative cache", func(c *ConfigData) { c.CacheSize = -1 }, false},
		{"no workers", func(c *ConfigData) { c.WorkersCount = 0 }, false},
		{"port out of range", func(c *ConfigData) { c.HTTPPort = 70000 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if tt.ok {
				assert.NoError(t, cfg.Validate())
			} else {
				assert.Error(t, cfg.Validate())
			}
		})
	}
}

func TestValidatorTags(t *testing.T) {
	type sample struct {
		Name  string   `check:"required"`
		Tags  []string `check:"len=1:2"`
		Flag  bool     `check:"required"`
		Plain int
	}
	v := New("check")

	assert.NoError(t, v.Validate(sample{Name: "x", Tags: []string{"a"}}))
	assert.Error(t, v.Validate(sample{Tags: []string{"a"}}))
	assert.Error(t, v.Validate(sample{Name: "x"}))
	assert.Error(t, v.Validate(sample{Name: "x", Tags: []string{"a", "b", "c"}}))
	assert.Error(t, v.Validate(42))

	type badTag struct {
		N int `check:"between=1"`
	}
	assert.Error(t, v.Validate(badTag{}))
}
