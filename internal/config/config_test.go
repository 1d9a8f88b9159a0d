package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/turbo-editor/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
store:
  backend: redis
  redis:
    addr: cache:6379
    db: 2
    ttl: 1h
  encryption_key_env: TURBO_TEST_KEY
  transient: ["^tmp_"]
  lock_ttl: 10s
templates: ./templates
log_level: debug
indent_width: 2
schemas:
  Sprite:
    frame: number>=0
`

func TestParse(t *testing.T) {
	cfg, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)

	assert.Equal(t, BackendRedis, cfg.Store.Backend)
	assert.Equal(t, "cache:6379", cfg.Store.Redis.Addr)
	assert.Equal(t, 2, cfg.Store.Redis.DB)
	assert.Equal(t, time.Hour, cfg.Store.Redis.TTL)
	assert.Equal(t, "turbo:scene:", cfg.Store.Redis.Prefix, "defaults survive partial sections")
	assert.Equal(t, 10*time.Second, cfg.Store.LockTTL)
	assert.Equal(t, []string{"^tmp_"}, cfg.Store.Transient)
	assert.Equal(t, "./templates", cfg.Templates)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 2, cfg.IndentWidth)

	set, err := cfg.SchemaSet()
	require.NoError(t, err)
	sprite := set[domain.NodeTypeSprite]
	require.Contains(t, sprite, "frame")
	assert.Contains(t, sprite, "path", "built-in keys are kept")
	assert.Error(t, sprite["frame"].Validate(domain.Number(-1)))
}

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParse_Errors(t *testing.T) {
	tests := map[string]string{
		"unknown key":     "color: red\n",
		"unknown backend": "store:\n  backend: s3\n",
		"bad schema type": "schemas:\n  Sprite:\n    frame: vector\n",
		"bad node type":   "schemas:\n  Blob:\n    x: number\n",
		"negative indent": "indent_width: -1\n",
		"bad duration":    "store:\n  lock_ttl: soon\n",
		"bad pattern":     "store:\n  transient: [\"(\"]\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, BackendFile, cfg.Store.Backend)

	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("store:\n  backend: memory\n"), 0o644))
	cfg, err = LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.Store.Backend)

	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("store: [\n"), 0o644))
	_, err = LoadDir(dir)
	assert.ErrorContains(t, err, FileName)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestEncryptionKey(t *testing.T) {
	cfg := Default()
	key, err := cfg.EncryptionKey()
	require.NoError(t, err)
	assert.Nil(t, key)

	cfg.Store.EncryptionKeyEnv = "TURBO_TEST_KEY"
	t.Setenv("TURBO_TEST_KEY", "")
	_, err = cfg.EncryptionKey()
	assert.Error(t, err)

	t.Setenv("TURBO_TEST_KEY", strings.Repeat("ab", 32))
	key, err = cfg.EncryptionKey()
	require.NoError(t, err)
	assert.Len(t, key, 32)

	t.Setenv("TURBO_TEST_KEY", "short")
	_, err = cfg.EncryptionKey()
	assert.Error(t, err)
}
