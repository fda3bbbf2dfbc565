package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "processed", cfg.DataDir)
	assert.Equal(t, "uscsearch.db", cfg.DBPath)
	assert.Equal(t, 64, cfg.Cache.Size)
	assert.Equal(t, 300, cfg.Cache.TTLSeconds)
	assert.Equal(t, 160, cfg.Search.SnippetWidth)
	assert.Equal(t, 10, cfg.Search.SuggestLimit)
	assert.Equal(t, 100, cfg.Search.MaxResults)
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))

	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_TOMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
data_dir = "/var/lib/uscsearch/processed"
db_path = ":memory:"

[cache]
size = 16
ttl_seconds = 60

[search]
snippet_width = 200
suggest_limit = 5
max_results = 50
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "/var/lib/uscsearch/processed", cfg.DataDir)
	assert.Equal(t, ":memory:", cfg.DBPath)
	assert.Equal(t, 16, cfg.Cache.Size)
	assert.Equal(t, 60, cfg.Cache.TTLSeconds)
	assert.Equal(t, 200, cfg.Search.SnippetWidth)
	assert.Equal(t, 5, cfg.Search.SuggestLimit)
	assert.Equal(t, 50, cfg.Search.MaxResults)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`data_dir = "elsewhere"`), 0644))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "elsewhere", cfg.DataDir)
	assert.Equal(t, 64, cfg.Cache.Size)
	assert.Equal(t, 160, cfg.Search.SnippetWidth)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("data_dir = ["), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("USCSEARCH_DATA_DIR", "/env/data")
	t.Setenv("USCSEARCH_CACHE_SIZE", "8")
	t.Setenv("USCSEARCH_SNIPPET_WIDTH", "240")
	t.Setenv("USCSEARCH_MAX_RESULTS", "25")

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, "/env/data", cfg.DataDir)
	assert.Equal(t, 8, cfg.Cache.Size)
	assert.Equal(t, 240, cfg.Search.SnippetWidth)
	assert.Equal(t, 25, cfg.Search.MaxResults)
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`data_dir = "from-file"`), 0644))
	t.Setenv("USCSEARCH_DATA_DIR", "from-env")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.DataDir)
}

func TestLoad_MalformedEnvIgnored(t *testing.T) {
	t.Setenv("USCSEARCH_CACHE_SIZE", "not-a-number")

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Cache.Size)
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"zero cache size", "USCSEARCH_CACHE_SIZE", "0"},
		{"negative ttl", "USCSEARCH_CACHE_TTL_SECONDS", "-1"},
		{"zero snippet width", "USCSEARCH_SNIPPET_WIDTH", "0"},
		{"negative max results", "USCSEARCH_MAX_RESULTS", "-5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestCacheTTL(t *testing.T) {
	cfg := Default()
	cfg.Cache.TTLSeconds = 90

	assert.Equal(t, 90*time.Second, cfg.CacheTTL())
}
