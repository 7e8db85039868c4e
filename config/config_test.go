package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestDefaults(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(nil))
	require.NoError(t, err)
	assert.Equal(t, &Config{
		Env:   "development",
		API:   API{BaseURL: DefaultBaseURL, Timeout: DefaultTimeout, Retry: true},
		Redis: Redis{CacheTTL: DefaultCacheTTL},
	}, cfg)
	assert.False(t, cfg.Redis.Enabled())
}

func TestOverrides(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{
		"APP_ENV":             "Production",
		"PEOPLE_API_BASE_URL": "https://people.example.com/api/",
		"PEOPLE_API_TIMEOUT":  "2s",
		"PEOPLE_API_RETRY":    "false",
		"REDIS_ADDR":          "localhost:6379",
		"REDIS_PASSWORD":      "secret",
		"REDIS_DB":            "3",
		"PEOPLE_CACHE_TTL":    "30s",
	}))
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, API{BaseURL: "https://people.example.com/api", Timeout: 2 * time.Second, Retry: false}, cfg.API)
	assert.Equal(t, Redis{Addr: "localhost:6379", Password: "secret", DB: 3, CacheTTL: 30 * time.Second}, cfg.Redis)
	assert.True(t, cfg.Redis.Enabled())
}

func TestTimeoutSanitized(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{"PEOPLE_API_TIMEOUT": "1ms"}))
	require.NoError(t, err)
	assert.Equal(t, MinTimeout, cfg.API.Timeout)

	cfg, err = FromLookup(lookupFrom(map[string]string{"PEOPLE_API_TIMEOUT": "-5s"}))
	require.NoError(t, err)
	assert.Equal(t, DefaultTimeout, cfg.API.Timeout)
}

func TestBlankValuesUseDefaults(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{"PEOPLE_API_BASE_URL": "  ", "REDIS_DB": ""}))
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, 0, cfg.Redis.DB)
}

func TestInvalidValues(t *testing.T) {
	tests := []struct {
		key, val string
	}{
		{"PEOPLE_API_TIMEOUT", "ten"},
		{"PEOPLE_API_RETRY", "maybe"},
		{"REDIS_DB", "x"},
		{"REDIS_DB", "-1"},
		{"PEOPLE_CACHE_TTL", "0s"},
		{"PEOPLE_CACHE_TTL", "soon"},
		{"PEOPLE_API_BASE_URL", "localhost:8000/api"},
		{"PEOPLE_API_BASE_URL", "ftp://example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.val, func(t *testing.T) {
			_, err := FromLookup(lookupFrom(map[string]string{tt.key: tt.val}))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestInvalidValuesAreAllReported(t *testing.T) {
	_, err := FromLookup(lookupFrom(map[string]string{
		"PEOPLE_API_TIMEOUT": "ten",
		"REDIS_DB":           "x",
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PEOPLE_API_TIMEOUT")
	assert.Contains(t, err.Error(), "REDIS_DB")
}

func TestLoadReadsDotEnv(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".env"),
		[]byte("PEOPLE_API_BASE_URL=http://dotenv:9000/api\nREDIS_DB=2\n"), 0o600))
	t.Chdir(sub)

	// Unset keys are restored by t.Setenv's cleanup after godotenv fills them.
	t.Setenv("PEOPLE_API_BASE_URL", "")
	t.Setenv("REDIS_DB", "")
	os.Unsetenv("PEOPLE_API_BASE_URL")
	os.Unsetenv("REDIS_DB")
	t.Setenv("PEOPLE_API_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://dotenv:9000/api", cfg.API.BaseURL)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
}
