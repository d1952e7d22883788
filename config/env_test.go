package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("# comment\njwt_issuer=TestIssuer\nDB_DRIVER=\"postgres\"\n"), 0o600))

	out := defaultValues()
	require.NoError(t, mergeDotEnv(path, out))

	assert.Equal(t, "TestIssuer", out["JWT_ISSUER"])
	assert.Equal(t, "postgres", out["DB_DRIVER"])
}

func TestMergeDotEnvMissingFile(t *testing.T) {
	err := mergeDotEnv(filepath.Join(t.TempDir(), "nope.env"), defaultValues())
	assert.True(t, os.IsNotExist(err))
}

func TestMergeJSONConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"app_port":"9090","auth_rate_limit":50,"seed_on_boot":true}`), 0o600))

	out := defaultValues()
	require.NoError(t, mergeJSONConfig(path, out))

	assert.Equal(t, "9090", out["APP_PORT"])
	assert.Equal(t, "50", out["AUTH_RATE_LIMIT"])
	assert.Equal(t, "true", out["SEED_ON_BOOT"])
}

func TestTypedGetters(t *testing.T) {
	Set("JWT_EXPIRATION_MINUTES", "30")
	Set("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")
	Set("DB_DRIVER", "oracle")
	t.Cleanup(func() {
		Set("JWT_EXPIRATION_MINUTES", "1440")
		Set("CORS_ALLOWED_ORIGINS", defaultCORSOrigins)
		Set("DB_DRIVER", defaultDatabaseDriver)
	})

	assert.Equal(t, 30*time.Minute, JWTExpiration())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, CORSAllowedOrigins())
	assert.Equal(t, "sqlite", DatabaseDriver(), "unknown drivers fall back to sqlite")
	assert.Equal(t, 7, Int("MISSING_INT_KEY", 7))
	assert.True(t, Bool("MISSING_BOOL_KEY", true))
}
