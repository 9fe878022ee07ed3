package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"scireda/backend/internal/config"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load(nil)
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.Addr)
	require.Equal(t, "data", cfg.DataDir)
	require.Equal(t, filepath.Join("data", "scireda.db"), cfg.DBPath)
	require.Equal(t, 24*time.Hour, cfg.TokenTTL)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, int64(1), cfg.NodeID)
	require.Equal(t, time.Hour, cfg.TokenCleanupInterval)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SCIREDA_ADDR", ":9090")
	t.Setenv("SCIREDA_DATA_DIR", "/tmp/scireda")
	t.Setenv("SCIREDA_TOKEN_TTL", "2h")
	t.Setenv("SCIREDA_CORS_ORIGINS", "http://a.test,http://b.test")

	cfg, err := config.Load(nil)
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.Addr)
	require.Equal(t, "/tmp/scireda/scireda.db", cfg.DBPath)
	require.Equal(t, 2*time.Hour, cfg.TokenTTL)
	require.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
}

func TestLoad_ConfigFileAndFlags(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "scireda.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: \":7000\"\nlog_level: debug\nnode_id: 7\n"), 0o600))

	cfg, err := config.Load([]string{"--config", path, "--addr", ":7001"})
	require.NoError(t, err)
	require.Equal(t, ":7001", cfg.Addr)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, int64(7), cfg.NodeID)
}

func TestLoad_InvalidNodeID(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SCIREDA_NODE_ID", "4096")

	_, err := config.Load(nil)
	require.Error(t, err)
}

func TestLoad_RejectsNonPositiveDurations(t *testing.T) {
	for _, env := range []string{"SCIREDA_TOKEN_CLEANUP_INTERVAL", "SCIREDA_TOKEN_TTL"} {
		for _, value := range []string{"0s", "-1m"} {
			t.Run(env+"="+value, func(t *testing.T) {
				t.Chdir(t.TempDir())
				t.Setenv(env, value)

				_, err := config.Load(nil)
				require.Error(t, err)
			})
		}
	}
}

func TestJWTSecretBytes_Configured(t *testing.T) {
	cfg := config.Config{JWTSecret: "from-env", DataDir: t.TempDir()}
	secret, generated, err := cfg.JWTSecretBytes()
	require.NoError(t, err)
	require.False(t, generated)
	require.Equal(t, []byte("from-env"), secret)
}

func TestJWTSecretBytes_GeneratedOnceAndReused(t *testing.T) {
	cfg := config.Config{DataDir: filepath.Join(t.TempDir(), "data")}

	first, generated, err := cfg.JWTSecretBytes()
	require.NoError(t, err)
	require.True(t, generated)
	require.Len(t, first, 32)

	info, err := os.Stat(filepath.Join(cfg.DataDir, "jwt_secret"))
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	second, generated, err := cfg.JWTSecretBytes()
	require.NoError(t, err)
	require.False(t, generated)
	require.Equal(t, first, second)
}

func TestJWTSecretBytes_CorruptFile(t *testing.T) {
	cfg := config.Config{DataDir: t.TempDir()}
	require.NoError(t, os.WriteFile(filepath.Join(cfg.DataDir, "jwt_secret"), []byte("not hex"), 0o600))

	_, _, err := cfg.JWTSecretBytes()
	require.Error(t, err)
}
