package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackless-dev/gooddata-cli/internal/gderr"
)

func setEnv(t *testing.T, host, token, workspace string) {
	t.Helper()
	t.Setenv("GOODDATA_HOST", host)
	t.Setenv("GOODDATA_TOKEN", token)
	t.Setenv("GOODDATA_WORKSPACE", workspace)
	t.Chdir(t.TempDir()) // keep any real gooddata.yaml out of the test
}

func TestLoad_FromEnvironment(t *testing.T) {
	setEnv(t, "https://x.cloud.gooddata.com", "abc", "ws1")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://x.cloud.gooddata.com", cfg.Host)
	assert.Equal(t, "abc", cfg.Token)
	assert.Equal(t, "ws1", cfg.Workspace)
}

func TestLoad_RepeatedCallsAgree(t *testing.T) {
	setEnv(t, "https://x.cloud.gooddata.com", "abc", "ws1")

	first, err := Load()
	require.NoError(t, err)
	second, err := Load()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLoad_StripsTrailingSlash(t *testing.T) {
	setEnv(t, "https://x.cloud.gooddata.com/", "abc", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://x.cloud.gooddata.com", cfg.Host)
}

func TestLoad_MissingHost(t *testing.T) {
	setEnv(t, "", "abc", "")

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, gderr.KindConfiguration, gderr.Kind(err))
	assert.Contains(t, err.Error(), "GOODDATA_HOST")
}

func TestLoad_MissingToken(t *testing.T) {
	setEnv(t, "https://x.cloud.gooddata.com", "", "")

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, gderr.KindConfiguration, gderr.Kind(err))
	assert.Contains(t, err.Error(), "GOODDATA_TOKEN")
}

func TestLoad_FileFallback(t *testing.T) {
	setEnv(t, "", "", "")
	dir := t.TempDir()
	file := filepath.Join(dir, "gooddata.yaml")
	require.NoError(t, os.WriteFile(file, []byte("host: https://y.cloud.gooddata.com\ntoken: def\nworkspace: ws2\n"), 0o644))
	t.Chdir(dir)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://y.cloud.gooddata.com", cfg.Host)
	assert.Equal(t, "def", cfg.Token)
	assert.Equal(t, "ws2", cfg.Workspace)
}

func TestLoad_EnvWinsOverFile(t *testing.T) {
	setEnv(t, "https://env.cloud.gooddata.com", "envtoken", "")
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gooddata.yaml"),
		[]byte("host: https://file.cloud.gooddata.com\ntoken: filetoken\n"), 0o644))
	t.Chdir(dir)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://env.cloud.gooddata.com", cfg.Host)
	assert.Equal(t, "envtoken", cfg.Token)
}
