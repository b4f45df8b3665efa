package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediaflow-iptv/config"
)

func setupTestData(t *testing.T) string {
	t.Helper()
	original := config.GetConfig()
	dir := t.TempDir()
	config.SetConfig(&config.Config{DataPath: dir})
	t.Cleanup(func() {
		config.SetConfig(original)
	})
	return dir
}

func TestProxyConfig_Roundtrip(t *testing.T) {
	setupTestData(t)

	cfg, err := LoadProxyConfig()
	require.NoError(t, err)
	assert.False(t, cfg.Complete())

	require.NoError(t, SaveProxyConfig(ProxyConfig{MediaFlowURL: "mf.example", MediaFlowPsw: "secret"}))

	cfg, err = LoadProxyConfig()
	require.NoError(t, err)
	assert.True(t, cfg.Complete())
	assert.Equal(t, "mf.example", cfg.MediaFlowURL)
}

func TestProxyConfig_CompleteRequiresBothFields(t *testing.T) {
	assert.False(t, ProxyConfig{MediaFlowURL: "mf.example"}.Complete())
	assert.False(t, ProxyConfig{MediaFlowPsw: "secret"}.Complete())
	assert.True(t, ProxyConfig{MediaFlowURL: "mf.example", MediaFlowPsw: "secret"}.Complete())
}

func TestSnapshot_ReplacedWholesale(t *testing.T) {
	setupTestData(t)

	records, err := LoadSnapshot()
	require.NoError(t, err)
	assert.Empty(t, records)

	first := []ChannelRecord{{ID: "a", Name: "A", URL: "https://x/a", Genre: "general", Icon: "i"}}
	require.NoError(t, SaveSnapshot(first))

	second := []ChannelRecord{{ID: "b", Name: "B", URL: "https://x/b", Genre: "news", Icon: "i"}}
	require.NoError(t, SaveSnapshot(second))

	records, err = LoadSnapshot()
	require.NoError(t, err)
	assert.Equal(t, second, records)
}

func TestWriteDocument_LeavesNoTempFiles(t *testing.T) {
	dir := setupTestData(t)

	require.NoError(t, SaveGenreMap(GenreMap{"rai 1": "news"}))

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, f := range files {
		assert.False(t, strings.Contains(f.Name(), ".tmp-"), "leftover temp file %s", f.Name())
	}
}

func TestReadDocument_CorruptFileIsError(t *testing.T) {
	dir := setupTestData(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "genres.json"), []byte("{not json"), 0644))

	_, err := LoadGenreMap()
	assert.Error(t, err)
}

func TestTransportHeaders_SeededWithDefaults(t *testing.T) {
	setupTestData(t)

	headers, err := LoadTransportHeaders()
	require.NoError(t, err)
	assert.Equal(t, "https://vavoo.to/", headers["referer"])
	assert.Equal(t, "https://vavoo.to", headers["origin"])
	assert.NotEmpty(t, headers["user-agent"])

	// The seed is persisted so later loads see the same document.
	_, err = os.Stat(config.GetTransportHeadersPath())
	assert.NoError(t, err)
}

func TestTransportHeaders_ExistingDocumentWins(t *testing.T) {
	setupTestData(t)
	require.NoError(t, writeDocument(config.GetTransportHeadersPath(), map[string]string{"user-agent": "custom"}))

	headers, err := LoadTransportHeaders()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"user-agent": "custom"}, headers)
}

func TestKeywordLists_SeededEmpty(t *testing.T) {
	setupTestData(t)

	filters, err := LoadChannelFilters()
	require.NoError(t, err)
	assert.Empty(t, filters)

	excludes, err := LoadChannelExcludes()
	require.NoError(t, err)
	assert.Empty(t, excludes)

	_, err = os.Stat(config.GetChannelFiltersPath())
	assert.NoError(t, err)
	_, err = os.Stat(config.GetChannelExcludesPath())
	assert.NoError(t, err)
}

func TestGenreMap_Roundtrip(t *testing.T) {
	setupTestData(t)

	genres := GenreMap{"rai 1": "news", "sky sport": "sports"}
	require.NoError(t, SaveGenreMap(genres))

	loaded, err := LoadGenreMap()
	require.NoError(t, err)
	assert.Equal(t, genres, loaded)
}
