package updater

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediaflow-iptv/catalog"
	"mediaflow-iptv/config"
	"mediaflow-iptv/logger"
	"mediaflow-iptv/store"
)

// TestLogger captures log messages so tests can assert on cycle outcomes.
type TestLogger struct {
	mu   sync.Mutex
	logs []string

	logger.DefaultLogger
}

func (tl *TestLogger) Log(s string) {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	tl.logs = append(tl.logs, s)
}

func (tl *TestLogger) Logf(format string, a ...interface{}) {
	tl.Log(fmt.Sprintf(format, a...))
}

func (tl *TestLogger) Warnf(format string, a ...interface{}) {
	tl.Log(fmt.Sprintf(format, a...))
}

func (tl *TestLogger) Errorf(format string, a ...interface{}) {
	tl.Log(fmt.Sprintf(format, a...))
}

func (tl *TestLogger) Debugf(format string, a ...interface{}) {
	tl.Log(fmt.Sprintf(format, a...))
}

func (tl *TestLogger) GetLogs() []string {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	out := make([]string, len(tl.logs))
	copy(out, tl.logs)
	return out
}

func (tl *TestLogger) Contains(substr string) bool {
	for _, line := range tl.GetLogs() {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

type stubSource struct {
	entries []store.RawEntry
	err     error
}

func (s stubSource) Entries(context.Context) ([]store.RawEntry, error) {
	return s.entries, s.err
}

func setupTestData(t *testing.T) {
	t.Helper()
	original := config.GetConfig()
	config.SetConfig(&config.Config{DataPath: t.TempDir()})
	t.Cleanup(func() {
		config.SetConfig(original)
	})
}

func configureProxy(t *testing.T) {
	t.Helper()
	require.NoError(t, store.SaveProxyConfig(store.ProxyConfig{
		MediaFlowURL: "mf.example",
		MediaFlowPsw: "secret",
	}))
}

func TestInitialize_UnconfiguredBootCycleIsSkipped(t *testing.T) {
	setupTestData(t)

	testLogger := &TestLogger{}
	builder := catalog.NewBuilder(stubSource{}, testLogger)
	cache := catalog.NewCache(testLogger)

	instance, err := Initialize(context.Background(), builder, cache, testLogger)
	require.NoError(t, err)
	defer instance.Stop()

	assert.True(t, testLogger.Contains("proxy configuration missing"))
}

func TestInitialize_BootRefreshDisabled(t *testing.T) {
	setupTestData(t)
	t.Setenv("REFRESH_ON_BOOT", "false")

	testLogger := &TestLogger{}
	builder := catalog.NewBuilder(stubSource{}, testLogger)
	cache := catalog.NewCache(testLogger)

	instance, err := Initialize(context.Background(), builder, cache, testLogger)
	require.NoError(t, err)
	defer instance.Stop()

	assert.False(t, testLogger.Contains("refresh cycle"))
}

func TestInitialize_InvalidScheduleFails(t *testing.T) {
	setupTestData(t)
	t.Setenv("REFRESH_ON_BOOT", "false")
	t.Setenv("REFRESH_CRON", "not a schedule")

	testLogger := &TestLogger{}
	builder := catalog.NewBuilder(stubSource{}, testLogger)
	cache := catalog.NewCache(testLogger)

	_, err := Initialize(context.Background(), builder, cache, testLogger)
	assert.Error(t, err)
}

func TestRefresh_RebuildsAndInvalidatesCache(t *testing.T) {
	setupTestData(t)
	configureProxy(t)

	testLogger := &TestLogger{}
	cache := catalog.NewCache(testLogger)

	// Warm the cache on the empty snapshot.
	metas, err := cache.Get()
	require.NoError(t, err)
	assert.Empty(t, metas)

	builder := catalog.NewBuilder(stubSource{entries: []store.RawEntry{
		{Name: "Sky Sport .I", URL: "https://x/sky.m3u8"},
	}}, testLogger)

	instance := &Updater{
		ctx:     context.Background(),
		builder: builder,
		cache:   cache,
		logger:  testLogger,
	}
	require.NoError(t, instance.Refresh(context.Background()))

	metas, err = cache.Get()
	require.NoError(t, err)
	require.Len(t, metas, 1)
	assert.Equal(t, "Sky Sport", metas[0].Name)
}

func TestRefreshChannels_SwallowsFailures(t *testing.T) {
	setupTestData(t)
	configureProxy(t)

	testLogger := &TestLogger{}
	builder := catalog.NewBuilder(stubSource{err: errors.New("upstream down")}, testLogger)
	cache := catalog.NewCache(testLogger)

	instance := &Updater{
		ctx:     context.Background(),
		builder: builder,
		cache:   cache,
		logger:  testLogger,
	}

	instance.RefreshChannels(context.Background())
	assert.True(t, testLogger.Contains("Error in refresh cycle"))
}

func TestRefreshChannels_CancelledContext(t *testing.T) {
	setupTestData(t)
	configureProxy(t)

	testLogger := &TestLogger{}
	builder := catalog.NewBuilder(stubSource{}, testLogger)
	cache := catalog.NewCache(testLogger)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	instance := &Updater{
		ctx:     ctx,
		builder: builder,
		cache:   cache,
		logger:  testLogger,
	}

	instance.RefreshChannels(ctx)
	assert.False(t, testLogger.Contains("Starting channel refresh"))
}
