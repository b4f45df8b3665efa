package exporter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/goccy/go-json"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediaflow-iptv/logger"
	"mediaflow-iptv/store"
)

func TestHTTPSignatureProvider_FetchesAndCaches(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte("opaque-token\n"))
	}))
	t.Cleanup(srv.Close)

	provider := NewHTTPSignatureProvider(srv.URL, logger.Default)

	for i := 0; i < 3; i++ {
		sig, err := provider.Signature(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "opaque-token", sig)
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestHTTPSignatureProvider_EmptyTokenIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("  \n"))
	}))
	t.Cleanup(srv.Close)

	provider := NewHTTPSignatureProvider(srv.URL, logger.Default)
	_, err := provider.Signature(context.Background())
	assert.Error(t, err)
}

func TestHTTPSignatureProvider_SignerErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	t.Cleanup(srv.Close)

	provider := NewHTTPSignatureProvider(srv.URL, logger.Default)
	_, err := provider.Signature(context.Background())
	assert.Error(t, err)
}

func TestFetchPage_GzipResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "gzip", r.Header.Get("Accept-Encoding"))

		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		require.NoError(t, json.NewEncoder(gz).Encode(catalogResponse{
			Items: []store.RawEntry{{Name: "Rai 1 .I", URL: "https://x/1"}},
		}))
		require.NoError(t, gz.Close())
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, logger.Default)
	items, err := client.fetchPage(context.Background(), "test-signature", "Italy", 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Rai 1 .I", items[0].Name)
}
