package exporter

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"mediaflow-iptv/logger"
)

const (
	signatureCacheKey = "signature"
	signatureTTL      = 5 * time.Minute
)

// SignatureProvider returns the opaque token the upstream catalog expects
// in its signature header. Deriving the token is delegated to an external
// signer.
type SignatureProvider interface {
	Signature(ctx context.Context) (string, error)
}

// HTTPSignatureProvider fetches the token from an external signer endpoint
// and memoizes it for a short TTL, since signers typically rate-limit and
// tokens outlive a single export run.
type HTTPSignatureProvider struct {
	httpClient *http.Client
	endpoint   string
	cache      *gocache.Cache
	logger     logger.Logger
}

func NewHTTPSignatureProvider(endpoint string, l logger.Logger) *HTTPSignatureProvider {
	return &HTTPSignatureProvider{
		httpClient: &http.Client{Timeout: fetchTimeout},
		endpoint:   endpoint,
		cache:      gocache.New(signatureTTL, signatureTTL),
		logger:     l,
	}
}

func (p *HTTPSignatureProvider) Signature(ctx context.Context) (string, error) {
	if cached, ok := p.cache.Get(signatureCacheKey); ok {
		return cached.(string), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint, nil)
	if err != nil {
		return "", err
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("error calling signer: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("signer returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading signer response: %w", err)
	}

	signature := strings.TrimSpace(string(body))
	if signature == "" {
		return "", fmt.Errorf("signer returned an empty token")
	}

	p.cache.Set(signatureCacheKey, signature, gocache.DefaultExpiration)
	p.logger.Debug("Obtained upstream signature from signer")
	return signature, nil
}

// StaticSignatureProvider returns a fixed token. Useful for tests and for
// callers that already hold a signature.
type StaticSignatureProvider string

func (s StaticSignatureProvider) Signature(context.Context) (string, error) {
	if s == "" {
		return "", fmt.Errorf("no signature configured")
	}
	return string(s), nil
}
