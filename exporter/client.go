package exporter

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/klauspost/compress/gzip"

	"mediaflow-iptv/logger"
	"mediaflow-iptv/store"
)

const (
	catalogID     = "vto-iptv"
	clientVersion = "3.0.2"
	fetchTimeout  = 10 * time.Second
)

// Client pages through the MediaHubMX catalog endpoint.
type Client struct {
	httpClient *http.Client
	endpoint   string
	logger     logger.Logger
}

func NewClient(endpoint string, l logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: fetchTimeout},
		endpoint:   endpoint,
		logger:     l,
	}
}

type catalogFilter struct {
	Group string `json:"group"`
}

type catalogRequest struct {
	Language      string        `json:"language"`
	Region        string        `json:"region"`
	CatalogID     string        `json:"catalogId"`
	ID            string        `json:"id"`
	Adult         bool          `json:"adult"`
	Search        string        `json:"search"`
	Sort          string        `json:"sort"`
	Filter        catalogFilter `json:"filter"`
	Cursor        int           `json:"cursor"`
	ClientVersion string        `json:"clientVersion"`
}

type catalogResponse struct {
	Items []store.RawEntry `json:"items"`
}

// FetchAll accumulates catalog pages, advancing the cursor by the number
// of items each page returned, until a page comes back empty or a call
// fails. On failure the entries fetched so far are returned alongside the
// error so callers can keep the partial result.
func (c *Client) FetchAll(ctx context.Context, signature, group string) ([]store.RawEntry, error) {
	var all []store.RawEntry
	cursor := 0

	for {
		items, err := c.fetchPage(ctx, signature, group, cursor)
		if err != nil {
			return all, fmt.Errorf("error fetching catalog page at cursor %d: %w", cursor, err)
		}
		if len(items) == 0 {
			return all, nil
		}

		all = append(all, items...)
		cursor += len(items)
		c.logger.Debugf("Fetched %d channels, cursor now %d", len(items), cursor)
	}
}

func (c *Client) fetchPage(ctx context.Context, signature, group string, cursor int) ([]store.RawEntry, error) {
	body, err := json.Marshal(catalogRequest{
		Language:      "de",
		Region:        "AT",
		CatalogID:     catalogID,
		ID:            catalogID,
		Sort:          "name",
		Filter:        catalogFilter{Group: group},
		Cursor:        cursor,
		ClientVersion: clientVersion,
	})
	if err != nil {
		return nil, fmt.Errorf("error encoding catalog request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept-Encoding", "gzip")
	req.Header.Set("User-Agent", "MediaHubMX/2")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("mediahubmx-signature", signature)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog endpoint returned status %d", resp.StatusCode)
	}

	// Accept-Encoding is set explicitly above, which disables net/http's
	// transparent decompression, so gzip has to be handled here.
	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("error decoding gzip response: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	var result catalogResponse
	if err := json.NewDecoder(reader).Decode(&result); err != nil {
		return nil, fmt.Errorf("error decoding catalog response: %w", err)
	}

	return result.Items, nil
}

// Source adapts the paginated client into a catalog entry source, so the
// refresh scheduler can build directly from the upstream catalog instead
// of the channel source document.
type Source struct {
	client *Client
	signer SignatureProvider
	group  string
	logger logger.Logger
}

func NewSource(client *Client, signer SignatureProvider, group string, l logger.Logger) *Source {
	return &Source{
		client: client,
		signer: signer,
		group:  group,
		logger: l,
	}
}

func (s *Source) Entries(ctx context.Context) ([]store.RawEntry, error) {
	signature, err := s.signer.Signature(ctx)
	if err != nil {
		return nil, fmt.Errorf("error obtaining upstream signature: %w", err)
	}

	entries, err := s.client.FetchAll(ctx, signature, s.group)
	if err != nil {
		if len(entries) == 0 {
			return nil, err
		}
		s.logger.Warnf("Upstream pagination stopped early, continuing with %d channels: %v", len(entries), err)
	}
	return entries, nil
}
