package catalog

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/hashicorp/go-memdb"

	"mediaflow-iptv/logger"
	"mediaflow-iptv/store"
)

// IDPrefix namespaces every id this addon hands to the media client.
const IDPrefix = "mediaflow-"

// StreamInfo is the playable stream reference inside a ClientMeta.
type StreamInfo struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// ClientMeta is the client-facing projection of a ChannelRecord. It exists
// only inside the cache and is rebuilt from the persisted snapshot on miss.
type ClientMeta struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Type        string     `json:"type"`
	Genres      []string   `json:"genres"`
	Poster      string     `json:"poster"`
	PosterShape string     `json:"posterShape"`
	Background  string     `json:"background"`
	Logo        string     `json:"logo"`
	Stream      StreamInfo `json:"streamInfo"`
}

type metaRow struct {
	ID    string
	Genre string
	Pos   int
	Meta  ClientMeta
}

var cacheSchema = &memdb.DBSchema{
	Tables: map[string]*memdb.TableSchema{
		"meta": {
			Name: "meta",
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:    "id",
					Unique:  true,
					Indexer: &memdb.StringFieldIndex{Field: "ID"},
				},
				"genre": {
					Name:    "genre",
					Indexer: &memdb.StringFieldIndex{Field: "Genre"},
				},
			},
		},
	},
}

// Cache memoizes the ClientMeta projection of the persisted snapshot. The
// memo is a pure function of snapshot plus proxy config: Invalidate drops
// it and the next read rebuilds from storage. Values are replaced
// wholesale, never mutated, so handing the memoized slice to concurrent
// readers is safe.
type Cache struct {
	mu     sync.Mutex
	valid  bool
	metas  []ClientMeta
	index  *memdb.MemDB
	logger logger.Logger
}

func NewCache(l logger.Logger) *Cache {
	return &Cache{logger: l}
}

// Get returns the full projection, rebuilding it on miss. An incomplete
// proxy config or an absent snapshot yields an empty list, not an error.
func (c *Cache) Get() ([]ClientMeta, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ensureLocked(); err != nil {
		return nil, err
	}
	return c.metas, nil
}

// ByGenre returns the cached metas carrying the given genre, in snapshot
// order.
func (c *Cache) ByGenre(genre string) ([]ClientMeta, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ensureLocked(); err != nil {
		return nil, err
	}
	if c.index == nil {
		return nil, nil
	}

	txn := c.index.Txn(false)
	defer txn.Abort()

	it, err := txn.Get("meta", "genre", genre)
	if err != nil {
		return nil, fmt.Errorf("error querying genre index: %w", err)
	}

	var rows []*metaRow
	for raw := it.Next(); raw != nil; raw = it.Next() {
		rows = append(rows, raw.(*metaRow))
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Pos < rows[j].Pos })

	metas := make([]ClientMeta, 0, len(rows))
	for _, row := range rows {
		metas = append(metas, row.Meta)
	}
	return metas, nil
}

// Search returns the cached metas whose display name contains the query,
// case-insensitively.
func (c *Cache) Search(query string) ([]ClientMeta, error) {
	all, err := c.Get()
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(query)
	var metas []ClientMeta
	for _, meta := range all {
		if strings.Contains(strings.ToLower(meta.Name), query) {
			metas = append(metas, meta)
		}
	}
	return metas, nil
}

// ByID looks up a single meta by its client-facing id. An unknown id is
// not an error.
func (c *Cache) ByID(id string) (ClientMeta, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ensureLocked(); err != nil {
		return ClientMeta{}, false, err
	}
	if c.index == nil {
		return ClientMeta{}, false, nil
	}

	txn := c.index.Txn(false)
	defer txn.Abort()

	raw, err := txn.First("meta", "id", id)
	if err != nil {
		return ClientMeta{}, false, fmt.Errorf("error querying id index: %w", err)
	}
	if raw == nil {
		return ClientMeta{}, false, nil
	}
	return raw.(*metaRow).Meta, true, nil
}

// Invalidate drops only the memoized projection; persisted storage is
// untouched.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.valid = false
	c.metas = nil
	c.index = nil
}

func (c *Cache) ensureLocked() error {
	if c.valid {
		return nil
	}

	cfg, err := store.LoadProxyConfig()
	if err != nil {
		return fmt.Errorf("error loading proxy config: %w", err)
	}
	if !cfg.Complete() {
		c.valid = true
		c.metas = nil
		c.index = nil
		return nil
	}

	records, err := store.LoadSnapshot()
	if err != nil {
		return fmt.Errorf("error loading channel snapshot: %w", err)
	}
	if len(records) == 0 {
		c.valid = true
		c.metas = nil
		c.index = nil
		return nil
	}

	headers, err := store.LoadTransportHeaders()
	if err != nil {
		return fmt.Errorf("error loading transport headers: %w", err)
	}

	index, err := memdb.NewMemDB(cacheSchema)
	if err != nil {
		return fmt.Errorf("error creating cache index: %w", err)
	}
	txn := index.Txn(true)

	metas := make([]ClientMeta, 0, len(records))
	for i, record := range records {
		meta := toClientMeta(record, cfg, headers)
		metas = append(metas, meta)

		if err := txn.Insert("meta", &metaRow{
			ID:    meta.ID,
			Genre: record.Genre,
			Pos:   i,
			Meta:  meta,
		}); err != nil {
			txn.Abort()
			return fmt.Errorf("error indexing channel %s: %w", meta.ID, err)
		}
	}
	txn.Commit()

	c.valid = true
	c.metas = metas
	c.index = index
	c.logger.Debugf("Channel cache rebuilt with %d entries", len(metas))
	return nil
}

func toClientMeta(record store.ChannelRecord, cfg store.ProxyConfig, headers map[string]string) ClientMeta {
	name := CleanName(record.Name)
	return ClientMeta{
		ID:          IDPrefix + record.ID,
		Name:        name,
		Type:        "tv",
		Genres:      []string{record.Genre},
		Poster:      record.Icon,
		PosterShape: "square",
		Background:  record.Icon,
		Logo:        record.Icon,
		Stream: StreamInfo{
			URL:   BuildStreamURL(cfg, record.URL, headers),
			Title: name,
		},
	}
}

// BuildStreamURL points a channel URL at the external streaming proxy,
// embedding the proxy credential and the transport headers the proxy must
// forward as h_-prefixed query parameters.
func BuildStreamURL(cfg store.ProxyConfig, target string, headers map[string]string) string {
	host := strings.TrimPrefix(strings.TrimPrefix(cfg.MediaFlowURL, "https://"), "http://")
	host = strings.TrimSuffix(host, "/")

	params := url.Values{}
	params.Set("api_password", cfg.MediaFlowPsw)
	params.Set("d", target)
	for name, value := range headers {
		params.Set("h_"+strings.ToLower(name), value)
	}

	return "https://" + host + "/proxy/hls/manifest.m3u8?" + params.Encode()
}
