package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"mediaflow-iptv/logger"
	"mediaflow-iptv/store"
	"mediaflow-iptv/utils/safemap"
)

// ErrNotConfigured is returned when the streaming proxy coordinates are
// missing. Callers treat it as the unconfigured state, not a failure.
var ErrNotConfigured = errors.New("streaming proxy not configured")

// buildWorkers caps the number of entries resolved concurrently.
const buildWorkers = 8

// EntrySource yields the raw channel entries a build runs over.
type EntrySource interface {
	Entries(ctx context.Context) ([]store.RawEntry, error)
}

// FileSource reads raw entries from the channel source document, seeding
// it with sample channels when empty so a fresh install has something to
// serve before a real source is wired in.
type FileSource struct {
	logger logger.Logger
}

func NewFileSource(l logger.Logger) *FileSource {
	return &FileSource{logger: l}
}

func (s *FileSource) Entries(_ context.Context) ([]store.RawEntry, error) {
	entries, err := store.LoadRawEntries()
	if err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		entries = []store.RawEntry{
			{Name: "Rai 1 .I", URL: "https://example.com/rai1.m3u8", Genre: "general"},
			{Name: "Canale 5 .I", URL: "https://example.com/canale5.m3u8", Genre: "general"},
			{Name: "Sky Sport .I", URL: "https://example.com/skysport.m3u8", Genre: "sports"},
			{Name: "Discovery Channel .I", URL: "https://example.com/discovery.m3u8", Genre: "documentary"},
		}
		if err := store.SaveRawEntries(entries); err != nil {
			return nil, err
		}
		s.logger.Logf("Seeded channel source with %d sample channels", len(entries))
	}

	return entries, nil
}

// Builder turns raw channel entries into the persisted catalog snapshot.
type Builder struct {
	logger logger.Logger
	source EntrySource
}

func NewBuilder(source EntrySource, l logger.Logger) *Builder {
	return &Builder{
		logger: l,
		source: source,
	}
}

// Build resolves genre, icon, and id for every raw entry, persists
// first-write-wins genre map updates, and replaces the catalog snapshot
// wholesale. It aborts with ErrNotConfigured before touching anything when
// the proxy config is incomplete, and leaves the prior snapshot in place
// on any failure.
func (b *Builder) Build(ctx context.Context) ([]store.ChannelRecord, error) {
	cfg, err := store.LoadProxyConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading proxy config: %w", err)
	}
	if !cfg.Complete() {
		return nil, ErrNotConfigured
	}

	genres, err := store.LoadGenreMap()
	if err != nil {
		return nil, fmt.Errorf("error loading genre map: %w", err)
	}
	logos, err := store.LoadLogoMap()
	if err != nil {
		return nil, fmt.Errorf("error loading logo map: %w", err)
	}

	entries, err := b.source.Entries(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading channel entries: %w", err)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	// Entries are resolved concurrently; results keep source order so the
	// snapshot is deterministic for a given input.
	results := make([]*store.ChannelRecord, len(entries))
	updates := safemap.New[string, string]()

	var wg sync.WaitGroup
	sem := make(chan struct{}, buildWorkers)

	for i, entry := range entries {
		if entry.Name == "" || entry.URL == "" {
			b.logger.Debugf("Skipping channel entry with missing name or URL at index %d", i)
			continue
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(i int, entry store.RawEntry) {
			defer wg.Done()
			defer func() { <-sem }()

			genre := entry.Genre
			if !IsGenre(genre) {
				genre = AssignGenre(entry.Name, genres)
			}
			if !IsGenre(genre) {
				genre = DefaultGenre
			}

			results[i] = &store.ChannelRecord{
				ID:    RecordID(entry.Name, entry.URL),
				Name:  entry.Name,
				URL:   entry.URL,
				Genre: genre,
				Icon:  ResolveLogo(entry.Name, logos),
			}

			// First write wins: concurrent duplicates of a name keep the
			// genre of whichever entry got there first, and names already
			// in the persisted map are filtered below.
			updates.GetOrSet(NormalizeName(entry.Name), genre)
		}(i, entry)
	}
	wg.Wait()

	records := make([]store.ChannelRecord, 0, len(entries))
	for _, r := range results {
		if r != nil {
			records = append(records, *r)
		}
	}

	changed := false
	updates.ForEach(func(name, genre string) bool {
		if _, ok := genres[name]; !ok {
			genres[name] = genre
			changed = true
		}
		return true
	})
	if changed {
		if err := store.SaveGenreMap(genres); err != nil {
			return nil, fmt.Errorf("error persisting genre map: %w", err)
		}
	}

	if err := store.SaveSnapshot(records); err != nil {
		return nil, fmt.Errorf("error persisting channel snapshot: %w", err)
	}

	b.logger.Logf("Channel snapshot saved: %d channels", len(records))
	return records, nil
}
