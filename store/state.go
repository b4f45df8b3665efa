package store

import (
	"mediaflow-iptv/config"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/133.0.0.0 Safari/537.36"

// DefaultTransportHeaders are the headers the streaming proxy must forward
// to the upstream origin. They seed the headers document on first run and
// back it up whenever the document is absent.
func DefaultTransportHeaders() map[string]string {
	return map[string]string{
		"user-agent": defaultUserAgent,
		"referer":    "https://vavoo.to/",
		"origin":     "https://vavoo.to",
	}
}

func LoadProxyConfig() (ProxyConfig, error) {
	var cfg ProxyConfig
	err := readDocument(config.GetProxyConfigPath(), &cfg)
	return cfg, err
}

func SaveProxyConfig(cfg ProxyConfig) error {
	return writeDocument(config.GetProxyConfigPath(), cfg)
}

func LoadGenreMap() (GenreMap, error) {
	genres := GenreMap{}
	err := readDocument(config.GetGenreMapPath(), &genres)
	return genres, err
}

func SaveGenreMap(genres GenreMap) error {
	return writeDocument(config.GetGenreMapPath(), genres)
}

func LoadLogoMap() (LogoMap, error) {
	logos := LogoMap{}
	err := readDocument(config.GetLogoMapPath(), &logos)
	return logos, err
}

// LoadTransportHeaders returns the persisted transport headers, seeding the
// document with defaults when it does not exist yet.
func LoadTransportHeaders() (map[string]string, error) {
	headers := map[string]string{}
	if err := readDocument(config.GetTransportHeadersPath(), &headers); err != nil {
		return nil, err
	}
	if len(headers) == 0 {
		headers = DefaultTransportHeaders()
		if err := writeDocument(config.GetTransportHeadersPath(), headers); err != nil {
			return nil, err
		}
	}
	return headers, nil
}

func LoadRawEntries() ([]RawEntry, error) {
	var entries []RawEntry
	err := readDocument(config.GetChannelSourcePath(), &entries)
	return entries, err
}

func SaveRawEntries(entries []RawEntry) error {
	return writeDocument(config.GetChannelSourcePath(), entries)
}

func LoadSnapshot() ([]ChannelRecord, error) {
	var records []ChannelRecord
	err := readDocument(config.GetSnapshotPath(), &records)
	return records, err
}

// SaveSnapshot replaces the persisted catalog wholesale.
func SaveSnapshot(records []ChannelRecord) error {
	return writeDocument(config.GetSnapshotPath(), records)
}

// LoadChannelFilters returns the include-filter keywords for playlist
// export, seeding an empty document on first run. No filters means every
// channel is included.
func LoadChannelFilters() ([]string, error) {
	return loadKeywordList(config.GetChannelFiltersPath())
}

// LoadChannelExcludes returns the exclude keywords for playlist export,
// seeding an empty document on first run.
func LoadChannelExcludes() ([]string, error) {
	return loadKeywordList(config.GetChannelExcludesPath())
}

func loadKeywordList(path string) ([]string, error) {
	var keywords []string
	if err := readDocument(path, &keywords); err != nil {
		return nil, err
	}
	if keywords == nil {
		keywords = []string{}
		if err := writeDocument(path, keywords); err != nil {
			return nil, err
		}
	}
	return keywords, nil
}

// LoadCategoryKeywords returns the user-defined playlist categories,
// seeding an empty document on first run.
func LoadCategoryKeywords() (CategoryKeywords, error) {
	categories := CategoryKeywords{}
	if err := readDocument(config.GetCategoryKeywordsPath(), &categories); err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		if err := writeDocument(config.GetCategoryKeywordsPath(), categories); err != nil {
			return nil, err
		}
	}
	return categories, nil
}
