package store

// RawEntry is a single channel entry as delivered by an upstream source.
// Genre is an optional hint and is only honored when it names a known genre.
type RawEntry struct {
	Name  string `json:"name"`
	URL   string `json:"url"`
	Genre string `json:"genre,omitempty"`
}

// ChannelRecord is one catalog entry as persisted in the snapshot. The
// whole snapshot is replaced on every successful build.
type ChannelRecord struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	URL   string `json:"url"`
	Genre string `json:"genre"`
	Icon  string `json:"icon"`
}

// GenreMap maps a normalized channel name to its genre. Entries are only
// ever added, never rewritten, so the first classification of a name wins
// across refresh cycles.
type GenreMap map[string]string

// LogoMap maps a channel name to an icon URL. Curated externally,
// read-only here.
type LogoMap map[string]string

// CategoryKeywords maps a user-defined playlist category to the keywords
// that select it.
type CategoryKeywords map[string][]string

// ProxyConfig carries the streaming proxy coordinates. Both fields must be
// set for catalog builds to run.
type ProxyConfig struct {
	MediaFlowURL string `json:"mediaflow_url"`
	MediaFlowPsw string `json:"mediaflow_psw"`
}

func (c ProxyConfig) Complete() bool {
	return c.MediaFlowURL != "" && c.MediaFlowPsw != ""
}
