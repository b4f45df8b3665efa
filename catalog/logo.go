package catalog

import (
	"net/url"
	"strings"

	"mediaflow-iptv/store"
)

// ResolveLogo returns an icon URL for a channel name. Lookup order: exact
// match on the normalized name, then bidirectional substring containment
// against every normalized map key where the longest key wins (ties broken
// lexicographically), then a synthesized placeholder. It never returns an
// empty URL.
func ResolveLogo(name string, logos store.LogoMap) string {
	normalized := NormalizeName(name)

	var (
		bestKey string
		bestURL string
	)
	for key, logoURL := range logos {
		normalizedKey := NormalizeName(key)
		if normalizedKey == "" {
			continue
		}

		if normalized == normalizedKey {
			return logoURL
		}

		if strings.Contains(normalized, normalizedKey) || strings.Contains(normalizedKey, normalized) {
			if len(normalizedKey) > len(bestKey) || (len(normalizedKey) == len(bestKey) && normalizedKey < bestKey) || bestKey == "" {
				bestKey = normalizedKey
				bestURL = logoURL
			}
		}
	}

	if bestURL != "" {
		return bestURL
	}

	return PlaceholderLogo(name)
}

// PlaceholderLogo synthesizes an icon URL from the cleaned channel name.
func PlaceholderLogo(name string) string {
	return "https://placehold.co/400x400?text=" + url.QueryEscape(CleanName(name)) + "&.png"
}
