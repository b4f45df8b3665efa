package catalog

import (
	"sort"
	"strings"

	"mediaflow-iptv/store"
)

// DefaultGenre is assigned when nothing else matches and is the clamp
// target for any out-of-set classification result.
const DefaultGenre = "general"

// DefaultCategory is the fallback bucket for the playlist path, where
// categories are user-defined.
const DefaultCategory = "OTHER"

// Genres is the fixed set of catalog genres, in manifest order.
var Genres = []string{
	"animation", "business", "classic", "comedy", "cooking", "culture",
	"documentary", "education", "entertainment", "family", "kids",
	"legislative", "lifestyle", "movies", "music", "general", "religious",
	"news", "outdoor", "relax", "series", "science", "shop", "sports",
	"travel", "weather", "xxx", "auto",
}

var genreSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(Genres))
	for _, g := range Genres {
		set[g] = struct{}{}
	}
	return set
}()

// IsGenre reports whether g is a member of the fixed genre set.
func IsGenre(g string) bool {
	_, ok := genreSet[g]
	return ok
}

type keywordRule struct {
	keyword string
	genre   string
}

// keywordRules is scanned in order and the first substring match wins, so
// a rule earlier in the list shadows later ones for names that contain
// several keywords.
var keywordRules = []keywordRule{
	{"sport", "sports"},
	{"calcio", "sports"},
	{"football", "sports"},
	{"news", "news"},
	{"notizie", "news"},
	{"tg", "news"},
	{"film", "movies"},
	{"cinema", "movies"},
	{"movie", "movies"},
	{"bambini", "kids"},
	{"kids", "kids"},
	{"cartoni", "animation"},
	{"documentari", "documentary"},
	{"doc", "documentary"},
	{"musica", "music"},
	{"music", "music"},
	{"comedy", "comedy"},
	{"commedia", "comedy"},
	{"lifestyle", "lifestyle"},
	{"cucina", "cooking"},
	{"food", "cooking"},
	{"meteo", "weather"},
	{"weather", "weather"},
	{"viaggi", "travel"},
	{"travel", "travel"},
	{"serie", "series"},
	{"auto", "auto"},
	{"motor", "auto"},
	{"xxx", "xxx"},
	{"adult", "xxx"},
}

// AssignGenre resolves the catalog genre of a channel name. Precedence:
// exact genre-map lookup of the normalized name, then the ordered keyword
// scan, then DefaultGenre. The result is always a member of the fixed set.
func AssignGenre(name string, genres store.GenreMap) string {
	normalized := NormalizeName(name)

	if genre, ok := genres[normalized]; ok {
		if IsGenre(genre) {
			return genre
		}
		return DefaultGenre
	}

	for _, rule := range keywordRules {
		if strings.Contains(normalized, rule.keyword) {
			return rule.genre
		}
	}

	return DefaultGenre
}

// Categorize resolves the playlist category of a channel name against
// user-defined keyword lists. Categories are scanned in sorted-name order:
// the keyword document is a JSON object, so the author's ordering does not
// survive decoding and a stable scan order has to be imposed.
func Categorize(name string, categories store.CategoryKeywords) string {
	lowerName := strings.ToLower(name)

	names := make([]string, 0, len(categories))
	for category := range categories {
		names = append(names, category)
	}
	sort.Strings(names)

	for _, category := range names {
		for _, keyword := range categories[category] {
			if keyword == "" {
				continue
			}
			if strings.Contains(lowerName, strings.ToLower(keyword)) {
				return category
			}
		}
	}

	return DefaultCategory
}
