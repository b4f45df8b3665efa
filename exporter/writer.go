package exporter

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/valyala/bytebufferpool"

	"mediaflow-iptv/catalog"
	"mediaflow-iptv/logger"
	"mediaflow-iptv/store"
)

// SignaturePlaceholder stands in for the real upstream signature in the
// generated playlist. Players (or a wrapper script) must substitute it
// before use.
const SignaturePlaceholder = "[$KEY$]"

const epgGuideURL = "http://epg-guide.com/it.gz"

// Writer serializes channel entries into an extended-M3U playlist.
type Writer struct {
	Filters    []string
	Excludes   []string
	Categories store.CategoryKeywords
	Logos      store.LogoMap

	logger logger.Logger
}

func NewWriter(filters, excludes []string, categories store.CategoryKeywords, logos store.LogoMap, l logger.Logger) *Writer {
	return &Writer{
		Filters:    filters,
		Excludes:   excludes,
		Categories: categories,
		Logos:      logos,
		logger:     l,
	}
}

// Write emits one playlist block per surviving entry and returns the
// number of channels written. An entry is dropped when its name matches an
// exclude keyword, or when include filters are set and none match. Stream
// URLs are written as-is; reachability is not validated.
func (w *Writer) Write(out io.Writer, entries []store.RawEntry) (int, error) {
	if _, err := fmt.Fprintf(out, "#EXTM3U url-tvg=\"%s\"\n", epgGuideURL); err != nil {
		return 0, err
	}

	written := 0
	for _, entry := range entries {
		if entry.URL == "" {
			continue
		}
		if w.excluded(entry.Name) {
			w.logger.Debugf("Skipping channel %s (matches exclude list)", entry.Name)
			continue
		}
		if !w.included(entry.Name) {
			w.logger.Debugf("Excluded channel: %s", entry.Name)
			continue
		}

		if err := w.writeBlock(out, entry); err != nil {
			return written, err
		}
		written++
	}

	return written, nil
}

func (w *Writer) writeBlock(out io.Writer, entry store.RawEntry) error {
	title := tvgTitle(entry.Name)
	category := catalog.Categorize(entry.Name, w.Categories)
	logo := catalog.ResolveLogo(entry.Name, w.Logos)

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	fmt.Fprintf(buf, "#EXTINF:-1 tvg-id=\"%s\" tvg-name=\"%s\" tvg-logo=\"%s\" group-title=\"%s\",%s\n",
		title, title, logo, category, title)
	buf.WriteString("#EXTVLCOPT:http-user-agent=okhttp/4.11.0\n")
	buf.WriteString("#EXTVLCOPT:http-origin=https://vavoo.to/\n")
	buf.WriteString("#EXTVLCOPT:http-referrer=https://vavoo.to/\n")
	buf.WriteString("#EXTVLCOPT:mediahubmx-signature=" + SignaturePlaceholder + "\n")
	buf.WriteString(entry.URL + "\n")

	_, err := out.Write(buf.Bytes())
	return err
}

func (w *Writer) excluded(name string) bool {
	lower := strings.ToLower(name)
	for _, keyword := range w.Excludes {
		if keyword != "" && strings.Contains(lower, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}

func (w *Writer) included(name string) bool {
	if len(w.Filters) == 0 {
		return true
	}
	lower := strings.ToLower(name)
	for _, keyword := range w.Filters {
		if keyword != "" && strings.Contains(lower, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}

// tvgTitle is the cleaned channel name with each word capitalized, used
// for the tvg-id, tvg-name, and display fields of an EXTINF line.
func tvgTitle(name string) string {
	words := strings.Fields(catalog.CleanName(name))
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
