package catalog

import (
	"github.com/gosimple/slug"

	"mediaflow-iptv/utils"
)

// RecordID derives the catalog id of a channel entry. The id is a slug of
// the cleaned name plus a truncated content hash over the comparison name
// and stream URL, so it stays stable across rebuilds and distinguishes
// channels that share a display name.
func RecordID(name, streamURL string) string {
	checksum := utils.CalculateChecksum(NormalizeName(name) + "|" + streamURL)
	return slug.Make(CleanName(name)) + "-" + checksum[:8]
}
