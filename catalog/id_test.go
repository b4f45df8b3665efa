package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordID_StableAcrossRebuilds(t *testing.T) {
	first := RecordID("Sky Sport .I", "https://x/sky.m3u8")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, RecordID("Sky Sport .I", "https://x/sky.m3u8"))
	}
}

func TestRecordID_MarkerInsensitive(t *testing.T) {
	assert.Equal(t,
		RecordID("Sky Sport .I", "https://x/sky.m3u8"),
		RecordID("sky sport .C", "https://x/sky.m3u8"))
}

func TestRecordID_DistinguishesSameNameDifferentURL(t *testing.T) {
	assert.NotEqual(t,
		RecordID("Sky Sport .I", "https://x/sky-1.m3u8"),
		RecordID("Sky Sport .I", "https://x/sky-2.m3u8"))
}

func TestRecordID_Readable(t *testing.T) {
	assert.Regexp(t, `^sky-sport-[0-9a-f]{8}$`, RecordID("Sky Sport .I", "https://x/sky.m3u8"))
}
