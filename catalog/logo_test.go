package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mediaflow-iptv/store"
)

func TestResolveLogo_ExactMatch(t *testing.T) {
	logos := store.LogoMap{
		"Rai 1":     "https://logos.example/rai1.png",
		"Sky Sport": "https://logos.example/skysport.png",
	}

	assert.Equal(t, "https://logos.example/rai1.png", ResolveLogo("Rai 1 .I", logos))
	assert.Equal(t, "https://logos.example/skysport.png", ResolveLogo("sky sport", logos))
}

func TestResolveLogo_SubstringMatch(t *testing.T) {
	logos := store.LogoMap{
		"Sky Sport": "https://logos.example/skysport.png",
	}

	// Query contains the key.
	assert.Equal(t, "https://logos.example/skysport.png", ResolveLogo("Sky Sport Uno .I", logos))
	// Key contains the query.
	assert.Equal(t, "https://logos.example/skysport.png", ResolveLogo("Sky Spo", logos))
}

func TestResolveLogo_LongestKeyWins(t *testing.T) {
	logos := store.LogoMap{
		"Sky":          "https://logos.example/sky.png",
		"Sky Sport":    "https://logos.example/skysport.png",
		"Sky Sport F1": "https://logos.example/skysportf1.png",
	}

	for i := 0; i < 50; i++ {
		assert.Equal(t, "https://logos.example/skysportf1.png", ResolveLogo("Sky Sport F1 HD", logos))
	}
}

func TestResolveLogo_Placeholder(t *testing.T) {
	got := ResolveLogo("Canale Sconosciuto .I", store.LogoMap{})
	assert.Equal(t, "https://placehold.co/400x400?text=Canale+Sconosciuto&.png", got)
}

func TestResolveLogo_NeverEmpty(t *testing.T) {
	names := []string{"", "X", "Rai 1 .I", "some channel with a very long name"}
	for _, name := range names {
		assert.NotEmpty(t, ResolveLogo(name, store.LogoMap{}))
		assert.NotEmpty(t, ResolveLogo(name, nil))
	}
}
