package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Residential Plots":     "residential-plots",
		"  PG / Co-Living  ":    "pg-co-living",
		"Flats & Apartments":    "flats-apartments",
		"Sector 15, Part II":    "sector-15-part-ii",
		"---":                   "",
		"Already-A-Slug":        "already-a-slug",
		"Multiple   Spaces":     "multiple-spaces",
		"Trailing Punctuation!": "trailing-punctuation",
	}

	for input, want := range cases {
		assert.Equal(t, want, Slugify(input), "input=%q", input)
	}
}

func TestSlugCandidate(t *testing.T) {
	assert.Equal(t, "flats", slugCandidate("flats", 0))
	assert.Equal(t, "flats", slugCandidate("flats", 1))
	assert.Equal(t, "flats-2", slugCandidate("flats", 2))
	assert.Equal(t, "flats-17", slugCandidate("flats", 17))
}
