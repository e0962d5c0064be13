package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeToken(t *testing.T) {
	assert.Equal(t, "flat", NormalizeToken("  Flat "))
	assert.Equal(t, "model town", NormalizeToken("Model Town"))
	assert.Equal(t, "", NormalizeToken("   "))
}

func TestCanonicalPropertyType(t *testing.T) {
	cases := map[string]string{
		"Apartment":         "flat",
		"FLATS":             "flat",
		"builder-floor":     "flat",
		"co-living":         "pg",
		"Hostel":            "pg",
		"Agricultural Land": "agricultural",
		"farmland":          "agricultural",
		"House":             "residential",
		"villa":             "residential",
		"Kothi":             "residential",
		"land":              "plot",
		"Shop":              "commercial",
		"warehouse":         "commercial",
		"residential":       "residential",
		"pg":                "pg",
		"something-else":    "something-else",
		"":                  "",
	}

	for input, want := range cases {
		assert.Equal(t, want, CanonicalPropertyType(input), "input=%q", input)
	}
}

// Running a value through the normalizer twice must not change it
// again; the repair endpoint relies on this.
func TestCanonicalPropertyTypeIdempotent(t *testing.T) {
	inputs := []string{"Apartment", "co-living", "house", "plot", "unknown-token", "PG"}
	for _, input := range inputs {
		once := CanonicalPropertyType(input)
		assert.Equal(t, once, CanonicalPropertyType(once), "input=%q", input)
	}
}
