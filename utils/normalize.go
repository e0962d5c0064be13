package utils

import "strings"

// propertyTypeAliases maps free-text category/type tokens onto the
// canonical property types. Tokens not present here pass through
// normalized but otherwise unchanged.
var propertyTypeAliases = map[string]string{
	"co-living":         "pg",
	"coliving":          "pg",
	"paying-guest":      "pg",
	"paying guest":      "pg",
	"hostel":            "pg",
	"agricultural-land": "agricultural",
	"agricultural land": "agricultural",
	"farm-land":         "agricultural",
	"farmland":          "agricultural",
	"apartment":         "flat",
	"flats":             "flat",
	"builder-floor":     "flat",
	"house":             "residential",
	"villa":             "residential",
	"kothi":             "residential",
	"farmhouse":         "residential",
	"independent-house": "residential",
	"land":              "plot",
	"plots":             "plot",
	"shop":              "commercial",
	"office":            "commercial",
	"showroom":          "commercial",
	"warehouse":         "commercial",
}

// NormalizeToken lower-cases and trims a free-text token.
func NormalizeToken(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// CanonicalPropertyType maps a raw property-type token to its canonical
// value. Absence from the alias table is not a failure; the normalized
// token is returned as-is. Idempotent.
func CanonicalPropertyType(s string) string {
	token := NormalizeToken(s)
	if canonical, ok := propertyTypeAliases[token]; ok {
		return canonical
	}
	return token
}
