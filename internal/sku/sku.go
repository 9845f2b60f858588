// Package sku derives stock keeping unit codes for variations. Codes are
// built from the product name plus the variation's term names, so "Camiseta
// de algodón" in Rojo / S becomes CAMISETA-ROJO-S.
package sku

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxSegmentLen = 12

// RemoveDiacritics strips accents so codes stay plain ASCII.
// Converts á, é, í, ó, ú, ü, ñ to a, e, i, o, u, u, n.
func RemoveDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

// Slug normalizes a name into one SKU segment: diacritics removed,
// uppercased, non-alphanumerics dropped, truncated to the segment limit.
// Multi-word names keep only their first word; the rest rarely
// disambiguates and keeps codes short.
func Slug(name string) string {
	cleaned := RemoveDiacritics(strings.TrimSpace(name))
	fields := strings.Fields(cleaned)
	if len(fields) == 0 {
		return ""
	}

	var b strings.Builder
	for _, r := range strings.ToUpper(fields[0]) {
		if r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
		if b.Len() >= maxSegmentLen {
			break
		}
	}
	return b.String()
}

// Generate builds a variation SKU from the product name and the variation's
// term names in axis order. Empty segments are skipped; an attribute-less
// (implicit) variation gets just the product segment.
func Generate(productName string, termNames []string) string {
	segments := make([]string, 0, 1+len(termNames))
	if s := Slug(productName); s != "" {
		segments = append(segments, s)
	}
	for _, name := range termNames {
		if s := Slug(name); s != "" {
			segments = append(segments, s)
		}
	}
	return strings.Join(segments, "-")
}

// MakeUnique suffixes a numeric counter when the base code is already taken.
// The taken set is updated with the returned code.
func MakeUnique(base string, taken map[string]bool) string {
	if base == "" {
		base = "SKU"
	}
	code := base
	for n := 2; taken[code]; n++ {
		code = fmt.Sprintf("%s-%d", base, n)
	}
	taken[code] = true
	return code
}
