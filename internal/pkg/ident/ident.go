// Package ident generates and inspects the opaque prefixed identifiers used
// across the catalog: persisted rows carry ids derived from their database
// key, while in-memory drafts carry random base62 ids. Uniqueness is the only
// contract; consumers never parse anything past the prefix.
package ident

import (
	crand "crypto/rand"
	"strconv"
	"strings"
	"time"
)

// Well-known id prefixes. A "tmp" id marks an entity that exists only in an
// edit session and has never been persisted.
const (
	PrefixVariation = "var"
	PrefixDraft     = "tmp"
	PrefixImage     = "img"
	PrefixProduct   = "prd"
)

const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

const randomLength = 18

// New returns a fresh id "<prefix>_<timestamp><random>" with a 6-character
// base62 timestamp for B-tree index locality followed by 18 random base62
// characters.
func New(prefix string) string {
	return prefix + "_" + encodeTimestamp(time.Now().Unix()) + randomBase62(randomLength)
}

// FromKey returns the stable id for a persisted database row,
// e.g. FromKey("var", 42) == "var_42".
func FromKey(prefix string, key int64) string {
	return prefix + "_" + strconv.FormatInt(key, 10)
}

// Key recovers the database key from a persisted id produced by FromKey.
// Returns false for draft ids and anything else without a numeric tail.
func Key(id string) (int64, bool) {
	_, tail, ok := strings.Cut(id, "_")
	if !ok {
		return 0, false
	}
	key, err := strconv.ParseInt(tail, 10, 64)
	if err != nil {
		return 0, false
	}
	return key, true
}

// HasPrefix reports whether id carries the given prefix.
func HasPrefix(id, prefix string) bool {
	return strings.HasPrefix(id, prefix+"_")
}

// IsDraft reports whether id marks a never-persisted entity.
func IsDraft(id string) bool {
	return HasPrefix(id, PrefixDraft)
}

// encodeTimestamp encodes Unix seconds as a fixed-width, lexicographically
// sortable 6-character base62 string. Covers roughly 1800 years of range.
func encodeTimestamp(seconds int64) string {
	buf := make([]byte, 6)
	n := seconds
	for i := 5; i >= 0; i-- {
		buf[i] = alphabet[n%62]
		n /= 62
	}
	return string(buf)
}

// randomBase62 produces length uniformly distributed base62 characters using
// 6-bit extraction with rejection sampling (values 62 and 63 are discarded to
// keep the distribution uniform).
func randomBase62(length int) string {
	// Over-request to absorb the ~3% rejection rate.
	raw := make([]byte, (length*6)/8+4)
	mustRead(raw)

	var b strings.Builder
	b.Grow(length)

	var bits uint64
	var have uint
	idx := 0

	for b.Len() < length {
		for have < 6 && idx < len(raw) {
			bits = bits<<8 | uint64(raw[idx])
			have += 8
			idx++
		}
		if have < 6 {
			mustRead(raw)
			idx, bits, have = 0, 0, 0
			continue
		}
		v := (bits >> (have - 6)) & 0x3f
		have -= 6
		if v < 62 {
			b.WriteByte(alphabet[v])
		}
	}
	return b.String()
}

func mustRead(buf []byte) {
	if _, err := crand.Read(buf); err != nil {
		panic("ident: failed to read random bytes: " + err.Error())
	}
}
