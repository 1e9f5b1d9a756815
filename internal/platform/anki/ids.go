package anki

import (
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"math/big"
	"strconv"
)

// deckIDModulus bounds deck identifiers to a fixed range so they stay
// stable across reimplementations.
var deckIDModulus = big.NewInt(1_000_000_000)

// DeckID derives a deck identifier deterministically from the deck
// name: the SHA-256 digest of the name interpreted as an integer,
// reduced modulo 1e9. Repeated runs with the same name always produce
// the same identifier.
func DeckID(name string) int64 {
	sum := sha256.Sum256([]byte(name))

	n := new(big.Int).SetBytes(sum[:])
	return n.Mod(n, deckIDModulus).Int64()
}

// noteGUID derives a stable note identity from the note's joined field
// content, so reimporting a package updates notes instead of
// duplicating them.
func noteGUID(fields string) string {
	sum := sha256.Sum256([]byte(fields))
	return hex.EncodeToString(sum[:])[:10]
}

// fieldChecksum computes Anki's sort-field checksum: the integer value
// of the first 8 hex digits of the SHA-1 digest of the field.
func fieldChecksum(sortField string) int64 {
	sum := sha1.Sum([]byte(sortField))
	n, err := strconv.ParseInt(hex.EncodeToString(sum[:])[:8], 16, 64)
	if err != nil {
		// Unreachable: 8 hex digits always parse.
		return 0
	}
	return n
}
