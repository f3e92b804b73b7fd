// Package simhash implements 64-bit SimHash fingerprinting for
// near-duplicate text detection via Hamming distance.
package simhash

import (
	"crypto/sha256"
	"encoding/binary"
	"math/bits"
	"strings"
	"unicode"
)

// DuplicateThreshold is the similarity at or above which two text blocks
// are flagged as near-duplicates.
const DuplicateThreshold = 0.92

// Fingerprint computes the 64-bit SimHash of a text: tokens are hashed to
// 64 bits each and vote bit-by-bit on the final fingerprint.
func Fingerprint(text string) uint64 {
	var vector [64]int
	for _, token := range Tokenize(text) {
		h := hashToken(token)
		for i := 0; i < 64; i++ {
			if h&(1<<uint(i)) != 0 {
				vector[i]++
			} else {
				vector[i]--
			}
		}
	}

	var fp uint64
	for i := 0; i < 64; i++ {
		if vector[i] >= 0 {
			fp |= 1 << uint(i)
		}
	}
	return fp
}

// Tokenize lower-cases the text, collapses whitespace and returns the
// alphanumeric word tokens of length >= 2.
func Tokenize(text string) []string {
	var tokens []string
	for _, field := range strings.Fields(strings.ToLower(text)) {
		token := strings.Map(func(r rune) rune {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				return r
			}
			return -1
		}, field)
		if len([]rune(token)) >= 2 {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// hashToken maps a token to 64 bits using a truncated cryptographic hash.
func hashToken(token string) uint64 {
	sum := sha256.Sum256([]byte(token))
	return binary.BigEndian.Uint64(sum[:8])
}

// HammingDistance counts the differing bits between two fingerprints.
func HammingDistance(a, b uint64) int {
	return bits.OnesCount64(a ^ b)
}

// Similarity maps Hamming distance to [0,1]: identical fingerprints are 1.
// Similarity is symmetric.
func Similarity(a, b uint64) float64 {
	return 1 - float64(HammingDistance(a, b))/64
}

// Pair records two block indices flagged as near-duplicates.
type Pair struct {
	A, B       int
	Similarity float64
}

// DuplicatePairs compares all fingerprint pairs and returns those with
// similarity >= threshold. The input is expected to be small (bounded
// upstream), so the O(n²) comparison is intentional.
func DuplicatePairs(fingerprints []uint64, threshold float64) []Pair {
	var pairs []Pair
	for i := 0; i < len(fingerprints); i++ {
		for j := i + 1; j < len(fingerprints); j++ {
			if sim := Similarity(fingerprints[i], fingerprints[j]); sim >= threshold {
				pairs = append(pairs, Pair{A: i, B: j, Similarity: sim})
			}
		}
	}
	return pairs
}
