package idgen

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
)

// Alphabet is the 62-symbol set short codes are drawn from.
const Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// DefaultLength is the short code length used when none is configured.
const DefaultLength = 6

var alphabetSize = big.NewInt(int64(len(Alphabet)))

// RandomGenerator produces fixed-length codes with every character drawn uniformly from Alphabet.
// Codes are not unique by themselves; the store decides.
type RandomGenerator struct {
	length int
}

func NewRandomGenerator(length int) *RandomGenerator {
	if length <= 0 {
		length = DefaultLength
	}
	return &RandomGenerator{length: length}
}

func (g *RandomGenerator) Length() int {
	return g.length
}

func (g *RandomGenerator) Generate(_ context.Context) (string, error) {
	return GenerateCode(g.length)
}

// GenerateCode returns length characters from Alphabet using crypto/rand.
func GenerateCode(length int) (string, error) {
	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		b[i] = Alphabet[n.Int64()]
	}
	return string(b), nil
}

// IsValidCode reports whether code could have come from a generator of the given length.
func IsValidCode(code string, length int) bool {
	if len(code) != length {
		return false
	}
	for i := 0; i < len(code); i++ {
		c := code[i]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9') {
			return false
		}
	}
	return true
}

var _ Generator = (*RandomGenerator)(nil)
