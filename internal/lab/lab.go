// Package lab implements the password laboratory: a strength meter and a
// random password generator.
package lab

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"pen/pkg/serrors"
	"strings"
)

// Alphabet excludes look-alike characters (I, O, i, l, o, 0, 1).
const Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghjkmnpqrstuvwxyz23456789!@#$%&*"

const (
	MinLength     = 8
	MaxLength     = 64
	DefaultLength = 16
	// MaxScore is the number of strength criteria.
	MaxScore = 5
)

var labels = []string{"Très faible", "Faible", "Moyen", "Fort", "Très fort"} //nolint: gochecknoglobals

// Strength is the result of rating a password.
type Strength struct {
	Score int    `json:"score"`
	Label string `json:"label"`
	// Strong is set once more than two criteria are met.
	Strong bool `json:"strong"`
}

// Rate gives one point per criterion: at least 8 characters, at least 12
// characters, an uppercase ASCII letter, a digit, a character outside
// [A-Za-z0-9].
func Rate(password string) Strength {
	var upper, digit, other bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case r >= 'a' && r <= 'z':
		default:
			other = true
		}
	}

	// Length counts characters, not bytes.
	n := len([]rune(password))
	score := 0
	for _, ok := range []bool{n >= 8, n >= 12, upper, digit, other} {
		if ok {
			score++
		}
	}

	return Strength{
		Score:  score,
		Label:  labels[min(score, len(labels)-1)],
		Strong: score > 2,
	}
}

// Generate returns a password of length characters drawn uniformly from
// Alphabet. A zero length selects DefaultLength.
func Generate(length int) (string, error) {
	if length == 0 {
		length = DefaultLength
	}
	if length < MinLength || length > MaxLength {
		return "", serrors.With(serrors.ErrBadRequest,
			"length must be between %d and %d", MinLength, MaxLength)
	}

	limit := big.NewInt(int64(len(Alphabet)))
	var b strings.Builder
	b.Grow(length)
	for range length {
		i, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("could not read random source: %w", err)
		}
		b.WriteByte(Alphabet[i.Int64()])
	}

	return b.String(), nil
}
