package lab_test

import (
	"pen/internal/lab"
	"pen/pkg/serrors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRate(t *testing.T) {
	tests := []struct {
		password string
		score    int
		label    string
	}{
		{password: "", score: 0, label: "Très faible"},
		{password: "abc", score: 0, label: "Très faible"},
		{password: "abcdefgh", score: 1, label: "Faible"},
		{password: "abcdefghijkl", score: 2, label: "Moyen"},
		{password: "Abcdefghijkl", score: 3, label: "Fort"},
		{password: "Abcdefghijk1", score: 4, label: "Très fort"},
		{password: "Abcdefghij1!", score: 5, label: "Très fort"},
		{password: "A1!", score: 3, label: "Fort"},
		{password: "motdepassé", score: 2, label: "Moyen"},
	}

	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			got := lab.Rate(tt.password)
			require.Equal(t, tt.score, got.Score)
			require.Equal(t, tt.label, got.Label)
			require.Equal(t, tt.score > 2, got.Strong)
		})
	}
}

func TestGenerate(t *testing.T) {
	for _, length := range []int{lab.MinLength, 20, lab.MaxLength} {
		pwd, err := lab.Generate(length)
		require.NoError(t, err)
		require.Len(t, pwd, length)
		for _, r := range pwd {
			require.True(t, strings.ContainsRune(lab.Alphabet, r), "unexpected %q", r)
		}
	}

	pwd, err := lab.Generate(0)
	require.NoError(t, err)
	require.Len(t, pwd, lab.DefaultLength)

	a, err := lab.Generate(32)
	require.NoError(t, err)
	b, err := lab.Generate(32)
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestGenerate_OutOfBounds(t *testing.T) {
	for _, length := range []int{-1, 7, 65} {
		_, err := lab.Generate(length)
		require.ErrorIs(t, err, serrors.ErrBadRequest)
	}
}
