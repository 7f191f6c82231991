package random_test

import (
	"github.com/myrjola/kompassi/internal/random"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestLetters(t *testing.T) {
	s, err := random.Letters(20)
	require.NoError(t, err)
	require.Len(t, s, 20)
	for _, r := range s {
		require.True(t, (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'), "unexpected rune %q", r)
	}

	empty, err := random.Letters(0)
	require.NoError(t, err)
	require.Empty(t, empty)
}
