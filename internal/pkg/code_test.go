package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandDigits(t *testing.T) {
	for i := 0; i < 20; i++ {
		code, err := RandDigits(6)
		require.NoError(t, err)
		require.Len(t, code, 6)
		for _, c := range code {
			assert.True(t, c >= '0' && c <= '9', "unexpected char %q in %q", c, code)
		}
	}

	code, err := RandDigits(0)
	require.NoError(t, err)
	assert.Empty(t, code)
}
