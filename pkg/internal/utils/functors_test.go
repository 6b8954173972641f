// functors_test.go file
package utils_test

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/joeydtaylor/electrode/pkg/internal/utils"
	"github.com/stretchr/testify/assert"
)

func TestFilter(t *testing.T) {
	names := utils.Filter([]string{"a.wav", "notes.txt", "b.WAV"}, func(s string) bool {
		return strings.HasSuffix(strings.ToLower(s), ".wav")
	})
	assert.Equal(t, []string{"a.wav", "b.WAV"}, names)
}

func TestContains(t *testing.T) {
	assert.True(t, utils.Contains([]string{"x", "y"}, "y"))
	assert.False(t, utils.Contains([]int{1, 2}, 3))
}

func TestClampInt(t *testing.T) {
	assert.Equal(t, 63, utils.ClampInt(5000, 0, 63))
	assert.Equal(t, 0, utils.ClampInt(-4, 0, 63))
	assert.Equal(t, 7, utils.ClampInt(7, 0, 63))
}

func TestSortedPair(t *testing.T) {
	lo, hi := utils.SortedPair(63, 3)
	assert.Equal(t, 3, lo)
	assert.Equal(t, 63, hi)
}

func TestGenerateUniqueHash(t *testing.T) {
	a, b := utils.GenerateUniqueHash(), utils.GenerateUniqueHash()
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
	_, err := hex.DecodeString(a)
	assert.NoError(t, err)
}
