package collections

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransformSlice(t *testing.T) {
	out := TransformSlice([]int{1, 2, 3}, func(n int) string {
		return string(rune('a' + n - 1))
	})
	assert.Equal(t, []string{"a", "b", "c"}, out)
}

func TestSortedMapIterYieldsAscendingKeys(t *testing.T) {
	m := map[string]int{"zeta": 3, "alpha": 1, "mid": 2}
	var keys []string
	for k := range SortedMapIter(m) {
		keys = append(keys, k)
	}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, keys)
}
