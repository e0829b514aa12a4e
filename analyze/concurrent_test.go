package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConcurrentMapPreservesOrder(t *testing.T) {
	inputs := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	out := concurrentMap(inputs, 4, func(n int) int { return n * n })
	assert.Equal(t, []int{0, 1, 4, 9, 16, 25, 36, 49, 64, 81}, out)
}

func TestConcurrentMapEmptyInput(t *testing.T) {
	out := concurrentMap([]int{}, 4, func(n int) int { return n })
	assert.Empty(t, out)
}

func TestConcurrentMapZeroConcurrencyRunsUnbounded(t *testing.T) {
	inputs := []int{1, 2, 3}
	out := concurrentMap(inputs, 0, func(n int) int { return n + 1 })
	assert.Equal(t, []int{2, 3, 4}, out)
}
