package epidemic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChainSetInsertAndContains(t *testing.T) {
	c := NewChainSet()
	c.Insert(5)
	assert.True(t, c.Contains(5))
	assert.False(t, c.Contains(6))
	assert.Equal(t, 1, c.Len())
}

func TestChainSetInsertIsIdempotent(t *testing.T) {
	c := NewChainSet()
	c.Insert(5)
	c.Insert(5)
	assert.Equal(t, 1, c.Len())
}

func TestChainSetCohortAging(t *testing.T) {
	c := NewChainSet()
	c.PushBack()
	c.Insert(1)
	c.PushBack()
	c.Insert(2)

	c.DropFront()
	assert.False(t, c.Contains(1))
	assert.True(t, c.Contains(2))
}

func TestChainSetDropEmptyFrontLeavesOccupiedCohorts(t *testing.T) {
	c := NewChainSet()
	c.PushBack()
	c.PushBack()
	c.Insert(7)
	c.DropEmptyFront()
	assert.True(t, c.Contains(7))
}

func TestChainSetDrainRespectsBudgetAndOrder(t *testing.T) {
	c := NewChainSet()
	c.Insert(1)
	c.PushBack()
	c.Insert(2)
	c.PushBack()
	c.Insert(3)

	var drained []int
	remaining := c.Drain(2, func(v int) bool {
		drained = append(drained, v)
		return true
	})
	require.Equal(t, 0, remaining)
	assert.Equal(t, []int{1, 2}, drained)
	assert.True(t, c.Contains(3))
}

func TestChainSetEvictFrontRemovesOldestOfOldestCohort(t *testing.T) {
	c := NewChainSet()
	c.Insert(1)
	c.Insert(2)
	v, ok := c.EvictFront()
	require.True(t, ok)
	assert.Equal(t, 1, v)
	assert.False(t, c.Contains(1))
	assert.True(t, c.Contains(2))
}
