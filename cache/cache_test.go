package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeenMarksOnFirstUse(t *testing.T) {
	c, err := New(10)
	require.NoError(t, err)

	assert.False(t, c.Seen("alice/r1", time.Minute))
	assert.True(t, c.Seen("alice/r1", time.Minute))
	assert.False(t, c.Seen("alice/r2", time.Minute))
}

func TestExpiredEntryIsForgotten(t *testing.T) {
	c, err := New(10)
	require.NoError(t, err)

	assert.False(t, c.Seen("k", -time.Second))
	assert.False(t, c.Seen("k", time.Minute), "expired entry should not count as seen")
	assert.True(t, c.Seen("k", time.Minute))
}

func TestEvictsBeyondSize(t *testing.T) {
	c, err := New(2)
	require.NoError(t, err)

	c.Seen("a", time.Minute)
	c.Seen("b", time.Minute)
	c.Seen("c", time.Minute)

	assert.False(t, c.Seen("a", time.Minute), "oldest entry should have been evicted")
}
