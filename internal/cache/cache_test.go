package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache_GetSet(t *testing.T) {
	c := NewCache[string](time.Minute)

	_, ok := c.Get("golang")
	assert.False(t, ok)

	c.Set("golang", "4-123")
	got, ok := c.Get("golang")
	assert.True(t, ok)
	assert.Equal(t, "4-123", got)
}

func TestCache_Expiry(t *testing.T) {
	c := NewCache[string](time.Minute)
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return clock }

	c.Set("golang", "4-123")
	clock = clock.Add(59 * time.Second)
	_, ok := c.Get("golang")
	assert.True(t, ok)

	clock = clock.Add(2 * time.Second)
	got, ok := c.Get("golang")
	assert.False(t, ok)
	assert.Empty(t, got)
}

func TestCache_Delete(t *testing.T) {
	c := NewCache[int](time.Minute)
	c.Set("a", 1)
	c.Delete("a")

	_, ok := c.Get("a")
	assert.False(t, ok)
}
