package cache_test

import (
	"testing"
	"time"

	"github.com/mkowalczyk/siteaudit/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_GetSet(t *testing.T) {
	t.Parallel()

	t.Run("returns stored value before expiry", func(t *testing.T) {
		t.Parallel()

		s := cache.New[string](time.Minute)
		s.Set("k", "v")

		v, ok := s.Get("k")
		require.True(t, ok)
		assert.Equal(t, "v", v)
	})

	t.Run("returns false for missing key", func(t *testing.T) {
		t.Parallel()

		s := cache.New[string](time.Minute)

		_, ok := s.Get("missing")
		assert.False(t, ok)
	})

	t.Run("overwrites existing value", func(t *testing.T) {
		t.Parallel()

		s := cache.New[int](time.Minute)
		s.Set("k", 1)
		s.Set("k", 2)

		v, ok := s.Get("k")
		require.True(t, ok)
		assert.Equal(t, 2, v)
	})

	t.Run("evicts expired entry on get", func(t *testing.T) {
		t.Parallel()

		s := cache.New[string](time.Minute)
		s.SetTTL("k", "v", -time.Second)

		_, ok := s.Get("k")
		assert.False(t, ok)
		assert.Equal(t, 0, s.Len(), "expired entry should be evicted")
	})

	t.Run("expired entry counts until read", func(t *testing.T) {
		t.Parallel()

		s := cache.New[string](time.Minute)
		s.SetTTL("k", "v", -time.Second)

		assert.Equal(t, 1, s.Len(), "no background sweep")
	})
}

func TestStore_DeleteClear(t *testing.T) {
	t.Parallel()

	t.Run("delete removes a single entry", func(t *testing.T) {
		t.Parallel()

		s := cache.New[string](time.Minute)
		s.Set("a", "1")
		s.Set("b", "2")
		s.Delete("a")

		_, ok := s.Get("a")
		assert.False(t, ok)
		_, ok = s.Get("b")
		assert.True(t, ok)
	})

	t.Run("clear removes everything", func(t *testing.T) {
		t.Parallel()

		s := cache.New[string](time.Minute)
		s.Set("a", "1")
		s.Set("b", "2")
		s.Clear()

		assert.Equal(t, 0, s.Len())
	})
}

func TestKey(t *testing.T) {
	t.Parallel()

	t.Run("same parts produce same key", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, cache.Key("a", "b"), cache.Key("a", "b"))
	})

	t.Run("different parts produce different keys", func(t *testing.T) {
		t.Parallel()

		assert.NotEqual(t, cache.Key("a", "b"), cache.Key("a", "c"))
	})

	t.Run("part boundaries matter", func(t *testing.T) {
		t.Parallel()

		assert.NotEqual(t, cache.Key("ab", "c"), cache.Key("a", "bc"))
	})
}
