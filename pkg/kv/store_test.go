package kv

import (
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore_GetSetDelete(t *testing.T) {
	s := New[string, int]()

	_, ok := s.Get("missing")
	assert.False(t, ok)

	s.Set("a", 1)
	v, ok := s.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	s.Delete("a")
	_, ok = s.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
}

func TestStore_DeleteFunc(t *testing.T) {
	s := New[string, int]()
	s.Set("one", 1)
	s.Set("two", 2)
	s.Set("three", 3)

	removed := s.DeleteFunc(func(_ string, v int) bool { return v%2 == 1 })

	assert.Equal(t, 2, removed)
	assert.Equal(t, []string{"two"}, s.Keys())
}

func TestStore_Keys(t *testing.T) {
	s := New[string, bool]()
	s.Set("b", true)
	s.Set("a", true)

	keys := s.Keys()
	sort.Strings(keys)
	assert.Equal(t, []string{"a", "b"}, keys)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := New[int, int]()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			s.Set(n, n*n)
			_, _ = s.Get(n)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, s.Len())
}
