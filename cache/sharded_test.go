package cache

import (
	"fmt"
	"sync"
	"testing"
)

func TestSharded_GetSet(t *testing.T) {
	c := NewSharded[uint64, string](8, Uint64Hasher)

	if _, ok := c.Get(1); ok {
		t.Fatal("Get on empty cache reported a hit")
	}

	c.Set(1, "one")
	c.Set(2, "two")

	got, ok := c.Get(1)
	if !ok || got != "one" {
		t.Errorf("Get(1) = %q, %v, want %q, true", got, ok, "one")
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestSharded_GetOrCreate(t *testing.T) {
	c := NewSharded[uint64, int](8, Uint64Hasher)

	calls := 0
	create := func() int {
		calls++
		return 42
	}

	if v := c.GetOrCreate(7, create); v != 42 {
		t.Errorf("GetOrCreate = %d, want 42", v)
	}
	if v := c.GetOrCreate(7, create); v != 42 {
		t.Errorf("GetOrCreate = %d, want 42", v)
	}
	if calls != 1 {
		t.Errorf("create called %d times, want 1", calls)
	}

	stats := c.Stats()
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("Stats = %d hits / %d misses, want 1/1", stats.Hits, stats.Misses)
	}
}

func TestSharded_Eviction(t *testing.T) {
	// Capacity 2 per shard; identity hasher with keys mapping to one shard.
	c := NewSharded[uint64, int](2, func(u uint64) uint64 { return 0 })

	c.Set(1, 1)
	c.Set(2, 2)
	c.Set(3, 3) // evicts key 1 (oldest)

	if _, ok := c.Get(1); ok {
		t.Error("key 1 should have been evicted")
	}
	if _, ok := c.Get(3); !ok {
		t.Error("key 3 should be present")
	}
	if c.Stats().Evictions == 0 {
		t.Error("eviction counter not incremented")
	}
}

func TestSharded_LRUOrder(t *testing.T) {
	c := NewSharded[uint64, int](2, func(u uint64) uint64 { return 0 })

	c.Set(1, 1)
	c.Set(2, 2)
	c.Get(1) // key 1 becomes most recently used
	c.Set(3, 3)

	if _, ok := c.Get(1); !ok {
		t.Error("recently used key 1 was evicted")
	}
	if _, ok := c.Get(2); ok {
		t.Error("least recently used key 2 survived eviction")
	}
}

func TestSharded_DeleteClear(t *testing.T) {
	c := NewSharded[uint64, int](8, Uint64Hasher)
	c.Set(1, 1)
	c.Set(2, 2)

	if !c.Delete(1) {
		t.Error("Delete(1) = false, want true")
	}
	if c.Delete(1) {
		t.Error("Delete(1) twice = true, want false")
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", c.Len())
	}
}

func TestSharded_Concurrent(t *testing.T) {
	c := NewSharded[uint64, string](32, Uint64Hasher)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := uint64(i % 50)
				c.GetOrCreate(key, func() string {
					return fmt.Sprintf("v%d", key)
				})
			}
		}(g)
	}
	wg.Wait()

	for i := uint64(0); i < 50; i++ {
		want := fmt.Sprintf("v%d", i)
		if got, ok := c.Get(i); !ok || got != want {
			t.Fatalf("Get(%d) = %q, %v, want %q, true", i, got, ok, want)
		}
	}
}

func TestBytesHasher_Deterministic(t *testing.T) {
	a := BytesHasher([]byte("icon data"))
	b := BytesHasher([]byte("icon data"))
	if a != b {
		t.Errorf("BytesHasher not deterministic: %d != %d", a, b)
	}
	if a == BytesHasher([]byte("other data")) {
		t.Error("BytesHasher collided on different inputs")
	}
}
