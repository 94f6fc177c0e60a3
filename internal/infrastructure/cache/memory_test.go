package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/listingcheck/backend/internal/domain"
)

func newTestCache(t *testing.T) *MemoryCache {
	t.Helper()
	c := NewMemoryCache(time.Minute)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestMemoryCache_SetAndGet(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	t.Run("string round trips unchanged", func(t *testing.T) {
		if err := cache.Set(ctx, "k1", "value", time.Minute); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		got, err := cache.Get(ctx, "k1")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got != "value" {
			t.Errorf("Get() = %v, want value", got)
		}
	})

	t.Run("struct comes back as decoded JSON map", func(t *testing.T) {
		analysis := &domain.PropertyAnalysis{
			ID:         "abc",
			ListingURL: "https://www.realtor.ca/real-estate/1/x",
			RiskLevel:  domain.RiskCaution,
		}
		if err := cache.Set(ctx, "k2", analysis, time.Minute); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		got, err := cache.Get(ctx, "k2")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		m, ok := got.(map[string]interface{})
		if !ok {
			t.Fatalf("Get() type = %T, want map[string]interface{}", got)
		}
		if m["id"] != "abc" || m["risk_level"] != "Caution" {
			t.Errorf("Get() = %v, want id=abc risk_level=Caution", m)
		}
	})

	t.Run("expired entry is a miss", func(t *testing.T) {
		if err := cache.Set(ctx, "k3", "soon", time.Millisecond); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		time.Sleep(10 * time.Millisecond)
		if _, err := cache.Get(ctx, "k3"); !errors.Is(err, domain.ErrCacheMiss) {
			t.Errorf("Get() error = %v, want ErrCacheMiss", err)
		}
	})

	t.Run("unencodable value is rejected", func(t *testing.T) {
		if err := cache.Set(ctx, "k4", make(chan int), time.Minute); err == nil {
			t.Error("Set() error = nil, want error for channel value")
		}
	})
}

func TestMemoryCache_Get_CacheMiss(t *testing.T) {
	cache := newTestCache(t)

	_, err := cache.Get(context.Background(), "non-existent-key")
	if !errors.Is(err, domain.ErrCacheMiss) {
		t.Errorf("Get() error = %v, want %v", err, domain.ErrCacheMiss)
	}
}

func TestMemoryCache_DeleteAndExists(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	exists, _ := cache.Exists(ctx, "key")
	if exists {
		t.Error("Exists() = true before Set")
	}

	if err := cache.Set(ctx, "key", "value", time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	exists, _ = cache.Exists(ctx, "key")
	if !exists {
		t.Error("Exists() = false after Set")
	}

	if err := cache.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	exists, _ = cache.Exists(ctx, "key")
	if exists {
		t.Error("Exists() = true after Delete")
	}

	if err := cache.Set(ctx, "short", "value", time.Millisecond); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	exists, _ = cache.Exists(ctx, "short")
	if exists {
		t.Error("Exists() = true after expiration")
	}
}

func TestMemoryCache_RemoveExpired(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	_ = cache.Set(ctx, "live", "v", time.Hour)
	_ = cache.Set(ctx, "dead", "v", time.Millisecond)

	cache.removeExpired(time.Now().Add(time.Second))

	if size := cache.Size(); size != 1 {
		t.Errorf("Size() = %d, want 1 after sweep", size)
	}
	if _, err := cache.Get(ctx, "live"); err != nil {
		t.Errorf("Get(live) error = %v", err)
	}
}

func TestMemoryCache_Clear(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := cache.Set(ctx, fmt.Sprintf("k%d", i), i, time.Minute); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
	}
	if size := cache.Size(); size != 5 {
		t.Fatalf("Size() = %d, want 5 before clear", size)
	}

	cache.Clear()

	if size := cache.Size(); size != 0 {
		t.Errorf("Size() = %d, want 0 after clear", size)
	}
}

func TestMemoryCache_CloseIsIdempotent(t *testing.T) {
	cache := NewMemoryCache(0)
	if err := cache.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := cache.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestMemoryCache_Concurrent(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", id)
			if err := cache.Set(ctx, key, id, time.Minute); err != nil {
				t.Errorf("Concurrent Set() error = %v", err)
			}
			if _, err := cache.Get(ctx, key); err != nil {
				t.Errorf("Concurrent Get() error = %v", err)
			}
		}(i)
	}
	wg.Wait()
}
