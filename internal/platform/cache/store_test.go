package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_LoadCoalescesConcurrentMisses(t *testing.T) {
	t.Parallel()

	store := NewStore[[]string](time.Minute)
	var calls atomic.Int32
	release := make(chan struct{})

	load := func(context.Context) ([]string, error) {
		calls.Add(1)
		<-release
		return []string{"erangel"}, nil
	}

	const callers = 12
	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := store.Load(context.Background(), "schedule:list", load)
			if err != nil {
				errs <- err
				return
			}
			if len(v) != 1 || v[0] != "erangel" {
				errs <- errors.New("unexpected loaded value")
			}
		}()
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("load: %v", err)
	}
	if got := calls.Load(); got < 1 || got > callers {
		t.Fatalf("unexpected load calls: %d", got)
	}
	if _, ok := store.Get("schedule:list"); !ok {
		t.Fatalf("loaded value should be cached")
	}
}

func TestStore_EntryExpiresAtTTL(t *testing.T) {
	store := NewStore[int](time.Second)
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	store.Set("k", 1)
	if v, ok := store.Get("k"); !ok || v != 1 {
		t.Fatalf("expected fresh entry, got %d %v", v, ok)
	}

	now = now.Add(time.Second)
	if _, ok := store.Get("k"); ok {
		t.Fatalf("entry should expire at ttl")
	}
}

func TestStore_ZeroTTLNeverExpires(t *testing.T) {
	store := NewStore[int](0)
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	store.Set("k", 7)
	now = now.Add(24 * time.Hour)
	if _, ok := store.Get("k"); !ok {
		t.Fatalf("entry without ttl should stay")
	}
}

func TestStore_Invalidate(t *testing.T) {
	store := NewStore[int](0)
	store.Set("schedule:list", 1)
	store.Set("schedule:id:a", 2)
	store.Set("room:list", 3)

	store.InvalidatePrefix("schedule:")
	if _, ok := store.Get("schedule:id:a"); ok {
		t.Fatalf("prefix invalidation missed a key")
	}
	if _, ok := store.Get("room:list"); !ok {
		t.Fatalf("prefix invalidation removed an unrelated key")
	}

	store.Invalidate("room:list")
	if _, ok := store.Get("room:list"); ok {
		t.Fatalf("invalidate did not remove key")
	}
}

func TestStore_LoadOverlappingInvalidationIsNotStored(t *testing.T) {
	store := NewStore[string](time.Minute)

	v, err := store.Load(context.Background(), "k", func(context.Context) (string, error) {
		store.Invalidate("k")
		return "stale", nil
	})
	if err != nil || v != "stale" {
		t.Fatalf("load: v=%q err=%v", v, err)
	}
	if _, ok := store.Get("k"); ok {
		t.Fatalf("value loaded across an invalidation must not be cached")
	}
}

func TestStore_LoadErrorIsNotCached(t *testing.T) {
	store := NewStore[string](time.Minute)
	var calls int
	load := func(context.Context) (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("db down")
		}
		return "ok", nil
	}

	if _, err := store.Load(context.Background(), "k", load); err == nil {
		t.Fatalf("expected load error")
	}
	v, err := store.Load(context.Background(), "k", load)
	if err != nil || v != "ok" {
		t.Fatalf("second load: v=%q err=%v", v, err)
	}
}
