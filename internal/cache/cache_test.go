package cache

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type mockFetcher struct {
	value []string
	err   error
	calls atomic.Int32
}

func (m *mockFetcher) fetch(_ context.Context, _ string) ([]string, error) {
	m.calls.Add(1)
	return m.value, m.err
}

func TestCacheHit(t *testing.T) {
	fetcher := &mockFetcher{value: []string{"bug"}}
	c := New(fetcher.fetch, 1*time.Minute)

	got, err := c.Get(context.Background(), "MIR")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got) != 1 || got[0] != "bug" {
		t.Errorf("value = %v, want [bug]", got)
	}

	if _, err := c.Get(context.Background(), "MIR"); err != nil {
		t.Fatalf("Get (cached): %v", err)
	}

	if fetcher.calls.Load() != 1 {
		t.Errorf("fetcher called %d times, want 1", fetcher.calls.Load())
	}
}

func TestCacheExpiry(t *testing.T) {
	fetcher := &mockFetcher{value: []string{"bug"}}
	c := New(fetcher.fetch, 1*time.Millisecond)

	if _, err := c.Get(context.Background(), "MIR"); err != nil {
		t.Fatalf("Get: %v", err)
	}

	time.Sleep(5 * time.Millisecond)

	if _, err := c.Get(context.Background(), "MIR"); err != nil {
		t.Fatalf("Get (expired): %v", err)
	}

	if fetcher.calls.Load() != 2 {
		t.Errorf("fetcher called %d times, want 2", fetcher.calls.Load())
	}
}

func TestCacheFetchError(t *testing.T) {
	fetcher := &mockFetcher{err: errors.New("network error")}
	c := New(fetcher.fetch, 1*time.Minute)

	if _, err := c.Get(context.Background(), "MIR"); err == nil {
		t.Fatal("expected error, got nil")
	}
	_, _ = c.Get(context.Background(), "MIR")
	if fetcher.calls.Load() != 2 {
		t.Errorf("fetcher called %d times, want 2 (errors are not cached)", fetcher.calls.Load())
	}
}

func TestCacheNilValue(t *testing.T) {
	fetcher := &mockFetcher{}
	c := New(fetcher.fetch, 1*time.Minute)

	got, err := c.Get(context.Background(), "MIR")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil, got %v", got)
	}

	// Nil results should also be cached
	_, _ = c.Get(context.Background(), "MIR")
	if fetcher.calls.Load() != 1 {
		t.Errorf("fetcher called %d times, want 1 (nil should be cached)", fetcher.calls.Load())
	}
}

func TestCacheForget(t *testing.T) {
	fetcher := &mockFetcher{value: []string{"bug"}}
	c := New(fetcher.fetch, 1*time.Minute)

	_, _ = c.Get(context.Background(), "MIR")
	c.Forget("MIR")
	_, _ = c.Get(context.Background(), "MIR")

	if fetcher.calls.Load() != 2 {
		t.Errorf("fetcher called %d times, want 2", fetcher.calls.Load())
	}
}
