package parallel

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestMapOrderedPreservesInputOrder(t *testing.T) {
	p := NewPool(4)
	defer p.Shutdown()

	items := []int{0, 1, 2, 3, 4, 5, 6, 7}
	results, err := MapOrdered(context.Background(), p, items,
		func(ctx context.Context, n int) (string, error) {
			time.Sleep(time.Duration(rand.Intn(20)) * time.Millisecond)
			return fmt.Sprintf("item-%d", n), nil
		},
		func(n int, err error) string { return "fallback" },
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, r := range results {
		if want := fmt.Sprintf("item-%d", i); r != want {
			t.Fatalf("result %d = %q, want %q", i, r, want)
		}
	}
}

func TestMapOrderedFallbackOnError(t *testing.T) {
	p := NewPool(4)
	defer p.Shutdown()

	items := []int{1, 2, 3, 4, 5}
	results, err := MapOrdered(context.Background(), p, items,
		func(ctx context.Context, n int) (string, error) {
			if n == 3 {
				return "", fmt.Errorf("item %d failed", n)
			}
			return fmt.Sprintf("ok-%d", n), nil
		},
		func(n int, err error) string { return fmt.Sprintf("fallback-%d", n) },
	)
	if err != nil {
		t.Fatalf("a task error must not fail the batch: %v", err)
	}
	if len(results) != 5 {
		t.Fatalf("expected 5 results, got %d", len(results))
	}
	if results[2] != "fallback-3" {
		t.Fatalf("failed item should carry the fallback, got %q", results[2])
	}
	for i, r := range results {
		if i == 2 {
			continue
		}
		if want := fmt.Sprintf("ok-%d", i+1); r != want {
			t.Fatalf("result %d = %q, want %q", i, r, want)
		}
	}
}

func TestMapOrderedRecoversPanic(t *testing.T) {
	p := NewPool(2)
	defer p.Shutdown()

	results, err := MapOrdered(context.Background(), p, []int{1, 2},
		func(ctx context.Context, n int) (int, error) {
			if n == 2 {
				panic("boom")
			}
			return n * 10, nil
		},
		func(n int, err error) int { return -n },
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results[0] != 10 || results[1] != -2 {
		t.Fatalf("unexpected results %v", results)
	}
}

func TestMapOrderedEmptyInput(t *testing.T) {
	p := NewPool(2)
	defer p.Shutdown()

	results, err := MapOrdered(context.Background(), p, []int{},
		func(ctx context.Context, n int) (int, error) { return n, nil },
		func(n int, err error) int { return 0 },
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected empty result slice, got %v", results)
	}
}

func TestSubmitAfterShutdown(t *testing.T) {
	p := NewPool(2)
	p.Shutdown()
	if err := p.Submit(func() {}); err == nil {
		t.Fatalf("expected error submitting to a shut-down pool")
	}
	// A second shutdown is a no-op.
	p.Shutdown()
}

func TestMapOrderedAfterShutdown(t *testing.T) {
	p := NewPool(2)
	p.Shutdown()
	_, err := MapOrdered(context.Background(), p, []int{1, 2},
		func(ctx context.Context, n int) (int, error) { return n, nil },
		func(n int, err error) int { return 0 },
	)
	if err == nil {
		t.Fatalf("expected submission error on a shut-down pool")
	}
	if !strings.Contains(err.Error(), "submit") {
		t.Fatalf("error should name the submission failure, got %v", err)
	}
}

func TestPoolBoundsConcurrency(t *testing.T) {
	p := NewPool(3)
	defer p.Shutdown()

	var mu sync.Mutex
	active, peak := 0, 0
	items := make([]int, 20)
	_, err := MapOrdered(context.Background(), p, items,
		func(ctx context.Context, n int) (int, error) {
			mu.Lock()
			active++
			if active > peak {
				peak = active
			}
			mu.Unlock()
			time.Sleep(5 * time.Millisecond)
			mu.Lock()
			active--
			mu.Unlock()
			return 0, nil
		},
		func(n int, err error) int { return 0 },
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if peak > 3 {
		t.Fatalf("pool of 3 ran %d tasks at once", peak)
	}
}

func TestDefaultSizeBounds(t *testing.T) {
	n := DefaultSize()
	if n < 4 || n > 8 {
		t.Fatalf("default size %d out of [4,8]", n)
	}
}
