package dedup

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func TestMemoryFilterSeen(t *testing.T) {
	f := NewMemoryFilter(DefaultWindow)
	ctx := context.Background()

	seen, err := f.Seen(ctx, "m1")
	if err != nil || seen {
		t.Fatalf("first sighting = %v, %v; want false, nil", seen, err)
	}
	seen, err = f.Seen(ctx, "m1")
	if err != nil || !seen {
		t.Fatalf("second sighting = %v, %v; want true, nil", seen, err)
	}
	seen, _ = f.Seen(ctx, "m2")
	if seen {
		t.Error("different id reported as seen")
	}
}

func TestMemoryFilterExpiry(t *testing.T) {
	clock := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	f := NewMemoryFilter(10 * time.Second).(*memoryFilter)
	f.now = func() time.Time { return clock }
	ctx := context.Background()

	f.Seen(ctx, "m1")

	clock = clock.Add(9 * time.Second)
	if seen, _ := f.Seen(ctx, "m1"); !seen {
		t.Error("id expired before the window elapsed")
	}

	clock = clock.Add(11 * time.Second)
	if seen, _ := f.Seen(ctx, "m1"); seen {
		t.Error("id still seen after the window elapsed")
	}
}

func TestMemoryFilterPrunes(t *testing.T) {
	clock := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	f := NewMemoryFilter(10 * time.Second).(*memoryFilter)
	f.now = func() time.Time { return clock }
	ctx := context.Background()

	for i := 0; i < 100; i++ {
		f.Seen(ctx, fmt.Sprintf("m%d", i))
	}
	clock = clock.Add(time.Minute)
	f.Seen(ctx, "fresh")

	if got := len(f.seen); got != 1 {
		t.Errorf("entries after window = %d, want 1", got)
	}
}
