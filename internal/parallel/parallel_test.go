package parallel

import (
	"sync/atomic"
	"testing"
)

func TestForCoversRange(t *testing.T) {
	const n = 100000
	covered := make([]int32, n)
	For(n, 1024, func(start, end int) {
		for i := start; i < end; i++ {
			atomic.AddInt32(&covered[i], 1)
		}
	})
	for i, c := range covered {
		if c != 1 {
			t.Fatalf("index %d visited %d times", i, c)
		}
	}
}

func TestForSmallRangeRunsInline(t *testing.T) {
	var calls int32
	For(10, 1024, func(start, end int) {
		atomic.AddInt32(&calls, 1)
		if start != 0 || end != 10 {
			t.Errorf("inline chunk = [%d, %d), want [0, 10)", start, end)
		}
	})
	if calls != 1 {
		t.Errorf("small range used %d chunks, want 1", calls)
	}
}

func TestForZero(t *testing.T) {
	For(0, 16, func(start, end int) {
		if start != end {
			t.Errorf("non-empty chunk for n=0: [%d, %d)", start, end)
		}
	})
}
