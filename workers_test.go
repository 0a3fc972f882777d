package md2deck

import (
	"runtime"
	"testing"
)

func TestResolveWorkers(t *testing.T) {
	t.Parallel()

	t.Run("explicit value wins", func(t *testing.T) {
		t.Parallel()

		for _, n := range []int{1, 3, 16} {
			if got := ResolveWorkers(n); got != n {
				t.Errorf("ResolveWorkers(%d) = %d", n, got)
			}
		}
	})

	t.Run("auto is clamped", func(t *testing.T) {
		t.Parallel()

		want := runtime.GOMAXPROCS(0)
		want = max(MinWorkers, min(want, MaxWorkers))
		for _, n := range []int{0, -1} {
			if got := ResolveWorkers(n); got != want {
				t.Errorf("ResolveWorkers(%d) = %d, want %d", n, got, want)
			}
		}
	})
}
