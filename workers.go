package md2deck

import "runtime"

// Worker sizing constants.
const (
	// MinWorkers ensures at least one render runs at a time.
	MinWorkers = 1

	// MaxWorkers caps concurrent renders to stay polite with Kroki and
	// bound the number of Python processes.
	MaxWorkers = 8
)

// ResolveWorkers determines how many diagrams render concurrently.
// Priority: explicit workers > GOMAXPROCS (adjusted by automaxprocs in the
// CLI), clamped to [MinWorkers, MaxWorkers].
func ResolveWorkers(workers int) int {
	if workers > 0 {
		return workers
	}

	n := runtime.GOMAXPROCS(0)
	if n < MinWorkers {
		return MinWorkers
	}
	if n > MaxWorkers {
		return MaxWorkers
	}
	return n
}
