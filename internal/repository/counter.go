package repository

import "context"

// CounterRepository mints sequential numbers per named counter.
type CounterRepository interface {
	// Next atomically increments the named counter and returns the new value.
	// A counter that does not exist yet starts at 1.
	Next(ctx context.Context, name string) (int64, error)
}
