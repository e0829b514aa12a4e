package analyze

import "golang.org/x/sync/errgroup"

// concurrentMap runs f over every input with bounded concurrency and
// reassembles the outputs in input order, regardless of completion order --
// each goroutine writes to its own pre-sized slot, so no post-hoc sort is
// needed. Mirrors sqldef's ConcurrentMapFuncWithError, adapted to the
// read-only, post-assembly fan-out this package performs (§5: safe only
// after the model is frozen).
func concurrentMap[Tin, Tout any](inputs []Tin, concurrency int, f func(Tin) Tout) []Tout {
	eg := errgroup.Group{}
	if concurrency > 0 {
		eg.SetLimit(concurrency)
	}

	out := make([]Tout, len(inputs))
	for i := range inputs {
		i := i
		eg.Go(func() error {
			out[i] = f(inputs[i])
			return nil
		})
	}
	_ = eg.Wait() // f never returns an error; nothing to propagate

	return out
}
