package testkit

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// NamedSpec pairs a Spec with the name it is reported under.
type NamedSpec struct {
	Name string
	Spec Spec
}

// Result is the outcome of one spec in a batch run.
type Result struct {
	Name     string
	Failures []string
	Err      error
}

// Failed reports whether the spec produced any failure or fatal error.
func (r Result) Failed() bool {
	return r.Err != nil || len(r.Failures) > 0
}

// VerifyAll runs independent specs concurrently, jobs at a time (GOMAXPROCS
// when jobs <= 0). Each spec owns its parser, expansion context, and sink,
// so runs share no mutable state. Results keep the input order. The only
// error returned is context cancellation.
func VerifyAll(ctx context.Context, specs []NamedSpec, jobs int) ([]Result, error) {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]Result, len(specs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, max(len(specs), 1)))

	for i, ns := range specs {
		i, ns := i, ns
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			var rec Recorder
			err := Run(&rec, ns.Spec)
			results[i] = Result{Name: ns.Name, Failures: rec.Failures, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
