// Package visitors holds per-hit transforms that run on the pipeline's
// collector goroutine before hits reach a writer.
package visitors

import (
	"blastseed-core/engine"
	"blastseed/internal/pipeline"
	"blastseed/internal/stats"
)

// PassThrough keeps every HSP and drops the pipeline bookkeeping.
type PassThrough struct{}

func (PassThrough) Visit(h pipeline.Hit) (keep bool, out engine.HSP, err error) {
	return true, h.HSP, nil
}

// Observe feeds every kept hit to a run summary.
type Observe[T any] struct {
	Summary *stats.Summary
	Next    func(pipeline.Hit) (bool, T, error)
}

func (o Observe[T]) Visit(h pipeline.Hit) (bool, T, error) {
	keep, out, err := o.Next(h)
	if err == nil && keep {
		o.Summary.Observe(h.Record, h.HSP)
	}
	return keep, out, err
}

// MinScore drops HSPs scoring below Score. Score <= 0 keeps everything.
type MinScore[T any] struct {
	Score int
	Next  func(pipeline.Hit) (bool, T, error)
}

func (m MinScore[T]) Visit(h pipeline.Hit) (bool, T, error) {
	if m.Score > 0 && h.Score < m.Score {
		var zero T
		return false, zero, nil
	}
	return m.Next(h)
}
