package cmdutil

import (
	"context"

	"blastseed/internal/pipeline"
)

// RunStream runs the shared pipeline, applies a visitor, and streams results
// via send. It returns the number of kept outputs, the pipeline totals and
// the first error encountered.
func RunStream[T any](
	ctx context.Context,
	cfg pipeline.Config,
	subjects []string,
	scanners pipeline.ScannerFactory,
	visit func(pipeline.Hit) (bool, T, error),
	send func(T) error,
) (int, pipeline.Totals, error) {
	total := 0
	tot, err := pipeline.ForEachHSP(ctx, cfg, subjects, scanners, func(h pipeline.Hit) error {
		keep, out, vErr := visit(h)
		if vErr != nil {
			return vErr
		}
		if !keep {
			return nil
		}
		if err := send(out); err != nil {
			return err
		}
		total++
		return nil
	})
	return total, tot, err
}
