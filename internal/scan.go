package internal

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"sync"

	"github.com/pkg/errors"
)

// ScanConfig describes a square grid in the (x2, x3) plane with x0 and x1
// held fixed.
type ScanConfig struct {
	X0, X1   float64
	Min, Max float64
	// N is the number of samples per axis, at least 2.
	N int
	// Steps bounds each orbit.
	Steps int
	// Workers defaults to GOMAXPROCS.
	Workers int
}

func (c ScanConfig) validate() error {
	if c.N < 2 {
		return errors.Errorf("scan needs at least 2 samples per axis, got %d", c.N)
	}
	if !(c.Min < c.Max) {
		return errors.Errorf("scan range [%g, %g] is empty", c.Min, c.Max)
	}
	if c.Steps < 1 {
		return errors.Errorf("scan steps must be positive, got %d", c.Steps)
	}
	return nil
}

// coords of grid point (i, j): x2 runs along i, x3 along j.
func (c ScanConfig) coords(i, j int) CornerCoords {
	step := (c.Max - c.Min) / float64(c.N-1)
	return Coords(c.X0, c.X1, c.Min+float64(i)*step, c.Min+float64(j)*step)
}

type ScanResult struct {
	Start CornerCoords
	// Length is the number of iterations that succeeded.
	Length int
	// Kind is zero when the orbit survived all steps.
	Kind ErrorKind
}

func (r ScanResult) Degenerated() bool {
	return r.Kind != 0
}

// BoundaryScan runs one bounded orbit per grid point. The orbits are
// independent, so rows are spread over a fixed set of workers and each result
// is written to its own slot. Results are in row-major order (x2 major).
func BoundaryScan(ctx context.Context, m Map, cfg ScanConfig) ([]ScanResult, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	numWorkers := cfg.Workers
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	n := cfg.N
	results := make([]ScanResult, n*n)
	rowsPerWorker := (n + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		startRow := w * rowsPerWorker
		endRow := min(startRow+rowsPerWorker, n)
		if startRow >= endRow {
			continue
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			scanRows(ctx, m, cfg, results, start, end)
		}(startRow, endRow)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}
	return results, nil
}

func scanRows(ctx context.Context, m Map, cfg ScanConfig, results []ScanResult, startRow, endRow int) {
	for i := startRow; i < endRow; i++ {
		for j := 0; j < cfg.N; j++ {
			if ctx.Err() != nil {
				return
			}
			start := cfg.coords(i, j)
			length, err := m.OrbitLength(ctx, start, cfg.Steps)
			result := ScanResult{Start: start, Length: length}
			if mapErr, ok := AsMapError(err); ok {
				result.Kind = mapErr.Kind
				Logger().Warn("singularity during scan",
					slog.String("start", start.String()),
					slog.Int("iteration", mapErr.Iteration),
					slog.String("kind", mapErr.Kind.String()),
					slog.String("step", mapErr.Step))
			}
			results[i*cfg.N+j] = result
		}
	}
}

// WriteBoundary writes an "x2,x3" line for every scanned point whose orbit
// degenerated.
func WriteBoundary(w io.Writer, results []ScanResult) error {
	var boundary []CornerCoords
	for _, r := range results {
		if r.Degenerated() {
			boundary = append(boundary, r.Start)
		}
	}
	return WritePairs(w, boundary)
}
