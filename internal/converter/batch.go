package converter

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/mcncl/funkinconv/internal/errors"
	"github.com/mcncl/funkinconv/internal/models"
)

// FileSource supplies the ordered list of files a user picked.
type FileSource interface {
	Files() ([]string, error)
}

// Reporter receives each file's outcome, in submission order.
type Reporter interface {
	Report(path string, outcome models.Outcome)
}

// Paths is a FileSource over a fixed list.
type Paths []string

// Files implements FileSource.
func (p Paths) Files() ([]string, error) {
	return p, nil
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(path string, outcome models.Outcome)

// Report implements Reporter.
func (f ReporterFunc) Report(path string, outcome models.Outcome) {
	f(path, outcome)
}

// FileOutcome pairs an input path with its Outcome.
type FileOutcome struct {
	Path    string
	Outcome models.Outcome
}

// Summary counts the outcomes of a batch.
func Summary(results []FileOutcome) (converted, total int) {
	for _, r := range results {
		if r.Outcome.OK {
			converted++
		}
	}
	return converted, len(results)
}

// ConvertBatch converts every path and returns one outcome per path in the
// order given. A failing file never stops the batch. Up to cfg.Batch.Jobs files
// are converted at once, but logging and reporting always follow the
// submission order. r may be nil.
func (c *Converter) ConvertBatch(ctx context.Context, paths []string, r Reporter) []FileOutcome {
	total := len(paths)
	results := make([]FileOutcome, total)
	done := make([]chan struct{}, total)
	for i := range done {
		done[i] = make(chan struct{})
	}

	var g errgroup.Group
	g.SetLimit(c.cfg.Batch.Jobs)
	go func() {
		for i, path := range paths {
			g.Go(func() error {
				defer close(done[i])
				results[i] = FileOutcome{Path: path, Outcome: c.convertWithContext(ctx, path)}
				return nil
			})
		}
	}()

	converted := 0
	for i, path := range paths {
		<-done[i]
		c.logger.Infof("[%d/%d] Processing: %s", i+1, total, path)
		o := results[i].Outcome
		if o.OK {
			converted++
			c.logger.Info("OK: " + o.Message)
		} else {
			c.logger.Error("ERROR: " + o.Message)
		}
		if r != nil {
			r.Report(path, o)
		}
	}
	_ = g.Wait()

	c.logger.Infof("Finished. Converted %d/%d file(s).", converted, total)
	return results
}

func (c *Converter) convertWithContext(ctx context.Context, path string) models.Outcome {
	if err := ctx.Err(); err != nil {
		return failure(errors.NewTransformError("batch cancelled", err))
	}
	return c.Convert(path)
}

// Run converts every file src supplies and reports each outcome to r.
func (c *Converter) Run(ctx context.Context, src FileSource, r Reporter) ([]FileOutcome, error) {
	paths, err := src.Files()
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, errors.NewInputError("no files to convert", errors.ErrNoInput)
	}
	return c.ConvertBatch(ctx, paths, r), nil
}
