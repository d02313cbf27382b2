// Package pipeline implements the ordered release-preparation sequence:
// edit the manifest version, propagate it across the project, refresh the
// dependency lock, regenerate the changelog, and capture everything in a
// single release commit.
//
// Execution is strictly sequential and fail-fast: each step's success is a
// precondition for the next, and the first failure aborts the run leaving
// the working tree exactly as the failing step left it. There is no rollback;
// the operator fixes the cause and re-runs from the top.
package pipeline

import (
	"context"

	"github.com/rash-sh/relprep/internal/errors"
	"github.com/rash-sh/relprep/internal/logging"
	"github.com/rash-sh/relprep/internal/ui"
)

// Step is one stage of the release pipeline. Run blocks until the step's
// external process exits; its error aborts the whole pipeline.
type Step struct {
	// Name identifies the step in output and logs.
	Name string
	// Run performs the step's side effects.
	Run func(ctx context.Context) error
}

// Pipeline executes steps in order on a single working tree.
type Pipeline struct {
	steps   []Step
	log     *logging.Logger
	printer *ui.Printer
}

// New creates a Pipeline over the given steps.
func New(log *logging.Logger, printer *ui.Printer, steps []Step) *Pipeline {
	if log == nil {
		log = logging.NopLogger()
	}
	return &Pipeline{
		steps:   steps,
		log:     log,
		printer: printer,
	}
}

// Run executes the steps top to bottom, aborting on the first error.
// The returned error is the failing step's own error, untouched, so the
// underlying tool's diagnostics reach the operator verbatim.
func (p *Pipeline) Run(ctx context.Context) error {
	for i, step := range p.steps {
		if err := ctx.Err(); err != nil {
			return errors.Join(errors.ErrCanceled, err)
		}

		if p.printer != nil {
			p.printer.Step(i+1, len(p.steps), step.Name)
		}

		log := p.log.WithStep(step.Name)
		log.Debug("running step")

		if err := step.Run(ctx); err != nil {
			log.Error("step failed", "error", err.Error())
			return err
		}

		log.Debug("step complete")
	}
	return nil
}
