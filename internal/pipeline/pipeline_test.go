package pipeline

import (
	"context"
	"testing"

	"github.com/rash-sh/relprep/internal/errors"
	"github.com/rash-sh/relprep/internal/logging"
)

func recordingStep(name string, order *[]string, err error) Step {
	return Step{
		Name: name,
		Run: func(context.Context) error {
			*order = append(*order, name)
			return err
		},
	}
}

func TestPipeline_RunsStepsInOrder(t *testing.T) {
	var order []string
	steps := []Step{
		recordingStep("first", &order, nil),
		recordingStep("second", &order, nil),
		recordingStep("third", &order, nil),
	}

	err := New(logging.NopLogger(), nil, steps).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []string{"first", "second", "third"}
	if len(order) != len(want) {
		t.Fatalf("ran %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("step[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestPipeline_FailFast(t *testing.T) {
	boom := errors.New("boom")

	var order []string
	steps := []Step{
		recordingStep("first", &order, nil),
		recordingStep("second", &order, boom),
		recordingStep("third", &order, nil),
	}

	err := New(logging.NopLogger(), nil, steps).Run(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("Run() error = %v, want the failing step's own error", err)
	}

	if len(order) != 2 {
		t.Errorf("ran %v, want execution to stop after the failing step", order)
	}
}

func TestPipeline_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var order []string
	steps := []Step{recordingStep("first", &order, nil)}

	err := New(logging.NopLogger(), nil, steps).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
	if !errors.Is(err, errors.ErrCanceled) {
		t.Fatalf("Run() error = %v, want it to match ErrCanceled", err)
	}
	if len(order) != 0 {
		t.Errorf("ran %v, want no steps after cancellation", order)
	}
}

func TestPipeline_NoSteps(t *testing.T) {
	if err := New(logging.NopLogger(), nil, nil).Run(context.Background()); err != nil {
		t.Errorf("Run() with no steps error = %v", err)
	}
}
