package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/topicscan/topicscan/internal/model"
)

// recordingStep records whether it ran and can fail on demand.
type recordingStep struct {
	name string
	err  error
	ran  bool
}

func (s *recordingStep) Do(_ context.Context, _ *model.ResearchResult) error {
	s.ran = true
	return s.err
}

func (s *recordingStep) Name() string { return s.name }

// TestPipelineExecutesInOrder verifies steps run in registration order.
func TestPipelineExecutesInOrder(t *testing.T) {
	t.Parallel()

	var order []string
	mkStep := func(name string) Step {
		return stepFunc{name: name, fn: func() { order = append(order, name) }}
	}

	p := New()
	p.AddSteps(mkStep("first"), mkStep("second"), mkStep("third"))

	if err := p.Execute(context.Background(), model.NewResearchResult("t", 5)); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := []string{"first", "second", "third"}
	if len(order) != len(want) {
		t.Fatalf("expected %d steps to run, got %d", len(want), len(order))
	}
	for i, name := range want {
		if order[i] != name {
			t.Errorf("step %d: expected %q, got %q", i, name, order[i])
		}
	}
}

// stepFunc adapts a closure into a Step for ordering tests.
type stepFunc struct {
	name string
	fn   func()
}

func (s stepFunc) Do(_ context.Context, _ *model.ResearchResult) error {
	s.fn()
	return nil
}

func (s stepFunc) Name() string { return s.name }

// TestPipelineStopsOnError verifies a failing step halts the run.
func TestPipelineStopsOnError(t *testing.T) {
	t.Parallel()

	stepErr := errors.New("boom")
	failing := &recordingStep{name: "failing", err: stepErr}
	after := &recordingStep{name: "after"}

	p := New()
	p.AddSteps(failing, after)

	err := p.Execute(context.Background(), model.NewResearchResult("t", 5))
	if !errors.Is(err, stepErr) {
		t.Fatalf("expected step error, got %v", err)
	}
	if after.ran {
		t.Error("expected later step not to run after a failure")
	}
}

// TestPipelineRespectsCancellation verifies a cancelled context stops the
// run before the next step.
func TestPipelineRespectsCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	step := &recordingStep{name: "never"}
	p := New()
	p.AddSteps(step)

	err := p.Execute(ctx, model.NewResearchResult("t", 5))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if step.ran {
		t.Error("expected no step to run after cancellation")
	}
}

// TestPipelineStepNames verifies introspection helpers.
func TestPipelineStepNames(t *testing.T) {
	t.Parallel()

	p := New()
	p.AddSteps(&recordingStep{name: "a"}, &recordingStep{name: "b"})

	if got := p.StepCount(); got != 2 {
		t.Errorf("expected 2 steps, got %d", got)
	}

	names := p.StepNames()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("unexpected step names: %v", names)
	}
}
