package history

import (
	"context"
	"errors"
	"fmt"
)

// Policy decides what a batch does after a failed task.
type Policy int

const (
	// ContinueOnError runs every task regardless of earlier failures.
	ContinueOnError Policy = iota
	// StopOnFirstError skips the tasks after the first failure.
	StopOnFirstError
)

// Task is one API call of a batch.
type Task struct {
	Key   string
	Label string
	Run   func(ctx context.Context) error
}

// Outcome is the result of one task. Skipped tasks were never run.
type Outcome struct {
	Key     string
	Label   string
	Err     error
	Skipped bool
}

// BatchResult collects the outcomes of a batch in task order.
type BatchResult struct {
	Outcomes []Outcome
}

// Succeeded returns the outcomes of the tasks that ran without error.
func (r BatchResult) Succeeded() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if !o.Skipped && o.Err == nil {
			out = append(out, o)
		}
	}
	return out
}

// Failed returns the outcomes of the tasks that returned an error.
func (r BatchResult) Failed() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if !o.Skipped && o.Err != nil {
			out = append(out, o)
		}
	}
	return out
}

// Skipped counts the tasks that were not run.
func (r BatchResult) Skipped() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Skipped {
			n++
		}
	}
	return n
}

// Err joins the errors of every failed task.
func (r BatchResult) Err() error {
	var errs []error
	for _, o := range r.Failed() {
		errs = append(errs, fmt.Errorf("%s: %w", o.Label, o.Err))
	}
	return errors.Join(errs...)
}

// RunBatch runs the tasks one after another and calls onDone after each task
// that ran. A cancelled context skips the remaining tasks.
func RunBatch(ctx context.Context, tasks []Task, policy Policy, onDone func(Outcome)) BatchResult {
	result := BatchResult{Outcomes: make([]Outcome, 0, len(tasks))}
	stopped := false
	for _, task := range tasks {
		outcome := Outcome{Key: task.Key, Label: task.Label}
		if stopped || ctx.Err() != nil {
			outcome.Skipped = true
			result.Outcomes = append(result.Outcomes, outcome)
			continue
		}

		outcome.Err = task.Run(ctx)
		result.Outcomes = append(result.Outcomes, outcome)
		if onDone != nil {
			onDone(outcome)
		}
		if outcome.Err != nil && policy == StopOnFirstError {
			stopped = true
		}
	}
	return result
}
