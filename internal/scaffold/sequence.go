package scaffold

import (
	"context"
	"fmt"
)

// stage is one planned step and the work it announces.
type stage struct {
	step Step
	work func(ctx context.Context) error
}

// Sequence is a lazy, single-pass iterator over generation steps.
//
//	seq := gen.Generate()
//	for seq.Next(ctx) {
//		render(seq.Step())
//	}
//	if err := seq.Err(); err != nil { ... }
//
// Each call to Next first performs the work announced by the previous step
// and then yields the next one. A consumer that stops calling Next leaves a
// partially written project behind. A Sequence is not safe for concurrent
// use.
type Sequence struct {
	plan    func() ([]stage, error)
	stages  []stage
	pos     int
	pending func(ctx context.Context) error

	state State
	cur   Step
	err   error
}

func newSequence(plan func() ([]stage, error)) *Sequence {
	return &Sequence{plan: plan}
}

// failedSequence returns a sequence whose first Next reports err.
func failedSequence(err error) *Sequence {
	return newSequence(func() ([]stage, error) { return nil, err })
}

// Next advances to the next step. It returns false when the sequence is
// exhausted or a step failed; Err distinguishes the two.
func (s *Sequence) Next(ctx context.Context) bool {
	switch s.state {
	case StateCompleted, StateFailed:
		return false
	case StateNotStarted:
		stages, err := s.plan()
		if err != nil {
			return s.fail(err)
		}
		s.stages = stages
		s.state = StateRunning
	}

	if s.pending != nil {
		work := s.pending
		s.pending = nil
		if err := ctx.Err(); err != nil {
			return s.fail(err)
		}
		if err := work(ctx); err != nil {
			return s.fail(err)
		}
	}

	if s.pos >= len(s.stages) {
		s.state = StateCompleted
		return false
	}

	next := s.stages[s.pos]
	s.pos++
	if next.step.Current < s.cur.Current {
		return s.fail(fmt.Errorf("step %q would move progress back from %d to %d",
			next.step.Tag, s.cur.Current, next.step.Current))
	}
	s.cur = next.step
	s.pending = next.work
	return true
}

func (s *Sequence) fail(err error) bool {
	s.state = StateFailed
	s.err = err
	s.pending = nil
	return false
}

// Step returns the step most recently yielded by Next.
func (s *Sequence) Step() Step {
	return s.cur
}

// Err returns the error that ended the sequence, if any.
func (s *Sequence) Err() error {
	return s.err
}

// State reports where the sequence is in its lifecycle.
func (s *Sequence) State() State {
	return s.state
}
