package runtime

import "context"

// UpdateFunc is a pure transition function: it maps the current state and an
// incoming event to the next state and the next effect. It must not perform
// I/O.
type UpdateFunc[S, Ev, Ef any] func(state S, event Ev) (S, Ef)

// InterpretFunc executes a single effect, optionally performing blocking
// I/O, and resolves to at most one follow-up event.
//
// A nil event marks the effect as terminal: the loop stops and reports
// success. A non-nil error aborts the loop; interpreters are expected to
// convert expected failures (bad input, missing files) into events instead,
// reserving errors for conditions the state machine cannot absorb.
type InterpretFunc[Ev, Ef any] func(ctx context.Context, seq int64, effect Ef) (*Ev, error)

// StepObserver is notified after each completed transition with the step
// seq, the event that was consumed and the state/effect it produced.
type StepObserver[S, Ev, Ef any] func(seq int64, event Ev, state S, effect Ef)

// Loop drives one pure transition function against one effect interpreter.
type Loop[S, Ev, Ef any] struct {
	update    UpdateFunc[S, Ev, Ef]
	interpret InterpretFunc[Ev, Ef]
	clock     *Clock
	observer  StepObserver[S, Ev, Ef]
}

// Option configures a Loop.
type Option[S, Ev, Ef any] func(*Loop[S, Ev, Ef])

// WithClock replaces the loop's logical clock. Used to resume seq numbering
// for replay verification and to inject deterministic clocks in tests.
func WithClock[S, Ev, Ef any](c *Clock) Option[S, Ev, Ef] {
	return func(l *Loop[S, Ev, Ef]) {
		l.clock = c
	}
}

// WithObserver registers a step observer. The observer runs synchronously
// inside the loop, after the transition function and before the next
// interpretation.
func WithObserver[S, Ev, Ef any](fn StepObserver[S, Ev, Ef]) Option[S, Ev, Ef] {
	return func(l *Loop[S, Ev, Ef]) {
		l.observer = fn
	}
}

// New builds a Loop from a transition function and an interpreter.
func New[S, Ev, Ef any](
	update UpdateFunc[S, Ev, Ef],
	interpret InterpretFunc[Ev, Ef],
	opts ...Option[S, Ev, Ef],
) *Loop[S, Ev, Ef] {
	l := &Loop[S, Ev, Ef]{
		update:    update,
		interpret: interpret,
		clock:     NewClock(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run executes the loop from an initial state/effect pair and returns the
// final state.
//
// The loop is unbounded in principle; it terminates when the interpreter
// yields no event or when the context is cancelled. Cancellation is checked
// once per iteration, on the interpretation boundary only - a blocking read
// inside the interpreter blocks until input arrives, which is acceptable for
// a single sequential run.
func (l *Loop[S, Ev, Ef]) Run(ctx context.Context, state S, effect Ef) (S, error) {
	for {
		if err := ctx.Err(); err != nil {
			return state, err
		}

		seq := l.clock.Next()
		event, err := l.interpret(ctx, seq, effect)
		if err != nil {
			return state, err
		}
		if event == nil {
			// Terminal effect: the run is over.
			return state, nil
		}

		state, effect = l.update(state, *event)
		if l.observer != nil {
			l.observer(seq, *event, state, effect)
		}
	}
}

// Clock returns the loop's logical clock.
func (l *Loop[S, Ev, Ef]) Clock() *Clock {
	return l.clock
}
