package resource

import (
	"context"
	"reflect"
	"sync"

	"github.com/rs/zerolog"
)

type Option func(*options)

type options struct {
	name   string
	logger zerolog.Logger
}

// WithName labels log lines emitted by the loader.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Loader owns the State of one Operation. It is safe for concurrent use.
type Loader[T any] struct {
	op   Operation[T]
	opts options

	// publishMu orders deliveries so subscribers never see an older
	// invocation's state after a newer one's.
	publishMu sync.Mutex

	mu      sync.Mutex
	state   State[T]
	seq     uint64
	mounted bool
	deps    []any
	nextSub int
	subs    map[int]func(State[T])
}

func New[T any](op Operation[T], opts ...Option) *Loader[T] {
	o := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Loader[T]{
		op:    op,
		opts:  o,
		state: Pending[T](),
		subs:  make(map[int]func(State[T])),
	}
}

// State returns a snapshot of the current state.
func (l *Loader[T]) State() State[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Load invokes the operation on the first call and on every call whose
// deps differ from the previous call's. Otherwise it returns the current
// state untouched.
func (l *Loader[T]) Load(ctx context.Context, deps ...any) State[T] {
	l.mu.Lock()
	if l.mounted && depsEqual(l.deps, deps) {
		state := l.state
		l.mu.Unlock()
		return state
	}
	l.mounted = true
	l.deps = append([]any(nil), deps...)
	l.mu.Unlock()

	return l.Refetch(ctx)
}

// Refetch enters the loading state and invokes the operation. It returns
// the loader's state once this invocation settles; when a newer invocation
// started in the meantime, this result is dropped and the newer
// invocation's state (possibly still loading) is returned instead.
func (l *Loader[T]) Refetch(ctx context.Context) State[T] {
	l.mu.Lock()
	l.seq++
	seq := l.seq
	l.state = Pending[T]()
	l.mu.Unlock()
	l.publish(seq, Pending[T]())

	result := l.op(ctx)

	l.mu.Lock()
	if seq != l.seq {
		current := l.state
		latest := l.seq
		l.mu.Unlock()
		l.opts.logger.Debug().
			Str("resource", l.opts.name).
			Uint64("seq", seq).
			Uint64("latest", latest).
			Msg("dropping stale result")
		return current
	}
	l.state = result
	l.mu.Unlock()

	if result.Failed() {
		l.opts.logger.Warn().
			Str("resource", l.opts.name).
			Str("error", result.Error).
			Msg("resource load failed")
	}
	l.publish(seq, result)
	return result
}

// Subscribe registers fn to receive the states of the latest invocation.
// fn runs on the goroutine that produced the state, one delivery at a
// time, and must not call Load or Refetch itself.
func (l *Loader[T]) Subscribe(fn func(State[T])) (unsubscribe func()) {
	l.mu.Lock()
	id := l.nextSub
	l.nextSub++
	l.subs[id] = fn
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		delete(l.subs, id)
		l.mu.Unlock()
	}
}

// publish delivers state unless a newer invocation has started since seq.
func (l *Loader[T]) publish(seq uint64, state State[T]) {
	l.publishMu.Lock()
	defer l.publishMu.Unlock()

	l.mu.Lock()
	if seq != l.seq {
		l.mu.Unlock()
		return
	}
	subs := make([]func(State[T]), 0, len(l.subs))
	for _, fn := range l.subs {
		subs = append(subs, fn)
	}
	l.mu.Unlock()

	for _, fn := range subs {
		fn(state)
	}
}

func depsEqual(prev, next []any) bool {
	if len(prev) != len(next) {
		return false
	}
	for i := range prev {
		if !reflect.DeepEqual(prev[i], next[i]) {
			return false
		}
	}
	return true
}
