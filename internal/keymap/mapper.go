package keymap

import (
	"fmt"
	"time"

	"deskcalc/internal/calc"
	"deskcalc/internal/transient"

	"go.uber.org/zap"
)

// Dispatcher receives the commands produced by key presses. *calc.Engine
// satisfies it.
type Dispatcher interface {
	Dispatch(cmd calc.Command) (calc.Snapshot, error)
}

// Result describes how a key press was handled.
type Result struct {
	// Handled is false for keys with no binding.
	Handled bool
	// PreventDefault asks the host to suppress its own handling of the key.
	PreventDefault bool
	Command        string
	Snapshot       calc.Snapshot
}

// Mapper routes key presses to a Dispatcher and keeps the transient
// active-key id used for press feedback.
type Mapper struct {
	target Dispatcher
	active *transient.Flash[string]
	logger *zap.Logger
}

type options struct {
	delay    time.Duration
	logger   *zap.Logger
	onChange func()
}

// Option configures a Mapper.
type Option func(*options)

// WithActiveDelay overrides how long a key stays active.
func WithActiveDelay(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.delay = d
		}
	}
}

// WithLogger sets the logger for key tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithNotify registers fn to run whenever the active key clears itself.
// fn runs on a timer goroutine.
func WithNotify(fn func()) Option {
	return func(o *options) {
		o.onChange = fn
	}
}

// New returns a Mapper dispatching to target.
func New(target Dispatcher, opts ...Option) *Mapper {
	o := options{
		delay:  DefaultActiveDelay,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Mapper{
		target: target,
		active: transient.NewFlash[string](o.delay, o.onChange),
		logger: o.logger,
	}
}

// HandleKey processes one key press. The command is dispatched before
// HandleKey returns; the active-key highlight clears later on its own.
// Unbound keys are ignored and return a zero Result without error.
func (m *Mapper) HandleKey(key string) (Result, error) {
	id, ok := Lookup(key)
	if !ok {
		return Result{PreventDefault: PreventsDefault(key)}, nil
	}

	m.active.Set(id)
	res := Result{
		Handled:        true,
		PreventDefault: PreventsDefault(key),
		Command:        id,
	}

	cmd, err := calc.ParseCommand(id)
	if err != nil {
		return res, fmt.Errorf("key %q: %w", key, err)
	}

	m.logger.Debug("key pressed", zap.String("key", key), zap.String("command", id))

	res.Snapshot, err = m.target.Dispatch(cmd)
	if err != nil {
		return res, fmt.Errorf("key %q: %w", key, err)
	}
	return res, nil
}

// ActiveKey returns the command id of the most recent key press, or "" once
// the highlight has expired.
func (m *Mapper) ActiveKey() string {
	return m.active.Get()
}

// Close cancels the pending highlight timer.
func (m *Mapper) Close() {
	m.active.Cancel()
}
