package transient

import (
	"sync"
	"time"
)

// Flash holds a value that reverts to its zero value after a fixed delay.
// Setting a new value restarts the delay. Reads and writes are safe from
// any goroutine; the clear never blocks the caller of Set.
type Flash[T comparable] struct {
	mu        sync.Mutex
	value     T
	gen       uint64
	debouncer *Debouncer
	onChange  func()
}

// NewFlash returns a Flash that clears after d. onChange, if non-nil, runs
// after every automatic clear, on the timer goroutine.
func NewFlash[T comparable](d time.Duration, onChange func()) *Flash[T] {
	return &Flash[T]{
		debouncer: NewDebouncer(d),
		onChange:  onChange,
	}
}

// Set stores v and schedules it to be cleared.
func (f *Flash[T]) Set(v T) {
	f.mu.Lock()
	f.value = v
	f.gen++
	gen := f.gen
	f.mu.Unlock()

	f.debouncer.Debounce(func() {
		f.expire(gen)
	})
}

// expire clears the value unless a later Set superseded generation gen.
func (f *Flash[T]) expire(gen uint64) {
	f.mu.Lock()
	if f.gen != gen {
		f.mu.Unlock()
		return
	}
	var zero T
	f.value = zero
	f.mu.Unlock()

	if f.onChange != nil {
		f.onChange()
	}
}

// Get returns the current value.
func (f *Flash[T]) Get() T {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value
}

// Active reports whether a value is currently held.
func (f *Flash[T]) Active() bool {
	var zero T
	return f.Get() != zero
}

// Cancel stops any pending clear and resets the value immediately.
func (f *Flash[T]) Cancel() {
	f.debouncer.Cancel()

	f.mu.Lock()
	var zero T
	f.value = zero
	f.gen++
	f.mu.Unlock()
}
