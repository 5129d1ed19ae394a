// Package viewmodels holds the presentation state of the JotMe client:
// history and reminders, asked questions, and the startup/authentication
// flow.
//
// Operations block until the backend answers and return its error. View
// state is only mutated inside a Dispatcher callback, so a host with a UI
// thread can route mutations onto it; the default runs them inline. A
// Dispatcher may queue fn and return before it runs: operations never read
// back what they dispatched. The session store has its own lock and is
// updated directly. Accessors return copies and are safe to call from any
// goroutine.
package viewmodels

// Dispatcher runs fn on the host's state-owning context, now or later.
// Callbacks must run in the order they were dispatched.
type Dispatcher func(fn func())

// Inline runs fn on the calling goroutine.
func Inline(fn func()) { fn() }

type options struct {
	dispatch Dispatcher
}

type Option func(*options)

// WithDispatcher sets where state mutations run.
func WithDispatcher(d Dispatcher) Option {
	return func(o *options) { o.dispatch = d }
}

func applyOptions(opts []Option) options {
	o := options{dispatch: Inline}
	for _, fn := range opts {
		fn(&o)
	}
	if o.dispatch == nil {
		o.dispatch = Inline
	}
	return o
}
