// Package stubloop implements the foreground control loop spec §2
// describes: poll the framing codec, dispatch a completed frame, reset
// on a framing error, and exit once a handler (RUN_USER_CODE) reports
// that no response should follow.
//
// Grounded on forward.go's top-level retry/poll convention (ForwardOnce
// is meant to be called in a loop by the caller, retried on
// ErrWouldBlock/ErrMore); Run generalizes that single-call-per-iteration
// shape to the dispatcher's three-state poll (Idle/Complete/Error).
package stubloop

import (
	"runtime"

	"github.com/flashstub/core/dispatch"
	"github.com/flashstub/core/slip"
)

// Option configures Run.
type Option func(*options)

type options struct {
	idleFunc func()
}

// WithIdleFunc overrides what Run does on an Idle poll (no frame ready).
// Defaults to runtime.Gosched, mirroring framer's own cooperative-yield
// pattern (yieldOnce/waitOnceOnWouldBlock in internal.go) so a
// host-side/simulated loop doesn't spin a CPU core at 100% while a real
// bare-metal build substitutes a no-op or a WFI instruction via this
// same hook.
func WithIdleFunc(fn func()) Option {
	return func(o *options) { o.idleFunc = fn }
}

// Run polls codec.GetFrameState in a loop, dispatching completed frames
// through core and resetting on framing errors, until a handler reports
// noResponse (RUN_USER_CODE, spec §4.3/§8) or dispatch returns a
// transport error.
func Run(core *dispatch.Core, codec *slip.Codec, opts ...Option) error {
	o := options{idleFunc: runtime.Gosched}
	for _, fn := range opts {
		fn(&o)
	}

	for {
		switch codec.GetFrameState() {
		case slip.Error:
			codec.Reset()
		case slip.Complete:
			frame, err := codec.FrameData()
			if err != nil {
				codec.Reset()
				continue
			}
			noResponse, derr := core.Dispatch(frame)
			codec.Reset()
			if derr != nil {
				return derr
			}
			if noResponse {
				return nil
			}
		case slip.Idle:
			if o.idleFunc != nil {
				o.idleFunc()
			}
		}
	}
}
