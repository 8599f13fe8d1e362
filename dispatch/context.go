package dispatch

import "github.com/flashstub/core/proto"

// Context is the per-dispatch handle passed to a Handler and its
// PostProcess: the validated request plus a pointer back to Core so
// handlers can reach flash/mem/hal state.
type Context struct {
	Core *Core
	Req  proto.Request
}
