package dispatch

import "github.com/flashstub/core/proto"

// handleRunUserCode answers RUN_USER_CODE: no payload, no response
// frame. Core.Dispatch special-cases this opcode to suppress the
// response and report noResponse=true so the foreground loop exits
// and transfers control to the caller (spec §4.3, §8).
func handleRunUserCode(ctx *Context) (Result, PostProcess) {
	return Result{Code: proto.Success}, nil
}
