package dispatch

import "github.com/flashstub/core/proto"

// handleSync answers SYNC with 8 identical SUCCESS responses, value 0
// (spec §4.3, §8 scenario 1). It is the one handler allowed to call
// codec.SendFrame directly: it sends the first 7 itself so
// Core.Dispatch's "exactly one frame per call" contract holds for
// every other opcode, and returns the 8th as its ordinary Result.
func handleSync(ctx *Context) (Result, PostProcess) {
	result := Result{Value: 0, Data: make([]byte, 4), Code: proto.Success}
	for i := 0; i < 7; i++ {
		frame := ctx.Core.composeResponse(proto.OpSync, result)
		_ = ctx.Core.codec.SendFrame(frame)
	}
	return result, nil
}
