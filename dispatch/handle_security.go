package dispatch

import "github.com/flashstub/core/proto"

// handleGetSecurityInfo answers GET_SECURITY_INFO: empty request
// payload, response inline data is whatever hal.SecurityInfo reports
// (spec §4.3).
func handleGetSecurityInfo(ctx *Context) (Result, PostProcess) {
	blob, err := ctx.Core.hal.Security.Get()
	if err != nil {
		return Result{Code: proto.FailedSPIOp}, nil
	}
	return Result{Data: blob, Code: proto.Success}, nil
}
