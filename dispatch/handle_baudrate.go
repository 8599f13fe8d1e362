package dispatch

import "github.com/flashstub/core/proto"

// handleChangeBaudrate answers CHANGE_BAUDRATE: acknowledge first,
// then reprogram the UART divisor as a post-process — the host would
// never see the acknowledgment if the baud rate changed before it was
// sent (spec §4.3).
func handleChangeBaudrate(ctx *Context) (Result, PostProcess) {
	newBaud := proto.LE32(ctx.Req.Payload()[0:4])
	return Result{Code: proto.Success}, func(pctx *Context) error {
		return pctx.Core.hal.UART.SetBaudrate(newBaud)
	}
}
