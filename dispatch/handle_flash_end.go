package dispatch

import (
	"github.com/flashstub/core/flash"
	"github.com/flashstub/core/proto"
)

// handleFlashEnd answers FLASH_END/FLASH_DEFL_END: refuse if not in
// progress or if total_remaining is non-zero (spec §4.4 "stricter
// check"), otherwise clear the operation and, if the reboot flag is
// non-zero, defer the reboot itself to post-process so it happens
// after the response is on the wire.
func handleFlashEnd(ctx *Context) (Result, PostProcess) {
	if !ctx.Core.flashOp.InProgress {
		return Result{Code: proto.NotInFlashMode}, nil
	}
	if err := flash.End(&ctx.Core.flashOp); err != nil {
		return Result{Code: proto.BadDataLen}, nil
	}
	reboot := proto.LE32(ctx.Req.Payload()) != 0
	if !reboot {
		return Result{Code: proto.Success}, nil
	}
	return Result{Code: proto.Success}, func(pctx *Context) error {
		pctx.Core.hal.Reboot.Reboot()
		return nil
	}
}
