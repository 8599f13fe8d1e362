package dispatch

import (
	"github.com/flashstub/core/flash"
	"github.com/flashstub/core/proto"
)

// handleFlashData answers FLASH_DATA: validate an operation is in
// progress, then defer the actual write to post-process so the host
// can send the next frame while this one's bytes land in flash (spec
// §4.4 point 2).
func handleFlashData(ctx *Context) (Result, PostProcess) {
	if !ctx.Core.flashOp.InProgress {
		return Result{Code: proto.NotInFlashMode}, nil
	}
	data, _, _ := ctx.Req.BulkRegion()
	post := func(pctx *Context) error {
		_, err := flash.WriteRaw(&pctx.Core.flashOp, pctx.Core.hal.Flash, data)
		return err
	}
	return Result{Code: proto.Success}, post
}

// handleFlashDeflData answers FLASH_DEFL_DATA: same precondition,
// deferring to the streaming inflate pump. seq==0 resets the
// dictionary write cursor (spec §4.4).
func handleFlashDeflData(ctx *Context) (Result, PostProcess) {
	if !ctx.Core.flashOp.InProgress {
		return Result{Code: proto.NotInFlashMode}, nil
	}
	data, fields, _ := ctx.Req.BulkRegion()
	post := func(pctx *Context) error {
		_, _, err := flash.PumpDeflate(&pctx.Core.flashOp, pctx.Core.hal.Flash, data, fields.Seq)
		return err
	}
	return Result{Code: proto.Success}, post
}
