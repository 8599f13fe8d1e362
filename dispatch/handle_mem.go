package dispatch

import (
	"github.com/flashstub/core/mem"
	"github.com/flashstub/core/proto"
)

// handleMemBegin answers MEM_BEGIN: same payload shape as FLASH_BEGIN,
// offset is a physical RAM address (spec §4.3).
func handleMemBegin(ctx *Context) (Result, PostProcess) {
	total, num, block, offset, _ := parseBeginPayload(ctx.Req.Payload())
	mem.Begin(&ctx.Core.memOp, total, num, block, offset)
	return Result{Code: proto.Success}, nil
}

// handleMemData answers MEM_DATA: deferred memcpy into RAM via the
// quarantined hal.Unsafe surface (spec §9).
func handleMemData(ctx *Context) (Result, PostProcess) {
	if !ctx.Core.memOp.InProgress {
		return Result{Code: proto.NotInFlashMode}, nil
	}
	data, _, _ := ctx.Req.BulkRegion()
	post := func(pctx *Context) error {
		_, err := mem.Copy(&pctx.Core.memOp, pctx.Core.hal.Unsafe, data)
		return err
	}
	return Result{Code: proto.Success}, post
}

// handleMemEnd answers MEM_END: payload is (flag, entrypoint). This
// pinned revision (spec §9) jumps when flag==0, deferred to
// post-process so the response reaches the host before control
// transfers away — Invariant 7 means that jump never returns.
func handleMemEnd(ctx *Context) (Result, PostProcess) {
	if !ctx.Core.memOp.InProgress {
		return Result{Code: proto.NotInFlashMode}, nil
	}
	payload := ctx.Req.Payload()
	flag := proto.LE32(payload[0:4])
	entry := proto.LE32(payload[4:8])

	if flag != 0 {
		ctx.Core.memOp.Reset()
		return Result{Code: proto.Success}, nil
	}
	return Result{Code: proto.Success}, func(pctx *Context) error {
		return mem.Jump(&pctx.Core.memOp, pctx.Core.hal.Unsafe, entry)
	}
}
