package dispatch

import (
	"time"

	"github.com/flashstub/core/proto"
)

// handleEraseFlash answers ERASE_FLASH: erase the entire chip and
// block until done before responding (spec §4.3) — matching the
// distilled contract, this runs synchronously rather than deferred,
// since the whole point is that the host waits for it.
func handleEraseFlash(ctx *Context) (Result, PostProcess) {
	if err := ctx.Core.hal.Flash.EraseChip(); err != nil {
		return Result{Code: proto.FailedSPIOp}, nil
	}
	return Result{Code: proto.Success}, nil
}

// eraseRegionTimeoutPerSector is the budget spec §4.3/§5 derives
// ERASE_REGION's wait-ready timeout from.
const eraseRegionTimeoutPerSector = 120 * time.Millisecond

// handleEraseRegion answers ERASE_REGION: payload is (addr, size), both
// sector-aligned. Drives start_next_erase to completion, then
// wait-ready with a timeout derived from the region size (spec §4.3).
func handleEraseRegion(ctx *Context) (Result, PostProcess) {
	p := ctx.Req.Payload()
	addr := proto.LE32(p[0:4])
	size := proto.LE32(p[4:8])

	sector := ctx.Core.sectorSize
	if sector == 0 || addr%sector != 0 || size%sector != 0 {
		return Result{Code: proto.BadDataLen}, nil
	}

	next, remaining := addr, size
	for remaining > 0 {
		if _, err := ctx.Core.hal.Flash.StartNextErase(&next, &remaining); err != nil {
			return Result{Code: proto.FailedSPIOp}, nil
		}
	}

	timeout := time.Duration(size/sector) * eraseRegionTimeoutPerSector
	if err := ctx.Core.hal.Flash.WaitReady(timeout); err != nil {
		return Result{Code: proto.FailedSPIOp}, nil
	}
	return Result{Code: proto.Success}, nil
}
