package dispatch

import (
	"github.com/flashstub/core/flash"
	"github.com/flashstub/core/proto"
)

// parseBeginPayload decodes the shared FLASH_BEGIN/FLASH_DEFL_BEGIN/
// MEM_BEGIN shape: (total_size, num_blocks, block_size, offset[,
// encrypt]) — 16 or 20 bytes (spec §4.3).
func parseBeginPayload(payload []byte) (totalSize, numBlocks, blockSize, offset uint32, encrypt bool) {
	totalSize = proto.LE32(payload[0:4])
	numBlocks = proto.LE32(payload[4:8])
	blockSize = proto.LE32(payload[8:12])
	offset = proto.LE32(payload[12:16])
	if len(payload) >= 20 {
		encrypt = proto.LE32(payload[16:20]) != 0
	}
	return
}

// handleFlashBegin answers FLASH_BEGIN: initialize the raw flash
// operation and kick off the first sector erase (spec §4.3).
func handleFlashBegin(ctx *Context) (Result, PostProcess) {
	total, num, block, offset, encrypt := parseBeginPayload(ctx.Req.Payload())
	if err := flash.BeginRaw(&ctx.Core.flashOp, ctx.Core.hal.Flash, total, num, block, offset, ctx.Core.sectorSize, encrypt); err != nil {
		return Result{Code: proto.FailedSPIOp}, nil
	}
	return Result{Code: proto.Success}, nil
}

// handleFlashDeflBegin answers FLASH_DEFL_BEGIN: same bookkeeping as
// FLASH_BEGIN, sized by the uncompressed total, plus a fresh streaming
// inflate state expecting the zlib header on the first data call.
func handleFlashDeflBegin(ctx *Context) (Result, PostProcess) {
	total, num, block, offset, encrypt := parseBeginPayload(ctx.Req.Payload())
	if err := flash.BeginDeflate(&ctx.Core.flashOp, ctx.Core.hal.Flash, total, num, block, offset, ctx.Core.sectorSize, encrypt); err != nil {
		return Result{Code: proto.FailedSPIOp}, nil
	}
	return Result{Code: proto.Success}, nil
}
