package dispatch

import "github.com/flashstub/core/proto"

// handleSpiAttach answers SPI_ATTACH: binds the external flash chip.
// The payload's SPI pin-configuration word is platform wiring this
// core doesn't model; only the attach call itself matters here.
func handleSpiAttach(ctx *Context) (Result, PostProcess) {
	if err := ctx.Core.hal.Flash.Attach(); err != nil {
		return Result{Code: proto.FailedSPIOp}, nil
	}
	return Result{Code: proto.Success}, nil
}

// handleSpiSetParams answers SPI_SET_PARAMS: payload is
// {flash_id, flash_size, block_size, sector_size, page_size,
// status_mask}, six little-endian uint32 fields (spec §4.3). Besides
// forwarding the configuration to hal.Flash, Core remembers
// sector_size so a later FLASH_BEGIN can compute its erase extent.
func handleSpiSetParams(ctx *Context) (Result, PostProcess) {
	p := ctx.Req.Payload()
	flashID := proto.LE32(p[0:4])
	flashSize := proto.LE32(p[4:8])
	blockSize := proto.LE32(p[8:12])
	sectorSize := proto.LE32(p[12:16])
	pageSize := proto.LE32(p[16:20])
	statusMask := proto.LE32(p[20:24])

	if err := ctx.Core.hal.Flash.UpdateConfig(flashID, flashSize, blockSize, sectorSize, pageSize, statusMask); err != nil {
		return Result{Code: proto.FailedSPIOp}, nil
	}
	if sectorSize != 0 {
		ctx.Core.sectorSize = sectorSize
	}
	return Result{Code: proto.Success}, nil
}
