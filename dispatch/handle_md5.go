package dispatch

import (
	"github.com/flashstub/core/flash"
	"github.com/flashstub/core/proto"
)

// handleSPIFlashMD5 answers SPI_FLASH_MD5: payload is (addr, read_size,
// 0, 0); the response's inline data is the 16-byte digest (spec §4.3).
func handleSPIFlashMD5(ctx *Context) (Result, PostProcess) {
	p := ctx.Req.Payload()
	addr := proto.LE32(p[0:4])
	size := proto.LE32(p[4:8])

	sum, err := flash.HashRegion(ctx.Core.hal.Flash, addr, size)
	if err != nil {
		return Result{Code: proto.FailedSPIOp}, nil
	}
	return Result{Data: sum[:], Code: proto.Success}, nil
}
