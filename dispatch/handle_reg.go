package dispatch

import "github.com/flashstub/core/proto"

// handleReadReg answers READ_REG: payload is a single 32-bit address,
// response value is the register's current contents (spec §4.3).
func handleReadReg(ctx *Context) (Result, PostProcess) {
	addr := proto.LE32(ctx.Req.Payload())
	return Result{Value: ctx.Core.hal.Reg.Read(addr), Code: proto.Success}, nil
}

// handleWriteReg answers WRITE_REG: the payload is k 16-byte records of
// (addr, value, mask, delay_us). For each record, delay then
// read-modify-write the register, skipping the read entirely when
// mask is all-ones (spec §4.3).
func handleWriteReg(ctx *Context) (Result, PostProcess) {
	payload := ctx.Req.Payload()
	for off := 0; off+16 <= len(payload); off += 16 {
		rec := payload[off : off+16]
		addr := proto.LE32(rec[0:4])
		value := proto.LE32(rec[4:8])
		mask := proto.LE32(rec[8:12])
		delayUs := proto.LE32(rec[12:16])

		ctx.Core.hal.Delay.Microseconds(delayUs)
		if mask == 0xFFFFFFFF {
			ctx.Core.hal.Reg.Write(addr, value)
			continue
		}
		cur := ctx.Core.hal.Reg.Read(addr)
		ctx.Core.hal.Reg.Write(addr, (value&mask)|(cur&^mask))
	}
	return Result{Code: proto.Success}, nil
}
