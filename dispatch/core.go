// Package dispatch implements the command dispatcher: the single
// mutable-state Core object (spec §9 "Global mutable state ... should
// become fields of a single Core object") that parses each decoded
// frame, looks up its handler in a static opcode table, applies any
// carried-over failure from the previous command's post-process, runs
// the handler, sends the response, and finally runs the handler's own
// deferred post-process.
//
// Grounded on forward.go's Forwarder: a struct holding per-call state
// advanced through explicit phases, generalized here from the
// two-phase relay shape to the five-phase handler contract (parse,
// precondition, execute, compose response, post-process).
package dispatch

import (
	"github.com/flashstub/core/flash"
	"github.com/flashstub/core/hal"
	"github.com/flashstub/core/mem"
	"github.com/flashstub/core/proto"
	"github.com/flashstub/core/slip"
)

// Trace receives free-form diagnostic lines from the dispatcher and
// handlers; nil disables tracing.
type Trace func(format string, args ...any)

// Core is the single stateful object threaded through every handler:
// the framing codec, both BEGIN/DATA/END operation states, the
// hardware collaborators, and the carry-over slot for post-process
// failures (spec §7 "Carry-over").
type Core struct {
	codec *slip.Codec
	hal   hal.Platform
	trace Trace

	flashOp flash.Operation
	memOp   mem.Operation

	// sectorSize is the SPI flash's erase granularity, learned from
	// SPI_SET_PARAMS. FLASH_BEGIN needs it to compute the sector-aligned
	// erase extent before SPI_SET_PARAMS is necessarily the first
	// command a host sends, so it defaults to a conservative 4KiB.
	sectorSize uint32

	pending *proto.ResponseCode
	respBuf [72]byte
}

// defaultSectorSize is the erase granularity assumed before a host
// sends SPI_SET_PARAMS (matches every ESP32 family's SPI flash sector
// size).
const defaultSectorSize = 4096

// NewCore builds a Core bound to codec (for responses) and plat (the
// hardware collaborators every handler needs).
func NewCore(codec *slip.Codec, plat hal.Platform, trace Trace) *Core {
	return &Core{codec: codec, hal: plat, trace: trace, sectorSize: defaultSectorSize}
}

func (c *Core) tracef(format string, args ...any) {
	if c.trace != nil {
		c.trace(format, args...)
	}
}

// lengthGate applies spec §8's "Dispatcher length gate": known opcodes
// with a fixed payload size must match it exactly; opcodes with a
// variable shape (FLASH_BEGIN family, WRITE_REG, bulk-data opcodes)
// must satisfy proto.VariableLenOK. Unknown opcodes yield
// InvalidCommand regardless of length.
func lengthGate(opcode proto.Opcode, payloadLen int, known bool) proto.ResponseCode {
	if !known {
		return proto.InvalidCommand
	}
	if n, ok := proto.FixedPayloadLen(opcode); ok {
		if payloadLen != n {
			return proto.BadDataLen
		}
		return proto.Success
	}
	if proto.VariableLenOK(opcode, payloadLen) {
		return proto.Success
	}
	return proto.BadDataLen
}

// Dispatch handles one decoded frame end to end. noResponse is true
// only for a successfully-accepted RUN_USER_CODE, whose contract is to
// emit nothing and let the caller (the foreground loop) exit (spec §8
// "No response for RUN_USER_CODE").
func (c *Core) Dispatch(frame []byte) (noResponse bool, err error) {
	if len(frame) < proto.HeaderLen {
		// Too short to even know which opcode to answer; the silent
		// channel (spec §7.3) already covers malformed framing at the
		// codec level, so a malformed frame reaching here is dropped.
		return false, nil
	}
	hdr := proto.ParseHeader(frame)
	req, code := proto.DecodeRequest(frame)

	handler, known := handlers[hdr.Opcode]
	if code == proto.Success {
		code = lengthGate(hdr.Opcode, int(hdr.PayloadLen), known)
	}

	var result Result
	var post PostProcess
	switch {
	case code != proto.Success:
		result = Result{Code: code}
	case c.pending != nil:
		result = Result{Code: *c.pending}
		c.pending = nil
	default:
		result, post = handler(&Context{Core: c, Req: req})
	}
	c.tracef("%s -> %s", hdr.Opcode, result.Code)

	if hdr.Opcode == proto.OpRunUserCode && result.Code == proto.Success {
		// No response frame; the post-process performs the jump itself
		// and does not return on success (spec §8 "No response for
		// RUN_USER_CODE").
		if post != nil {
			_ = post(&Context{Core: c, Req: req})
		}
		return true, nil
	}

	resp := c.composeResponse(hdr.Opcode, result)
	if sendErr := c.codec.SendFrame(resp); sendErr != nil {
		return false, sendErr
	}

	if post != nil {
		if perr := post(&Context{Core: c, Req: req}); perr != nil {
			carried := postProcessCode(perr)
			c.pending = &carried
			c.tracef("post-process for %s failed, carrying %s to next response", hdr.Opcode, carried)
		}
	}
	return false, nil
}
