package dispatch

import "github.com/flashstub/core/proto"

// Result is what a Handler hands back for the response frame: the
// 32-bit value field (reused as the checksum slot on requests, spec
// §3), at most 64 bytes of inline data, and the response code.
type Result struct {
	Value uint32
	Data  []byte
	Code  proto.ResponseCode
}

// PostProcess is deferred work a Handler registers to run after its
// response frame has already been sent — the write/erase/jump work
// spec §4.4 hides behind the response (spec §5 "Ordering"). A non-nil
// error becomes the carry-over code for the *next* Dispatch call.
type PostProcess func(ctx *Context) error

// Handler implements one opcode's parse(already done)->precondition->
// execute->respond contract. It returns the Result to send and an
// optional PostProcess to run afterward.
type Handler func(ctx *Context) (Result, PostProcess)

// composeResponse builds the wire response frame for opcode: header
// (Direction=response, Value in the checksum slot) + inline data +
// the big-endian response code trailer (spec §6 "Response trailer").
// It reuses core.respBuf when the frame fits the common small-response
// case and allocates only for larger inline payloads (e.g.
// GET_SECURITY_INFO's blob).
func (c *Core) composeResponse(opcode proto.Opcode, r Result) []byte {
	total := proto.HeaderLen + len(r.Data) + 2
	var buf []byte
	if total <= len(c.respBuf) {
		buf = c.respBuf[:total]
	} else {
		buf = make([]byte, total)
	}

	proto.PutHeader(buf, proto.Header{
		Direction:  proto.DirResponse,
		Opcode:     opcode,
		PayloadLen: uint16(len(r.Data) + 2),
		Checksum:   r.Value,
	})
	copy(buf[proto.HeaderLen:], r.Data)
	trailer := r.Code.MarshalBE()
	copy(buf[proto.HeaderLen+len(r.Data):], trailer[:])
	return buf
}
