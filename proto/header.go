package proto

import "encoding/binary"

// HeaderLen is the fixed size of the frame header preceding any payload
// (spec §3 "Header (fixed 8 bytes at the start of a decoded frame)").
const HeaderLen = 8

const (
	DirRequest  byte = 0x00
	DirResponse byte = 0x01
)

// Header is the decoded fixed 8-byte frame header. All multi-byte fields
// are little-endian on the wire (spec §4.2).
type Header struct {
	Direction  byte
	Opcode     Opcode
	PayloadLen uint16
	// Checksum carries the request's data XOR-checksum on the way in, and
	// is reused as the response Value field on the way out (spec §3: "LE;
	// checksum on request, value on response").
	Checksum uint32
}

// ParseHeader decodes the first HeaderLen bytes of frame. It does not
// validate direction, length, or checksum — see DecodeRequest.
func ParseHeader(frame []byte) Header {
	return Header{
		Direction:  frame[0],
		Opcode:     Opcode(frame[1]),
		PayloadLen: binary.LittleEndian.Uint16(frame[2:4]),
		Checksum:   binary.LittleEndian.Uint32(frame[4:8]),
	}
}

// PutHeader encodes h into the first HeaderLen bytes of dst.
func PutHeader(dst []byte, h Header) {
	dst[0] = h.Direction
	dst[1] = byte(h.Opcode)
	binary.LittleEndian.PutUint16(dst[2:4], h.PayloadLen)
	binary.LittleEndian.PutUint32(dst[4:8], h.Checksum)
}

// BulkHeaderFields is the 16-byte leading sub-header on FLASH_DATA,
// FLASH_DEFL_DATA, and MEM_DATA payloads (spec §4.3: "payload header
// (data_len, seq, 0, 0)").
type BulkHeaderFields struct {
	DataLen  uint32
	Seq      uint32
	Reserved [2]uint32
}

// ParseBulkHeader decodes the leading BulkHeaderLen bytes of a bulk-data
// opcode's payload.
func ParseBulkHeader(payload []byte) BulkHeaderFields {
	return BulkHeaderFields{
		DataLen:  binary.LittleEndian.Uint32(payload[0:4]),
		Seq:      binary.LittleEndian.Uint32(payload[4:8]),
		Reserved: [2]uint32{
			binary.LittleEndian.Uint32(payload[8:12]),
			binary.LittleEndian.Uint32(payload[12:16]),
		},
	}
}

// LE32 decodes a little-endian uint32 field at an arbitrary payload
// offset, byte-wise — the same discipline spec §4.2 calls for ("never
// via type punning, to avoid alignment traps").
func LE32(b []byte) uint32 { return binary.LittleEndian.Uint32(b) }

// LE16 decodes a little-endian uint16 field byte-wise.
func LE16(b []byte) uint16 { return binary.LittleEndian.Uint16(b) }
