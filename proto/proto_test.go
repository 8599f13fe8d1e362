package proto_test

import (
	"encoding/binary"
	"testing"

	"github.com/flashstub/core/proto"
	"github.com/stretchr/testify/require"
)

func buildFlashDataFrame(t *testing.T, data []byte, seq uint32, wrongChecksum bool) []byte {
	t.Helper()
	payload := make([]byte, proto.BulkHeaderLen+len(data))
	binary.LittleEndian.PutUint32(payload[0:4], uint32(len(data)))
	binary.LittleEndian.PutUint32(payload[4:8], seq)
	copy(payload[proto.BulkHeaderLen:], data)

	sum := proto.Checksum(proto.ChecksumSeed, data)
	if wrongChecksum {
		sum ^= 0xFF
	}

	frame := make([]byte, proto.HeaderLen+len(payload))
	proto.PutHeader(frame, proto.Header{
		Direction:  proto.DirRequest,
		Opcode:     proto.OpFlashData,
		PayloadLen: uint16(len(payload)),
		Checksum:   uint32(sum),
	})
	copy(frame[proto.HeaderLen:], payload)
	return frame
}

func TestDecodeRequest_FlashData_OK(t *testing.T) {
	data := []byte{0xAA, 0xAA, 0xAA, 0xAA}
	frame := buildFlashDataFrame(t, data, 0, false)

	req, code := proto.DecodeRequest(frame)
	require.Equal(t, proto.Success, code)
	bulk, fields, status := req.BulkRegion()
	require.Equal(t, proto.BulkOK, status)
	require.Equal(t, data, bulk)
	require.EqualValues(t, len(data), fields.DataLen)
}

func TestDecodeRequest_BadChecksum(t *testing.T) {
	frame := buildFlashDataFrame(t, []byte{1, 2, 3, 4}, 0, true)
	_, code := proto.DecodeRequest(frame)
	require.Equal(t, proto.BadDataChecksum, code)
}

func TestDecodeRequest_TooMuchData(t *testing.T) {
	// A declared data_len shorter than the bytes actually following the
	// sub-header must be refused TOO_MUCH_DATA, not silently truncated.
	payload := make([]byte, proto.BulkHeaderLen+8)
	binary.LittleEndian.PutUint32(payload[0:4], 4) // data_len says 4, but 8 bytes follow
	sum := proto.Checksum(proto.ChecksumSeed, payload[proto.BulkHeaderLen:proto.BulkHeaderLen+4])

	frame := make([]byte, proto.HeaderLen+len(payload))
	proto.PutHeader(frame, proto.Header{
		Direction:  proto.DirRequest,
		Opcode:     proto.OpFlashData,
		PayloadLen: uint16(len(payload)),
		Checksum:   uint32(sum),
	})
	copy(frame[proto.HeaderLen:], payload)

	_, code := proto.DecodeRequest(frame)
	require.Equal(t, proto.TooMuchData, code)
}

// buildMemDataFrame builds a MEM_DATA frame with a garbage checksum
// field, the way a spec-compliant host is allowed to leave it (spec
// §4.5: the checksum header field is ignored for anything but
// FLASH_DATA/FLASH_DEFL_DATA).
func buildMemDataFrame(data []byte, garbageChecksum uint32) []byte {
	payload := make([]byte, proto.BulkHeaderLen+len(data))
	binary.LittleEndian.PutUint32(payload[0:4], uint32(len(data)))
	copy(payload[proto.BulkHeaderLen:], data)

	frame := make([]byte, proto.HeaderLen+len(payload))
	proto.PutHeader(frame, proto.Header{
		Direction:  proto.DirRequest,
		Opcode:     proto.OpMemData,
		PayloadLen: uint16(len(payload)),
		Checksum:   garbageChecksum,
	})
	copy(frame[proto.HeaderLen:], payload)
	return frame
}

func TestDecodeRequest_MemData_IgnoresChecksum(t *testing.T) {
	data := []byte{0x11, 0x22, 0x33, 0x44}
	frame := buildMemDataFrame(data, 0xDEADBEEF)

	req, code := proto.DecodeRequest(frame)
	require.Equal(t, proto.Success, code)
	bulk, _, status := req.BulkRegion()
	require.Equal(t, proto.BulkOK, status)
	require.Equal(t, data, bulk)
}

func TestHasChecksum_OnlyFlashDataOpcodes(t *testing.T) {
	require.True(t, proto.HasChecksum(proto.OpFlashData))
	require.True(t, proto.HasChecksum(proto.OpFlashDeflData))
	require.False(t, proto.HasChecksum(proto.OpMemData))
	require.True(t, proto.HasBulkData(proto.OpMemData), "MEM_DATA still has bulk payload shape")
}

func TestDecodeRequest_WrongDirection(t *testing.T) {
	frame := buildFlashDataFrame(t, []byte{1}, 0, false)
	frame[0] = proto.DirResponse
	_, code := proto.DecodeRequest(frame)
	require.Equal(t, proto.InvalidCommand, code)
}

func TestDecodeRequest_LengthMismatch(t *testing.T) {
	frame := buildFlashDataFrame(t, []byte{1, 2, 3, 4}, 0, false)
	_, code := proto.DecodeRequest(frame[:len(frame)-1])
	require.Equal(t, proto.BadDataLen, code)
}

func TestDecodeRequest_TooShortForHeader(t *testing.T) {
	_, code := proto.DecodeRequest([]byte{1, 2, 3})
	require.Equal(t, proto.BadDataLen, code)
}

func TestChecksum_XORLaw(t *testing.T) {
	b1 := []byte{1, 2, 3, 0xAB}
	b2 := []byte{0xFF, 0x00, 0x77}
	combined := append(append([]byte{}, b1...), b2...)

	got := proto.Checksum(proto.ChecksumSeed, combined)
	want := proto.Checksum(proto.ChecksumSeed, b1) ^ proto.Checksum(proto.ChecksumSeed, b2) ^ proto.ChecksumSeed
	require.Equal(t, want, got)
}

func TestChecksum_EmptyIsSeed(t *testing.T) {
	require.Equal(t, proto.ChecksumSeed, proto.Checksum(proto.ChecksumSeed, nil))
}

func TestFixedPayloadLen_Table(t *testing.T) {
	cases := []struct {
		op   proto.Opcode
		want int
	}{
		{proto.OpFlashEnd, 4},
		{proto.OpMemBegin, 16},
		{proto.OpMemEnd, 8},
		{proto.OpSync, 36},
		{proto.OpSPISetParams, 24},
		{proto.OpGetSecurityInfo, 0},
		{proto.OpEraseFlash, 0},
		{proto.OpRunUserCode, 0},
		{proto.OpReadFlash, 16},
		{proto.OpEraseRegion, 8},
	}
	for _, c := range cases {
		n, ok := proto.FixedPayloadLen(c.op)
		require.Truef(t, ok, "opcode %v should be fixed-length", c.op)
		require.Equalf(t, c.want, n, "opcode %v", c.op)
	}
}

func TestVariableLenOK_FlashBegin(t *testing.T) {
	require.True(t, proto.VariableLenOK(proto.OpFlashBegin, 16))
	require.True(t, proto.VariableLenOK(proto.OpFlashBegin, 20))
	require.False(t, proto.VariableLenOK(proto.OpFlashBegin, 18))
}

func TestVariableLenOK_WriteReg(t *testing.T) {
	require.True(t, proto.VariableLenOK(proto.OpWriteReg, 16))
	require.True(t, proto.VariableLenOK(proto.OpWriteReg, 32))
	require.False(t, proto.VariableLenOK(proto.OpWriteReg, 0))
	require.False(t, proto.VariableLenOK(proto.OpWriteReg, 20))
}

func TestResponseCode_MarshalBE(t *testing.T) {
	b := proto.BadDataChecksum.MarshalBE()
	require.Equal(t, [2]byte{0xC1, 0x00}, b)
}
