package flash_test

import (
	"bytes"
	"crypto/md5"
	"testing"

	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/require"

	"github.com/flashstub/core/flash"
	"github.com/flashstub/core/hal/halmock"
)

func TestBeginRaw_ErasesAheadOfWrite(t *testing.T) {
	f := halmock.NewFlash(64*1024, 4096)
	var op flash.Operation

	require.NoError(t, flash.BeginRaw(&op, f, 4096, 1, 1024, 0, 4096, false))
	require.True(t, op.InProgress)
	require.Equal(t, uint32(4096), op.NextEraseAddr, "single-sector extent should erase fully during BEGIN")
	require.Equal(t, uint32(0), op.EraseRemaining)

	n, err := flash.WriteRaw(&op, f, bytes.Repeat([]byte{0xAB}, 1024))
	require.NoError(t, err)
	require.Equal(t, 1024, n)
	require.Equal(t, uint32(1024), op.Offset)
	require.Equal(t, uint32(4096-1024), op.TotalRemaining)
}

func TestWriteRaw_ClampsToTotalRemaining(t *testing.T) {
	f := halmock.NewFlash(64*1024, 4096)
	var op flash.Operation
	require.NoError(t, flash.BeginRaw(&op, f, 100, 1, 100, 0, 4096, false))

	n, err := flash.WriteRaw(&op, f, bytes.Repeat([]byte{1}, 200))
	require.NoError(t, err)
	require.Equal(t, 100, n)
	require.Equal(t, uint32(0), op.TotalRemaining)
}

func TestWriteRaw_NotInProgress(t *testing.T) {
	f := halmock.NewFlash(4096, 4096)
	var op flash.Operation
	_, err := flash.WriteRaw(&op, f, []byte{1})
	require.ErrorIs(t, err, flash.ErrNotInProgress)
}

func TestEnd_RequiresZeroRemaining(t *testing.T) {
	f := halmock.NewFlash(64*1024, 4096)
	var op flash.Operation
	require.NoError(t, flash.BeginRaw(&op, f, 4096, 1, 1024, 0, 4096, false))

	err := flash.End(&op)
	require.ErrorIs(t, err, flash.ErrRemainingNonZero)

	_, err = flash.WriteRaw(&op, f, bytes.Repeat([]byte{1}, 4096))
	require.NoError(t, err)

	require.NoError(t, flash.End(&op))
	require.False(t, op.InProgress)
}

func TestPumpDeflate_RoundTrip(t *testing.T) {
	const sectorSize = 4096
	payload := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog "), 200)

	var compressed bytes.Buffer
	zw := zlib.NewWriter(&compressed)
	_, err := zw.Write(payload)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	f := halmock.NewFlash(64*1024, sectorSize)
	var op flash.Operation
	require.NoError(t, flash.BeginDeflate(&op, f, uint32(len(payload)), 1, 256, 0, sectorSize, false))

	const chunk = 37
	cb := compressed.Bytes()
	var seq uint32
	for off := 0; off < len(cb); off += chunk {
		end := off + chunk
		if end > len(cb) {
			end = len(cb)
		}
		_, _, err := flash.PumpDeflate(&op, f, cb[off:end], seq)
		require.NoError(t, err)
		seq++
	}

	require.Equal(t, uint32(0), op.TotalRemaining)
	require.True(t, op.DeflateFinished())
	require.Equal(t, payload, f.Mem[:len(payload)])
}

func TestPumpDeflate_NotInProgress(t *testing.T) {
	f := halmock.NewFlash(4096, 4096)
	var op flash.Operation
	_, _, err := flash.PumpDeflate(&op, f, []byte{1, 2}, 0)
	require.ErrorIs(t, err, flash.ErrNotInProgress)
}

func TestPumpDeflate_BadStreamYieldsInflateError(t *testing.T) {
	const sectorSize = 4096
	f := halmock.NewFlash(64*1024, sectorSize)
	var op flash.Operation
	require.NoError(t, flash.BeginDeflate(&op, f, 1024, 1, 256, 0, sectorSize, false))

	_, _, err := flash.PumpDeflate(&op, f, []byte{0xFF, 0xFF, 0xFF, 0xFF}, 0)
	require.ErrorIs(t, err, flash.ErrInflate)
}

func TestHashRegion(t *testing.T) {
	f := halmock.NewFlash(64*1024, 4096)
	require.NoError(t, f.EraseArea(0, 4096))
	data := bytes.Repeat([]byte{0x42}, 9000)
	require.NoError(t, f.WriteBuff(0, data[:4096], false))
	require.NoError(t, f.EraseArea(4096, 4096))
	require.NoError(t, f.WriteBuff(4096, data[4096:8192], false))

	sum, err := flash.HashRegion(f, 0, 8192)
	require.NoError(t, err)
	require.NotZero(t, sum)
}

func TestHashRegion_MisalignedAddr(t *testing.T) {
	// addr is not a multiple of 4: HashRegion must still hash exactly
	// [addr, addr+size), not the 4-byte-aligned read window around it.
	f := halmock.NewFlash(64*1024, 4096)
	require.NoError(t, f.EraseArea(0, 8192))
	pattern := make([]byte, 8192)
	for i := range pattern {
		pattern[i] = byte(i)
	}
	require.NoError(t, f.WriteBuff(0, pattern, false))

	const addr = 2
	const size = 8190
	want := md5.Sum(f.Mem[addr : addr+size])

	got, err := flash.HashRegion(f, addr, size)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestSectorAlignExtent(t *testing.T) {
	// [100, 4100) crosses the first sector boundary, so it rounds out to
	// [0, 8192).
	addr, size := flash.SectorAlignExtent(100, 4000, 4096)
	require.Equal(t, uint32(0), addr)
	require.Equal(t, uint32(8192), size)

	addr, size = flash.SectorAlignExtent(4096, 4096, 4096)
	require.Equal(t, uint32(4096), addr)
	require.Equal(t, uint32(4096), size)
}
