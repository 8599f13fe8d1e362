// Package flash implements the flash-write pipeline: operation state
// shared by FLASH_BEGIN/FLASH_DATA/FLASH_END and their _DEFL
// counterparts, opportunistic erase-ahead, the raw write path, and the
// streaming-inflate write path (spec §3 "Flash-only extension", §4.4).
package flash

import (
	"github.com/flashstub/core/hal"
)

// Operation is the per-flash-session state spec §3 describes: the shared
// BEGIN/DATA/END fields plus the flash-only erase-ahead and
// decompressor extension.
type Operation struct {
	InProgress      bool
	TotalRemaining  uint32
	BlockSize       uint32
	NumBlocks       uint32
	Offset          uint32

	// Streaming-inflate extension.
	Compressed          bool
	CompressedRemaining uint32
	Encrypt             bool

	NextEraseAddr  uint32
	EraseRemaining uint32

	dec *inflateState
}

// Reset zeros the operation, clearing InProgress (spec Invariant 1).
func (op *Operation) Reset() {
	*op = Operation{}
}

// DeflateFinished reports whether the streaming decompressor has seen the
// end of its zlib stream. End does not consult it: FLASH_DEFL_END checks
// TotalRemaining only.
func (op *Operation) DeflateFinished() bool {
	return op.dec != nil && op.dec.finished
}

// SectorAlignExtent rounds [offset, offset+size) out to sector
// boundaries on both ends, matching FLASH_BEGIN's "erase extent that is
// total_size rounded out to sector boundaries both ends" (spec §4.3).
func SectorAlignExtent(offset, size, sectorSize uint32) (alignedAddr, alignedSize uint32) {
	end := offset + size
	alignedAddr = offset - (offset % sectorSize)
	alignedEnd := end
	if rem := end % sectorSize; rem != 0 {
		alignedEnd = end + (sectorSize - rem)
	}
	return alignedAddr, alignedEnd - alignedAddr
}

// BeginRaw initializes op for a raw FLASH_BEGIN and kicks off the first
// sector erase. flashPlat is the Flash collaborator; sectorSize comes
// from the attached SPI flash parameters.
func BeginRaw(op *Operation, flashPlat hal.Flash, totalSize, numBlocks, blockSize, offset, sectorSize uint32, encrypt bool) error {
	op.Reset()
	op.InProgress = true
	op.TotalRemaining = totalSize
	op.NumBlocks = numBlocks
	op.BlockSize = blockSize
	op.Offset = offset
	op.Encrypt = encrypt

	addr, size := SectorAlignExtent(offset, totalSize, sectorSize)
	op.NextEraseAddr = addr
	op.EraseRemaining = size
	return kickOffErase(op, flashPlat)
}

// BeginDeflate initializes op for FLASH_DEFL_BEGIN: same erase-ahead
// bookkeeping as BeginRaw (sized by the *uncompressed* total, per spec
// §4.3), plus a fresh streaming inflate state.
func BeginDeflate(op *Operation, flashPlat hal.Flash, totalSize, numBlocks, blockSize, offset, sectorSize uint32, encrypt bool) error {
	if err := BeginRaw(op, flashPlat, totalSize, numBlocks, blockSize, offset, sectorSize, encrypt); err != nil {
		return err
	}
	op.Compressed = true
	op.dec = newInflateState(blockSize)
	return nil
}

func kickOffErase(op *Operation, flashPlat hal.Flash) error {
	status, err := flashPlat.StartNextErase(&op.NextEraseAddr, &op.EraseRemaining)
	if err != nil {
		return err
	}
	_ = status
	return nil
}
