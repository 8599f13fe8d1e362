package flash

import (
	"crypto/md5"

	"github.com/flashstub/core/hal"
)

// hashChunkSize bounds each ReadBuff call for SPI_FLASH_MD5 so a single
// hash request never demands an unbounded scratch buffer (spec §4.5).
const hashChunkSize = 4096

// HashRegion computes the MD5 digest of [addr, addr+size) by streaming it
// through crypto/md5 in hashChunkSize pieces, matching the handler
// described in spec §4.5 ("SPI_FLASH_MD5"). There is no ecosystem
// alternative to crypto/md5 here: the wire format is MD5 by definition,
// not a choice this stub gets to make.
//
// addr need not be 4-byte aligned: the underlying flash read primitive
// requires it, so the read is widened down to a 4-byte boundary and the
// leading alignment padding is masked out before it reaches the digest,
// the same trick the original's s_spi_flash_md5 uses.
func HashRegion(flashPlat hal.Flash, addr, size uint32) ([16]byte, error) {
	h := md5.New()
	buf := make([]byte, hashChunkSize)

	offset := addr & 3
	alignedAddr := addr - offset
	remaining := size

	for remaining > 0 {
		chunkSize := remaining + offset
		if chunkSize > hashChunkSize {
			chunkSize = hashChunkSize
		}
		alignedChunkSize := (chunkSize + 3) &^ 3

		if err := flashPlat.ReadBuff(alignedAddr, buf[:alignedChunkSize]); err != nil {
			return [16]byte{}, err
		}

		bytesToHash := alignedChunkSize - offset
		if bytesToHash > remaining {
			bytesToHash = remaining
		}
		h.Write(buf[offset : offset+bytesToHash])

		alignedAddr += alignedChunkSize
		remaining -= bytesToHash
		offset = 0
	}

	var out [16]byte
	copy(out[:], h.Sum(nil))
	return out, nil
}
