// Package mem implements the MEM_BEGIN/MEM_DATA/MEM_END RAM-copy path:
// the same BEGIN/DATA/END accounting shape as package flash, without
// erase-ahead or compression, ending in a jump to the loaded entry point
// (spec §3, §9 "the unsafe surface").
package mem

import (
	"errors"

	"github.com/flashstub/core/hal"
)

// ErrNotInProgress means MEM_DATA/MEM_END arrived with no MEM_BEGIN
// having been accepted.
var ErrNotInProgress = errors.New("mem: no operation in progress")

// Operation is the RAM-copy counterpart of flash.Operation: no erase
// extent, no decompressor, just a running offset and remaining count.
type Operation struct {
	InProgress     bool
	TotalRemaining uint32
	BlockSize      uint32
	NumBlocks      uint32
	Offset         uint32
}

// Reset zeros the operation, clearing InProgress.
func (op *Operation) Reset() {
	*op = Operation{}
}

// Begin initializes op for MEM_BEGIN.
func Begin(op *Operation, totalSize, numBlocks, blockSize, offset uint32) {
	op.Reset()
	op.InProgress = true
	op.TotalRemaining = totalSize
	op.NumBlocks = numBlocks
	op.BlockSize = blockSize
	op.Offset = offset
}

// Copy is the MEM_DATA post-process body: clamp to TotalRemaining, copy
// into RAM via the quarantined hal.Unsafe surface, and advance
// accounting.
func Copy(op *Operation, unsafe hal.Unsafe, data []byte) (writeSize int, err error) {
	if !op.InProgress {
		return 0, ErrNotInProgress
	}
	n := len(data)
	if uint32(n) > op.TotalRemaining {
		n = int(op.TotalRemaining)
	}
	unsafe.MemCopy(op.Offset, data[:n])
	op.Offset += uint32(n)
	op.TotalRemaining -= uint32(n)
	return n, nil
}

// Jump is the MEM_END body when flag==0 (spec §9 pinned revision): it
// clears op and transfers control to entry. Per Invariant 7, it never
// returns on success — the returned error only surfaces a jump that the
// platform itself rejected (e.g. an unaligned or out-of-range entry).
func Jump(op *Operation, unsafe hal.Unsafe, entry uint32) error {
	if !op.InProgress {
		return ErrNotInProgress
	}
	op.Reset()
	return unsafe.Jump(entry)
}
