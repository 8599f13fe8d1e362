package flash

import "github.com/flashstub/core/hal"

// WriteRaw is the FLASH_DATA post-process body (spec §4.3): clamp the
// declared data length to TotalRemaining, erase-ahead to cover the
// write, perform the write, and advance accounting. writeSize is the
// number of bytes actually written, equal to min(len(data),
// TotalRemaining).
func WriteRaw(op *Operation, flashPlat hal.Flash, data []byte) (writeSize int, err error) {
	if !op.InProgress {
		return 0, ErrNotInProgress
	}
	n := len(data)
	if uint32(n) > op.TotalRemaining {
		n = int(op.TotalRemaining)
	}
	if err := EnsureErasedTo(op, flashPlat, op.Offset+uint32(n)); err != nil {
		return 0, err
	}
	if err := flashPlat.WriteBuff(op.Offset, data[:n], op.Encrypt); err != nil {
		return 0, err
	}
	op.Offset += uint32(n)
	op.TotalRemaining -= uint32(n)
	return n, nil
}

// End validates and clears op for FLASH_END/FLASH_DEFL_END (spec §4.3,
// §9 "stricter check"). The caller is responsible for triggering a
// reboot afterward when the reboot flag is non-zero — that side effect
// runs as a post-process, after the response has been sent.
func End(op *Operation) error {
	if !op.InProgress {
		return ErrNotInProgress
	}
	if op.TotalRemaining != 0 {
		return ErrRemainingNonZero
	}
	op.Reset()
	return nil
}
