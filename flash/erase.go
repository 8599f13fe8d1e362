package flash

import (
	"github.com/flashstub/core/hal"
)

// PumpErase drives at most one non-blocking erase step, advancing
// op.NextEraseAddr. It is safe to call opportunistically from any
// flash-touching handler or from inside the inflate loop (spec §4.4:
// "re-triggered every opportunity thereafter").
func PumpErase(op *Operation, flashPlat hal.Flash) error {
	if op.EraseRemaining == 0 {
		return nil
	}
	status, err := flashPlat.StartNextErase(&op.NextEraseAddr, &op.EraseRemaining)
	if err != nil {
		return err
	}
	_ = status
	return nil
}

// EnsureErasedTo spin-drives PumpErase until op.NextEraseAddr has
// reached target, or an erase fails (spec §4.4 "ensure_erased_to").
func EnsureErasedTo(op *Operation, flashPlat hal.Flash, target uint32) error {
	for op.NextEraseAddr < target {
		if op.EraseRemaining == 0 {
			// Nothing left to erase but we haven't reached target: the
			// erase extent computed at BEGIN was too small for this
			// write, which should not happen if BEGIN sized it
			// correctly, but guard against it rather than spin forever.
			return ErrEraseExtentExhausted
		}
		if err := PumpErase(op, flashPlat); err != nil {
			return err
		}
	}
	return nil
}
