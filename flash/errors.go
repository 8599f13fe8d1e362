package flash

import "errors"

var (
	// ErrEraseExtentExhausted means a write target address fell outside
	// the sector-aligned erase extent computed at BEGIN — the erase-ahead
	// bookkeeping invariant (spec Invariant 3) would be violated.
	ErrEraseExtentExhausted = errors.New("flash: erase extent exhausted before reaching write target")

	// ErrNotInProgress means a DATA/END opcode arrived with no BEGIN
	// having been accepted (spec §4.3 state machine: "IDLE --DATA or
	// END--> IDLE (report NOT_IN_FLASH_MODE)").
	ErrNotInProgress = errors.New("flash: no operation in progress")

	// ErrRemainingNonZero means END observed TotalRemaining != 0 (spec §9:
	// "the stricter check is preferred").
	ErrRemainingNonZero = errors.New("flash: total_remaining non-zero at end")
)
