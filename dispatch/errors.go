package dispatch

import (
	"errors"

	"github.com/flashstub/core/flash"
	"github.com/flashstub/core/proto"
)

// postProcessCode maps a post-process failure to the carry-over
// response code for the next command (spec §7 channel 2). Anything
// that isn't a recognized remaining-length or inflate error is treated as a hardware
// failure, matching spec §4.4's framing of post-process work as flash/
// erase/decompression operations talking to real hardware.
func postProcessCode(err error) proto.ResponseCode {
	switch {
	case errors.Is(err, flash.ErrRemainingNonZero):
		return proto.BadDataLen
	case errors.Is(err, flash.ErrInflate):
		return proto.InflateError
	default:
		return proto.FailedSPIOp
	}
}
