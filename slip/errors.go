// Package slip implements the self-synchronizing, escape-encoded byte
// framing used to carry request/response frames between the host flashing
// tool and the stub over an unreliable-boundary byte transport (UART,
// USB CDC, JTAG serial console).
//
// Wire rules (SLIP-family): END (0xC0) delimits frames, ESC (0xDB)
// introduces an escape, ESC END (0xDC) and ESC ESC (0xDD) recover literal
// END/ESC bytes inside a payload. See Codec for the decoder state machine
// and the multi-buffer receive ring that lets an interrupt-driven byte
// producer keep accepting bytes while the foreground consumes the
// previous frame.
package slip

import (
	"errors"

	"code.hybscloud.com/iox"
)

var (
	// ErrFrameTooLong names the condition of a frame exceeding the
	// configured maximum length. Codec does not return it: the offending
	// buffer shows up as the Error state from GetFrameState and must be
	// released with Reset.
	ErrFrameTooLong = errors.New("slip: frame exceeds maximum length")

	// ErrBadEscape names the condition of ESC followed by a byte other
	// than 0xDC or 0xDD. Codec does not return or store it: the buffer
	// shows up as the Error state from GetFrameState.
	ErrBadEscape = errors.New("slip: invalid escape sequence")

	// ErrNoBuffer names the condition of every buffer in the pool being
	// complete or in error when a new frame tries to start. Codec does not
	// return it: RecvByte silently drops the incoming bytes until the
	// foreground releases a buffer with Reset.
	ErrNoBuffer = errors.New("slip: no idle receive buffer")

	// ErrInvalidArgument is returned by SendFrame when no TX function is
	// bound, and by FrameData when no processing buffer is selected.
	ErrInvalidArgument = errors.New("slip: invalid argument")
)

// These are re-exported so callers that bind a non-blocking transport (a
// future Binding whose TX function can legitimately stall) can recognize
// this control-flow pair without importing code.hybscloud.com/iox
// directly. No other package of this module uses them today.
var (
	// ErrWouldBlock means "no further progress without waiting". SendFrame's
	// TX function may return it; SendFrame then stops and returns it
	// unchanged, leaving the bytes already emitted on the wire.
	ErrWouldBlock = iox.ErrWouldBlock

	// ErrMore means "this completion is usable and more will follow". Not
	// used by the core SLIP path today, but kept alongside ErrWouldBlock so
	// transport bindings share one vocabulary with slip instead of
	// inventing transport-local sentinels.
	ErrMore = iox.ErrMore
)
