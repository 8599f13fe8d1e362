package slip

import "sync/atomic"

const (
	endByte   byte = 0xC0
	escByte   byte = 0xDB
	escEndSub byte = 0xDC
	escEscSub byte = 0xDD
)

// FrameState is the result of polling a Codec for a completed or failed
// frame (spec "get_frame_state").
type FrameState uint8

const (
	Idle FrameState = iota
	Complete
	Error
)

type parseState uint8

const (
	stateNoFrame parseState = iota
	stateInFrame
	stateEscaping
)

// recvBuffer is one slot of the receive ring. complete/errored are the
// fields spec §3 calls "volatile": the sole producer (RecvByte) stores
// into them last, after filling buf/length; the sole consumer
// (GetFrameState/FrameData) loads them first, before reading buf/length.
// atomic.Bool gives the acquire/release pairing that replaces the C
// volatile discipline (spec §9).
type recvBuffer struct {
	buf      []byte
	length   int
	complete atomic.Bool
	errored  atomic.Bool
}

func (b *recvBuffer) idle() bool {
	return !b.complete.Load() && !b.errored.Load()
}

// Codec is the SLIP-family framing engine described in spec §4.1: it owns
// a small pool of receive buffers, decodes an incoming byte stream into
// discrete frames, and encodes outgoing frames for a bound byte transport.
//
// Codec has exactly one intended producer (RecvByte, called from ISR
// context on real hardware) and exactly one intended consumer
// (GetFrameState/FrameData/Reset, called from the foreground loop).
// SendFrame must only ever be called from the foreground side.
type Codec struct {
	opts Options
	bufs []*recvBuffer

	// producer-only state
	receiving int
	pstate    parseState

	// consumer-only state
	processing int

	txFn    func(b byte) error
	flushFn func() error
}

// New constructs a Codec with the given options.
func New(opts ...Option) *Codec {
	o := defaultOptions
	for _, fn := range opts {
		fn(&o)
	}
	if o.Buffers < MinBuffers {
		o.Buffers = MinBuffers
	}
	if o.MaxFrameLen <= 0 {
		o.MaxFrameLen = MaxFrameSize
	}
	bufs := make([]*recvBuffer, o.Buffers)
	for i := range bufs {
		bufs[i] = &recvBuffer{buf: make([]byte, o.MaxFrameLen)}
	}
	return &Codec{opts: o, bufs: bufs, receiving: 0, processing: -1}
}

// SetTX binds the single-byte transmit function used by SendFrame.
func (c *Codec) SetTX(fn func(b byte) error) { c.txFn = fn }

// SetFlush binds an optional flush hook invoked once after each encoded
// frame's closing END byte.
func (c *Codec) SetFlush(fn func() error) { c.flushFn = fn }

// SendFrame encodes p as one SLIP frame and writes it byte-by-byte through
// the bound TX function, then invokes the flush hook if one is set.
func (c *Codec) SendFrame(p []byte) error {
	if c.txFn == nil {
		return ErrInvalidArgument
	}
	if err := c.txFn(endByte); err != nil {
		return err
	}
	for _, b := range p {
		switch b {
		case endByte:
			if err := c.txFn(escByte); err != nil {
				return err
			}
			if err := c.txFn(escEndSub); err != nil {
				return err
			}
		case escByte:
			if err := c.txFn(escByte); err != nil {
				return err
			}
			if err := c.txFn(escEscSub); err != nil {
				return err
			}
		default:
			if err := c.txFn(b); err != nil {
				return err
			}
		}
	}
	if err := c.txFn(endByte); err != nil {
		return err
	}
	if c.flushFn != nil {
		return c.flushFn()
	}
	return nil
}

// pickIdleBuffer keeps the current receiving slot while it is idle. Only
// when that slot is complete or in error does it scan the rest of the
// pool for a buffer that is neither, starting just past the current slot.
func (c *Codec) pickIdleBuffer() (int, bool) {
	if c.bufs[c.receiving].idle() {
		return c.receiving, true
	}
	n := len(c.bufs)
	for i := 1; i < n; i++ {
		idx := (c.receiving + i) % n
		if c.bufs[idx].idle() {
			return idx, true
		}
	}
	return 0, false
}

// RecvByte ingests one byte from the transport. It is non-blocking and
// safe to call from interrupt context: it touches only the currently
// selected receiving buffer's body/length, publishing completion or error
// by storing exactly one of complete/errored last.
func (c *Codec) RecvByte(b byte) {
	switch c.pstate {
	case stateNoFrame:
		if b != endByte {
			return
		}
		idx, ok := c.pickIdleBuffer()
		if !ok {
			// No idle buffer: drop. The host will retry via its own
			// higher-level flow control (spec §4.1).
			return
		}
		c.receiving = idx
		c.bufs[idx].length = 0
		c.pstate = stateInFrame

	case stateInFrame:
		buf := c.bufs[c.receiving]
		switch b {
		case endByte:
			if buf.length == 0 {
				// Back-to-back END: self-synchronization, stay at the
				// start of a frame.
				return
			}
			buf.complete.Store(true)
			c.pstate = stateNoFrame
		case escByte:
			c.pstate = stateEscaping
		default:
			c.appendByte(buf, b)
		}

	case stateEscaping:
		buf := c.bufs[c.receiving]
		switch b {
		case escEndSub:
			c.appendByte(buf, endByte)
			if c.pstate == stateEscaping {
				c.pstate = stateInFrame
			}
		case escEscSub:
			c.appendByte(buf, escByte)
			if c.pstate == stateEscaping {
				c.pstate = stateInFrame
			}
		default:
			buf.errored.Store(true)
			c.pstate = stateNoFrame
		}
	}
}

// appendByte appends to the receiving buffer, marking it in error and
// returning to stateNoFrame on overflow.
func (c *Codec) appendByte(buf *recvBuffer, b byte) {
	if buf.length >= len(buf.buf) {
		buf.errored.Store(true)
		c.pstate = stateNoFrame
		return
	}
	buf.buf[buf.length] = b
	buf.length++
}

// GetFrameState scans the pool and selects the processing buffer as a
// side effect: error buffers dominate, then complete buffers, else Idle.
func (c *Codec) GetFrameState() FrameState {
	for i, b := range c.bufs {
		if b.errored.Load() {
			c.processing = i
			return Error
		}
	}
	for i, b := range c.bufs {
		if b.complete.Load() {
			c.processing = i
			return Complete
		}
	}
	c.processing = -1
	return Idle
}

// FrameData returns a zero-copy view of the processing buffer selected by
// the most recent GetFrameState call. The returned slice is only valid
// until the next Reset.
func (c *Codec) FrameData() ([]byte, error) {
	if c.processing < 0 {
		return nil, ErrInvalidArgument
	}
	b := c.bufs[c.processing]
	return b.buf[:b.length], nil
}

// Reset releases the processing buffer back to idle, clearing its flags
// and length. It is a no-op if no buffer is currently selected.
func (c *Codec) Reset() {
	if c.processing < 0 {
		return
	}
	b := c.bufs[c.processing]
	b.length = 0
	b.complete.Store(false)
	b.errored.Store(false)
	c.processing = -1
}
