// Package transport binds a byte-oriented hardware transport (async
// serial, a CDC-style USB virtual serial, a JTAG side-channel serial) to
// the slip.Codec: one single-byte TX function, an optional flush hook,
// and an attach point for the transport's own RX interrupt to feed
// slip.Codec.RecvByte (spec §6 "Transports").
//
// Grounded on netopts.go's per-transport Option helper shape
// (WithReadTCP/WithReadUDP/...), generalized from "pick a (Protocol,
// ByteOrder) pair" to "pick a TX/flush pair and an RX attach point for
// one specific byte transport".
package transport

import (
	"github.com/flashstub/core/slip"
	"github.com/flashstub/core/socdesc"
)

// TXFunc writes a single byte to the underlying hardware FIFO.
type TXFunc func(b byte) error

// FlushFunc forces any buffered TX bytes out immediately.
type FlushFunc func() error

// Binding attaches one concrete byte transport to a slip.Codec.
type Binding interface {
	// Attach binds this transport's TX/flush functions to codec and
	// returns the byte-receive callback the transport's own RX
	// interrupt should call for every incoming byte.
	Attach(codec *slip.Codec) (recvByte func(b byte))
	// Descriptor returns the per-target constant table this binding was
	// constructed with (spec §2 "SoC/peripheral descriptors ... consumed
	// by transport init").
	Descriptor() socdesc.Descriptor
}

// greeting is the literal ASCII bytes the stub sends in one SLIP frame
// immediately after init, so the host can detect a resident stub (spec
// §6 "Startup greeting").
var greeting = [4]byte{'O', 'H', 'A', 'I'}

// Greeting returns the 4-byte "OHAI" payload for the startup greeting
// frame. The caller sends it with codec.SendFrame(transport.Greeting()).
func Greeting() []byte {
	b := greeting
	return b[:]
}
