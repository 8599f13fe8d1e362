package transport

import (
	"github.com/flashstub/core/slip"
	"github.com/flashstub/core/socdesc"
)

// UARTBinding is the asynchronous-serial transport: plain byte-
// synchronous TX against the hardware FIFO, no flush needed (spec §6
// "async serial").
type UARTBinding struct {
	desc socdesc.Descriptor
	tx   TXFunc
}

// NewUART builds a UARTBinding around tx, the single-byte UART transmit
// primitive (uart_tx_one_char in spec §6's external-collaborator list),
// carrying desc so Descriptor() can report which target's register
// tables this binding was constructed against.
func NewUART(desc socdesc.Descriptor, tx TXFunc) *UARTBinding {
	return &UARTBinding{desc: desc, tx: tx}
}

// Attach binds tx to codec and returns codec.RecvByte as the callback the
// UART RX interrupt should invoke per incoming byte.
func (u *UARTBinding) Attach(codec *slip.Codec) func(b byte) {
	codec.SetTX(u.tx)
	codec.SetFlush(nil)
	return codec.RecvByte
}

// Descriptor returns the target descriptor this binding was built with.
func (u *UARTBinding) Descriptor() socdesc.Descriptor { return u.desc }
