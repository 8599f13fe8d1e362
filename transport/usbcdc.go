package transport

import (
	"github.com/flashstub/core/slip"
	"github.com/flashstub/core/socdesc"
)

// USBCDCBinding is the CDC-style USB virtual-serial transport. Unlike
// UART it requires an explicit flush after each frame's closing END to
// push the USB endpoint's buffered IN transaction (spec §6 "two flavors
// of USB").
type USBCDCBinding struct {
	desc  socdesc.Descriptor
	tx    TXFunc
	flush FlushFunc
}

// NewUSBCDC builds a USBCDCBinding around tx and flush, carrying desc so
// Descriptor() can report which target's USB-OTG table this binding was
// built against.
func NewUSBCDC(desc socdesc.Descriptor, tx TXFunc, flush FlushFunc) *USBCDCBinding {
	return &USBCDCBinding{desc: desc, tx: tx, flush: flush}
}

// Attach binds tx/flush to codec and returns codec.RecvByte as the
// callback the USB CDC RX interrupt should invoke per incoming byte.
func (u *USBCDCBinding) Attach(codec *slip.Codec) func(b byte) {
	codec.SetTX(u.tx)
	codec.SetFlush(u.flush)
	return codec.RecvByte
}

// Descriptor returns the target descriptor this binding was built with.
func (u *USBCDCBinding) Descriptor() socdesc.Descriptor { return u.desc }
