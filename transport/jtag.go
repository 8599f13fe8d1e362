package transport

import (
	"github.com/flashstub/core/slip"
	"github.com/flashstub/core/socdesc"
)

// jtagFlushThreshold is the host driver quirk spec §6 documents: the
// JTAG side-channel serial host driver needs an explicit flush at least
// every 63 bytes, or it stalls waiting for more than its internal buffer
// holds.
const jtagFlushThreshold = 63

// JTAGBinding is the JTAG-side-channel serial transport. It wraps the
// underlying tx function with its own byte counter and flushes whenever
// the current byte is END (0xC0) or 63 bytes have accumulated since the
// last flush, whichever comes first (spec §6 "host driver quirk") —
// finer-grained than the once-per-frame flush slip.Codec.SendFrame
// otherwise performs, so the wrapping happens here rather than in the
// codec.
type JTAGBinding struct {
	desc  socdesc.Descriptor
	tx    TXFunc
	flush FlushFunc
	count int
}

// NewJTAGSerial builds a JTAGBinding around tx and flush, carrying desc
// so Descriptor() can report which target this binding was constructed
// against.
func NewJTAGSerial(desc socdesc.Descriptor, tx TXFunc, flush FlushFunc) *JTAGBinding {
	return &JTAGBinding{desc: desc, tx: tx, flush: flush}
}

// Descriptor returns the target descriptor this binding was built with.
func (j *JTAGBinding) Descriptor() socdesc.Descriptor { return j.desc }

const jtagEndByte byte = 0xC0

func (j *JTAGBinding) wrappedTX(b byte) error {
	if err := j.tx(b); err != nil {
		return err
	}
	j.count++
	if b == jtagEndByte || j.count >= jtagFlushThreshold {
		j.count = 0
		if j.flush != nil {
			return j.flush()
		}
	}
	return nil
}

// Attach binds the flush-quirked TX wrapper to codec. codec's own flush
// hook is left nil: the wrapper already flushes on every closing END, so
// a second flush after SendFrame's loop would be redundant.
func (j *JTAGBinding) Attach(codec *slip.Codec) func(b byte) {
	codec.SetTX(j.wrappedTX)
	codec.SetFlush(nil)
	return codec.RecvByte
}
