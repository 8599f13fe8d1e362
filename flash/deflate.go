package flash

import (
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"

	"github.com/flashstub/core/hal"
)

// errNeedMoreInput is returned by pushReader when its buffered compressed
// bytes are exhausted. It stands in for the external decompressor
// interface's NEEDS_MORE_INPUT status (spec §6 "decompress(...) returning
// one of NEEDS_MORE_INPUT | HAS_MORE_OUTPUT | DONE | error<0"): the
// zlib.Reader propagates it up through Read, and the pump loop below
// recognizes it as "stop for this call, not a real failure".
var errNeedMoreInput = errors.New("flash: inflate needs more compressed input")

// pushReader is an io.Reader fed by repeated appends, used to let a
// standard zlib.Reader consume a zlib stream that arrives in pieces
// across multiple FLASH_DEFL_DATA frames instead of all at once.
type pushReader struct {
	buf    []byte
	cursor int
}

func (r *pushReader) push(p []byte) {
	r.buf = append(r.buf, p...)
}

func (r *pushReader) compact() {
	if r.cursor > 64*1024 {
		r.buf = append(r.buf[:0], r.buf[r.cursor:]...)
		r.cursor = 0
	}
}

func (r *pushReader) Read(p []byte) (int, error) {
	avail := len(r.buf) - r.cursor
	if avail <= 0 {
		return 0, errNeedMoreInput
	}
	n := copy(p, r.buf[r.cursor:])
	r.cursor += n
	return n, nil
}

// inflateState is the streaming zlib decompressor plus its dictionary-
// sized output buffer (spec §4.4 "Dictionary buffer").
type inflateState struct {
	in       pushReader
	zr       io.ReadCloser
	out      []byte
	outLen   int
	finished bool
}

func newInflateState(blockSize uint32) *inflateState {
	size := int(blockSize)
	if size <= 0 {
		size = 4096
	}
	return &inflateState{out: make([]byte, size)}
}

// PumpDeflate feeds compressed into the streaming decompressor and drains
// its dictionary buffer to flash whenever full or the stream completes.
// It returns the number of compressed bytes consumed from this call's
// input (for compressed-side bookkeeping) and the number of decompressed
// bytes drained to flash. seq==0 resets the dictionary write cursor
// (spec §4.4's "only reliance on seq").
func PumpDeflate(op *Operation, flashPlat hal.Flash, compressed []byte, seq uint32) (inBytes, outBytes int, err error) {
	if !op.InProgress || op.dec == nil {
		return 0, 0, ErrNotInProgress
	}
	st := op.dec
	if seq == 0 {
		st.outLen = 0
	}

	before := len(st.in.buf) - st.in.cursor
	startOffset := op.Offset
	st.in.push(compressed)

	if st.zr == nil {
		if len(st.in.buf)-st.in.cursor < 2 {
			return 0, 0, nil // wait for at least a zlib header's worth
		}
		zr, zerr := zlib.NewReader(&st.in)
		if zerr != nil {
			if errors.Is(zerr, errNeedMoreInput) {
				return 0, 0, nil
			}
			return 0, 0, err2code(zerr)
		}
		st.zr = zr
	}

	for {
		if e := PumpErase(op, flashPlat); e != nil {
			return inBytes, outBytes, e
		}

		if st.outLen == len(st.out) {
			if e := drain(op, flashPlat, st); e != nil {
				return inBytes, outBytes, e
			}
		}

		n, rerr := st.zr.Read(st.out[st.outLen:])
		st.outLen += n
		if rerr != nil {
			if errors.Is(rerr, errNeedMoreInput) {
				break
			}
			if rerr == io.EOF {
				if e := drain(op, flashPlat, st); e != nil {
					return inBytes, outBytes, e
				}
				st.finished = true
				break
			}
			return inBytes, outBytes, err2code(rerr)
		}
	}

	after := len(st.in.buf) - st.in.cursor
	inBytes = before + len(compressed) - after
	st.in.compact()
	outBytes = int(op.Offset - startOffset)
	return inBytes, outBytes, nil
}

// drain writes the filled portion of the dictionary buffer to flash,
// erase-ahead first, and resets the cursor.
func drain(op *Operation, flashPlat hal.Flash, st *inflateState) error {
	if st.outLen == 0 {
		return nil
	}
	n := st.outLen
	if uint32(n) > op.TotalRemaining {
		n = int(op.TotalRemaining)
	}
	if err := EnsureErasedTo(op, flashPlat, op.Offset+uint32(n)); err != nil {
		return err
	}
	if err := flashPlat.WriteBuff(op.Offset, st.out[:n], op.Encrypt); err != nil {
		return err
	}
	op.Offset += uint32(n)
	op.TotalRemaining -= uint32(n)
	st.outLen = 0
	return nil
}

// ErrInflate wraps any zlib/flate stream error (bad header, corrupt
// data, checksum mismatch) as the INFLATE_ERROR response (spec §6).
var ErrInflate = errors.New("flash: inflate error")

func err2code(err error) error {
	return fmt.Errorf("%w: %v", ErrInflate, err)
}
