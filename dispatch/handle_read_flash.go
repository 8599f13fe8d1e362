package dispatch

import (
	"crypto/md5"
	"errors"
	"time"

	"github.com/flashstub/core/proto"
	"github.com/flashstub/core/slip"
)

// errReadFlashBadAck means a READ_FLASH ACK frame arrived with a
// payload length other than 4 bytes (spec §8 "breaks its streaming
// loop if an ACK frame with unexpected payload length is seen").
var errReadFlashBadAck = errors.New("dispatch: read_flash ack has unexpected length")

// errReadFlashAckTimeout guards the otherwise-unbounded wait for a host
// ACK; a real host always answers, but a test double or a wedged link
// should not hang the post-process forever.
var errReadFlashAckTimeout = errors.New("dispatch: read_flash timed out waiting for ack")

// readFlashAckTimeout bounds each wait for a host ACK frame.
const readFlashAckTimeout = 5 * time.Second

// handleReadFlash answers READ_FLASH: (offset, read_size,
// per_packet_size, max_unacked). Acknowledge immediately, then stream
// read_size bytes back as raw SLIP frames of per_packet_size (not
// wrapped in the usual response envelope), keeping an MD5 over
// everything sent, and waiting for a host ACK between every packet —
// this pinned revision (spec §9) caps the in-flight window at 1
// regardless of max_unacked, so every send is immediately followed by
// an ack wait rather than a pipelined burst.
func handleReadFlash(ctx *Context) (Result, PostProcess) {
	p := ctx.Req.Payload()
	offset := proto.LE32(p[0:4])
	readSize := proto.LE32(p[4:8])
	perPacket := proto.LE32(p[8:12])
	_ = proto.LE32(p[12:16]) // max_unacked: unused, window is pinned at 1

	if perPacket == 0 {
		return Result{Code: proto.BadDataLen}, nil
	}

	post := func(pctx *Context) error {
		return streamReadFlash(pctx, offset, readSize, perPacket)
	}
	return Result{Code: proto.Success}, post
}

func streamReadFlash(ctx *Context, offset, readSize, perPacket uint32) error {
	h := md5.New()
	buf := make([]byte, perPacket)

	for remaining := readSize; remaining > 0; {
		n := perPacket
		if n > remaining {
			n = remaining
		}
		chunk := buf[:n]
		if err := ctx.Core.hal.Flash.ReadBuff(offset, chunk); err != nil {
			return err
		}
		h.Write(chunk)

		if err := ctx.Core.codec.SendFrame(chunk); err != nil {
			return err
		}
		if _, err := waitForAck(ctx.Core.codec); err != nil {
			return err
		}

		offset += n
		remaining -= n
	}

	sum := h.Sum(nil)
	return ctx.Core.codec.SendFrame(sum)
}

// waitForAck blocks (bounded by readFlashAckTimeout) until the codec
// completes a frame, treating frame errors as the silent-resync noise
// spec §7 channel 3 describes and simply continuing to wait.
func waitForAck(codec *slip.Codec) ([]byte, error) {
	deadline := time.Now().Add(readFlashAckTimeout)
	for {
		switch codec.GetFrameState() {
		case slip.Complete:
			data, err := codec.FrameData()
			codec.Reset()
			if err != nil {
				return nil, err
			}
			if len(data) != 4 {
				return nil, errReadFlashBadAck
			}
			return data, nil
		case slip.Error:
			codec.Reset()
		}
		if time.Now().After(deadline) {
			return nil, errReadFlashAckTimeout
		}
		time.Sleep(200 * time.Microsecond)
	}
}
