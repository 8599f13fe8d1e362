package stubloop_test

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/flashstub/core/dispatch"
	"github.com/flashstub/core/hal"
	"github.com/flashstub/core/hal/halmock"
	"github.com/flashstub/core/proto"
	"github.com/flashstub/core/slip"
	"github.com/flashstub/core/stubloop"
)

func testPlatform() hal.Platform {
	return hal.Platform{
		Flash:    halmock.NewFlash(1<<20, 4096),
		Security: &halmock.Security{Blob: []byte{0xAA}},
		Reg:      halmock.NewReg(),
		UART:     &halmock.UART{},
		Unsafe:   halmock.NewUnsafe(0x4000_0000, 4096),
		Delay:    &halmock.Delay{},
		Reboot:   &halmock.Reboot{},
	}
}

func encodeSLIP(p []byte) []byte {
	out := []byte{0xC0}
	for _, b := range p {
		switch b {
		case 0xC0:
			out = append(out, 0xDB, 0xDC)
		case 0xDB:
			out = append(out, 0xDB, 0xDD)
		default:
			out = append(out, b)
		}
	}
	return append(out, 0xC0)
}

func runUserCodeFrame() []byte {
	payload := make([]byte, 0)
	hdr := make([]byte, 8)
	hdr[0] = proto.DirRequest
	hdr[1] = byte(proto.OpRunUserCode)
	binary.LittleEndian.PutUint16(hdr[2:4], uint16(len(payload)))
	return append(hdr, payload...)
}

func TestRun_ExitsOnRunUserCode(t *testing.T) {
	codec := slip.New()
	var txOut []byte
	codec.SetTX(func(b byte) error { txOut = append(txOut, b); return nil })

	core := dispatch.NewCore(codec, testPlatform(), nil)

	wire := encodeSLIP(runUserCodeFrame())
	go func() {
		for _, b := range wire {
			codec.RecvByte(b)
		}
	}()

	done := make(chan error, 1)
	go func() { done <- stubloop.Run(core, codec) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not exit after RUN_USER_CODE")
	}
	if len(txOut) != 0 {
		t.Fatalf("RUN_USER_CODE must not emit a response frame, got %d bytes", len(txOut))
	}
}
