// Command stubsim is a host-runnable demonstration of the flasher stub
// core: an in-memory pipe stands in for the serial/USB transport, an
// errgroup drives the ISR-producer side (feeding slip.Codec.RecvByte)
// concurrently with the stubloop foreground goroutine, and every
// dispatched opcode is traced with a per-run uuid so concurrent stubsim
// instances (e.g. in a test harness) can be told apart in interleaved
// log output.
//
// Not part of the spec's hard core (spec §1 scopes out host-side
// tooling and per-target bring-up); this is the Go-native equivalent of
// the original firmware's src/main.c entry points, useful here as an
// integration-test harness for slip+proto+dispatch+flash+mem+stubloop
// wired together end to end.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/flashstub/core/dispatch"
	"github.com/flashstub/core/hal"
	"github.com/flashstub/core/hal/halmock"
	"github.com/flashstub/core/proto"
	"github.com/flashstub/core/slip"
	"github.com/flashstub/core/socdesc"
	"github.com/flashstub/core/stubloop"
	"github.com/flashstub/core/transport"
)

func main() {
	flashSize := flag.Int("flash-size", 1<<20, "simulated external flash size in bytes")
	sectorSize := flag.Uint("sector-size", 4096, "simulated flash sector size in bytes")
	flag.Parse()

	sessionID := uuid.New()
	logger := log.New(os.Stdout, fmt.Sprintf("[stubsim %s] ", sessionID), log.LstdFlags|log.Lmicroseconds)

	codec := slip.New()
	flashDev := halmock.NewFlash(*flashSize, uint32(*sectorSize))
	plat := hal.Platform{
		Flash:    flashDev,
		Security: &halmock.Security{Blob: []byte{0xDE, 0xAD, 0xBE, 0xEF}},
		Reg:      halmock.NewReg(),
		UART:     &halmock.UART{},
		Unsafe:   halmock.NewUnsafe(0x4000_0000, 1<<16),
		Delay:    &halmock.Delay{},
		Reboot:   &halmock.Reboot{},
	}

	trace := dispatch.Trace(func(format string, args ...any) {
		logger.Printf(format, args...)
	})
	core := dispatch.NewCore(codec, plat, trace)

	target := socdesc.ESP32
	uartBinding := transport.NewUART(target, func(b byte) error {
		// A real UART ISR would push b into the hardware FIFO; stubsim
		// only needs the inbound path to demonstrate the producer/
		// consumer split, so outgoing bytes are simply discarded here.
		return nil
	})
	recvByte := uartBinding.Attach(codec)
	logger.Printf("transport bound to target %s", uartBinding.Descriptor().Name)

	if err := codec.SendFrame(transport.Greeting()); err != nil {
		logger.Fatalf("greeting send failed: %v", err)
	}
	logger.Printf("sent greeting")

	g := new(errgroup.Group)

	// ISR-producer goroutine: feeds a SYNC request followed by a
	// RUN_USER_CODE request into the codec one byte at a time, as a real
	// RX interrupt would — RUN_USER_CODE gives the foreground loop below
	// a natural exit point (spec §4.3, §8 "No response for
	// RUN_USER_CODE") without stubsim needing its own ad-hoc stop signal.
	g.Go(func() error {
		for _, b := range encodeRequestFrame(proto.OpSync, make([]byte, 36)) {
			recvByte(b)
		}
		for _, b := range encodeRequestFrame(proto.OpRunUserCode, nil) {
			recvByte(b)
		}
		return nil
	})

	// Foreground-loop goroutine: drains completed frames through
	// dispatch.Core until RUN_USER_CODE ends it.
	g.Go(func() error {
		return stubloop.Run(core, codec)
	})

	if err := g.Wait(); err != nil {
		logger.Fatalf("stubsim run failed: %v", err)
	}
	logger.Printf("demonstration complete: SYNC acknowledged, RUN_USER_CODE handed control back")
}

// encodeRequestFrame builds one SLIP-encoded request frame for op with
// the given payload.
func encodeRequestFrame(op proto.Opcode, payload []byte) []byte {
	frame := make([]byte, proto.HeaderLen+len(payload))
	proto.PutHeader(frame, proto.Header{
		Direction:  proto.DirRequest,
		Opcode:     op,
		PayloadLen: uint16(len(payload)),
	})
	copy(frame[proto.HeaderLen:], payload)

	out := []byte{0xC0}
	for _, b := range frame {
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
