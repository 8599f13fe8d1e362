package transport_test

import (
	"testing"

	"github.com/flashstub/core/slip"
	"github.com/flashstub/core/socdesc"
	"github.com/flashstub/core/transport"
)

func TestGreetingIsOHAI(t *testing.T) {
	got := transport.Greeting()
	if string(got) != "OHAI" {
		t.Fatalf("Greeting() = %q, want OHAI", got)
	}
}

func TestUARTBinding_AttachSendsBytes(t *testing.T) {
	var sent []byte
	b := transport.NewUART(socdesc.ESP32, func(b byte) error {
		sent = append(sent, b)
		return nil
	})
	if b.Descriptor().Name != socdesc.ESP32.Name {
		t.Fatalf("Descriptor() = %v, want %v", b.Descriptor(), socdesc.ESP32)
	}
	codec := slip.New()
	b.Attach(codec)

	if err := codec.SendFrame([]byte{1, 2, 3}); err != nil {
		t.Fatalf("SendFrame: %v", err)
	}
	want := []byte{0xC0, 1, 2, 3, 0xC0}
	if string(sent) != string(want) {
		t.Fatalf("sent = % x, want % x", sent, want)
	}
}

func TestUSBCDCBinding_FlushesOnceAfterFrame(t *testing.T) {
	flushes := 0
	b := transport.NewUSBCDC(socdesc.ESP32S2, func(b byte) error { return nil }, func() error {
		flushes++
		return nil
	})
	codec := slip.New()
	b.Attach(codec)

	if err := codec.SendFrame([]byte{1, 2, 3}); err != nil {
		t.Fatalf("SendFrame: %v", err)
	}
	if flushes != 1 {
		t.Fatalf("flushes = %d, want 1", flushes)
	}
}

func TestJTAGBinding_FlushesOnEndAndOn63Bytes(t *testing.T) {
	flushes := 0
	b := transport.NewJTAGSerial(socdesc.ESP32C61, func(b byte) error { return nil }, func() error {
		flushes++
		return nil
	})
	codec := slip.New()
	b.Attach(codec)

	// A tiny frame: flushes happen only on END bytes, the opening one and
	// the closing one, so two END bytes mean at least two flushes.
	if err := codec.SendFrame([]byte{0x01, 0x02}); err != nil {
		t.Fatalf("SendFrame: %v", err)
	}
	if flushes < 2 {
		t.Fatalf("flushes = %d, want at least 2 (one per END byte)", flushes)
	}

	flushes = 0
	big := make([]byte, 200)
	for i := range big {
		big[i] = byte(i + 1) // avoid 0xC0/0xDB so no escaping skews the count
		if big[i] == 0xC0 || big[i] == 0xDB {
			big[i] = 0x01
		}
	}
	if err := codec.SendFrame(big); err != nil {
		t.Fatalf("SendFrame: %v", err)
	}
	// 200 data bytes + 2 END bytes = 202 bytes total, threshold 63 means
	// at least 3 mid-frame flushes plus the final END flush.
	if flushes < 3 {
		t.Fatalf("flushes = %d, want at least 3 for a 200-byte payload", flushes)
	}
}
