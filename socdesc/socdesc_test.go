package socdesc_test

import (
	"testing"

	"github.com/flashstub/core/socdesc"
)

func TestByName(t *testing.T) {
	d, ok := socdesc.ByName("esp32c61")
	if !ok {
		t.Fatal("expected esp32c61 to be known")
	}
	if !d.Capabilities.IsRISCV {
		t.Fatal("esp32c61 is a RISC-V target")
	}
	if socdesc.ESP32.Capabilities.IsRISCV {
		t.Fatal("esp32 (Xtensa) must not report RISC-V")
	}
	if _, ok := socdesc.ByName("nonexistent"); ok {
		t.Fatal("expected unknown target to report ok=false")
	}
}
