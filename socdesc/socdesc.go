// Package socdesc holds the per-target constant tables transport.Binding
// construction consumes: USB-OTG register offsets, watchdog register
// layout, and small capability flags. Grounded on
// _examples/original_source/soc/targets/esp32*.c — each target file
// there is the same struct literal shape with different register
// offsets; this package is that table, transliterated to Go data (spec
// §2 "SoC/peripheral descriptors ... per-target constant tables").
package socdesc

// USBOTG holds the USB-OTG peripheral's interrupt map and control
// register offsets plus its interrupt number, as consumed by the USB CDC
// transport binding.
type USBOTG struct {
	IntrMapReg         uint32
	HPSysUSBOTG20Ctrl  uint32
	USBInterruptNum    uint32
	CLICExtIntrNumOff  uint32
}

// Watchdog holds the watchdog register layout the transport binding's
// init sequence must leave alone (disabling the watchdog is out of scope
// here, spec §1 — this table exists so a real target's transport.Attach
// can locate it, not so this repo reimplements watchdog control).
type Watchdog struct {
	Option1Reg         uint32
	WDTConfig0Reg      uint32
	WDTWProtectReg     uint32
	SWDConfReg         uint32
	SWDWProtectReg     uint32
	CPUPerConfReg      uint32
	SysClkConfReg      uint32
	SWDWriteKey        uint32
	WDTWriteKey        uint32
	SWDAutoFeedEnBit   uint32
	ForceDownloadBootBit uint32
	CPUPeriodSelMask   uint32
	CPUPeriodSelShift  uint32
	CPUPeriodMax       uint32
	SoCClkSelMask      uint32
	SoCClkSelShift     uint32
	SoCClkMax          uint32
}

// Capabilities is the small capability-flag set the original per-target
// files hardcode.
type Capabilities struct {
	IsRISCV bool
}

// Descriptor is one target's full constant table.
type Descriptor struct {
	Name                 string
	Capabilities         Capabilities
	USBOTG               USBOTG
	Watchdog             Watchdog
	SecurityInfoBytes    int
}

// Target descriptor tables, one per supported SoC. Register offsets are
// zero placeholders in the upstream source for these targets (the real
// values live in vendor headers out of this repo's scope, spec §1); only
// Capabilities.IsRISCV carries real per-target data. SecurityInfoBytes is
// left at zero for every target.
var (
	ESP32 = Descriptor{
		Name:         "esp32",
		Capabilities: Capabilities{IsRISCV: false},
	}
	ESP32S2 = Descriptor{
		Name:         "esp32s2",
		Capabilities: Capabilities{IsRISCV: false},
	}
	ESP32C61 = Descriptor{
		Name:         "esp32c61",
		Capabilities: Capabilities{IsRISCV: true},
	}
	ESP32P4 = Descriptor{
		Name:         "esp32p4",
		Capabilities: Capabilities{IsRISCV: true},
	}
)

// ByName looks up a target descriptor, ok=false if unknown.
func ByName(name string) (Descriptor, bool) {
	switch name {
	case ESP32.Name:
		return ESP32, true
	case ESP32S2.Name:
		return ESP32S2, true
	case ESP32C61.Name:
		return ESP32C61, true
	case ESP32P4.Name:
		return ESP32P4, true
	default:
		return Descriptor{}, false
	}
}
