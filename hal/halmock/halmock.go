// Package halmock provides in-memory hal collaborator fakes for tests,
// grounded on the teacher's scripted-fake test style (e.g.
// internal_test.go's scriptedReader): simple, deterministic, and
// recording enough call history for assertions like "flash_write_buff
// was invoked exactly once with this address and length".
package halmock

import (
	"time"

	"github.com/flashstub/core/hal"
)

// Write records one WriteBuff call.
type Write struct {
	Addr    uint32
	Data    []byte
	Encrypt bool
}

// Flash is an in-memory flash device: a byte slab plus an erased-bitmap
// at sector granularity, so EnsureErasedTo-style callers can be checked
// against the "erase-before-write" invariant (spec §8).
type Flash struct {
	SectorSize uint32
	Mem        []byte
	erased     map[uint32]bool // sector index -> erased

	Writes []Write

	// NextEraseFail, when true, makes the next StartNextErase call return
	// an error instead of progressing — used to exercise FailedSPIOp.
	NextEraseFail bool
	// WriteFail, when true, makes WriteBuff fail — used to exercise the
	// carry-over post-process failure path.
	WriteFail bool
}

// NewFlash builds a zeroed flash image of size bytes with the given
// sector size.
func NewFlash(size int, sectorSize uint32) *Flash {
	return &Flash{
		SectorSize: sectorSize,
		Mem:        make([]byte, size),
		erased:     make(map[uint32]bool),
	}
}

func (f *Flash) Init() error  { return nil }
func (f *Flash) Attach() error { return nil }
func (f *Flash) UpdateConfig(flashID, flashSize, blockSize, sectorSize, pageSize, statusMask uint32) error {
	return nil
}
func (f *Flash) EraseChip() error {
	for k := range f.erased {
		delete(f.erased, k)
	}
	for s := uint32(0); s*f.SectorSize < uint32(len(f.Mem)); s++ {
		f.erased[s] = true
	}
	for i := range f.Mem {
		f.Mem[i] = 0xFF
	}
	return nil
}
func (f *Flash) EraseArea(addr, size uint32) error {
	start := addr / f.SectorSize
	end := (addr + size + f.SectorSize - 1) / f.SectorSize
	for s := start; s < end; s++ {
		f.erased[s] = true
		base := s * f.SectorSize
		for i := base; i < base+f.SectorSize && int(i) < len(f.Mem); i++ {
			f.Mem[i] = 0xFF
		}
	}
	return nil
}

// StartNextErase advances *nextAddr by one sector per call until
// *remaining reaches zero, marking that sector erased.
func (f *Flash) StartNextErase(nextAddr, remaining *uint32) (hal.EraseStatus, error) {
	if f.NextEraseFail {
		f.NextEraseFail = false
		return hal.EraseBusy, errTestInjected
	}
	if *remaining == 0 {
		return hal.EraseDone, nil
	}
	step := f.SectorSize
	if step > *remaining {
		step = *remaining
	}
	if err := f.EraseArea(*nextAddr, step); err != nil {
		return hal.EraseBusy, err
	}
	*nextAddr += step
	*remaining -= step
	if *remaining == 0 {
		return hal.EraseDone, nil
	}
	return hal.EraseStarted, nil
}

func (f *Flash) WaitReady(timeout time.Duration) error { return nil }

func (f *Flash) ReadBuff(addr uint32, buf []byte) error {
	copy(buf, f.Mem[addr:int(addr)+len(buf)])
	return nil
}

func (f *Flash) WriteBuff(addr uint32, data []byte, encrypt bool) error {
	if f.WriteFail {
		f.WriteFail = false
		return errTestInjected
	}
	sector := addr / f.SectorSize
	if !f.erased[sector] {
		return errNotErased
	}
	copy(f.Mem[addr:], data)
	cp := append([]byte(nil), data...)
	f.Writes = append(f.Writes, Write{Addr: addr, Data: cp, Encrypt: encrypt})
	return nil
}

// Unsafe is an in-memory stand-in for hal.Unsafe: MemCopy writes into a
// backing RAM slab addressed from RAMBase, and Jump records the entry
// point it was called with instead of actually transferring control.
type Unsafe struct {
	RAMBase     uint32
	RAM         []byte
	JumpedTo    uint32
	JumpCalled  bool
	JumpFails   bool
}

func NewUnsafe(ramBase uint32, size int) *Unsafe {
	return &Unsafe{RAMBase: ramBase, RAM: make([]byte, size)}
}

func (u *Unsafe) MemCopy(dst uint32, data []byte) {
	off := dst - u.RAMBase
	copy(u.RAM[off:], data)
}

func (u *Unsafe) Jump(entry uint32) error {
	u.JumpCalled = true
	u.JumpedTo = entry
	if u.JumpFails {
		return errTestInjected
	}
	return nil
}

// Security is a fixed-blob GET_SECURITY_INFO fake.
type Security struct{ Blob []byte }

func (s *Security) Size() int            { return len(s.Blob) }
func (s *Security) Get() ([]byte, error) { return s.Blob, nil }

// Reg is an in-memory register file.
type Reg struct{ regs map[uint32]uint32 }

func NewReg() *Reg { return &Reg{regs: make(map[uint32]uint32)} }
func (r *Reg) Read(addr uint32) uint32  { return r.regs[addr] }
func (r *Reg) Write(addr, v uint32)     { r.regs[addr] = v }

// UART records the last baud rate set.
type UART struct{ Baud uint32 }

func (u *UART) SetBaudrate(b uint32) error { u.Baud = b; return nil }

// Delay records accumulated delay without actually sleeping.
type Delay struct{ TotalMicroseconds uint64 }

func (d *Delay) Microseconds(us uint32) { d.TotalMicroseconds += uint64(us) }

// Reboot records whether Reboot was called.
type Reboot struct{ Called bool }

func (r *Reboot) Reboot() { r.Called = true }
