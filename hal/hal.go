// Package hal declares the external collaborators spec §1/§6 treat as
// opaque capabilities: vendor flash driver primitives, register access,
// UART control, security-info and reboot hooks, and the narrow
// unsafe-memory surface MEM_DATA/MEM_END require. Everything in this
// package is an interface; the core (dispatch, flash, mem) compiles
// against it and never against concrete hardware.
package hal

import "time"

// EraseStatus is the outcome of one non-blocking erase step (spec §4.4
// "flash_start_next_erase").
type EraseStatus int

const (
	EraseStarted EraseStatus = iota
	EraseBusy
	EraseDone
)

// Flash is the vendor flash driver surface spec §1 lists as out of
// scope: flash_init/attach/erase_chip/erase_area/start_next_erase/
// write_buff/read_buff/wait_ready/update_config.
type Flash interface {
	Init() error
	Attach() error
	UpdateConfig(flashID, flashSize, blockSize, sectorSize, pageSize, statusMask uint32) error
	EraseChip() error
	EraseArea(addr, size uint32) error
	// StartNextErase kicks off the next pending sector erase without
	// blocking. It reports EraseBusy if the previous erase has not
	// completed yet, EraseStarted once a new sector's erase begins, or
	// EraseDone when nextAddr has reached the erase extent's end.
	StartNextErase(nextAddr, remaining *uint32) (EraseStatus, error)
	WaitReady(timeout time.Duration) error
	ReadBuff(addr uint32, buf []byte) error
	WriteBuff(addr uint32, data []byte, encrypt bool) error
}

// SecurityInfo backs GET_SECURITY_INFO.
type SecurityInfo interface {
	Size() int
	Get() ([]byte, error)
}

// RegisterIO backs READ_REG/WRITE_REG memory-mapped register access.
type RegisterIO interface {
	Read(addr uint32) uint32
	Write(addr, value uint32)
}

// UART backs CHANGE_BAUDRATE.
type UART interface {
	SetBaudrate(baud uint32) error
}

// Unsafe quarantines the two raw-address operations spec §9 calls out:
// MEM_DATA's memcpy into a physical address, and MEM_END's jump to an
// arbitrary entry point. Jump never returns on success (spec Invariant 7).
type Unsafe interface {
	MemCopy(dst uint32, data []byte)
	Jump(entry uint32) error
}

// Delay backs WRITE_REG's per-record delay_us.
type Delay interface {
	Microseconds(us uint32)
}

// Reboot backs FLASH_END/FLASH_DEFL_END's non-zero reboot flag.
type Reboot interface {
	Reboot()
}

// Platform groups every collaborator a dispatch.Core needs.
type Platform struct {
	Flash    Flash
	Security SecurityInfo
	Reg      RegisterIO
	UART     UART
	Unsafe   Unsafe
	Delay    Delay
	Reboot   Reboot
}
