package dispatch

import "github.com/flashstub/core/proto"

// handlers is the static opcode->Handler table: the direct translation
// of the C function-pointer table spec §9 calls out. Built once, never
// mutated at runtime.
var handlers = map[proto.Opcode]Handler{
	proto.OpSync:             handleSync,
	proto.OpReadReg:          handleReadReg,
	proto.OpWriteReg:         handleWriteReg,
	proto.OpFlashBegin:       handleFlashBegin,
	proto.OpFlashDeflBegin:   handleFlashDeflBegin,
	proto.OpFlashData:        handleFlashData,
	proto.OpFlashDeflData:    handleFlashDeflData,
	proto.OpFlashEnd:         handleFlashEnd,
	proto.OpFlashDeflEnd:     handleFlashEnd,
	proto.OpMemBegin:         handleMemBegin,
	proto.OpMemData:          handleMemData,
	proto.OpMemEnd:           handleMemEnd,
	proto.OpSPIAttach:        handleSpiAttach,
	proto.OpSPISetParams:     handleSpiSetParams,
	proto.OpChangeBaudrate:   handleChangeBaudrate,
	proto.OpSPIFlashMD5:      handleSPIFlashMD5,
	proto.OpGetSecurityInfo:  handleGetSecurityInfo,
	proto.OpReadFlash:        handleReadFlash,
	proto.OpEraseFlash:       handleEraseFlash,
	proto.OpEraseRegion:      handleEraseRegion,
	proto.OpRunUserCode:      handleRunUserCode,
}
