package internal

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		opcode uint16
		op     Op
		text   string
	}{
		{0x00E0, OpCLS, "CLS"},
		{0x00EE, OpRET, "RET"},
		{0x0123, OpUnknown, "DW 0123"},
		{0x1ABC, OpJP, "JP ABC"},
		{0x2ABC, OpCALL, "CALL ABC"},
		{0x3A12, OpSEByte, "SE VA, 12"},
		{0x4A12, OpSNEByte, "SNE VA, 12"},
		{0x5AB0, OpSEReg, "SE VA, VB"},
		{0x5AB1, OpUnknown, "DW 5AB1"},
		{0x6A12, OpLDByte, "LD VA, 12"},
		{0x7A12, OpADDByte, "ADD VA, 12"},
		{0x8AB0, OpLDReg, "LD VA, VB"},
		{0x8AB1, OpOR, "OR VA, VB"},
		{0x8AB2, OpAND, "AND VA, VB"},
		{0x8AB3, OpXOR, "XOR VA, VB"},
		{0x8AB4, OpADDReg, "ADD VA, VB"},
		{0x8AB5, OpSUB, "SUB VA, VB"},
		{0x8AB6, OpSHR, "SHR VA"},
		{0x8AB7, OpSUBN, "SUBN VA, VB"},
		{0x8ABE, OpSHL, "SHL VA"},
		{0x8AB9, OpUnknown, "DW 8AB9"},
		{0x9AB0, OpSNEReg, "SNE VA, VB"},
		{0x9AB3, OpUnknown, "DW 9AB3"},
		{0xA123, OpLDI, "LD I, 123"},
		{0xB123, OpJPV0, "JP V0, 123"},
		{0xCA0F, OpRND, "RND VA, 0F"},
		{0xDAB5, OpDRW, "DRW VA, VB, 5"},
		{0xEA9E, OpSKP, "SKP VA"},
		{0xEAA1, OpSKNP, "SKNP VA"},
		{0xEA00, OpUnknown, "DW EA00"},
		{0xFA07, OpLDVxDT, "LD VA, DT"},
		{0xFA0A, OpLDKey, "LD VA, K"},
		{0xFA15, OpLDDT, "LD DT, VA"},
		{0xFA18, OpLDST, "LD ST, VA"},
		{0xFA1E, OpADDI, "ADD I, VA"},
		{0xFA29, OpLDF, "LD F, VA"},
		{0xFA33, OpLDB, "LD B, VA"},
		{0xFA55, OpLDMemStore, "LD [I], VA"},
		{0xFA65, OpLDMemLoad, "LD VA, [I]"},
		{0xFA99, OpUnknown, "DW FA99"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			ins := Decode(tt.opcode)
			assert.Equal(t, tt.op, ins.Op)
			assert.Equal(t, tt.text, ins.String())
			assert.Equal(t, tt.opcode, ins.Opcode)
		})
	}
}

func TestDecodeOperands(t *testing.T) {
	ins := Decode(0xD3C7)
	assert.Equal(t, uint8(0x3), ins.X)
	assert.Equal(t, uint8(0xC), ins.Y)
	assert.Equal(t, uint8(0x7), ins.N)
	assert.Equal(t, uint8(0xC7), ins.KK)
	assert.Equal(t, uint16(0x3C7), ins.NNN)
}
