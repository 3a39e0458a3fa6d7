package internal

import "fmt"

// Op identifies a decoded CHIP-8 instruction.
type Op uint8

// CHIP-8 instructions, named after the mnemonics of the technical reference.
const (
	OpUnknown Op = iota
	OpCLS        // 00E0
	OpRET        // 00EE
	OpJP         // 1nnn
	OpCALL       // 2nnn
	OpSEByte     // 3xkk
	OpSNEByte    // 4xkk
	OpSEReg      // 5xy0
	OpLDByte     // 6xkk
	OpADDByte    // 7xkk
	OpLDReg      // 8xy0
	OpOR         // 8xy1
	OpAND        // 8xy2
	OpXOR        // 8xy3
	OpADDReg     // 8xy4
	OpSUB        // 8xy5
	OpSHR        // 8xy6
	OpSUBN       // 8xy7
	OpSHL        // 8xyE
	OpSNEReg     // 9xy0
	OpLDI        // Annn
	OpJPV0       // Bnnn
	OpRND        // Cxkk
	OpDRW        // Dxyn
	OpSKP        // Ex9E
	OpSKNP       // ExA1
	OpLDVxDT     // Fx07
	OpLDKey      // Fx0A
	OpLDDT       // Fx15
	OpLDST       // Fx18
	OpADDI       // Fx1E
	OpLDF        // Fx29
	OpLDB        // Fx33
	OpLDMemStore // Fx55
	OpLDMemLoad  // Fx65
)

// Instruction is a decoded opcode together with its operand fields.
type Instruction struct {
	Op     Op
	Opcode uint16
	X      uint8  // the lower 4 bits of the high byte of the instruction
	Y      uint8  // the upper 4 bits of the low byte of the instruction
	N      uint8  // the lowest 4 bits of the instruction
	KK     uint8  // the lowest 8 bits of the instruction
	NNN    uint16 // the lowest 12 bits of the instruction
}

// Decode classifies a 16-bit opcode. Opcodes that match no instruction decode
// to OpUnknown.
func Decode(opcode uint16) Instruction {
	ins := Instruction{
		Opcode: opcode,
		X:      uint8((opcode >> 8) & 0x000F),
		Y:      uint8((opcode >> 4) & 0x000F),
		N:      uint8(opcode & 0x000F),
		KK:     uint8(opcode & 0x00FF),
		NNN:    opcode & 0x0FFF,
	}

	switch opcode & 0xF000 { // Compare against the first 4 bits of the instruction only
	case 0x0000:
		switch ins.NNN {
		case 0x0E0:
			ins.Op = OpCLS
		case 0x0EE:
			ins.Op = OpRET
		}
	case 0x1000:
		ins.Op = OpJP
	case 0x2000:
		ins.Op = OpCALL
	case 0x3000:
		ins.Op = OpSEByte
	case 0x4000:
		ins.Op = OpSNEByte
	case 0x5000:
		if ins.N == 0x0 {
			ins.Op = OpSEReg
		}
	case 0x6000:
		ins.Op = OpLDByte
	case 0x7000:
		ins.Op = OpADDByte
	case 0x8000:
		ins.Op = aluOps[ins.N]
	case 0x9000:
		if ins.N == 0x0 {
			ins.Op = OpSNEReg
		}
	case 0xA000:
		ins.Op = OpLDI
	case 0xB000:
		ins.Op = OpJPV0
	case 0xC000:
		ins.Op = OpRND
	case 0xD000:
		ins.Op = OpDRW
	case 0xE000:
		switch ins.KK {
		case 0x9E:
			ins.Op = OpSKP
		case 0xA1:
			ins.Op = OpSKNP
		}
	case 0xF000:
		ins.Op = miscOps[ins.KK]
	}
	return ins
}

// aluOps maps the low nibble of an 8xy_ opcode, missing entries are OpUnknown.
var aluOps = [16]Op{
	0x0: OpLDReg,
	0x1: OpOR,
	0x2: OpAND,
	0x3: OpXOR,
	0x4: OpADDReg,
	0x5: OpSUB,
	0x6: OpSHR,
	0x7: OpSUBN,
	0xE: OpSHL,
}

var miscOps = map[uint8]Op{
	0x07: OpLDVxDT,
	0x0A: OpLDKey,
	0x15: OpLDDT,
	0x18: OpLDST,
	0x1E: OpADDI,
	0x29: OpLDF,
	0x33: OpLDB,
	0x55: OpLDMemStore,
	0x65: OpLDMemLoad,
}

// String returns the instruction in the assembler syntax of the technical reference.
func (ins Instruction) String() string {
	switch ins.Op {
	case OpCLS:
		return "CLS"
	case OpRET:
		return "RET"
	case OpJP:
		return fmt.Sprintf("JP %03X", ins.NNN)
	case OpCALL:
		return fmt.Sprintf("CALL %03X", ins.NNN)
	case OpSEByte:
		return fmt.Sprintf("SE V%X, %02X", ins.X, ins.KK)
	case OpSNEByte:
		return fmt.Sprintf("SNE V%X, %02X", ins.X, ins.KK)
	case OpSEReg:
		return fmt.Sprintf("SE V%X, V%X", ins.X, ins.Y)
	case OpLDByte:
		return fmt.Sprintf("LD V%X, %02X", ins.X, ins.KK)
	case OpADDByte:
		return fmt.Sprintf("ADD V%X, %02X", ins.X, ins.KK)
	case OpLDReg:
		return fmt.Sprintf("LD V%X, V%X", ins.X, ins.Y)
	case OpOR:
		return fmt.Sprintf("OR V%X, V%X", ins.X, ins.Y)
	case OpAND:
		return fmt.Sprintf("AND V%X, V%X", ins.X, ins.Y)
	case OpXOR:
		return fmt.Sprintf("XOR V%X, V%X", ins.X, ins.Y)
	case OpADDReg:
		return fmt.Sprintf("ADD V%X, V%X", ins.X, ins.Y)
	case OpSUB:
		return fmt.Sprintf("SUB V%X, V%X", ins.X, ins.Y)
	case OpSHR:
		return fmt.Sprintf("SHR V%X", ins.X)
	case OpSUBN:
		return fmt.Sprintf("SUBN V%X, V%X", ins.X, ins.Y)
	case OpSHL:
		return fmt.Sprintf("SHL V%X", ins.X)
	case OpSNEReg:
		return fmt.Sprintf("SNE V%X, V%X", ins.X, ins.Y)
	case OpLDI:
		return fmt.Sprintf("LD I, %03X", ins.NNN)
	case OpJPV0:
		return fmt.Sprintf("JP V0, %03X", ins.NNN)
	case OpRND:
		return fmt.Sprintf("RND V%X, %02X", ins.X, ins.KK)
	case OpDRW:
		return fmt.Sprintf("DRW V%X, V%X, %X", ins.X, ins.Y, ins.N)
	case OpSKP:
		return fmt.Sprintf("SKP V%X", ins.X)
	case OpSKNP:
		return fmt.Sprintf("SKNP V%X", ins.X)
	case OpLDVxDT:
		return fmt.Sprintf("LD V%X, DT", ins.X)
	case OpLDKey:
		return fmt.Sprintf("LD V%X, K", ins.X)
	case OpLDDT:
		return fmt.Sprintf("LD DT, V%X", ins.X)
	case OpLDST:
		return fmt.Sprintf("LD ST, V%X", ins.X)
	case OpADDI:
		return fmt.Sprintf("ADD I, V%X", ins.X)
	case OpLDF:
		return fmt.Sprintf("LD F, V%X", ins.X)
	case OpLDB:
		return fmt.Sprintf("LD B, V%X", ins.X)
	case OpLDMemStore:
		return fmt.Sprintf("LD [I], V%X", ins.X)
	case OpLDMemLoad:
		return fmt.Sprintf("LD V%X, [I]", ins.X)
	default:
		return fmt.Sprintf("DW %04X", ins.Opcode)
	}
}
