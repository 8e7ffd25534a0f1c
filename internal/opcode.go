package internal

// Op identifies a decoded CHIP-8 operation.
type Op int

// One value per instruction pattern.
const (
	OpCls     Op = iota // 00E0
	OpRet               // 00EE
	OpJp                // 1nnn
	OpCall              // 2nnn
	OpSeByte            // 3xkk
	OpSneByte           // 4xkk
	OpSeReg             // 5xy0
	OpLdByte            // 6xkk
	OpAddByte           // 7xkk
	OpLdReg             // 8xy0
	OpOr                // 8xy1
	OpAnd               // 8xy2
	OpXor               // 8xy3
	OpAddReg            // 8xy4
	OpSub               // 8xy5
	OpShr               // 8xy6
	OpSubn              // 8xy7
	OpShl               // 8xyE
	OpSneReg            // 9xy0
	OpLdI               // Annn
	OpJpV0              // Bnnn
	OpRnd               // Cxkk
	OpDrw               // Dxyn
	OpSkp               // Ex9E
	OpSknp              // ExA1
	OpLdVxDT            // Fx07
	OpLdKey             // Fx0A
	OpLdDTVx            // Fx15
	OpLdSTVx            // Fx18
	OpAddI              // Fx1E
	OpLdFont            // Fx29
	OpLdBCD             // Fx33
	OpStoreV            // Fx55
	OpLoadV             // Fx65
)

// Instruction is one opcode decoded into its operation and operand fields.
// Not every operation uses every field; the decoder fills them all so the
// executor never touches raw bits.
type Instruction struct {
	Op  Op
	X   uint8  // the lower 4 bits of the high byte of the instruction
	Y   uint8  // the upper 4 bits of the low byte of the instruction
	N   uint8  // the lowest 4 bits of the instruction
	KK  uint8  // the lowest 8 bits of the instruction
	NNN uint16 // the lowest 12 bits of the instruction
}

// Decode splits a raw 16-bit opcode into its operand fields and resolves the
// operation from the high nibble, and where the high nibble is shared, from
// the secondary nibble or byte. Patterns with no matching operation return
// an UnknownOpcodeError.
func Decode(word uint16) (Instruction, error) {
	inst := Instruction{
		X:   uint8((word >> 8) & 0x000F),
		Y:   uint8((word >> 4) & 0x000F),
		N:   uint8(word & 0x000F),
		KK:  uint8(word & 0x00FF),
		NNN: word & 0x0FFF,
	}

	switch word & 0xF000 {
	case 0x0000:
		switch inst.KK {
		case 0xE0:
			inst.Op = OpCls
		case 0xEE:
			inst.Op = OpRet
		default:
			return inst, &UnknownOpcodeError{Opcode: word}
		}
	case 0x1000:
		inst.Op = OpJp
	case 0x2000:
		inst.Op = OpCall
	case 0x3000:
		inst.Op = OpSeByte
	case 0x4000:
		inst.Op = OpSneByte
	case 0x5000:
		if inst.N != 0x0 {
			return inst, &UnknownOpcodeError{Opcode: word}
		}
		inst.Op = OpSeReg
	case 0x6000:
		inst.Op = OpLdByte
	case 0x7000:
		inst.Op = OpAddByte
	case 0x8000:
		switch inst.N {
		case 0x0:
			inst.Op = OpLdReg
		case 0x1:
			inst.Op = OpOr
		case 0x2:
			inst.Op = OpAnd
		case 0x3:
			inst.Op = OpXor
		case 0x4:
			inst.Op = OpAddReg
		case 0x5:
			inst.Op = OpSub
		case 0x6:
			inst.Op = OpShr
		case 0x7:
			inst.Op = OpSubn
		case 0xE:
			inst.Op = OpShl
		default:
			return inst, &UnknownOpcodeError{Opcode: word}
		}
	case 0x9000:
		if inst.N != 0x0 {
			return inst, &UnknownOpcodeError{Opcode: word}
		}
		inst.Op = OpSneReg
	case 0xA000:
		inst.Op = OpLdI
	case 0xB000:
		inst.Op = OpJpV0
	case 0xC000:
		inst.Op = OpRnd
	case 0xD000:
		inst.Op = OpDrw
	case 0xE000:
		switch inst.KK {
		case 0x9E:
			inst.Op = OpSkp
		case 0xA1:
			inst.Op = OpSknp
		default:
			return inst, &UnknownOpcodeError{Opcode: word}
		}
	case 0xF000:
		switch inst.KK {
		case 0x07:
			inst.Op = OpLdVxDT
		case 0x0A:
			inst.Op = OpLdKey
		case 0x15:
			inst.Op = OpLdDTVx
		case 0x18:
			inst.Op = OpLdSTVx
		case 0x1E:
			inst.Op = OpAddI
		case 0x29:
			inst.Op = OpLdFont
		case 0x33:
			inst.Op = OpLdBCD
		case 0x55:
			inst.Op = OpStoreV
		case 0x65:
			inst.Op = OpLoadV
		default:
			return inst, &UnknownOpcodeError{Opcode: word}
		}
	}
	return inst, nil
}
