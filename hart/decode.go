package hart

import (
	"errors"
	"fmt"
)

// ErrIllegalInstruction is returned by Decode for any instruction word that
// does not correspond to a recognized RV32I encoding: an unrecognized
// opcode, an undefined funct3/funct7 combination, or a shift-immediate with
// non-zero bits outside its 5-bit shift amount.
var ErrIllegalInstruction = errors.New("hart: illegal instruction")

// Op identifies the operation a decoded Instruction performs. Execute
// dispatches on this tag rather than re-extracting bitfields.
type Op int

const (
	OpInvalid Op = iota

	OpADDI
	OpSLTI
	OpSLTIU
	OpXORI
	OpORI
	OpANDI
	OpSLLI
	OpSRLI
	OpSRAI

	OpADD
	OpSUB
	OpSLL
	OpSLT
	OpSLTU
	OpXOR
	OpSRL
	OpSRA
	OpOR
	OpAND

	OpLUI
	OpAUIPC

	OpJAL
	OpJALR

	OpBEQ
	OpBNE
	OpBLT
	OpBGE
	OpBLTU
	OpBGEU

	OpLB
	OpLH
	OpLW
	OpLBU
	OpLHU

	OpSB
	OpSH
	OpSW

	OpECALL
	OpEBREAK
	OpFENCE
)

// Instruction is the decoded form of one 32-bit RV32I instruction word: an
// operation tag plus whichever operand fields that operation uses. Rd, Rs1,
// and Rs2 are register indices in [0, 31]; Imm is already sign-extended to
// 32 bits. Decode never mutates machine state, and is pure: two calls on the
// same word return equal records.
type Instruction struct {
	Op  Op
	Rd  int
	Rs1 int
	Rs2 int
	Imm int32
}

// Decode maps a raw instruction word to its decoded form, or reports
// ErrIllegalInstruction if the word does not encode a recognized RV32I
// instruction.
func Decode(word uint32) (Instruction, error) {
	opcode := word & 0x7F
	funct3 := (word >> 12) & 0x7
	funct7 := (word >> 25) & 0x7F
	rd := int((word >> 7) & 0x1F)
	rs1 := int((word >> 15) & 0x1F)
	rs2 := int((word >> 20) & 0x1F)

	switch opcode {
	case OpcodeOpImm:
		imm := immI(word)
		switch funct3 {
		case Funct3ADD_SUB:
			return Instruction{Op: OpADDI, Rd: rd, Rs1: rs1, Imm: imm}, nil
		case Funct3SLT:
			return Instruction{Op: OpSLTI, Rd: rd, Rs1: rs1, Imm: imm}, nil
		case Funct3SLTU:
			return Instruction{Op: OpSLTIU, Rd: rd, Rs1: rs1, Imm: imm}, nil
		case Funct3XOR:
			return Instruction{Op: OpXORI, Rd: rd, Rs1: rs1, Imm: imm}, nil
		case Funct3OR:
			return Instruction{Op: OpORI, Rd: rd, Rs1: rs1, Imm: imm}, nil
		case Funct3AND:
			return Instruction{Op: OpANDI, Rd: rd, Rs1: rs1, Imm: imm}, nil
		case Funct3SLL:
			if funct7 != Funct7Base {
				return Instruction{}, illegal(word, "SLLI with non-zero funct7")
			}
			return Instruction{Op: OpSLLI, Rd: rd, Rs1: rs1, Imm: int32(rs2)}, nil
		case Funct3SR:
			switch funct7 {
			case Funct7Base:
				return Instruction{Op: OpSRLI, Rd: rd, Rs1: rs1, Imm: int32(rs2)}, nil
			case Funct7Alt:
				return Instruction{Op: OpSRAI, Rd: rd, Rs1: rs1, Imm: int32(rs2)}, nil
			default:
				return Instruction{}, illegal(word, "SRLI/SRAI with unrecognized funct7")
			}
		default:
			return Instruction{}, illegal(word, "unrecognized OP-IMM funct3")
		}

	case OpcodeOp:
		if funct7 != Funct7Base && !(funct7 == Funct7Alt && (funct3 == Funct3ADD_SUB || funct3 == Funct3SR)) {
			return Instruction{}, illegal(word, "unrecognized OP funct7")
		}
		switch funct3 {
		case Funct3ADD_SUB:
			switch funct7 {
			case Funct7Base:
				return Instruction{Op: OpADD, Rd: rd, Rs1: rs1, Rs2: rs2}, nil
			case Funct7Alt:
				return Instruction{Op: OpSUB, Rd: rd, Rs1: rs1, Rs2: rs2}, nil
			default:
				return Instruction{}, illegal(word, "ADD/SUB with unrecognized funct7")
			}
		case Funct3SLL:
			return Instruction{Op: OpSLL, Rd: rd, Rs1: rs1, Rs2: rs2}, nil
		case Funct3SLT:
			return Instruction{Op: OpSLT, Rd: rd, Rs1: rs1, Rs2: rs2}, nil
		case Funct3SLTU:
			return Instruction{Op: OpSLTU, Rd: rd, Rs1: rs1, Rs2: rs2}, nil
		case Funct3XOR:
			return Instruction{Op: OpXOR, Rd: rd, Rs1: rs1, Rs2: rs2}, nil
		case Funct3SR:
			switch funct7 {
			case Funct7Base:
				return Instruction{Op: OpSRL, Rd: rd, Rs1: rs1, Rs2: rs2}, nil
			case Funct7Alt:
				return Instruction{Op: OpSRA, Rd: rd, Rs1: rs1, Rs2: rs2}, nil
			default:
				return Instruction{}, illegal(word, "SRL/SRA with unrecognized funct7")
			}
		case Funct3OR:
			return Instruction{Op: OpOR, Rd: rd, Rs1: rs1, Rs2: rs2}, nil
		case Funct3AND:
			return Instruction{Op: OpAND, Rd: rd, Rs1: rs1, Rs2: rs2}, nil
		default:
			return Instruction{}, illegal(word, "unrecognized OP funct3")
		}

	case OpcodeLUI:
		return Instruction{Op: OpLUI, Rd: rd, Imm: immU(word)}, nil

	case OpcodeAUIPC:
		return Instruction{Op: OpAUIPC, Rd: rd, Imm: immU(word)}, nil

	case OpcodeJAL:
		return Instruction{Op: OpJAL, Rd: rd, Imm: immJ(word)}, nil

	case OpcodeJALR:
		if funct3 != 0 {
			return Instruction{}, illegal(word, "JALR with non-zero funct3")
		}
		return Instruction{Op: OpJALR, Rd: rd, Rs1: rs1, Imm: immI(word)}, nil

	case OpcodeBRANCH:
		imm := immB(word)
		switch funct3 {
		case Funct3BEQ:
			return Instruction{Op: OpBEQ, Rs1: rs1, Rs2: rs2, Imm: imm}, nil
		case Funct3BNE:
			return Instruction{Op: OpBNE, Rs1: rs1, Rs2: rs2, Imm: imm}, nil
		case Funct3BLT:
			return Instruction{Op: OpBLT, Rs1: rs1, Rs2: rs2, Imm: imm}, nil
		case Funct3BGE:
			return Instruction{Op: OpBGE, Rs1: rs1, Rs2: rs2, Imm: imm}, nil
		case Funct3BLTU:
			return Instruction{Op: OpBLTU, Rs1: rs1, Rs2: rs2, Imm: imm}, nil
		case Funct3BGEU:
			return Instruction{Op: OpBGEU, Rs1: rs1, Rs2: rs2, Imm: imm}, nil
		default:
			return Instruction{}, illegal(word, "unrecognized BRANCH funct3")
		}

	case OpcodeLOAD:
		imm := immI(word)
		switch funct3 {
		case Funct3LB:
			return Instruction{Op: OpLB, Rd: rd, Rs1: rs1, Imm: imm}, nil
		case Funct3LH:
			return Instruction{Op: OpLH, Rd: rd, Rs1: rs1, Imm: imm}, nil
		case Funct3LW:
			return Instruction{Op: OpLW, Rd: rd, Rs1: rs1, Imm: imm}, nil
		case Funct3LBU:
			return Instruction{Op: OpLBU, Rd: rd, Rs1: rs1, Imm: imm}, nil
		case Funct3LHU:
			return Instruction{Op: OpLHU, Rd: rd, Rs1: rs1, Imm: imm}, nil
		default:
			return Instruction{}, illegal(word, "unrecognized LOAD funct3")
		}

	case OpcodeSTORE:
		imm := immS(word)
		switch funct3 {
		case Funct3SB:
			return Instruction{Op: OpSB, Rs1: rs1, Rs2: rs2, Imm: imm}, nil
		case Funct3SH:
			return Instruction{Op: OpSH, Rs1: rs1, Rs2: rs2, Imm: imm}, nil
		case Funct3SW:
			return Instruction{Op: OpSW, Rs1: rs1, Rs2: rs2, Imm: imm}, nil
		default:
			return Instruction{}, illegal(word, "unrecognized STORE funct3")
		}

	case OpcodeSYSTEM:
		if funct3 != 0 {
			return Instruction{}, illegal(word, "unrecognized SYSTEM funct3")
		}
		switch (word >> 20) & 0xFFF {
		case SystemImmECALL:
			return Instruction{Op: OpECALL}, nil
		case SystemImmEBREAK:
			return Instruction{Op: OpEBREAK}, nil
		default:
			return Instruction{}, illegal(word, "unrecognized SYSTEM immediate")
		}

	case OpcodeMiscMem:
		if funct3 != 0 {
			return Instruction{}, illegal(word, "unrecognized MISC-MEM funct3")
		}
		return Instruction{Op: OpFENCE}, nil

	default:
		return Instruction{}, illegal(word, "unrecognized opcode")
	}
}

func illegal(word uint32, reason string) error {
	return fmt.Errorf("%w: 0x%08x (%s)", ErrIllegalInstruction, word, reason)
}

// immI extracts and sign-extends the I-format immediate, inst[31:20].
func immI(word uint32) int32 {
	return int32(word) >> 20
}

// immS extracts and sign-extends the S-format immediate,
// {inst[31:25], inst[11:7]}.
func immS(word uint32) int32 {
	raw := ((word >> 25) << 5) | ((word >> 7) & 0x1F)
	return signExtend(raw, 12)
}

// immB extracts and sign-extends the B-format immediate,
// {inst[31], inst[7], inst[30:25], inst[11:8], 0}.
func immB(word uint32) int32 {
	raw := (((word >> 31) & 0x1) << 12) |
		(((word >> 7) & 0x1) << 11) |
		(((word >> 25) & 0x3F) << 5) |
		(((word >> 8) & 0xF) << 1)
	return signExtend(raw, 13)
}

// immU extracts the U-format immediate, {inst[31:12], 12'b0}. Already
// occupies the top 20 bits, so no further shifting is needed; the sign lives
// in bit 31 of the word itself.
func immU(word uint32) int32 {
	return int32(word & 0xFFFFF000)
}

// immJ extracts and sign-extends the J-format immediate,
// {inst[31], inst[19:12], inst[20], inst[30:21], 0}.
func immJ(word uint32) int32 {
	raw := (((word >> 31) & 0x1) << 20) |
		(((word >> 12) & 0xFF) << 12) |
		(((word >> 20) & 0x1) << 11) |
		(((word >> 21) & 0x3FF) << 1)
	return signExtend(raw, 21)
}

// signExtend sign-extends the low bits-wide field of raw to a full 32-bit
// two's-complement value.
func signExtend(raw uint32, bits uint) int32 {
	shift := 32 - bits
	return int32(raw<<shift) >> shift
}
