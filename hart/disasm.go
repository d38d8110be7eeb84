package hart

import "fmt"

// Disassemble renders a decoded Instruction as an assembly-like mnemonic
// string, used by the debug trace stream and the interactive debugger's
// step output. It never fails: an Instruction reaching this point has
// already survived Decode.
func Disassemble(inst Instruction) string {
	r := func(idx int) string { return fmt.Sprintf("x%d", idx) }

	switch inst.Op {
	case OpADDI:
		return fmt.Sprintf("addi %s, %s, %d", r(inst.Rd), r(inst.Rs1), inst.Imm)
	case OpSLTI:
		return fmt.Sprintf("slti %s, %s, %d", r(inst.Rd), r(inst.Rs1), inst.Imm)
	case OpSLTIU:
		return fmt.Sprintf("sltiu %s, %s, %d", r(inst.Rd), r(inst.Rs1), inst.Imm)
	case OpXORI:
		return fmt.Sprintf("xori %s, %s, %d", r(inst.Rd), r(inst.Rs1), inst.Imm)
	case OpORI:
		return fmt.Sprintf("ori %s, %s, %d", r(inst.Rd), r(inst.Rs1), inst.Imm)
	case OpANDI:
		return fmt.Sprintf("andi %s, %s, %d", r(inst.Rd), r(inst.Rs1), inst.Imm)
	case OpSLLI:
		return fmt.Sprintf("slli %s, %s, %d", r(inst.Rd), r(inst.Rs1), inst.Imm)
	case OpSRLI:
		return fmt.Sprintf("srli %s, %s, %d", r(inst.Rd), r(inst.Rs1), inst.Imm)
	case OpSRAI:
		return fmt.Sprintf("srai %s, %s, %d", r(inst.Rd), r(inst.Rs1), inst.Imm)

	case OpADD:
		return fmt.Sprintf("add %s, %s, %s", r(inst.Rd), r(inst.Rs1), r(inst.Rs2))
	case OpSUB:
		return fmt.Sprintf("sub %s, %s, %s", r(inst.Rd), r(inst.Rs1), r(inst.Rs2))
	case OpSLL:
		return fmt.Sprintf("sll %s, %s, %s", r(inst.Rd), r(inst.Rs1), r(inst.Rs2))
	case OpSLT:
		return fmt.Sprintf("slt %s, %s, %s", r(inst.Rd), r(inst.Rs1), r(inst.Rs2))
	case OpSLTU:
		return fmt.Sprintf("sltu %s, %s, %s", r(inst.Rd), r(inst.Rs1), r(inst.Rs2))
	case OpXOR:
		return fmt.Sprintf("xor %s, %s, %s", r(inst.Rd), r(inst.Rs1), r(inst.Rs2))
	case OpSRL:
		return fmt.Sprintf("srl %s, %s, %s", r(inst.Rd), r(inst.Rs1), r(inst.Rs2))
	case OpSRA:
		return fmt.Sprintf("sra %s, %s, %s", r(inst.Rd), r(inst.Rs1), r(inst.Rs2))
	case OpOR:
		return fmt.Sprintf("or %s, %s, %s", r(inst.Rd), r(inst.Rs1), r(inst.Rs2))
	case OpAND:
		return fmt.Sprintf("and %s, %s, %s", r(inst.Rd), r(inst.Rs1), r(inst.Rs2))

	case OpLUI:
		return fmt.Sprintf("lui %s, 0x%x", r(inst.Rd), uint32(inst.Imm)>>12)
	case OpAUIPC:
		return fmt.Sprintf("auipc %s, 0x%x", r(inst.Rd), uint32(inst.Imm)>>12)

	case OpJAL:
		return fmt.Sprintf("jal %s, %d", r(inst.Rd), inst.Imm)
	case OpJALR:
		return fmt.Sprintf("jalr %s, %s, %d", r(inst.Rd), r(inst.Rs1), inst.Imm)

	case OpBEQ:
		return fmt.Sprintf("beq %s, %s, %d", r(inst.Rs1), r(inst.Rs2), inst.Imm)
	case OpBNE:
		return fmt.Sprintf("bne %s, %s, %d", r(inst.Rs1), r(inst.Rs2), inst.Imm)
	case OpBLT:
		return fmt.Sprintf("blt %s, %s, %d", r(inst.Rs1), r(inst.Rs2), inst.Imm)
	case OpBGE:
		return fmt.Sprintf("bge %s, %s, %d", r(inst.Rs1), r(inst.Rs2), inst.Imm)
	case OpBLTU:
		return fmt.Sprintf("bltu %s, %s, %d", r(inst.Rs1), r(inst.Rs2), inst.Imm)
	case OpBGEU:
		return fmt.Sprintf("bgeu %s, %s, %d", r(inst.Rs1), r(inst.Rs2), inst.Imm)

	case OpLB:
		return fmt.Sprintf("lb %s, %d(%s)", r(inst.Rd), inst.Imm, r(inst.Rs1))
	case OpLH:
		return fmt.Sprintf("lh %s, %d(%s)", r(inst.Rd), inst.Imm, r(inst.Rs1))
	case OpLW:
		return fmt.Sprintf("lw %s, %d(%s)", r(inst.Rd), inst.Imm, r(inst.Rs1))
	case OpLBU:
		return fmt.Sprintf("lbu %s, %d(%s)", r(inst.Rd), inst.Imm, r(inst.Rs1))
	case OpLHU:
		return fmt.Sprintf("lhu %s, %d(%s)", r(inst.Rd), inst.Imm, r(inst.Rs1))

	case OpSB:
		return fmt.Sprintf("sb %s, %d(%s)", r(inst.Rs2), inst.Imm, r(inst.Rs1))
	case OpSH:
		return fmt.Sprintf("sh %s, %d(%s)", r(inst.Rs2), inst.Imm, r(inst.Rs1))
	case OpSW:
		return fmt.Sprintf("sw %s, %d(%s)", r(inst.Rs2), inst.Imm, r(inst.Rs1))

	case OpECALL:
		return "ecall"
	case OpEBREAK:
		return "ebreak"
	case OpFENCE:
		return "fence"

	default:
		return "<invalid>"
	}
}
