package hart

// isALUImmOp reports whether op is one of the register-immediate ALU
// instructions (OP-IMM).
func isALUImmOp(op Op) bool {
	switch op {
	case OpADDI, OpSLTI, OpSLTIU, OpXORI, OpORI, OpANDI, OpSLLI, OpSRLI, OpSRAI:
		return true
	default:
		return false
	}
}

// isALUOp reports whether op is one of the register-register ALU
// instructions (OP).
func isALUOp(op Op) bool {
	switch op {
	case OpADD, OpSUB, OpSLL, OpSLT, OpSLTU, OpXOR, OpSRL, OpSRA, OpOR, OpAND:
		return true
	default:
		return false
	}
}

// executeALUImm handles ADDI/SLTI/SLTIU/XORI/ORI/ANDI/SLLI/SRLI/SRAI. All
// arithmetic wraps modulo 2^32; shift amounts are masked to their low 5
// bits, though for the immediate shifts the decoder already guarantees that
// (Imm holds exactly the 5-bit shamt field).
func (h *Hart) executeALUImm(inst Instruction) error {
	rs1 := h.GetRegister(inst.Rs1)
	imm := uint32(inst.Imm)

	var result uint32
	switch inst.Op {
	case OpADDI:
		result = rs1 + imm
	case OpSLTI:
		result = boolToWord(int32(rs1) < inst.Imm)
	case OpSLTIU:
		result = boolToWord(rs1 < imm)
	case OpXORI:
		result = rs1 ^ imm
	case OpORI:
		result = rs1 | imm
	case OpANDI:
		result = rs1 & imm
	case OpSLLI:
		result = rs1 << (imm & ShiftAmountMask)
	case OpSRLI:
		result = rs1 >> (imm & ShiftAmountMask)
	case OpSRAI:
		result = uint32(int32(rs1) >> (imm & ShiftAmountMask))
	}

	h.SetRegister(inst.Rd, result)
	h.pc += InstructionSize
	return nil
}

// executeALU handles ADD/SUB/SLL/SLT/SLTU/XOR/SRL/SRA/OR/AND. The shift
// amount for SLL/SRL/SRA is taken from the low 5 bits of rs2.
func (h *Hart) executeALU(inst Instruction) error {
	rs1 := h.GetRegister(inst.Rs1)
	rs2 := h.GetRegister(inst.Rs2)
	shamt := rs2 & ShiftAmountMask

	var result uint32
	switch inst.Op {
	case OpADD:
		result = rs1 + rs2
	case OpSUB:
		result = rs1 - rs2
	case OpSLL:
		result = rs1 << shamt
	case OpSLT:
		result = boolToWord(int32(rs1) < int32(rs2))
	case OpSLTU:
		result = boolToWord(rs1 < rs2)
	case OpXOR:
		result = rs1 ^ rs2
	case OpSRL:
		result = rs1 >> shamt
	case OpSRA:
		result = uint32(int32(rs1) >> shamt)
	case OpOR:
		result = rs1 | rs2
	case OpAND:
		result = rs1 & rs2
	}

	h.SetRegister(inst.Rd, result)
	h.pc += InstructionSize
	return nil
}

// executeUpperImm handles LUI and AUIPC, both U-format with the 20-bit
// literal already placed in bits 31..12 by the decoder.
func (h *Hart) executeUpperImm(inst Instruction) error {
	switch inst.Op {
	case OpLUI:
		h.SetRegister(inst.Rd, uint32(inst.Imm))
	case OpAUIPC:
		h.SetRegister(inst.Rd, h.pc+uint32(inst.Imm))
	}
	h.pc += InstructionSize
	return nil
}

func boolToWord(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
