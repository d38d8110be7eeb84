package hart

// isLoadOp reports whether op is one of LB/LH/LW/LBU/LHU.
func isLoadOp(op Op) bool {
	switch op {
	case OpLB, OpLH, OpLW, OpLBU, OpLHU:
		return true
	default:
		return false
	}
}

// isStoreOp reports whether op is one of SB/SH/SW.
func isStoreOp(op Op) bool {
	switch op {
	case OpSB, OpSH, OpSW:
		return true
	default:
		return false
	}
}

// effectiveAddress computes rs1 + imm, the address every load and store in
// RV32I uses.
func (h *Hart) effectiveAddress(inst Instruction) uint32 {
	return h.GetRegister(inst.Rs1) + uint32(inst.Imm)
}

// executeLoad handles LB/LH/LW/LBU/LHU. Memory.checkRange reports an
// out-of-range access as the wrapped ErrMemoryOutOfRange; wrapMemTrap adapts
// that into TrapMemoryOutOfRange.
func (h *Hart) executeLoad(inst Instruction) error {
	ea := h.effectiveAddress(inst)

	var result uint32
	switch inst.Op {
	case OpLB:
		v, err := h.mem.Load8(ea)
		if err != nil {
			return wrapMemTrap(err)
		}
		result = SignExtendByte(v)
	case OpLH:
		v, err := h.mem.Load16(ea)
		if err != nil {
			return wrapMemTrap(err)
		}
		result = SignExtendHalfword(v)
	case OpLW:
		v, err := h.mem.Load32(ea)
		if err != nil {
			return wrapMemTrap(err)
		}
		result = v
	case OpLBU:
		v, err := h.mem.Load8(ea)
		if err != nil {
			return wrapMemTrap(err)
		}
		result = uint32(v)
	case OpLHU:
		v, err := h.mem.Load16(ea)
		if err != nil {
			return wrapMemTrap(err)
		}
		result = uint32(v)
	}

	h.SetRegister(inst.Rd, result)
	h.pc += InstructionSize
	return nil
}

// executeStore handles SB/SH/SW.
func (h *Hart) executeStore(inst Instruction) error {
	ea := h.effectiveAddress(inst)
	value := h.GetRegister(inst.Rs2)

	var err error
	switch inst.Op {
	case OpSB:
		err = h.mem.Store8(ea, value)
	case OpSH:
		err = h.mem.Store16(ea, value)
	case OpSW:
		err = h.mem.Store32(ea, value)
	}
	if err != nil {
		return wrapMemTrap(err)
	}

	h.pc += InstructionSize
	return nil
}

func wrapMemTrap(err error) error {
	return trap(TrapMemoryOutOfRange, err)
}
