package hart

// isBranchOp reports whether op is one of the six B-format branches.
func isBranchOp(op Op) bool {
	switch op {
	case OpBEQ, OpBNE, OpBLT, OpBGE, OpBLTU, OpBGEU:
		return true
	default:
		return false
	}
}

// executeJump handles JAL and JALR. Both compute their target before
// writing the link register, so the rd == rs1 hazard in JALR reads the old
// rs1 correctly regardless of write order.
func (h *Hart) executeJump(inst Instruction) error {
	linkPC := h.pc + InstructionSize

	switch inst.Op {
	case OpJAL:
		target := h.pc + uint32(inst.Imm)
		if err := checkAlignment(target); err != nil {
			return err
		}
		h.SetRegister(inst.Rd, linkPC)
		h.pc = target

	case OpJALR:
		rs1 := h.GetRegister(inst.Rs1)
		target := (rs1 + uint32(inst.Imm)) &^ 1
		if err := checkAlignment(target); err != nil {
			return err
		}
		h.SetRegister(inst.Rd, linkPC)
		h.pc = target
	}

	return nil
}

// executeBranch handles BEQ/BNE/BLT/BGE/BLTU/BGEU. A taken branch whose
// target is misaligned traps; a not-taken branch simply advances PC by 4.
func (h *Hart) executeBranch(inst Instruction) error {
	rs1 := h.GetRegister(inst.Rs1)
	rs2 := h.GetRegister(inst.Rs2)

	var taken bool
	switch inst.Op {
	case OpBEQ:
		taken = rs1 == rs2
	case OpBNE:
		taken = rs1 != rs2
	case OpBLT:
		taken = int32(rs1) < int32(rs2)
	case OpBGE:
		taken = int32(rs1) >= int32(rs2)
	case OpBLTU:
		taken = rs1 < rs2
	case OpBGEU:
		taken = rs1 >= rs2
	}

	if !taken {
		h.pc += InstructionSize
		return nil
	}

	target := h.pc + uint32(inst.Imm)
	if err := checkAlignment(target); err != nil {
		return err
	}
	h.pc = target
	return nil
}
