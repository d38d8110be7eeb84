package hart

// Test-only instruction encoders. There is no assembler in scope, so tests
// that need a concrete instruction word build one directly from its format
// fields, mirroring the bit layouts in decode.go.

func encodeR(opcode, funct3, funct7 uint32, rd, rs1, rs2 int) uint32 {
	return (funct7 << 25) | (uint32(rs2) << 20) | (uint32(rs1) << 15) |
		(funct3 << 12) | (uint32(rd) << 7) | opcode
}

func encodeI(opcode, funct3 uint32, rd, rs1 int, imm int32) uint32 {
	return (uint32(imm) << 20) | (uint32(rs1) << 15) | (funct3 << 12) | (uint32(rd) << 7) | opcode
}

func encodeShiftImm(opcode, funct3, funct7 uint32, rd, rs1 int, shamt uint32) uint32 {
	return (funct7 << 25) | (shamt << 20) | (uint32(rs1) << 15) | (funct3 << 12) | (uint32(rd) << 7) | opcode
}

func encodeS(opcode, funct3 uint32, rs1, rs2 int, imm int32) uint32 {
	u := uint32(imm)
	return ((u >> 5) << 25) | (uint32(rs2) << 20) | (uint32(rs1) << 15) |
		(funct3 << 12) | ((u & 0x1F) << 7) | opcode
}

func encodeB(opcode, funct3 uint32, rs1, rs2 int, imm int32) uint32 {
	u := uint32(imm)
	bit12 := (u >> 12) & 0x1
	bit11 := (u >> 11) & 0x1
	bits10_5 := (u >> 5) & 0x3F
	bits4_1 := (u >> 1) & 0xF
	return (bit12 << 31) | (bits10_5 << 25) | (uint32(rs2) << 20) | (uint32(rs1) << 15) |
		(funct3 << 12) | (bits4_1 << 8) | (bit11 << 7) | opcode
}

func encodeU(opcode uint32, rd int, imm int32) uint32 {
	return (uint32(imm) & 0xFFFFF000) | (uint32(rd) << 7) | opcode
}

func encodeJ(opcode uint32, rd int, imm int32) uint32 {
	u := uint32(imm)
	bit20 := (u >> 20) & 0x1
	bits19_12 := (u >> 12) & 0xFF
	bit11 := (u >> 11) & 0x1
	bits10_1 := (u >> 1) & 0x3FF
	return (bit20 << 31) | (bits10_1 << 21) | (bit11 << 20) | (bits19_12 << 12) | (uint32(rd) << 7) | opcode
}

func encodeADDI(rd, rs1 int, imm int32) uint32 {
	return encodeI(OpcodeOpImm, Funct3ADD_SUB, rd, rs1, imm)
}

func encodeECALL() uint32 {
	return encodeI(OpcodeSYSTEM, 0, 0, 0, SystemImmECALL)
}

func encodeEBREAK() uint32 {
	return encodeI(OpcodeSYSTEM, 0, 0, 0, SystemImmEBREAK)
}
