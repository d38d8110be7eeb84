package hart

import (
	"errors"
	"testing"
)

func TestDecodeADDI(t *testing.T) {
	word := encodeADDI(5, 0, 42)
	inst, err := Decode(word)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := Instruction{Op: OpADDI, Rd: 5, Rs1: 0, Imm: 42}
	if inst != want {
		t.Errorf("got %+v, want %+v", inst, want)
	}
}

func TestDecodeADDINegativeImmediate(t *testing.T) {
	word := encodeADDI(5, 0, -1)
	inst, err := Decode(word)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if inst.Imm != -1 {
		t.Errorf("imm = %d, want -1", inst.Imm)
	}
}

func TestDecodeIsPure(t *testing.T) {
	word := encodeADDI(5, 3, 100)
	a, err := Decode(word)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	b, err := Decode(word)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if a != b {
		t.Errorf("Decode is not pure: %+v != %+v", a, b)
	}
}

func TestDecodeRFormat(t *testing.T) {
	cases := []struct {
		name    string
		funct3  uint32
		funct7  uint32
		wantOp  Op
	}{
		{"ADD", Funct3ADD_SUB, Funct7Base, OpADD},
		{"SUB", Funct3ADD_SUB, Funct7Alt, OpSUB},
		{"SLL", Funct3SLL, Funct7Base, OpSLL},
		{"SLT", Funct3SLT, Funct7Base, OpSLT},
		{"SLTU", Funct3SLTU, Funct7Base, OpSLTU},
		{"XOR", Funct3XOR, Funct7Base, OpXOR},
		{"SRL", Funct3SR, Funct7Base, OpSRL},
		{"SRA", Funct3SR, Funct7Alt, OpSRA},
		{"OR", Funct3OR, Funct7Base, OpOR},
		{"AND", Funct3AND, Funct7Base, OpAND},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			word := encodeR(OpcodeOp, c.funct3, c.funct7, 1, 2, 3)
			inst, err := Decode(word)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if inst.Op != c.wantOp || inst.Rd != 1 || inst.Rs1 != 2 || inst.Rs2 != 3 {
				t.Errorf("got %+v, want op=%v rd=1 rs1=2 rs2=3", inst, c.wantOp)
			}
		})
	}
}

func TestDecodeShiftImmediateRejectsNonZeroUpperBits(t *testing.T) {
	// SLLI with funct7 bits set to something other than 0 is illegal.
	word := encodeShiftImm(OpcodeOpImm, Funct3SLL, Funct7Alt, 1, 2, 5)
	_, err := Decode(word)
	if !errors.Is(err, ErrIllegalInstruction) {
		t.Fatalf("expected ErrIllegalInstruction, got %v", err)
	}
}

func TestDecodeSLLIValid(t *testing.T) {
	word := encodeShiftImm(OpcodeOpImm, Funct3SLL, Funct7Base, 1, 2, 7)
	inst, err := Decode(word)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if inst.Op != OpSLLI || inst.Imm != 7 {
		t.Errorf("got %+v, want SLLI shamt=7", inst)
	}
}

func TestDecodeBFormat(t *testing.T) {
	word := encodeB(OpcodeBRANCH, Funct3BEQ, 1, 2, 16)
	inst, err := Decode(word)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if inst.Op != OpBEQ || inst.Rs1 != 1 || inst.Rs2 != 2 || inst.Imm != 16 {
		t.Errorf("got %+v, want BEQ rs1=1 rs2=2 imm=16", inst)
	}
}

func TestDecodeBFormatNegativeOffset(t *testing.T) {
	word := encodeB(OpcodeBRANCH, Funct3BNE, 1, 2, -16)
	inst, err := Decode(word)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if inst.Imm != -16 {
		t.Errorf("imm = %d, want -16", inst.Imm)
	}
}

func TestDecodeSFormat(t *testing.T) {
	word := encodeS(OpcodeSTORE, Funct3SW, 1, 2, -4)
	inst, err := Decode(word)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if inst.Op != OpSW || inst.Rs1 != 1 || inst.Rs2 != 2 || inst.Imm != -4 {
		t.Errorf("got %+v, want SW rs1=1 rs2=2 imm=-4", inst)
	}
}

func TestDecodeUFormat(t *testing.T) {
	word := encodeU(OpcodeLUI, 5, 0x12345000)
	inst, err := Decode(word)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if inst.Op != OpLUI || inst.Rd != 5 || inst.Imm != 0x12345000 {
		t.Errorf("got %+v, want LUI rd=5 imm=0x12345000", inst)
	}
}

func TestDecodeJFormat(t *testing.T) {
	word := encodeJ(OpcodeJAL, 1, 1048)
	inst, err := Decode(word)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if inst.Op != OpJAL || inst.Rd != 1 || inst.Imm != 1048 {
		t.Errorf("got %+v, want JAL rd=1 imm=1048", inst)
	}
}

func TestDecodeJFormatNegativeOffset(t *testing.T) {
	word := encodeJ(OpcodeJAL, 0, -2048)
	inst, err := Decode(word)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if inst.Imm != -2048 {
		t.Errorf("imm = %d, want -2048", inst.Imm)
	}
}

func TestDecodeUnrecognizedOpcode(t *testing.T) {
	_, err := Decode(0b1111111) // reserved opcode, all other bits 0
	if !errors.Is(err, ErrIllegalInstruction) {
		t.Fatalf("expected ErrIllegalInstruction, got %v", err)
	}
}

func TestDecodeECALLEBREAK(t *testing.T) {
	inst, err := Decode(encodeECALL())
	if err != nil || inst.Op != OpECALL {
		t.Fatalf("ecall decode = %+v, %v", inst, err)
	}
	inst, err = Decode(encodeEBREAK())
	if err != nil || inst.Op != OpEBREAK {
		t.Fatalf("ebreak decode = %+v, %v", inst, err)
	}
}
