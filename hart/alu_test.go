package hart

import "testing"

func newTestHart() *Hart {
	return NewHart(NewMemory(4096))
}

func TestExecuteADDIWraps(t *testing.T) {
	h := newTestHart()
	h.SetRegister(1, 0xFFFFFFFF)
	if err := h.executeALUImm(Instruction{Op: OpADDI, Rd: 2, Rs1: 1, Imm: 1}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if h.GetRegister(2) != 0 {
		t.Errorf("ADD(0xFFFFFFFF, 1) = 0x%x, want 0", h.GetRegister(2))
	}
}

func TestExecuteSLTSignedVsSLTUUnsigned(t *testing.T) {
	h := newTestHart()
	h.SetRegister(1, 0xFFFFFFFF) // -1
	h.SetRegister(2, 1)

	if err := h.executeALU(Instruction{Op: OpSLT, Rd: 3, Rs1: 1, Rs2: 2}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if h.GetRegister(3) != 1 {
		t.Errorf("SLT(-1, 1) = %d, want 1", h.GetRegister(3))
	}

	if err := h.executeALU(Instruction{Op: OpSLTU, Rd: 4, Rs1: 1, Rs2: 2}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if h.GetRegister(4) != 0 {
		t.Errorf("SLTU(-1, 1) = %d, want 0", h.GetRegister(4))
	}
}

func TestExecuteShiftAmountMasking(t *testing.T) {
	h := newTestHart()
	h.SetRegister(1, 1)
	h.SetRegister(2, 32) // masked to 0

	if err := h.executeALU(Instruction{Op: OpSLL, Rd: 3, Rs1: 1, Rs2: 2}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if h.GetRegister(3) != 1 {
		t.Errorf("SLL(1, 32) = %d, want 1 (shift amount masked to 0)", h.GetRegister(3))
	}
}

func TestExecuteSRAIIsArithmetic(t *testing.T) {
	h := newTestHart()
	h.SetRegister(1, 0x80000000) // INT32_MIN

	if err := h.executeALUImm(Instruction{Op: OpSRAI, Rd: 2, Rs1: 1, Imm: 4}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if h.GetRegister(2) != 0xF8000000 {
		t.Errorf("SRAI(INT32_MIN, 4) = 0x%x, want 0xF8000000", h.GetRegister(2))
	}
}

func TestExecuteSRLIIsLogical(t *testing.T) {
	h := newTestHart()
	h.SetRegister(1, 0x80000000)

	if err := h.executeALUImm(Instruction{Op: OpSRLI, Rd: 2, Rs1: 1, Imm: 4}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if h.GetRegister(2) != 0x08000000 {
		t.Errorf("SRLI(0x80000000, 4) = 0x%x, want 0x08000000", h.GetRegister(2))
	}
}

func TestExecuteWriteToX0Discarded(t *testing.T) {
	h := newTestHart()
	h.SetRegister(1, 99)

	if err := h.executeALUImm(Instruction{Op: OpADDI, Rd: RegZero, Rs1: 1, Imm: 1}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if h.GetRegister(0) != 0 {
		t.Errorf("x0 = %d, want 0", h.GetRegister(0))
	}
}

func TestExecuteLUIAndAUIPC(t *testing.T) {
	h := newTestHart()
	h.pc = 0x1000

	if err := h.executeUpperImm(Instruction{Op: OpLUI, Rd: 1, Imm: 0x12345000}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if h.GetRegister(1) != 0x12345000 {
		t.Errorf("LUI = 0x%x, want 0x12345000", h.GetRegister(1))
	}

	h.pc = 0x1000
	if err := h.executeUpperImm(Instruction{Op: OpAUIPC, Rd: 2, Imm: 0x1000}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if h.GetRegister(2) != 0x2000 {
		t.Errorf("AUIPC = 0x%x, want 0x2000", h.GetRegister(2))
	}
}
