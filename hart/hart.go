// Package hart implements the RV32I fetch-decode-execute core: the
// register file and program counter (this file), the instruction decoder
// (decode.go), and per-opcode semantics split across alu.go, branch.go,
// loadstore.go and syscall.go. Memory is the flat byte-addressed array the
// Hart executes against (memory.go).
package hart

import (
	"fmt"
)

// Hart is the complete CPU state machine: the register file, the program
// counter, and a reference to the Memory it executes against. A Hart
// exclusively owns its register file and Memory for the duration of a run;
// nothing outside Step/Run mutates either.
type Hart struct {
	registers [RegisterCount]uint32
	pc        uint32
	mem       *Memory

	// trace, when non-nil, receives one block per step: the pre-execution
	// PC, the raw instruction word, a decoded mnemonic, and the register
	// file. Debug mode enables this; tests can inject a Trace over a
	// bytes.Buffer to capture it without touching a live terminal.
	trace *Trace
}

// NewHart constructs a Hart over mem with PC and every register at 0, the
// reset state spec.md requires.
func NewHart(mem *Memory) *Hart {
	return &Hart{mem: mem}
}

// SetTrace installs t as the per-step debug dump sink. Passing nil disables
// tracing (the default).
func (h *Hart) SetTrace(t *Trace) {
	h.trace = t
}

// Memory returns the Memory this Hart executes against.
func (h *Hart) Memory() *Memory {
	return h.mem
}

// PC returns the current program counter.
func (h *Hart) PC() uint32 {
	return h.pc
}

// GetRegister returns the current value of register x[idx]. x0 always
// reads as 0.
func (h *Hart) GetRegister(idx int) uint32 {
	if idx == RegZero {
		return 0
	}
	return h.registers[idx]
}

// SetRegister centralizes the x0 rule: writes to x0 are silently discarded,
// every other register holds the last value written. Every execute arm that
// targets rd must route through this, never through the backing array
// directly.
func (h *Hart) SetRegister(idx int, value uint32) {
	if idx == RegZero {
		return
	}
	h.registers[idx] = value
}

// Registers returns a snapshot copy of the full register file.
func (h *Hart) Registers() [RegisterCount]uint32 {
	return h.registers
}

// fetch reads the 32-bit word at the current PC. An out-of-range PC is
// reported as TrapFetchOutOfRange, distinct from a load/store hitting
// TrapMemoryOutOfRange mid-instruction.
func (h *Hart) fetch() (uint32, error) {
	word, err := h.mem.Load32(h.pc)
	if err != nil {
		return 0, trap(TrapFetchOutOfRange, err)
	}
	return word, nil
}

// Step executes exactly one instruction: fetch, zero-instruction check,
// decode, execute, and (for debug mode) a trace record. It returns a
// non-nil *State exactly when this step reached a terminal condition;
// otherwise the Hart is left ready for the next Step.
func (h *Hart) Step() (*State, error) {
	startPC := h.pc

	word, err := h.fetch()
	if err != nil {
		return h.trapState(err), nil
	}

	if word == 0 {
		return &State{
			Reason:         Terminated,
			FinalRegisters: h.registers,
			FinalPC:        h.pc,
		}, nil
	}

	inst, err := Decode(word)
	if err != nil {
		return h.trapState(trap(TrapIllegalInstruction, err)), nil
	}

	state, err := h.execute(inst)
	if err != nil {
		return h.trapState(err), nil
	}

	if h.trace != nil {
		h.trace.recordStep(startPC, word, Disassemble(inst), h.registers)
	}

	if state != nil {
		return state, nil
	}

	return nil, nil
}

// Run drives Step to completion and returns the terminal state.
func (h *Hart) Run() *State {
	for {
		state, err := h.Step()
		if err != nil {
			// execute/decode/fetch never return a bare error; Step always
			// folds it into a *State. This branch exists only so Run's
			// contract is a plain State, no error, for callers.
			panic(fmt.Sprintf("hart: unreachable: Step returned bare error %v", err))
		}
		if state != nil {
			return state
		}
	}
}

func (h *Hart) trapState(err error) *State {
	te, ok := AsTrap(err)
	kind := TrapIllegalInstruction
	if ok {
		kind = te.Kind
	}
	return &State{
		Reason:         Trapped,
		Trap:           kind,
		FinalRegisters: h.registers,
		FinalPC:        h.pc,
	}
}

// Trace returns the Hart's currently installed trace sink, or nil.
func (h *Hart) Trace() *Trace {
	return h.trace
}

// execute dispatches a decoded Instruction to its opcode-family handler. It
// returns a non-nil *State only for ecall/ebreak, the two ways an
// instruction itself can end the run; every other instruction returns
// (nil, nil) on success, or (nil, err) for a load/store/branch/jump trap.
func (h *Hart) execute(inst Instruction) (*State, error) {
	switch {
	case isALUImmOp(inst.Op):
		return nil, h.executeALUImm(inst)
	case isALUOp(inst.Op):
		return nil, h.executeALU(inst)
	case inst.Op == OpLUI || inst.Op == OpAUIPC:
		return nil, h.executeUpperImm(inst)
	case inst.Op == OpJAL || inst.Op == OpJALR:
		return nil, h.executeJump(inst)
	case isBranchOp(inst.Op):
		return nil, h.executeBranch(inst)
	case isLoadOp(inst.Op):
		return nil, h.executeLoad(inst)
	case isStoreOp(inst.Op):
		return nil, h.executeStore(inst)
	case inst.Op == OpECALL:
		return h.executeECALL()
	case inst.Op == OpEBREAK:
		return h.executeEBREAK(), nil
	case inst.Op == OpFENCE:
		h.pc += InstructionSize
		return nil, nil
	default:
		return nil, trap(TrapIllegalInstruction, fmt.Errorf("hart: unhandled op %d", inst.Op))
	}
}

// checkAlignment reports a MisalignedInstruction trap if target has bit 1
// set, per the 4-byte alignment RV32I requires in the absence of the C
// extension.
func checkAlignment(target uint32) error {
	if target&0x2 != 0 {
		return trap(TrapMisalignedInstruction, fmt.Errorf("hart: misaligned target 0x%08x", target))
	}
	return nil
}
