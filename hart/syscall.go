package hart

import "fmt"

// executeECALL implements the sole recognized syscall in scope: a7 == 93
// requests a normal exit with the exit code taken from a0, interpreted as
// signed 32-bit. Any other a7 value traps as TrapUnsupportedSyscall.
func (h *Hart) executeECALL() (*State, error) {
	a7 := h.GetRegister(RegA7)
	if a7 != ECALLExitSyscall {
		return nil, trap(TrapUnsupportedSyscall, fmt.Errorf("hart: ecall with a7=%d", a7))
	}

	return &State{
		Reason:         ExitedNormally,
		ExitCode:       AsSigned(h.GetRegister(RegA0)),
		FinalRegisters: h.registers,
		FinalPC:        h.pc,
	}, nil
}

// executeEBREAK implements ebreak as a trap that terminates the run, per
// this implementation's resolution of the open question the base spec
// leaves silent on.
func (h *Hart) executeEBREAK() *State {
	return &State{
		Reason:         Trapped,
		Trap:           TrapBreakpoint,
		FinalRegisters: h.registers,
		FinalPC:        h.pc,
	}
}
