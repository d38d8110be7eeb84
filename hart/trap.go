package hart

import "errors"

// TrapKind identifies why a run terminated abnormally. Every trap is fatal:
// none are recovered locally, and the driver stops the fetch-decode-execute
// loop the instant one is detected.
type TrapKind int

const (
	// TrapNone is the zero value; only meaningful as "no trap occurred".
	TrapNone TrapKind = iota

	// TrapIllegalInstruction is reported for an unrecognized opcode,
	// funct3, or funct7 combination, a reserved encoding, or a
	// shift-immediate with non-zero bits outside its 5-bit shift amount.
	TrapIllegalInstruction

	// TrapMemoryOutOfRange is reported for any load or store whose
	// effective address is outside [0, memory_size).
	TrapMemoryOutOfRange

	// TrapMisalignedInstruction is reported when the target of JAL, JALR,
	// or a taken branch has bit 1 set.
	TrapMisalignedInstruction

	// TrapUnsupportedSyscall is reported for an ecall with a7 != 93.
	TrapUnsupportedSyscall

	// TrapBreakpoint is reported for ebreak.
	TrapBreakpoint

	// TrapFetchOutOfRange is reported when the PC is outside Memory at
	// the start of a fetch.
	TrapFetchOutOfRange
)

func (k TrapKind) String() string {
	switch k {
	case TrapIllegalInstruction:
		return "IllegalInstruction"
	case TrapMemoryOutOfRange:
		return "MemoryOutOfRange"
	case TrapMisalignedInstruction:
		return "MisalignedInstruction"
	case TrapUnsupportedSyscall:
		return "UnsupportedSyscall"
	case TrapBreakpoint:
		return "Breakpoint"
	case TrapFetchOutOfRange:
		return "FetchOutOfRange"
	default:
		return "none"
	}
}

// Reason identifies how a run came to an end.
type Reason int

const (
	// Running means the Hart has not yet reached a terminal state.
	Running Reason = iota
	// ExitedNormally means a recognized exit ecall was executed.
	ExitedNormally
	// Trapped means execution hit one of the fatal trap conditions.
	Trapped
	// Terminated means the Hart fetched an all-zero instruction word,
	// the sentinel for running off the end of a loaded image.
	Terminated
)

func (r Reason) String() string {
	switch r {
	case Running:
		return "Running"
	case ExitedNormally:
		return "ExitedNormally"
	case Trapped:
		return "Trapped"
	case Terminated:
		return "Terminated"
	default:
		return "unknown"
	}
}

// State is the terminal state record produced once a Hart stops running:
// the exit code (meaningful only when Reason is ExitedNormally), the reason
// it stopped, the kind of trap (meaningful only when Reason is Trapped), and
// the final register file and PC.
type State struct {
	Reason         Reason
	ExitCode       int32
	Trap           TrapKind
	FinalRegisters [RegisterCount]uint32
	FinalPC        uint32
}

// TrapError pairs a TrapKind with the underlying error that produced it, so
// callers can both branch on the kind and log/wrap the detail.
type TrapError struct {
	Kind TrapKind
	Err  error
}

func (e *TrapError) Error() string {
	return e.Kind.String() + ": " + e.Err.Error()
}

func (e *TrapError) Unwrap() error {
	return e.Err
}

// AsTrap reports whether err is (or wraps) a *TrapError, and returns it.
func AsTrap(err error) (*TrapError, bool) {
	var te *TrapError
	ok := errors.As(err, &te)
	return te, ok
}

func trap(kind TrapKind, err error) error {
	return &TrapError{Kind: kind, Err: err}
}
