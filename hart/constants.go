package hart

// ============================================================================
// RV32I architecture constants
// ============================================================================
// These values are defined by the RISC-V base integer ISA and should not be
// modified independently of the spec this emulator implements.

const (
	// InstructionSize is the width of every RV32I instruction word, in bytes.
	InstructionSize = 4

	// RegisterCount is the number of architectural integer registers, x0-x31.
	RegisterCount = 32

	// DefaultMemorySize is the default physical memory size when a Hart is
	// constructed without an explicit override: the image plus stack margin.
	DefaultMemorySize = 1 << 20 // 1 MiB

	// ShiftAmountMask isolates the low 5 bits of a shift amount; RV32I shifts
	// only ever use 5 bits (0-31) regardless of the width of the operand they
	// came from.
	ShiftAmountMask = 0x1F
)

// The primary 7-bit opcode field (inst[6:0]) for every RV32I instruction
// class this emulator recognizes.
const (
	OpcodeLOAD     = 0b0000011
	OpcodeMiscMem  = 0b0001111 // FENCE
	OpcodeOpImm    = 0b0010011 // register-immediate ALU
	OpcodeAUIPC    = 0b0010111
	OpcodeSTORE    = 0b0100011
	OpcodeOp       = 0b0110011 // register-register ALU
	OpcodeLUI      = 0b0110111
	OpcodeBRANCH   = 0b1100011
	OpcodeJALR     = 0b1100111
	OpcodeJAL      = 0b1101111
	OpcodeSYSTEM   = 0b1110011
)

// funct3 values distinguishing OP-IMM / OP instructions.
const (
	Funct3ADD_SUB = 0b000
	Funct3SLL     = 0b001
	Funct3SLT     = 0b010
	Funct3SLTU    = 0b011
	Funct3XOR     = 0b100
	Funct3SR      = 0b101 // SRL/SRA, distinguished by funct7
	Funct3OR      = 0b110
	Funct3AND     = 0b111
)

// funct3 values distinguishing BRANCH instructions.
const (
	Funct3BEQ  = 0b000
	Funct3BNE  = 0b001
	Funct3BLT  = 0b100
	Funct3BGE  = 0b101
	Funct3BLTU = 0b110
	Funct3BGEU = 0b111
)

// funct3 values distinguishing LOAD instructions.
const (
	Funct3LB  = 0b000
	Funct3LH  = 0b001
	Funct3LW  = 0b010
	Funct3LBU = 0b100
	Funct3LHU = 0b101
)

// funct3 values distinguishing STORE instructions.
const (
	Funct3SB = 0b000
	Funct3SH = 0b001
	Funct3SW = 0b010
)

// funct7 values distinguishing ADD/SUB and SRL/SRA.
const (
	Funct7Base = 0b0000000
	Funct7Alt  = 0b0100000 // SUB, SRA
)

// SYSTEM instructions are distinguished by the full 12-bit immediate field
// when funct3 == 0.
const (
	SystemImmECALL  = 0x000
	SystemImmEBREAK = 0x001
)

// ECALLExitSyscall is the only syscall number this emulator recognizes for
// `a7` (x17): a normal program exit, with the exit code taken from `a0`.
const ECALLExitSyscall = 93

// Register aliases used by the ABI convention this emulator assumes for the
// single supported syscall.
const (
	RegZero = 0
	RegRA   = 1
	RegSP   = 2
	RegA0   = 10
	RegA7   = 17
)
