package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/PhilippRados/ruscv/config"
	"github.com/PhilippRados/ruscv/debugger"
	"github.com/PhilippRados/ruscv/hart"
	"github.com/PhilippRados/ruscv/loader"
)

// Version information - can be overridden at build time with:
// go build -ldflags "-X main.Version=v1.2.3"
var (
	Version = "dev"     // Version number (set by git tag at build time)
	Commit  = "unknown" // Git commit hash
	Date    = "unknown" // Build date
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "Show version information")
		showHelp    = flag.Bool("help", false, "Show help information")
		debugMode   = flag.Bool("debug", false, "Start in debugger mode")
		tuiMode     = flag.Bool("tui", false, "Use TUI (Text User Interface) debugger")
		memSize     = flag.Uint("mem-size", 0, "Memory size in bytes (default: from config, "+
			"fmt-ed as 1 MiB unless overridden)")
		enableTrace = flag.Bool("trace", false, "Print a per-step register/mnemonic trace to stderr")
		traceFile   = flag.String("trace-file", "", "Trace output file (default: stderr)")
		traceFilter = flag.String("trace-filter", "", "Filter trace by registers (comma-separated, e.g., x0,x1,x10)")
		configPath  = flag.String("config", "", "Config file path (default: platform config dir)")
	)

	flag.Parse()

	if *showVersion {
		fmt.Printf("ruscv %s\n", Version)
		if Commit != "unknown" {
			fmt.Printf("Commit: %s\n", Commit)
		}
		if Date != "unknown" {
			fmt.Printf("Built: %s\n", Date)
		}
		os.Exit(0)
	}

	if *showHelp || flag.NArg() == 0 {
		printHelp()
		if flag.NArg() == 0 {
			os.Exit(1)
		}
		os.Exit(0)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	size := cfg.Execution.MemorySize
	if *memSize != 0 {
		size = uint32(*memSize)
	}

	imagePath := flag.Arg(0)
	if _, err := os.Stat(imagePath); os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Error: file not found: %s\n", imagePath)
		os.Exit(1)
	}

	h, err := loader.NewHartFromFile(imagePath, size)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading program: %v\n", err)
		os.Exit(1)
	}

	if trace, err := buildTrace(cfg, *enableTrace, *traceFile, *traceFilter); err != nil {
		fmt.Fprintf(os.Stderr, "Error configuring trace: %v\n", err)
		os.Exit(1)
	} else if trace != nil {
		h.SetTrace(trace)
	}

	if *debugMode || *tuiMode {
		dbg := debugger.NewDebugger(h, imagePath, size, cfg.Debugger.HistorySize)

		if *tuiMode {
			if err := debugger.RunTUI(dbg); err != nil {
				fmt.Fprintf(os.Stderr, "TUI error: %v\n", err)
				os.Exit(1)
			}
			return
		}

		fmt.Println("ruscv Debugger - Type 'help' for commands")
		fmt.Printf("Program loaded: %s\n", imagePath)
		fmt.Println()

		if err := debugger.RunCLI(dbg); err != nil {
			fmt.Fprintf(os.Stderr, "Debugger error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	state, err := runBounded(h, cfg.Execution.MaxInstructions)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	switch state.Reason {
	case hart.ExitedNormally:
		fmt.Fprintf(os.Stderr, "Emulated program finished at exit syscall with exit-code: %d\n", state.ExitCode)
		os.Exit(int(state.ExitCode))
	case hart.Trapped:
		fmt.Fprintf(os.Stderr, "Emulated program trapped: %s at PC=0x%08X\n", state.Trap, state.FinalPC)
		os.Exit(1)
	case hart.Terminated:
		fmt.Fprintf(os.Stderr, "Emulated program terminated on a zero instruction word at PC=0x%08X\n", state.FinalPC)
		os.Exit(1)
	}
}

// runBounded drives h.Step to completion, honoring the caller-imposed
// instruction-count ceiling spec.md §5 leaves external to the core: a
// runaway program (e.g. an infinite loop with no exit ecall) is the CLI's
// concern, not the Hart's. limit == 0 means unbounded, matching
// config.DefaultConfig's MaxInstructions.
func runBounded(h *hart.Hart, limit uint64) (*hart.State, error) {
	var steps uint64
	for {
		state, err := h.Step()
		if err != nil {
			return nil, fmt.Errorf("hart: unexpected error from Step: %w", err)
		}
		if state != nil {
			return state, nil
		}
		steps++
		if limit != 0 && steps >= limit {
			return nil, fmt.Errorf("exceeded max instruction count (%d) at PC=0x%08X", limit, h.PC())
		}
	}
}

// loadConfig loads the config from path, or the platform default if path is empty.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFrom(path)
}

// buildTrace wires -trace/-trace-file/-trace-filter (or their config-file
// defaults) into a *hart.Trace, or returns nil if tracing is disabled.
func buildTrace(cfg *config.Config, enableFlag bool, fileFlag, filterFlag string) (*hart.Trace, error) {
	enabled := enableFlag || cfg.Execution.EnableTrace
	if !enabled {
		return nil, nil
	}

	var w *os.File = os.Stderr
	path := fileFlag
	if path == "" {
		path = cfg.Trace.OutputFile
	}
	if path != "" && path != "-" {
		f, err := os.Create(path) // #nosec G304 -- user-specified trace output path
		if err != nil {
			return nil, fmt.Errorf("failed to create trace file %s: %w", path, err)
		}
		w = f
	}

	trace := hart.NewTrace(w)

	filter := filterFlag
	if filter == "" {
		filter = cfg.Trace.FilterRegs
	}
	if filter != "" {
		names := strings.Split(filter, ",")
		indices := make([]int, 0, len(names))
		for _, n := range names {
			n = strings.TrimSpace(n)
			if !strings.HasPrefix(n, "x") {
				continue
			}
			var idx int
			if _, err := fmt.Sscanf(n, "x%d", &idx); err == nil && idx >= 0 && idx < hart.RegisterCount {
				indices = append(indices, idx)
			}
		}
		trace.FilterRegisters = indices
	}

	return trace, nil
}

func printHelp() {
	fmt.Printf(`ruscv %s - a RV32I instruction set emulator

Usage: ruscv [options] <image-file>

Options:
  -help              Show this help message
  -version           Show version information
  -debug             Start in debugger mode (CLI)
  -tui               Start in TUI debugger mode
  -mem-size N        Memory size in bytes (default: from config, 1 MiB)
  -trace             Print a per-step trace to stderr (or -trace-file)
  -trace-file FILE   Trace output file (default: stderr)
  -trace-filter REGS Filter trace by registers (e.g., x0,x1,x10)
  -config FILE       Config file path (default: platform config dir)

<image-file> is a raw, headerless RV32I program image: byte 0 of the file
is instruction byte 0, loaded at address 0, little-endian, exactly as
produced by stripping the ELF header and relocations from a program linked
to run with .text at address 0.

Examples:
  ruscv program.bin
  ruscv -debug program.bin
  ruscv -tui program.bin
  ruscv -trace -trace-filter x0,x10 program.bin

Debugger Commands (when in -debug mode):
  run, r             Load and start program execution
  continue, c        Continue execution
  step, s            Execute single instruction
  next, n            Step over JAL/JALR calls
  break ADDR         Set breakpoint at address
  info registers     Show all registers
  print REG          Print a register's value
  help               Show debugger help
`, Version)
}
