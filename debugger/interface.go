package debugger

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/PhilippRados/ruscv/hart"
)

// RunCLI runs the command-line debugger interface
func RunCLI(dbg *Debugger) error {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("(ruscv-dbg) ")

		if !scanner.Scan() {
			break
		}

		cmdLine := strings.TrimSpace(scanner.Text())

		if cmdLine == "quit" || cmdLine == "q" || cmdLine == "exit" {
			fmt.Println("Exiting debugger...")
			break
		}

		if err := dbg.ExecuteCommand(cmdLine); err != nil {
			fmt.Printf("Error: %v\n", err)
		}

		output := dbg.GetOutput()
		if output != "" {
			fmt.Print(output)
		}

		if dbg.Running {
			runUntilStop(dbg)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("input error: %w", err)
	}

	return nil
}

// runUntilStop drives the Hart one Step at a time until a breakpoint,
// single step, or terminal state stops it.
func runUntilStop(dbg *Debugger) {
	for dbg.Running {
		if shouldBreak, reason := dbg.ShouldBreak(); shouldBreak {
			dbg.Running = false
			fmt.Printf("Stopped: %s at PC=0x%08X\n", reason, dbg.Hart.PC())
			break
		}

		state, err := dbg.Hart.Step()
		if err != nil {
			// Step folds every failure into a *State; this branch only
			// satisfies the two-return signature.
			fmt.Printf("Runtime error: %v\n", err)
			dbg.Running = false
			break
		}

		if state != nil {
			dbg.Running = false
			switch state.Reason {
			case hart.ExitedNormally:
				fmt.Printf("Program exited with code %d\n", state.ExitCode)
			case hart.Trapped:
				fmt.Printf("Trapped: %s at PC=0x%08X\n", state.Trap, state.FinalPC)
			case hart.Terminated:
				fmt.Printf("Terminated at PC=0x%08X\n", state.FinalPC)
			}
			break
		}

		if shouldBreak, reason := dbg.ShouldBreak(); shouldBreak {
			dbg.Running = false
			fmt.Printf("Stopped: %s at PC=0x%08X\n", reason, dbg.Hart.PC())
			break
		}
	}
}

// RunTUI runs the TUI (Text User Interface) debugger
func RunTUI(dbg *Debugger) error {
	tui := NewTUI(dbg)
	return tui.Run()
}
