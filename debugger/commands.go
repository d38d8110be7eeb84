package debugger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PhilippRados/ruscv/hart"
	"github.com/PhilippRados/ruscv/loader"
)

// Command handler implementations

// cmdRun starts or restarts program execution
func (d *Debugger) cmdRun(args []string) error {
	if err := d.reloadHart(); err != nil {
		return err
	}
	d.Running = true
	d.StepMode = StepNone

	d.Println("Starting program execution...")
	return nil
}

// cmdContinue continues execution from current point
func (d *Debugger) cmdContinue(args []string) error {
	d.Running = true
	d.StepMode = StepNone

	d.Println("Continuing...")
	return nil
}

// cmdStep executes a single instruction
func (d *Debugger) cmdStep(args []string) error {
	d.StepMode = StepSingle
	d.Running = true
	return nil
}

// cmdNext steps over function calls (step to next instruction at same level)
func (d *Debugger) cmdNext(args []string) error {
	d.SetStepOver()
	return nil
}

// cmdFinish steps out of current function
func (d *Debugger) cmdFinish(args []string) error {
	d.SetStepOut()
	return nil
}

// cmdBreak sets a breakpoint
func (d *Debugger) cmdBreak(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: break <address> [if <condition>]")
	}

	address, err := d.ResolveAddress(args[0])
	if err != nil {
		return err
	}

	var condition string
	if len(args) > 1 && strings.ToLower(args[1]) == "if" {
		condition = strings.Join(args[2:], " ")
	}

	bp, err := d.Breakpoints.AddBreakpoint(address, false, condition)
	if err != nil {
		return err
	}

	if condition != "" {
		d.Printf("Breakpoint %d at 0x%08X (condition: %s)\n", bp.ID, address, condition)
	} else {
		d.Printf("Breakpoint %d at 0x%08X\n", bp.ID, address)
	}

	return nil
}

// cmdTBreak sets a temporary breakpoint (auto-delete after hit)
func (d *Debugger) cmdTBreak(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: tbreak <address>")
	}

	address, err := d.ResolveAddress(args[0])
	if err != nil {
		return err
	}

	bp, err := d.Breakpoints.AddBreakpoint(address, true, "")
	if err != nil {
		return err
	}
	d.Printf("Temporary breakpoint %d at 0x%08X\n", bp.ID, address)

	return nil
}

// cmdDelete deletes breakpoint(s)
func (d *Debugger) cmdDelete(args []string) error {
	if len(args) == 0 {
		d.Breakpoints.Clear()
		d.Println("All breakpoints deleted")
		return nil
	}

	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid breakpoint ID: %s", args[0])
	}

	if err := d.Breakpoints.DeleteBreakpoint(id); err != nil {
		return err
	}

	d.Printf("Breakpoint %d deleted\n", id)
	return nil
}

// cmdEnable enables breakpoint(s)
func (d *Debugger) cmdEnable(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: enable <breakpoint-id>")
	}

	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid breakpoint ID: %s", args[0])
	}

	if err := d.Breakpoints.EnableBreakpoint(id); err != nil {
		return err
	}

	d.Printf("Breakpoint %d enabled\n", id)
	return nil
}

// cmdDisable disables breakpoint(s)
func (d *Debugger) cmdDisable(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: disable <breakpoint-id>")
	}

	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid breakpoint ID: %s", args[0])
	}

	if err := d.Breakpoints.DisableBreakpoint(id); err != nil {
		return err
	}

	d.Printf("Breakpoint %d disabled\n", id)
	return nil
}

// cmdPrint prints a register's value
func (d *Debugger) cmdPrint(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: print <register>")
	}

	idx, err := resolveRegister(args[0])
	if err != nil {
		return err
	}

	value := d.Hart.GetRegister(idx)
	d.Printf("%s = 0x%08X (%d)\n", regName(idx), value, int32(value))
	return nil
}

// cmdExamine examines memory at an address
func (d *Debugger) cmdExamine(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: x[/nfu] <address>\n  n: count, f: format (x/d/u/o/t), u: unit size (b/h/w)")
	}

	count := 1
	format := 'x'
	unit := 'w'
	addrArg := args[0]

	if strings.HasPrefix(args[0], "/") {
		formatStr := args[0][1:]
		if len(args) < 2 {
			return fmt.Errorf("missing address")
		}
		addrArg = args[1]

		i := 0
		for i < len(formatStr) && formatStr[i] >= '0' && formatStr[i] <= '9' {
			i++
		}
		if i > 0 {
			if n, err := strconv.Atoi(formatStr[:i]); err == nil {
				count = n
			}
			formatStr = formatStr[i:]
		}

		if len(formatStr) > 0 {
			format = rune(formatStr[0])
			formatStr = formatStr[1:]
		}
		if len(formatStr) > 0 {
			unit = rune(formatStr[0])
		}
	}

	address, err := d.ResolveAddress(addrArg)
	if err != nil {
		return err
	}

	d.Printf("0x%08X:", address)
	mem := d.Hart.Memory()
	for i := 0; i < count; i++ {
		var value uint32
		var readErr error

		switch unit {
		case 'b':
			var v uint8
			v, readErr = mem.Load8(address)
			value = uint32(v)
			address++
		case 'h':
			var v uint16
			v, readErr = mem.Load16(address)
			value = uint32(v)
			address += 2
		default:
			value, readErr = mem.Load32(address)
			address += 4
		}

		if readErr != nil {
			return readErr
		}

		switch format {
		case 'x':
			d.Printf(" 0x%08X", value)
		case 'd':
			d.Printf(" %d", int32(value))
		case 'u':
			d.Printf(" %d", value)
		case 'o':
			d.Printf(" %o", value)
		case 't':
			d.Printf(" %b", value)
		default:
			d.Printf(" 0x%08X", value)
		}
	}
	d.Println()

	return nil
}

// cmdInfo displays information about program state
func (d *Debugger) cmdInfo(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: info <registers|breakpoints>")
	}

	switch strings.ToLower(args[0]) {
	case "registers", "reg", "r":
		return d.showRegisters()
	case "breakpoints", "break", "b":
		return d.showBreakpoints()
	default:
		return fmt.Errorf("unknown info command: %s", args[0])
	}
}

// showRegisters displays all register values, 8 per row
func (d *Debugger) showRegisters() error {
	d.Println("Registers:")
	regs := d.Hart.Registers()
	for row := 0; row < hart.RegisterCount; row += RegisterGroupSize {
		for i := row; i < row+RegisterGroupSize && i < hart.RegisterCount; i++ {
			d.Printf("  %-4s = 0x%08X", regName(i), regs[i])
		}
		d.Println()
	}
	d.Printf("  pc   = 0x%08X\n", d.Hart.PC())

	return nil
}

// showBreakpoints displays all breakpoints
func (d *Debugger) showBreakpoints() error {
	breakpoints := d.Breakpoints.GetAllBreakpoints()
	if len(breakpoints) == 0 {
		d.Println("No breakpoints")
		return nil
	}

	d.Println("Breakpoints:")
	for _, bp := range breakpoints {
		status := "enabled"
		if !bp.Enabled {
			status = "disabled"
		}

		temp := ""
		if bp.Temporary {
			temp = " (temporary)"
		}

		condition := ""
		if bp.Condition != "" {
			condition = fmt.Sprintf(" if %s", bp.Condition)
		}

		d.Printf("  %d: 0x%08X %s%s%s (hit %d times)\n",
			bp.ID, bp.Address, status, temp, condition, bp.HitCount)
	}

	return nil
}

// cmdSet modifies a register value
func (d *Debugger) cmdSet(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: set <register> = <value>")
	}

	if args[1] != "=" {
		return fmt.Errorf("usage: set <register> = <value>")
	}

	idx, err := resolveRegister(args[0])
	if err != nil {
		return err
	}

	value, err := parseImmediate(args[2])
	if err != nil {
		return err
	}

	d.Hart.SetRegister(idx, value)
	d.Printf("Register %s set to 0x%08X\n", regName(idx), value)

	return nil
}

// cmdLoad loads a new program image and resets the hart around it
func (d *Debugger) cmdLoad(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: load <filename>")
	}

	d.ImagePath = args[0]
	if err := d.reloadHart(); err != nil {
		return err
	}

	d.Printf("Loaded %s\n", args[0])
	return nil
}

// cmdReset reloads the current image and rewinds the hart to PC 0
func (d *Debugger) cmdReset(args []string) error {
	if err := d.reloadHart(); err != nil {
		return err
	}
	d.Println("Hart reset")
	return nil
}

func (d *Debugger) reloadHart() error {
	if d.ImagePath == "" {
		return fmt.Errorf("no image loaded")
	}

	h, err := loader.NewHartFromFile(d.ImagePath, d.MemSize)
	if err != nil {
		return fmt.Errorf("reload: %w", err)
	}
	h.SetTrace(d.Hart.Trace())
	d.Hart = h
	return nil
}

// cmdHelp displays help information
func (d *Debugger) cmdHelp(args []string) error {
	if len(args) > 0 {
		return d.showCommandHelp(args[0])
	}

	d.Println("ruscv Debugger Commands:")
	d.Println()
	d.Println("Execution Control:")
	d.Println("  run (r)           - Load and start program execution")
	d.Println("  continue (c)      - Continue execution")
	d.Println("  step (s, si)      - Execute single instruction")
	d.Println("  next (n)          - Step over JAL/JALR calls")
	d.Println("  finish (fin)      - Step out of current function")
	d.Println()
	d.Println("Breakpoints:")
	d.Println("  break (b) <addr>  - Set breakpoint")
	d.Println("  tbreak (tb) <addr>- Set temporary breakpoint")
	d.Println("  delete (d) [id]   - Delete breakpoint(s)")
	d.Println("  enable <id>       - Enable breakpoint")
	d.Println("  disable <id>      - Disable breakpoint")
	d.Println()
	d.Println("Inspection:")
	d.Println("  print (p) <reg>   - Print register value")
	d.Println("  x[/nfu] <addr>    - Examine memory")
	d.Println("  info (i) <what>   - Show information (registers|breakpoints)")
	d.Println()
	d.Println("Modification:")
	d.Println("  set <reg> = <val> - Modify register")
	d.Println()
	d.Println("Control:")
	d.Println("  load <file>       - Load a new program image")
	d.Println("  reset             - Reload the current image")
	d.Println("  help (h, ?)       - Show this help")
	d.Println()
	d.Println("Type 'help <command>' for detailed help on a specific command.")

	return nil
}

// showCommandHelp shows detailed help for a specific command
func (d *Debugger) showCommandHelp(cmd string) error {
	helpText := map[string]string{
		"break": "break <address> [if <condition>]\n  Set a breakpoint at the specified address.\n  Optional condition is stored but not evaluated without a full expression engine.",
		"step":  "step\n  Execute a single instruction.",
		"next":  "next\n  Step over JAL/JALR calls (execute until the instruction after the call returns).",
		"print": "print <register>\n  Print a register's value. Accepts xN or ABI names (ra, sp, a0, t0, ...).",
		"x":     "x[/nfu] <address>\n  Examine memory.\n  n: count, f: format (x/d/u/o/t), u: unit (b/h/w)",
		"info":  "info <registers|breakpoints>\n  Display information about program state.",
	}

	if help, exists := helpText[cmd]; exists {
		d.Println(help)
		return nil
	}

	return fmt.Errorf("no help available for command: %s", cmd)
}

func parseImmediate(s string) (uint32, error) {
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
		base = 16
	}
	v, err := strconv.ParseUint(s, base, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid value: %s", s)
	}
	return uint32(v), nil
}

var abiRegisterNames = [hart.RegisterCount]string{
	"zero", "ra", "sp", "gp", "tp", "t0", "t1", "t2",
	"s0", "s1", "a0", "a1", "a2", "a3", "a4", "a5",
	"a6", "a7", "s2", "s3", "s4", "s5", "s6", "s7",
	"s8", "s9", "s10", "s11", "t3", "t4", "t5", "t6",
}

// regName returns the xN name of register idx joined with its ABI name,
// e.g. "x10/a0" for x10.
func regName(idx int) string {
	if idx < 0 || idx >= hart.RegisterCount {
		return fmt.Sprintf("x%d", idx)
	}
	return fmt.Sprintf("x%d/%s", idx, abiRegisterNames[idx])
}

// resolveRegister accepts "x<N>" or an ABI register name and returns its index.
func resolveRegister(s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	if strings.HasPrefix(s, "x") {
		if n, err := strconv.Atoi(s[1:]); err == nil && n >= 0 && n < hart.RegisterCount {
			return n, nil
		}
	}

	for i, name := range abiRegisterNames {
		if s == name {
			return i, nil
		}
	}

	return 0, fmt.Errorf("invalid register: %s", s)
}
