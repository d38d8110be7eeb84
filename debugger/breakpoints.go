package debugger

import (
	"fmt"
	"sync"

	"github.com/PhilippRados/ruscv/hart"
)

// Breakpoint halts execution when the Hart's PC reaches Address. Since
// hart.Hart only ever fetches at word-aligned addresses (any control
// transfer to an odd-halfword target traps as MisalignedInstruction before
// the Hart's PC can settle there), Address is always a multiple of
// hart.InstructionSize — a breakpoint at any other address could never fire.
type Breakpoint struct {
	ID        int
	Address   uint32
	Enabled   bool
	Temporary bool   // Auto-delete after ProcessHit reports a hit
	Condition string // Optional condition expression
	HitCount  int    // Number of times ProcessHit has reported this address
}

// BreakpointManager manages breakpoints set on RV32I instruction addresses,
// keyed by the same word-aligned PC value hart.Hart.PC() returns between
// steps. Address-keyed rather than ID-keyed so ShouldBreak's per-step lookup
// (one map access per fetched instruction) stays O(1).
type BreakpointManager struct {
	mu          sync.RWMutex
	breakpoints map[uint32]*Breakpoint // PC value -> breakpoint
	nextID      int
}

// NewBreakpointManager creates a new breakpoint manager
func NewBreakpointManager() *BreakpointManager {
	return &BreakpointManager{
		breakpoints: make(map[uint32]*Breakpoint),
		nextID:      1,
	}
}

// AddBreakpoint adds a breakpoint at address, rejecting any address that is
// not a multiple of hart.InstructionSize — the Hart's PC can never equal a
// misaligned address (spec.md §7's MisalignedInstruction trap fires first),
// so such a breakpoint would sit in the table forever without a chance of
// hitting.
func (bm *BreakpointManager) AddBreakpoint(address uint32, temporary bool, condition string) (*Breakpoint, error) {
	if address%hart.InstructionSize != 0 {
		return nil, fmt.Errorf("breakpoint address 0x%08X is not word-aligned (RV32I instructions are %d-byte aligned)", address, hart.InstructionSize)
	}

	bm.mu.Lock()
	defer bm.mu.Unlock()

	// Check if breakpoint already exists at this address
	if bp, exists := bm.breakpoints[address]; exists {
		// Update existing breakpoint
		bp.Enabled = true
		bp.Temporary = temporary
		bp.Condition = condition
		return bp, nil
	}

	// Create new breakpoint
	bp := &Breakpoint{
		ID:        bm.nextID,
		Address:   address,
		Enabled:   true,
		Temporary: temporary,
		Condition: condition,
		HitCount:  0,
	}

	bm.breakpoints[address] = bp
	bm.nextID++

	return bp, nil
}

// DeleteBreakpoint removes a breakpoint by ID
func (bm *BreakpointManager) DeleteBreakpoint(id int) error {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	// Find breakpoint by ID
	for addr, bp := range bm.breakpoints {
		if bp.ID == id {
			delete(bm.breakpoints, addr)
			return nil
		}
	}

	return fmt.Errorf("breakpoint %d not found", id)
}

// DeleteBreakpointAt removes a breakpoint at a specific address
func (bm *BreakpointManager) DeleteBreakpointAt(address uint32) error {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if _, exists := bm.breakpoints[address]; !exists {
		return fmt.Errorf("no breakpoint at address 0x%08X", address)
	}

	delete(bm.breakpoints, address)
	return nil
}

// EnableBreakpoint enables a breakpoint by ID
func (bm *BreakpointManager) EnableBreakpoint(id int) error {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	for _, bp := range bm.breakpoints {
		if bp.ID == id {
			bp.Enabled = true
			return nil
		}
	}

	return fmt.Errorf("breakpoint %d not found", id)
}

// DisableBreakpoint disables a breakpoint by ID
func (bm *BreakpointManager) DisableBreakpoint(id int) error {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	for _, bp := range bm.breakpoints {
		if bp.ID == id {
			bp.Enabled = false
			return nil
		}
	}

	return fmt.Errorf("breakpoint %d not found", id)
}

// GetBreakpoint looks up the breakpoint, if any, set at address. ShouldBreak
// calls this once per step with the Hart's current PC.
func (bm *BreakpointManager) GetBreakpoint(address uint32) *Breakpoint {
	bm.mu.RLock()
	defer bm.mu.RUnlock()

	return bm.breakpoints[address]
}

// GetBreakpointByID gets a breakpoint by ID
func (bm *BreakpointManager) GetBreakpointByID(id int) *Breakpoint {
	bm.mu.RLock()
	defer bm.mu.RUnlock()

	for _, bp := range bm.breakpoints {
		if bp.ID == id {
			return bp
		}
	}

	return nil
}

// GetAllBreakpoints returns all breakpoints
func (bm *BreakpointManager) GetAllBreakpoints() []*Breakpoint {
	bm.mu.RLock()
	defer bm.mu.RUnlock()

	result := make([]*Breakpoint, 0, len(bm.breakpoints))
	for _, bp := range bm.breakpoints {
		result = append(result, bp)
	}

	return result
}

// Clear removes all breakpoints
func (bm *BreakpointManager) Clear() {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	bm.breakpoints = make(map[uint32]*Breakpoint)
}

// HasBreakpoint checks if a breakpoint exists at the given address
func (bm *BreakpointManager) HasBreakpoint(address uint32) bool {
	bm.mu.RLock()
	defer bm.mu.RUnlock()

	_, exists := bm.breakpoints[address]
	return exists
}

// Count returns the number of breakpoints
func (bm *BreakpointManager) Count() int {
	bm.mu.RLock()
	defer bm.mu.RUnlock()

	return len(bm.breakpoints)
}

// ProcessHit records that the Hart's fetch landed on address: it increments
// the breakpoint's HitCount and, if the breakpoint is Temporary, removes it
// so the next fetch at that address runs through uninterrupted. Called from
// Debugger.ShouldBreak when the current PC holds an enabled breakpoint,
// after the step-mode checks and before the step loop decides whether to
// pause. Returns a copy of the breakpoint
// for safe access after the lock is released.
func (bm *BreakpointManager) ProcessHit(address uint32) *Breakpoint {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	bp, exists := bm.breakpoints[address]
	if !exists {
		return nil
	}

	// Increment hit count
	bp.HitCount++

	// Make a copy for return
	result := *bp

	// Delete if temporary
	if bp.Temporary {
		delete(bm.breakpoints, address)
	}

	return &result
}
