// Package loader reads a raw, headerless RV32I program image and writes it
// into a Hart's Memory starting at address 0 — the one data-flow step
// spec.md leaves to an external collaborator.
package loader

import (
	"fmt"
	"io"
	"os"

	"github.com/PhilippRados/ruscv/hart"
)

// LoadFile reads the program image at path and writes it into mem at
// address 0.
func LoadFile(mem *hart.Memory, path string) error {
	f, err := os.Open(path) // #nosec G304 -- path is a user-supplied CLI argument
	if err != nil {
		return fmt.Errorf("loader: failed to open %s: %w", path, err)
	}
	defer f.Close()

	return Load(mem, f)
}

// Load reads a program image from r in full and writes it into mem at
// address 0. The image is a raw byte stream: byte 0 of the image is
// instruction byte 0, little-endian, exactly as produced by stripping the
// ELF of a program linked with text at address 0.
func Load(mem *hart.Memory, r io.Reader) error {
	image, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("loader: failed to read image: %w", err)
	}

	if err := mem.LoadImage(image); err != nil {
		return fmt.Errorf("loader: %w", err)
	}

	return nil
}

// NewHartFromFile is a convenience constructor: it allocates a Memory of
// memSize bytes, loads the image at path into it at address 0, and returns
// a Hart ready to run from PC 0.
func NewHartFromFile(path string, memSize uint32) (*hart.Hart, error) {
	mem := hart.NewMemory(memSize)
	if err := LoadFile(mem, path); err != nil {
		return nil, err
	}
	return hart.NewHart(mem), nil
}
