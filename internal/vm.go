package internal

// Follows the CHIP-8 technical reference found at http://devernay.free.fr/hacks/chip8/C8TECH10.HTM

import (
	"math/rand"
	"os"
	"time"
)

// CHIP-8 VM constants
const (
	totalMemory    = 0x1000
	pcStartAddr    = 0x200
	maxProgramSize = totalMemory - pcStartAddr

	fontGlyphSize = 5

	ScreenWidth  = 64
	ScreenHeight = 32

	StackDepth = 16
	NumKeys    = 16
)

// VM is an emulated CHIP-8 machine. The whole machine lives in this one
// aggregate: frontends and tests build fresh instances and read or poke the
// state directly, and the scheduler is its only mutator while running.
type VM struct {
	Opcode uint16             // 16-bit opcode of the current instruction
	V      [16]uint8          // 16 general purpose 8-bit registers, V[0xF] doubles as a flag
	I      uint16             // 16-bit register that is generally used to store memory addresses
	DT     uint8              // Delay timer
	ST     uint8              // Sound timer
	PC     uint16             // Program counter
	SP     uint8              // Stack pointer, counts frames in use
	Stack  [StackDepth]uint16 // Return addresses pushed by CALL
	Memory [totalMemory]uint8 // 4 KB global memory

	// Input latch, true while the key is held. Refreshed by the frontend
	// before each cycle is dispatched; the executor only reads it.
	Keys [NumKeys]bool

	// 64 px x 32 px display
	Pixels Display

	cfg  Config
	rand *rand.Rand
}

var fontset = []uint8{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// New creates a CHIP-8 machine with the font table in low memory and the
// program counter at the start of program memory. A nil cfg uses
// DefaultConfig.
func New(cfg *Config) *VM {
	if cfg == nil {
		c := DefaultConfig
		cfg = &c
	}
	if cfg.CycleRate <= 0 {
		cfg.CycleRate = DefaultConfig.CycleRate
	}
	vm := &VM{
		PC:   pcStartAddr,
		cfg:  *cfg,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	copy(vm.Memory[:], fontset)
	return vm
}

// Load copies a CHIP-8 program into memory starting at 0x200. The machine is
// left untouched when the program does not fit.
func (vm *VM) Load(program []byte) error {
	if len(program) > maxProgramSize {
		return &ProgramTooLargeError{Size: len(program), Max: maxProgramSize}
	}
	copy(vm.Memory[pcStartAddr:], program)
	return nil
}

// LoadFile reads a CHIP-8 binary from disk and loads it into memory.
func (vm *VM) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return vm.Load(data)
}

// Step runs one machine cycle: fetch, advance, decode, execute, then tick
// both timers. Faults come back with the timers already ticked and the
// program counter already past the faulting instruction.
func (vm *VM) Step() error {
	pc := vm.PC & (totalMemory - 1)
	vm.Opcode = uint16(vm.Memory[pc])<<8 | uint16(vm.Memory[(pc+1)&(totalMemory-1)])
	vm.PC = (pc + 2) & (totalMemory - 1)

	inst, err := Decode(vm.Opcode)
	if err == nil {
		err = vm.exec(inst)
	}

	if vm.DT > 0 {
		vm.DT--
	}
	if vm.ST > 0 {
		vm.ST--
	}
	return err
}

// Diag is the per-cycle diagnostic view handed to renderers alongside the
// framebuffer snapshot.
type Diag struct {
	PC     uint16
	Opcode uint16
	I      uint16
	Sound  bool // sound timer is nonzero; producing audio is the frontend's business
}

// Diag returns the diagnostics for the cycle that just executed.
func (vm *VM) Diag() Diag {
	return Diag{PC: vm.PC, Opcode: vm.Opcode, I: vm.I, Sound: vm.ST > 0}
}
