package internal

import (
	"bytes"
	"errors"
	"io"
	"log"
	"testing"
)

// fakeFrontend drives Run for a fixed number of cycles and records what the
// scheduler hands back.
type fakeFrontend struct {
	maxCycles int
	cycles    int
	renders   int
	diags     []Diag
	keys      func(cycle int, keys *[NumKeys]bool)
}

func (f *fakeFrontend) Poll(keys *[NumKeys]bool) bool {
	if f.cycles >= f.maxCycles {
		return false
	}
	if f.keys != nil {
		f.keys(f.cycles, keys)
	}
	f.cycles++
	return true
}

func (f *fakeFrontend) Render(d Display, diag Diag) {
	f.renders++
	f.diags = append(f.diags, diag)
}

func testConfig() *Config {
	return &Config{
		CycleRate:   100000, // keep per-cycle sleeps negligible
		HaltOnFault: true,
		Log:         log.New(io.Discard, "", 0),
	}
}

func TestRunStopsWhenFrontendQuits(t *testing.T) {
	vm := New(testConfig())
	if err := vm.Load(bytes.Repeat([]byte{0x61, 0x00}, 8)); err != nil {
		t.Fatal(err)
	}

	fe := &fakeFrontend{maxCycles: 5}
	if err := vm.Run(fe); err != nil {
		t.Fatal(err)
	}
	if fe.renders != 5 {
		t.Errorf("renders: want one per cycle, have %d", fe.renders)
	}
}

func TestRunHaltsOnStackFault(t *testing.T) {
	vm := New(testConfig())
	if err := vm.Load([]byte{0x00, 0xEE}); err != nil {
		t.Fatal(err)
	}

	fe := &fakeFrontend{maxCycles: 5}
	err := vm.Run(fe)
	var underflow *StackUnderflowError
	if !errors.As(err, &underflow) {
		t.Fatalf("want StackUnderflowError, have %v", err)
	}
	if fe.cycles != 1 {
		t.Errorf("scheduler must halt on the faulting cycle, ran %d", fe.cycles)
	}
}

func TestRunContinuesPastStackFaultWhenConfigured(t *testing.T) {
	cfg := testConfig()
	cfg.HaltOnFault = false
	vm := New(cfg)
	if err := vm.Load([]byte{0x00, 0xEE}); err != nil {
		t.Fatal(err)
	}

	fe := &fakeFrontend{maxCycles: 4}
	if err := vm.Run(fe); err != nil {
		t.Fatal(err)
	}
	if fe.renders != 4 {
		t.Errorf("renders: want 4, have %d", fe.renders)
	}
}

func TestRunSkipsUnknownOpcodes(t *testing.T) {
	vm := New(testConfig())
	if err := vm.Load([]byte{0xFF, 0xFF, 0x61, 0x07}); err != nil {
		t.Fatal(err)
	}

	fe := &fakeFrontend{maxCycles: 2}
	if err := vm.Run(fe); err != nil {
		t.Fatal(err)
	}
	if vm.V[1] != 7 {
		t.Error("execution must continue past an unknown opcode")
	}
}

func TestRunKeepsCyclingWhileWaitingForKey(t *testing.T) {
	vm := New(testConfig())
	if err := vm.Load([]byte{0xF0, 0x0A}); err != nil {
		t.Fatal(err)
	}
	vm.DT = 3

	fe := &fakeFrontend{
		maxCycles: 3,
		keys: func(cycle int, keys *[NumKeys]bool) {
			if cycle == 2 {
				keys[4] = true
			}
		},
	}
	if err := vm.Run(fe); err != nil {
		t.Fatal(err)
	}

	if fe.renders != 3 {
		t.Errorf("waiting cycles must still render, have %d", fe.renders)
	}
	if vm.DT != 0 {
		t.Errorf("waiting cycles must still tick timers, DT %d", vm.DT)
	}
	if fe.diags[0].PC != 0x200 {
		t.Errorf("diag PC while waiting: want 0200, have %04X", fe.diags[0].PC)
	}
	if vm.V[0] != 4 {
		t.Errorf("V0: want 4, have %d", vm.V[0])
	}
	if vm.PC != 0x202 {
		t.Errorf("PC after key: want 0202, have %04X", vm.PC)
	}
}
