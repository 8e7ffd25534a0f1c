package internal

import "fmt"

// A ProgramTooLargeError is returned at load time when a program does not
// fit between 0x200 and the top of the address space. The machine state is
// unchanged.
type ProgramTooLargeError struct {
	Size int
	Max  int
}

func (e *ProgramTooLargeError) Error() string {
	return fmt.Sprintf("program is %d bytes, only %d available above 0x200", e.Size, e.Max)
}

// An UnknownOpcodeError is reported when no instruction pattern matches the
// fetched word. It is non-fatal: the program counter has already moved past
// the bad word and the cycle completes.
type UnknownOpcodeError struct {
	Opcode uint16
}

func (e *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("unknown opcode: %04X", e.Opcode)
}

// A StackOverflowError is a fatal machine fault: CALL issued with all 16
// stack frames in use. PC is the address of the faulting instruction.
type StackOverflowError struct {
	PC uint16
}

func (e *StackOverflowError) Error() string {
	return fmt.Sprintf("call stack overflow at %04X", e.PC)
}

// A StackUnderflowError is a fatal machine fault: RET issued with an empty
// stack. PC is the address of the faulting instruction.
type StackUnderflowError struct {
	PC uint16
}

func (e *StackUnderflowError) Error() string {
	return fmt.Sprintf("call stack underflow at %04X", e.PC)
}
