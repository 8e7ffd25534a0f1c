package internal

// exec applies one decoded instruction to the machine. By the time it runs
// the program counter has already been advanced past the instruction, so
// jump and call targets overwrite it, skips add another 2, and wait-for-key
// rolls it back by 2 to re-dispatch.
//
// All byte arithmetic wraps modulo 256; CHIP-8 programs rely on wraparound
// and it must never trap. Where V[0xF] is both an operand and the flag, the
// flag write wins.
func (vm *VM) exec(inst Instruction) error {
	switch inst.Op {
	case OpCls:
		vm.clearPixels()
	case OpRet:
		if vm.SP == 0 {
			return &StackUnderflowError{PC: vm.PC - 2}
		}
		vm.SP--
		vm.PC = vm.Stack[vm.SP]
	case OpJp:
		vm.PC = inst.NNN
	case OpCall:
		if vm.SP == StackDepth {
			return &StackOverflowError{PC: vm.PC - 2}
		}
		vm.Stack[vm.SP] = vm.PC
		vm.SP++
		vm.PC = inst.NNN
	case OpSeByte:
		if vm.V[inst.X] == inst.KK {
			vm.PC += 2
		}
	case OpSneByte:
		if vm.V[inst.X] != inst.KK {
			vm.PC += 2
		}
	case OpSeReg:
		if vm.V[inst.X] == vm.V[inst.Y] {
			vm.PC += 2
		}
	case OpLdByte:
		vm.V[inst.X] = inst.KK
	case OpAddByte:
		vm.V[inst.X] += inst.KK
	case OpLdReg:
		vm.V[inst.X] = vm.V[inst.Y]
	case OpOr:
		vm.V[inst.X] |= vm.V[inst.Y]
	case OpAnd:
		vm.V[inst.X] &= vm.V[inst.Y]
	case OpXor:
		vm.V[inst.X] ^= vm.V[inst.Y]
	case OpAddReg:
		sum := uint16(vm.V[inst.X]) + uint16(vm.V[inst.Y])
		vm.V[inst.X] = uint8(sum)
		if sum > 0xFF {
			vm.V[0xF] = 1
		} else {
			vm.V[0xF] = 0
		}
	case OpSub:
		var borrow uint8
		if vm.V[inst.X] >= vm.V[inst.Y] {
			borrow = 1
		}
		vm.V[inst.X] -= vm.V[inst.Y]
		vm.V[0xF] = borrow
	case OpShr:
		bit := vm.V[inst.X] & 0x01
		vm.V[inst.X] >>= 1
		vm.V[0xF] = bit
	case OpSubn:
		var borrow uint8
		if vm.V[inst.Y] >= vm.V[inst.X] {
			borrow = 1
		}
		vm.V[inst.X] = vm.V[inst.Y] - vm.V[inst.X]
		vm.V[0xF] = borrow
	case OpShl:
		bit := (vm.V[inst.X] & 0x80) >> 7
		vm.V[inst.X] <<= 1
		vm.V[0xF] = bit
	case OpSneReg:
		if vm.V[inst.X] != vm.V[inst.Y] {
			vm.PC += 2
		}
	case OpLdI:
		vm.I = inst.NNN
	case OpJpV0:
		// 12-bit target mask, matching the rest of the address space
		vm.PC = (inst.NNN + uint16(vm.V[0])) & 0x0FFF
	case OpRnd:
		vm.V[inst.X] = uint8(vm.rand.Intn(256)) & inst.KK
	case OpDrw:
		vm.drawSprite(vm.V[inst.X], vm.V[inst.Y], inst.N)
	case OpSkp:
		if vm.Keys[vm.V[inst.X]&0x0F] {
			vm.PC += 2
		}
	case OpSknp:
		if !vm.Keys[vm.V[inst.X]&0x0F] {
			vm.PC += 2
		}
	case OpLdVxDT:
		vm.V[inst.X] = vm.DT
	case OpLdKey:
		// Ascending scan of the latch. With nothing held, roll the program
		// counter back so the same instruction re-dispatches next cycle;
		// the scheduler keeps ticking timers and rendering meanwhile.
		for k := uint8(0); k < NumKeys; k++ {
			if vm.Keys[k] {
				vm.V[inst.X] = k
				return nil
			}
		}
		vm.PC -= 2
	case OpLdDTVx:
		vm.DT = vm.V[inst.X]
	case OpLdSTVx:
		vm.ST = vm.V[inst.X]
	case OpAddI:
		// I stays within the 12-bit address range
		vm.I = (vm.I + uint16(vm.V[inst.X])) & 0x0FFF
	case OpLdFont:
		vm.I = uint16(vm.V[inst.X]) * fontGlyphSize
	case OpLdBCD:
		vm.Memory[vm.I&(totalMemory-1)] = vm.V[inst.X] / 100 % 10
		vm.Memory[(vm.I+1)&(totalMemory-1)] = vm.V[inst.X] / 10 % 10
		vm.Memory[(vm.I+2)&(totalMemory-1)] = vm.V[inst.X] % 10
	case OpStoreV:
		// V0 through V(x-1); the upper bound is exclusive
		for i := uint16(0); i < uint16(inst.X); i++ {
			vm.Memory[(vm.I+i)&(totalMemory-1)] = vm.V[i]
		}
	case OpLoadV:
		for i := uint16(0); i < uint16(inst.X); i++ {
			vm.V[i] = vm.Memory[(vm.I+i)&(totalMemory-1)]
		}
	}
	return nil
}
