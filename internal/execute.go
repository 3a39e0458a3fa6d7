package internal

// execute applies a decoded instruction. Every check that can fail runs before
// the first mutation.
func (vm *C8VM) execute(ins Instruction) error {
	switch ins.Op {
	case OpCLS:
		vm.opCLS()
	case OpRET:
		return vm.opRET()
	case OpJP:
		vm.pc = ins.NNN
	case OpCALL:
		return vm.opCALL(ins)
	case OpSEByte:
		vm.skipIf(vm.regV[ins.X] == ins.KK)
	case OpSNEByte:
		vm.skipIf(vm.regV[ins.X] != ins.KK)
	case OpSEReg:
		vm.skipIf(vm.regV[ins.X] == vm.regV[ins.Y])
	case OpSNEReg:
		vm.skipIf(vm.regV[ins.X] != vm.regV[ins.Y])
	case OpLDByte:
		vm.regV[ins.X] = ins.KK
		vm.pc += 2
	case OpADDByte:
		vm.regV[ins.X] = uint8((uint16(vm.regV[ins.X]) + uint16(ins.KK)) & 0xFF)
		vm.pc += 2
	case OpLDReg, OpOR, OpAND, OpXOR, OpADDReg, OpSUB, OpSHR, OpSUBN, OpSHL:
		vm.opALU(ins)
		vm.pc += 2
	case OpLDI:
		vm.regI = ins.NNN
		vm.pc += 2
	case OpJPV0:
		vm.pc = (ins.NNN + uint16(vm.regV[0])) & maxAddr
	case OpRND:
		vm.regV[ins.X] = uint8(vm.rnd.Intn(256)) & ins.KK
		vm.pc += 2
	case OpDRW:
		return vm.opDRW(ins)
	case OpSKP, OpSKNP:
		return vm.opSkipKey(ins)
	case OpLDVxDT:
		vm.regV[ins.X] = vm.delayTimer
		vm.pc += 2
	case OpLDKey:
		vm.opLDKey(ins)
	case OpLDDT:
		vm.delayTimer = vm.regV[ins.X]
		vm.pc += 2
	case OpLDST:
		vm.soundTimer = vm.regV[ins.X]
		vm.pc += 2
	case OpADDI:
		vm.regI = (vm.regI + uint16(vm.regV[ins.X])) & maxAddr
		vm.pc += 2
	case OpLDF:
		vm.regI = uint16(vm.regV[ins.X]&0x0F) * fontSpriteSize
		vm.pc += 2
	case OpLDB:
		return vm.opLDB(ins)
	case OpLDMemStore:
		return vm.opLDMemStore(ins)
	case OpLDMemLoad:
		return vm.opLDMemLoad(ins)
	default:
		return &UnknownOpcodeError{Opcode: ins.Opcode, Addr: vm.pc}
	}
	return nil
}

func (vm *C8VM) skipIf(cond bool) {
	if cond {
		vm.pc += 2
	}
	vm.pc += 2
}

// CLS
func (vm *C8VM) opCLS() {
	vm.pixels = [PixelCount]uint8{}
	vm.drawFlag = true
	vm.pc += 2
}

// RET
func (vm *C8VM) opRET() error {
	if vm.sp == 0 {
		return &StackUnderflowError{Addr: vm.pc}
	}
	vm.sp--
	vm.pc = vm.stack[vm.sp]
	return nil
}

// CALL nnn pushes the address of the following instruction.
func (vm *C8VM) opCALL(ins Instruction) error {
	if vm.sp >= stackSize {
		return &StackOverflowError{Addr: vm.pc}
	}
	vm.stack[vm.sp] = vm.pc + 2
	vm.sp++
	vm.pc = ins.NNN
	return nil
}

// opALU executes the 8xy_ register instructions. The result is written before
// VF so that the flag wins when x is 0xF.
func (vm *C8VM) opALU(ins Instruction) {
	vx := vm.regV[ins.X]
	vy := vm.regV[ins.Y]

	switch ins.Op {
	case OpLDReg: // LD Vx, Vy
		vm.regV[ins.X] = vy
	case OpOR: // OR Vx, Vy
		vm.regV[ins.X] = vx | vy
	case OpAND: // AND Vx, Vy
		vm.regV[ins.X] = vx & vy
	case OpXOR: // XOR Vx, Vy
		vm.regV[ins.X] = vx ^ vy
	case OpADDReg: // ADD Vx, Vy
		sum := uint16(vx) + uint16(vy)
		vm.regV[ins.X] = uint8(sum & 0xFF)
		vm.regV[0xF] = flag(sum > 0xFF)
	case OpSUB: // SUB Vx, Vy
		vm.regV[ins.X] = uint8((uint16(vx) - uint16(vy)) & 0xFF)
		vm.regV[0xF] = flag(vx >= vy)
	case OpSHR: // SHR Vx
		vm.regV[ins.X] = vx >> 1
		vm.regV[0xF] = vx & 0x01
	case OpSUBN: // SUBN Vx, Vy
		vm.regV[ins.X] = uint8((uint16(vy) - uint16(vx)) & 0xFF)
		vm.regV[0xF] = flag(vy >= vx)
	case OpSHL: // SHL Vx
		vm.regV[ins.X] = uint8((uint16(vx) << 1) & 0xFF)
		vm.regV[0xF] = vx >> 7
	}
}

func flag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// SKP Vx / SKNP Vx
func (vm *C8VM) opSkipKey(ins Instruction) error {
	key := vm.regV[ins.X]
	if key >= KeyCount {
		return &KeyIndexError{Key: key}
	}
	if ins.Op == OpSKP {
		vm.skipIf(vm.keys[key])
	} else {
		vm.skipIf(!vm.keys[key])
	}
	return nil
}

// LD Vx, K stores the lowest pressed key. While no key is down the program
// counter stays put and the instruction runs again on the next cycle.
func (vm *C8VM) opLDKey(ins Instruction) {
	for i, pressed := range vm.keys {
		if pressed {
			vm.regV[ins.X] = uint8(i)
			vm.pc += 2
			return
		}
	}
}

// LD B, Vx
func (vm *C8VM) opLDB(ins Instruction) error {
	if err := vm.checkRange(vm.regI, 3); err != nil {
		return err
	}
	value := vm.regV[ins.X]
	vm.memory[vm.regI] = value / 100
	vm.memory[vm.regI+1] = (value / 10) % 10
	vm.memory[vm.regI+2] = value % 10
	vm.pc += 2
	return nil
}

// LD [I], Vx
func (vm *C8VM) opLDMemStore(ins Instruction) error {
	if err := vm.checkRange(vm.regI, int(ins.X)+1); err != nil {
		return err
	}
	for i := uint16(0); i <= uint16(ins.X); i++ {
		vm.memory[vm.regI+i] = vm.regV[i]
	}
	vm.pc += 2
	return nil
}

// LD Vx, [I]
func (vm *C8VM) opLDMemLoad(ins Instruction) error {
	if err := vm.checkRange(vm.regI, int(ins.X)+1); err != nil {
		return err
	}
	for i := uint16(0); i <= uint16(ins.X); i++ {
		vm.regV[i] = vm.memory[vm.regI+i]
	}
	vm.pc += 2
	return nil
}

// checkRange verifies that size bytes starting at addr lie inside memory.
func (vm *C8VM) checkRange(addr uint16, size int) error {
	if last := int(addr) + size - 1; last > maxAddr {
		return &MemoryAccessError{Opcode: vm.opcode, Addr: last}
	}
	return nil
}
