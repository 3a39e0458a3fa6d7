package internal

// opDRW draws an n byte sprite from memory[I] at (Vx, Vy). Pixels that fall off
// an edge wrap around to the opposite side of the screen.
func (vm *C8VM) opDRW(ins Instruction) error {
	if ins.N > 0 {
		if err := vm.checkRange(vm.regI, int(ins.N)); err != nil {
			return err
		}
	}

	x := int(vm.regV[ins.X])
	y := int(vm.regV[ins.Y])

	vm.regV[0xF] = 0
	for row := 0; row < int(ins.N); row++ {
		spriteByte := vm.memory[int(vm.regI)+row]
		for col := 0; col < 8; col++ {
			if spriteByte&(0x80>>col) == 0 {
				continue
			}
			px := &vm.pixels[(x+col)%ScreenWidth+((y+row)%ScreenHeight)*ScreenWidth]
			if *px == 1 {
				vm.regV[0xF] = 1
			}
			*px ^= 1
		}
	}

	vm.drawFlag = true
	vm.pc += 2
	return nil
}
