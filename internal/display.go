package internal

// Display is a snapshot of the 64x32 monochrome framebuffer, indexed [x][y].
type Display [ScreenWidth][ScreenHeight]bool

// Display returns a copy of the framebuffer. Renderers only ever see these
// copies, never the live pixels.
func (vm *VM) Display() Display {
	return vm.Pixels
}

func (vm *VM) clearPixels() {
	vm.Pixels = Display{}
}

// drawSprite XOR-blits n sprite rows from memory at I onto the framebuffer
// at (x, y), most significant bit leftmost, wrapping on both axes. V[0xF]
// is set when any set pixel is erased by the blit; every bit is still
// applied after a collision.
func (vm *VM) drawSprite(x, y, n uint8) {
	vm.V[0xF] = 0
	for row := uint8(0); row < n; row++ {
		spriteByte := vm.Memory[(vm.I+uint16(row))&(totalMemory-1)]
		for col := uint8(0); col < 8; col++ {
			if spriteByte&(0x80>>col) == 0 {
				continue
			}
			px := &vm.Pixels[(x+col)%ScreenWidth][(y+row)%ScreenHeight]
			if *px {
				vm.V[0xF] = 1
			}
			*px = !*px
		}
	}
}
