package sdl

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"ocho/internal"
)

const (
	pixelSize = 20

	screenColor = 0x1A237E
	spriteColor = 0x9FA8DA
)

// IO is the SDL frontend for the VM: it owns the window, repaints
// framebuffer snapshots and feeds keyboard events into the key latch.
type IO struct {
	window  *sdl.Window
	surface *sdl.Surface

	last     internal.Display
	rendered bool
}

// NewIO returns a new I/O instance for the SDL frontend
func NewIO() *IO {
	return &IO{}
}

// SetupWindow initialises and sets up the main SDL window
func (io *IO) SetupWindow(title string) error {
	if err := sdl.Init(sdl.INIT_EVERYTHING); err != nil {
		return fmt.Errorf("error initialising SDL: %w", err)
	}

	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		internal.ScreenWidth*pixelSize, internal.ScreenHeight*pixelSize, sdl.WINDOW_SHOWN)
	if err != nil {
		return fmt.Errorf("error creating window: %w", err)
	}
	io.window = window
	io.surface, err = window.GetSurface()
	if err != nil {
		return fmt.Errorf("error getting window surface: %w", err)
	}
	io.surface.FillRect(nil, screenColor)
	io.window.UpdateSurface()
	return nil
}

// Destroy should be called before quitting the application
func (io *IO) Destroy() {
	if io.window != nil {
		io.window.Destroy()
	}
	sdl.Quit()
}

// Poll pumps SDL events into the key latch. Returns false once the window
// has been closed.
func (io *IO) Poll(keys *[internal.NumKeys]bool) bool {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch t := event.(type) {
		case *sdl.KeyboardEvent:
			if code := keymap(t.Keysym.Scancode); code != -1 {
				keys[code] = t.GetType() == sdl.KEYDOWN
			}
		case *sdl.QuitEvent:
			return false
		}
	}
	return true
}

// Render repaints the window whenever the framebuffer changed since the
// previous cycle.
func (io *IO) Render(d internal.Display, diag internal.Diag) {
	if io.rendered && d == io.last {
		return
	}
	io.surface.FillRect(nil, screenColor)
	for w := int32(0); w < internal.ScreenWidth; w++ {
		for h := int32(0); h < internal.ScreenHeight; h++ {
			if d[w][h] {
				rect := &sdl.Rect{X: w * pixelSize, Y: h * pixelSize, W: pixelSize, H: pixelSize}
				io.surface.FillRect(rect, spriteColor)
			}
		}
	}
	io.window.UpdateSurface()
	io.last = d
	io.rendered = true
}

// Maps keys from a QWERTY keyboard to the keypad used by CHIP-8
// Below we have a mapping QWERTY keyboard to the CHIP-8 keypad
// +--------+--------+--------+--------+
// | 1 -> 1 | 2 -> 2 | 3 -> 3 | 4 -> C |
// +--------+--------+--------+--------+
// | Q -> 4 | W -> 5 | E -> 6 | R -> D |
// +--------+--------+--------+--------+
// | A -> 7 | S -> 8 | D -> 9 | F -> E |
// +--------+--------+--------+--------+
// | Z -> A | X -> 0 | C -> B | V -> F |
// +--------+--------+--------+--------+
func keymap(code sdl.Scancode) int8 {
	switch code {
	case sdl.SCANCODE_1:
		return 0x1
	case sdl.SCANCODE_2:
		return 0x2
	case sdl.SCANCODE_3:
		return 0x3
	case sdl.SCANCODE_4:
		return 0xC
	case sdl.SCANCODE_Q:
		return 0x4
	case sdl.SCANCODE_W:
		return 0x5
	case sdl.SCANCODE_E:
		return 0x6
	case sdl.SCANCODE_R:
		return 0xD
	case sdl.SCANCODE_A:
		return 0x7
	case sdl.SCANCODE_S:
		return 0x8
	case sdl.SCANCODE_D:
		return 0x9
	case sdl.SCANCODE_F:
		return 0xE
	case sdl.SCANCODE_Z:
		return 0xA
	case sdl.SCANCODE_X:
		return 0x0
	case sdl.SCANCODE_C:
		return 0xB
	case sdl.SCANCODE_V:
		return 0xF
	default:
		return -1
	}
}
