package term

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"

	"ocho/internal"
)

// A terminal only reports key presses, never releases, so each press
// latches its key until this window expires.
const keyHold = 100 * time.Millisecond

// IO is the POSIX terminal frontend for the VM: raw-mode stdin feeds the
// keypad and the framebuffer is painted with ANSI escapes.
type IO struct {
	saved    unix.Termios
	restored bool

	input chan byte

	expiry [internal.NumKeys]time.Time

	last     internal.Display
	rendered bool
}

// NewIO returns a new I/O instance for the terminal frontend
func NewIO() *IO {
	return &IO{input: make(chan byte, 32)}
}

// Setup switches stdin to raw mode, starts the reader goroutine that
// publishes key bytes, and prepares the screen.
func (io *IO) Setup() error {
	if err := termios.Tcgetattr(os.Stdin.Fd(), &io.saved); err != nil {
		return fmt.Errorf("error reading terminal attributes: %w", err)
	}
	raw := io.saved
	termios.Cfmakeraw(&raw)
	if err := termios.Tcsetattr(os.Stdin.Fd(), termios.TCIFLUSH, &raw); err != nil {
		return fmt.Errorf("error entering raw mode: %w", err)
	}

	go func() {
		buf := make([]byte, 1)
		for {
			n, err := os.Stdin.Read(buf)
			if err != nil {
				return
			}
			if n == 1 {
				io.input <- buf[0]
			}
		}
	}()

	// clear screen, hide cursor
	fmt.Print("\x1b[2J\x1b[?25l")
	return nil
}

// Restore puts the terminal back the way Setup found it. Safe to call more
// than once.
func (io *IO) Restore() {
	if io.restored {
		return
	}
	io.restored = true
	fmt.Print("\x1b[?25h\r\n")
	termios.Tcsetattr(os.Stdin.Fd(), termios.TCIFLUSH, &io.saved)
}

// Poll drains pending key bytes into the latch and expires stale presses.
// ESC or ctrl-c stops the scheduler.
func (io *IO) Poll(keys *[internal.NumKeys]bool) bool {
	for {
		select {
		case b := <-io.input:
			switch b {
			case 0x03, 0x1b: // ctrl-c, ESC
				return false
			default:
				if code := keymap(b); code != -1 {
					io.expiry[code] = time.Now().Add(keyHold)
				}
			}
		default:
			now := time.Now()
			for k := range keys {
				keys[k] = now.Before(io.expiry[k])
			}
			return true
		}
	}
}

// Render repaints the grid when it changed; the status line is refreshed
// every cycle since the diagnostics move with every instruction.
func (io *IO) Render(d internal.Display, diag internal.Diag) {
	if !io.rendered || d != io.last {
		var b strings.Builder
		b.WriteString("\x1b[H")
		for h := 0; h < internal.ScreenHeight; h++ {
			for w := 0; w < internal.ScreenWidth; w++ {
				if d[w][h] {
					b.WriteString("██")
				} else {
					b.WriteString("  ")
				}
			}
			b.WriteString("\r\n")
		}
		fmt.Print(b.String())
		io.last = d
		io.rendered = true
	}
	io.status(diag)
}

func (io *IO) status(diag internal.Diag) {
	note := ' '
	if diag.Sound {
		note = '*'
	}
	fmt.Printf("\x1b[%d;1H\x1b[KPC %04X  OP %04X  I %04X %c  keypad 1234/qwer/asdf/zxcv, ESC quits\r",
		internal.ScreenHeight+1, diag.PC, diag.Opcode, diag.I, note)
}

// Maps keys from a QWERTY keyboard to the keypad used by CHIP-8, same
// layout as the SDL frontend:
// +--------+--------+--------+--------+
// | 1 -> 1 | 2 -> 2 | 3 -> 3 | 4 -> C |
// +--------+--------+--------+--------+
// | Q -> 4 | W -> 5 | E -> 6 | R -> D |
// +--------+--------+--------+--------+
// | A -> 7 | S -> 8 | D -> 9 | F -> E |
// +--------+--------+--------+--------+
// | Z -> A | X -> 0 | C -> B | V -> F |
// +--------+--------+--------+--------+
func keymap(b byte) int8 {
	switch b {
	case '1':
		return 0x1
	case '2':
		return 0x2
	case '3':
		return 0x3
	case '4':
		return 0xC
	case 'q':
		return 0x4
	case 'w':
		return 0x5
	case 'e':
		return 0x6
	case 'r':
		return 0xD
	case 'a':
		return 0x7
	case 's':
		return 0x8
	case 'd':
		return 0x9
	case 'f':
		return 0xE
	case 'z':
		return 0xA
	case 'x':
		return 0x0
	case 'c':
		return 0xB
	case 'v':
		return 0xF
	default:
		return -1
	}
}
