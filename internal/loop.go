package internal

import (
	"errors"
	"log"
	"time"
)

// Frontend is the collaborator the scheduler drives once per cycle: it
// refreshes the key latch before dispatch and receives the framebuffer
// snapshot plus diagnostics after.
type Frontend interface {
	// Poll refreshes the key latch. Returning false stops the scheduler.
	Poll(keys *[NumKeys]bool) bool
	// Render receives the cycle's framebuffer snapshot and diagnostics.
	Render(d Display, diag Diag)
}

// Config controls the cycle scheduler.
type Config struct {
	// CycleRate is the target cycles per second. Timer decay is coupled 1:1
	// to instruction cycles rather than a fixed 60 Hz wall clock, so this
	// is also the effective timer rate.
	CycleRate float64
	// HaltOnFault stops the scheduler on stack faults. Unknown opcodes are
	// always logged and skipped.
	HaltOnFault bool
	// Log receives non-fatal fault reports. Nil means the standard logger.
	Log *log.Logger
}

// DefaultConfig matches the original interpreter: 60 cycles per second and
// a halt on stack corruption.
var DefaultConfig = Config{
	CycleRate:   60,
	HaltOnFault: true,
}

// Run drives fetch-decode-execute-timer cycles at the configured rate until
// the frontend asks to stop or a fatal fault surfaces. Every cycle renders,
// including cycles stalled on wait-for-key.
func (vm *VM) Run(fe Frontend) error {
	logger := vm.cfg.Log
	if logger == nil {
		logger = log.Default()
	}
	period := time.Duration(float64(time.Second) / vm.cfg.CycleRate)

	for {
		start := time.Now()

		if !fe.Poll(&vm.Keys) {
			return nil
		}

		if err := vm.Step(); err != nil {
			var unknown *UnknownOpcodeError
			if errors.As(err, &unknown) || !vm.cfg.HaltOnFault {
				logger.Printf("fault at %04X: %v", vm.PC, err)
			} else {
				return err
			}
		}

		fe.Render(vm.Display(), vm.Diag())

		if elapsed := time.Since(start); elapsed < period {
			time.Sleep(period - elapsed)
		}
	}
}
