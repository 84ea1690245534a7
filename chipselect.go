package wifinina

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/spi"
)

// Busy-pin wait budgets, matching chip_select.rs: the coprocessor has up
// to 10s to go idle between commands, and up to 1s to signal readiness
// once CS has been asserted.
const (
	waitForIdleTimeout  = 10 * time.Second
	waitForReadyTimeout = 1 * time.Second
)

// chipSelect owns the CS and busy pins that gate access to the shared SPI
// bus. It drives CS high when idle (deselected) and, on select, waits for
// the busy pin to settle before and after asserting CS low — the
// handshake the coprocessor uses to signal it's ready to shift bytes.
//
// Any single deselect error is latched rather than returned, matching the
// original driver's Drop-time behavior: a bus release can't itself fail
// the caller's already-completed operation, but a persistent failure
// should still be observable.
type chipSelect struct {
	cs   gpio.PinOut
	busy gpio.PinIn

	lastDeselectErr error
}

// newChipSelect constructs a chipSelect and immediately drives cs high
// (deselected), matching WifiNinaChipSelect::new.
func newChipSelect(cs gpio.PinOut, busy gpio.PinIn) (*chipSelect, error) {
	if err := cs.Out(gpio.High); err != nil {
		return nil, err
	}
	return &chipSelect{cs: cs, busy: busy}, nil
}

// selectBus waits for the coprocessor to be idle, asserts CS low, then
// waits for it to signal readiness, returning a scopedBus the caller must
// Close to release the bus. Mirrors WifiNinaChipSelect::select.
func (c *chipSelect) selectBus(conn spi.Conn, timer Timer) (*scopedBus, error) {
	if err := c.waitForBusy(timer, waitForIdleTimeout, false); err != nil {
		return nil, &ChipSelectTimeoutError{WaitingFor: false}
	}
	if err := c.cs.Out(gpio.Low); err != nil {
		return nil, err
	}
	if err := c.waitForBusy(timer, waitForReadyTimeout, true); err != nil {
		c.deselect()
		return nil, &ChipSelectTimeoutError{WaitingFor: true}
	}
	return &scopedBus{conn: conn, cs: c}, nil
}

// waitForBusy polls the busy pin until it reads want, or timeout elapses.
func (c *chipSelect) waitForBusy(timer Timer, timeout time.Duration, want bool) error {
	wantLevel := gpio.Low
	if want {
		wantLevel = gpio.High
	}
	return forEach(timer, timeout, func() (bool, error) {
		return c.busy.Read() == wantLevel, nil
	})
}

// deselect drives CS high and latches any error. It never returns an
// error itself: callers observe failures by checking lastDeselectErr
// (Driver.LastDeselectError); selectBus does not consult it.
func (c *chipSelect) deselect() {
	if err := c.cs.Out(gpio.High); err != nil {
		c.lastDeselectErr = err
	}
}

// scopedBus is a temporary handle to the SPI bus, valid only between a
// chipSelect.selectBus call and the matching Close. It is the Go stand-in
// for the original SafeSpi RAII guard: Go has no destructors, so callers
// must defer Close explicitly.
type scopedBus struct {
	conn   spi.Conn
	cs     *chipSelect
	closed bool
}

// Tx delegates to the underlying spi.Conn, wrapping any transport error.
func (b *scopedBus) Tx(w, r []byte) error {
	if err := b.conn.Tx(w, r); err != nil {
		return fmt.Errorf("wifinina: spi: %w", err)
	}
	return nil
}

// Close deselects the bus. It is idempotent and never fails; any
// deselect error is latched on the owning chipSelect.
func (b *scopedBus) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	b.cs.deselect()
	return nil
}
