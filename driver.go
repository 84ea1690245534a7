package wifinina

import (
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/spi"
)

// Driver is the host-side handle to a WiFiNINA coprocessor. It owns the
// SPI connection plus the CS and busy pins, and mediates every command
// sent to the chip through sendCommand/receiveResponse so that only one
// command is ever in flight at a time.
//
// A Driver is not safe for concurrent use from multiple goroutines; the
// coprocessor protocol has no notion of interleaved commands.
type Driver struct {
	conn  spi.Conn
	cs    *chipSelect
	timer Timer
}

// New constructs a Driver from an already-configured spi.Conn and the
// three digital pins that wire the host to the coprocessor. If reset is
// non-nil, the coprocessor is hard-reset as part of construction (see
// Reset). timer is used for every bounded wait the driver performs and
// may be shared across Driver instances so long as they aren't used
// concurrently.
func New(conn spi.Conn, cs gpio.PinOut, busy gpio.PinIn, reset gpio.PinOut, timer Timer) (*Driver, error) {
	sel, err := newChipSelect(cs, busy)
	if err != nil {
		return nil, err
	}
	d := &Driver{conn: conn, cs: sel, timer: timer}
	if reset != nil {
		if err := d.Reset(reset); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Reset drives the coprocessor's reset pin low for 200ms, then high for
// 750ms, matching the WifiNina::reset behavior the firmware expects on
// cold boot.
func (d *Driver) Reset(reset gpio.PinOut) error {
	if err := reset.Out(gpio.Low); err != nil {
		return err
	}
	if err := d.wait(200 * time.Millisecond); err != nil {
		return err
	}
	if err := reset.Out(gpio.High); err != nil {
		return err
	}
	return d.wait(750 * time.Millisecond)
}

// wait blocks the caller for dur by repeatedly polling the driver's
// Timer, used where a plain delay (rather than a bus-mediated busy-wait)
// is required: the Reset pulses and the pauses between status polls in
// socketOpen, Connect and CreateAccessPoint. Mirrors the original
// driver's block!(timer.wait()) idiom.
func (d *Driver) wait(dur time.Duration) error {
	d.timer.Start(dur)
	for {
		err := d.timer.Wait()
		if err == nil {
			return nil
		}
		if err != ErrWouldBlock {
			return err
		}
	}
}

// LastDeselectError returns the most recent error encountered while
// releasing the SPI bus, or nil if none has occurred. Bus release errors
// are latched rather than propagated from the operation that triggered
// them (see chipSelect.deselect), so callers that care about transport
// health should poll this periodically.
func (d *Driver) LastDeselectError() error {
	return d.cs.lastDeselectErr
}
