// Package spitest provides a scripted spi.Conn and gpio.PinIO/PinOut pair
// for testing the wifinina protocol codec without real hardware. It is
// adapted from periph's own conn/spi/spitest Record/Playback idea, ported
// to the current periph.io/x/conn/v3 interfaces (the original spitest
// package targets the pre-v3 spi.Conn, which carried Speed/Configure
// methods the v3 interface dropped).
package spitest

import (
	"errors"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Op is one expected Tx call: Write is what the caller is expected to
// send, Read is what the fake bus hands back.
type Op struct {
	Write []byte
	Read  []byte
}

// Playback is an spi.Conn that replays a fixed script of Tx operations,
// failing the test (via TB) if the caller writes something unexpected or
// calls Tx more times than scripted.
type Playback struct {
	TB  testingTB
	Ops []Op

	pos int
}

// testingTB is the subset of testing.TB this package needs, so tests
// don't have to import "testing" into a non-test file.
type testingTB interface {
	Helper()
	Fatalf(format string, args ...interface{})
}

func (p *Playback) String() string { return "spitest.Playback" }

func (p *Playback) Duplex() conn.Duplex { return conn.Full }

// Tx consumes the next scripted Op, asserting the write matches, and
// copies the scripted read bytes into r.
func (p *Playback) Tx(w, r []byte) error {
	p.TB.Helper()
	if p.pos >= len(p.Ops) {
		p.TB.Fatalf("spitest: unexpected Tx call %d (write=% x)", p.pos, w)
		return errors.New("spitest: unexpected Tx call")
	}
	op := p.Ops[p.pos]
	p.pos++
	if string(op.Write) != string(w) {
		p.TB.Fatalf("spitest: Tx[%d] write mismatch:\n got: % x\nwant: % x", p.pos-1, w, op.Write)
	}
	if len(r) != len(op.Read) {
		p.TB.Fatalf("spitest: Tx[%d] read length mismatch: got %d want %d", p.pos-1, len(r), len(op.Read))
	}
	copy(r, op.Read)
	return nil
}

// TxPackets replays each packet as one scripted Tx call.
func (p *Playback) TxPackets(pkts []spi.Packet) error {
	p.TB.Helper()
	for _, pk := range pkts {
		if err := p.Tx(pk.W, pk.R); err != nil {
			return err
		}
	}
	return nil
}

// Done fails the test if not every scripted Op was consumed.
func (p *Playback) Done() {
	p.TB.Helper()
	if p.pos != len(p.Ops) {
		p.TB.Fatalf("spitest: only %d of %d scripted ops were consumed", p.pos, len(p.Ops))
	}
}

// Pin is a scripted gpio.PinIO: Levels is read front-to-back by
// successive Read calls (the last value repeats once exhausted), and Out
// records every level it's driven to.
type Pin struct {
	Name    string
	Levels  []gpio.Level
	Written []gpio.Level

	pos int
}

func (p *Pin) String() string                                      { return p.Name }
func (p *Pin) Halt() error                                          { return nil }
func (p *Pin) Number() int                                          { return -1 }
func (p *Pin) Function() string                                     { return "" }
func (p *Pin) Pull() gpio.Pull                                      { return gpio.PullNoChange }
func (p *Pin) DefaultPull() gpio.Pull                               { return gpio.PullNoChange }
func (p *Pin) WaitForEdge(timeout time.Duration) bool               { return false }
func (p *Pin) In(pull gpio.Pull, edge gpio.Edge) error               { return nil }
func (p *Pin) PWM(duty gpio.Duty, freq physic.Frequency) error       { return nil }

func (p *Pin) Read() gpio.Level {
	if len(p.Levels) == 0 {
		return gpio.Low
	}
	if p.pos >= len(p.Levels) {
		return p.Levels[len(p.Levels)-1]
	}
	l := p.Levels[p.pos]
	p.pos++
	return l
}

func (p *Pin) Out(l gpio.Level) error {
	p.Written = append(p.Written, l)
	return nil
}

var _ gpio.PinIO = &Pin{}
