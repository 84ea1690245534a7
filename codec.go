package wifinina

import (
	"encoding/binary"
	"math"
	"time"
)

// responseStartTimeout bounds how long receiveResponse will wait for the
// coprocessor to begin replying once the bus has been selected.
const responseStartTimeout = 100 * time.Millisecond

// transferByte shifts a single byte out (0x00) and returns the byte
// shifted back in. Every response byte this package reads goes through a
// single-byte Tx call like this one, matching the original driver's
// byte-at-a-time SPI helper; command frames are written with multi-byte
// Tx calls.
func transferByte(bus *scopedBus) (byte, error) {
	var rx [1]byte
	if err := bus.Tx([]byte{0x00}, rx[:]); err != nil {
		return 0, err
	}
	return rx[0], nil
}

func writeByte(bus *scopedBus, b byte) error {
	return bus.Tx([]byte{b}, nil)
}

// sendParam is a single outbound command parameter.
type sendParam struct {
	kind sendParamKind
	b    byte
	w    uint16
	raw  []byte
}

type sendParamKind int

const (
	spByte sendParamKind = iota
	spWord
	spLEWord
	spBytes
)

func paramByte(b byte) sendParam      { return sendParam{kind: spByte, b: b} }
func paramWord(w uint16) sendParam    { return sendParam{kind: spWord, w: w} }
func paramLEWord(w uint16) sendParam  { return sendParam{kind: spLEWord, w: w} }
func paramBytes(b []byte) sendParam   { return sendParam{kind: spBytes, raw: b} }

func (p sendParam) payload() []byte {
	switch p.kind {
	case spByte:
		return []byte{p.b}
	case spWord:
		var buf [2]byte
		binary.BigEndian.PutUint16(buf[:], p.w)
		return buf[:]
	case spLEWord:
		var buf [2]byte
		binary.LittleEndian.PutUint16(buf[:], p.w)
		return buf[:]
	case spBytes:
		return p.raw
	default:
		return nil
	}
}

// recvParam is a single expected inbound response parameter slot.
type recvParam struct {
	kind recvParamKind

	expect byte // expectByte
	byteP  *byte
	optP   *OptionalByte
	wordP  *uint16 // word / leWord
	arr    []byte  // byteArray, exact size
	buf    []byte  // buffer, destination (may be shorter than declared length)
	bufN   *int    // buffer, bytes actually copied
	floatP *float32
}

// OptionalByte is the destination for a recvOptionalByte slot: Present is
// false when the coprocessor's response didn't include this trailing
// parameter at all.
type OptionalByte struct {
	Value   byte
	Present bool
}

type recvParamKind int

const (
	rpAck recvParamKind = iota
	rpByte
	rpOptionalByte
	rpExpectByte
	rpWord
	rpLEWord
	rpByteArray
	rpBuffer
	rpFloat
)

func recvAck() recvParam                    { return recvParam{kind: rpAck} }
func recvByte(dst *byte) recvParam          { return recvParam{kind: rpByte, byteP: dst} }
func recvOptionalByte(dst *OptionalByte) recvParam {
	return recvParam{kind: rpOptionalByte, optP: dst}
}
func recvExpectByte(b byte) recvParam       { return recvParam{kind: rpExpectByte, expect: b} }
func recvWord(dst *uint16) recvParam        { return recvParam{kind: rpWord, wordP: dst} }
func recvLEWord(dst *uint16) recvParam      { return recvParam{kind: rpLEWord, wordP: dst} }
func recvByteArray(dst []byte) recvParam    { return recvParam{kind: rpByteArray, arr: dst} }
func recvBuffer(dst []byte, n *int) recvParam {
	return recvParam{kind: rpBuffer, buf: dst, bufN: n}
}
func recvFloat(dst *float32) recvParam { return recvParam{kind: rpFloat, floatP: dst} }

// sendCommand selects the bus, writes the command frame (Start, command
// byte, parameter count, length-prefixed parameters, End), then pads with
// zero bytes to a 4-byte boundary, and deselects.
func (d *Driver) sendCommand(cmd ninaCommand, use16BitLength bool, params []sendParam) error {
	bus, err := d.cs.selectBus(d.conn, d.timer)
	if err != nil {
		return err
	}
	defer bus.Close()

	written := 0
	write := func(b []byte) error {
		if err := bus.Tx(b, nil); err != nil {
			return err
		}
		written += len(b)
		return nil
	}

	if err := write([]byte{byte(cmdStart), byte(cmd) &^ byte(replyFlag), byte(len(params))}); err != nil {
		return err
	}
	for _, p := range params {
		payload := p.payload()
		if use16BitLength {
			var lenBuf [2]byte
			binary.BigEndian.PutUint16(lenBuf[:], uint16(len(payload)))
			if err := write(lenBuf[:]); err != nil {
				return err
			}
		} else {
			if err := write([]byte{byte(len(payload))}); err != nil {
				return err
			}
		}
		if err := write(payload); err != nil {
			return err
		}
	}
	if err := write([]byte{byte(cmdEnd)}); err != nil {
		return err
	}
	for written%4 != 0 {
		if err := write([]byte{0x00}); err != nil {
			return err
		}
	}
	return nil
}

// receiveResponse selects the bus, waits for the Start token, verifies the
// echoed command byte, and decodes each slot in order, then deselects.
func (d *Driver) receiveResponse(cmd ninaCommand, use16BitLength bool, slots []recvParam) error {
	bus, err := d.cs.selectBus(d.conn, d.timer)
	if err != nil {
		return err
	}
	defer bus.Close()

	if err := waitForResponseStart(bus, d.timer); err != nil {
		return err
	}
	if err := expectByte(bus, byte(cmd)|byte(replyFlag)); err != nil {
		return err
	}

	countByte, err := transferByte(bus)
	if err != nil {
		return err
	}
	paramCount := countByte
	paramIdx := uint8(0)

	readLen := func() (int, error) {
		if use16BitLength {
			hi, err := transferByte(bus)
			if err != nil {
				return 0, err
			}
			lo, err := transferByte(bus)
			if err != nil {
				return 0, err
			}
			return int(hi)<<8 | int(lo), nil
		}
		b, err := transferByte(bus)
		if err != nil {
			return 0, err
		}
		return int(b), nil
	}

	readExact := func(n int) ([]byte, error) {
		out := make([]byte, n)
		for i := range out {
			b, err := transferByte(bus)
			if err != nil {
				return nil, err
			}
			out[i] = b
		}
		return out, nil
	}

	for i, slot := range slots {
		if slot.kind == rpOptionalByte && paramIdx == paramCount {
			slot.optP.Present = false
			continue
		}
		if paramIdx >= paramCount {
			return &MissingParamError{Index: uint8(i)}
		}
		n, err := readLen()
		if err != nil {
			return err
		}
		data, err := readExact(n)
		if err != nil {
			return err
		}
		paramIdx++

		switch slot.kind {
		case rpAck:
			if n != 1 {
				return &MismatchedParamSizeError{Expected: 1, Got: n}
			}
			if data[0] != 0x01 {
				return &UnexpectedResponseError{Expected: 0x01, Got: data[0]}
			}
		case rpByte:
			if n != 1 {
				return &MismatchedParamSizeError{Expected: 1, Got: n}
			}
			*slot.byteP = data[0]
		case rpOptionalByte:
			if n != 1 {
				return &MismatchedParamSizeError{Expected: 1, Got: n}
			}
			slot.optP.Value = data[0]
			slot.optP.Present = true
		case rpExpectByte:
			if n != 1 {
				return &MismatchedParamSizeError{Expected: 1, Got: n}
			}
			if data[0] != slot.expect {
				return &UnexpectedResponseError{Expected: slot.expect, Got: data[0]}
			}
		case rpWord:
			if n != 2 {
				return &MismatchedParamSizeError{Expected: 2, Got: n}
			}
			*slot.wordP = binary.BigEndian.Uint16(data)
		case rpLEWord:
			if n != 2 {
				return &MismatchedParamSizeError{Expected: 2, Got: n}
			}
			*slot.wordP = binary.LittleEndian.Uint16(data)
		case rpByteArray:
			if n != len(slot.arr) {
				return &MismatchedParamSizeError{Expected: len(slot.arr), Got: n}
			}
			copy(slot.arr, data)
		case rpBuffer:
			copied := copy(slot.buf, data)
			*slot.bufN = copied
		case rpFloat:
			if n != 4 {
				return &MismatchedParamSizeError{Expected: 4, Got: n}
			}
			*slot.floatP = math.Float32frombits(binary.LittleEndian.Uint32(data))
		}
	}

	if paramIdx < paramCount {
		return &UnexpectedParamError{Count: paramCount}
	}
	return expectByte(bus, byte(cmdEnd))
}

// sendAndReceive is the common case: send a command, then read its
// response. The bus is acquired and released separately for each half,
// matching the original driver (the coprocessor may need to do work
// between accepting a command and having a response ready).
func (d *Driver) sendAndReceive(cmd ninaCommand, use16BitSend bool, sendParams []sendParam, use16BitRecv bool, recvSlots []recvParam) error {
	if err := d.sendCommand(cmd, use16BitSend, sendParams); err != nil {
		return err
	}
	return d.receiveResponse(cmd, use16BitRecv, recvSlots)
}

func waitForResponseStart(bus *scopedBus, timer Timer) error {
	var respErr error
	err := forEach(timer, responseStartTimeout, func() (bool, error) {
		b, err := transferByte(bus)
		if err != nil {
			return false, err
		}
		switch ninaCommand(b) {
		case cmdStart:
			return true, nil
		case cmdError:
			respErr = ErrErrorResponse
			return true, nil
		default:
			return false, nil
		}
	})
	if err != nil {
		return err
	}
	return respErr
}

func expectByte(bus *scopedBus, want byte) error {
	got, err := transferByte(bus)
	if err != nil {
		return err
	}
	if got != want {
		return &UnexpectedResponseError{Expected: want, Got: got}
	}
	return nil
}
