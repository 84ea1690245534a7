package wifinina

// PinMode selects how SetPinMode configures a coprocessor GPIO pin. These
// control the Nina module's own pins (e.g. the onboard LED), not the
// host's SPI/CS/busy/reset wiring.
type PinMode byte

const (
	PinInput       PinMode = 0
	PinOutput      PinMode = 1
	PinInputPullup PinMode = 2
	PinUnknown     PinMode = 255
)

// Temperature returns the coprocessor's onboard temperature sensor
// reading, in degrees Celsius.
func (d *Driver) Temperature() (float32, error) {
	var temp float32
	err := d.sendAndReceive(
		cmdGetTemperature, false, nil,
		false, []recvParam{recvFloat(&temp)},
	)
	return temp, err
}

// FirmwareVersion returns the coprocessor's firmware version string (e.g.
// "1.7.4").
func (d *Driver) FirmwareVersion() (string, error) {
	var buf [10]byte
	var n int
	err := d.sendAndReceive(
		cmdGetFirmwareVersion, false, nil,
		false, []recvParam{recvBuffer(buf[:], &n)},
	)
	if err != nil {
		return "", err
	}
	if n > 0 && buf[n-1] == 0 {
		n--
	}
	return string(buf[:n]), nil
}

// SetDebug enables or disables the coprocessor's own debug output.
func (d *Driver) SetDebug(enabled bool) error {
	var b byte
	if enabled {
		b = 1
	}
	return d.sendAndReceive(
		cmdSetDebug, false, []sendParam{paramByte(b)},
		false, []recvParam{recvAck()},
	)
}

// SetPinMode configures one of the coprocessor's own GPIO pins.
func (d *Driver) SetPinMode(pin byte, mode PinMode) error {
	return d.sendAndReceive(
		cmdSetPinMode, false, []sendParam{paramByte(pin), paramByte(byte(mode))},
		false, []recvParam{recvAck()},
	)
}

// DigitalWrite drives one of the coprocessor's own GPIO pins high or low.
func (d *Driver) DigitalWrite(pin byte, high bool) error {
	var v byte
	if high {
		v = 1
	}
	return d.sendAndReceive(
		cmdSetDigitalWrite, false, []sendParam{paramByte(pin), paramByte(v)},
		false, []recvParam{recvAck()},
	)
}

// AnalogWrite writes a PWM duty cycle to one of the coprocessor's own
// pins.
func (d *Driver) AnalogWrite(pin byte, value byte) error {
	return d.sendAndReceive(
		cmdSetAnalogWrite, false, []sendParam{paramByte(pin), paramByte(value)},
		false, []recvParam{recvAck()},
	)
}
