package wifinina

import "time"

// WifiStatus mirrors the coprocessor's network association state
// machine.
type WifiStatus byte

const (
	WifiIdle             WifiStatus = 0
	WifiNoSsidAvailable  WifiStatus = 1
	WifiScanCompleted    WifiStatus = 2
	WifiConnected        WifiStatus = 3
	WifiConnectFailed    WifiStatus = 4
	WifiConnectionLost   WifiStatus = 5
	WifiDisconnected     WifiStatus = 6
	WifiApListening      WifiStatus = 7
	WifiApConnected      WifiStatus = 8
	WifiApFailed         WifiStatus = 9
	WifiUnknownStatus    WifiStatus = 255
)

func (s WifiStatus) String() string {
	switch s {
	case WifiIdle:
		return "idle"
	case WifiNoSsidAvailable:
		return "no SSID available"
	case WifiScanCompleted:
		return "scan completed"
	case WifiConnected:
		return "connected"
	case WifiConnectFailed:
		return "connect failed"
	case WifiConnectionLost:
		return "connection lost"
	case WifiDisconnected:
		return "disconnected"
	case WifiApListening:
		return "AP listening"
	case WifiApConnected:
		return "AP connected"
	case WifiApFailed:
		return "AP failed"
	default:
		return "unknown status"
	}
}

// connectPollInterval and connectPollAttempts set the Wi-Fi association
// poll budget: 15 one-second polls. This is a deliberate departure from
// the original source's 10-iteration loop — see DESIGN.md.
const (
	connectPollInterval = time.Second
	connectPollAttempts = 15
)

// Status returns the coprocessor's current Wi-Fi association state.
func (d *Driver) Status() (WifiStatus, error) {
	var status byte
	err := d.sendAndReceive(
		cmdGetConnectionStatus, false, nil,
		false, []recvParam{recvByte(&status)},
	)
	return WifiStatus(status), err
}

// Connect associates with an access point, optionally with a password,
// and polls for up to 15 seconds (once per second) for the association to
// settle, returning early if the coprocessor reports a terminal failure
// status.
func (d *Driver) Connect(ssid string, password string) error {
	if password == "" {
		if err := d.sendAndReceive(
			cmdSetNetwork, false, []sendParam{paramBytes([]byte(ssid))},
			false, []recvParam{recvAck()},
		); err != nil {
			return err
		}
	} else {
		if err := d.sendAndReceive(
			cmdSetNetworkAndPassphrase, false,
			[]sendParam{paramBytes([]byte(ssid)), paramBytes([]byte(password))},
			false, []recvParam{recvAck()},
		); err != nil {
			return err
		}
	}

	var lastStatus WifiStatus
	for i := 0; i < connectPollAttempts; i++ {
		status, err := d.Status()
		if err != nil {
			return err
		}
		lastStatus = status
		switch status {
		case WifiConnected:
			return nil
		case WifiConnectFailed, WifiConnectionLost, WifiDisconnected:
			return &ConnectionFailedError{Status: status}
		}
		if err := d.wait(connectPollInterval); err != nil {
			return err
		}
	}
	return &ConnectionFailedError{Status: lastStatus}
}

// Disconnect tears down any current Wi-Fi association.
func (d *Driver) Disconnect() error {
	return d.sendAndReceive(
		cmdDisconnect, false, nil,
		false, []recvParam{recvAck()},
	)
}

// CreateAccessPoint puts the coprocessor into AP mode with the given
// network name, optional password, and channel, polling for up to 15
// seconds for the AP to come up.
func (d *Driver) CreateAccessPoint(name string, password string, channel byte) error {
	if password == "" {
		if err := d.sendAndReceive(
			cmdSetAPNetwork, false,
			[]sendParam{paramBytes([]byte(name)), paramByte(channel)},
			false, []recvParam{recvAck()},
		); err != nil {
			return err
		}
	} else {
		if err := d.sendAndReceive(
			cmdSetAPPassphrase, false,
			[]sendParam{paramBytes([]byte(name)), paramBytes([]byte(password)), paramByte(channel)},
			false, []recvParam{recvAck()},
		); err != nil {
			return err
		}
	}

	var lastStatus WifiStatus
	for i := 0; i < connectPollAttempts; i++ {
		status, err := d.Status()
		if err != nil {
			return err
		}
		lastStatus = status
		switch status {
		case WifiApListening, WifiApConnected:
			return nil
		case WifiApFailed:
			return &ConnectionFailedError{Status: status}
		}
		if err := d.wait(connectPollInterval); err != nil {
			return err
		}
	}
	return &ConnectionFailedError{Status: lastStatus}
}

// CurrentSSID returns the SSID of the network the coprocessor is
// currently associated with.
func (d *Driver) CurrentSSID() (string, error) {
	var buf [33]byte
	var n int
	err := d.sendAndReceive(
		cmdGetCurrentSSID, false, nil,
		false, []recvParam{recvBuffer(buf[:], &n)},
	)
	if err != nil {
		return "", err
	}
	return string(buf[:n]), nil
}

// CurrentRSSI returns the received signal strength, in dBm, of the
// current association, as a signed 32-bit value transmitted little-endian.
func (d *Driver) CurrentRSSI() (int32, error) {
	var buf [4]byte
	var n int
	err := d.sendAndReceive(
		cmdGetCurrentRSSI, false, nil,
		false, []recvParam{recvBuffer(buf[:], &n)},
	)
	if err != nil {
		return 0, err
	}
	return int32(uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16 | uint32(buf[3])<<24), nil
}

// ScanResult is a single access point discovered by Scan.
type ScanResult struct {
	SSID string
}

const maxScanResults = 10

// Scan starts a network scan and returns the access points found, up to
// maxScanResults entries.
//
// ScanNetworks' response carries exactly as many parameters as networks
// found, not a fixed count, so unlike every other command it can't be
// decoded with the generic recvParam-slot reader (that would reject a
// response with fewer than maxScanResults SSIDs as a MissingParamError).
// Scan reads its response with open-coded framing instead.
func (d *Driver) Scan() ([]ScanResult, error) {
	if err := d.sendAndReceive(
		cmdStartScanNetworks, false, nil,
		false, []recvParam{recvAck()},
	); err != nil {
		return nil, err
	}

	if err := d.sendCommand(cmdScanNetworks, false, nil); err != nil {
		return nil, err
	}

	bus, err := d.cs.selectBus(d.conn, d.timer)
	if err != nil {
		return nil, err
	}
	defer bus.Close()

	if err := waitForResponseStart(bus, d.timer); err != nil {
		return nil, err
	}
	if err := expectByte(bus, byte(cmdScanNetworks)|byte(replyFlag)); err != nil {
		return nil, err
	}

	count, err := transferByte(bus)
	if err != nil {
		return nil, err
	}
	if count > maxScanResults {
		return nil, &MismatchedParamSizeError{Expected: maxScanResults, Got: int(count)}
	}

	results := make([]ScanResult, 0, count)
	for i := byte(0); i < count; i++ {
		n, err := transferByte(bus)
		if err != nil {
			return nil, err
		}
		ssid := make([]byte, n)
		for j := range ssid {
			b, err := transferByte(bus)
			if err != nil {
				return nil, err
			}
			ssid[j] = b
		}
		if n > 0 {
			results = append(results, ScanResult{SSID: string(ssid)})
		}
	}

	return results, expectByte(bus, byte(cmdEnd))
}

// MACAddress returns the coprocessor's 6-byte hardware address.
func (d *Driver) MACAddress() ([6]byte, error) {
	var mac [6]byte
	err := d.sendAndReceive(
		cmdGetMACAddress, false, []sendParam{paramByte(0xFF)},
		false, []recvParam{recvByteArray(mac[:])},
	)
	return mac, err
}
