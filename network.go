package wifinina

// NetworkInfo reports the coprocessor's current IP configuration.
type NetworkInfo struct {
	IP      [4]byte
	Netmask [4]byte
	Gateway [4]byte
}

// NetworkInfo returns the coprocessor's current IP, netmask, and gateway.
func (d *Driver) NetworkInfo() (NetworkInfo, error) {
	var info NetworkInfo
	err := d.sendAndReceive(
		cmdGetIPAddress, false, nil,
		false, []recvParam{
			recvByteArray(info.IP[:]),
			recvByteArray(info.Netmask[:]),
			recvByteArray(info.Gateway[:]),
		},
	)
	return info, err
}

// ResolveHostName asks the coprocessor to resolve name via DNS. It issues
// the request and fetch as two separate commands, matching the
// firmware's two-call design, and returns (zero, false, nil) if the
// lookup didn't resolve to anything rather than an error.
func (d *Driver) ResolveHostName(name string) (ip [4]byte, ok bool, err error) {
	if err = d.sendAndReceive(
		cmdRequestHostByName, false, []sendParam{paramBytes([]byte(name))},
		false, []recvParam{recvAck()},
	); err != nil {
		return ip, false, err
	}

	err = d.sendAndReceive(
		cmdGetHostByName, false, nil,
		false, []recvParam{recvByteArray(ip[:])},
	)
	if err != nil {
		return ip, false, err
	}
	if ip == ([4]byte{}) {
		return ip, false, nil
	}
	return ip, true, nil
}

// Ping sends an ICMP echo to ip with the given TTL and returns the
// round-trip time in milliseconds, mirroring the coprocessor's own
// little-endian reply convention for timing values.
func (d *Driver) Ping(ip [4]byte, ttl byte) (uint16, error) {
	var ms uint16
	err := d.sendAndReceive(
		cmdPing, false, []sendParam{paramBytes(ip[:]), paramByte(ttl)},
		false, []recvParam{recvLEWord(&ms)},
	)
	return ms, err
}
