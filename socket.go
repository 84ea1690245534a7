package wifinina

import "time"

// Protocol selects the transport a socket speaks.
type Protocol byte

const (
	ProtocolTCP           Protocol = 0
	ProtocolUDP           Protocol = 1
	ProtocolTLS           Protocol = 2
	ProtocolUDPMulticast  Protocol = 3
)

// SocketStatus mirrors the coprocessor's per-socket TCP state machine.
type SocketStatus byte

const (
	SocketClosed        SocketStatus = 0
	SocketListen        SocketStatus = 1
	SocketSynSent       SocketStatus = 2
	SocketSynReceived   SocketStatus = 3
	SocketEstablished   SocketStatus = 4
	SocketFinWait1      SocketStatus = 5
	SocketFinWait2      SocketStatus = 6
	SocketCloseWait     SocketStatus = 7
	SocketClosing       SocketStatus = 8
	SocketLastAck       SocketStatus = 9
	SocketTimeWait      SocketStatus = 10
	SocketUnknownStatus SocketStatus = 255
)

func (s SocketStatus) String() string {
	switch s {
	case SocketClosed:
		return "closed"
	case SocketListen:
		return "listen"
	case SocketSynSent:
		return "syn sent"
	case SocketSynReceived:
		return "syn received"
	case SocketEstablished:
		return "established"
	case SocketFinWait1:
		return "fin wait 1"
	case SocketFinWait2:
		return "fin wait 2"
	case SocketCloseWait:
		return "close wait"
	case SocketClosing:
		return "closing"
	case SocketLastAck:
		return "last ack"
	case SocketTimeWait:
		return "time wait"
	default:
		return "unknown"
	}
}

// noSocketAvailable is the sentinel handle value the coprocessor returns
// when every one of its 255 socket slots is in use.
const noSocketAvailable = 255

// maxWriteBytes bounds a single SendDataTcp/InsertDatabuf chunk. The
// coprocessor's command buffer is 4092 bytes; 4000 leaves headroom for
// framing overhead, matching the original driver's MAX_WRITE_BYTES.
const maxWriteBytes = 4000

// connectPollDelay and connectPollTries bound how long socketOpen waits for a TCP handshake
// to complete: 300 attempts at 10ms apiece, 3 seconds total.
const (
	connectPollDelay = 10 * time.Millisecond
	connectPollTries = 300
)

// Socket is a handle to one of the coprocessor's socket slots, not yet
// connected. It is returned by NewSocket and consumed by Connect.
type Socket struct {
	num byte
}

// Num reports the coprocessor-side socket number.
func (s Socket) Num() byte { return s.num }

// ServerSocket is a listening (server-role) socket handle.
type ServerSocket struct {
	num byte
}

func (s ServerSocket) Num() byte { return s.num }

// NewSocket asks the coprocessor for a free socket handle.
func (d *Driver) NewSocket() (Socket, error) {
	var num byte
	err := d.sendAndReceive(
		cmdGetSocket, false, nil,
		false, []recvParam{recvByte(&num)},
	)
	if err != nil {
		return Socket{}, err
	}
	if num == noSocketAvailable {
		return Socket{}, ErrNoSocketAvailable
	}
	return Socket{num: num}, nil
}

// socketStatus returns the TCP state of socket num.
func (d *Driver) socketStatus(num byte) (SocketStatus, error) {
	var status byte
	err := d.sendAndReceive(
		cmdGetClientStateTCP, false, []sendParam{paramByte(num)},
		false, []recvParam{recvByte(&status)},
	)
	return SocketStatus(status), err
}

// Destination is the target of a TCP connection: either a literal IP or a
// hostname the host must resolve first (the coprocessor's own
// hostname-accepting connect variant is unreliable in the field, so DNS
// is always done host-side and a literal IP sent on the wire).
type Destination struct {
	IP       [4]byte
	Hostname string
}

func (d *Driver) resolveDestination(dest Destination) ([4]byte, error) {
	if dest.Hostname == "" {
		return dest.IP, nil
	}
	ip, ok, err := d.ResolveHostName(dest.Hostname)
	if err != nil {
		return [4]byte{}, err
	}
	if !ok {
		return [4]byte{}, &ConnectionFailedError{Status: WifiUnknownStatus}
	}
	return ip, nil
}

// socketOpen issues StartClientTcp against an already-allocated socket,
// then polls socketStatus (every 10ms, up to 3s) until the connection
// reaches SocketEstablished.
func (d *Driver) socketOpen(sock Socket, protocol Protocol, dest Destination, port uint16) error {
	ip, err := d.resolveDestination(dest)
	if err != nil {
		return err
	}

	var result OptionalByte
	if err := d.sendAndReceive(
		cmdStartClientTCP, false,
		[]sendParam{paramBytes(ip[:]), paramWord(port), paramByte(sock.num), paramByte(byte(protocol))},
		false, []recvParam{recvOptionalByte(&result)},
	); err != nil {
		return err
	}
	if !result.Present {
		return &SocketConnectionFailedError{Status: SocketUnknownStatus}
	}

	var lastStatus SocketStatus
	for i := 0; i < connectPollTries; i++ {
		status, err := d.socketStatus(sock.num)
		if err != nil {
			return err
		}
		lastStatus = status
		if status == SocketEstablished {
			return nil
		}
		if err := d.wait(connectPollDelay); err != nil {
			return err
		}
	}
	return &SocketConnectionFailedError{Status: lastStatus}
}

// Connect allocates a socket and opens a TCP (or TLS) connection to dest,
// returning a ConnectedSocket once the handshake completes.
func (d *Driver) Connect(protocol Protocol, dest Destination, port uint16) (*ConnectedSocket, error) {
	sock, err := d.NewSocket()
	if err != nil {
		return nil, err
	}
	if err := d.socketOpen(sock, protocol, dest, port); err != nil {
		return nil, err
	}
	return newFinalizedConnectedSocket(&ConnectedSocket{d: d, sock: sock}), nil
}

// socketClose issues StopClientTcp and consumes the socket handle.
func (d *Driver) socketClose(num byte) error {
	return d.sendAndReceive(
		cmdStopClientTCP, false, []sendParam{paramByte(num)},
		false, []recvParam{recvAck()},
	)
}

// StartServer allocates a socket and puts it into listening mode on port,
// optionally joining multicastIP. The coprocessor has no corresponding
// "stop server" command: the allocation is permanent for the life of the
// connection to the coprocessor.
func (d *Driver) StartServer(protocol Protocol, port uint16, multicastIP *[4]byte) (*ServerSocket, error) {
	sock, err := d.NewSocket()
	if err != nil {
		return nil, err
	}

	var params []sendParam
	if multicastIP != nil {
		params = []sendParam{paramBytes(multicastIP[:]), paramWord(port), paramByte(sock.num), paramByte(byte(protocol))}
	} else {
		params = []sendParam{paramWord(port), paramByte(sock.num), paramByte(byte(protocol))}
	}
	if err := d.sendAndReceive(
		cmdStartServerTCP, false, params,
		false, []recvParam{recvAck()},
	); err != nil {
		return nil, err
	}
	srv := ServerSocket(sock)
	return &srv, nil
}

// Accept checks whether a client has connected to server, returning
// ErrWouldBlock if none has yet.
func (d *Driver) Accept(server *ServerSocket) (*ConnectedSocket, error) {
	var num uint16
	if err := d.sendAndReceive(
		cmdAvailableDataTCP, false, []sendParam{paramByte(server.num)},
		false, []recvParam{recvLEWord(&num)},
	); err != nil {
		return nil, err
	}
	if num == noSocketAvailable {
		return nil, ErrWouldBlock
	}
	return newFinalizedConnectedSocket(&ConnectedSocket{d: d, sock: Socket{num: byte(num)}}), nil
}

// socketWrite chunks data into maxWriteBytes pieces and sends each via
// SendDataTcp, which is 16-bit length framed.
func (d *Driver) socketWrite(num byte, data []byte) (int, error) {
	total := 0
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxWriteBytes {
			chunk = chunk[:maxWriteBytes]
		}
		var written uint16
		if err := d.sendAndReceive(
			cmdSendDataTCP, true, []sendParam{paramByte(num), paramBytes(chunk)},
			false, []recvParam{recvLEWord(&written)},
		); err != nil {
			return total, err
		}
		total += int(written)
		if int(written) < len(chunk) {
			return total, nil
		}
		data = data[len(chunk):]
	}
	return total, nil
}

// socketRead returns up to len(buf) bytes currently available on num. If
// nothing is available and the socket is still open, it returns
// ErrWouldBlock; if the peer has closed the connection, it returns
// (0, nil) to let ConnectedSocket.Read translate that into io.EOF.
func (d *Driver) socketRead(num byte, buf []byte) (int, error) {
	var available uint16
	if err := d.sendAndReceive(
		cmdAvailableDataTCP, false, []sendParam{paramByte(num)},
		false, []recvParam{recvLEWord(&available)},
	); err != nil {
		return 0, err
	}
	if available == 0 {
		status, err := d.socketStatus(num)
		if err != nil {
			return 0, err
		}
		if status == SocketClosed {
			return 0, nil
		}
		return 0, ErrWouldBlock
	}

	readLimit := int(available)
	if readLimit > len(buf) {
		readLimit = len(buf)
	}

	var n int
	if err := d.sendAndReceive(
		cmdGetDatabufTCP, true, []sendParam{paramByte(num), paramLEWord(uint16(readLimit))},
		true, []recvParam{recvBuffer(buf, &n)},
	); err != nil {
		return 0, err
	}
	return n, nil
}

// socketWriteUDP buffers data for a subsequent UDP send via InsertDatabuf,
// chunked the same way TCP writes are.
func (d *Driver) socketWriteUDP(num byte, data []byte) (int, error) {
	total := 0
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxWriteBytes {
			chunk = chunk[:maxWriteBytes]
		}
		var written uint16
		if err := d.sendAndReceive(
			cmdInsertDatabuf, true, []sendParam{paramByte(num), paramBytes(chunk)},
			false, []recvParam{recvLEWord(&written)},
		); err != nil {
			return total, err
		}
		total += int(written)
		if int(written) < len(chunk) {
			return total, nil
		}
		data = data[len(chunk):]
	}
	return total, nil
}

// socketSendUDP flushes a datagram buffered by socketWriteUDP.
func (d *Driver) socketSendUDP(num byte) error {
	var result uint16
	return d.sendAndReceive(
		cmdSendUDPData, false, []sendParam{paramByte(num)},
		false, []recvParam{recvLEWord(&result)},
	)
}
