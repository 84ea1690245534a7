package wifinina

import "testing"

func TestConnectTCPSuccess(t *testing.T) {
	const sockNum = 7
	getSocket := scriptPair(
		scriptSend(cmdGetSocket, false, nil),
		scriptRecv(cmdGetSocket, false, [][]byte{{sockNum}}),
	)
	startClient := scriptPair(
		scriptSend(cmdStartClientTCP, false, [][]byte{{10, 0, 0, 1}, {0x00, 0x50}, {sockNum}, {byte(ProtocolTCP)}}),
		scriptRecv(cmdStartClientTCP, false, [][]byte{{0x01}}),
	)
	status := scriptPair(
		scriptSend(cmdGetClientStateTCP, false, [][]byte{{sockNum}}),
		scriptRecv(cmdGetClientStateTCP, false, [][]byte{{byte(SocketEstablished)}}),
	)

	ops := scriptPair(scriptPair(getSocket, startClient), status)
	d, bus := newTestDriver(t, ops, busyIdleAck(6))

	cs, err := d.Connect(ProtocolTCP, Destination{IP: [4]byte{10, 0, 0, 1}}, 80)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if cs.sock.num != sockNum {
		t.Fatalf("socket num = %d, want %d", cs.sock.num, sockNum)
	}
	bus.Done()
}

func TestConnectTCPRejected(t *testing.T) {
	const sockNum = 3
	getSocket := scriptPair(
		scriptSend(cmdGetSocket, false, nil),
		scriptRecv(cmdGetSocket, false, [][]byte{{sockNum}}),
	)
	// Empty response param list: the OptionalByte slot finds paramCount
	// already exhausted and reports Present = false.
	startClient := scriptPair(
		scriptSend(cmdStartClientTCP, false, [][]byte{{10, 0, 0, 1}, {0x00, 0x50}, {sockNum}, {byte(ProtocolTCP)}}),
		scriptRecv(cmdStartClientTCP, false, nil),
	)

	ops := scriptPair(getSocket, startClient)
	d, bus := newTestDriver(t, ops, busyIdleAck(4))

	_, err := d.Connect(ProtocolTCP, Destination{IP: [4]byte{10, 0, 0, 1}}, 80)
	scErr, ok := err.(*SocketConnectionFailedError)
	if !ok {
		t.Fatalf("Connect err = %v, want *SocketConnectionFailedError", err)
	}
	if scErr.Status != SocketUnknownStatus {
		t.Fatalf("Status = %v, want SocketUnknownStatus", scErr.Status)
	}
	bus.Done()
}

func TestStartServer(t *testing.T) {
	const sockNum = 4
	getSocket := scriptPair(
		scriptSend(cmdGetSocket, false, nil),
		scriptRecv(cmdGetSocket, false, [][]byte{{sockNum}}),
	)
	startServer := scriptPair(
		scriptSend(cmdStartServerTCP, false, [][]byte{{0x1F, 0x90}, {sockNum}, {byte(ProtocolTCP)}}),
		scriptRecv(cmdStartServerTCP, false, [][]byte{{0x01}}),
	)
	d, bus := newTestDriver(t, scriptPair(getSocket, startServer), busyIdleAck(4))

	srv, err := d.StartServer(ProtocolTCP, 8080, nil)
	if err != nil {
		t.Fatalf("StartServer: %v", err)
	}
	if srv.Num() != sockNum {
		t.Fatalf("server socket num = %d, want %d", srv.Num(), sockNum)
	}
	bus.Done()
}

func TestAcceptNoClient(t *testing.T) {
	const sockNum = 4
	ops := scriptPair(
		scriptSend(cmdAvailableDataTCP, false, [][]byte{{sockNum}}),
		scriptRecv(cmdAvailableDataTCP, false, [][]byte{{0xFF, 0x00}}),
	)
	d, bus := newTestDriver(t, ops, busyIdleAck(2))
	srv := &ServerSocket{num: sockNum}

	_, err := d.Accept(srv)
	if err != ErrWouldBlock {
		t.Fatalf("Accept err = %v, want ErrWouldBlock", err)
	}
	bus.Done()
}

func TestAcceptClientConnected(t *testing.T) {
	const sockNum = 9
	ops := scriptPair(
		scriptSend(cmdAvailableDataTCP, false, [][]byte{{4}}),
		scriptRecv(cmdAvailableDataTCP, false, [][]byte{{sockNum, 0x00}}),
	)
	d, bus := newTestDriver(t, ops, busyIdleAck(2))
	srv := &ServerSocket{num: 4}

	cs, err := d.Accept(srv)
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if cs.sock.num != sockNum {
		t.Fatalf("accepted socket num = %d, want %d", cs.sock.num, sockNum)
	}
	bus.Done()
}

func TestSocketReadAvailable(t *testing.T) {
	const sockNum = 2
	payload := []byte("hi there")
	avail := scriptPair(
		scriptSend(cmdAvailableDataTCP, false, [][]byte{{sockNum}}),
		scriptRecv(cmdAvailableDataTCP, false, [][]byte{{byte(len(payload)), 0x00}}),
	)
	read := scriptPair(
		scriptSend(cmdGetDatabufTCP, true, [][]byte{{sockNum}, {byte(len(payload)), 0x00}}),
		scriptRecv(cmdGetDatabufTCP, true, [][]byte{payload}),
	)
	d, bus := newTestDriver(t, scriptPair(avail, read), busyIdleAck(4))

	buf := make([]byte, 16)
	n, err := d.socketRead(sockNum, buf)
	if err != nil {
		t.Fatalf("socketRead: %v", err)
	}
	if string(buf[:n]) != string(payload) {
		t.Fatalf("socketRead = %q, want %q", buf[:n], payload)
	}
	bus.Done()
}

func TestSocketWriteUDPAndSend(t *testing.T) {
	const sockNum = 6
	data := []byte("datagram")
	ackedWord := []byte{byte(len(data)), 0x00}
	write := scriptPair(
		scriptSend(cmdInsertDatabuf, true, [][]byte{{sockNum}, data}),
		scriptRecv(cmdInsertDatabuf, false, [][]byte{ackedWord}),
	)
	send := scriptPair(
		scriptSend(cmdSendUDPData, false, [][]byte{{sockNum}}),
		scriptRecv(cmdSendUDPData, false, [][]byte{{0x01, 0x00}}),
	)
	d, bus := newTestDriver(t, scriptPair(write, send), busyIdleAck(4))

	n, err := d.socketWriteUDP(sockNum, data)
	if err != nil {
		t.Fatalf("socketWriteUDP: %v", err)
	}
	if n != len(data) {
		t.Fatalf("socketWriteUDP = %d, want %d", n, len(data))
	}
	if err := d.socketSendUDP(sockNum); err != nil {
		t.Fatalf("socketSendUDP: %v", err)
	}
	bus.Done()
}
