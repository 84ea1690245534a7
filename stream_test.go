package wifinina

import (
	"io"
	"runtime"
	"testing"
	"time"

	"github.com/fionawhim/wifinina/internal/spitest"
)

const testSocketNum = 5

func TestConnectedSocketReadEOF(t *testing.T) {
	avail := scriptPair(
		scriptSend(cmdAvailableDataTCP, false, [][]byte{{testSocketNum}}),
		scriptRecv(cmdAvailableDataTCP, false, [][]byte{{0x00, 0x00}}),
	)
	status := scriptPair(
		scriptSend(cmdGetClientStateTCP, false, [][]byte{{testSocketNum}}),
		scriptRecv(cmdGetClientStateTCP, false, [][]byte{{byte(SocketClosed)}}),
	)

	d, bus := newTestDriver(t, scriptPair(avail, status), busyIdleAck(4))
	cs := &ConnectedSocket{d: d, sock: Socket{num: testSocketNum}}

	n, err := cs.Read(make([]byte, 16))
	if n != 0 || err != io.EOF {
		t.Fatalf("Read = (%d, %v), want (0, io.EOF)", n, err)
	}
	bus.Done()
}

func TestConnectedSocketReadWouldBlock(t *testing.T) {
	avail := scriptPair(
		scriptSend(cmdAvailableDataTCP, false, [][]byte{{testSocketNum}}),
		scriptRecv(cmdAvailableDataTCP, false, [][]byte{{0x00, 0x00}}),
	)
	status := scriptPair(
		scriptSend(cmdGetClientStateTCP, false, [][]byte{{testSocketNum}}),
		scriptRecv(cmdGetClientStateTCP, false, [][]byte{{byte(SocketEstablished)}}),
	)

	d, bus := newTestDriver(t, scriptPair(avail, status), busyIdleAck(4))
	cs := &ConnectedSocket{d: d, sock: Socket{num: testSocketNum}}

	_, err := cs.Read(make([]byte, 16))
	if err != ErrWouldBlock {
		t.Fatalf("Read err = %v, want ErrWouldBlock", err)
	}
	bus.Done()
}

func TestConnectedSocketCloseIsIdempotentAndIssuesStop(t *testing.T) {
	ops := scriptPair(
		scriptSend(cmdStopClientTCP, false, [][]byte{{testSocketNum}}),
		scriptRecv(cmdStopClientTCP, false, [][]byte{{0x01}}),
	)

	d, bus := newTestDriver(t, ops, busyIdleAck(2))
	cs := newFinalizedConnectedSocket(&ConnectedSocket{d: d, sock: Socket{num: testSocketNum}})

	if err := cs.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	// A second Close must not re-issue StopClientTcp.
	if err := cs.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	bus.Done()

	if _, err := cs.Read(make([]byte, 1)); err != ErrSocketClosed {
		t.Fatalf("Read after Close = %v, want ErrSocketClosed", err)
	}
}

// TestConnectedSocketFinalizerIssuesStop verifies the RAII guarantee that
// a ConnectedSocket dropped without Close still releases its coprocessor
// socket: allocating one, then letting it go out of scope and garbage
// collecting it, must produce a StopClientTcp on the bus just as an
// explicit Close would.
func TestConnectedSocketFinalizerIssuesStop(t *testing.T) {
	ops := scriptPair(
		scriptSend(cmdStopClientTCP, false, [][]byte{{testSocketNum}}),
		scriptRecv(cmdStopClientTCP, false, [][]byte{{0x01}}),
	)
	d, bus := newTestDriver(t, ops, busyIdleAck(2))

	func() {
		newFinalizedConnectedSocket(&ConnectedSocket{d: d, sock: Socket{num: testSocketNum}})
	}()

	for i := 0; i < 20; i++ {
		runtime.GC()
		time.Sleep(5 * time.Millisecond)
	}
	bus.Done()
}
