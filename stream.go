package wifinina

import (
	"io"
	"log"
	"runtime"
)

// ConnectedSocket is an open TCP (or TLS) connection on the coprocessor.
// It implements io.Reader and io.Writer.
//
// A ConnectedSocket should be closed explicitly with Close; a finalizer
// is registered as a safety net, issuing StopClientTcp itself (and
// logging any error from doing so) if one is garbage collected first,
// mirroring the os.File/net.Conn finalizer idiom since Go has no
// equivalent to the original driver's Drop-triggered automatic close.
type ConnectedSocket struct {
	d      *Driver
	sock   Socket
	closed bool
}

// newFinalizedConnectedSocket wraps cs with a finalizer; separated from
// the ConnectedSocket constructors so tests can skip it.
func newFinalizedConnectedSocket(cs *ConnectedSocket) *ConnectedSocket {
	runtime.SetFinalizer(cs, func(cs *ConnectedSocket) {
		if cs.closed {
			return
		}
		if err := cs.d.socketClose(cs.sock.num); err != nil {
			log.Printf("wifinina: socket %d garbage collected without Close: close failed: %v", cs.sock.num, err)
		}
	})
	return cs
}

// Read implements io.Reader. It returns ErrWouldBlock if no data is
// currently available and the peer hasn't closed the connection, or
// io.EOF once the peer has closed it — a deliberate Go-idiomatic
// adaptation of the original's Ok(0) (see SPEC_FULL.md §6).
func (c *ConnectedSocket) Read(p []byte) (int, error) {
	if c.closed {
		return 0, ErrSocketClosed
	}
	n, err := c.d.socketRead(c.sock.num, p)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

// Write implements io.Writer.
func (c *ConnectedSocket) Write(p []byte) (int, error) {
	if c.closed {
		return 0, ErrSocketClosed
	}
	return c.d.socketWrite(c.sock.num, p)
}

// Suspend releases this ConnectedSocket's hold on the underlying socket
// without closing it coprocessor-side, returning the raw Socket so a
// caller can hand it to Driver.Resume later (e.g. across a suspend/resume
// boundary in a cooperative scheduler).
func (c *ConnectedSocket) Suspend() Socket {
	c.closed = true
	runtime.SetFinalizer(c, nil)
	return c.sock
}

// Resume converts a previously-Suspended Socket back into a
// ConnectedSocket, without re-running the connection handshake.
func (d *Driver) Resume(sock Socket) *ConnectedSocket {
	return &ConnectedSocket{d: d, sock: sock}
}

// Close issues StopClientTcp for this socket. It is safe to call more
// than once.
func (c *ConnectedSocket) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	runtime.SetFinalizer(c, nil)
	return c.d.socketClose(c.sock.num)
}

// Socket reports the underlying handle, primarily so callers can read
// Num() for logging.
func (c *ConnectedSocket) Socket() Socket { return c.sock }
