package wifinina

import "fmt"

// Sentinel errors returned by this package. Callers should compare with
// errors.Is.
var (
	// ErrWouldBlock is returned by non-blocking operations (socket reads,
	// server accepts, timer waits) that have no data ready yet.
	ErrWouldBlock = fmt.Errorf("wifinina: would block")

	// ErrTimeout is returned when a bounded poll loop exhausts its timer
	// without the awaited condition becoming true.
	ErrTimeout = fmt.Errorf("wifinina: timed out")

	// ErrNoSocketAvailable is returned when the coprocessor has no free
	// socket handle (all 255 are in use).
	ErrNoSocketAvailable = fmt.Errorf("wifinina: no socket available")

	// ErrSocketClosed is returned by operations attempted on a socket that
	// has already been closed or suspended.
	ErrSocketClosed = fmt.Errorf("wifinina: socket closed")

	// ErrErrorResponse is returned when the coprocessor replies with the
	// Error framing token instead of Start.
	ErrErrorResponse = fmt.Errorf("wifinina: coprocessor reported an error")
)

// ChipSelectTimeoutError is returned when the busy pin does not settle to
// the expected level before the bus-acquisition timer expires.
type ChipSelectTimeoutError struct {
	// WaitingFor is the busy level the caller was waiting for.
	WaitingFor bool
}

func (e *ChipSelectTimeoutError) Error() string {
	level := "low"
	if e.WaitingFor {
		level = "high"
	}
	return fmt.Sprintf("wifinina: busy pin never went %s", level)
}

// UnexpectedResponseError is returned when a response byte does not match
// what the command framing expects (e.g. the echoed command byte).
type UnexpectedResponseError struct {
	Expected, Got byte
}

func (e *UnexpectedResponseError) Error() string {
	return fmt.Sprintf("wifinina: expected response byte 0x%02x, got 0x%02x", e.Expected, e.Got)
}

// MissingParamError is returned when the coprocessor's response has fewer
// parameters than the command requires.
type MissingParamError struct {
	Index uint8
}

func (e *MissingParamError) Error() string {
	return fmt.Sprintf("wifinina: response missing parameter %d", e.Index)
}

// UnexpectedParamError is returned when the coprocessor's response has more
// parameters than the command expects.
type UnexpectedParamError struct {
	Count uint8
}

func (e *UnexpectedParamError) Error() string {
	return fmt.Sprintf("wifinina: response has %d parameters, more than expected", e.Count)
}

// MismatchedParamSizeError is returned when a fixed-size response
// parameter (an ack, byte, word, float or ByteArray slot) doesn't match
// the size the coprocessor declares, and by Scan when the response
// reports more networks than it can hold.
type MismatchedParamSizeError struct {
	Expected, Got int
}

func (e *MismatchedParamSizeError) Error() string {
	return fmt.Sprintf("wifinina: parameter size mismatch: expected %d bytes, got %d", e.Expected, e.Got)
}

// ConnectionFailedError reports a terminal Wi-Fi association failure.
type ConnectionFailedError struct {
	Status WifiStatus
}

func (e *ConnectionFailedError) Error() string {
	return fmt.Sprintf("wifinina: wifi connection failed: %s", e.Status)
}

// SocketConnectionFailedError reports a terminal TCP connection failure.
type SocketConnectionFailedError struct {
	Status SocketStatus
}

func (e *SocketConnectionFailedError) Error() string {
	return fmt.Sprintf("wifinina: socket connection failed: %s", e.Status)
}
