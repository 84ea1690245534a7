// Package wifinina drives the SPI coprocessor used by Arduino WiFiNINA
// modules: a command/response protocol over SPI, gated by a busy-status
// GPIO pin, exposing Wi-Fi association, DNS lookups, and a small TCP/UDP
// socket manager on top of a fixed number of coprocessor-side socket
// handles.
//
// A Driver is constructed from an spi.Conn and the chip select, busy, and
// (optional) reset pins that wire it to the host:
//
//	d, err := wifinina.New(conn, csPin, busyPin, resetPin, wifinina.NewWallClockTimer())
//
// Board-specific pin wiring, LED/debug UART plumbing, and the SysTick-style
// timer implementation are the caller's responsibility; this package only
// needs an spi.Conn, three gpio.PinIO values, and a Timer.
package wifinina
