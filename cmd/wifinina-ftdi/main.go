// Command wifinina-ftdi drives a WiFiNINA coprocessor from a desktop
// machine through an FTDI FT232H breakout board, for bench testing
// without a full SBC. It mirrors periph's own ftdi bring-up pattern: open
// the first FTDI device, ask it for an SPI port and GPIO header pins,
// then hand those to the driver exactly like wifinina-scan does for a
// native SBC SPI bus.
package main

import (
	"flag"
	"fmt"
	"log"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/host/v3/ftdi"

	"github.com/fionawhim/wifinina"
)

// spiDev is the subset of ftdi.Dev implementations (FT232H, FT232R) that
// can open an SPI port. The Dev interface itself doesn't declare SPI, so
// callers type-assert to it.
type spiDev interface {
	SPI() (spi.PortCloser, error)
}

func main() {
	ssid := flag.String("ssid", "", "network to join")
	password := flag.String("password", "", "network password (optional)")
	flag.Parse()

	devices := ftdi.All()
	if len(devices) == 0 {
		log.Fatal("wifinina-ftdi: no FTDI device found")
	}
	dev := devices[0]

	withSPI, ok := dev.(spiDev)
	if !ok {
		log.Fatalf("wifinina-ftdi: %s doesn't support SPI", dev)
	}

	header := dev.Header()
	if len(header) < 3 {
		log.Fatal("wifinina-ftdi: FTDI device has no usable GPIO header")
	}
	// The CLK/MOSI/MISO lines are claimed by SPI() itself; CS, busy, and
	// reset are wired to the first three free header pins.
	cs := header[0]
	busy := header[1]
	reset := header[2]

	port, err := withSPI.SPI()
	if err != nil {
		log.Fatalf("wifinina-ftdi: SPI: %v", err)
	}
	defer port.Close()

	conn, err := port.Connect(8*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		log.Fatalf("wifinina-ftdi: Connect: %v", err)
	}

	d, err := wifinina.New(conn, cs, busy, reset, wifinina.NewWallClockTimer())
	if err != nil {
		log.Fatalf("wifinina-ftdi: New: %v", err)
	}

	if *ssid == "" {
		log.Fatal("wifinina-ftdi: -ssid is required")
	}
	if err := d.Connect(*ssid, *password); err != nil {
		log.Fatalf("wifinina-ftdi: Connect: %v", err)
	}
	info, err := d.NetworkInfo()
	if err != nil {
		log.Fatalf("wifinina-ftdi: NetworkInfo: %v", err)
	}
	fmt.Printf("joined %s, ip=%v\n", *ssid, info.IP)
}
