// Command wifinina-scan drives a WiFiNINA coprocessor wired to a Linux
// SBC's SPI bus and GPIO headers. With -ssid it associates with that
// network and prints the IP address it was given; without it, it prints
// the networks it can see.
//
// Board wiring (which SPI port and which GPIO lines are CS/busy/reset) is
// supplied by name on the command line, following periph's spireg/gpioreg
// registry convention rather than hardcoding a board's pin numbers.
package main

import (
	"flag"
	"fmt"
	"log"

	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/fionawhim/wifinina"
)

func main() {
	spiPort := flag.String("spi", "", "SPI port name (empty for periph's default)")
	csPin := flag.String("cs", "", "chip select GPIO pin name")
	busyPin := flag.String("busy", "", "busy/ack GPIO pin name")
	resetPin := flag.String("reset", "", "reset GPIO pin name (optional)")
	ssid := flag.String("ssid", "", "network to join")
	password := flag.String("password", "", "network password (optional)")
	flag.Parse()

	if *csPin == "" || *busyPin == "" {
		log.Fatal("wifinina-scan: -cs and -busy are required")
	}

	if _, err := host.Init(); err != nil {
		log.Fatalf("wifinina-scan: host.Init: %v", err)
	}

	port, err := spireg.Open(*spiPort)
	if err != nil {
		log.Fatalf("wifinina-scan: spireg.Open: %v", err)
	}
	defer port.Close()

	conn, err := port.Connect(8*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		log.Fatalf("wifinina-scan: Connect: %v", err)
	}

	cs := gpioreg.ByName(*csPin)
	busy := gpioreg.ByName(*busyPin)
	if cs == nil || busy == nil {
		log.Fatal("wifinina-scan: could not resolve cs/busy pins by name")
	}
	var reset = gpioreg.ByName(*resetPin)

	d, err := wifinina.New(conn, cs, busy, reset, wifinina.NewWallClockTimer())
	if err != nil {
		log.Fatalf("wifinina-scan: New: %v", err)
	}

	if *ssid != "" {
		if err := d.Connect(*ssid, *password); err != nil {
			log.Fatalf("wifinina-scan: Connect: %v", err)
		}
		info, err := d.NetworkInfo()
		if err != nil {
			log.Fatalf("wifinina-scan: NetworkInfo: %v", err)
		}
		fmt.Printf("joined %s, ip=%v\n", *ssid, info.IP)
		return
	}

	results, err := d.Scan()
	if err != nil {
		log.Fatalf("wifinina-scan: Scan: %v", err)
	}
	for _, r := range results {
		fmt.Println(r.SSID)
	}
}
