package wifinina

// ninaCommand identifies a command sent to the coprocessor. Values match
// the WiFiNINA firmware's SPI command set.
type ninaCommand byte

// replyFlag is OR'd onto the command byte the coprocessor echoes back in
// its response frame.
const replyFlag ninaCommand = 1 << 7

const (
	cmdSetNetwork             ninaCommand = 0x10
	cmdSetNetworkAndPassphrase ninaCommand = 0x11
	cmdSetKey                 ninaCommand = 0x12
	cmdSetIPConfig            ninaCommand = 0x14
	cmdSetDNSConfig           ninaCommand = 0x15
	cmdSetHostname            ninaCommand = 0x16
	cmdSetPowerMode           ninaCommand = 0x17
	cmdSetAPNetwork           ninaCommand = 0x18
	cmdSetAPPassphrase        ninaCommand = 0x19
	cmdSetDebug               ninaCommand = 0x1A

	// cmdGetTemperature's byte value is not present in the retrieved
	// firmware command table; see DESIGN.md for how this gap was
	// resolved.
	cmdGetTemperature ninaCommand = 0x1B

	cmdGetConnectionStatus ninaCommand = 0x20
	cmdGetIPAddress        ninaCommand = 0x21
	cmdGetMACAddress       ninaCommand = 0x22
	cmdGetCurrentSSID      ninaCommand = 0x23
	cmdGetCurrentRSSI      ninaCommand = 0x25
	cmdGetCurrentEnct      ninaCommand = 0x26
	cmdScanNetworks        ninaCommand = 0x27

	// cmdStartServerTCP's byte value is not present in the retrieved
	// firmware command table; see DESIGN.md.
	cmdStartServerTCP ninaCommand = 0x28

	cmdGetStateTCP        ninaCommand = 0x29
	cmdDataSentTCP        ninaCommand = 0x2A
	cmdAvailableDataTCP   ninaCommand = 0x2B
	cmdGetDataTCP         ninaCommand = 0x2C
	cmdStartClientTCP     ninaCommand = 0x2D
	cmdStopClientTCP      ninaCommand = 0x2E
	cmdGetClientStateTCP  ninaCommand = 0x2F

	cmdDisconnect  ninaCommand = 0x30
	cmdGetIdxRSSI  ninaCommand = 0x32
	cmdGetIdxEnct  ninaCommand = 0x33

	cmdRequestHostByName ninaCommand = 0x34
	cmdGetHostByName     ninaCommand = 0x35
	cmdStartScanNetworks ninaCommand = 0x36
	cmdGetFirmwareVersion ninaCommand = 0x37

	// cmdSendUDPData's byte value is not present in the retrieved
	// firmware command table; see DESIGN.md.
	cmdSendUDPData ninaCommand = 0x39

	cmdPing ninaCommand = 0x3E

	cmdGetSocket ninaCommand = 0x3F

	cmdSendDataTCP  ninaCommand = 0x44
	cmdGetDatabufTCP ninaCommand = 0x45

	// cmdInsertDatabuf's byte value is not present in the retrieved
	// firmware command table; see DESIGN.md.
	cmdInsertDatabuf ninaCommand = 0x46

	cmdSetEnterpriseIdent    ninaCommand = 0x4A
	cmdSetEnterpriseUsername ninaCommand = 0x4B
	cmdSetEnterprisePassword ninaCommand = 0x4C
	cmdSetEnterpriseEnable   ninaCommand = 0x4F

	cmdSetPinMode      ninaCommand = 0x50
	cmdSetDigitalWrite ninaCommand = 0x51
	cmdSetAnalogWrite  ninaCommand = 0x52

	cmdStart ninaCommand = 0xE0
	cmdEnd   ninaCommand = 0xEE
	cmdError ninaCommand = 0xEF
)
