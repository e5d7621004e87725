package edunet

//go:generate mockgen -destination ./internal/mocks/mock_device.go -package mocks github.com/davidkroell/edunet Device

// Device is the network device a packet arrived on and the one replies leave through.
// Implementations must be safe for concurrent use.
type Device interface {
	// SendPacket transmits a complete, finalized Ethernet frame.
	SendPacket(b []byte) error
	HardwareAddr() MacAddress
}
