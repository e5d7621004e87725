package edunet

import (
	"net"

	"github.com/mdlayher/ethernet"
	"github.com/rs/zerolog/log"
)

// NewRawDeviceWithConns builds a RawDevice on already opened connections.
func NewRawDeviceWithConns(name string, hwAddr MacAddress, mtu int, conns map[ethernet.EtherType]net.PacketConn) *RawDevice {
	return &RawDevice{
		ifconfig:    &InterfaceConfig{InterfaceName: name},
		ifi:         &net.Interface{Name: name, MTU: mtu},
		hwAddr:      hwAddr,
		connections: conns,
		logger:      log.With().Str("device", name).Logger(),
	}
}
