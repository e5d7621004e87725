package edunet

import "github.com/juju/errors"

var (
	ErrNotAnMACHardwareAddress = errors.New("provided hardware address was no MAC address")
	ErrNotAnIPv4Address        = errors.New("ip address is not an IPv4 address")

	ErrUnsupportedArpProtocol = errors.New("unsupported ARP version. requires ethernet+IPv4")
	ErrInvalidIp4Header       = errors.New("invalid IPv4 header")
	ErrIp4ChecksumMismatch    = errors.New("IPv4 header checksum mismatch")
	ErrInvalidUdpHeader       = errors.New("invalid UDP header")

	ErrDestinationUnreachable = errors.New("destination unreachable. no MAC found for this IP address")
	ErrNoPacketConn           = errors.New("no PacketConn for given etherType")
	ErrPayloadTooLarge        = errors.New("payload exceeds the maximum IPv4 datagram size")

	ErrInvalidInterfaceConfigString = errors.New("invalid interface config string. malformed input, should have following format: '" + InterfaceConfigFormatString + "'")
)
