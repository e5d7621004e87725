package edunet

import (
	"io"
	"net"

	"github.com/juju/errors"
)

const (
	HardwareAddrLen = 6
	Ip4AddrLen      = net.IPv4len
)

// MacAddress is a 48 bit Ethernet hardware address.
type MacAddress [HardwareAddrLen]byte

var (
	BroadcastMacAddress = MacAddress{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
	EmptyMacAddress     = MacAddress{}
)

func ParseMacAddress(s string) (MacAddress, error) {
	hw, err := net.ParseMAC(s)
	if err != nil {
		return MacAddress{}, err
	}
	return MacAddressFromHardwareAddr(hw)
}

func MacAddressFromHardwareAddr(hw net.HardwareAddr) (MacAddress, error) {
	var m MacAddress
	if len(hw) != HardwareAddrLen {
		return m, ErrNotAnMACHardwareAddress
	}
	copy(m[:], hw)
	return m, nil
}

func (m MacAddress) IsBroadcast() bool {
	return m == BroadcastMacAddress
}

func (m MacAddress) HardwareAddr() net.HardwareAddr {
	hw := make(net.HardwareAddr, HardwareAddrLen)
	copy(hw, m[:])
	return hw
}

func (m MacAddress) String() string {
	return net.HardwareAddr(m[:]).String()
}

func (m *MacAddress) Read(r io.Reader) error {
	_, err := io.ReadFull(r, m[:])
	return err
}

func (m MacAddress) Write(w io.Writer) error {
	_, err := w.Write(m[:])
	return err
}

// Ip4Address is an IPv4 address in network byte order.
type Ip4Address [Ip4AddrLen]byte

var UnspecifiedIp4Address = Ip4Address{}

// ParseIp4Address parses an address in dotted decimal notation.
func ParseIp4Address(s string) (Ip4Address, error) {
	ip := net.ParseIP(s)
	if ip == nil {
		return Ip4Address{}, errors.NotValidf("IPv4 address %q", s)
	}
	return Ip4AddressFromIP(ip)
}

func Ip4AddressFromIP(ip net.IP) (Ip4Address, error) {
	var a Ip4Address
	ip4 := ip.To4()
	if ip4 == nil {
		return a, ErrNotAnIPv4Address
	}
	copy(a[:], ip4)
	return a, nil
}

func (a Ip4Address) IP() net.IP {
	return net.IPv4(a[0], a[1], a[2], a[3]).To4()
}

func (a Ip4Address) String() string {
	return a.IP().String()
}

func (a *Ip4Address) Read(r io.Reader) error {
	_, err := io.ReadFull(r, a[:])
	return err
}

func (a Ip4Address) Write(w io.Writer) error {
	_, err := w.Write(a[:])
	return err
}
