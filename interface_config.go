package edunet

import (
	"net"
	"strings"
)

const InterfaceConfigFormatString = "interfaceName:IPv4/Mask"

type InterfaceConfig struct {
	InterfaceName string
	Addr          *net.IPNet
}

func ParseInterfaceConfig(config string) (*InterfaceConfig, error) {
	splitted := strings.Split(config, ":")

	if len(splitted) != 2 {
		return nil, ErrInvalidInterfaceConfigString
	}

	name := splitted[0]
	ip, ipNet, err := net.ParseCIDR(splitted[1])

	if err != nil {
		return nil, err
	}

	ipNet.IP = ip

	return NewInterfaceConfig(name, ipNet)
}

func NewInterfaceConfig(name string, addr *net.IPNet) (*InterfaceConfig, error) {
	if addr.IP.To4() == nil {
		return nil, ErrNotAnIPv4Address
	}
	addr.IP = addr.IP.To4()

	return &InterfaceConfig{
		InterfaceName: name,
		Addr:          addr,
	}, nil
}

// Ip4Address returns the configured address of the interface.
func (i *InterfaceConfig) Ip4Address() Ip4Address {
	// To4 succeeded in NewInterfaceConfig
	a, _ := Ip4AddressFromIP(i.Addr.IP)
	return a
}
