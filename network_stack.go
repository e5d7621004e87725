package edunet

import (
	"github.com/mdlayher/ethernet"
)

// NetworkStack owns one instance of every protocol module and wires the dispatch graph:
// Ethernet to ARP and IPv4 by EtherType, IPv4 to ICMP and UDP by protocol number.
// The wiring is fixed after construction.
type NetworkStack struct {
	ethernet *EthernetModule
	arp      *ArpModule
	ip4      *Ip4Module
	icmp     *IcmpModule
	udp      *UdpModule
}

func NewNetworkStack(config Config) *NetworkStack {
	ethernetModule := NewEthernetModule()
	arpModule := NewArpModule(ethernetModule, config.Arp)
	ip4Module := NewIp4Module(ethernetModule, arpModule, config.Arp.SenderAddress)
	icmpModule := NewIcmpModule(ip4Module)
	udpModule := NewUdpModule(ip4Module)

	ethernetModule.RegisterNextLayerModule(uint16(ethernet.EtherTypeARP), arpModule)
	ethernetModule.RegisterNextLayerModule(uint16(ethernet.EtherTypeIPv4), ip4Module)
	ip4Module.RegisterNextLayerModule(uint16(IPProtocolICMPv4), icmpModule)
	ip4Module.RegisterNextLayerModule(uint16(IPProtocolUDP), udpModule)

	return &NetworkStack{
		ethernet: ethernetModule,
		arp:      arpModule,
		ip4:      ip4Module,
		icmp:     icmpModule,
		udp:      udpModule,
	}
}

func (s *NetworkStack) Ethernet() *EthernetModule {
	return s.ethernet
}

func (s *NetworkStack) Arp() *ArpModule {
	return s.arp
}

func (s *NetworkStack) Ip4() *Ip4Module {
	return s.ip4
}

func (s *NetworkStack) Icmp() *IcmpModule {
	return s.icmp
}

func (s *NetworkStack) Udp() *UdpModule {
	return s.udp
}
