package edunet

import (
	"encoding/binary"
	"io"

	"github.com/mdlayher/ethernet"
)

type ArpOperation uint16

const (
	ArpOperationRequest ArpOperation = 1
	ArpOperationReply   ArpOperation = 2
)

func (o ArpOperation) String() string {
	switch o {
	case ArpOperationRequest:
		return "request"
	case ArpOperationReply:
		return "reply"
	default:
		return "unknown"
	}
}

const (
	ArpHardwareTypeEthernet uint16 = 1
	ArpProtocolTypeIp4             = uint16(ethernet.EtherTypeIPv4)

	arpHeaderLen = 8
	// sender MAC, sender IP, target MAC, target IP
	arpBodyLen = 2*HardwareAddrLen + 2*Ip4AddrLen
)

// ArpHeader is the fixed part of an ARP packet in front of the address fields.
type ArpHeader struct {
	HardwareAddressType   uint16
	ProtocolAddressType   uint16
	HardwareAddressLength uint8
	ProtocolAddressLength uint8
	Operation             ArpOperation
}

// NewArpHeader returns a header for Ethernet hardware and IPv4 protocol addresses.
func NewArpHeader(op ArpOperation) ArpHeader {
	return ArpHeader{
		HardwareAddressType:   ArpHardwareTypeEthernet,
		ProtocolAddressType:   ArpProtocolTypeIp4,
		HardwareAddressLength: HardwareAddrLen,
		ProtocolAddressLength: Ip4AddrLen,
		Operation:             op,
	}
}

func (h *ArpHeader) IsEthernetAndIPv4() bool {
	if h.HardwareAddressType != ArpHardwareTypeEthernet {
		// not ethernet
		return false
	}

	if h.ProtocolAddressType != ArpProtocolTypeIp4 {
		// not IPv4
		return false
	}

	if h.HardwareAddressLength != HardwareAddrLen {
		// MAC's are 6 bytes
		return false
	}

	// IP's are 4 bytes
	return h.ProtocolAddressLength == Ip4AddrLen
}

func (h *ArpHeader) Read(r io.Reader) error {
	var b [arpHeaderLen]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return err
	}

	h.HardwareAddressType = binary.BigEndian.Uint16(b[0:2])
	h.ProtocolAddressType = binary.BigEndian.Uint16(b[2:4])
	h.HardwareAddressLength = b[4]
	h.ProtocolAddressLength = b[5]
	h.Operation = ArpOperation(binary.BigEndian.Uint16(b[6:8]))
	return nil
}

func (h ArpHeader) Write(w io.Writer) error {
	var b [arpHeaderLen]byte
	h.put(b[:])

	_, err := w.Write(b[:])
	return err
}

// put encodes the header into the first arpHeaderLen bytes of b.
func (h ArpHeader) put(b []byte) {
	binary.BigEndian.PutUint16(b[0:2], h.HardwareAddressType)
	binary.BigEndian.PutUint16(b[2:4], h.ProtocolAddressType)
	b[4] = h.HardwareAddressLength
	b[5] = h.ProtocolAddressLength
	binary.BigEndian.PutUint16(b[6:8], uint16(h.Operation))
}

// arpPacket is an Ethernet/IPv4 ARP packet.
type arpPacket struct {
	header          ArpHeader
	senderHwAddr    MacAddress
	senderProtoAddr Ip4Address
	targetHwAddr    MacAddress
	targetProtoAddr Ip4Address
}

// readBody reads the address fields following the header, in wire order.
func (p *arpPacket) readBody(r io.Reader) error {
	if err := p.senderHwAddr.Read(r); err != nil {
		return err
	}
	if err := p.senderProtoAddr.Read(r); err != nil {
		return err
	}
	if err := p.targetHwAddr.Read(r); err != nil {
		return err
	}
	return p.targetProtoAddr.Read(r)
}

func (p *arpPacket) MarshalBinary() ([]byte, error) {
	b := make([]byte, arpHeaderLen+arpBodyLen)
	p.header.put(b)

	// address fields in wire order
	body := b[arpHeaderLen:]
	copy(body[0:6], p.senderHwAddr[:])
	copy(body[6:10], p.senderProtoAddr[:])
	copy(body[10:16], p.targetHwAddr[:])
	copy(body[16:20], p.targetProtoAddr[:])

	return b, nil
}
