package edunet

import (
	"encoding/binary"
	"io"
)

const (
	ip4Version         = 4
	ip4MinHeaderLength = 20
	ip4DefaultTTL      = 64

	// third bit of the flags field
	ip4FlagMoreFragments = 0b001

	// total length is a 16 bit field
	ip4MaxPayloadLength = 0xffff - ip4MinHeaderLength
)

type IPProtocol uint8

const (
	IPProtocolICMPv4 IPProtocol = 1
	IPProtocolUDP    IPProtocol = 17
)

type Ip4Header struct {
	Version uint8
	// IHL is the header length in 32 bit words
	IHL            uint8
	TOS            uint8
	TotalLength    uint16
	Identification uint16
	Flags          uint8
	FragmentOffset uint16
	TTL            uint8
	Protocol       IPProtocol
	HeaderChecksum uint16
	Source         Ip4Address
	Destination    Ip4Address
	Options        []byte
}

func NewIp4Header(src, dst Ip4Address, proto IPProtocol, payloadLength int) *Ip4Header {
	return &Ip4Header{
		Version:     ip4Version,
		IHL:         ip4MinHeaderLength / 4,
		TotalLength: uint16(ip4MinHeaderLength + payloadLength),
		TTL:         ip4DefaultTTL,
		Protocol:    proto,
		Source:      src,
		Destination: dst,
	}
}

// HeaderLength is the length of the header including options in bytes.
func (h *Ip4Header) HeaderLength() int {
	return int(h.IHL) * 4
}

// IsFragment reports whether the datagram is one part of a fragmented datagram.
func (h *Ip4Header) IsFragment() bool {
	return h.Flags&ip4FlagMoreFragments != 0 || h.FragmentOffset != 0
}

// Read decodes the header from r and verifies it. r is left at the first payload byte.
func (h *Ip4Header) Read(r io.Reader) error {
	b := make([]byte, ip4MinHeaderLength)
	if _, err := io.ReadFull(r, b); err != nil {
		return err
	}

	// version and IHL share first byte
	h.Version = b[0] >> 4
	h.IHL = b[0] & 0b0000_1111

	if h.Version != ip4Version || h.HeaderLength() < ip4MinHeaderLength {
		return ErrInvalidIp4Header
	}

	h.TOS = b[1]
	h.TotalLength = binary.BigEndian.Uint16(b[2:4])
	h.Identification = binary.BigEndian.Uint16(b[4:6])

	// only first three bits
	h.Flags = b[6] >> 5
	h.FragmentOffset = binary.BigEndian.Uint16(b[6:8]) & 0x1fff
	h.TTL = b[8]
	h.Protocol = IPProtocol(b[9])
	h.HeaderChecksum = binary.BigEndian.Uint16(b[10:12])
	copy(h.Source[:], b[12:16])
	copy(h.Destination[:], b[16:20])

	if int(h.TotalLength) < h.HeaderLength() {
		return ErrInvalidIp4Header
	}

	h.Options = nil
	if h.HeaderLength() > ip4MinHeaderLength {
		h.Options = make([]byte, h.HeaderLength()-ip4MinHeaderLength)
		if _, err := io.ReadFull(r, h.Options); err != nil {
			return err
		}
		b = append(b, h.Options...)
	}

	// a correct header sums to zero
	if onesComplementChecksum(b) != 0 {
		return ErrIp4ChecksumMismatch
	}
	return nil
}

// MarshalBinary encodes the header and fills in HeaderChecksum.
func (h *Ip4Header) MarshalBinary() ([]byte, error) {
	h.IHL = uint8((ip4MinHeaderLength + len(h.Options) + 3) / 4)
	b := make([]byte, h.HeaderLength())

	b[0] = (h.Version << 4) | (h.IHL & 0b0000_1111)
	b[1] = h.TOS
	binary.BigEndian.PutUint16(b[2:4], h.TotalLength)
	binary.BigEndian.PutUint16(b[4:6], h.Identification)
	binary.BigEndian.PutUint16(b[6:8], uint16(h.Flags)<<13|(h.FragmentOffset&0x1fff))
	b[8] = h.TTL
	b[9] = uint8(h.Protocol)
	copy(b[12:16], h.Source[:])
	copy(b[16:20], h.Destination[:])
	copy(b[20:], h.Options)

	h.HeaderChecksum = onesComplementChecksum(b)
	binary.BigEndian.PutUint16(b[10:12], h.HeaderChecksum)

	return b, nil
}
