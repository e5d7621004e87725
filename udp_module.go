package edunet

import (
	"bytes"
	"context"
	"encoding/binary"
	"io"

	"github.com/juju/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	udpHeaderLength     = 8
	udpMaxPayloadLength = ip4MaxPayloadLength - udpHeaderLength
)

type UdpHeader struct {
	SourcePort      uint16
	DestinationPort uint16
	Length          uint16
	Checksum        uint16
}

func (h *UdpHeader) Read(r io.Reader) error {
	var b [udpHeaderLength]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return err
	}

	h.SourcePort = binary.BigEndian.Uint16(b[0:2])
	h.DestinationPort = binary.BigEndian.Uint16(b[2:4])
	h.Length = binary.BigEndian.Uint16(b[4:6])
	h.Checksum = binary.BigEndian.Uint16(b[6:8])

	if h.Length < udpHeaderLength {
		return ErrInvalidUdpHeader
	}
	return nil
}

func (h *UdpHeader) MarshalBinary() ([]byte, error) {
	b := make([]byte, udpHeaderLength)

	binary.BigEndian.PutUint16(b[0:2], h.SourcePort)
	binary.BigEndian.PutUint16(b[2:4], h.DestinationPort)
	binary.BigEndian.PutUint16(b[4:6], h.Length)
	binary.BigEndian.PutUint16(b[6:8], h.Checksum)

	return b, nil
}

// UdpModule dispatches datagrams by destination port.
type UdpModule struct {
	ip4      *Ip4Module
	registry *moduleRegistry
	logger   zerolog.Logger
}

func NewUdpModule(ip4 *Ip4Module) *UdpModule {
	return &UdpModule{
		ip4:      ip4,
		registry: newModuleRegistry(),
		logger:   log.With().Str("module", "udp").Logger(),
	}
}

func (m *UdpModule) RegisterNextLayerModule(port uint16, module Module) {
	m.registry.register(port, module)
}

func (m *UdpModule) ReadPacket(stream *bytes.Reader, device Device) {
	var header UdpHeader
	if err := header.Read(stream); err != nil {
		m.logger.Warn().Err(err).Msg("discarding malformed datagram")
		return
	}

	payloadLength := int(header.Length) - udpHeaderLength
	if payloadLength > stream.Len() {
		m.logger.Warn().Msgf("discarding truncated datagram, length %d exceeds packet", header.Length)
		return
	}

	next, ok := m.registry.lookup(header.DestinationPort)
	if !ok {
		m.logger.Debug().Msgf("discarding datagram because no module is registered for port %d", header.DestinationPort)
		return
	}

	payload := make([]byte, payloadLength)
	if _, err := io.ReadFull(stream, payload); err != nil {
		m.logger.Warn().Err(err).Msg("discarding truncated datagram")
		return
	}

	next.ReadPacket(bytes.NewReader(payload), device)
}

// WriteDatagram sends payload to a host on the local link. The checksum is left zero,
// which IPv4 permits.
func (m *UdpModule) WriteDatagram(ctx context.Context, destination Ip4Address, sourcePort, destinationPort uint16, payload []byte, device Device) error {
	if len(payload) > udpMaxPayloadLength {
		return errors.Annotatef(ErrPayloadTooLarge, "%d bytes", len(payload))
	}

	header := UdpHeader{
		SourcePort:      sourcePort,
		DestinationPort: destinationPort,
		Length:          uint16(udpHeaderLength + len(payload)),
	}

	b, err := header.MarshalBinary()
	if err != nil {
		return errors.Trace(err)
	}

	return m.ip4.WritePacket(ctx, destination, IPProtocolUDP, append(b, payload...), device)
}
