package edunet

import (
	"bytes"
	"context"
	"io"
	"sync/atomic"

	"github.com/juju/errors"
	"github.com/mdlayher/ethernet"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Ip4Module dispatches IPv4 payloads by protocol number and sends datagrams to hosts on the
// local link.
type Ip4Module struct {
	ethernet *EthernetModule
	arp      *ArpModule
	address  Ip4Address

	registry       *moduleRegistry
	identification atomic.Uint32

	logger zerolog.Logger
}

func NewIp4Module(ethernet *EthernetModule, arp *ArpModule, address Ip4Address) *Ip4Module {
	return &Ip4Module{
		ethernet: ethernet,
		arp:      arp,
		address:  address,
		registry: newModuleRegistry(),
		logger:   log.With().Str("module", "ip4").Logger(),
	}
}

func (m *Ip4Module) Address() Ip4Address {
	return m.address
}

func (m *Ip4Module) RegisterNextLayerModule(protocol uint16, module Module) {
	m.registry.register(protocol, module)
}

func (m *Ip4Module) ReadPacket(stream *bytes.Reader, device Device) {
	var header Ip4Header
	if err := header.Read(stream); err != nil {
		m.logger.Warn().Err(err).Msg("discarding malformed packet")
		return
	}

	if header.IsFragment() {
		m.logger.Debug().
			Uint16("id", header.Identification).
			Uint16("offset", header.FragmentOffset).
			Msg("discarding fragment, reassembly is not supported")
		return
	}

	// trailing bytes are Ethernet padding
	payloadLength := int(header.TotalLength) - header.HeaderLength()
	if payloadLength > stream.Len() {
		m.logger.Warn().Msgf("discarding truncated packet, total length %d exceeds frame", header.TotalLength)
		return
	}

	next, ok := m.registry.lookup(uint16(header.Protocol))
	if !ok {
		m.logger.Debug().Msgf("discarding packet because of unsupported protocol %d", header.Protocol)
		return
	}

	payload := make([]byte, payloadLength)
	if _, err := io.ReadFull(stream, payload); err != nil {
		m.logger.Warn().Err(err).Msg("discarding truncated packet")
		return
	}

	next.ReadPacket(bytes.NewReader(payload), device)
}

// WritePacket sends payload to a host on the local link. The destination's hardware address is
// resolved with ARP, so the call may block for the resolver's retry budget.
func (m *Ip4Module) WritePacket(ctx context.Context, destination Ip4Address, protocol IPProtocol, payload []byte, device Device) error {
	if len(payload) > ip4MaxPayloadLength {
		return errors.Annotatef(ErrPayloadTooLarge, "%d bytes", len(payload))
	}

	hwAddr, found := m.arp.ResolveAddress(ctx, destination, device)
	if !found {
		return errors.Annotatef(ErrDestinationUnreachable, "resolving %s", destination)
	}

	header := NewIp4Header(m.address, destination, protocol, len(payload))
	header.Identification = uint16(m.identification.Add(1))

	b, err := header.MarshalBinary()
	if err != nil {
		return errors.Trace(err)
	}

	return m.ethernet.WriteFrame(device, hwAddr, ethernet.EtherTypeIPv4, append(b, payload...))
}
