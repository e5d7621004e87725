package edunet

import (
	"bytes"
	"context"
	"encoding/binary"
	"io"

	"github.com/juju/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
)

const icmpHeaderLength = 4

// IcmpModule dispatches ICMP messages by type. Next layer modules get the stream positioned
// after the type, code and checksum fields.
type IcmpModule struct {
	ip4      *Ip4Module
	registry *moduleRegistry
	logger   zerolog.Logger
}

func NewIcmpModule(ip4 *Ip4Module) *IcmpModule {
	return &IcmpModule{
		ip4:      ip4,
		registry: newModuleRegistry(),
		logger:   log.With().Str("module", "icmp").Logger(),
	}
}

func (m *IcmpModule) RegisterNextLayerModule(icmpType uint16, module Module) {
	m.registry.register(icmpType, module)
}

func (m *IcmpModule) ReadPacket(stream *bytes.Reader, device Device) {
	b, err := io.ReadAll(stream)
	if err != nil {
		m.logger.Warn().Err(err).Msg("failed to read message")
		return
	}

	msg, err := icmp.ParseMessage(ipv4.ICMPTypeEcho.Protocol(), b)
	if err != nil {
		m.logger.Warn().Err(err).Msg("discarding malformed message")
		return
	}

	if onesComplementChecksum(b) != 0 {
		m.logger.Warn().Msg("discarding message because of invalid checksum")
		return
	}

	icmpType, ok := msg.Type.(ipv4.ICMPType)
	if !ok {
		return
	}

	next, ok := m.registry.lookup(uint16(icmpType))
	if !ok {
		m.logger.Debug().Msgf("discarding message because of unsupported type %s", icmpType)
		return
	}

	next.ReadPacket(bytes.NewReader(b[icmpHeaderLength:]), device)
}

// SendEchoRequest sends an echo request to a host on the local link.
func (m *IcmpModule) SendEchoRequest(ctx context.Context, destination Ip4Address, id, seq int, data []byte, device Device) error {
	msg := icmp.Message{
		Type: ipv4.ICMPTypeEcho,
		Code: 0,
		Body: &icmp.Echo{ID: id, Seq: seq, Data: data},
	}

	b, err := msg.Marshal(nil)
	if err != nil {
		return errors.Trace(err)
	}

	return m.ip4.WritePacket(ctx, destination, IPProtocolICMPv4, b, device)
}

// ReadEcho decodes an echo body from a stream handed out by IcmpModule.
func ReadEcho(stream *bytes.Reader) (*icmp.Echo, error) {
	b, err := io.ReadAll(stream)
	if err != nil {
		return nil, err
	}

	if len(b) < 4 {
		return nil, io.ErrUnexpectedEOF
	}

	return &icmp.Echo{
		ID:   int(binary.BigEndian.Uint16(b[0:2])),
		Seq:  int(binary.BigEndian.Uint16(b[2:4])),
		Data: b[4:],
	}, nil
}
