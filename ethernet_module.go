package edunet

import (
	"bytes"
	"io"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/juju/errors"
	"github.com/mdlayher/ethernet"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// EthernetModule is the bottom of the dispatch chain. Next layer modules are keyed by EtherType.
type EthernetModule struct {
	registry *moduleRegistry
	logger   zerolog.Logger
}

func NewEthernetModule() *EthernetModule {
	return &EthernetModule{
		registry: newModuleRegistry(),
		logger:   log.With().Str("module", "ethernet").Logger(),
	}
}

func (m *EthernetModule) RegisterNextLayerModule(etherType uint16, module Module) {
	m.registry.register(etherType, module)
}

// SupportedEtherTypes returns every EtherType a next layer module is registered for.
func (m *EthernetModule) SupportedEtherTypes() []ethernet.EtherType {
	codes := m.registry.typeCodes()

	etherTypes := make([]ethernet.EtherType, len(codes))
	for i, c := range codes {
		etherTypes[i] = ethernet.EtherType(c)
	}
	return etherTypes
}

func (m *EthernetModule) ReadPacket(stream *bytes.Reader, device Device) {
	b, err := io.ReadAll(stream)
	if err != nil {
		m.logger.Warn().Err(err).Msg("failed to read ethernet frame")
		return
	}

	m.traceFrame(b)

	// VLAN tags are consumed by the frame decoder
	var f ethernet.Frame
	if err := (&f).UnmarshalBinary(b); err != nil {
		m.logger.Warn().Err(err).Msg("discarding malformed ethernet frame")
		return
	}

	next, ok := m.registry.lookup(uint16(f.EtherType))
	if !ok {
		m.logger.Debug().Msgf("discarding frame because of unsupported ether type 0x%04x", uint16(f.EtherType))
		return
	}

	next.ReadPacket(bytes.NewReader(f.Payload), device)
}

// WriteFrame frames payload with the device's hardware address as source and sends it.
func (m *EthernetModule) WriteFrame(device Device, destination MacAddress, etherType ethernet.EtherType, payload []byte) error {
	frame := &ethernet.Frame{
		Destination: destination.HardwareAddr(),
		Source:      device.HardwareAddr().HardwareAddr(),
		EtherType:   etherType,
		Payload:     payload,
	}

	b, err := FinalizePacket(frame)
	if err != nil {
		return errors.Annotate(err, "failed to finalize ethernet frame")
	}

	return device.SendPacket(b)
}

// FinalizePacket serializes f. Payloads below the Ethernet minimum are zero padded.
func FinalizePacket(f *ethernet.Frame) ([]byte, error) {
	return f.MarshalBinary()
}

func (m *EthernetModule) traceFrame(b []byte) {
	e := m.logger.Trace()
	if !e.Enabled() {
		return
	}

	p := gopacket.NewPacket(b, layers.LayerTypeEthernet, gopacket.NoCopy)
	e.Str("dump", p.String()).Msg("frame received")
}
