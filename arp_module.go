package edunet

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/mdlayher/ethernet"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ArpModule answers and learns from ARP packets and resolves IPv4 addresses to hardware
// addresses. The cache is shared by the receive path and resolving callers; every access takes mu.
type ArpModule struct {
	ethernet *EthernetModule
	config   ArpConfig

	cache []ArpCacheEntry
	mu    sync.Mutex

	logger zerolog.Logger
}

func NewArpModule(ethernet *EthernetModule, config ArpConfig) *ArpModule {
	if config.MaxRequestRetries <= 0 {
		config.MaxRequestRetries = DefaultMaxRequestRetries
	}
	if config.RetryDelay <= 0 {
		config.RetryDelay = DefaultRetryDelay
	}

	return &ArpModule{
		ethernet: ethernet,
		config:   config,
		cache:    make([]ArpCacheEntry, 0),
		logger:   log.With().Str("module", "arp").Logger(),
	}
}

// RegisterNextLayerModule is a no-op, ARP carries no upper layer payload.
func (m *ArpModule) RegisterNextLayerModule(typeCode uint16, _ Module) {
	m.logger.Warn().Uint16("typeCode", typeCode).Msg("arp has no next layer, ignoring registration")
}

func (m *ArpModule) ReadPacket(stream *bytes.Reader, device Device) {
	var header ArpHeader
	if err := header.Read(stream); err != nil {
		m.logger.Warn().Err(err).Msg("discarding truncated packet")
		return
	}

	if header.HardwareAddressType != ArpHardwareTypeEthernet {
		m.logger.Warn().Msgf("discarding packet because of unsupported hardware address type 0x%04x", header.HardwareAddressType)
		return
	}

	if header.ProtocolAddressType != ArpProtocolTypeIp4 {
		m.logger.Warn().Msgf("discarding packet because of unsupported protocol address type 0x%04x", header.ProtocolAddressType)
		return
	}

	if !header.IsEthernetAndIPv4() {
		m.logger.Warn().Err(ErrUnsupportedArpProtocol).Msgf("discarding packet because of unsupported address lengths %d/%d",
			header.HardwareAddressLength, header.ProtocolAddressLength)
		return
	}

	packet := arpPacket{header: header}
	if err := packet.readBody(stream); err != nil {
		m.logger.Warn().Err(err).Msg("discarding truncated packet")
		return
	}

	switch header.Operation {
	case ArpOperationRequest:
		m.handleRequest(packet.senderHwAddr, packet.senderProtoAddr, packet.targetProtoAddr, device)
	case ArpOperationReply:
		m.handleReply(packet.senderHwAddr, packet.senderProtoAddr, packet.targetHwAddr, packet.targetProtoAddr)
	default:
		m.logger.Warn().Msgf("discarding packet because of unsupported operation type 0x%04x", uint16(header.Operation))
	}
}

// handleRequest learns the sender and replies if the target is cache resident.
// Replies are not derived from the device's own address; seed the cache with it instead.
func (m *ArpModule) handleRequest(senderHwAddr MacAddress, senderProtoAddr, targetProtoAddr Ip4Address, device Device) {
	m.SetEntry(senderProtoAddr, senderHwAddr)

	m.mu.Lock()
	_, known := m.lookupLocked(targetProtoAddr)
	m.mu.Unlock()

	if !known {
		return
	}

	reply := arpPacket{
		header:          NewArpHeader(ArpOperationReply),
		senderHwAddr:    device.HardwareAddr(),
		senderProtoAddr: targetProtoAddr,
		targetHwAddr:    senderHwAddr,
		targetProtoAddr: senderProtoAddr,
	}

	if err := m.send(device, senderHwAddr, &reply); err != nil {
		m.logger.Error().Err(err).Stringer("target", senderProtoAddr).Msg("failed to send reply")
	}
}

func (m *ArpModule) handleReply(senderHwAddr MacAddress, senderProtoAddr Ip4Address, targetHwAddr MacAddress, targetProtoAddr Ip4Address) {
	m.SetEntry(senderProtoAddr, senderHwAddr)

	// a broadcast target tells nothing about the target's identity
	if !targetHwAddr.IsBroadcast() {
		m.SetEntry(targetProtoAddr, targetHwAddr)
	}
}

// ResolveAddress returns the hardware address for ip. On a cache miss it broadcasts a request and
// waits RetryDelay, up to MaxRequestRetries times. The call blocks; a done ctx ends it early.
// A false result means the destination is unreachable.
func (m *ArpModule) ResolveAddress(ctx context.Context, ip Ip4Address, device Device) (MacAddress, bool) {
	for i := 0; i < m.config.MaxRequestRetries; i++ {
		m.mu.Lock()
		if mac, ok := m.lookupLocked(ip); ok {
			m.mu.Unlock()
			return mac, true
		}
		m.mu.Unlock()

		if err := m.sendRequest(ip, device); err != nil {
			m.logger.Error().Err(err).Stringer("target", ip).Msg("failed to send request")
		}

		if !sleep(ctx, m.config.RetryDelay) {
			m.logger.Debug().Stringer("target", ip).Msg("resolution cancelled")
			return MacAddress{}, false
		}
	}

	m.logger.Debug().Stringer("target", ip).Int("requests", m.config.MaxRequestRetries).Msg("resolution timed out")
	return MacAddress{}, false
}

func (m *ArpModule) sendRequest(ip Ip4Address, device Device) error {
	request := arpPacket{
		header:          NewArpHeader(ArpOperationRequest),
		senderHwAddr:    device.HardwareAddr(),
		senderProtoAddr: m.config.SenderAddress,
		targetHwAddr:    EmptyMacAddress,
		targetProtoAddr: ip,
	}

	return m.send(device, BroadcastMacAddress, &request)
}

func (m *ArpModule) send(device Device, destination MacAddress, packet *arpPacket) error {
	b, err := packet.MarshalBinary()
	if err != nil {
		return err
	}

	return m.ethernet.WriteFrame(device, destination, ethernet.EtherTypeARP, b)
}

// sleep waits for d and returns false if ctx is done first.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
