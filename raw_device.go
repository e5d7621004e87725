package edunet

import (
	"bytes"
	"context"
	"encoding/binary"
	"io"
	"net"
	"sync"
	"time"

	"github.com/juju/errors"
	"github.com/mdlayher/ethernet"
	"github.com/mdlayher/raw"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	// frame header plus one VLAN tag
	maxFrameOverhead = 14 + 4

	minReadBackoff = 5 * time.Millisecond
	maxReadBackoff = time.Second
)

//go:generate mockgen -destination ./internal/mocks/mock_packet_conn.go -package mocks net PacketConn

// RawDevice is a Device on a real interface. It holds one packet socket per EtherType.
type RawDevice struct {
	ifconfig    *InterfaceConfig
	ifi         *net.Interface
	hwAddr      MacAddress
	connections map[ethernet.EtherType]net.PacketConn

	logger zerolog.Logger
}

// OpenRawDevice opens packet sockets for etherTypes on the configured interface.
// It usually requires CAP_NET_RAW.
func OpenRawDevice(ifconfig *InterfaceConfig, etherTypes []ethernet.EtherType) (*RawDevice, error) {
	// Select the interface to use for Ethernet traffic
	ifi, err := net.InterfaceByName(ifconfig.InterfaceName)
	if err != nil {
		return nil, errors.Annotatef(err, "failed to open interface %s", ifconfig.InterfaceName)
	}

	hwAddr, err := MacAddressFromHardwareAddr(ifi.HardwareAddr)
	if err != nil {
		return nil, errors.Annotatef(err, "interface %s", ifconfig.InterfaceName)
	}

	d := &RawDevice{
		ifconfig:    ifconfig,
		ifi:         ifi,
		hwAddr:      hwAddr,
		connections: map[ethernet.EtherType]net.PacketConn{},
		logger:      log.With().Str("device", ifconfig.InterfaceName).Logger(),
	}

	for _, etherType := range etherTypes {
		conn, err := raw.ListenPacket(ifi, uint16(etherType), nil)
		if err != nil {
			_ = d.Close()
			return nil, errors.Annotatef(err, "failed to listen for ether type %#04x", uint16(etherType))
		}

		d.connections[etherType] = conn
	}

	return d, nil
}

func (d *RawDevice) Name() string {
	return d.ifconfig.InterfaceName
}

func (d *RawDevice) HardwareAddr() MacAddress {
	return d.hwAddr
}

// SendPacket writes a finalized frame to the socket of the frame's EtherType.
func (d *RawDevice) SendPacket(b []byte) error {
	if len(b) < 14 {
		return io.ErrShortBuffer
	}

	etherType := ethernet.EtherType(binary.BigEndian.Uint16(b[12:14]))
	conn, ok := d.connections[etherType]
	if !ok {
		return errors.Annotatef(ErrNoPacketConn, "ether type %#04x", uint16(etherType))
	}

	_, err := conn.WriteTo(b, &raw.Addr{
		HardwareAddr: net.HardwareAddr(b[0:6]),
	})
	return err
}

// ListenAndServe reads frames from every socket concurrently and feeds them into entry,
// usually the stack's EthernetModule. It returns after ctx is done and all readers stopped.
func (d *RawDevice) ListenAndServe(ctx context.Context, entry Module) {
	var wg sync.WaitGroup

	for _, conn := range d.connections {
		wg.Add(1)
		go func(conn net.PacketConn) {
			defer wg.Done()
			d.readFramesFromConn(ctx, conn, entry)
		}(conn)
	}

	<-ctx.Done()
	if err := d.Close(); err != nil {
		d.logger.Error().Err(err).Msg("failed to close connections")
	}
	wg.Wait()
}

func (d *RawDevice) readFramesFromConn(ctx context.Context, conn net.PacketConn, entry Module) {
	// Accept frames up to interface's MTU in size
	b := make([]byte, d.ifi.MTU+maxFrameOverhead)

	var backoff time.Duration

	// Keep reading frames
	for {
		n, _, err := conn.ReadFrom(b)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return
			}

			backoff = nextReadBackoff(backoff)
			d.logger.Error().Err(err).Dur("retryIn", backoff).Msg("failed to receive frame")
			if !sleep(ctx, backoff) {
				return
			}
			continue
		}
		backoff = 0

		frame := make([]byte, n)
		copy(frame, b[:n])
		entry.ReadPacket(bytes.NewReader(frame), d)
	}
}

// nextReadBackoff doubles the delay after a failed read, bounded by maxReadBackoff.
func nextReadBackoff(d time.Duration) time.Duration {
	if d < minReadBackoff {
		return minReadBackoff
	}
	if d *= 2; d > maxReadBackoff {
		return maxReadBackoff
	}
	return d
}

func (d *RawDevice) Close() error {
	var firstErr error
	for _, conn := range d.connections {
		if err := conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
