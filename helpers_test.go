package edunet_test

import (
	"bytes"
	"testing"

	"github.com/davidkroell/edunet"
	"github.com/davidkroell/edunet/internal/mocks"
	"github.com/golang/mock/gomock"
	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/stretchr/testify/require"
)

var (
	deviceMac = edunet.MacAddress{1, 1, 1, 2, 2, 2}
	peerMac   = edunet.MacAddress{1, 1, 1, 3, 3, 3}
	otherMac  = edunet.MacAddress{1, 1, 1, 4, 4, 4}

	deviceIp = edunet.Ip4Address{192, 168, 100, 1}
	peerIp   = edunet.Ip4Address{192, 168, 100, 100}
	otherIp  = edunet.Ip4Address{192, 168, 100, 50}
)

func newMockDevice(ctrl *gomock.Controller) *mocks.MockDevice {
	device := mocks.NewMockDevice(ctrl)
	device.EXPECT().HardwareAddr().Return(deviceMac).AnyTimes()
	return device
}

// arpPayload encodes an Ethernet/IPv4 ARP packet without the frame header.
func arpPayload(t *testing.T, header edunet.ArpHeader, senderMac edunet.MacAddress, senderIp edunet.Ip4Address,
	targetMac edunet.MacAddress, targetIp edunet.Ip4Address) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, header.Write(&buf))
	require.NoError(t, senderMac.Write(&buf))
	require.NoError(t, senderIp.Write(&buf))
	require.NoError(t, targetMac.Write(&buf))
	require.NoError(t, targetIp.Write(&buf))
	return buf.Bytes()
}

// decodeArpFrame decodes a sent frame with gopacket.
func decodeArpFrame(t *testing.T, b []byte) (*layers.Ethernet, *layers.ARP) {
	t.Helper()

	p := gopacket.NewPacket(b, layers.LayerTypeEthernet, gopacket.Default)

	ethLayer := p.Layer(layers.LayerTypeEthernet)
	require.NotNil(t, ethLayer)
	arpLayer := p.Layer(layers.LayerTypeARP)
	require.NotNil(t, arpLayer)

	return ethLayer.(*layers.Ethernet), arpLayer.(*layers.ARP)
}
