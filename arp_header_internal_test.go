package edunet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArpPacket_MarshalBinary(t *testing.T) {
	packet := arpPacket{
		header:          NewArpHeader(ArpOperationRequest),
		senderHwAddr:    MacAddress{1, 1, 1, 2, 2, 2},
		senderProtoAddr: Ip4Address{192, 168, 100, 1},
		targetHwAddr:    EmptyMacAddress,
		targetProtoAddr: Ip4Address{192, 168, 100, 100},
	}

	b, err := packet.MarshalBinary()
	require.NoError(t, err)

	want := []byte{
		0x00, 0x01, // ethernet
		0x08, 0x00, // IPv4
		6, 4,
		0x00, 0x01, // request
		1, 1, 1, 2, 2, 2,
		192, 168, 100, 1,
		0, 0, 0, 0, 0, 0,
		192, 168, 100, 100,
	}
	assert.Equal(t, want, b)

	// the streaming header codec agrees
	var header bytes.Buffer
	require.NoError(t, packet.header.Write(&header))
	assert.Equal(t, want[:arpHeaderLen], header.Bytes())

	var decoded arpPacket
	r := bytes.NewReader(b)
	require.NoError(t, decoded.header.Read(r))
	require.NoError(t, decoded.readBody(r))
	assert.Equal(t, packet, decoded)
}
