package edunet_test

import (
	"bytes"
	"context"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/davidkroell/edunet"
	"github.com/davidkroell/edunet/internal/mocks"
	"github.com/golang/mock/gomock"
	"github.com/juju/errors"
	"github.com/mdlayher/ethernet"
	"github.com/mdlayher/raw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawDevice_SendPacket(t *testing.T) {
	ctrl := gomock.NewController(t)
	arpConn := mocks.NewMockPacketConn(ctrl)
	ip4Conn := mocks.NewMockPacketConn(ctrl)

	device := edunet.NewRawDeviceWithConns("eth0", deviceMac, 1500, map[ethernet.EtherType]net.PacketConn{
		ethernet.EtherTypeARP:  arpConn,
		ethernet.EtherTypeIPv4: ip4Conn,
	})
	assert.Equal(t, "eth0", device.Name())
	assert.Equal(t, deviceMac, device.HardwareAddr())

	frame := marshalFrame(t, ethernet.EtherTypeARP, make([]byte, 46))

	arpConn.EXPECT().WriteTo(frame, gomock.Any()).DoAndReturn(func(b []byte, addr net.Addr) (int, error) {
		rawAddr, ok := addr.(*raw.Addr)
		require.True(t, ok)
		assert.EqualValues(t, deviceMac.HardwareAddr(), rawAddr.HardwareAddr)
		return len(b), nil
	})

	assert.NoError(t, device.SendPacket(frame))

	t.Run("ShortBuffer", func(t *testing.T) {
		assert.Equal(t, io.ErrShortBuffer, device.SendPacket([]byte{1, 2, 3}))
	})

	t.Run("NoConnectionForEtherType", func(t *testing.T) {
		err := device.SendPacket(marshalFrame(t, ethernet.EtherTypeIPv6, make([]byte, 46)))
		assert.Equal(t, edunet.ErrNoPacketConn, errors.Cause(err))
	})
}

// blockingConn delivers frames once, then blocks until closed.
func blockingConn(ctrl *gomock.Controller, frames ...[]byte) *mocks.MockPacketConn {
	conn := mocks.NewMockPacketConn(ctrl)
	closed := make(chan struct{})
	var once sync.Once

	var mu sync.Mutex
	conn.EXPECT().ReadFrom(gomock.Any()).DoAndReturn(func(b []byte) (int, net.Addr, error) {
		mu.Lock()
		if len(frames) > 0 {
			n := copy(b, frames[0])
			frames = frames[1:]
			mu.Unlock()
			return n, &raw.Addr{}, nil
		}
		mu.Unlock()

		<-closed
		return 0, nil, net.ErrClosed
	}).AnyTimes()

	conn.EXPECT().Close().DoAndReturn(func() error {
		once.Do(func() { close(closed) })
		return nil
	}).AnyTimes()

	return conn
}

func TestRawDevice_ListenAndServe(t *testing.T) {
	ctrl := gomock.NewController(t)
	entry := mocks.NewMockModule(ctrl)

	arpFrame := marshalFrame(t, ethernet.EtherTypeARP, bytes.Repeat([]byte{0xaa}, 46))
	ip4Frame := marshalFrame(t, ethernet.EtherTypeIPv4, bytes.Repeat([]byte{0xbb}, 46))

	device := edunet.NewRawDeviceWithConns("eth0", deviceMac, 1500, map[ethernet.EtherType]net.PacketConn{
		ethernet.EtherTypeARP:  blockingConn(ctrl, arpFrame),
		ethernet.EtherTypeIPv4: blockingConn(ctrl, ip4Frame),
	})

	var wg sync.WaitGroup
	wg.Add(2)

	var mu sync.Mutex
	var received [][]byte
	entry.EXPECT().ReadPacket(gomock.Any(), device).Do(func(stream *bytes.Reader, _ edunet.Device) {
		b, _ := io.ReadAll(stream)
		mu.Lock()
		received = append(received, b)
		mu.Unlock()
		wg.Done()
	}).Times(2)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		device.ListenAndServe(ctx, entry)
		close(done)
	}()

	wg.Wait()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("ListenAndServe did not return after cancel")
	}

	assert.ElementsMatch(t, [][]byte{arpFrame, ip4Frame}, received)
}

func TestRawDevice_ListenAndServe_BacksOffOnReadErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	// ReadPacket must not be called
	entry := mocks.NewMockModule(ctrl)

	var reads atomic.Int32
	conn := mocks.NewMockPacketConn(ctrl)
	conn.EXPECT().ReadFrom(gomock.Any()).DoAndReturn(func(b []byte) (int, net.Addr, error) {
		reads.Add(1)
		return 0, nil, errors.New("network is down")
	}).AnyTimes()
	conn.EXPECT().Close().Return(nil).AnyTimes()

	device := edunet.NewRawDeviceWithConns("eth0", deviceMac, 1500, map[ethernet.EtherType]net.PacketConn{
		ethernet.EtherTypeARP: conn,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	start := time.Now()
	device.ListenAndServe(ctx, entry)

	assert.Less(t, time.Since(start), time.Second)
	// 5, 10, 20, 40 and 80 ms between attempts
	assert.GreaterOrEqual(t, reads.Load(), int32(2))
	assert.LessOrEqual(t, reads.Load(), int32(10))
}
