package device

import (
	"testing"

	"github.com/google/gousb"
	"github.com/stretchr/testify/require"
)

func TestSessionCloseIsIdempotent(t *testing.T) {
	released := 0
	s := &Session{
		release: func() { released++ },
		logger:  testLogger(),
	}

	s.Close()
	s.Close()
	s.Close()
	require.Equal(t, 1, released, "release должен вызываться ровно один раз")
}

func TestSessionCloseWithoutRelease(t *testing.T) {
	s := &Session{logger: testLogger()}
	require.NotPanics(t, func() { s.Close() })
}

func endpoint(num int, dir gousb.EndpointDirection, tt gousb.TransferType) gousb.EndpointDesc {
	return gousb.EndpointDesc{
		Number:        num,
		Direction:     dir,
		TransferType:  tt,
		MaxPacketSize: 64,
	}
}

func TestBulkEndpointsResolvesBothDirections(t *testing.T) {
	setting := gousb.InterfaceSetting{
		Endpoints: map[gousb.EndpointAddress]gousb.EndpointDesc{
			0x01: endpoint(1, gousb.EndpointDirectionOut, gousb.TransferTypeBulk),
			0x82: endpoint(2, gousb.EndpointDirectionIn, gousb.TransferTypeBulk),
		},
	}

	out, in := bulkEndpoints(setting)
	require.NotNil(t, out)
	require.NotNil(t, in)
	require.Equal(t, 1, out.Number)
	require.Equal(t, 2, in.Number)
}

func TestBulkEndpointsIgnoresNonBulk(t *testing.T) {
	setting := gousb.InterfaceSetting{
		Endpoints: map[gousb.EndpointAddress]gousb.EndpointDesc{
			0x81: endpoint(1, gousb.EndpointDirectionIn, gousb.TransferTypeInterrupt),
			0x02: endpoint(2, gousb.EndpointDirectionOut, gousb.TransferTypeBulk),
		},
	}

	out, in := bulkEndpoints(setting)
	require.NotNil(t, out)
	require.Equal(t, 2, out.Number)
	require.Nil(t, in, "interrupt-конечная точка не подходит протоколу статуса")
}

func TestBulkEndpointsMissingOut(t *testing.T) {
	setting := gousb.InterfaceSetting{
		Endpoints: map[gousb.EndpointAddress]gousb.EndpointDesc{
			0x81: endpoint(1, gousb.EndpointDirectionIn, gousb.TransferTypeBulk),
		},
	}

	out, in := bulkEndpoints(setting)
	require.Nil(t, out)
	require.NotNil(t, in)
}
