package device

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/iwtcode/graphtecAdapter/models"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	writes [][]byte
	err    error
}

func (w *fakeWriter) WriteContext(ctx context.Context, buf []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	cp := make([]byte, len(buf))
	copy(cp, buf)
	w.writes = append(w.writes, cp)
	return len(buf), nil
}

type fakeReader struct {
	reply []byte
	err   error
	// block заставляет чтение ждать истечения контекста.
	block bool
}

func (r *fakeReader) ReadContext(ctx context.Context, buf []byte) (int, error) {
	if r.block {
		<-ctx.Done()
		return 0, ctx.Err()
	}
	if r.err != nil {
		return 0, r.err
	}
	return copy(buf, r.reply), nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestDecodeState(t *testing.T) {
	cases := []struct {
		reply []byte
		want  models.CutterState
	}{
		{[]byte{0x00}, models.StateReady},
		{[]byte{0x01}, models.StateMoving},
		{[]byte{0x02}, models.StateUnloaded},
		{[]byte{0x03}, models.StatePaused},
		{[]byte{0x04}, models.StateUnknown},
		{[]byte{0xff}, models.StateUnknown},
		{nil, models.StateUnknown},
		{[]byte{}, models.StateUnknown},
		// Значим только первый байт.
		{[]byte{0x02, 0x00, 0x00}, models.StateUnloaded},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, DecodeState(tc.reply), "reply %v", tc.reply)
	}
}

func TestQueryStateSendsFixedRequest(t *testing.T) {
	w := &fakeWriter{}
	r := &fakeReader{reply: []byte{0x00}}

	state := queryState(context.Background(), w, r, 64, time.Second, testLogger())
	require.Equal(t, models.StateReady, state)
	require.Len(t, w.writes, 1)
	require.Equal(t, []byte{0x1b, 0x05}, w.writes[0])
}

func TestQueryStateWriteFailureDegradesToUnknown(t *testing.T) {
	w := &fakeWriter{err: errors.New("pipe stall")}
	r := &fakeReader{reply: []byte{0x00}}

	state := queryState(context.Background(), w, r, 64, time.Second, testLogger())
	require.Equal(t, models.StateUnknown, state)
}

func TestQueryStateReadTimeoutDegradesToUnknown(t *testing.T) {
	w := &fakeWriter{}
	r := &fakeReader{block: true}

	start := time.Now()
	state := queryState(context.Background(), w, r, 64, 20*time.Millisecond, testLogger())
	require.Equal(t, models.StateUnknown, state)
	require.Less(t, time.Since(start), time.Second, "чтение должно прерываться по таймауту")
}

func TestQueryStateUnloadedReply(t *testing.T) {
	w := &fakeWriter{}
	r := &fakeReader{reply: []byte{0x02}}

	state := queryState(context.Background(), w, r, 64, time.Second, testLogger())
	require.Equal(t, models.StateUnloaded, state)
}

func TestQueryStateRequiresInEndpoint(t *testing.T) {
	s := &Session{logger: testLogger()}
	_, err := s.QueryState(context.Background(), time.Second)
	require.ErrorIs(t, err, ErrEndpointNotFound)
}
