package serial

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeRaw struct {
	incoming [][]byte
	written  []byte
	timeouts []time.Duration
	drained  int
	closed   bool
	readErr  error
}

func (f *fakeRaw) Read(p []byte) (int, error) {
	if f.readErr != nil {
		return 0, f.readErr
	}
	if len(f.incoming) == 0 {
		return 0, nil
	}
	n := copy(p, f.incoming[0])
	if n == len(f.incoming[0]) {
		f.incoming = f.incoming[1:]
	} else {
		f.incoming[0] = f.incoming[0][n:]
	}
	return n, nil
}

func (f *fakeRaw) Write(p []byte) (int, error) {
	f.written = append(f.written, p...)
	return len(p), nil
}

func (f *fakeRaw) Drain() error { f.drained++; return nil }

func (f *fakeRaw) SetReadTimeout(t time.Duration) error {
	f.timeouts = append(f.timeouts, t)
	return nil
}

func (f *fakeRaw) Close() error { f.closed = true; return nil }

func TestPort_AvailableThenRead(t *testing.T) {
	raw := &fakeRaw{incoming: [][]byte{[]byte("AB")}}
	p, err := newPort(raw, "test", 5*time.Second)
	require.NoError(t, err)

	n, err := p.Available()
	require.NoError(t, err)
	require.Equal(t, 2, n)

	buf := make([]byte, n)
	got, err := p.Read(buf)
	require.NoError(t, err)
	require.Equal(t, 2, got)
	require.Equal(t, "AB", string(buf))

	n, err = p.Available()
	require.NoError(t, err)
	require.Zero(t, n)

	// Blocking timeout on open, zero for polling; the second poll reuses it.
	require.Equal(t, []time.Duration{5 * time.Second, 0}, raw.timeouts)
}

func TestPort_AvailableCollectsLargeBacklog(t *testing.T) {
	big := make([]byte, pollBufSize+10)
	raw := &fakeRaw{incoming: [][]byte{big}}
	p, err := newPort(raw, "test", time.Second)
	require.NoError(t, err)

	n, err := p.Available()
	require.NoError(t, err)
	require.Equal(t, len(big), n)
}

func TestPort_ReadRestoresTimeout(t *testing.T) {
	raw := &fakeRaw{}
	p, err := newPort(raw, "test", time.Second)
	require.NoError(t, err)

	_, _ = p.Available()
	n, err := p.Read(make([]byte, 8))
	require.NoError(t, err)
	require.Zero(t, n)
	require.Equal(t, []time.Duration{time.Second, 0, time.Second}, raw.timeouts)
}

func TestPort_AvailableError(t *testing.T) {
	raw := &fakeRaw{readErr: errors.New("device unplugged")}
	p, err := newPort(raw, "test", time.Second)
	require.NoError(t, err)

	_, err = p.Available()
	require.EqualError(t, err, "device unplugged")
}

func TestPort_FlushAndClose(t *testing.T) {
	raw := &fakeRaw{}
	p, err := newPort(raw, "test", time.Second)
	require.NoError(t, err)

	_, err = p.Write([]byte("hi"))
	require.NoError(t, err)
	require.NoError(t, p.Flush())
	require.NoError(t, p.Close())
	require.Equal(t, "hi", string(raw.written))
	require.Equal(t, 1, raw.drained)
	require.True(t, raw.closed)
}

func TestMode(t *testing.T) {
	m := Mode(2400)
	require.Equal(t, 2400, m.BaudRate)
	require.Equal(t, 8, m.DataBits)
}
