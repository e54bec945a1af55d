package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNameJoinsPrefixAndParts(t *testing.T) {
	ring := NewRingBackend(8)
	l := New(ring, Config{GlobalPrefix: "p"})

	l.Gauge([]string{"a", "b"}, 1)
	require.Len(t, ring.Lines(), 1)
	assert.Equal(t, "p.a.b:1|g", ring.Lines()[0])
}

func TestCounterAppendsCounterSuffix(t *testing.T) {
	ring := NewRingBackend(8)
	l := New(ring, Config{GlobalPrefix: "p"})

	require.NoError(t, l.Counter([]string{"a"}, 1))
	assert.Equal(t, "p.a.counter:1|c", ring.Lines()[0])
}

func TestCounterSampleRateBelowZeroRaises(t *testing.T) {
	l := New(NoopBackend{}, Config{})
	assert.Error(t, l.Counter([]string{"a"}, 1, -0.0001))
}

func TestCounterSampleRateAboveOneRaises(t *testing.T) {
	l := New(NoopBackend{}, Config{})
	assert.Error(t, l.Counter([]string{"a"}, 1, 1.0001))
}

func TestCounterZeroRateNeverSends(t *testing.T) {
	ring := NewRingBackend(8)
	l := New(ring, Config{})

	for i := 0; i < 50; i++ {
		require.NoError(t, l.Counter([]string{"a"}, 1, 0.0))
	}
	assert.Empty(t, ring.Lines())
}

func TestCounterRateOneAlwaysSends(t *testing.T) {
	ring := NewRingBackend(8)
	l := New(ring, Config{})

	for i := 0; i < 50; i++ {
		require.NoError(t, l.Counter([]string{"a"}, 1, 1.0))
	}
	assert.Len(t, ring.Lines(), 8) // ring caps at its configured size
}

func TestPrependHostReverseReversesDottedHostname(t *testing.T) {
	ring := NewRingBackend(8)
	l := New(ring, Config{PrependHost: true, PrependHostReverse: true, Hostname: "host.example.com"})

	l.Gauge([]string{"x"}, 1)
	assert.Equal(t, "com.example.host.x:1|g", ring.Lines()[0])
}

func TestRingBackendFormatsSampledCounterWithRateSuffix(t *testing.T) {
	ring := NewRingBackend(8)
	ring.Counter("a.counter", 1, 0.5)
	assert.Equal(t, "a.counter:1|c@0.5", ring.Lines()[0])
}
