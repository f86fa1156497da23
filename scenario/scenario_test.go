package scenario

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brnsen/rigwatch/j1939"
)

func TestNewGenerator_RejectsUnknownScenario(t *testing.T) {
	_, err := NewGenerator(Name("banana"), 1)
	assert.ErrorIs(t, err, ErrUnknownScenario)
}

func TestGenerator_EmitsEEC1AtItsPeriod(t *testing.T) {
	g, err := NewGenerator(Highway, 42)
	require.NoError(t, err)

	now := time.Unix(1700000000, 0)
	var eec1Count int
	for i := 0; i < 100; i++ { // 100 * 10ms = 1s of simulated time
		g.Advance(now, 10*time.Millisecond, func(id uint32, data []byte, length int, ts time.Time) {
			h := j1939.DecodeHeader(id)
			if h.PGN == j1939.PGNEEC1 {
				eec1Count++
			}
		})
	}
	// EEC1 fires every 10ms including the very first tick: ~100 emissions.
	assert.InDelta(t, 100, eec1Count, 2)
}

func TestGenerator_HighwayEngineSpeedDecodesPlausibly(t *testing.T) {
	g, err := NewGenerator(Highway, 7)
	require.NoError(t, err)

	now := time.Unix(1700000000, 0)
	var gotSpeed float64
	var sawEEC1 bool
	g.Advance(now, 10*time.Millisecond, func(id uint32, data []byte, length int, ts time.Time) {
		h := j1939.DecodeHeader(id)
		if h.PGN == j1939.PGNEEC1 {
			v, ok := j1939.DecodeEngineSpeed(data)
			require.True(t, ok)
			gotSpeed = v
			sawEEC1 = true
		}
	})
	require.True(t, sawEEC1)
	assert.InDelta(t, 1800, gotSpeed, 100)
}

func TestGenerator_InjectFaultRaisesDM1Rate(t *testing.T) {
	g, err := NewGenerator(FaultInjection, 1)
	require.NoError(t, err)
	g.InjectFault(110, 0)

	now := time.Unix(1700000000, 0)
	var dm1Count int
	for i := 0; i < 250; i++ { // 250 * 10ms = 2.5s
		g.Advance(now, 10*time.Millisecond, func(id uint32, data []byte, length int, ts time.Time) {
			h := j1939.DecodeHeader(id)
			if h.PGN == j1939.PGNDM1 {
				dm1Count++
			}
		})
	}
	// active DM1 period is 1s, so ~2-3 emissions over 2.5s.
	assert.GreaterOrEqual(t, dm1Count, 2)

	var lastDM1 []byte
	g.Advance(now, time.Second, func(id uint32, data []byte, length int, ts time.Time) {
		h := j1939.DecodeHeader(id)
		if h.PGN == j1939.PGNDM1 {
			lastDM1 = data
		}
	})
	require.NotNil(t, lastDM1)

	var dtcs [4]j1939.DTC
	dm1, n := j1939.ParseDM1(lastDM1, engineSourceAddress, dtcs[:])
	require.Equal(t, 1, n)
	assert.True(t, dm1.Lamps.Malfunction)
	assert.Equal(t, uint32(110), dtcs[0].SPN)
}

func TestGenerator_ClearFaultReturnsToIdleDM1Rate(t *testing.T) {
	g, err := NewGenerator(FaultInjection, 1)
	require.NoError(t, err)
	g.InjectFault(110, 0)
	g.ClearFault()

	assert.False(t, g.State().FaultActive)
	assert.Equal(t, dm1PeriodIdle, g.dm1Period())
}

func TestGenerator_SameSeedReproducesSameFrames(t *testing.T) {
	a, err := NewGenerator(City, 99)
	require.NoError(t, err)
	b, err := NewGenerator(City, 99)
	require.NoError(t, err)

	now := time.Unix(1700000000, 0)
	var framesA, framesB [][]byte
	for i := 0; i < 20; i++ {
		a.Advance(now, 50*time.Millisecond, func(id uint32, data []byte, length int, ts time.Time) {
			framesA = append(framesA, append([]byte(nil), data...))
		})
		b.Advance(now, 50*time.Millisecond, func(id uint32, data []byte, length int, ts time.Time) {
			framesB = append(framesB, append([]byte(nil), data...))
		})
	}
	assert.Equal(t, framesA, framesB)
}

func TestGenerator_SelectSwitchesScenarioWithoutResettingClock(t *testing.T) {
	g, err := NewGenerator(Idle, 1)
	require.NoError(t, err)

	now := time.Unix(1700000000, 0)
	g.Advance(now, 30*time.Second, func(uint32, []byte, int, time.Time) {})

	require.NoError(t, g.Select(Highway))
	g.Advance(now, time.Millisecond, func(uint32, []byte, int, time.Time) {})

	assert.InDelta(t, 1800, g.State().EngineSpeed, 100)
}
