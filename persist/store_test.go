package persist

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Boot_FirstBootDoesNotCountAsCrash(t *testing.T) {
	backend := NewMemoryBackend()
	s := NewStore(backend)

	require.NoError(t, s.Boot(time.Unix(1700000000, 0)))

	assert.Equal(t, uint32(0), s.State().CrashCount)
	assert.Equal(t, uint32(1), s.State().BootCount)
	assert.False(t, s.State().CleanShutdown)
}

func TestStore_Boot_DirtyPriorSessionBumpsCrashCount(t *testing.T) {
	backend := NewMemoryBackend()
	s := NewStore(backend)
	now := time.Unix(1700000000, 0)
	require.NoError(t, s.Boot(now))
	// simulate an abrupt power loss: clean_shutdown left false on disk

	s2 := NewStore(backend)
	require.NoError(t, s2.Boot(now.Add(time.Hour)))

	assert.Equal(t, uint32(1), s2.State().CrashCount)
	assert.Equal(t, uint32(2), s2.State().BootCount)
}

func TestStore_CleanShutdownThenBootDetectsNoCrash(t *testing.T) {
	backend := NewMemoryBackend()
	s := NewStore(backend)
	now := time.Unix(1700000000, 0)
	require.NoError(t, s.Boot(now))
	require.NoError(t, s.Shutdown(now.Add(time.Minute)))

	s2 := NewStore(backend)
	require.NoError(t, s2.Boot(now.Add(time.Hour)))

	assert.Equal(t, uint32(0), s2.State().CrashCount)
}

func TestStore_TickVolumeTriggerFlushesAndFoldsIntoTrips(t *testing.T) {
	backend := NewMemoryBackend()
	s := NewStore(backend)
	now := time.Unix(1700000000, 0)
	require.NoError(t, s.Boot(now))

	require.NoError(t, s.Tick(now.Add(time.Second), 1.5, 0.2)) // exceeds 1km volume trigger

	assert.InDelta(t, 1.5, s.Trip(0).Distance, 0.0001)
	assert.InDelta(t, 1.5, s.Trip(1).Distance, 0.0001)
	assert.InDelta(t, 1.5, s.Lifetime().TotalDistance, 0.0001)

	// a fresh store loaded from the same backend sees the flushed trip
	s2 := NewStore(backend)
	require.NoError(t, s2.Boot(now.Add(time.Hour)))
	assert.InDelta(t, 1.5, s2.Trip(0).Distance, 0.0001)
}

func TestStore_TickBelowThresholdsDoesNotFlush(t *testing.T) {
	backend := NewMemoryBackend()
	s := NewStore(backend)
	now := time.Unix(1700000000, 0)
	require.NoError(t, s.Boot(now))

	require.NoError(t, s.Tick(now.Add(time.Second), 0.1, 0.01))

	assert.Equal(t, 0.0, s.Trip(0).Distance) // not yet folded
}

func TestStore_ResetTrip(t *testing.T) {
	backend := NewMemoryBackend()
	s := NewStore(backend)
	now := time.Unix(1700000000, 0)
	require.NoError(t, s.Boot(now))
	require.NoError(t, s.Tick(now.Add(time.Second), 5, 1))

	s.ResetTrip(0, now.Unix())

	assert.Equal(t, 0.0, s.Trip(0).Distance)
	assert.True(t, s.Trip(0).Active)
	assert.InDelta(t, 5.0, s.Trip(1).Distance, 0.0001) // trip B untouched
}

func TestStore_DTCLifecycle(t *testing.T) {
	backend := NewMemoryBackend()
	s := NewStore(backend)
	now := time.Unix(1700000000, 0)
	require.NoError(t, s.Boot(now))

	s.StoreDTC(110, 0, 0x00, now.Unix(), true)
	require.Len(t, s.DTCHistory(), 1)

	s.ClearActiveDTCs()
	assert.False(t, s.DTCHistory()[0].Active)

	s.ClearAllDTCs()
	assert.Empty(t, s.DTCHistory())
}

func TestStore_SettingsRoundTripThroughBackend(t *testing.T) {
	backend := NewMemoryBackend()
	s := NewStore(backend)
	now := time.Unix(1700000000, 0)
	require.NoError(t, s.Boot(now))

	custom := Settings{Units: UnitImperial, Brightness: 40, DefaultPage: 1, TemperatureUnit: "F", PressureUnit: "psi", EconomyUnit: "mpg", Tank1Capacity: 100, Tank2Capacity: 100}
	s.SetSettings(custom)
	require.NoError(t, s.EmergencyFlush(now))

	s2 := NewStore(backend)
	require.NoError(t, s2.Boot(now.Add(time.Hour)))
	assert.Equal(t, custom, s2.Settings())
}
