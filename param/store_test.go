package param

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_UpdateAndGet(t *testing.T) {
	s := NewStore()
	now := time.Unix(1700000000, 0).UTC()

	_, ok := s.Get(EngineSpeed)
	assert.False(t, ok)

	s.Update(EngineSpeed, 1500, SourceJ1939, now)
	v, ok := s.Get(EngineSpeed)
	require.True(t, ok)
	assert.Equal(t, 1500.0, v)

	rec, ok := s.Record(EngineSpeed)
	require.True(t, ok)
	assert.Equal(t, 0.0, rec.PrevValue)
	assert.Equal(t, uint64(1), rec.UpdateCount)
	assert.Equal(t, SourceJ1939, rec.Source)
}

func TestStore_Update_NoneAndOutOfRangeAreNoOps(t *testing.T) {
	s := NewStore()
	now := time.Unix(1700000000, 0).UTC()

	s.Update(None, 42, SourceJ1939, now)
	_, ok := s.Get(None)
	assert.False(t, ok)

	s.Update(Identity(200), 42, SourceJ1939, now)
	_, ok = s.Get(Identity(200))
	assert.False(t, ok)
}

func TestStore_Update_OlderTimestampDiscarded(t *testing.T) {
	s := NewStore()
	now := time.Unix(1700000000, 0).UTC()

	s.Update(CoolantTemp, 90, SourceJ1939, now)
	s.Update(CoolantTemp, 999, SourceJ1708, now.Add(-time.Second)) // stale, discarded

	v, ts, ok := s.GetWithTime(CoolantTemp)
	require.True(t, ok)
	assert.Equal(t, 90.0, v)
	assert.Equal(t, now, ts)
}

func TestStore_IsFreshAndAge(t *testing.T) {
	s := NewStore()
	now := time.Unix(1700000000, 0).UTC()
	s.Update(BatteryVoltage, 12.6, SourceJ1939, now)

	assert.True(t, s.IsFresh(BatteryVoltage, now.Add(4*time.Second), 5*time.Second))
	assert.False(t, s.IsFresh(BatteryVoltage, now.Add(6*time.Second), 5*time.Second))
	assert.Equal(t, 4*time.Second, s.Age(BatteryVoltage, now.Add(4*time.Second)))

	assert.Equal(t, time.Duration(math.MaxInt64), s.Age(EngineSpeed, now)) // unset record saturates high
}

func TestStore_Invalidate(t *testing.T) {
	s := NewStore()
	now := time.Unix(1700000000, 0).UTC()
	s.Update(FuelLevel1, 80, SourceJ1708, now)

	s.Invalidate(FuelLevel1)
	_, ok := s.Get(FuelLevel1)
	assert.False(t, ok)

	// value history survives invalidation
	rec, _ := s.Record(FuelLevel1)
	assert.Equal(t, 80.0, rec.Value)

	// a subsequent update re-validates
	s.Update(FuelLevel1, 78, SourceJ1708, now.Add(time.Second))
	_, ok = s.Get(FuelLevel1)
	assert.True(t, ok)
}

func TestStore_ObserverFiresOnFirstValidAndOnMeaningfulChange(t *testing.T) {
	s := NewStore()
	now := time.Unix(1700000000, 0).UTC()

	var calls []float64
	s.RegisterObserver(func(id Identity, value, prev float64) {
		if id == EngineSpeed {
			calls = append(calls, value)
		}
	})

	s.Update(EngineSpeed, 1500, SourceJ1939, now)               // first valid: fires
	s.Update(EngineSpeed, 1500.0001, SourceJ1939, now.Add(1))   // below epsilon: suppressed
	s.Update(EngineSpeed, 1510, SourceJ1939, now.Add(2))        // above epsilon: fires

	assert.Equal(t, []float64{1500, 1510}, calls)
}

func TestIdentity_NameAndUnit(t *testing.T) {
	assert.Equal(t, "Engine Speed", EngineSpeed.Name())
	assert.Equal(t, "rpm", EngineSpeed.Unit())
	assert.Equal(t, "", Identity(255).Name())
}
