package rigwatch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brnsen/rigwatch/j1939"
	"github.com/brnsen/rigwatch/param"
	"github.com/brnsen/rigwatch/persist"
	"github.com/brnsen/rigwatch/watch"
)

func newTestDashboard(t *testing.T) *Dashboard {
	store := param.NewStore()
	watchList := watch.NewList(store)
	persistStore := persist.NewStore(persist.NewMemoryBackend())
	require.NoError(t, persistStore.Boot(time.Unix(1700000000, 0)))
	return NewDashboard(store, watchList, persistStore)
}

func TestHandleCANFrame_SingleFrameEEC1UpdatesStore(t *testing.T) {
	d := newTestDashboard(t)
	ts := time.Unix(1700000000, 0)

	id := j1939.BuildID(j1939.PGNEEC1, 0x00, 3)
	data := []byte{0x00, 0x7D, 0x7D, 0x80, 0x3E, 0x00, 0x00, 0x00}

	d.handleCANFrame(id, data, len(data), ts)

	v, ok := d.Store.Get(param.EngineSpeed)
	require.True(t, ok)
	assert.InDelta(t, 2000.0, v, 0.01)
}

func TestHandleCANFrame_TransportReassemblyRoutesDrainedPayload(t *testing.T) {
	d := newTestDashboard(t)
	ts := time.Unix(1700000000, 0)
	sa := uint8(0x11)

	// the reassembled 8-byte DM1 payload: lamps=00 10 (malfunction on),
	// one DTC record spn=110 fmi=0 oc=1, then padding.
	bamID := j1939.BuildID(j1939.PGNTPConnManagement, sa, 7)
	bamData := []byte{0x20, 8, 0x00, 2, 0xFF, 0xCA, 0xFE, 0x00} // total=8, packets=2, target pgn 65226 (0xFECA)
	d.handleCANFrame(bamID, bamData, len(bamData), ts)

	dtID := j1939.BuildID(j1939.PGNTPDataTransfer, sa, 7)
	dt1 := []byte{1, 0x00, 0x10, 0x6E, 0x00, 0x00, 0x01, 0xFF}
	d.handleCANFrame(dtID, dt1, len(dt1), ts.Add(10*time.Millisecond))
	dt2 := []byte{2, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
	d.handleCANFrame(dtID, dt2, len(dt2), ts.Add(20*time.Millisecond))

	// the drained 8-byte DM1 payload (lamps=00 10, one DTC spn=110 fmi=0 oc=1)
	// must have reached handleDM1 and updated the active-fault count.
	v, ok := d.Store.Get(param.ActiveDTCCount)
	require.True(t, ok)
	assert.Equal(t, 1.0, v)

	entries := d.Persist.DTCHistory()
	require.Len(t, entries, 1)
	assert.Equal(t, uint32(110), entries[0].SPN)
	assert.True(t, entries[0].Active)
}

func TestHandleDM1_NoActiveFaultsMarksHistoryInactive(t *testing.T) {
	d := newTestDashboard(t)
	ts := time.Unix(1700000000, 0)
	d.Persist.StoreDTC(110, 0, 0, ts.Unix(), true)

	noFault := []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0xFF, 0xFF, 0xFF}
	d.handleDM1(0x00, noFault, ts)

	entries := d.Persist.DTCHistory()
	require.Len(t, entries, 1)
	assert.False(t, entries[0].Active)
}

func TestPersistenceTick_IntegratesSpeedAndFuelRate(t *testing.T) {
	d := newTestDashboard(t)
	d.PersistTick = 10 * time.Second
	ts := time.Unix(1700000000, 0)

	// speeds chosen so the resulting 10s delta clears the 1km volume flush
	// trigger and the accumulator is folded into the trips immediately.
	d.Store.Update(param.VehicleSpeed, 432, param.SourceJ1939, ts) // km/h
	d.Store.Update(param.FuelRate, 180, param.SourceJ1939, ts)     // L/h

	d.persistenceTick(ts.Add(10 * time.Second))

	// 432 km/h * (10s/3600s) = 1.2 km; 180 L/h * (10s/3600s) = 0.5 L
	assert.InDelta(t, 1.2, d.Persist.Trip(0).Distance, 1e-9)
	assert.InDelta(t, 0.5, d.Persist.Trip(0).FuelUsed, 1e-9)
}
