// Package rigwatch wires the J1939/J1708 decoders, the parameter store,
// the watch list, and the persistence layer into the four cooperative
// contexts of spec.md §5: a CAN receiver, a J1708 receiver, a
// display/compute tick, and a persistence tick.
package rigwatch

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/brnsen/rigwatch/j1939"
	"github.com/brnsen/rigwatch/param"
	"github.com/brnsen/rigwatch/persist"
	"github.com/brnsen/rigwatch/watch"
)

// RawFrameFunc matches spec.md §6's raw CAN-frame observer callback.
type RawFrameFunc func(id uint32, data []byte, length int, ts time.Time)

// RawJ1587Func matches spec.md §6's raw J1708-message observer callback.
type RawJ1587Func func(mid byte, data []byte, length int, ts time.Time)

// CANReceiveFunc drains a CAN source, invoking fn for every raw frame,
// until ctx is cancelled or the source errs. Both
// adapter/j1939can.Adapter.Run and a scenario.Generator-driven loop have
// this shape.
type CANReceiveFunc func(ctx context.Context, fn RawFrameFunc) error

// J1708ReceiveFunc is CANReceiveFunc's J1708 counterpart.
type J1708ReceiveFunc func(ctx context.Context, fn RawJ1587Func) error

// Dashboard is the assembled dashboard core: decoders feeding a shared
// parameter store, observed by a watch list and a persistence layer.
type Dashboard struct {
	Store   *param.Store
	Watch   *watch.List
	Persist *persist.Store

	transport *j1939.TransportProtocol

	// ReceiveCAN and ReceiveJ1587 are the bus-side collaborators; supply
	// an adapter's Run method or a scenario generator's Advance loop.
	// Either may be left nil to run without that bus (e.g. bench-testing
	// J1939 decode alone).
	ReceiveCAN   CANReceiveFunc
	ReceiveJ1587 J1708ReceiveFunc

	// DisplayTick and PersistTick default to spec.md §5's 100ms/10s
	// context periods; tests may shorten them.
	DisplayTick time.Duration
	PersistTick time.Duration

	TimeNow func() time.Time

	log *log.Entry
}

// NewDashboard assembles a Dashboard from its shared collaborators.
// ReceiveCAN/ReceiveJ1587 start out nil; set the ones for the buses to
// attach before Run.
func NewDashboard(store *param.Store, watchList *watch.List, persistStore *persist.Store) *Dashboard {
	return &Dashboard{
		Store:       store,
		Watch:       watchList,
		Persist:     persistStore,
		transport:   j1939.NewTransportProtocol(),
		DisplayTick: 100 * time.Millisecond,
		PersistTick: 10 * time.Second,
		TimeNow:     time.Now,
		log:         log.WithField("component", "rigwatch.dashboard"),
	}
}
