package rigwatch

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/brnsen/rigwatch/param"
)

// Run starts every configured context and blocks until ctx is cancelled or
// one of them returns an error, per spec.md §5's cooperative-contexts
// model. Shutdown always runs Persist.Shutdown before returning, matching
// spec.md §5's "orderly shutdown ... mark clean_shutdown=true,
// emergency-flush, release storage".
func (d *Dashboard) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	if d.ReceiveCAN != nil {
		g.Go(func() error { return d.ReceiveCAN(gctx, d.handleCANFrame) })
	}
	if d.ReceiveJ1587 != nil {
		g.Go(func() error { return d.ReceiveJ1587(gctx, d.handleJ1587Message) })
	}
	g.Go(func() error { return d.runDisplayLoop(gctx) })
	g.Go(func() error { return d.runPersistenceLoop(gctx) })

	runErr := g.Wait()

	if err := d.Persist.Shutdown(d.TimeNow()); err != nil {
		if runErr == nil {
			return err
		}
		d.log.WithError(err).Error("shutdown flush failed after run error")
	}
	return runErr
}

// runDisplayLoop is the medium-priority display/compute context: it
// reclaims stalled transport sessions and recomputes watch-list severities
// on a fixed tick (spec.md §5).
func (d *Dashboard) runDisplayLoop(ctx context.Context) error {
	ticker := time.NewTicker(d.DisplayTick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			now := d.TimeNow()
			d.transport.CheckTimeouts(now)
			d.Watch.Update(now)
		}
	}
}

// runPersistenceLoop is the lowest-priority persistence context: it
// integrates the vehicle-speed and fuel-rate samples into distance/fuel
// deltas and feeds them to the persistence accumulator on a fixed tick
// (spec.md §4.7, §5).
func (d *Dashboard) runPersistenceLoop(ctx context.Context) error {
	ticker := time.NewTicker(d.PersistTick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			d.persistenceTick(d.TimeNow())
		}
	}
}

func (d *Dashboard) persistenceTick(now time.Time) {
	dtHours := d.PersistTick.Hours()

	speed, _ := d.Store.Get(param.VehicleSpeed)
	fuelRate, _ := d.Store.Get(param.FuelRate)
	deltaDistance := speed * dtHours
	deltaFuel := fuelRate * dtHours

	if err := d.Persist.Tick(now, deltaDistance, deltaFuel); err != nil {
		d.log.WithError(err).Error("persistence tick failed")
	}

	if hours, ok := d.Store.Get(param.EngineHours); ok {
		d.Persist.SetEngineHours(hours)
	}
	if deltaDistance >= 0.1 && deltaFuel > 0 {
		economy := deltaFuel * 100 / deltaDistance // L/100km
		d.Persist.ObserveEconomy(economy)
		d.Store.Update(param.FuelEconomy, economy, param.SourceComputed, now)
	}

	lifetime := d.Persist.Lifetime()
	d.Store.Update(param.TotalDistance, lifetime.TotalDistance, param.SourceComputed, now)
}
