package persist

import (
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	log "github.com/sirupsen/logrus"
)

// Namespace names, matching spec.md §4.7's list. BestEconomy/WorstEconomy
// live in their own namespace even though they are modeled as part of
// Lifetime (see lifetime.go).
const (
	nsTripA       = "trip-a"
	nsTripB       = "trip-b"
	nsLifetime    = "lifetime"
	nsFuelEconomy = "fuel-economy"
	nsDTCHistory  = "dtc-history"
	nsSettings    = "settings"
	nsSystemState = "system-state"
)

// namespace dirty-flag indices.
const (
	dirtyTripA = iota
	dirtyTripB
	dirtyLifetime
	dirtyFuelEconomy
	dirtyDTCHistory
	dirtySettings
	dirtySystemState
	numNamespaces
)

const (
	flushPeriod       = 5 * time.Minute
	volumeThresholdKM = 1.0
)

// Store is the persistent-storage layer of spec.md §4.7: namespaced
// records with dirty-flag write batching and a clean/dirty-shutdown boot
// protocol. All access is serialized by the persistence context (spec.md
// §5: "no other context holds a handle concurrently"); the mutex here
// upholds that even if a caller violates the intended ownership.
type Store struct {
	mu      sync.Mutex
	backend Backend
	log     *log.Entry

	trips      [2]Trip
	lifetime   Lifetime
	dtcHistory *DTCHistory
	settings   Settings
	state      SystemState

	dirty [numNamespaces]bool

	accumDistance float64
	accumFuel     float64
	lastFlushTime time.Time
}

// NewStore creates a Store bound to backend. Call Boot before using it.
func NewStore(backend Backend) *Store {
	return &Store{
		backend:    backend,
		dtcHistory: NewDTCHistory(),
		log:        log.WithField("component", "persist.store"),
	}
}

// Boot loads every namespace, applying documented defaults to any that is
// absent, then runs the crash-detection protocol: boot_count is
// incremented, crash_count is bumped if the persisted clean_shutdown flag
// is false, and clean_shutdown is written back false immediately so a
// missed shutdown is detectable on the next boot (spec.md §4.7).
func (s *Store) Boot(now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	nowEpoch := now.Unix()

	s.trips[0], _ = s.loadTrip(nsTripA)
	s.trips[1], _ = s.loadTrip(nsTripB)

	if b, ok, err := s.backend.Load(nsLifetime); err != nil {
		return err
	} else if ok {
		s.lifetime = decodeLifetimeCore(b)
	} else {
		s.lifetime = DefaultLifetime(nowEpoch)
	}
	if b, ok, err := s.backend.Load(nsFuelEconomy); err != nil {
		return err
	} else if ok {
		s.lifetime.BestEconomy, s.lifetime.WorstEconomy = decodeEconomy(b)
	} else if s.lifetime.BestEconomy == 0 && s.lifetime.WorstEconomy == 0 {
		s.lifetime.BestEconomy = 0
		s.lifetime.WorstEconomy = 999
	}

	if b, ok, err := s.backend.Load(nsDTCHistory); err != nil {
		return err
	} else if ok {
		s.dtcHistory = decodeDTCHistory(b)
	} else {
		s.dtcHistory = NewDTCHistory()
	}

	if b, ok, err := s.backend.Load(nsSettings); err != nil {
		return err
	} else if ok {
		s.settings = decodeSettings(b)
	} else {
		s.settings = DefaultSettings()
	}

	stateBytes, hadState, err := s.backend.Load(nsSystemState)
	if err != nil {
		return err
	}
	if hadState {
		s.state = decodeState(stateBytes)
		if !s.state.CleanShutdown {
			s.state.CrashCount++
			s.log.Warn("previous session did not shut down cleanly")
		}
	} else {
		s.state = SystemState{}
	}
	s.state.BootCount++
	s.lifetime.BootCount++
	s.state.CleanShutdown = false
	s.state.LastKnownTime = nowEpoch
	s.lastFlushTime = now

	// Persist the crash-detection write immediately, not on the next
	// batched flush, so a power loss right after boot is still detected.
	return s.backend.Save(nsSystemState, s.state.encode())
}

func (s *Store) loadTrip(namespace string) (Trip, bool) {
	b, ok, err := s.backend.Load(namespace)
	if err != nil || !ok {
		return Trip{}, false
	}
	return decodeTrip(b), true
}

// Tick supplies one accumulator sample: elapsed distance/fuel since the
// last call. It folds and flushes when the periodic or volume trigger
// fires (spec.md §4.7).
func (s *Store) Tick(now time.Time, deltaDistanceKM, deltaFuelL float64) error {
	s.mu.Lock()
	s.accumDistance += deltaDistanceKM
	s.accumFuel += deltaFuelL

	periodic := s.lastFlushTime.IsZero() || now.Sub(s.lastFlushTime) >= flushPeriod
	volume := s.accumDistance >= volumeThresholdKM
	s.mu.Unlock()

	if periodic || volume {
		return s.foldAndFlush(now)
	}
	return nil
}

// EmergencyFlush forces every namespace dirty and flushes immediately,
// for a caller-detected power-loss precondition (spec.md §4.7).
func (s *Store) EmergencyFlush(now time.Time) error {
	s.mu.Lock()
	for i := range s.dirty {
		s.dirty[i] = true
	}
	s.mu.Unlock()
	return s.foldAndFlush(now)
}

func (s *Store) foldAndFlush(now time.Time) error {
	s.mu.Lock()
	distance, fuel := s.accumDistance, s.accumFuel
	s.accumDistance, s.accumFuel = 0, 0
	s.lastFlushTime = now

	s.trips[0].Update(distance, fuel, 0)
	s.trips[1].Update(distance, fuel, 0)
	s.lifetime.TotalDistance += distance
	s.lifetime.TotalFuel += fuel

	s.dirty[dirtyTripA] = true
	s.dirty[dirtyTripB] = true
	s.dirty[dirtyLifetime] = true

	s.state.PendingDistance = 0
	s.state.PendingFuel = 0
	s.state.LastKnownTime = now.Unix()
	s.dirty[dirtySystemState] = true
	s.mu.Unlock()

	return s.flush()
}

// flush writes every dirty namespace, retrying transient backend errors a
// bounded number of times (spec.md §5: "the persistence flush may
// suspend for flash write latency").
func (s *Store) flush() error {
	s.mu.Lock()
	writes := s.pendingWrites()
	s.mu.Unlock()

	for _, w := range writes {
		w := w
		err := retry.Do(
			func() error { return s.backend.Save(w.namespace, w.data) },
			retry.Attempts(3),
			retry.Delay(10*time.Millisecond),
		)
		if err != nil {
			s.log.WithError(err).WithField("namespace", w.namespace).Error("namespace flush failed")
			return err
		}
		s.mu.Lock()
		s.dirty[w.idx] = false
		s.mu.Unlock()
	}
	return nil
}

type namespaceWrite struct {
	idx       int
	namespace string
	data      []byte
}

// pendingWrites snapshots every dirty namespace's current bytes. Caller
// must hold s.mu.
func (s *Store) pendingWrites() []namespaceWrite {
	var out []namespaceWrite
	if s.dirty[dirtyTripA] {
		out = append(out, namespaceWrite{dirtyTripA, nsTripA, s.trips[0].encode()})
	}
	if s.dirty[dirtyTripB] {
		out = append(out, namespaceWrite{dirtyTripB, nsTripB, s.trips[1].encode()})
	}
	if s.dirty[dirtyLifetime] {
		out = append(out, namespaceWrite{dirtyLifetime, nsLifetime, s.lifetime.encodeCore()})
	}
	if s.dirty[dirtyFuelEconomy] {
		out = append(out, namespaceWrite{dirtyFuelEconomy, nsFuelEconomy, encodeEconomy(s.lifetime.BestEconomy, s.lifetime.WorstEconomy)})
	}
	if s.dirty[dirtyDTCHistory] {
		out = append(out, namespaceWrite{dirtyDTCHistory, nsDTCHistory, s.dtcHistory.encode()})
	}
	if s.dirty[dirtySettings] {
		out = append(out, namespaceWrite{dirtySettings, nsSettings, s.settings.encode()})
	}
	if s.dirty[dirtySystemState] {
		out = append(out, namespaceWrite{dirtySystemState, nsSystemState, s.state.encode()})
	}
	return out
}

// Shutdown runs the orderly-shutdown sequence: an emergency flush,
// followed by writing clean_shutdown=true directly (spec.md §4.7, §5).
func (s *Store) Shutdown(now time.Time) error {
	if err := s.EmergencyFlush(now); err != nil {
		return err
	}
	s.mu.Lock()
	s.state.CleanShutdown = true
	data := s.state.encode()
	s.mu.Unlock()
	return s.backend.Save(nsSystemState, data)
}

// Trip returns a copy of the trip record for tripID (0 or 1).
func (s *Store) Trip(tripID int) Trip {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trips[tripID]
}

// ResetTrip zeroes trip tripID and marks it active (spec.md §4.7).
func (s *Store) ResetTrip(tripID int, nowEpoch int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trips[tripID].Reset(nowEpoch)
	s.dirty[dirtyTripFor(tripID)] = true
}

func dirtyTripFor(tripID int) int {
	if tripID == 0 {
		return dirtyTripA
	}
	return dirtyTripB
}

// Lifetime returns a copy of the lifetime record.
func (s *Store) Lifetime() Lifetime {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lifetime
}

// SetEngineHours records the latest engine-hours value verbatim from the
// bus (spec.md §4.7: "not accumulated").
func (s *Store) SetEngineHours(hours float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lifetime.EngineHours = hours
	s.dirty[dirtyLifetime] = true
}

// ObserveEconomy folds an instantaneous economy sample into the running
// lifetime best/worst extremes.
func (s *Store) ObserveEconomy(economy float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lifetime.ObserveEconomy(economy)
	s.dirty[dirtyFuelEconomy] = true
}

// StoreDTC records a diagnostic trouble code occurrence.
func (s *Store) StoreDTC(spn uint32, fmi, source uint8, tsEpoch int64, active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dtcHistory.Store(spn, fmi, source, tsEpoch, active)
	s.dirty[dirtyDTCHistory] = true
}

// ClearActiveDTCs marks every stored fault inactive.
func (s *Store) ClearActiveDTCs() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dtcHistory.ClearActive()
	s.dirty[dirtyDTCHistory] = true
}

// ClearAllDTCs empties the fault-history table.
func (s *Store) ClearAllDTCs() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dtcHistory.ClearAll()
	s.dirty[dirtyDTCHistory] = true
}

// DTCHistory returns a copy of the current fault-history entries.
func (s *Store) DTCHistory() []StoredDTC {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dtcHistory.Entries()
}

// Settings returns a copy of the current settings.
func (s *Store) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// SetSettings replaces the settings record.
func (s *Store) SetSettings(v Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = v
	s.dirty[dirtySettings] = true
}

// State returns a copy of the current system state.
func (s *Store) State() SystemState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}
