package persist

// maxDTCHistory caps the stored fault-history table (spec.md §4.7).
const maxDTCHistory = 20

// StoredDTC is one persisted diagnostic trouble code occurrence (spec.md
// §3).
type StoredDTC struct {
	SPN       uint32
	FMI       uint8
	Source    uint8
	FirstSeen int64 // epoch seconds
	LastSeen  int64 // epoch seconds
	Count     uint32
	Active    bool
}

// DTCHistory is the fixed-capacity fault-history table (spec.md §4.7).
type DTCHistory struct {
	entries []StoredDTC
}

// NewDTCHistory creates an empty fault-history table.
func NewDTCHistory() *DTCHistory {
	return &DTCHistory{}
}

func (h *DTCHistory) find(spn uint32, fmi, source uint8) int {
	for i := range h.entries {
		e := &h.entries[i]
		if e.SPN == spn && e.FMI == fmi && e.Source == source {
			return i
		}
	}
	return -1
}

// Store records a DTC occurrence at ts. A matching (spn, fmi, source)
// triple has its last-seen time and occurrence count bumped; otherwise a
// new entry is appended if room remains, or the entry with the smallest
// last-seen time is evicted to make room (spec.md §4.7).
func (h *DTCHistory) Store(spn uint32, fmi, source uint8, ts int64, active bool) {
	if idx := h.find(spn, fmi, source); idx >= 0 {
		h.entries[idx].LastSeen = ts
		h.entries[idx].Count++
		h.entries[idx].Active = active
		return
	}

	entry := StoredDTC{
		SPN: spn, FMI: fmi, Source: source,
		FirstSeen: ts, LastSeen: ts, Count: 1, Active: active,
	}

	if len(h.entries) < maxDTCHistory {
		h.entries = append(h.entries, entry)
		return
	}

	oldest := 0
	for i := 1; i < len(h.entries); i++ {
		if h.entries[i].LastSeen < h.entries[oldest].LastSeen {
			oldest = i
		}
	}
	h.entries[oldest] = entry
}

// ClearActive marks every entry inactive without removing it.
func (h *DTCHistory) ClearActive() {
	for i := range h.entries {
		h.entries[i].Active = false
	}
}

// ClearAll empties the table.
func (h *DTCHistory) ClearAll() {
	h.entries = nil
}

// Entries returns a copy of the current fault-history table.
func (h *DTCHistory) Entries() []StoredDTC {
	out := make([]StoredDTC, len(h.entries))
	copy(out, h.entries)
	return out
}

func (h *DTCHistory) encode() []byte {
	e := &encoder{}
	e.putUint8(uint8(len(h.entries)))
	for _, entry := range h.entries {
		e.putUint32(entry.SPN)
		e.putUint8(entry.FMI)
		e.putUint8(entry.Source)
		e.putInt64(entry.FirstSeen)
		e.putInt64(entry.LastSeen)
		e.putUint32(entry.Count)
		e.putBool(entry.Active)
	}
	return e.bytes()
}

func decodeDTCHistory(b []byte) *DTCHistory {
	d := newDecoder(b)
	n := d.getUint8()
	h := &DTCHistory{entries: make([]StoredDTC, 0, n)}
	for i := uint8(0); i < n; i++ {
		h.entries = append(h.entries, StoredDTC{
			SPN:       d.getUint32(),
			FMI:       d.getUint8(),
			Source:    d.getUint8(),
			FirstSeen: d.getInt64(),
			LastSeen:  d.getInt64(),
			Count:     d.getUint32(),
			Active:    d.getBool(),
		})
	}
	return h
}
