package models

import (
	"sort"

	"github.com/google/uuid"
)

const notePrefix = "note-"

// Clamp reports how a requested quantity was adjusted before it was applied.
type Clamp struct {
	Requested int `json:"requested"`
	Applied   int `json:"applied"`
}

// Clamped is false when the request was applied as given; an omitted (zero)
// quantity stands for the default of 1.
func (c Clamp) Clamped() bool {
	return orOne(c.Requested) != c.Applied
}

type ConsumptionInput struct {
	Date     string `json:"date"`
	Rating   *int   `json:"rating"`
	Notes    string `json:"notes"`
	Quantity int    `json:"quantity"`
}

type LogChanges struct {
	Date     string `json:"date"`
	Rating   *int   `json:"rating"`
	Notes    string `json:"notes"`
	Quantity int    `json:"quantity"`
}

type NoteInput struct {
	Title string `json:"title"`
	Date  string `json:"date"`
	Notes string `json:"notes"`
}

// Discrepancy is a ledger value that does not match the sum of its logs.
type Discrepancy struct {
	WineID string `json:"id"`
	Ledger int    `json:"ledger"`
	Logged int    `json:"logged"`
}

func orOne(n int) int {
	if n == 0 {
		return 1
	}
	return n
}

// Consumed is the ledger value for a wine, zero when absent.
func (d *Document) Consumed(id string) int {
	return d.Adjustments[id]
}

func (d *Document) RemainingFor(w *WineEntry) int {
	return max(0, w.Quantity-d.Consumed(w.ID))
}

// Remaining computes the bottles left for every catalog entry. It is
// recomputed on every call.
func (d *Document) Remaining(c *Catalog) map[string]int {
	out := make(map[string]int, c.Len())
	for _, w := range c.wines {
		out[w.ID] = d.RemainingFor(w)
	}
	return out
}

// MigrateOnce seeds logs for catalog entries already marked consumed. It runs
// at most once per document and returns the number of logs it synthesized.
func (d *Document) MigrateOnce(c *Catalog, today string) int {
	if d.Migrated {
		return 0
	}
	synthesized := 0
	for _, w := range c.wines {
		if !w.IsPreConsumed() {
			continue
		}
		qty := w.Quantity
		if d.Consumed(w.ID) >= qty {
			continue
		}
		date := w.ConsumedDate
		if date == "" {
			date = today
		}
		var rating *int
		if w.Rating != nil && *w.Rating != 0 {
			r := *w.Rating
			rating = &r
		}
		d.Logs = append(d.Logs, &ConsumptionLog{
			Key:      uuid.NewString(),
			ID:       w.ID,
			Bottle:   w.Bottle,
			Date:     date,
			Rating:   rating,
			Notes:    w.Notes,
			Quantity: qty,
		})
		d.Adjustments[w.ID] += qty
		synthesized++
	}
	d.Migrated = true
	return synthesized
}

// RecordConsumption appends a log for wine id. The quantity is clamped to
// [1, remaining] using the remaining count before the call; with nothing left
// the upper bound is 1. An unknown id is a no-op and returns a nil log.
func (d *Document) RecordConsumption(c *Catalog, id string, in ConsumptionInput, today string) (*ConsumptionLog, Clamp) {
	w, ok := c.Get(id)
	if !ok {
		return nil, Clamp{}
	}
	upper := orOne(d.RemainingFor(w))
	qty := max(1, min(upper, orOne(in.Quantity)))

	date := in.Date
	if date == "" {
		date = today
	}
	log := &ConsumptionLog{
		Key:      uuid.NewString(),
		ID:       w.ID,
		Bottle:   w.Bottle,
		Date:     date,
		Rating:   in.Rating,
		Notes:    in.Notes,
		Quantity: qty,
	}
	d.Logs = append(d.Logs, log)
	d.Adjustments[w.ID] += qty
	return log, Clamp{Requested: in.Quantity, Applied: qty}
}

func (d *Document) FindLog(key string) *ConsumptionLog {
	for _, l := range d.Logs {
		if l.Key == key {
			return l
		}
	}
	return nil
}

// Headroom is the largest quantity log could be edited to: the base
// quantity minus everything consumed by the other logs of the same wine.
func (d *Document) Headroom(c *Catalog, log *ConsumptionLog) int {
	base := 1
	if w, ok := c.Get(log.ID); ok {
		base = w.Quantity
	}
	return base - (d.Consumed(log.ID) - orOne(log.Quantity))
}

// EditLog overwrites date, rating, notes and quantity of log in place and
// moves the ledger by the quantity delta. The new quantity is floored at 1;
// upper bounds are the caller's business. An empty date keeps the old one.
func (d *Document) EditLog(log *ConsumptionLog, ch LogChanges) Clamp {
	oldQty := orOne(log.Quantity)
	newQty := max(1, orOne(ch.Quantity))
	delta := newQty - oldQty
	d.Adjustments[log.ID] = max(0, d.Consumed(log.ID)+delta)

	if ch.Date != "" {
		log.Date = ch.Date
	}
	log.Rating = ch.Rating
	log.Notes = ch.Notes
	log.Quantity = newQty
	return Clamp{Requested: ch.Quantity, Applied: newQty}
}

// DeleteLog removes log by identity and returns its quantity to the cellar.
func (d *Document) DeleteLog(log *ConsumptionLog) bool {
	for i, l := range d.Logs {
		if l != log {
			continue
		}
		d.Logs = append(d.Logs[:i], d.Logs[i+1:]...)
		d.Adjustments[log.ID] = max(0, d.Consumed(log.ID)-orOne(log.Quantity))
		return true
	}
	return false
}

// AddNote appends a free note. Its id never collides with a catalog id.
func (d *Document) AddNote(c *Catalog, in NoteInput, today string) *FreeNote {
	id := notePrefix + uuid.NewString()
	for c.Has(id) {
		id = notePrefix + uuid.NewString()
	}
	date := in.Date
	if date == "" {
		date = today
	}
	note := &FreeNote{ID: id, Title: in.Title, Date: date, Notes: in.Notes}
	d.FreeNotes = append(d.FreeNotes, note)
	return note
}

func (d *Document) DeleteNote(id string) bool {
	for i, n := range d.FreeNotes {
		if n.ID == id {
			d.FreeNotes = append(d.FreeNotes[:i], d.FreeNotes[i+1:]...)
			return true
		}
	}
	return false
}

func (d *Document) logSums() map[string]int {
	sums := make(map[string]int)
	for _, l := range d.Logs {
		sums[l.ID] += orOne(l.Quantity)
	}
	return sums
}

// Reconcile recomputes the ledger from the logs and reports every wine
// whose maintained value differs, sorted by wine id.
func (d *Document) Reconcile() []Discrepancy {
	sums := d.logSums()
	var out []Discrepancy
	for id, v := range d.Adjustments {
		if v != sums[id] {
			out = append(out, Discrepancy{WineID: id, Ledger: v, Logged: sums[id]})
		}
	}
	for id, s := range sums {
		if _, ok := d.Adjustments[id]; !ok {
			out = append(out, Discrepancy{WineID: id, Ledger: 0, Logged: s})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WineID < out[j].WineID })
	return out
}

// RebuildLedger replaces the ledger with the sums of the logs.
func (d *Document) RebuildLedger() {
	d.Adjustments = d.logSums()
}

// ApplyDefaults fills fields a stored document may lack: empty collections,
// log keys, note ids and the default quantity of 1.
func (d *Document) ApplyDefaults() {
	if d.Adjustments == nil {
		d.Adjustments = make(map[string]int)
	}
	logs := make([]*ConsumptionLog, 0, len(d.Logs))
	for _, l := range d.Logs {
		if l == nil {
			continue
		}
		if l.Key == "" {
			l.Key = uuid.NewString()
		}
		if l.Quantity < 1 {
			l.Quantity = 1
		}
		logs = append(logs, l)
	}
	d.Logs = logs

	notes := make([]*FreeNote, 0, len(d.FreeNotes))
	for _, n := range d.FreeNotes {
		if n == nil {
			continue
		}
		if n.ID == "" {
			n.ID = notePrefix + uuid.NewString()
		}
		notes = append(notes, n)
	}
	d.FreeNotes = notes
}

