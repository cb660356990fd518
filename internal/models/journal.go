package models

import "slices"

const (
	JournalKindLog  = "log"
	JournalKindNote = "note"
)

// JournalItem is either a consumption log, enriched with its catalog entry
// when the wine is still known, or a free note.
type JournalItem struct {
	Kind string          `json:"kind"`
	Date string          `json:"date"`
	Log  *ConsumptionLog `json:"log,omitempty"`
	Wine *WineEntry      `json:"wine,omitempty"`
	Note *FreeNote       `json:"note,omitempty"`
}

// BuildJournal merges logs and notes, newest date first. Items with equal
// dates keep logs ahead of notes in insertion order.
func BuildJournal(d *Document, c *Catalog) []JournalItem {
	items := make([]JournalItem, 0, len(d.Logs)+len(d.FreeNotes))
	for _, l := range d.Logs {
		item := JournalItem{Kind: JournalKindLog, Date: l.Date, Log: l}
		if w, ok := c.Get(l.ID); ok {
			item.Wine = w
		}
		items = append(items, item)
	}
	for _, n := range d.FreeNotes {
		items = append(items, JournalItem{Kind: JournalKindNote, Date: n.Date, Note: n})
	}
	slices.SortStableFunc(items, func(a, b JournalItem) int {
		switch {
		case a.Date > b.Date:
			return -1
		case a.Date < b.Date:
			return 1
		}
		return 0
	})
	return items
}
