package models

import (
	json "github.com/goccy/go-json"
)

// DocumentVersion is the schema version written by this build.
const DocumentVersion = 2

// ConsumptionLog records one consumption event. Key is the stable identity
// of the log; ID is the wine it belongs to and repeats across logs.
type ConsumptionLog struct {
	Key      string `json:"key" validate:"required"`
	ID       string `json:"id" validate:"required"`
	Bottle   string `json:"bottle"`
	Date     string `json:"date"`
	Rating   *int   `json:"rating"`
	Notes    string `json:"notes"`
	Quantity int    `json:"quantity" validate:"required|min:1"`
}

// FreeNote is a journal entry that is not tied to a wine.
type FreeNote struct {
	ID    string `json:"id" validate:"required"`
	Title string `json:"title"`
	Date  string `json:"date"`
	Notes string `json:"notes"`
}

// Document is the whole persisted state: the migration flag, the
// adjustment ledger and both journal lists. Keys the current schema does not
// know about are kept in Extra and written back unchanged.
type Document struct {
	Version     int
	Migrated    bool
	Adjustments map[string]int
	Logs        []*ConsumptionLog
	FreeNotes   []*FreeNote
	Extra       map[string]json.RawMessage
}

type documentFields struct {
	Version     int               `json:"version"`
	Migrated    bool              `json:"migrated"`
	Adjustments map[string]int    `json:"adjustments"`
	Logs        []*ConsumptionLog `json:"logs"`
	FreeNotes   []*FreeNote       `json:"freeNotes"`
}

var documentKeys = []string{"version", "migrated", "adjustments", "logs", "freeNotes"}

func NewDocument() *Document {
	return &Document{
		Version:     DocumentVersion,
		Adjustments: make(map[string]int),
		Logs:        make([]*ConsumptionLog, 0),
		FreeNotes:   make([]*FreeNote, 0),
	}
}

func (d *Document) MarshalJSON() ([]byte, error) {
	fields := documentFields{
		Version:     d.Version,
		Migrated:    d.Migrated,
		Adjustments: d.Adjustments,
		Logs:        d.Logs,
		FreeNotes:   d.FreeNotes,
	}
	if fields.Adjustments == nil {
		fields.Adjustments = map[string]int{}
	}
	if fields.Logs == nil {
		fields.Logs = []*ConsumptionLog{}
	}
	if fields.FreeNotes == nil {
		fields.FreeNotes = []*FreeNote{}
	}
	if len(d.Extra) == 0 {
		return json.Marshal(fields)
	}

	known, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	merged := make(map[string]json.RawMessage, len(d.Extra)+len(documentKeys))
	for k, v := range d.Extra {
		merged[k] = v
	}
	if err := json.Unmarshal(known, &merged); err != nil {
		return nil, err
	}
	return json.Marshal(merged)
}

func (d *Document) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var fields documentFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	for _, k := range documentKeys {
		delete(raw, k)
	}

	d.Version = fields.Version
	d.Migrated = fields.Migrated
	d.Adjustments = fields.Adjustments
	d.Logs = fields.Logs
	d.FreeNotes = fields.FreeNotes
	d.Extra = nil
	if len(raw) > 0 {
		d.Extra = raw
	}
	return nil
}

// Clone returns a deep copy that shares nothing mutable with d.
func (d *Document) Clone() *Document {
	out := &Document{
		Version:     d.Version,
		Migrated:    d.Migrated,
		Adjustments: make(map[string]int, len(d.Adjustments)),
		Logs:        make([]*ConsumptionLog, 0, len(d.Logs)),
		FreeNotes:   make([]*FreeNote, 0, len(d.FreeNotes)),
	}
	for k, v := range d.Adjustments {
		out.Adjustments[k] = v
	}
	for _, l := range d.Logs {
		cp := *l
		if l.Rating != nil {
			r := *l.Rating
			cp.Rating = &r
		}
		out.Logs = append(out.Logs, &cp)
	}
	for _, n := range d.FreeNotes {
		cp := *n
		out.FreeNotes = append(out.FreeNotes, &cp)
	}
	if len(d.Extra) > 0 {
		out.Extra = make(map[string]json.RawMessage, len(d.Extra))
		for k, v := range d.Extra {
			out.Extra[k] = append(json.RawMessage(nil), v...)
		}
	}
	return out
}
