package store

import (
	"cellar/internal/models"
	"fmt"
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/gookit/validate"
)

// legacyMigratedKey is the flag name used by unversioned documents.
const legacyMigratedKey = "initializedFromJsonV1"

type upgradeFunc func(raw map[string]json.RawMessage) error

// upgrades[v] turns a version v document into version v+1.
var upgrades = map[int]upgradeFunc{
	1: upgradeV1,
}

// upgradeV1 renames the migration flag. Log keys and other missing fields
// are filled later by Document.ApplyDefaults.
func upgradeV1(raw map[string]json.RawMessage) error {
	if flag, ok := raw[legacyMigratedKey]; ok {
		if _, exists := raw["migrated"]; !exists {
			raw["migrated"] = flag
		}
		delete(raw, legacyMigratedKey)
	}
	return nil
}

func storedVersion(raw map[string]json.RawMessage) (int, error) {
	v, ok := raw["version"]
	if !ok || string(v) == "null" {
		return 1, nil
	}
	n, err := strconv.Atoi(string(v))
	if err != nil {
		return 0, fmt.Errorf("invalid version %s", v)
	}
	if n < 1 {
		return 0, fmt.Errorf("invalid version %d", n)
	}
	return n, nil
}

// upgrade applies every upgrade step between the stored version and the
// current one. Documents from a newer build are left untouched.
func upgrade(raw map[string]json.RawMessage) (from int, err error) {
	from, err = storedVersion(raw)
	if err != nil {
		return 0, err
	}
	for v := from; v < models.DocumentVersion; v++ {
		fn, ok := upgrades[v]
		if !ok {
			return from, fmt.Errorf("no upgrade from version %d", v)
		}
		if err := fn(raw); err != nil {
			return from, fmt.Errorf("upgrade from version %d: %w", v, err)
		}
	}
	if from < models.DocumentVersion {
		raw["version"] = json.RawMessage(strconv.Itoa(models.DocumentVersion))
	}
	return from, nil
}

// decodeDocument parses, upgrades, fills defaults and validates a stored
// payload.
func decodeDocument(data []byte) (*models.Document, int, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, 0, fmt.Errorf("decode document: %w", err)
	}
	if raw == nil {
		return nil, 0, fmt.Errorf("decode document: not an object")
	}
	from, err := upgrade(raw)
	if err != nil {
		return nil, 0, err
	}
	upgraded, err := json.Marshal(raw)
	if err != nil {
		return nil, 0, fmt.Errorf("encode upgraded document: %w", err)
	}
	doc := &models.Document{}
	if err := json.Unmarshal(upgraded, doc); err != nil {
		return nil, 0, fmt.Errorf("decode document fields: %w", err)
	}
	doc.ApplyDefaults()
	if err := validateDocument(doc); err != nil {
		return nil, 0, err
	}
	return doc, from, nil
}

func validateDocument(doc *models.Document) error {
	for i, l := range doc.Logs {
		v := validate.Struct(l)
		if !v.Validate() {
			return fmt.Errorf("log %d: %w", i, v.Errors)
		}
	}
	for i, n := range doc.FreeNotes {
		v := validate.Struct(n)
		if !v.Validate() {
			return fmt.Errorf("note %d: %w", i, v.Errors)
		}
	}
	return nil
}
