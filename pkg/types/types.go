// Package types provides core data structures and type definitions
// for the EOL MCP Server: release cycle records as published by the
// endoflife.date catalog and the result entities returned by tools.
package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FieldKind identifies which variant a LifecycleField carries. The catalog
// publishes eol/support/lts values as either a boolean, a date string, or
// nothing at all, depending on the product.
type FieldKind int

const (
	// FieldAbsent means the catalog record did not carry the field, or
	// carried a value that could not be interpreted as a date.
	FieldAbsent FieldKind = iota
	// FieldBool means the field is a fixed boolean assertion.
	FieldBool
	// FieldDate means the field is a calendar date threshold.
	FieldDate
	// FieldLabel means the field is a plain string label (lts only,
	// e.g. "Jammy"). Never consumed by status computation.
	FieldLabel
)

// LifecycleField is the normalized form of a variant-typed catalog field.
// Parsing happens once, at record construction; evaluation never has to
// re-inspect raw values.
type LifecycleField struct {
	Kind  FieldKind
	Bool  bool
	Date  time.Time
	Label string
}

// IsAbsent returns true when the field carries no usable value.
func (f LifecycleField) IsAbsent() bool {
	return f.Kind == FieldAbsent
}

// MarshalJSON renders the field back in its catalog wire shape:
// null, boolean, or "YYYY-MM-DD".
func (f LifecycleField) MarshalJSON() ([]byte, error) {
	switch f.Kind {
	case FieldBool:
		return json.Marshal(f.Bool)
	case FieldDate:
		return json.Marshal(f.Date.Format(dateLayout))
	case FieldLabel:
		return json.Marshal(f.Label)
	default:
		return []byte("null"), nil
	}
}

const dateLayout = "2006-01-02"

// dateLayouts are the accepted ISO-8601 shapes. A trailing literal "Z" is
// treated as UTC before matching.
var dateLayouts = []string{
	dateLayout,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
}

// ParseCatalogDate parses an ISO-8601 date or datetime string, truncated to
// day granularity. Returns false when the string is not a date.
func ParseCatalogDate(s string) (time.Time, bool) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "Z")
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// parseLifecycleField normalizes a raw catalog value into a LifecycleField.
// Unparseable date strings degrade to absent, never to an error: the
// catalog is inconsistent and status evaluation must tolerate it.
func parseLifecycleField(raw interface{}, allowLabel bool) LifecycleField {
	switch v := raw.(type) {
	case nil:
		return LifecycleField{Kind: FieldAbsent}
	case bool:
		return LifecycleField{Kind: FieldBool, Bool: v}
	case string:
		if d, ok := ParseCatalogDate(v); ok {
			return LifecycleField{Kind: FieldDate, Date: d}
		}
		if allowLabel && v != "" {
			return LifecycleField{Kind: FieldLabel, Label: v}
		}
		return LifecycleField{Kind: FieldAbsent}
	default:
		return LifecycleField{Kind: FieldAbsent}
	}
}

// MalformedRecordError reports a raw catalog entry that cannot become a
// CycleRecord. Callers exclude such records from resolution candidates
// instead of failing the whole lookup.
type MalformedRecordError struct {
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed cycle record: %s", e.Reason)
}

// CycleRecord is the normalized view of one release cycle of one product.
// Cycle identity is exact-string only; no semantic version ordering is
// assumed anywhere.
type CycleRecord struct {
	Cycle             string         `json:"cycle"`
	ReleaseDate       LifecycleField `json:"releaseDate"`
	EOL               LifecycleField `json:"eol"`
	Latest            string         `json:"latest,omitempty"`
	LatestReleaseDate LifecycleField `json:"latestReleaseDate"`
	LTS               LifecycleField `json:"lts"`
	Support           LifecycleField `json:"support"`
}

// NewCycleRecord builds a CycleRecord from a raw catalog mapping. The only
// hard requirement is the cycle identifier; every other field is optional
// and variant-typed.
func NewCycleRecord(raw map[string]interface{}) (*CycleRecord, error) {
	cycle, err := cycleIdentifier(raw["cycle"])
	if err != nil {
		return nil, err
	}

	rec := &CycleRecord{
		Cycle:             cycle,
		ReleaseDate:       parseLifecycleField(raw["releaseDate"], false),
		EOL:               parseLifecycleField(raw["eol"], false),
		LatestReleaseDate: parseLifecycleField(raw["latestReleaseDate"], false),
		LTS:               parseLifecycleField(raw["lts"], true),
		Support:           parseLifecycleField(raw["support"], false),
	}

	if latest, ok := raw["latest"].(string); ok {
		rec.Latest = latest
	}

	return rec, nil
}

// cycleIdentifier coerces the cycle key to its string form. The catalog
// serves most cycles as strings but a few products publish bare numbers.
func cycleIdentifier(raw interface{}) (string, error) {
	switch v := raw.(type) {
	case string:
		if v == "" {
			return "", &MalformedRecordError{Reason: "empty cycle identifier"}
		}
		return v, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case json.Number:
		return v.String(), nil
	case nil:
		return "", &MalformedRecordError{Reason: "missing cycle key"}
	default:
		return "", &MalformedRecordError{Reason: fmt.Sprintf("cycle key has unsupported type %T", raw)}
	}
}

// AllProductsResult contains every product name tracked by the catalog.
type AllProductsResult struct {
	Products []string `json:"products"`
	Count    int      `json:"count"`
}

// SearchResult contains product names matching a search query.
type SearchResult struct {
	Results []string `json:"results"`
	Count   int      `json:"count"`
	Query   string   `json:"query"`
}

// ProductInfo contains all release cycles of one product.
type ProductInfo struct {
	Product  string        `json:"product"`
	Versions []CycleRecord `json:"versions"`
	Count    int           `json:"count"`
}

// CycleDetails contains one cycle of one product.
type CycleDetails struct {
	Product string      `json:"product"`
	Cycle   string      `json:"cycle"`
	Details CycleRecord `json:"details"`
}

// SupportStatus is the answer to "is version V of product P supported
// today". Constructed fresh per request, never persisted.
type SupportStatus struct {
	Product     string       `json:"product"`
	Version     string       `json:"version"`
	Found       bool         `json:"found"`
	CycleInfo   *CycleRecord `json:"cycle_info,omitempty"`
	IsSupported bool         `json:"is_supported"`
	IsEOL       bool         `json:"is_eol"`
}
