package eol

import (
	"time"

	"eol-mcp-server/pkg/types"
)

// Evaluate computes the supported/EOL pair for a cycle record as of the
// given day. Pure and deterministic; today is truncated to UTC day
// granularity before any comparison.
//
// isEol: absent means "assume not yet EOL"; a boolean is taken as-is; a
// date D means EOL strictly after D (the EOL date itself is the last
// supported day).
//
// isSupported, first applicable rule wins:
//
//  1. support boolean, taken as-is;
//  2. support date D, supported while today <= D;
//  3. fall back to eol with inverted boolean meaning (eol true means
//     unsupported, eol date D means supported while today <= D);
//  4. neither field usable: unsupported, fail closed.
//
// The two fields are evaluated independently. Records that claim a
// support window past their EOL date are computed as written, not
// rejected.
func Evaluate(record *types.CycleRecord, today time.Time) (isSupported, isEOL bool) {
	day := truncateToDay(today)

	switch record.EOL.Kind {
	case types.FieldBool:
		isEOL = record.EOL.Bool
	case types.FieldDate:
		isEOL = day.After(record.EOL.Date)
	}

	switch record.Support.Kind {
	case types.FieldBool:
		isSupported = record.Support.Bool
	case types.FieldDate:
		isSupported = !day.After(record.Support.Date)
	default:
		switch record.EOL.Kind {
		case types.FieldBool:
			isSupported = !record.EOL.Bool
		case types.FieldDate:
			isSupported = !day.After(record.EOL.Date)
		}
	}

	return isSupported, isEOL
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
