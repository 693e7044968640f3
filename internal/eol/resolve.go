package eol

import (
	"strings"

	"eol-mcp-server/pkg/types"
)

// Resolve matches a requested version string against an ordered list of
// cycle records. Matching rules, tried in order, first hit wins:
//
//  1. exact cycle match,
//  2. latest-patch alias match (the record's "latest" field),
//  3. literal prefix match on the cycle identifier.
//
// The prefix rule is deliberately loose: requesting "3.1" matches a cycle
// named "3.11". That mirrors how the upstream catalog is queried in
// practice and callers rely on it, false positives included.
//
// Returns nil when nothing matches. Ties resolve to the first record in
// iteration order.
func Resolve(version string, records []types.CycleRecord) *types.CycleRecord {
	for i := range records {
		if records[i].Cycle == version {
			return &records[i]
		}
	}
	for i := range records {
		if records[i].Latest != "" && records[i].Latest == version {
			return &records[i]
		}
	}
	for i := range records {
		if strings.HasPrefix(records[i].Cycle, version) {
			return &records[i]
		}
	}
	return nil
}
