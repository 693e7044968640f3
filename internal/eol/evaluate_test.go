package eol

import (
	"testing"
	"time"

	"eol-mcp-server/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRecord(t *testing.T, raw map[string]interface{}) *types.CycleRecord {
	t.Helper()
	record, err := types.NewCycleRecord(raw)
	require.NoError(t, err)
	return record
}

func day(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestEvaluate_EOLField(t *testing.T) {
	tests := []struct {
		name    string
		raw     map[string]interface{}
		today   time.Time
		wantEOL bool
	}{
		{
			name:    "absent eol is never end of life",
			raw:     map[string]interface{}{"cycle": "1.0"},
			today:   day("2099-12-31"),
			wantEOL: false,
		},
		{
			name:    "boolean true is end of life on any day",
			raw:     map[string]interface{}{"cycle": "18", "eol": true},
			today:   day("2000-01-01"),
			wantEOL: true,
		},
		{
			name:    "boolean false is never end of life",
			raw:     map[string]interface{}{"cycle": "1.0", "eol": false},
			today:   day("2099-12-31"),
			wantEOL: false,
		},
		{
			name:    "the eol date itself is still supported",
			raw:     map[string]interface{}{"cycle": "3.11", "eol": "2027-10-24"},
			today:   day("2027-10-24"),
			wantEOL: false,
		},
		{
			name:    "the day after the eol date is end of life",
			raw:     map[string]interface{}{"cycle": "3.11", "eol": "2027-10-24"},
			today:   day("2027-10-25"),
			wantEOL: true,
		},
		{
			name:    "unparseable eol string degrades to absent",
			raw:     map[string]interface{}{"cycle": "1.0", "eol": "eventually"},
			today:   day("2099-12-31"),
			wantEOL: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := mustRecord(t, tt.raw)
			_, gotEOL := Evaluate(record, tt.today)
			assert.Equal(t, tt.wantEOL, gotEOL)
		})
	}
}

func TestEvaluate_SupportPrecedence(t *testing.T) {
	tests := []struct {
		name          string
		raw           map[string]interface{}
		today         time.Time
		wantSupported bool
	}{
		{
			name:          "support boolean wins over eol date",
			raw:           map[string]interface{}{"cycle": "1.0", "support": true, "eol": "2000-01-01"},
			today:         day("2025-01-01"),
			wantSupported: true,
		},
		{
			name:          "support boolean false wins over future eol",
			raw:           map[string]interface{}{"cycle": "1.0", "support": false, "eol": "2099-01-01"},
			today:         day("2025-01-01"),
			wantSupported: false,
		},
		{
			name:          "support date inclusive on the boundary day",
			raw:           map[string]interface{}{"cycle": "1.0", "support": "2025-06-01"},
			today:         day("2025-06-01"),
			wantSupported: true,
		},
		{
			name:          "support date exceeded",
			raw:           map[string]interface{}{"cycle": "1.0", "support": "2025-06-01"},
			today:         day("2025-06-02"),
			wantSupported: false,
		},
		{
			name:          "absent support falls back to eol date, boundary day supported",
			raw:           map[string]interface{}{"cycle": "1.0", "eol": "2025-06-01"},
			today:         day("2025-06-01"),
			wantSupported: true,
		},
		{
			name:          "absent support falls back to eol date, day after unsupported",
			raw:           map[string]interface{}{"cycle": "1.0", "eol": "2025-06-01"},
			today:         day("2025-06-02"),
			wantSupported: false,
		},
		{
			name:          "absent support falls back to inverted eol boolean",
			raw:           map[string]interface{}{"cycle": "18", "eol": true},
			today:         day("2025-01-01"),
			wantSupported: false,
		},
		{
			name:          "eol false boolean implies supported",
			raw:           map[string]interface{}{"cycle": "1.0", "eol": false},
			today:         day("2025-01-01"),
			wantSupported: true,
		},
		{
			name:          "unparseable support falls through to eol",
			raw:           map[string]interface{}{"cycle": "1.0", "support": "tbd", "eol": "2099-01-01"},
			today:         day("2025-01-01"),
			wantSupported: true,
		},
		{
			name:          "neither field usable fails closed",
			raw:           map[string]interface{}{"cycle": "1.0"},
			today:         day("2025-01-01"),
			wantSupported: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := mustRecord(t, tt.raw)
			gotSupported, _ := Evaluate(record, tt.today)
			assert.Equal(t, tt.wantSupported, gotSupported)
		})
	}
}

// Fields evaluate independently: a support window past the EOL date is
// computed as written, not rejected.
func TestEvaluate_NoCrossFieldValidation(t *testing.T) {
	record := mustRecord(t, map[string]interface{}{
		"cycle":   "1.0",
		"support": "2030-01-01",
		"eol":     "2020-01-01",
	})

	supported, eol := Evaluate(record, day("2025-01-01"))
	assert.True(t, supported)
	assert.True(t, eol)
}

// A cycle whose support window has closed but whose EOL date has not yet
// passed is in the security-only state: unsupported but not EOL.
func TestEvaluate_SecurityOnlyWindow(t *testing.T) {
	record := mustRecord(t, map[string]interface{}{
		"cycle":   "3.11",
		"eol":     "2027-10-24",
		"support": "2024-04-01",
	})

	supported, eol := Evaluate(record, day("2025-01-01"))
	assert.False(t, supported)
	assert.False(t, eol)
}

func TestEvaluate_TruncatesTodayToDay(t *testing.T) {
	record := mustRecord(t, map[string]interface{}{"cycle": "1.0", "eol": "2025-06-01"})

	lateEvening := time.Date(2025, 6, 1, 23, 59, 59, 0, time.UTC)
	supported, eol := Evaluate(record, lateEvening)
	assert.True(t, supported)
	assert.False(t, eol)
}
