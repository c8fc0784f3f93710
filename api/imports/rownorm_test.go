package imports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseSheetDateLayouts(t *testing.T) {
	tests := []struct {
		cell string
		want time.Time
	}{
		{"2025-03-15", time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"15-03-2025", time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"2025-03-15T10:30:00", time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got := ParseSheetDate(tt.cell)
		assert.True(t, got.Equal(tt.want), "cell %q: got %v want %v", tt.cell, got, tt.want)
	}
}

func TestParseSheetDateSerial(t *testing.T) {
	// Serial 1 lands before the unix epoch on the 1900 date system.
	assert.Equal(t, time.Date(1899, 12, 31, 0, 0, 0, 0, time.UTC), ParseSheetDate("1"))
	// Serial 25569 is the unix epoch.
	assert.Equal(t, time.Unix(0, 0).UTC(), ParseSheetDate("25569"))
	// One day later.
	assert.Equal(t, time.Unix(86400, 0).UTC(), ParseSheetDate("25570"))
	// A modern serial: 2023-03-15.
	assert.Equal(t, time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC), ParseSheetDate("45000"))
}

func TestParseSheetDateFallsBackToNow(t *testing.T) {
	for _, cell := range []string{"", "not a date", "  "} {
		got := ParseSheetDate(cell)
		assert.WithinDuration(t, time.Now(), got, 5*time.Second, "cell %q", cell)
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"Agra", "Delhi", "Jaipur"}, SplitList("Agra, Delhi ,Jaipur"))
	assert.Equal(t, []string{"Agra"}, SplitList("Agra"))
	assert.Equal(t, []string{"Agra", "Delhi"}, SplitList("Agra,,Delhi,"))
	assert.Equal(t, []string{}, SplitList(""))
	assert.Equal(t, []string{}, SplitList("  "))
}

func TestNormalizeStatus(t *testing.T) {
	assert.Equal(t, "YET_TO_RAISE", NormalizeStatus("yet-to-raise", "X"))
	assert.Equal(t, "YET_TO_RAISE", NormalizeStatus("Yet To Raise", "X"))
	assert.Equal(t, "UPCOMING", NormalizeStatus("upcoming", "X"))
	assert.Equal(t, "UPCOMING", NormalizeStatus("", "UPCOMING"))
}

func TestParseIntCell(t *testing.T) {
	assert.Equal(t, 12, ParseIntCell("12"))
	assert.Equal(t, 12, ParseIntCell(" 12.0 "))
	assert.Equal(t, 0, ParseIntCell("abc"))
	assert.Equal(t, 0, ParseIntCell(""))
}

func TestParseDecimalCell(t *testing.T) {
	assert.Equal(t, "125000.5", ParseDecimalCell("1,25,000.50").String())
	assert.Equal(t, "0", ParseDecimalCell("").String())
	assert.Equal(t, "0", ParseDecimalCell("n/a").String())
}

func TestNormalizeHeader(t *testing.T) {
	tests := map[string]string{
		"Room Nights":    "room_nights",
		"roomNights":     "room_nights",
		"room_nights":    "room_nights",
		"  File Code  ":  "file_code",
		"ManagerEmail":   "manager_email",
		"PNR":            "pnr",
		"client-country": "client_country",
	}
	for in, want := range tests {
		assert.Equal(t, want, normalizeHeader(in), "header %q", in)
	}
}
