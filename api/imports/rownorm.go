package imports

import (
	"strconv"
	"strings"
	"time"

	"TravelCrmSaas/api/constants"
	"TravelCrmSaas/internal/config"

	"github.com/shopspring/decimal"
)

var dateLayouts = []string{
	constants.DateFormat,
	constants.DateFormatAlt,
	constants.DateFormatISO,
	constants.DateTimeFormat,
	"02/01/2006",
	"01/02/2006",
	time.RFC3339,
}

// ParseSheetDate turns a cell into a time. Accepts the usual date layouts
// and spreadsheet serial numbers (days since the 1900 epoch). Empty or
// unparseable cells fall back to now, matching legacy import behavior.
func ParseSheetDate(cell string) time.Time {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return time.Now()
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return t
		}
	}
	if serial, err := strconv.ParseFloat(cell, 64); err == nil && serial > 0 {
		secs := (serial - config.SpreadsheetEpochOffset) * config.SecondsPerDay
		return time.Unix(int64(secs), 0).UTC()
	}
	return time.Now()
}

// SplitList splits a comma-separated cell into trimmed entries. Empty
// entries are dropped.
func SplitList(cell string) []string {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return []string{}
	}
	parts := strings.Split(cell, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// NormalizeStatus uppercases a status cell and folds hyphens and spaces to
// underscores, so "yet-to-raise" and "Yet To Raise" both store as
// YET_TO_RAISE.
func NormalizeStatus(cell, fallback string) string {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return fallback
	}
	cell = strings.ToUpper(cell)
	cell = strings.ReplaceAll(cell, "-", "_")
	cell = strings.ReplaceAll(cell, " ", "_")
	return cell
}

// ParseIntCell is a tolerant integer parse: trims, accepts float-formatted
// cells ("12.0"), returns 0 for anything else.
func ParseIntCell(cell string) int {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0
	}
	if n, err := strconv.Atoi(cell); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		return int(f)
	}
	return 0
}

// ParseDecimalCell parses a money cell, stripping currency commas. Bad
// cells come back as zero rather than failing the row.
func ParseDecimalCell(cell string) decimal.Decimal {
	cell = strings.TrimSpace(strings.ReplaceAll(cell, ",", ""))
	if cell == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cell)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseFloatCell is the tolerant float parse used for ratings.
func ParseFloatCell(cell string) float64 {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0
	}
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0
	}
	return f
}
