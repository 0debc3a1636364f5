// Package parser provides presentation deck and embedded workbook parsing utilities.
package parser

import (
	"math"
	"time"
)

// spreadsheetEpoch is day zero of the 1900 date system. Serials from 61 on
// match the dates spreadsheets display; earlier serials come out one day early
// because the 1900 system counts a nonexistent 1900-02-29.
var spreadsheetEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// isoDate is the layout of converted date categories.
const isoDate = "2006-01-02"

// SerialToISO converts a spreadsheet date serial to an ISO 8601 date.
// The fractional part (time of day) is dropped.
func SerialToISO(serial float64) string {
	days := math.Floor(serial)
	return spreadsheetEpoch.AddDate(0, 0, int(days)).Format(isoDate)
}
