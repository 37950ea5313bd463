package orbital

import (
	"math"
	"time"
)

// Epoch is the calendar instant at which simulated time is zero.
var Epoch = time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC)

// ISODate formats seconds since Epoch as a UTC "YYYY-MM-DD" date. Fractional
// seconds are truncated; non-finite input is treated as zero.
func ISODate(totalTime float64) string {
	if math.IsNaN(totalTime) || math.IsInf(totalTime, 0) {
		totalTime = 0
	}
	return time.Unix(Epoch.Unix()+int64(totalTime), 0).UTC().Format(time.DateOnly)
}
