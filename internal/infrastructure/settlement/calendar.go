package settlement

import "time"

// Dhaka is the clearing calendar's time zone (UTC+6, no DST)
var Dhaka = time.FixedZone("Asia/Dhaka", 6*60*60)

// isWeekend reports whether t falls on the Bangladesh weekend
func isWeekend(t time.Time) bool {
	d := t.In(Dhaka).Weekday()
	return d == time.Friday || d == time.Saturday
}

// rollToBusinessDay moves t forward, keeping the clock time, until it no
// longer falls on a Friday or Saturday in Dhaka
func rollToBusinessDay(t time.Time) time.Time {
	for isWeekend(t) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}
