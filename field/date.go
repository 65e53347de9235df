package field

import "time"

// Output format per spec §4.B: RFC 7231 IMF-fixdate, e.g.
// "Sun, 06 Nov 1994 08:49:37 GMT".
const imfFixdate = "Mon, 02 Jan 2006 15:04:05 GMT"

// rfc850 is accepted on input with a two-digit year; asctime has no
// explicit timezone (implied GMT).
const rfc850 = "Monday, 02-Jan-06 15:04:05 GMT"
const asctime = "Mon Jan _2 15:04:05 2006"

// DateValue converts header dates to/from time.Time. Output always
// uses IMF-fixdate; input accepts IMF-fixdate, RFC 850 (sliding
// 50-year window per spec §4.B), and asctime.
type DateValue struct{}

func (DateValue) AsFieldValue(v time.Time) string {
	return v.UTC().Format(imfFixdate)
}

func (DateValue) FromFieldValue(text string) (time.Time, error) {
	if t, err := time.Parse(imfFixdate, text); err == nil {
		return t, nil
	}
	if t, err := time.Parse(rfc850, text); err == nil {
		return slideCentury(t), nil
	}
	if t, err := time.Parse(asctime, text); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, parseErr(0, "not a recognized HTTP date format")
}

// slideCentury maps RFC 850's two-digit year onto the sliding 50-year
// window: dates that would land more than 50 years in the future are
// assumed to belong to the previous century.
func slideCentury(t time.Time) time.Time {
	now := currentTimeForDateWindow()
	y := t.Year()
	century := (now.Year() / 100) * 100
	candidate := century + (y % 100)
	if candidate > now.Year()+50 {
		candidate -= 100
	}
	return time.Date(candidate, t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}

// currentTimeForDateWindow is a seam for tests that need to pin "now".
var currentTimeForDateWindow = time.Now
