package review

import "time"

// DayStart returns the start of the day containing t in loc, converted to UTC.
func DayStart(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return start.UTC()
}

// NextDayStart returns the start of the day after t in loc, converted to UTC.
func NextDayStart(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	// AddDate handles DST correctly, Add(24h) does not
	next := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)
	return next.UTC()
}

// DateStart returns the start, in loc, of the calendar date that d itself
// carries, converted to UTC. Unlike DayStart it never re-reads d as an
// instant: a date parsed as midnight UTC stays on the same year-month-day in
// every zone instead of sliding to the previous local day.
func DateStart(d time.Time, loc *time.Location) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc).UTC()
}

// NextDateStart returns the start of the day after the calendar date carried
// by d, in loc, converted to UTC.
func NextDateStart(d time.Time, loc *time.Location) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1).UTC()
}

// ParseTimezone parses a timezone string, returning UTC as fallback.
func ParseTimezone(tz string) *time.Location {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DateKey formats t as a local calendar date key ("2006-01-02") in loc.
// Bucketing is by local year-month-day, never the UTC instant, so a review
// due late in the evening stays on the learner's own calendar day.
func DateKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}
