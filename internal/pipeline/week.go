package pipeline

import "time"

// WeekWindow returns the Monday 00:00:00.000 to Sunday 23:59:59.999 window of the
// week containing now, in now's location. Call it on every aggregation; now moves.
func WeekWindow(now time.Time) (start, end time.Time) {
	offset := int(now.Weekday()) - 1
	if now.Weekday() == time.Sunday {
		offset = 6
	}

	y, m, d := now.Date()
	loc := now.Location()
	start = time.Date(y, m, d-offset, 0, 0, 0, 0, loc)
	end = time.Date(y, m, d-offset+6, 23, 59, 59, int(999*time.Millisecond), loc)
	return start, end
}

// dayOf truncates t to local midnight in loc.
func dayOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// InWeek reports whether t's calendar date (in now's location) falls inside the
// week containing now. The comparison is date-only: any time on Sunday counts.
func InWeek(t, now time.Time) bool {
	start, end := WeekWindow(now)
	loc := now.Location()
	day := dayOf(t, loc)
	return !day.Before(dayOf(start, loc)) && !day.After(dayOf(end, loc))
}
