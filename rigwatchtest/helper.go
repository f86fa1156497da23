package rigwatchtest

import "time"

// UTCTime creates a time.Time in UTC from a unix second count so tests are
// stable regardless of the machine's local timezone.
func UTCTime(sec int64) time.Time {
	return time.Unix(sec, 0).In(time.UTC)
}
