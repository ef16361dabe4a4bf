package api

import "time"

// dateLayout is the wire format for calendar dates (no time-of-day).
const dateLayout = "2006-01-02"

func parseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, value)
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}
