package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/askhatb/challenge-on/internal/models"
)

// DayFormat is the day-granularity key used for bucketing log dates.
const DayFormat = "2006-01-02"

// MarkedDates buckets progress logs by calendar day. The server keeps full
// timestamps; the calendar view only cares which days have activity.
func MarkedDates(logs []models.ProgressLog) map[string][]models.ProgressLog {
	marked := make(map[string][]models.ProgressLog)
	for _, log := range logs {
		day := log.Date.Format(DayFormat)
		marked[day] = append(marked[day], log)
	}
	return marked
}

// RenderMonth draws a month grid, marking days that have progress logs with an
// asterisk and the selected day with brackets.
func RenderMonth(year int, month time.Month, marked map[string][]models.ProgressLog, selected time.Time) string {
	var b strings.Builder

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	fmt.Fprintf(&b, "%s %d\n", month.String(), year)
	b.WriteString("Su Mo Tu We Th Fr Sa\n")

	// Leading blanks up to the first weekday.
	for i := 0; i < int(first.Weekday()); i++ {
		b.WriteString("   ")
	}

	for day := first; day.Month() == month; day = day.AddDate(0, 0, 1) {
		key := day.Format(DayFormat)
		cell := fmt.Sprintf("%2d", day.Day())

		switch {
		case sameDay(day, selected):
			cell = "[" + strings.TrimSpace(cell) + "]"
		case len(marked[key]) > 0:
			cell = cell + "*"
		default:
			cell = cell + " "
		}

		b.WriteString(cell)
		if day.Weekday() == time.Saturday {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	return b.String()
}

func sameDay(a, b time.Time) bool {
	return a.Format(DayFormat) == b.Format(DayFormat)
}
