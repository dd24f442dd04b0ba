// Package dashboard contains the aggregation engine and the dashboard use cases.
package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/pesawise/backend/internal/domain/entity"
	domainerror "github.com/pesawise/backend/internal/domain/error"
)

// Granularity represents the time granularity for grouped series.
type Granularity string

const (
	GranularityDaily   Granularity = "daily"
	GranularityWeekly  Granularity = "weekly"
	GranularityMonthly Granularity = "monthly"
	GranularityYearly  Granularity = "yearly"
)

// IsValid reports whether the granularity is supported.
func (g Granularity) IsValid() bool {
	switch g {
	case GranularityDaily, GranularityWeekly, GranularityMonthly, GranularityYearly:
		return true
	}
	return false
}

// ParseGranularity parses a granularity, defaulting to monthly when empty.
func ParseGranularity(s string) (Granularity, error) {
	if strings.TrimSpace(s) == "" {
		return GranularityMonthly, nil
	}
	g := Granularity(strings.ToLower(strings.TrimSpace(s)))
	if !g.IsValid() {
		return "", domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidGranularity,
			"granularity must be: daily, weekly, monthly, or yearly",
			domainerror.ErrInvalidGranularity,
		)
	}
	return g, nil
}

// monthAbbreviations maps months to their short display names.
var monthAbbreviations = map[time.Month]string{
	time.January:   "Jan",
	time.February:  "Feb",
	time.March:     "Mar",
	time.April:     "Apr",
	time.May:       "May",
	time.June:      "Jun",
	time.July:      "Jul",
	time.August:    "Aug",
	time.September: "Sep",
	time.October:   "Oct",
	time.November:  "Nov",
	time.December:  "Dec",
}

// GeneratePeriodLabel generates a human-readable label for a period based on granularity.
// Formats:
// - Daily: "{month_abbr} {day}" (e.g., "Mar 05")
// - Weekly: "W{week} {year}" (e.g., "W12 2025")
// - Monthly: "{month_abbr} {year}" (e.g., "Mar 2025")
// - Yearly: "{year}"
func GeneratePeriodLabel(date time.Time, granularity Granularity) string {
	switch granularity {
	case GranularityWeekly:
		_, week := date.ISOWeek()
		return fmt.Sprintf("W%d %d", week, date.Year())
	case GranularityMonthly:
		return fmt.Sprintf("%s %d", monthAbbreviations[date.Month()], date.Year())
	case GranularityYearly:
		return fmt.Sprintf("%d", date.Year())
	default:
		return fmt.Sprintf("%s %02d", monthAbbreviations[date.Month()], date.Day())
	}
}

// GetPeriodBounds returns the half-open calendar bounds [start, end) of the period containing date.
// Bounds are calendar dates at midnight UTC, taken from date's own Y/M/D.
func GetPeriodBounds(date time.Time, granularity Granularity) (start, end time.Time) {
	day := entity.CalendarDate(date)

	switch granularity {
	case GranularityWeekly:
		start = getWeekStartDate(day)
		end = start.AddDate(0, 0, 7)
	case GranularityMonthly:
		start = time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 1, 0)
	case GranularityYearly:
		start = time.Date(day.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(1, 0, 0)
	default:
		start = day
		end = day.AddDate(0, 0, 1)
	}
	return start, end
}

// PeriodInfo holds information about a single period.
type PeriodInfo struct {
	PeriodStart time.Time
	PeriodEnd   time.Time // Exclusive
	PeriodLabel string
}

// GeneratePeriodSeries generates all periods touching [startDate, endDate] for the given granularity.
// This ensures continuous data for chart rendering with no gaps.
func GeneratePeriodSeries(startDate, endDate time.Time, granularity Granularity) []PeriodInfo {
	periods := make([]PeriodInfo, 0)
	last := entity.CalendarDate(endDate)

	current, _ := GetPeriodBounds(startDate, granularity)
	for !current.After(last) {
		start, end := GetPeriodBounds(current, granularity)
		periods = append(periods, PeriodInfo{
			PeriodStart: start,
			PeriodEnd:   end,
			PeriodLabel: GeneratePeriodLabel(start, granularity),
		})
		current = end
	}

	return periods
}

// getWeekStartDate returns the Monday of the week containing the given date.
func getWeekStartDate(date time.Time) time.Time {
	weekday := int(date.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday is 7
	}
	daysFromMonday := weekday - 1
	return time.Date(date.Year(), date.Month(), date.Day()-daysFromMonday, 0, 0, 0, 0, time.UTC)
}

// GetPeriodKeyForDate returns a unique key for the period containing the given date.
func GetPeriodKeyForDate(date time.Time, granularity Granularity) string {
	start, _ := GetPeriodBounds(date, granularity)
	return start.Format(entity.DateLayout)
}
