package service

import (
	"strconv"
	"strings"
	"time"

	"github.com/kontorhq/kontor-api/internal/domain/enum"
	"github.com/kontorhq/kontor-api/pkg/apperror"
)

// monthRange returns the first and last day of a calendar month. The last
// day comes from the calendar itself, so February in leap years is correct.
func monthRange(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start, end
}

// quarterRange returns the first and last day of a quarter (1..4).
func quarterRange(year, quarter int) (time.Time, time.Time) {
	start := time.Date(year, time.Month((quarter-1)*3+1), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 3, -1)
	return start, end
}

// resolvePeriod turns a period string into an inclusive date range. Monthly
// periods are "01".."12" (a bare "1".."9" is accepted too); quarterly
// periods are "Q1".."Q4", case-insensitive.
func resolvePeriod(year int, period string, periodType enum.PeriodType) (time.Time, time.Time, error) {
	p := strings.ToUpper(strings.TrimSpace(period))

	switch periodType {
	case enum.PeriodMonthly:
		month, err := strconv.Atoi(p)
		if err != nil || month < 1 || month > 12 {
			return time.Time{}, time.Time{}, apperror.NewBadRequestError("invalid monthly period: " + period)
		}
		start, end := monthRange(year, month)
		return start, end, nil

	case enum.PeriodQuarterly:
		if len(p) != 2 || p[0] != 'Q' {
			return time.Time{}, time.Time{}, apperror.NewBadRequestError("invalid quarterly period: " + period)
		}
		quarter := int(p[1] - '0')
		if quarter < 1 || quarter > 4 {
			return time.Time{}, time.Time{}, apperror.NewBadRequestError("invalid quarterly period: " + period)
		}
		start, end := quarterRange(year, quarter)
		return start, end, nil
	}

	return time.Time{}, time.Time{}, apperror.NewBadRequestError("invalid period type: " + string(periodType))
}
