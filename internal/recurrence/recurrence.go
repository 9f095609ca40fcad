// Package recurrence разворачивает шаблон повторяющейся записи в даты вхождений.
package recurrence

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	ErrUnknownFrequency     = errors.New("recurrence: unknown frequency")
	ErrInvalidStartTime     = errors.New("recurrence: invalid start time")
	ErrUnbounded            = errors.New("recurrence: end date or occurrence count is required")
	ErrInvalidOccurrences   = errors.New("recurrence: invalid occurrence count")
	ErrEndBeforeStart       = errors.New("recurrence: end date is before start date")
	ErrInvalidDayOfWeek     = errors.New("recurrence: invalid day of week")
	ErrInvalidDayOfMonth    = errors.New("recurrence: invalid day of month")
	ErrDayOfWeekNotAllowed  = errors.New("recurrence: day of week is only allowed for weekly rules")
	ErrDayOfMonthNotAllowed = errors.New("recurrence: day of month is only allowed for monthly rules")
)

// Validate проверяет шаблон. maxOccurrences <= 0 снимает ограничение на количество.
func Validate(rule *domain.RecurringBooking, maxOccurrences int) error {
	switch rule.Frequency {
	case domain.FrequencyDaily, domain.FrequencyWeekly, domain.FrequencyBiweekly, domain.FrequencyMonthly:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFrequency, rule.Frequency)
	}

	if err := rule.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidStartTime, err)
	}

	if rule.EndDate == nil && rule.OccurrenceCount == nil {
		return ErrUnbounded
	}
	if rule.OccurrenceCount != nil {
		count := *rule.OccurrenceCount
		if count <= 0 || (maxOccurrences > 0 && count > maxOccurrences) {
			return fmt.Errorf("%w: %d", ErrInvalidOccurrences, count)
		}
	}
	if rule.EndDate != nil && dateOf(*rule.EndDate).Before(dateOf(rule.StartDate)) {
		return ErrEndBeforeStart
	}

	if rule.DayOfWeek != nil {
		if rule.Frequency != domain.FrequencyWeekly && rule.Frequency != domain.FrequencyBiweekly {
			return ErrDayOfWeekNotAllowed
		}
		if *rule.DayOfWeek < time.Sunday || *rule.DayOfWeek > time.Saturday {
			return fmt.Errorf("%w: %d", ErrInvalidDayOfWeek, *rule.DayOfWeek)
		}
	}
	if rule.DayOfMonth != nil {
		if rule.Frequency != domain.FrequencyMonthly {
			return ErrDayOfMonthNotAllowed
		}
		if *rule.DayOfMonth < 1 || *rule.DayOfMonth > 31 {
			return fmt.Errorf("%w: %d", ErrInvalidDayOfMonth, *rule.DayOfMonth)
		}
	}

	return nil
}

// Dates возвращает календарные даты вхождений серии в диапазоне [from, to] включительно.
//
// Нумерация вхождений идёт от StartDate, поэтому OccurrenceCount ограничивает
// всю серию, а не только выбранный диапазон. limit <= 0 не ограничивает результат.
// Даты возвращаются полуночью UTC и не несут часового пояса.
func Dates(rule *domain.RecurringBooking, from, to time.Time, limit int) []time.Time {
	first := firstDate(rule)
	end := dateOf(to)
	if rule.EndDate != nil && dateOf(*rule.EndDate).Before(end) {
		end = dateOf(*rule.EndDate)
	}
	begin := dateOf(from)

	var dates []time.Time
	for i := 0; ; i++ {
		if rule.OccurrenceCount != nil && i >= *rule.OccurrenceCount {
			break
		}
		date := nth(rule, first, i)
		if date.After(end) {
			break
		}
		if date.Before(begin) {
			continue
		}
		dates = append(dates, date)
		if limit > 0 && len(dates) >= limit {
			break
		}
	}

	return dates
}

// Starts переводит даты вхождений в моменты начала записи в локации бизнеса
func Starts(rule *domain.RecurringBooking, loc *time.Location, from, to time.Time, limit int) ([]time.Time, error) {
	dates := Dates(rule, from, to, limit)
	starts := make([]time.Time, 0, len(dates))
	for _, date := range dates {
		start, err := rule.StartTime.OnDate(date, loc)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidStartTime, err)
		}
		starts = append(starts, start)
	}
	return starts, nil
}

func firstDate(rule *domain.RecurringBooking) time.Time {
	start := dateOf(rule.StartDate)

	switch rule.Frequency {
	case domain.FrequencyWeekly, domain.FrequencyBiweekly:
		if rule.DayOfWeek == nil {
			return start
		}
		shift := (int(*rule.DayOfWeek) - int(start.Weekday()) + 7) % 7
		return start.AddDate(0, 0, shift)
	case domain.FrequencyMonthly:
		candidate := monthDay(start.Year(), start.Month(), dayOfMonth(rule, start))
		if candidate.Before(start) {
			return monthDay(start.Year(), start.Month()+1, dayOfMonth(rule, start))
		}
		return candidate
	default:
		return start
	}
}

func nth(rule *domain.RecurringBooking, first time.Time, i int) time.Time {
	switch rule.Frequency {
	case domain.FrequencyWeekly:
		return first.AddDate(0, 0, 7*i)
	case domain.FrequencyBiweekly:
		return first.AddDate(0, 0, 14*i)
	case domain.FrequencyMonthly:
		return monthDay(first.Year(), first.Month()+time.Month(i), dayOfMonth(rule, dateOf(rule.StartDate)))
	default:
		return first.AddDate(0, 0, i)
	}
}

func dayOfMonth(rule *domain.RecurringBooking, start time.Time) int {
	if rule.DayOfMonth != nil {
		return *rule.DayOfMonth
	}
	return start.Day()
}

// monthDay возвращает day-е число месяца, прижимая к последнему дню короткого месяца
func monthDay(year int, month time.Month, day int) time.Time {
	firstOfMonth := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := firstOfMonth.AddDate(0, 1, -1).Day()
	if day > last {
		day = last
	}
	return firstOfMonth.AddDate(0, 0, day-1)
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
