package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/policy"
)

// dayBounds возвращает интервал, в котором ищутся слоты.
// Для неограниченного дня это сутки в часовом поясе бизнеса.
func dayBounds(window policy.DayWindow, date time.Time, loc *time.Location) (policy.Interval, bool) {
	switch window.State {
	case policy.DayOpen:
		return window.Bounds(date, loc)
	case policy.DayUnrestricted:
		start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
		return policy.Interval{Start: start, End: start.AddDate(0, 0, 1)}, true
	default:
		return policy.Interval{}, false
	}
}

// generateSlots идёт по окну с шагом step и оставляет слоты, которые
// начинаются не раньше now, проходят минимальное время до записи
// и не пересекаются с занятыми интервалами.
// Слот целиком лежит в окне: конец слота не позже конца окна.
func generateSlots(
	bounds policy.Interval,
	duration, step time.Duration,
	now time.Time,
	minimumAdvanceHours int,
	busy []policy.Interval,
	effective func(start, end time.Time) policy.Interval,
) []Slot {
	slots := make([]Slot, 0)
	if duration <= 0 || step <= 0 {
		return slots
	}

	for start := bounds.Start; !start.Add(duration).After(bounds.End); start = start.Add(step) {
		end := start.Add(duration)

		if start.Before(now) {
			continue
		}
		if !policy.IsAdvanceBookingAllowed(now, start, minimumAdvanceHours) {
			continue
		}
		if policy.HasConflict(effective(start, end), busy) {
			continue
		}

		slots = append(slots, Slot{StartTime: start, EndTime: end})
	}

	return slots
}
