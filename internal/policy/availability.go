package policy

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// DayState результат разрешения рабочих часов на дату
type DayState int

const (
	// DayUnrestricted рабочие часы не настроены - ограничений нет
	DayUnrestricted DayState = iota
	// DayClosed бизнес закрыт в этот день
	DayClosed
	// DayOpen бизнес открыт в окне [Open, Close]
	DayOpen
)

func (s DayState) String() string {
	switch s {
	case DayUnrestricted:
		return "unrestricted"
	case DayClosed:
		return "closed"
	case DayOpen:
		return "open"
	default:
		return "unknown"
	}
}

// DayWindow окно работы на конкретную дату
type DayWindow struct {
	State DayState
	Open  types.TimeString
	Close types.TimeString
}

// IsClosed возвращает true для закрытого дня
func (w DayWindow) IsClosed() bool {
	return w.State == DayClosed
}

// Bounds переводит окно в абсолютные моменты времени для даты date в локации loc.
// ok=false для закрытого и неограниченного дня.
func (w DayWindow) Bounds(date time.Time, loc *time.Location) (Interval, bool) {
	if w.State != DayOpen {
		return Interval{}, false
	}
	open, err := w.Open.OnDate(date, loc)
	if err != nil {
		return Interval{}, false
	}
	closeAt, err := w.Close.OnDate(date, loc)
	if err != nil {
		return Interval{}, false
	}
	return Interval{Start: open, End: closeAt}, true
}

// ResolveAvailability возвращает окно работы бизнеса на календарную дату.
//
// Отсутствие конфигурации (nil или ни одного настроенного дня) означает
// "без ограничений". День, отсутствующий в настроенном расписании, день с
// IsOpen=false и день с некорректными open/close считаются закрытыми.
func ResolveAvailability(weekly *domain.WeeklyAvailability, date time.Time) DayWindow {
	if !weekly.IsConfigured() {
		return DayWindow{State: DayUnrestricted}
	}

	schedule, ok := weekly.Day(date.Weekday())
	if !ok || !schedule.IsOpen || schedule.OpenTime == nil || schedule.CloseTime == nil {
		return DayWindow{State: DayClosed}
	}

	open, closeAt := *schedule.OpenTime, *schedule.CloseTime
	if open.Validate() != nil || closeAt.Validate() != nil || !open.IsBefore(closeAt) {
		return DayWindow{State: DayClosed}
	}

	return DayWindow{State: DayOpen, Open: open, Close: closeAt}
}

// WithinWindow проверяет, что candidate целиком лежит в окне работы.
// Дата окна берётся из начала candidate в локации loc.
func WithinWindow(window DayWindow, candidate Interval, loc *time.Location) bool {
	switch window.State {
	case DayUnrestricted:
		return true
	case DayOpen:
		if loc == nil {
			loc = time.UTC
		}
		bounds, ok := window.Bounds(candidate.Start.In(loc), loc)
		if !ok {
			return false
		}
		return !candidate.Start.Before(bounds.Start) && !candidate.End.After(bounds.End)
	default:
		return false
	}
}
