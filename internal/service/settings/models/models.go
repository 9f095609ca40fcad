package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// ErrUnknownWeekday возвращается для неизвестного названия дня недели
var ErrUnknownWeekday = errors.New("unknown weekday")

// Request модели

// UpdateRulesRequest частичное обновление правил. Передаются только изменяемые поля.
type UpdateRulesRequest struct {
	MinimumAdvanceBookingHours *int `json:"minimumAdvanceBookingHours,omitempty"`
	CancellationPolicyHours    *int `json:"cancellationPolicyHours,omitempty"`
	BookingBufferMinutes       *int `json:"bookingBufferMinutes,omitempty"`
}

// UpdateSettingsRequest запрос на обновление настроек бизнеса.
// Availability = nil оставляет расписание без изменений, иначе заменяет его целиком.
// Пустая карта снимает ограничения по часам работы.
type UpdateSettingsRequest struct {
	UserID       int64                  `json:"userId"`
	BusinessID   int64                  `json:"businessId"`
	Rules        *UpdateRulesRequest    `json:"rules,omitempty"`
	Availability map[string]DaySchedule `json:"availability,omitempty"`
}

// ApplyToRules применяет обновления к существующим правилам
func (r *UpdateRulesRequest) ApplyToRules(rules *domain.BookingRules) {
	if r == nil {
		return
	}
	if r.MinimumAdvanceBookingHours != nil {
		rules.MinimumAdvanceBookingHours = *r.MinimumAdvanceBookingHours
	}
	if r.CancellationPolicyHours != nil {
		rules.CancellationPolicyHours = *r.CancellationPolicyHours
	}
	if r.BookingBufferMinutes != nil {
		rules.BookingBufferMinutes = *r.BookingBufferMinutes
	}
}

// Response модели

// Rules правила бронирования бизнеса
type Rules struct {
	MinimumAdvanceBookingHours int `json:"minimumAdvanceBookingHours"`
	CancellationPolicyHours    int `json:"cancellationPolicyHours"`
	BookingBufferMinutes       int `json:"bookingBufferMinutes"`
}

// DaySchedule часы работы в один день недели
type DaySchedule struct {
	IsOpen    bool    `json:"isOpen"`
	OpenTime  *string `json:"openTime,omitempty"`  // "09:00"
	CloseTime *string `json:"closeTime,omitempty"` // "18:00"
}

// SettingsResponse правила и расписание бизнеса.
// Availability пустая, если расписание не настроено.
type SettingsResponse struct {
	BusinessID   int64                  `json:"businessId"`
	Timezone     string                 `json:"timezone,omitempty"`
	Rules        Rules                  `json:"rules"`
	Availability map[string]DaySchedule `json:"availability"`
	UpdatedAt    *time.Time             `json:"updatedAt,omitempty"`
}

// Методы конвертации

// FromDomain собирает ответ из доменных моделей
func FromDomain(business *domain.Business, rules domain.BookingRules, weekly *domain.WeeklyAvailability) *SettingsResponse {
	resp := &SettingsResponse{
		BusinessID: business.ID,
		Timezone:   business.Timezone,
		Rules: Rules{
			MinimumAdvanceBookingHours: rules.MinimumAdvanceBookingHours,
			CancellationPolicyHours:    rules.CancellationPolicyHours,
			BookingBufferMinutes:       rules.BookingBufferMinutes,
		},
		Availability: make(map[string]DaySchedule),
	}

	updatedAt := rules.UpdatedAt
	if weekly != nil {
		for day, schedule := range weekly.Days {
			resp.Availability[WeekdayName(day)] = fromDomainDay(schedule)
		}
		if weekly.UpdatedAt.After(updatedAt) {
			updatedAt = weekly.UpdatedAt
		}
	}
	if !updatedAt.IsZero() {
		resp.UpdatedAt = &updatedAt
	}

	return resp
}

// ToDomainAvailability конвертирует расписание запроса в доменную модель.
// Валидация часов выполняется сервисом.
func ToDomainAvailability(businessID int64, days map[string]DaySchedule) (*domain.WeeklyAvailability, error) {
	weekly := &domain.WeeklyAvailability{
		BusinessID: businessID,
		Days:       make(map[time.Weekday]domain.DaySchedule, len(days)),
	}

	for name, day := range days {
		weekday, err := ParseWeekday(name)
		if err != nil {
			return nil, err
		}
		schedule := domain.DaySchedule{IsOpen: day.IsOpen}
		if day.IsOpen {
			if day.OpenTime != nil {
				open := types.TimeString(strings.TrimSpace(*day.OpenTime))
				schedule.OpenTime = &open
			}
			if day.CloseTime != nil {
				closeTime := types.TimeString(strings.TrimSpace(*day.CloseTime))
				schedule.CloseTime = &closeTime
			}
		}
		weekly.Days[weekday] = schedule
	}

	return weekly, nil
}

// WeekdayName возвращает название дня недели в нижнем регистре ("monday")
func WeekdayName(day time.Weekday) string {
	return strings.ToLower(day.String())
}

// ParseWeekday разбирает название дня недели без учёта регистра
func ParseWeekday(name string) (time.Weekday, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for day := time.Sunday; day <= time.Saturday; day++ {
		if WeekdayName(day) == normalized {
			return day, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownWeekday, name)
}

func fromDomainDay(schedule domain.DaySchedule) DaySchedule {
	day := DaySchedule{IsOpen: schedule.IsOpen}
	if schedule.OpenTime != nil {
		open := schedule.OpenTime.String()
		day.OpenTime = &open
	}
	if schedule.CloseTime != nil {
		closeTime := schedule.CloseTime.String()
		day.CloseTime = &closeTime
	}
	return day
}
