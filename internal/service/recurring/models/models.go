package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модели

// CreateRecurringRequest запрос на создание шаблона повторяющейся записи.
// Серия ограничивается EndDate, OccurrenceCount или обоими.
type CreateRecurringRequest struct {
	UserID     int64  `json:"-"`
	BusinessID int64  `json:"-"`
	LocationID *int64 `json:"locationId,omitempty"`
	ServiceID  int64  `json:"serviceId"`

	CustomerUserID int64   `json:"customerUserId"`
	CustomerName   string  `json:"customerName"`
	CustomerEmail  string  `json:"customerEmail"`
	CustomerPhone  *string `json:"customerPhone,omitempty"`

	Frequency       string  `json:"frequency"`            // DAILY, WEEKLY, BIWEEKLY, MONTHLY
	DayOfWeek       *int    `json:"dayOfWeek,omitempty"`  // 0 = воскресенье
	DayOfMonth      *int    `json:"dayOfMonth,omitempty"` // 1-31, короткие месяцы прижимаются к последнему дню
	StartTime       string  `json:"startTime"`            // "10:00"
	StartDate       string  `json:"startDate"`            // "2025-10-13"
	EndDate         *string `json:"endDate,omitempty"`
	OccurrenceCount *int    `json:"occurrenceCount,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// ToDomain конвертирует запрос в шаблон. Правила серии проверяет сервис.
func (r *CreateRecurringRequest) ToDomain() (*domain.RecurringBooking, error) {
	startDate, err := time.Parse(domain.DateFormat, strings.TrimSpace(r.StartDate))
	if err != nil {
		return nil, fmt.Errorf("startDate must be YYYY-MM-DD: %v", err)
	}

	rule := &domain.RecurringBooking{
		BusinessID:      r.BusinessID,
		LocationID:      r.LocationID,
		ServiceID:       r.ServiceID,
		CustomerUserID:  r.CustomerUserID,
		CustomerName:    strings.TrimSpace(r.CustomerName),
		CustomerEmail:   strings.TrimSpace(r.CustomerEmail),
		CustomerPhone:   r.CustomerPhone,
		Frequency:       domain.RecurrenceFrequency(strings.ToUpper(strings.TrimSpace(r.Frequency))),
		DayOfMonth:      r.DayOfMonth,
		StartTime:       types.TimeString(strings.TrimSpace(r.StartTime)),
		StartDate:       startDate,
		OccurrenceCount: r.OccurrenceCount,
		IsActive:        true,
		Notes:           r.Notes,
	}

	if r.DayOfWeek != nil {
		wd := time.Weekday(*r.DayOfWeek)
		rule.DayOfWeek = &wd
	}

	if r.EndDate != nil {
		endDate, err := time.Parse(domain.DateFormat, strings.TrimSpace(*r.EndDate))
		if err != nil {
			return nil, fmt.Errorf("endDate must be YYYY-MM-DD: %v", err)
		}
		rule.EndDate = &endDate
	}

	return rule, nil
}

// Response модели

// RecurringResponse шаблон повторяющейся записи
type RecurringResponse struct {
	ID              int64     `json:"id"`
	BusinessID      int64     `json:"businessId"`
	LocationID      *int64    `json:"locationId,omitempty"`
	ServiceID       int64     `json:"serviceId"`
	CustomerUserID  int64     `json:"customerUserId"`
	CustomerName    string    `json:"customerName"`
	CustomerEmail   string    `json:"customerEmail"`
	CustomerPhone   *string   `json:"customerPhone,omitempty"`
	Frequency       string    `json:"frequency"`
	DayOfWeek       *int      `json:"dayOfWeek,omitempty"`
	DayOfMonth      *int      `json:"dayOfMonth,omitempty"`
	StartTime       string    `json:"startTime"`
	StartDate       string    `json:"startDate"`
	EndDate         *string   `json:"endDate,omitempty"`
	OccurrenceCount *int      `json:"occurrenceCount,omitempty"`
	IsActive        bool      `json:"isActive"`
	Notes           *string   `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// RecurringListResponse ответ со списком шаблонов
type RecurringListResponse struct {
	RecurringBookings []RecurringResponse `json:"recurringBookings"`
}

// Методы конвертации

// FromDomain конвертирует domain модель в DTO
func FromDomain(r *domain.RecurringBooking) *RecurringResponse {
	if r == nil {
		return nil
	}

	resp := &RecurringResponse{
		ID:              r.ID,
		BusinessID:      r.BusinessID,
		LocationID:      r.LocationID,
		ServiceID:       r.ServiceID,
		CustomerUserID:  r.CustomerUserID,
		CustomerName:    r.CustomerName,
		CustomerEmail:   r.CustomerEmail,
		CustomerPhone:   r.CustomerPhone,
		Frequency:       string(r.Frequency),
		DayOfMonth:      r.DayOfMonth,
		StartTime:       r.StartTime.String(),
		StartDate:       r.StartDate.Format(domain.DateFormat),
		OccurrenceCount: r.OccurrenceCount,
		IsActive:        r.IsActive,
		Notes:           r.Notes,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}

	if r.DayOfWeek != nil {
		wd := int(*r.DayOfWeek)
		resp.DayOfWeek = &wd
	}
	if r.EndDate != nil {
		end := r.EndDate.Format(domain.DateFormat)
		resp.EndDate = &end
	}

	return resp
}

// FromDomainList конвертирует список domain моделей в DTO
func FromDomainList(rules []*domain.RecurringBooking) *RecurringListResponse {
	resp := &RecurringListResponse{
		RecurringBookings: make([]RecurringResponse, 0, len(rules)),
	}
	for _, rule := range rules {
		if r := FromDomain(rule); r != nil {
			resp.RecurringBookings = append(resp.RecurringBookings, *r)
		}
	}
	return resp
}
