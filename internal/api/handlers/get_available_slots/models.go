package get_available_slots

import (
	"errors"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
)

var (
	errMissingServiceID = errors.New("serviceId is required")
	errInvalidServiceID = errors.New("serviceId must be a positive integer")
	errInvalidLocation  = errors.New("locationId must be a positive integer")
	errMissingDate      = errors.New("date is required")
	errInvalidDate      = errors.New("date must be YYYY-MM-DD")
)

// AvailableSlotsResponse HTTP ответ со свободным временем
type AvailableSlotsResponse struct {
	Date       string `json:"date"`
	BusinessID int64  `json:"businessId"`
	LocationID *int64 `json:"locationId,omitempty"`
	ServiceID  int64  `json:"serviceId"`
	Timezone   string `json:"timezone"`
	DayState   string `json:"dayState"`
	Slots      []Slot `json:"slots"`
}

// Slot свободный интервал
type Slot struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

// ToUseCaseRequest разбирает query параметры serviceId, date и locationId
func ToUseCaseRequest(businessID int64, query url.Values) (*getAvailableSlots.Request, error) {
	req := &getAvailableSlots.Request{BusinessID: businessID}

	raw := query.Get("serviceId")
	if raw == "" {
		return nil, errMissingServiceID
	}
	serviceID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || serviceID <= 0 {
		return nil, errInvalidServiceID
	}
	req.ServiceID = serviceID

	if raw := query.Get("locationId"); raw != "" {
		locationID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || locationID <= 0 {
			return nil, errInvalidLocation
		}
		req.LocationID = &locationID
	}

	raw = query.Get("date")
	if raw == "" {
		return nil, errMissingDate
	}
	date, err := time.Parse(domain.DateFormat, raw)
	if err != nil {
		return nil, errInvalidDate
	}
	req.Date = date

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP ответ.
// Время слотов отдаётся в часовом поясе бизнеса.
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	out := &AvailableSlotsResponse{
		Date:       resp.Date,
		BusinessID: resp.BusinessID,
		LocationID: resp.LocationID,
		ServiceID:  resp.ServiceID,
		Timezone:   resp.Timezone,
		DayState:   resp.DayState,
		Slots:      make([]Slot, 0, len(resp.Slots)),
	}
	for _, s := range resp.Slots {
		out.Slots = append(out.Slots, Slot{StartTime: s.StartTime, EndTime: s.EndTime})
	}
	return out
}
