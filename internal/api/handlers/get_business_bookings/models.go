package get_business_bookings

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров.
// date задаёт один день и не сочетается с from/to.
func ToServiceRequest(businessID, userID int64, query url.Values) (*models.GetBusinessBookingsRequest, error) {
	req := &models.GetBusinessBookingsRequest{
		UserID:     userID,
		BusinessID: businessID,
	}

	if v := query.Get("locationId"); v != "" {
		locationID, err := strconv.ParseInt(v, 10, 64)
		if err != nil || locationID <= 0 {
			return nil, fmt.Errorf("invalid locationId %q", v)
		}
		req.LocationID = &locationID
	}

	if v := query.Get("status"); v != "" {
		req.Status = &v
	}

	dateStr := query.Get("date")
	if dateStr != "" && (query.Get("from") != "" || query.Get("to") != "") {
		return nil, fmt.Errorf("date cannot be combined with from/to")
	}
	if dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, fmt.Errorf("invalid date: %w", err)
		}
		next := date.AddDate(0, 0, 1)
		req.From = &date
		req.To = &next
	}

	for _, p := range []struct {
		name string
		dst  **time.Time
	}{
		{name: "from", dst: &req.From},
		{name: "to", dst: &req.To},
	} {
		v := query.Get(p.name)
		if v == "" {
			continue
		}
		t, err := parseBound(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", p.name, err)
		}
		*p.dst = &t
	}

	if v := query.Get("includeCancelled"); v != "" {
		includeCancelled, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid includeCancelled value: %w", err)
		}
		req.IncludeCancelled = includeCancelled
	}

	if v := query.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid limit: %w", err)
		}
		req.Limit = limit
	}

	return req, nil
}

// parseBound принимает RFC3339 или дату YYYY-MM-DD (полночь UTC)
func parseBound(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse(domain.DateFormat, v)
}
