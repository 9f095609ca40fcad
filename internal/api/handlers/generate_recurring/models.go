package generate_recurring

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	generateRecurring "github.com/m04kA/SMC-AppointmentService/internal/usecase/generate_recurring"
)

// GenerateRequest HTTP request model. Тело необязательно.
type GenerateRequest struct {
	From  *string `json:"from,omitempty"` // "2025-10-13", включительно
	To    *string `json:"to,omitempty"`   // "2025-12-31", включительно
	Limit int     `json:"limit,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP request в модель use case
func (r *GenerateRequest) ToUseCaseRequest(userID, businessID, recurringID int64) (*generateRecurring.Request, error) {
	req := &generateRecurring.Request{
		UserID:      userID,
		BusinessID:  businessID,
		RecurringID: recurringID,
		Limit:       r.Limit,
	}

	if r.From != nil {
		from, err := time.Parse(domain.DateFormat, *r.From)
		if err != nil {
			return nil, fmt.Errorf("from: %w", err)
		}
		req.From = &from
	}
	if r.To != nil {
		to, err := time.Parse(domain.DateFormat, *r.To)
		if err != nil {
			return nil, fmt.Errorf("to: %w", err)
		}
		req.To = &to
	}

	return req, nil
}
