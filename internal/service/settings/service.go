package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	businessRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/business"
	"github.com/m04kA/SMC-AppointmentService/internal/service/settings/models"
)

// Service сервис настроек бронирования бизнеса: правила и недельное расписание
type Service struct {
	businessRepo BusinessRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(
	businessRepo BusinessRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		businessRepo: businessRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Get получает правила и расписание бизнеса.
// Публичный метод, клиентам нужны часы работы и условия отмены.
func (s *Service) Get(ctx context.Context, businessID int64) (*models.SettingsResponse, error) {
	s.logger.Info("Get: fetching settings for business=%d", businessID)

	business, err := s.getBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}

	rules, weekly, err := s.load(ctx, businessID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Get: successfully fetched settings for business=%d", businessID)
	return models.FromDomain(business, rules, weekly), nil
}

// Update обновляет правила и/или расписание бизнеса.
// Доступно только владельцу. Правила обновляются частично, расписание заменяется целиком.
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: updating settings for business=%d by user=%d", req.BusinessID, req.UserID)

	if req.Rules == nil && req.Availability == nil {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	var weekly *domain.WeeklyAvailability
	if req.Availability != nil {
		parsed, err := models.ToDomainAvailability(req.BusinessID, req.Availability)
		if err != nil {
			s.logger.Warn("Update: invalid availability for business=%d: %v", req.BusinessID, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if err := validateAvailability(parsed); err != nil {
			s.logger.Warn("Update: invalid availability for business=%d: %v", req.BusinessID, err)
			return nil, err
		}
		weekly = parsed
	}

	business, err := s.getBusiness(ctx, req.BusinessID)
	if err != nil {
		return nil, err
	}
	if !business.IsOwner(req.UserID) {
		s.logger.Warn("Update: user=%d is not owner of business=%d", req.UserID, req.BusinessID)
		return nil, ErrAccessDenied
	}

	var resp *models.SettingsResponse

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		rules, current, err := s.load(txCtx, req.BusinessID)
		if err != nil {
			return err
		}

		if req.Rules != nil {
			req.Rules.ApplyToRules(&rules)
			if err := validateRules(rules); err != nil {
				s.logger.Warn("Update: invalid rules for business=%d: %v", req.BusinessID, err)
				return err
			}
			saved, err := s.businessRepo.UpsertRules(txCtx, &rules)
			if err != nil {
				s.logger.Error("Update: failed to save rules for business=%d: %v", req.BusinessID, err)
				return fmt.Errorf("%w: Update - save rules: %v", ErrInternal, err)
			}
			rules = *saved
		}

		if weekly != nil {
			if err := s.businessRepo.ReplaceAvailability(txCtx, weekly); err != nil {
				s.logger.Error("Update: failed to save availability for business=%d: %v", req.BusinessID, err)
				return fmt.Errorf("%w: Update - save availability: %v", ErrInternal, err)
			}
			weekly.UpdatedAt = time.Now()
			current = weekly
		}

		resp = models.FromDomain(business, rules, current)
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("Update: successfully updated settings for business=%d", req.BusinessID)
	return resp, nil
}

// Вспомогательные методы

func (s *Service) getBusiness(ctx context.Context, businessID int64) (*domain.Business, error) {
	business, err := s.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			s.logger.Warn("getBusiness: business id=%d not found", businessID)
			return nil, ErrBusinessNotFound
		}
		s.logger.Error("getBusiness: failed to get business id=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}
	return business, nil
}

// load читает правила (нулевые, если не заданы) и расписание
func (s *Service) load(ctx context.Context, businessID int64) (domain.BookingRules, *domain.WeeklyAvailability, error) {
	rules := domain.BookingRules{BusinessID: businessID}

	stored, err := s.businessRepo.GetRules(ctx, businessID)
	switch {
	case errors.Is(err, businessRepo.ErrRulesNotFound):
	case err != nil:
		s.logger.Error("load: failed to get rules for business=%d: %v", businessID, err)
		return rules, nil, fmt.Errorf("%w: failed to get rules: %v", ErrInternal, err)
	default:
		rules = *stored
	}

	weekly, err := s.businessRepo.GetAvailability(ctx, businessID)
	if err != nil {
		s.logger.Error("load: failed to get availability for business=%d: %v", businessID, err)
		return rules, nil, fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
	}

	return rules, weekly, nil
}

// validateRules валидирует правила бронирования
func validateRules(rules domain.BookingRules) error {
	if rules.MinimumAdvanceBookingHours < 0 || rules.MinimumAdvanceBookingHours > domain.MaxAdvanceBookingHours {
		return fmt.Errorf("%w: minimumAdvanceBookingHours must be between 0 and %d",
			ErrInvalidInput, domain.MaxAdvanceBookingHours)
	}
	if rules.CancellationPolicyHours < 0 || rules.CancellationPolicyHours > domain.MaxCancellationPolicyHours {
		return fmt.Errorf("%w: cancellationPolicyHours must be between 0 and %d",
			ErrInvalidInput, domain.MaxCancellationPolicyHours)
	}
	if rules.BookingBufferMinutes < 0 || rules.BookingBufferMinutes > domain.MaxBookingBufferMinutes {
		return fmt.Errorf("%w: bookingBufferMinutes must be between 0 and %d",
			ErrInvalidInput, domain.MaxBookingBufferMinutes)
	}
	return nil
}

// validateAvailability проверяет, что у открытых дней заданы корректные часы и open < close
func validateAvailability(weekly *domain.WeeklyAvailability) error {
	for day, schedule := range weekly.Days {
		if !schedule.IsOpen {
			continue
		}
		if schedule.OpenTime == nil || schedule.CloseTime == nil {
			return fmt.Errorf("%w: %s: openTime and closeTime are required for an open day",
				ErrInvalidInput, models.WeekdayName(day))
		}
		if err := schedule.OpenTime.Validate(); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidInput, models.WeekdayName(day), err)
		}
		if err := schedule.CloseTime.Validate(); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidInput, models.WeekdayName(day), err)
		}
		open, err := schedule.OpenTime.Minutes()
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidInput, models.WeekdayName(day), err)
		}
		closeAt, err := schedule.CloseTime.Minutes()
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidInput, models.WeekdayName(day), err)
		}
		if open >= closeAt {
			return fmt.Errorf("%w: %s: openTime must be before closeTime", ErrInvalidInput, models.WeekdayName(day))
		}
	}
	return nil
}
