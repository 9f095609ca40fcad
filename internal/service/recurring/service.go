package recurring

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	businessRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/business"
	serviceRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/service"
	"github.com/m04kA/SMC-AppointmentService/internal/recurrence"
	"github.com/m04kA/SMC-AppointmentService/internal/service/recurring/models"
)

// Service сервис шаблонов повторяющихся записей.
// Записи по шаблону создаёт generate_recurring.
type Service struct {
	recurringRepo  RecurringRepository
	businessRepo   BusinessRepository
	serviceRepo    ServiceRepository
	maxOccurrences int
	logger         Logger
}

// NewService создает новый экземпляр сервиса.
// maxOccurrences ограничивает OccurrenceCount шаблона.
func NewService(
	recurringRepo RecurringRepository,
	businessRepo BusinessRepository,
	serviceRepo ServiceRepository,
	maxOccurrences int,
	logger Logger,
) *Service {
	return &Service{
		recurringRepo:  recurringRepo,
		businessRepo:   businessRepo,
		serviceRepo:    serviceRepo,
		maxOccurrences: maxOccurrences,
		logger:         logger,
	}
}

// Create создает шаблон. Доступно только владельцу бизнеса.
func (s *Service) Create(ctx context.Context, req *models.CreateRecurringRequest) (*models.RecurringResponse, error) {
	s.logger.Info("Create: creating recurring booking for business=%d, service=%d, customer=%d by user=%d",
		req.BusinessID, req.ServiceID, req.CustomerUserID, req.UserID)

	rule, err := s.validate(req)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	if err := s.checkOwnerAccess(ctx, req.BusinessID, req.UserID); err != nil {
		return nil, err
	}

	service, err := s.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("Create: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Create: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if service.BusinessID != req.BusinessID {
		s.logger.Warn("Create: service id=%d belongs to business=%d", service.ID, service.BusinessID)
		return nil, ErrServiceNotFound
	}
	if !service.IsActive {
		s.logger.Warn("Create: service id=%d is inactive", service.ID)
		return nil, ErrServiceInactive
	}

	created, err := s.recurringRepo.Create(ctx, rule)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created recurring booking id=%d", created.ID)
	return models.FromDomain(created), nil
}

// List получает шаблоны бизнеса. Доступно только владельцу бизнеса.
func (s *Service) List(ctx context.Context, businessID, userID int64, activeOnly bool) (*models.RecurringListResponse, error) {
	s.logger.Info("List: fetching recurring bookings for business=%d by user=%d, activeOnly=%t",
		businessID, userID, activeOnly)

	if err := s.checkOwnerAccess(ctx, businessID, userID); err != nil {
		return nil, err
	}

	rules, err := s.recurringRepo.GetByBusiness(ctx, businessID, activeOnly)
	if err != nil {
		s.logger.Error("List: repository error for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d recurring bookings for business=%d", len(rules), businessID)
	return models.FromDomainList(rules), nil
}

// Вспомогательные методы

func (s *Service) validate(req *models.CreateRecurringRequest) (*domain.RecurringBooking, error) {
	if req.UserID <= 0 || req.BusinessID <= 0 || req.ServiceID <= 0 || req.CustomerUserID <= 0 {
		return nil, fmt.Errorf("%w: userID, businessID, serviceID and customerUserId must be positive", ErrInvalidInput)
	}
	if req.LocationID != nil && *req.LocationID <= 0 {
		return nil, fmt.Errorf("%w: locationId must be positive", ErrInvalidInput)
	}

	name := strings.TrimSpace(req.CustomerName)
	if name == "" || len([]rune(name)) > domain.MaxCustomerNameLength {
		return nil, fmt.Errorf("%w: customerName is required and at most %d characters",
			ErrInvalidInput, domain.MaxCustomerNameLength)
	}
	if !strings.Contains(req.CustomerEmail, "@") {
		return nil, fmt.Errorf("%w: customerEmail is invalid", ErrInvalidInput)
	}
	if req.Notes != nil && len([]rune(*req.Notes)) > domain.MaxNotesLength {
		return nil, fmt.Errorf("%w: notes are longer than %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	rule, err := req.ToDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := recurrence.Validate(rule, s.maxOccurrences); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return rule, nil
}

// checkOwnerAccess проверяет, что пользователь владелец бизнеса
func (s *Service) checkOwnerAccess(ctx context.Context, businessID, userID int64) error {
	business, err := s.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			s.logger.Warn("checkOwnerAccess: business id=%d not found", businessID)
			return ErrBusinessNotFound
		}
		s.logger.Error("checkOwnerAccess: failed to get business id=%d: %v", businessID, err)
		return fmt.Errorf("%w: checkOwnerAccess - failed to get business: %v", ErrInternal, err)
	}

	if !business.IsOwner(userID) {
		s.logger.Warn("checkOwnerAccess: user=%d is not owner of business=%d", userID, businessID)
		return ErrAccessDenied
	}

	return nil
}
