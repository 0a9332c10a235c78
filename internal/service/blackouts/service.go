package blackouts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-GymBooking/internal/domain"
	blackoutRepo "github.com/m04kA/SMC-GymBooking/internal/infra/storage/blackout"
	"github.com/m04kA/SMC-GymBooking/internal/service/blackouts/models"
)

// Service сервис блокировок (выходные, праздники, отмена отдельных тренировок)
type Service struct {
	blackoutRepo BlackoutRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса блокировок
func NewService(blackoutRepo BlackoutRepository, logger Logger) *Service {
	return &Service{
		blackoutRepo: blackoutRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Create добавляет блокировку
// SlotID == nil блокирует весь день, иначе только указанный слот
func (s *Service) Create(ctx context.Context, req *models.CreateBlackoutRequest) (*models.BlackoutResponse, error) {
	s.logger.Info("Create: blocking date=%s, slot=%v", req.Date.Format(domain.DateFormat), req.SlotID)

	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.SlotID != nil && *req.SlotID <= 0 {
		return nil, fmt.Errorf("%w: slotId must be positive", ErrInvalidInput)
	}

	var reason *string
	if req.Reason != nil {
		trimmed := strings.TrimSpace(*req.Reason)
		if len(trimmed) > domain.MaxReasonLength {
			return nil, fmt.Errorf("%w: reason is longer than %d characters", ErrInvalidInput, domain.MaxReasonLength)
		}
		if trimmed != "" {
			reason = &trimmed
		}
	}

	created, err := s.blackoutRepo.Create(ctx, &domain.Blackout{
		BlockedDate: domain.DateOnly(req.Date),
		SlotID:      req.SlotID,
		Reason:      reason,
	})
	if err != nil {
		if errors.Is(err, blackoutRepo.ErrSlotNotFound) {
			s.logger.Warn("Create: slot id=%d not found", *req.SlotID)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created blackout id=%d", created.ID)
	return models.FromDomainBlackout(created), nil
}

// List возвращает блокировки по возрастанию даты
// upcomingOnly = true отбрасывает прошедшие даты
func (s *Service) List(ctx context.Context, upcomingOnly bool) (*models.BlackoutListResponse, error) {
	var (
		list []*domain.Blackout
		err  error
	)
	if upcomingOnly {
		list, err = s.blackoutRepo.ListFrom(ctx, domain.DateOnly(s.timeProvider.Now()))
	} else {
		list, err = s.blackoutRepo.List(ctx)
	}
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBlackoutList(list), nil
}

// IsBlocked проверяет, заблокирован ли слот на дату (блокировкой дня или слота)
func (s *Service) IsBlocked(ctx context.Context, date time.Time, slotID int64) (bool, error) {
	list, err := s.blackoutRepo.ListByDate(ctx, date)
	if err != nil {
		s.logger.Error("IsBlocked: repository error: %v", err)
		return false, fmt.Errorf("%w: IsBlocked - repository error: %v", ErrInternal, err)
	}
	return domain.IsBlocked(list, slotID), nil
}

// Delete снимает блокировку
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: removing blackout id=%d", id)

	if err := s.blackoutRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, blackoutRepo.ErrBlackoutNotFound) {
			s.logger.Warn("Delete: blackout id=%d not found", id)
			return ErrBlackoutNotFound
		}
		s.logger.Error("Delete: repository error for blackout id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	return nil
}
