package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-GymBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-GymBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-GymBooking/internal/service/bookings/models"
)

// Service сервис для работы с журналом бронирований
type Service struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	slots, err := s.slotIndex(ctx)
	if err != nil {
		return nil, err
	}

	return models.FromDomainBooking(booking, slots[booking.SlotID]), nil
}

// List получает бронирования за период (по дате, затем по слоту)
// и статистику: общее количество бронирований и количество на сегодня
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := "List: fetching bookings"
	if req.StartDate != nil {
		logMsg += fmt.Sprintf(", from=%s", req.StartDate.Format(domain.DateFormat))
	}
	if req.EndDate != nil {
		logMsg += fmt.Sprintf(", to=%s", req.EndDate.Format(domain.DateFormat))
	}
	s.logger.Info(logMsg)

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		s.logger.Warn("List: end date is before start date")
		return nil, ErrInvalidTimeRange
	}

	bookings, err := s.bookingRepo.List(ctx, req.ToDomainFilter())
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	total, err := s.bookingRepo.Count(ctx, domain.BookingsFilter{})
	if err != nil {
		s.logger.Error("List: failed to count bookings: %v", err)
		return nil, fmt.Errorf("%w: List - count error: %v", ErrInternal, err)
	}

	today := domain.DateOnly(s.timeProvider.Now())
	todayCount, err := s.bookingRepo.Count(ctx, domain.BookingsFilter{StartDate: &today, EndDate: &today})
	if err != nil {
		s.logger.Error("List: failed to count today's bookings: %v", err)
		return nil, fmt.Errorf("%w: List - count error: %v", ErrInternal, err)
	}

	slots, err := s.slotIndex(ctx)
	if err != nil {
		return nil, err
	}

	s.logger.Info("List: successfully fetched %d bookings", len(bookings))
	return &models.BookingListResponse{
		Bookings: models.FromDomainBookingList(bookings, slots),
		Total:    total,
		Today:    todayCount,
	}, nil
}

// CancelByToken отменяет бронирование по токену из письма
// Повторная отмена тем же токеном возвращает ErrBookingNotFound
func (s *Service) CancelByToken(ctx context.Context, token string) (*models.BookingResponse, error) {
	s.logger.Info("CancelByToken: cancelling booking by token")

	if _, err := uuid.Parse(token); err != nil {
		s.logger.Warn("CancelByToken: malformed token")
		return nil, ErrBookingNotFound
	}

	booking, err := s.bookingRepo.DeleteByCancelToken(ctx, token)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("CancelByToken: booking not found or already cancelled")
			return nil, ErrBookingNotFound
		}
		s.logger.Error("CancelByToken: repository error: %v", err)
		return nil, fmt.Errorf("%w: CancelByToken - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CancelByToken: successfully cancelled booking id=%d", booking.ID)
	return models.FromDomainBooking(booking, nil), nil
}

// Delete удаляет бронирование (тренер)
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting booking id=%d", id)

	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Delete: booking id=%d not found", id)
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted booking id=%d", id)
	return nil
}

// slotIndex каталог слотов по ID, включая выключенные
func (s *Service) slotIndex(ctx context.Context) (map[int64]*domain.Slot, error) {
	slots, err := s.slotRepo.List(ctx, false)
	if err != nil {
		s.logger.Error("slotIndex: failed to list slots: %v", err)
		return nil, fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
	}

	index := make(map[int64]*domain.Slot, len(slots))
	for _, slot := range slots {
		index[slot.ID] = slot
	}
	return index, nil
}
