package get_available_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-GymBooking/internal/domain"
)

// UseCase use case для получения доступности слотов на дату
// Результат не кешируется: бронирования меняются между запросами
type UseCase struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	blackoutRepo BlackoutRepository
	windowDays   int
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	blackoutRepo BlackoutRepository,
	windowDays int,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		blackoutRepo: blackoutRepo,
		windowDays:   windowDays,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	date := domain.DateOnly(req.Date)
	uc.logger.Info("GetAvailableSlots: date=%s", date.Format(domain.DateFormat))

	// 2. Активные слоты; слоты по умолчанию только при полностью пустом каталоге
	catalogue, err := uc.slotRepo.List(ctx, false)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list slots: %v", err)
		return nil, fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
	}
	if len(catalogue) == 0 {
		uc.logger.Info("GetAvailableSlots: slot catalogue is empty, using defaults")
	}
	slots := domain.ActiveSlots(catalogue)

	// 3. Блокировки на дату
	blackouts, err := uc.blackoutRepo.ListByDate(ctx, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list blackouts: %v", err)
		return nil, fmt.Errorf("%w: failed to list blackouts: %v", ErrInternal, err)
	}

	// 4. Занятые места
	counts, err := uc.bookingRepo.CountBySlot(ctx, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to count bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to count bookings: %v", ErrInternal, err)
	}

	// 5. Свёртка
	day := domain.ComputeAvailability(slots, counts, blackouts)

	resp := &Response{
		Date:       date.Format(domain.DateFormat),
		DayName:    date.Format("Monday"),
		DayBlocked: day.DayBlocked,
		Reason:     day.Reason,
		Bookable:   domain.InBookingWindow(date, uc.timeProvider.Now(), uc.windowDays),
		Slots:      make([]Slot, 0, len(day.Slots)),
	}
	for _, item := range day.Slots {
		resp.Slots = append(resp.Slots, Slot{
			ID:          item.Slot.ID,
			Name:        item.Slot.Name,
			TimeStart:   item.Slot.TimeStart.String(),
			TimeEnd:     item.Slot.TimeEnd.String(),
			Time:        item.Slot.TimeRange(),
			MaxCapacity: item.Slot.MaxCapacity,
			Booked:      item.Booked,
			Available:   item.Available,
			Blocked:     item.Blocked,
		})
	}

	uc.logger.Info("GetAvailableSlots: %d slots, day blocked=%t", len(resp.Slots), resp.DayBlocked)
	return resp, nil
}

// Dates возвращает даты окна бронирования, начиная с сегодняшней
func (uc *UseCase) Dates() *DatesResponse {
	options := domain.NextDates(uc.timeProvider.Now(), uc.windowDays)

	resp := &DatesResponse{
		WindowDays: uc.windowDays,
		Dates:      make([]Date, 0, len(options)),
	}
	for _, o := range options {
		resp.Dates = append(resp.Dates, Date{
			Date:    o.Date,
			DayName: o.DayName,
			DayNum:  o.DayNum,
			Month:   o.Month,
			IsToday: o.IsToday,
		})
	}
	return resp
}
