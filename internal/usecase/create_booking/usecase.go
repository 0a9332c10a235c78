package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-GymBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-GymBooking/internal/infra/storage/booking"
	clientRepo "github.com/m04kA/SMC-GymBooking/internal/infra/storage/client"
	slotRepo "github.com/m04kA/SMC-GymBooking/internal/infra/storage/slot"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	blackoutRepo BlackoutRepository
	clientRepo   ClientRepository
	txManager    TransactionManager
	notifier     Notifier
	metrics      Metrics
	cfg          Config
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	blackoutRepo BlackoutRepository,
	clientRepo ClientRepository,
	txManager TransactionManager,
	notifier Notifier,
	metrics Metrics,
	cfg Config,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		blackoutRepo: blackoutRepo,
		clientRepo:   clientRepo,
		txManager:    txManager,
		notifier:     notifier,
		metrics:      metrics,
		cfg:          cfg,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания бронирования
// Проверка блокировок, подсчёт мест и вставка выполняются в одной транзакции под блокировкой
// строки слота. Следующий запрос ждёт блокировку и считает места уже после коммита предыдущего,
// поэтому два запроса на последнее место не пройдут оба
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: slot=%d, date=%s", req.SlotID, req.Date.Format(domain.DateFormat))

	resp, outcome, err := uc.execute(ctx, req)
	uc.metrics.ObserveAdmission(outcome)
	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, string, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, outcomeInvalid, err
	}

	// 2. Окно бронирования
	now := uc.timeProvider.Now()
	date := domain.DateOnly(req.Date)
	if err := validateDate(date, now, uc.cfg.WindowDays); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, outcomeInvalid, err
	}

	// 3. Абонемент (кабинет участника или режим "только для клиентов")
	if err := uc.checkMembership(ctx, req, now); err != nil {
		if errors.Is(err, ErrMembershipNotFound) || errors.Is(err, ErrMembershipExpired) {
			return nil, outcomeRejected, err
		}
		return nil, outcomeError, err
	}

	var (
		result *domain.Booking
		slot   *domain.Slot
	)

	// 4. Проверки и вставка в одной транзакции (READ COMMITTED + блокировка слота)
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error

		// 4.1. Слот (строка блокируется до конца транзакции)
		slot, err = uc.slotRepo.GetByID(txCtx, req.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Warn("CreateBooking: slot id=%d not found", req.SlotID)
				return ErrSlotNotFound
			}
			uc.logger.Error("CreateBooking: failed to get slot id=%d: %v", req.SlotID, err)
			return fmt.Errorf("%w: failed to get slot: %w", ErrInternal, err)
		}
		if !slot.IsActive {
			uc.logger.Warn("CreateBooking: slot id=%d is inactive", slot.ID)
			return ErrSlotUnavailable
		}

		// 4.2. Блокировки на дату (вся дата или этот слот)
		blackouts, err := uc.blackoutRepo.ListByDate(txCtx, date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to list blackouts: %v", err)
			return fmt.Errorf("%w: failed to list blackouts: %w", ErrInternal, err)
		}
		if domain.IsBlocked(blackouts, slot.ID) {
			uc.logger.Warn("CreateBooking: slot id=%d is blocked on %s", slot.ID, date.Format(domain.DateFormat))
			return ErrSlotUnavailable
		}

		// 4.3. Вместимость
		count, err := uc.bookingRepo.CountForSlot(txCtx, date, slot.ID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to count bookings: %v", err)
			return fmt.Errorf("%w: failed to count bookings: %w", ErrInternal, err)
		}
		if count >= slot.MaxCapacity {
			uc.logger.Warn("CreateBooking: slot id=%d is full, %d/%d spots taken", slot.ID, count, slot.MaxCapacity)
			return ErrSlotFull
		}

		uc.logger.Info("CreateBooking: slot available, %d/%d spots taken", count, slot.MaxCapacity)

		// 4.4. Вставка с новым токеном отмены
		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			BookingDate: date,
			SlotID:      slot.ID,
			ClientName:  req.ClientName,
			ClientPhone: req.ClientPhone,
			ClientEmail: req.ClientEmail,
			CancelToken: uuid.NewString(),
		})
		if err != nil {
			return uc.mapCreateError(err)
		}

		result = created
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrSlotFull):
			return nil, outcomeFull, err
		case errors.Is(err, ErrSlotUnavailable), errors.Is(err, ErrSlotNotFound):
			return nil, outcomeUnavailable, err
		case errors.Is(err, ErrInternal):
			return nil, outcomeError, err
		default:
			uc.logger.Error("CreateBooking: transaction failed: %v", err)
			return nil, outcomeError, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	// 5. Подтверждение уходит в очередь после коммита и не влияет на результат
	uc.notify(result, slot)

	return toResponse(result, slot), outcomeCreated, nil
}

// checkMembership проверяет абонемент и для кабинета участника подставляет контакты из реестра
func (uc *UseCase) checkMembership(ctx context.Context, req *Request, now time.Time) error {
	if req.ClientID == nil && !uc.cfg.RequireMembership {
		return nil
	}

	var (
		client *domain.Client
		err    error
	)
	if req.ClientID != nil {
		client, err = uc.clientRepo.GetByID(ctx, *req.ClientID)
	} else {
		client, err = uc.clientRepo.FindByPhone(ctx, req.ClientPhone)
	}
	if err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			uc.logger.Warn("CreateBooking: no membership found")
			return ErrMembershipNotFound
		}
		uc.logger.Error("CreateBooking: failed to load client: %v", err)
		return fmt.Errorf("%w: failed to load client: %v", ErrInternal, err)
	}

	if client.Status(now) == domain.MembershipExpired {
		uc.logger.Warn("CreateBooking: membership of client id=%d expired %d days ago",
			client.ID, -client.DaysRemaining(now))
		return ErrMembershipExpired
	}

	if req.ClientID != nil {
		req.ClientName = client.Name
		req.ClientPhone = client.Phone
		req.ClientEmail = client.Email
	}
	return nil
}

// mapCreateError приводит ошибки вставки (в том числе от триггера БД) к ошибкам use case
// Прочие ошибки оборачиваются через %w, чтобы менеджер транзакций видел конфликт сериализации
func (uc *UseCase) mapCreateError(err error) error {
	switch {
	case errors.Is(err, bookingRepo.ErrSlotFull):
		uc.logger.Warn("CreateBooking: capacity check rejected by database")
		return ErrSlotFull
	case errors.Is(err, bookingRepo.ErrSlotUnavailable):
		uc.logger.Warn("CreateBooking: blackout check rejected by database")
		return ErrSlotUnavailable
	case errors.Is(err, bookingRepo.ErrSlotNotFound):
		return ErrSlotNotFound
	default:
		uc.logger.Error("CreateBooking: failed to create booking: %v", err)
		return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
	}
}

func (uc *UseCase) notify(b *domain.Booking, slot *domain.Slot) {
	if uc.notifier == nil || !b.HasEmail() {
		return
	}

	queued := uc.notifier.Enqueue(&domain.BookingNotification{
		BookingID:   b.ID,
		ClientName:  b.ClientName,
		ClientEmail: *b.ClientEmail,
		ClientPhone: b.ClientPhone,
		Date:        b.BookingDate,
		SlotName:    slot.Name,
		SlotTime:    slot.TimeRange(),
		CancelToken: b.CancelToken,
		SiteURL:     uc.cfg.SiteURL,
	})
	if !queued {
		uc.logger.Warn("CreateBooking: confirmation for booking id=%d was not queued", b.ID)
	}
}

func toResponse(b *domain.Booking, slot *domain.Slot) *Response {
	return &Response{
		ID:          b.ID,
		BookingDate: b.BookingDate.Format(domain.DateFormat),
		SlotID:      b.SlotID,
		SlotName:    slot.Name,
		SlotTime:    slot.TimeRange(),
		ClientName:  b.ClientName,
		ClientPhone: b.ClientPhone,
		ClientEmail: b.ClientEmail,
		CancelToken: b.CancelToken,
		CreatedAt:   b.CreatedAt,
	}
}
