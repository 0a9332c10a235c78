package clients

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/m04kA/SMC-GymBooking/internal/domain"
	clientRepo "github.com/m04kA/SMC-GymBooking/internal/infra/storage/client"
	"github.com/m04kA/SMC-GymBooking/internal/service/clients/models"
)

// Service сервис учёта клиентов и абонементов
type Service struct {
	clientRepo   ClientRepository
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса клиентов
func NewService(
	clientRepo ClientRepository,
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	logger Logger,
) *Service {
	return &Service{
		clientRepo:   clientRepo,
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

// Create создает клиента; дата окончания = дата начала + длительность тарифа
func (s *Service) Create(ctx context.Context, req *models.CreateClientRequest) (*models.ClientResponse, error) {
	s.logger.Info("Create: creating client name=%q, plan=%s", req.Name, req.PlanType)

	now := s.timeProvider.Now()
	client := &domain.Client{}

	var err error
	if client.Name, err = normalizeName(req.Name); err != nil {
		return nil, s.invalid("Create", err)
	}
	if client.Phone, err = normalizePhone(req.Phone); err != nil {
		return nil, s.invalid("Create", err)
	}
	if client.Email, err = normalizeEmail(req.Email); err != nil {
		return nil, s.invalid("Create", err)
	}
	if client.Notes, err = normalizeNotes(req.Notes); err != nil {
		return nil, s.invalid("Create", err)
	}

	plan, err := parsePlan(req.PlanType)
	if err != nil {
		return nil, s.invalid("Create", err)
	}

	start := now
	if req.StartDate != nil {
		start = *req.StartDate
	}
	if err := client.SetPlan(plan, start); err != nil {
		return nil, s.invalid("Create", fmt.Errorf("%w: %v", ErrUnknownPlan, err))
	}

	created, err := s.clientRepo.Create(ctx, client)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created client id=%d, ends=%s",
		created.ID, created.EndDate.Format(domain.DateFormat))
	return models.FromDomainClient(created, now), nil
}

// GetByID получает клиента по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ClientResponse, error) {
	client, err := s.get(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainClient(client, s.timeProvider.Now()), nil
}

// List возвращает всех клиентов (сначала с ближайшей датой окончания) и сводку по статусам
func (s *Service) List(ctx context.Context) (*models.ClientListResponse, error) {
	clients, err := s.clientRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	resp := &models.ClientListResponse{Clients: make([]models.ClientResponse, 0, len(clients))}
	for _, c := range clients {
		item := models.FromDomainClient(c, now)
		switch domain.MembershipStatus(item.Status) {
		case domain.MembershipActive:
			resp.Active++
		case domain.MembershipExpiring:
			resp.Expiring++
		case domain.MembershipExpired:
			resp.Expired++
		}
		resp.Clients = append(resp.Clients, *item)
	}

	return resp, nil
}

// Update частично обновляет клиента
// При смене тарифа или даты начала дата окончания пересчитывается
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateClientRequest) (*models.ClientResponse, error) {
	s.logger.Info("Update: updating client id=%d", id)

	client, err := s.get(ctx, "Update", id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if client.Name, err = normalizeName(*req.Name); err != nil {
			return nil, s.invalid("Update", err)
		}
	}
	if req.Phone != nil {
		if client.Phone, err = normalizePhone(*req.Phone); err != nil {
			return nil, s.invalid("Update", err)
		}
	}
	if req.Email != nil {
		if client.Email, err = normalizeEmail(req.Email); err != nil {
			return nil, s.invalid("Update", err)
		}
	}
	if req.Notes != nil {
		if client.Notes, err = normalizeNotes(req.Notes); err != nil {
			return nil, s.invalid("Update", err)
		}
	}

	if req.PlanType != nil || req.StartDate != nil {
		plan := client.PlanType
		if req.PlanType != nil {
			if plan, err = parsePlan(*req.PlanType); err != nil {
				return nil, s.invalid("Update", err)
			}
		}
		start := client.StartDate
		if req.StartDate != nil {
			start = *req.StartDate
		}
		if err := client.SetPlan(plan, start); err != nil {
			return nil, s.invalid("Update", fmt.Errorf("%w: %v", ErrUnknownPlan, err))
		}
	}

	updated, err := s.save(ctx, "Update", client)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Update: successfully updated client id=%d", id)
	return models.FromDomainClient(updated, s.timeProvider.Now()), nil
}

// Renew продлевает абонемент: новый тариф и новое окно с указанной даты (по умолчанию сегодня)
// Предыдущее окно не сохраняется, историю посещений можно получить по телефону
func (s *Service) Renew(ctx context.Context, id int64, req *models.RenewRequest) (*models.ClientResponse, error) {
	s.logger.Info("Renew: renewing client id=%d, plan=%s", id, req.PlanType)

	plan, err := parsePlan(req.PlanType)
	if err != nil {
		return nil, s.invalid("Renew", err)
	}

	client, err := s.get(ctx, "Renew", id)
	if err != nil {
		return nil, err
	}

	now := s.timeProvider.Now()
	start := now
	if req.StartDate != nil {
		start = *req.StartDate
	}
	if err := client.SetPlan(plan, start); err != nil {
		return nil, s.invalid("Renew", fmt.Errorf("%w: %v", ErrUnknownPlan, err))
	}

	updated, err := s.save(ctx, "Renew", client)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Renew: client id=%d renewed until %s", id, updated.EndDate.Format(domain.DateFormat))
	return models.FromDomainClient(updated, now), nil
}

// Delete удаляет клиента. Его бронирования остаются в журнале
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting client id=%d", id)

	if err := s.clientRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			s.logger.Warn("Delete: client id=%d not found", id)
			return ErrClientNotFound
		}
		s.logger.Error("Delete: repository error for client id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	return nil
}

// VerifyByPhone находит клиента по телефону (с нормализацией)
// Не найден - ErrClientNotFound; абонемент истёк - результат Expired с данными клиента
func (s *Service) VerifyByPhone(ctx context.Context, phone string) (*models.VerifyResponse, error) {
	if domain.NormalizePhone(phone) == "" {
		return nil, fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}

	client, err := s.clientRepo.FindByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			s.logger.Warn("VerifyByPhone: no client for phone")
			return nil, ErrClientNotFound
		}
		s.logger.Error("VerifyByPhone: repository error: %v", err)
		return nil, fmt.Errorf("%w: VerifyByPhone - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	resp := &models.VerifyResponse{
		Outcome: models.VerifyVerified,
		Client:  *models.FromDomainClient(client, now),
	}
	if client.Status(now) == domain.MembershipExpired {
		resp.Outcome = models.VerifyExpired
		resp.ExpiredDaysAgo = -client.DaysRemaining(now)
	}

	s.logger.Info("VerifyByPhone: client id=%d, outcome=%s", client.ID, resp.Outcome)
	return resp, nil
}

// BookingHistory история бронирований клиента (совпадение по телефону), разбитая на прошедшие и будущие
func (s *Service) BookingHistory(ctx context.Context, id int64) (*models.HistoryResponse, error) {
	client, err := s.get(ctx, "BookingHistory", id)
	if err != nil {
		return nil, err
	}

	bookings, err := s.bookingRepo.ListByPhone(ctx, client.Phone)
	if err != nil {
		s.logger.Error("BookingHistory: failed to list bookings for client id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: BookingHistory - repository error: %v", ErrInternal, err)
	}

	slots, err := s.slotRepo.List(ctx, false)
	if err != nil {
		s.logger.Error("BookingHistory: failed to list slots: %v", err)
		return nil, fmt.Errorf("%w: BookingHistory - repository error: %v", ErrInternal, err)
	}
	slotIndex := make(map[int64]*domain.Slot, len(slots))
	for _, slot := range slots {
		slotIndex[slot.ID] = slot
	}

	now := s.timeProvider.Now()
	resp := &models.HistoryResponse{
		Client:   *models.FromDomainClient(client, now),
		Upcoming: make([]models.HistoryBooking, 0),
		Past:     make([]models.HistoryBooking, 0),
	}

	for _, b := range bookings {
		item := models.HistoryBooking{
			ID:          b.ID,
			BookingDate: b.BookingDate.Format(domain.DateFormat),
			SlotID:      b.SlotID,
		}
		if slot, ok := slotIndex[b.SlotID]; ok {
			item.SlotName = slot.Name
			item.SlotTime = slot.TimeRange()
		}
		if b.IsPast(now) {
			resp.Past = append(resp.Past, item)
		} else {
			resp.Upcoming = append(resp.Upcoming, item)
		}
	}

	// даты в формате YYYY-MM-DD сравниваются лексикографически
	sort.SliceStable(resp.Upcoming, func(i, j int) bool {
		return resp.Upcoming[i].BookingDate < resp.Upcoming[j].BookingDate
	})
	sort.SliceStable(resp.Past, func(i, j int) bool {
		return resp.Past[i].BookingDate > resp.Past[j].BookingDate
	})

	return resp, nil
}

func (s *Service) get(ctx context.Context, op string, id int64) (*domain.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			s.logger.Warn("%s: client id=%d not found", op, id)
			return nil, ErrClientNotFound
		}
		s.logger.Error("%s: repository error for client id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return client, nil
}

func (s *Service) save(ctx context.Context, op string, client *domain.Client) (*domain.Client, error) {
	updated, err := s.clientRepo.Update(ctx, client)
	if err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			s.logger.Warn("%s: client id=%d not found", op, client.ID)
			return nil, ErrClientNotFound
		}
		s.logger.Error("%s: repository error for client id=%d: %v", op, client.ID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return updated, nil
}

func (s *Service) invalid(op string, err error) error {
	s.logger.Warn("%s: validation failed: %v", op, err)
	return err
}
