package slots

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-GymBooking/internal/domain"
	slotRepo "github.com/m04kA/SMC-GymBooking/internal/infra/storage/slot"
	"github.com/m04kA/SMC-GymBooking/internal/service/slots/models"
	"github.com/m04kA/SMC-GymBooking/pkg/types"
)

// Service сервис каталога слотов
type Service struct {
	slotRepo        SlotRepository
	txManager       TransactionManager
	defaultCapacity int
	logger          Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(
	slotRepo SlotRepository,
	txManager TransactionManager,
	defaultCapacity int,
	logger Logger,
) *Service {
	if defaultCapacity <= 0 {
		defaultCapacity = domain.DefaultMaxCapacity
	}
	return &Service{
		slotRepo:        slotRepo,
		txManager:       txManager,
		defaultCapacity: defaultCapacity,
		logger:          logger,
	}
}

// ListActive возвращает активные слоты в порядке отображения
// Если каталог пуст, возвращается встроенный набор слотов по умолчанию (только для показа, без ID)
// Каталог, в котором все слоты выключены, даёт пустой список
func (s *Service) ListActive(ctx context.Context) (*models.SlotListResponse, error) {
	catalogue, err := s.slotRepo.List(ctx, false)
	if err != nil {
		s.logger.Error("ListActive: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListActive - repository error: %v", ErrInternal, err)
	}

	if len(catalogue) == 0 {
		s.logger.Warn("ListActive: slot catalogue is empty, returning defaults")
	}

	return models.FromDomainSlotList(domain.ActiveSlots(catalogue)), nil
}

// ListAll возвращает все слоты, включая выключенные (для админки)
func (s *Service) ListAll(ctx context.Context) (*models.SlotListResponse, error) {
	slots, err := s.slotRepo.List(ctx, false)
	if err != nil {
		s.logger.Error("ListAll: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAll - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSlotList(slots), nil
}

// Create создает слот в конце каталога
func (s *Service) Create(ctx context.Context, req *models.CreateSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("Create: creating slot name=%q, time=%s-%s", req.Name, req.TimeStart, req.TimeEnd)

	capacity := s.defaultCapacity
	if req.MaxCapacity != nil {
		capacity = *req.MaxCapacity
	}

	slot, err := buildSlot(req.Name, req.TimeStart, req.TimeEnd, capacity)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.slotRepo.Create(ctx, slot)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created slot id=%d, sortOrder=%d", created.ID, created.SortOrder)
	return models.FromDomainSlot(created), nil
}

// Update частично обновляет слот
// Итоговое время начала должно быть раньше времени окончания
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("Update: updating slot id=%d", id)

	update, err := toDomainUpdate(req)
	if err != nil {
		s.logger.Warn("Update: validation failed for slot id=%d: %v", id, err)
		return nil, err
	}
	if update.IsEmpty() {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	var result *domain.Slot
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := s.slotRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		start, end := current.TimeStart, current.TimeEnd
		if update.TimeStart != nil {
			start = *update.TimeStart
		}
		if update.TimeEnd != nil {
			end = *update.TimeEnd
		}
		if !start.IsBefore(end) {
			return fmt.Errorf("%w: timeStart must be before timeEnd", ErrInvalidInput)
		}

		result, err = s.slotRepo.Update(txCtx, id, update)
		return err
	})

	if err != nil {
		return nil, s.mapError("Update", id, err)
	}

	s.logger.Info("Update: successfully updated slot id=%d", id)
	return models.FromDomainSlot(result), nil
}

// SetActive включает или выключает слот
// Выключенный слот не показывается клиентам, но его бронирования сохраняются
func (s *Service) SetActive(ctx context.Context, id int64, active bool) (*models.SlotResponse, error) {
	s.logger.Info("SetActive: slot id=%d, active=%t", id, active)

	slot, err := s.slotRepo.Update(ctx, id, domain.SlotUpdate{IsActive: &active})
	if err != nil {
		return nil, s.mapError("SetActive", id, err)
	}

	return models.FromDomainSlot(slot), nil
}

// Delete удаляет слот
// Слот с бронированиями удалить нельзя: ErrSlotInUse
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting slot id=%d", id)

	if err := s.slotRepo.Delete(ctx, id); err != nil {
		return s.mapError("Delete", id, err)
	}

	s.logger.Info("Delete: successfully deleted slot id=%d", id)
	return nil
}

// Reorder выставляет порядок отображения 1..n в порядке переданных ID
func (s *Service) Reorder(ctx context.Context, ids []int64) error {
	s.logger.Info("Reorder: reordering %d slots", len(ids))

	if len(ids) == 0 {
		return fmt.Errorf("%w: slot ids are required", ErrInvalidInput)
	}

	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return fmt.Errorf("%w: slot id must be positive", ErrInvalidInput)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: duplicate slot id %d", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		for i, id := range ids {
			if err := s.slotRepo.UpdateSortOrder(txCtx, id, i+1); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return s.mapError("Reorder", 0, err)
	}

	s.logger.Info("Reorder: successfully reordered %d slots", len(ids))
	return nil
}

func (s *Service) mapError(op string, id int64, err error) error {
	switch {
	case errors.Is(err, ErrInvalidInput):
		s.logger.Warn("%s: validation failed for slot id=%d: %v", op, id, err)
		return err
	case errors.Is(err, slotRepo.ErrSlotNotFound):
		s.logger.Warn("%s: slot id=%d not found", op, id)
		return ErrSlotNotFound
	case errors.Is(err, slotRepo.ErrSlotInUse):
		s.logger.Warn("%s: slot id=%d is referenced by bookings", op, id)
		return ErrSlotInUse
	default:
		s.logger.Error("%s: repository error for slot id=%d: %v", op, id, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}

func buildSlot(name, timeStart, timeEnd string, capacity int) (*domain.Slot, error) {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return nil, err
	}

	start, err := parseTime("timeStart", timeStart)
	if err != nil {
		return nil, err
	}
	end, err := parseTime("timeEnd", timeEnd)
	if err != nil {
		return nil, err
	}
	if !start.IsBefore(end) {
		return nil, fmt.Errorf("%w: timeStart must be before timeEnd", ErrInvalidInput)
	}

	if err := validateCapacity(capacity); err != nil {
		return nil, err
	}

	return &domain.Slot{
		Name:        name,
		TimeStart:   start,
		TimeEnd:     end,
		MaxCapacity: capacity,
		IsActive:    true,
	}, nil
}

func toDomainUpdate(req *models.UpdateSlotRequest) (domain.SlotUpdate, error) {
	update := domain.SlotUpdate{
		MaxCapacity: req.MaxCapacity,
		IsActive:    req.IsActive,
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if err := validateName(name); err != nil {
			return update, err
		}
		update.Name = &name
	}
	if req.TimeStart != nil {
		start, err := parseTime("timeStart", *req.TimeStart)
		if err != nil {
			return update, err
		}
		update.TimeStart = &start
	}
	if req.TimeEnd != nil {
		end, err := parseTime("timeEnd", *req.TimeEnd)
		if err != nil {
			return update, err
		}
		update.TimeEnd = &end
	}
	if req.MaxCapacity != nil {
		if err := validateCapacity(*req.MaxCapacity); err != nil {
			return update, err
		}
	}

	return update, nil
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxSlotNameLength {
		return fmt.Errorf("%w: name is longer than %d characters", ErrInvalidInput, domain.MaxSlotNameLength)
	}
	return nil
}

func validateCapacity(capacity int) error {
	if capacity < domain.MinSlotCapacity || capacity > domain.MaxSlotCapacity {
		return fmt.Errorf("%w: maxCapacity must be between %d and %d",
			ErrInvalidInput, domain.MinSlotCapacity, domain.MaxSlotCapacity)
	}
	return nil
}

func parseTime(field, value string) (types.TimeString, error) {
	t, err := types.NewTimeStringFromString(value)
	if err != nil {
		return "", fmt.Errorf("%w: invalid %s: %v", ErrInvalidInput, field, err)
	}
	return t, nil
}
