package slots

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GymBooking/internal/domain"
	slotRepo "github.com/m04kA/SMC-GymBooking/internal/infra/storage/slot"
	"github.com/m04kA/SMC-GymBooking/internal/service/slots/models"
	"github.com/m04kA/SMC-GymBooking/pkg/logger"
	"github.com/m04kA/SMC-GymBooking/pkg/ptr"
)

type fakeSlotRepo struct {
	mu     sync.Mutex
	slots  map[int64]*domain.Slot
	nextID int64
	inUse  map[int64]bool
}

func newFakeSlotRepo(slots ...*domain.Slot) *fakeSlotRepo {
	r := &fakeSlotRepo{slots: map[int64]*domain.Slot{}, inUse: map[int64]bool{}}
	for _, s := range slots {
		r.nextID++
		s.ID = r.nextID
		s.SortOrder = int(r.nextID)
		r.slots[s.ID] = s
	}
	return r
}

func (r *fakeSlotRepo) Create(_ context.Context, slot *domain.Slot) (*domain.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	slot.ID = r.nextID
	max := 0
	for _, s := range r.slots {
		if s.SortOrder > max {
			max = s.SortOrder
		}
	}
	slot.SortOrder = max + 1
	r.slots[slot.ID] = slot
	return slot, nil
}

func (r *fakeSlotRepo) GetByID(_ context.Context, id int64) (*domain.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSlotRepo) List(_ context.Context, activeOnly bool) ([]*domain.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Slot, 0, len(r.slots))
	for _, s := range r.slots {
		if activeOnly && !s.IsActive {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (r *fakeSlotRepo) Update(_ context.Context, id int64, u domain.SlotUpdate) (*domain.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	if u.Name != nil {
		s.Name = *u.Name
	}
	if u.TimeStart != nil {
		s.TimeStart = *u.TimeStart
	}
	if u.TimeEnd != nil {
		s.TimeEnd = *u.TimeEnd
	}
	if u.MaxCapacity != nil {
		s.MaxCapacity = *u.MaxCapacity
	}
	if u.IsActive != nil {
		s.IsActive = *u.IsActive
	}
	return s, nil
}

func (r *fakeSlotRepo) UpdateSortOrder(_ context.Context, id int64, order int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[id]
	if !ok {
		return slotRepo.ErrSlotNotFound
	}
	s.SortOrder = order
	return nil
}

func (r *fakeSlotRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.inUse[id] {
		return slotRepo.ErrSlotInUse
	}
	if _, ok := r.slots[id]; !ok {
		return slotRepo.ErrSlotNotFound
	}
	delete(r.slots, id)
	return nil
}

type fakeTx struct{}

func (fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newService(repo *fakeSlotRepo) *Service {
	return NewService(repo, fakeTx{}, 3, logger.NewNop())
}

func TestListActiveFallsBackToDefaults(t *testing.T) {
	svc := newService(newFakeSlotRepo())

	resp, err := svc.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Slots, 4)
	assert.Equal(t, "Early Morning", resp.Slots[0].Name)
	assert.Equal(t, "5:30 AM - 7:00 AM", resp.Slots[0].Time)
	assert.Equal(t, 3, resp.Slots[3].MaxCapacity)
}

func TestListActiveSkipsInactive(t *testing.T) {
	repo := newFakeSlotRepo(
		&domain.Slot{Name: "A", TimeStart: "6:00 AM", TimeEnd: "7:00 AM", MaxCapacity: 3, IsActive: true},
		&domain.Slot{Name: "B", TimeStart: "8:00 AM", TimeEnd: "9:00 AM", MaxCapacity: 3, IsActive: false},
	)
	svc := newService(repo)

	active, err := svc.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, active.Slots, 1)
	assert.Equal(t, "A", active.Slots[0].Name)

	all, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all.Slots, 2)
}

func TestListActiveAllInactiveReturnsEmpty(t *testing.T) {
	repo := newFakeSlotRepo(
		&domain.Slot{Name: "A", TimeStart: "6:00 AM", TimeEnd: "7:00 AM", MaxCapacity: 3, IsActive: false},
		&domain.Slot{Name: "B", TimeStart: "8:00 AM", TimeEnd: "9:00 AM", MaxCapacity: 3, IsActive: false},
	)
	svc := newService(repo)

	resp, err := svc.ListActive(context.Background())
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestCreateAppendsWithDefaultCapacity(t *testing.T) {
	repo := newFakeSlotRepo(&domain.Slot{Name: "A", TimeStart: "6:00 AM", TimeEnd: "7:00 AM", MaxCapacity: 3, IsActive: true})
	svc := newService(repo)

	resp, err := svc.Create(context.Background(), &models.CreateSlotRequest{
		Name:      "  Noon  ",
		TimeStart: "12:00 pm",
		TimeEnd:   "1:00 PM",
	})
	require.NoError(t, err)
	assert.Equal(t, "Noon", resp.Name)
	assert.Equal(t, 3, resp.MaxCapacity)
	assert.Equal(t, 2, resp.SortOrder)
	assert.True(t, resp.IsActive)
}

func TestCreateValidation(t *testing.T) {
	svc := newService(newFakeSlotRepo())

	tests := []struct {
		name string
		req  models.CreateSlotRequest
	}{
		{"empty name", models.CreateSlotRequest{Name: " ", TimeStart: "6:00 AM", TimeEnd: "7:00 AM"}},
		{"bad time", models.CreateSlotRequest{Name: "A", TimeStart: "25:00", TimeEnd: "7:00 AM"}},
		{"end before start", models.CreateSlotRequest{Name: "A", TimeStart: "8:00 AM", TimeEnd: "7:00 AM"}},
		{"zero capacity", models.CreateSlotRequest{Name: "A", TimeStart: "6:00 AM", TimeEnd: "7:00 AM", MaxCapacity: ptr.Ptr(0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUpdatePartial(t *testing.T) {
	repo := newFakeSlotRepo(&domain.Slot{Name: "A", TimeStart: "6:00 AM", TimeEnd: "7:00 AM", MaxCapacity: 3, IsActive: true})
	svc := newService(repo)

	resp, err := svc.Update(context.Background(), 1, &models.UpdateSlotRequest{MaxCapacity: ptr.Ptr(5)})
	require.NoError(t, err)
	assert.Equal(t, 5, resp.MaxCapacity)
	assert.Equal(t, "A", resp.Name)

	_, err = svc.Update(context.Background(), 1, &models.UpdateSlotRequest{TimeEnd: ptr.Ptr("5:00 AM")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Update(context.Background(), 1, &models.UpdateSlotRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Update(context.Background(), 99, &models.UpdateSlotRequest{Name: ptr.Ptr("B")})
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestSetActive(t *testing.T) {
	repo := newFakeSlotRepo(&domain.Slot{Name: "A", TimeStart: "6:00 AM", TimeEnd: "7:00 AM", MaxCapacity: 3, IsActive: true})
	svc := newService(repo)

	resp, err := svc.SetActive(context.Background(), 1, false)
	require.NoError(t, err)
	assert.False(t, resp.IsActive)
}

func TestDeleteSlotInUse(t *testing.T) {
	repo := newFakeSlotRepo(&domain.Slot{Name: "A", TimeStart: "6:00 AM", TimeEnd: "7:00 AM", MaxCapacity: 3, IsActive: true})
	repo.inUse[1] = true
	svc := newService(repo)

	assert.ErrorIs(t, svc.Delete(context.Background(), 1), ErrSlotInUse)
	assert.ErrorIs(t, svc.Delete(context.Background(), 2), ErrSlotNotFound)

	repo.inUse[1] = false
	assert.NoError(t, svc.Delete(context.Background(), 1))
}

func TestReorder(t *testing.T) {
	repo := newFakeSlotRepo(
		&domain.Slot{Name: "A", TimeStart: "6:00 AM", TimeEnd: "7:00 AM", MaxCapacity: 3, IsActive: true},
		&domain.Slot{Name: "B", TimeStart: "8:00 AM", TimeEnd: "9:00 AM", MaxCapacity: 3, IsActive: true},
		&domain.Slot{Name: "C", TimeStart: "5:00 PM", TimeEnd: "6:00 PM", MaxCapacity: 3, IsActive: true},
	)
	svc := newService(repo)

	require.NoError(t, svc.Reorder(context.Background(), []int64{3, 1, 2}))

	resp, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "A", "B"}, []string{resp.Slots[0].Name, resp.Slots[1].Name, resp.Slots[2].Name})

	assert.ErrorIs(t, svc.Reorder(context.Background(), nil), ErrInvalidInput)
	assert.ErrorIs(t, svc.Reorder(context.Background(), []int64{1, 1}), ErrInvalidInput)
	assert.ErrorIs(t, svc.Reorder(context.Background(), []int64{1, 42}), ErrSlotNotFound)
}
