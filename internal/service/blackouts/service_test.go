package blackouts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GymBooking/internal/domain"
	blackoutRepo "github.com/m04kA/SMC-GymBooking/internal/infra/storage/blackout"
	"github.com/m04kA/SMC-GymBooking/internal/service/blackouts/models"
	"github.com/m04kA/SMC-GymBooking/pkg/logger"
	"github.com/m04kA/SMC-GymBooking/pkg/ptr"
)

type fakeRepo struct {
	items   []*domain.Blackout
	slots   map[int64]bool
	listErr error
}

func (r *fakeRepo) Create(_ context.Context, b *domain.Blackout) (*domain.Blackout, error) {
	if b.SlotID != nil && !r.slots[*b.SlotID] {
		return nil, blackoutRepo.ErrSlotNotFound
	}
	b.ID = int64(len(r.items) + 1)
	r.items = append(r.items, b)
	return b, nil
}

func (r *fakeRepo) List(_ context.Context) ([]*domain.Blackout, error) {
	return r.items, r.listErr
}

func (r *fakeRepo) ListFrom(_ context.Context, from time.Time) ([]*domain.Blackout, error) {
	out := make([]*domain.Blackout, 0)
	for _, b := range r.items {
		if !b.BlockedDate.Before(from) {
			out = append(out, b)
		}
	}
	return out, r.listErr
}

func (r *fakeRepo) ListByDate(_ context.Context, date time.Time) ([]*domain.Blackout, error) {
	out := make([]*domain.Blackout, 0)
	for _, b := range r.items {
		if b.BlockedDate.Equal(domain.DateOnly(date)) {
			out = append(out, b)
		}
	}
	return out, r.listErr
}

func (r *fakeRepo) Delete(_ context.Context, id int64) error {
	for i, b := range r.items {
		if b.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return blackoutRepo.ErrBlackoutNotFound
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var day = time.Date(2024, 7, 4, 0, 0, 0, 0, time.UTC)

func TestCreateDayAndSlotBlackouts(t *testing.T) {
	repo := &fakeRepo{slots: map[int64]bool{1: true, 2: true}}
	svc := NewService(repo, logger.NewNop())
	ctx := context.Background()

	holiday, err := svc.Create(ctx, &models.CreateBlackoutRequest{Date: day, Reason: ptr.Ptr("  Holiday ")})
	require.NoError(t, err)
	assert.True(t, holiday.DayLevel)
	assert.Equal(t, "Holiday", *holiday.Reason)
	assert.Equal(t, "2024-07-04", holiday.Date)

	next := day.AddDate(0, 0, 1)
	slotLevel, err := svc.Create(ctx, &models.CreateBlackoutRequest{Date: next, SlotID: ptr.Ptr(int64(2)), Reason: ptr.Ptr("")})
	require.NoError(t, err)
	assert.False(t, slotLevel.DayLevel)
	assert.Nil(t, slotLevel.Reason)

	blocked, err := svc.IsBlocked(ctx, day, 1)
	require.NoError(t, err)
	assert.True(t, blocked)

	blocked, err = svc.IsBlocked(ctx, next, 1)
	require.NoError(t, err)
	assert.False(t, blocked)

	blocked, err = svc.IsBlocked(ctx, next, 2)
	require.NoError(t, err)
	assert.True(t, blocked)
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(&fakeRepo{}, logger.NewNop())

	_, err := svc.Create(context.Background(), &models.CreateBlackoutRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), &models.CreateBlackoutRequest{Date: day, SlotID: ptr.Ptr(int64(7))})
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestListUpcomingOnly(t *testing.T) {
	repo := &fakeRepo{items: []*domain.Blackout{
		{ID: 1, BlockedDate: day.AddDate(0, 0, -1)},
		{ID: 2, BlockedDate: day},
	}}
	svc := NewService(repo, logger.NewNop()).WithTimeProvider(fixedClock{now: day.Add(15 * time.Hour)})

	upcoming, err := svc.List(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, upcoming.Blackouts, 1)
	assert.Equal(t, int64(2), upcoming.Blackouts[0].ID)

	all, err := svc.List(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, all.Blackouts, 2)
}

func TestListRepositoryFailure(t *testing.T) {
	svc := NewService(&fakeRepo{listErr: errors.New("connection refused")}, logger.NewNop())

	_, err := svc.List(context.Background(), false)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestDelete(t *testing.T) {
	repo := &fakeRepo{items: []*domain.Blackout{{ID: 1, BlockedDate: day}}}
	svc := NewService(repo, logger.NewNop())

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.ErrorIs(t, svc.Delete(context.Background(), 1), ErrBlackoutNotFound)
}
