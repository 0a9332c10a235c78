package clients

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GymBooking/internal/domain"
	clientRepo "github.com/m04kA/SMC-GymBooking/internal/infra/storage/client"
	"github.com/m04kA/SMC-GymBooking/internal/service/clients/models"
	"github.com/m04kA/SMC-GymBooking/pkg/logger"
	"github.com/m04kA/SMC-GymBooking/pkg/ptr"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeClientRepo struct {
	nextID  int64
	clients map[int64]*domain.Client
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: make(map[int64]*domain.Client)}
}

func (r *fakeClientRepo) Create(_ context.Context, c *domain.Client) (*domain.Client, error) {
	r.nextID++
	cp := *c
	cp.ID = r.nextID
	r.clients[cp.ID] = &cp
	return &cp, nil
}

func (r *fakeClientRepo) GetByID(_ context.Context, id int64) (*domain.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, clientRepo.ErrClientNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeClientRepo) FindByPhone(_ context.Context, phone string) (*domain.Client, error) {
	want := domain.NormalizePhone(phone)
	for _, c := range r.clients {
		if domain.NormalizePhone(c.Phone) == want {
			cp := *c
			return &cp, nil
		}
	}
	return nil, clientRepo.ErrClientNotFound
}

func (r *fakeClientRepo) List(_ context.Context) ([]*domain.Client, error) {
	out := make([]*domain.Client, 0, len(r.clients))
	for _, c := range r.clients {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeClientRepo) Update(_ context.Context, c *domain.Client) (*domain.Client, error) {
	if _, ok := r.clients[c.ID]; !ok {
		return nil, clientRepo.ErrClientNotFound
	}
	cp := *c
	r.clients[c.ID] = &cp
	return &cp, nil
}

func (r *fakeClientRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.clients[id]; !ok {
		return clientRepo.ErrClientNotFound
	}
	delete(r.clients, id)
	return nil
}

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (r *fakeBookingRepo) ListByPhone(_ context.Context, phone string) ([]*domain.Booking, error) {
	out := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if domain.NormalizePhone(b.ClientPhone) == domain.NormalizePhone(phone) {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeSlotRepo struct{}

func (fakeSlotRepo) List(_ context.Context, _ bool) ([]*domain.Slot, error) {
	return []*domain.Slot{
		{ID: 1, Name: "Early Morning", TimeStart: "5:30 AM", TimeEnd: "7:00 AM", MaxCapacity: 3, IsActive: true},
	}, nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func newTestService(now time.Time) (*Service, *fakeClientRepo, *fakeBookingRepo) {
	clients := newFakeClientRepo()
	bookings := &fakeBookingRepo{}
	svc := NewService(clients, bookings, fakeSlotRepo{}, logger.NewNop()).
		WithTimeProvider(fixedTime{now: now})
	return svc, clients, bookings
}

func TestService_Create(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 30, 0, 0, time.Local)

	t.Run("start date defaults to today", func(t *testing.T) {
		svc, _, _ := newTestService(now)

		resp, err := svc.Create(context.Background(), &models.CreateClientRequest{
			Name:     "  Asha  ",
			Phone:    "98765 43210",
			PlanType: "1_month",
		})
		require.NoError(t, err)
		assert.Equal(t, "Asha", resp.Name)
		assert.Equal(t, "2024-03-10", resp.StartDate)
		assert.Equal(t, "2024-04-09", resp.EndDate)
		assert.Equal(t, "1 Month", resp.PlanLabel)
		assert.Equal(t, 30, resp.DaysRemaining)
		assert.Equal(t, string(domain.MembershipActive), resp.Status)
	})

	t.Run("explicit start date", func(t *testing.T) {
		svc, _, _ := newTestService(now)

		resp, err := svc.Create(context.Background(), &models.CreateClientRequest{
			Name:      "Ravi",
			Phone:     "9000000001",
			PlanType:  "1_year",
			StartDate: ptr.Ptr(date(2024, 1, 1)),
		})
		require.NoError(t, err)
		assert.Equal(t, "2024-12-31", resp.EndDate)
	})

	t.Run("unknown plan is rejected", func(t *testing.T) {
		svc, clients, _ := newTestService(now)

		_, err := svc.Create(context.Background(), &models.CreateClientRequest{
			Name:     "Ravi",
			Phone:    "9000000001",
			PlanType: "2_years",
		})
		assert.ErrorIs(t, err, ErrUnknownPlan)
		assert.Empty(t, clients.clients)
	})

	tests := []struct {
		name string
		req  *models.CreateClientRequest
	}{
		{"empty name", &models.CreateClientRequest{Name: " ", Phone: "1", PlanType: "1_month"}},
		{"empty phone", &models.CreateClientRequest{Name: "A", Phone: " - ", PlanType: "1_month"}},
		{"bad email", &models.CreateClientRequest{Name: "A", Phone: "1", PlanType: "1_month", Email: ptr.Ptr("nope")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newTestService(now)
			_, err := svc.Create(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestService_Update(t *testing.T) {
	now := date(2024, 3, 10)
	svc, _, _ := newTestService(now)

	created, err := svc.Create(context.Background(), &models.CreateClientRequest{
		Name: "Asha", Phone: "9000000001", PlanType: "1_month", StartDate: ptr.Ptr(date(2024, 3, 1)),
	})
	require.NoError(t, err)

	t.Run("name only keeps the window", func(t *testing.T) {
		resp, err := svc.Update(context.Background(), created.ID, &models.UpdateClientRequest{Name: ptr.Ptr("Asha K")})
		require.NoError(t, err)
		assert.Equal(t, "Asha K", resp.Name)
		assert.Equal(t, "2024-03-31", resp.EndDate)
	})

	t.Run("plan change recomputes end date", func(t *testing.T) {
		resp, err := svc.Update(context.Background(), created.ID, &models.UpdateClientRequest{PlanType: ptr.Ptr("3_months")})
		require.NoError(t, err)
		assert.Equal(t, "2024-03-01", resp.StartDate)
		assert.Equal(t, "2024-05-30", resp.EndDate)
	})

	t.Run("start change recomputes end date", func(t *testing.T) {
		resp, err := svc.Update(context.Background(), created.ID, &models.UpdateClientRequest{StartDate: ptr.Ptr(date(2024, 4, 1))})
		require.NoError(t, err)
		assert.Equal(t, "2024-06-30", resp.EndDate)
	})

	t.Run("unknown client", func(t *testing.T) {
		_, err := svc.Update(context.Background(), 999, &models.UpdateClientRequest{Name: ptr.Ptr("X")})
		assert.ErrorIs(t, err, ErrClientNotFound)
	})
}

func TestService_Renew(t *testing.T) {
	now := date(2024, 6, 1)
	svc, clients, _ := newTestService(now)

	created, err := svc.Create(context.Background(), &models.CreateClientRequest{
		Name: "Asha", Phone: "9000000001", PlanType: "1_month", StartDate: ptr.Ptr(date(2024, 1, 1)),
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.MembershipExpired), created.Status)

	resp, err := svc.Renew(context.Background(), created.ID, &models.RenewRequest{PlanType: "2_months"})
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", resp.StartDate)
	assert.Equal(t, "2024-07-31", resp.EndDate)
	assert.Equal(t, string(domain.MembershipActive), resp.Status)
	assert.Equal(t, domain.Plan2Months, clients.clients[created.ID].PlanType)

	_, err = svc.Renew(context.Background(), created.ID, &models.RenewRequest{PlanType: "forever"})
	assert.ErrorIs(t, err, ErrUnknownPlan)
}

func TestService_VerifyByPhone(t *testing.T) {
	now := date(2024, 3, 10)
	svc, clients, _ := newTestService(now)

	clients.clients[1] = &domain.Client{
		ID: 1, Name: "Active", Phone: "98765-43210", PlanType: domain.Plan1Month,
		StartDate: date(2024, 3, 1), EndDate: date(2024, 3, 31),
	}
	clients.clients[2] = &domain.Client{
		ID: 2, Name: "Lapsed", Phone: "9000000002", PlanType: domain.Plan1Month,
		StartDate: date(2024, 2, 8), EndDate: date(2024, 3, 9),
	}

	t.Run("active member matched with formatting", func(t *testing.T) {
		resp, err := svc.VerifyByPhone(context.Background(), "(98765) 43210")
		require.NoError(t, err)
		assert.Equal(t, models.VerifyVerified, resp.Outcome)
		assert.Equal(t, int64(1), resp.Client.ID)
		assert.Equal(t, 21, resp.Client.DaysRemaining)
	})

	t.Run("expired yesterday is not reported as not found", func(t *testing.T) {
		resp, err := svc.VerifyByPhone(context.Background(), "9000000002")
		require.NoError(t, err)
		assert.Equal(t, models.VerifyExpired, resp.Outcome)
		assert.Equal(t, 1, resp.ExpiredDaysAgo)
		assert.Equal(t, "Lapsed", resp.Client.Name)
	})

	t.Run("unknown phone", func(t *testing.T) {
		_, err := svc.VerifyByPhone(context.Background(), "1111111111")
		assert.ErrorIs(t, err, ErrClientNotFound)
	})

	t.Run("empty phone", func(t *testing.T) {
		_, err := svc.VerifyByPhone(context.Background(), " ")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_VerifyByPhone_SiteTimezone(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+30*60)
	// 00:30 в зале, на сервере в UTC ещё 10 марта
	siteNow := time.Date(2024, 3, 10, 19, 0, 0, 0, time.UTC).In(ist)
	svc, clients, _ := newTestService(siteNow)

	clients.clients[1] = &domain.Client{
		ID: 1, Name: "Last Day", Phone: "9000000001", PlanType: domain.Plan1Month,
		StartDate: time.Date(2024, 2, 11, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC),
	}

	resp, err := svc.VerifyByPhone(context.Background(), "9000000001")
	require.NoError(t, err)
	assert.Equal(t, models.VerifyVerified, resp.Outcome)
	assert.Equal(t, 0, resp.Client.DaysRemaining)
}

func TestService_List(t *testing.T) {
	now := date(2024, 3, 10)
	svc, clients, _ := newTestService(now)

	clients.clients[1] = &domain.Client{ID: 1, EndDate: date(2024, 5, 1)}
	clients.clients[2] = &domain.Client{ID: 2, EndDate: date(2024, 3, 17)}
	clients.clients[3] = &domain.Client{ID: 3, EndDate: date(2024, 3, 9)}

	resp, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, resp.Clients, 3)
	assert.Equal(t, 1, resp.Active)
	assert.Equal(t, 1, resp.Expiring)
	assert.Equal(t, 1, resp.Expired)
}

func TestService_BookingHistory(t *testing.T) {
	now := date(2024, 3, 10)
	svc, clients, bookings := newTestService(now)

	clients.clients[1] = &domain.Client{ID: 1, Name: "Asha", Phone: "98765 43210", EndDate: date(2024, 4, 1)}
	bookings.bookings = []*domain.Booking{
		{ID: 1, BookingDate: date(2024, 3, 1), SlotID: 1, ClientPhone: "9876543210"},
		{ID: 2, BookingDate: date(2024, 3, 5), SlotID: 1, ClientPhone: "98765 43210"},
		{ID: 3, BookingDate: date(2024, 3, 12), SlotID: 1, ClientPhone: "98765-43210"},
		{ID: 4, BookingDate: date(2024, 3, 10), SlotID: 1, ClientPhone: "9876543210"},
		{ID: 5, BookingDate: date(2024, 3, 10), SlotID: 1, ClientPhone: "1111111111"},
	}

	resp, err := svc.BookingHistory(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, resp.Upcoming, 2)
	assert.Equal(t, int64(4), resp.Upcoming[0].ID)
	assert.Equal(t, int64(3), resp.Upcoming[1].ID)
	assert.Equal(t, "Early Morning", resp.Upcoming[0].SlotName)

	require.Len(t, resp.Past, 2)
	assert.Equal(t, int64(2), resp.Past[0].ID)
	assert.Equal(t, int64(1), resp.Past[1].ID)

	_, err = svc.BookingHistory(context.Background(), 42)
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestService_Delete(t *testing.T) {
	svc, clients, _ := newTestService(date(2024, 3, 10))
	clients.clients[1] = &domain.Client{ID: 1}

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.ErrorIs(t, svc.Delete(context.Background(), 1), ErrClientNotFound)
}
