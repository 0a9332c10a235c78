package manage_blackouts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GymBooking/internal/service/blackouts"
	"github.com/m04kA/SMC-GymBooking/internal/service/blackouts/models"
	"github.com/m04kA/SMC-GymBooking/pkg/logger"
)

type fakeBlackoutService struct {
	err          error
	upcomingOnly *bool
}

func (f *fakeBlackoutService) Create(_ context.Context, req *models.CreateBlackoutRequest) (*models.BlackoutResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.BlackoutResponse{ID: 5, DayLevel: req.SlotID == nil}, nil
}

func (f *fakeBlackoutService) List(_ context.Context, upcomingOnly bool) (*models.BlackoutListResponse, error) {
	f.upcomingOnly = &upcomingOnly
	return &models.BlackoutListResponse{Blackouts: []models.BlackoutResponse{}}, f.err
}

func (f *fakeBlackoutService) Delete(context.Context, int64) error {
	return f.err
}

func newRouter(svc *fakeBlackoutService) *mux.Router {
	h := NewHandler(svc, logger.NewNop())
	r := mux.NewRouter()
	r.HandleFunc("/blackouts", h.List).Methods(http.MethodGet)
	r.HandleFunc("/blackouts", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/blackouts/{blackoutId:[0-9]+}", h.Delete).Methods(http.MethodDelete)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestList(t *testing.T) {
	tests := []struct {
		name         string
		path         string
		upcomingOnly bool
	}{
		{"all entries by default", "/blackouts", false},
		{"upcoming only on request", "/blackouts?upcoming=true", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeBlackoutService{}

			rec := do(newRouter(svc), http.MethodGet, tt.path, "")

			assert.Equal(t, http.StatusOK, rec.Code)
			require.NotNil(t, svc.upcomingOnly)
			assert.Equal(t, tt.upcomingOnly, *svc.upcomingOnly)
		})
	}
}

func TestCreate(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		err      error
		wantCode int
	}{
		{"day level", `{"date":"2024-03-11","reason":"Holiday"}`, nil, http.StatusCreated},
		{"bad date", `{"date":"11/03/2024"}`, nil, http.StatusBadRequest},
		{"unknown slot", `{"date":"2024-03-11","slotId":42}`, blackouts.ErrSlotNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(newRouter(&fakeBlackoutService{err: tt.err}), http.MethodPost, "/blackouts", tt.body)
			assert.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
		})
	}
}

func TestDelete(t *testing.T) {
	rec := do(newRouter(&fakeBlackoutService{}), http.MethodDelete, "/blackouts/3", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(newRouter(&fakeBlackoutService{err: blackouts.ErrBlackoutNotFound}), http.MethodDelete, "/blackouts/3", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
