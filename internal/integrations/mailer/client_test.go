package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GymBooking/internal/domain"
	"github.com/m04kA/SMC-GymBooking/pkg/logger"
)

func testNotification() *domain.BookingNotification {
	return &domain.BookingNotification{
		BookingID:   7,
		ClientName:  "Asha <b>",
		ClientEmail: "asha@example.com",
		Date:        time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC),
		SlotName:    "Morning",
		SlotTime:    "7:00 AM - 8:30 AM",
		CancelToken: "0b6f1e4e-8f8c-4c55-9a39-5d0b1b8f6a11",
		SiteURL:     "https://gym.example.com",
	}
}

func TestClient_SendBookingConfirmation(t *testing.T) {
	var got SendEmailRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer key-123", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"id":"msg_1"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "key-123", "Gym <noreply@example.com>", "FIT2FLY", time.Second, logger.NewNop())
	require.NoError(t, c.SendBookingConfirmation(context.Background(), testNotification()))

	assert.Equal(t, []string{"asha@example.com"}, got.To)
	assert.Equal(t, "Booking Confirmed - Morning on 2024-03-11", got.Subject)
	assert.Contains(t, got.HTML, "https://gym.example.com/cancel/0b6f1e4e-8f8c-4c55-9a39-5d0b1b8f6a11")
	assert.Contains(t, got.HTML, "Asha &lt;b&gt;")
	assert.Contains(t, got.HTML, "Monday, 11 March 2024")
}

func TestClient_SendBookingConfirmation_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"rejected", http.StatusUnprocessableEntity, `{"statusCode":422,"message":"invalid to"}`, ErrRejected},
		{"server error", http.StatusBadGateway, `oops`, ErrInvalidResponse},
		{"bad body", http.StatusOK, `not json`, ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient(srv.URL, "k", "from@example.com", "Gym", time.Second, logger.NewNop())
			err := c.SendBookingConfirmation(context.Background(), testNotification())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestClient_NoRecipient(t *testing.T) {
	c := NewClient("http://127.0.0.1:0", "k", "f", "Gym", time.Second, logger.NewNop())
	n := testNotification()
	n.ClientEmail = ""
	assert.ErrorIs(t, c.SendBookingConfirmation(context.Background(), n), ErrNoRecipient)
}
