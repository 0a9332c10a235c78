package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"name" validate:"required"`
	Count int    `json:"count" validate:"gte=0"`
}

func TestDecodeAndValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"name":"x","count":1}`, false},
		{"empty", ``, true},
		{"missing required", `{"count":1}`, true},
		{"negative", `{"name":"x","count":-1}`, true},
		{"unknown field", `{"name":"x","other":true}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var dst sample
			err := DecodeAndValidate(req, &dst)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, "x", dst.Name)
		})
	}
}

func TestParseHelpers(t *testing.T) {
	id, err := ParseID("15")
	require.NoError(t, err)
	assert.Equal(t, int64(15), id)

	for _, raw := range []string{"", "abc", "0", "-3"} {
		_, err := ParseID(raw)
		assert.ErrorIs(t, err, ErrInvalidParam, raw)
	}

	date, err := ParseOptionalDate("")
	require.NoError(t, err)
	assert.Nil(t, date)

	date, err = ParseOptionalDate("2025-10-15")
	require.NoError(t, err)
	require.NotNil(t, date)
	assert.Equal(t, 15, date.Day())

	_, err = ParseOptionalDate("2025-13-40")
	assert.ErrorIs(t, err, ErrInvalidParam)

	slotID, err := ParseOptionalID("")
	require.NoError(t, err)
	assert.Nil(t, slotID)
}

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondConflict(rec, "slot is full")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"slot is full"}`, rec.Body.String())
}
