package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-GymBooking/internal/service/auth"
	"github.com/m04kA/SMC-GymBooking/internal/service/auth/models"
	"github.com/m04kA/SMC-GymBooking/pkg/logger"
)

type fakeAuthorizer struct {
	tokens map[string]*models.Claims
}

func (f *fakeAuthorizer) Authorize(token string, role models.Role) (*models.Claims, error) {
	claims, ok := f.tokens[token]
	if !ok {
		return nil, auth.ErrInvalidToken
	}
	if claims.Role != role {
		return nil, auth.ErrForbidden
	}
	return claims, nil
}

func newAuth() *Auth {
	return NewAuth(&fakeAuthorizer{tokens: map[string]*models.Claims{
		"admin-token":  {Role: models.RoleAdmin},
		"member-token": {Role: models.RoleMember, ClientID: 12},
	}}, logger.NewNop())
}

func serve(h http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAdmin(t *testing.T) {
	var called bool
	h := newAuth().Admin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		role, ok := GetRole(r.Context())
		assert.True(t, ok)
		assert.Equal(t, models.RoleAdmin, role)
		_, hasClient := GetClientID(r.Context())
		assert.False(t, hasClient)
	}))

	tests := []struct {
		name   string
		header string
		status int
		called bool
	}{
		{"no header", "", http.StatusUnauthorized, false},
		{"wrong scheme", "Basic admin-token", http.StatusUnauthorized, false},
		{"empty token", "Bearer ", http.StatusUnauthorized, false},
		{"unknown token", "Bearer nope", http.StatusUnauthorized, false},
		{"member token", "Bearer member-token", http.StatusForbidden, false},
		{"admin token", "Bearer admin-token", http.StatusOK, true},
		{"case-insensitive scheme", "bearer admin-token", http.StatusOK, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called = false
			rec := serve(h, tt.header)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.called, called)
		})
	}
}

func TestMemberPutsClientIDInContext(t *testing.T) {
	var clientID int64
	h := newAuth().Member(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID, _ = GetClientID(r.Context())
	}))

	rec := serve(h, "Bearer member-token")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(12), clientID)

	rec = serve(h, "Bearer admin-token")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
