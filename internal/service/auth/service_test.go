package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-GymBooking/internal/service/auth/models"
	"github.com/m04kA/SMC-GymBooking/pkg/logger"
)

type fixedTime struct{ now time.Time }

func (f *fixedTime) Now() time.Time { return f.now }

func newTestService(t *testing.T, clock *fixedTime) *Service {
	t.Helper()
	svc, err := NewService(Config{
		Password: "s3cret",
		Secret:   "signing-key",
		TTL:      time.Hour,
	}, logger.NewNop())
	require.NoError(t, err)
	return svc.WithTimeProvider(clock)
}

func TestNewService(t *testing.T) {
	t.Run("missing secret", func(t *testing.T) {
		_, err := NewService(Config{Password: "x"}, logger.NewNop())
		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("missing password", func(t *testing.T) {
		_, err := NewService(Config{Secret: "k"}, logger.NewNop())
		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("malformed hash", func(t *testing.T) {
		_, err := NewService(Config{Secret: "k", PasswordHash: "plain"}, logger.NewNop())
		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("hash takes precedence", func(t *testing.T) {
		hash, err := bcrypt.GenerateFromPassword([]byte("from-hash"), bcrypt.MinCost)
		require.NoError(t, err)

		svc, err := NewService(Config{Secret: "k", Password: "ignored", PasswordHash: string(hash), TTL: time.Hour}, logger.NewNop())
		require.NoError(t, err)

		_, err = svc.Login("from-hash")
		assert.NoError(t, err)
		_, err = svc.Login("ignored")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestService_Login(t *testing.T) {
	clock := &fixedTime{now: time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)}
	svc := newTestService(t, clock)

	_, err := svc.Login("wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	resp, err := svc.Login("s3cret")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, resp.Role)
	assert.Equal(t, clock.now.Add(time.Hour), resp.ExpiresAt)

	claims, err := svc.Authorize(resp.Token, models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, claims.Role)

	_, err = svc.Authorize(resp.Token, models.RoleMember)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestService_MemberToken(t *testing.T) {
	clock := &fixedTime{now: time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)}
	svc := newTestService(t, clock)

	resp, err := svc.IssueMemberToken(42)
	require.NoError(t, err)

	claims, err := svc.Authorize(resp.Token, models.RoleMember)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.ClientID)
	assert.Equal(t, "42", claims.Subject)

	_, err = svc.Authorize(resp.Token, models.RoleAdmin)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestService_ParseToken_Rejects(t *testing.T) {
	clock := &fixedTime{now: time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)}
	svc := newTestService(t, clock)

	valid, err := svc.Login("s3cret")
	require.NoError(t, err)

	t.Run("expired", func(t *testing.T) {
		clock.now = clock.now.Add(2 * time.Hour)
		defer func() { clock.now = clock.now.Add(-2 * time.Hour) }()

		_, err := svc.ParseToken(valid.Token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ParseToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("other signing key", func(t *testing.T) {
		other, err := NewService(Config{Password: "s3cret", Secret: "another-key", TTL: time.Hour}, logger.NewNop())
		require.NoError(t, err)
		foreign, err := other.WithTimeProvider(clock).Login("s3cret")
		require.NoError(t, err)

		_, err = svc.ParseToken(foreign.Token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unsigned algorithm", func(t *testing.T) {
		claims := models.Claims{
			Role: models.RoleAdmin,
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    issuer,
				ExpiresAt: jwt.NewNumericDate(clock.now.Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.ParseToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("member without subject", func(t *testing.T) {
		claims := models.Claims{
			Role:     models.RoleMember,
			ClientID: 7,
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    issuer,
				ExpiresAt: jwt.NewNumericDate(clock.now.Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("signing-key"))
		require.NoError(t, err)

		_, err = svc.ParseToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
