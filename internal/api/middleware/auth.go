package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-GymBooking/internal/api/handlers"
	"github.com/m04kA/SMC-GymBooking/internal/service/auth"
	"github.com/m04kA/SMC-GymBooking/internal/service/auth/models"
)

type contextKey string

const (
	clientIDKey contextKey = "client_id"
	roleKey     contextKey = "role"
)

const (
	msgMissingToken = "missing or malformed authorization header"
	msgInvalidToken = "invalid or expired session"
	msgForbidden    = "access denied"
)

// TokenAuthorizer проверяет токен сессии и роль
type TokenAuthorizer interface {
	Authorize(token string, role models.Role) (*models.Claims, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Auth проверяет Bearer-токен в заголовке Authorization
type Auth struct {
	authorizer TokenAuthorizer
	logger     Logger
}

func NewAuth(authorizer TokenAuthorizer, logger Logger) *Auth {
	return &Auth{
		authorizer: authorizer,
		logger:     logger,
	}
}

// Admin пропускает только сессии администратора
func (a *Auth) Admin(next http.Handler) http.Handler {
	return a.require(models.RoleAdmin, next)
}

// Member пропускает только сессии участника, ID клиента кладётся в контекст
func (a *Auth) Member(next http.Handler) http.Handler {
	return a.require(models.RoleMember, next)
}

func (a *Auth) require(role models.Role, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			a.logger.Warn("%s %s - Missing bearer token", r.Method, r.URL.Path)
			handlers.RespondUnauthorized(w, msgMissingToken)
			return
		}

		claims, err := a.authorizer.Authorize(token, role)
		if err != nil {
			if errors.Is(err, auth.ErrForbidden) {
				a.logger.Warn("%s %s - Role %s required", r.Method, r.URL.Path, role)
				handlers.RespondForbidden(w, msgForbidden)
				return
			}
			a.logger.Warn("%s %s - Invalid session: %v", r.Method, r.URL.Path, err)
			handlers.RespondUnauthorized(w, msgInvalidToken)
			return
		}

		ctx := context.WithValue(r.Context(), roleKey, claims.Role)
		if claims.Role == models.RoleMember {
			ctx = context.WithValue(ctx, clientIDKey, claims.ClientID)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetClientID возвращает ID клиента из сессии участника
func GetClientID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(clientIDKey).(int64)
	return id, ok && id > 0
}

// GetRole возвращает роль текущей сессии
func GetRole(ctx context.Context) (models.Role, bool) {
	role, ok := ctx.Value(roleKey).(models.Role)
	return role, ok
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
