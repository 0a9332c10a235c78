package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-GymBooking/internal/service/auth/models"
)

const issuer = "gym-booking"

// Config параметры сессий
type Config struct {
	Password     string        // открытый пароль администратора, хешируется при старте
	PasswordHash string        // готовый bcrypt-хеш, имеет приоритет над Password
	Secret       string        // ключ подписи HS256
	TTL          time.Duration // время жизни токена
}

// Service выдаёт и проверяет токены сессий администратора и участника
type Service struct {
	passwordHash []byte
	secret       []byte
	ttl          time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает сервис; открытый пароль сразу хешируется и в памяти не хранится
func NewService(cfg Config, logger Logger) (*Service, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("%w: empty signing secret", ErrInternal)
	}

	hash := []byte(cfg.PasswordHash)
	if len(hash) == 0 {
		if cfg.Password == "" {
			return nil, fmt.Errorf("%w: admin password is not configured", ErrInternal)
		}
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("%w: hash admin password: %v", ErrInternal, err)
		}
	} else if _, err := bcrypt.Cost(hash); err != nil {
		return nil, fmt.Errorf("%w: invalid admin password hash: %v", ErrInternal, err)
	}

	return &Service{
		passwordHash: hash,
		secret:       []byte(cfg.Secret),
		ttl:          cfg.TTL,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}, nil
}

// WithTimeProvider подменяет источник времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Login проверяет пароль администратора и выдаёт токен с ролью admin
func (s *Service) Login(password string) (*models.TokenResponse, error) {
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		s.logger.Warn("Login: admin login rejected")
		return nil, ErrInvalidCredentials
	}

	resp, err := s.issue(models.RoleAdmin, 0)
	if err != nil {
		s.logger.Error("Login: failed to sign token: %v", err)
		return nil, err
	}

	s.logger.Info("Login: admin session issued, expires at %s", resp.ExpiresAt.Format(time.RFC3339))
	return resp, nil
}

// IssueMemberToken выдаёт токен участника после успешной проверки по телефону
func (s *Service) IssueMemberToken(clientID int64) (*models.TokenResponse, error) {
	resp, err := s.issue(models.RoleMember, clientID)
	if err != nil {
		s.logger.Error("IssueMemberToken: failed to sign token for client id=%d: %v", clientID, err)
		return nil, err
	}
	return resp, nil
}

// ParseToken проверяет подпись, срок действия и алгоритм токена
func (s *Service) ParseToken(tokenString string) (*models.Claims, error) {
	claims := &models.Claims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	// время проверяется вручную, чтобы тесты могли подменить часы
	parser.SkipClaimsValidation = true

	token, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.ExpiresAt == nil || !s.timeProvider.Now().Before(claims.ExpiresAt.Time) {
		return nil, ErrInvalidToken
	}
	if !claims.VerifyIssuer(issuer, true) {
		return nil, ErrInvalidToken
	}

	switch claims.Role {
	case models.RoleAdmin:
	case models.RoleMember:
		if claims.ClientID <= 0 || claims.Subject != strconv.FormatInt(claims.ClientID, 10) {
			return nil, ErrInvalidToken
		}
	default:
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// Authorize проверяет токен и требуемую роль
func (s *Service) Authorize(tokenString string, role models.Role) (*models.Claims, error) {
	claims, err := s.ParseToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Role != role {
		return nil, ErrForbidden
	}
	return claims, nil
}

func (s *Service) issue(role models.Role, clientID int64) (*models.TokenResponse, error) {
	now := s.timeProvider.Now()
	expiresAt := now.Add(s.ttl)

	claims := models.Claims{
		Role:     role,
		ClientID: clientID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	if role == models.RoleMember {
		claims.Subject = strconv.FormatInt(clientID, 10)
	} else {
		claims.Subject = string(role)
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("%w: sign token: %v", ErrInternal, err)
	}

	return &models.TokenResponse{
		Token:     signed,
		Role:      role,
		ExpiresAt: expiresAt,
	}, nil
}

// IsAuthError true для ошибок, которые означают отказ в доступе, а не сбой
func IsAuthError(err error) bool {
	return errors.Is(err, ErrInvalidToken) || errors.Is(err, ErrForbidden) || errors.Is(err, ErrInvalidCredentials)
}
