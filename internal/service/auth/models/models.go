package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Role роль владельца сессии
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Claims полезная нагрузка токена сессии
// Для участника ClientID совпадает с subject
type Claims struct {
	Role     Role  `json:"role"`
	ClientID int64 `json:"cid,omitempty"`
	jwt.RegisteredClaims
}

// TokenResponse выданный токен сессии
type TokenResponse struct {
	Token     string    `json:"token"`
	Role      Role      `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
}
