package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-GymBooking/internal/domain"
)

// ErrInvalidConfig возвращается, когда конфигурация не прошла валидацию
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Database   DatabaseConfig   `toml:"database"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Admin      AdminConfig      `toml:"admin"`
	Booking    BookingConfig    `toml:"booking"`
	Mailer     MailerConfig     `toml:"mailer"`
	Site       SiteConfig       `toml:"site"`
	Migrations MigrationsConfig `toml:"migrations"`
}

// ServerConfig параметры HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig параметры подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig параметры логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig параметры Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// AdminConfig доступ тренера к панели управления
// Пароль задаётся открытым текстом (ADMIN_PASSWORD) или bcrypt-хешем (ADMIN_PASSWORD_HASH)
type AdminConfig struct {
	Password      string `toml:"password"`
	PasswordHash  string `toml:"password_hash"`
	SessionSecret string `toml:"session_secret"`
	SessionTTL    int    `toml:"session_ttl"` // минуты
}

// BookingConfig правила бронирования
type BookingConfig struct {
	WindowDays        int  `toml:"window_days"`
	DefaultCapacity   int  `toml:"default_capacity"`
	RequireMembership bool `toml:"require_membership"`
}

// MailerConfig параметры отправки писем через Resend
type MailerConfig struct {
	Enabled   bool   `toml:"enabled"`
	URL       string `toml:"url"`
	APIKey    string `toml:"api_key"`
	From      string `toml:"from"`
	Timeout   int    `toml:"timeout"` // секунды
	QueueSize int    `toml:"queue_size"`
	Workers   int    `toml:"workers"`
}

// SiteConfig публичный адрес сайта (для ссылок в письмах)
type SiteConfig struct {
	URL      string `toml:"url"`
	Name     string `toml:"name"`
	Timezone string `toml:"timezone"` // IANA, например "Asia/Kolkata"; пусто - локальная зона сервера
}

// MigrationsConfig применение миграций при старте
type MigrationsConfig struct {
	Enabled bool `toml:"enabled"`
}

// Load читает конфигурацию из TOML-файла
// Перед этим подгружается .env (если есть), переменные окружения имеют приоритет над файлом
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default возвращает конфигурацию со значениями по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "gym_booking",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "gym_booking",
		},
		Admin: AdminConfig{
			SessionTTL: 12 * 60,
		},
		Booking: BookingConfig{
			WindowDays:      domain.DefaultBookingWindowDays,
			DefaultCapacity: domain.DefaultMaxCapacity,
		},
		Mailer: MailerConfig{
			URL:       "https://api.resend.com",
			Timeout:   10,
			QueueSize: 100,
			Workers:   2,
		},
		Site: SiteConfig{
			URL:  "http://localhost:8080",
			Name: "Gym",
		},
		Migrations: MigrationsConfig{
			Enabled: true,
		},
	}
}

// applyEnv переопределяет секреты и адреса из окружения
func (c *Config) applyEnv() {
	setString(&c.Admin.Password, "ADMIN_PASSWORD")
	setString(&c.Admin.PasswordHash, "ADMIN_PASSWORD_HASH")
	setString(&c.Admin.SessionSecret, "SESSION_SECRET")
	setString(&c.Database.Host, "DB_HOST")
	setInt(&c.Database.Port, "DB_PORT")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.DBName, "DB_NAME")
	setString(&c.Mailer.APIKey, "MAILER_API_KEY")
	setString(&c.Site.URL, "SITE_URL")
	setInt(&c.Server.HTTPPort, "HTTP_PORT")
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return
	}
	if n, err := strconv.Atoi(v); err == nil {
		*dst = n
	}
}

// Validate проверяет обязательные поля и диапазоны
func (c *Config) Validate() error {
	switch {
	case c.Admin.SessionSecret == "":
		return fmt.Errorf("%w: admin.session_secret (SESSION_SECRET) is required", ErrInvalidConfig)
	case c.Admin.Password == "" && c.Admin.PasswordHash == "":
		return fmt.Errorf("%w: admin password (ADMIN_PASSWORD or ADMIN_PASSWORD_HASH) is required", ErrInvalidConfig)
	case c.Admin.SessionTTL <= 0:
		return fmt.Errorf("%w: admin.session_ttl must be positive", ErrInvalidConfig)
	case c.Server.HTTPPort <= 0:
		return fmt.Errorf("%w: server.http_port must be positive", ErrInvalidConfig)
	case c.Database.MaxOpenConns <= 0 || c.Database.MaxIdleConns < 0:
		return fmt.Errorf("%w: database pool size must be positive", ErrInvalidConfig)
	case c.Booking.WindowDays <= 0 || c.Booking.WindowDays > domain.MaxBookingWindowDays:
		return fmt.Errorf("%w: booking.window_days must be in 1..%d", ErrInvalidConfig, domain.MaxBookingWindowDays)
	case c.Booking.DefaultCapacity < domain.MinSlotCapacity || c.Booking.DefaultCapacity > domain.MaxSlotCapacity:
		return fmt.Errorf("%w: booking.default_capacity must be in %d..%d", ErrInvalidConfig, domain.MinSlotCapacity, domain.MaxSlotCapacity)
	case c.Mailer.Enabled && c.Mailer.APIKey == "":
		return fmt.Errorf("%w: mailer.api_key (MAILER_API_KEY) is required when mailer is enabled", ErrInvalidConfig)
	case c.Mailer.Enabled && (c.Mailer.QueueSize <= 0 || c.Mailer.Workers <= 0):
		return fmt.Errorf("%w: mailer queue_size and workers must be positive", ErrInvalidConfig)
	}
	if _, err := c.Site.Location(); err != nil {
		return fmt.Errorf("%w: site.timezone: %v", ErrInvalidConfig, err)
	}
	return nil
}

// SessionDuration время жизни токена сессии
func (a AdminConfig) SessionDuration() time.Duration {
	return time.Duration(a.SessionTTL) * time.Minute
}

// Location часовой пояс зала для выгрузки календаря
func (s SiteConfig) Location() (*time.Location, error) {
	if s.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(s.Timezone)
}

// RequestTimeout таймаут HTTP-запроса к почтовому API
func (m MailerConfig) RequestTimeout() time.Duration {
	return time.Duration(m.Timeout) * time.Second
}
