package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v6"
)

var (
	ErrConfigNotFound = errors.New("config: file not found")
	ErrInvalidConfig  = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Booking  BookingConfig  `toml:"booking"`
}

// ServerConfig настройки HTTP сервера. Таймауты в секундах.
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" env:"SERVER_HTTP_PORT"`
	ReadTimeout     int `toml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
	WriteTimeout    int `toml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	IdleTimeout     int `toml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT"`
	ShutdownTimeout int `toml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
}

// DatabaseConfig подключение к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host" env:"DB_HOST"`
	Port            int    `toml:"port" env:"DB_PORT"`
	User            string `toml:"user" env:"DB_USER"`
	Password        string `toml:"password" env:"DB_PASSWORD"`
	DBName          string `toml:"dbname" env:"DB_NAME"`
	SSLMode         string `toml:"sslmode" env:"DB_SSLMODE"`
	MaxOpenConns    int    `toml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
	MaxIdleConns    int    `toml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"` // секунды
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file" env:"LOGS_FILE"`
	Level string `toml:"level" env:"LOGS_LEVEL"`
}

// MetricsConfig настройки prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" env:"METRICS_ENABLED"`
	Path        string `toml:"path" env:"METRICS_PATH"`
	ServiceName string `toml:"service_name" env:"METRICS_SERVICE_NAME"`
}

// BookingConfig параметры правил бронирования
type BookingConfig struct {
	// DefaultTimezone используется, если у бизнеса не задан часовой пояс
	DefaultTimezone string `toml:"default_timezone" env:"BOOKING_DEFAULT_TIMEZONE"`
	// ApplyServiceBuffers учитывать буферы услуги и бизнеса при поиске пересечений
	ApplyServiceBuffers     bool `toml:"apply_service_buffers" env:"BOOKING_APPLY_SERVICE_BUFFERS"`
	MaxRecurringOccurrences int  `toml:"max_recurring_occurrences" env:"BOOKING_MAX_RECURRING_OCCURRENCES"`
	// RecurringHorizonDays на сколько дней вперёд генерировать записи по умолчанию
	RecurringHorizonDays int `toml:"recurring_horizon_days" env:"BOOKING_RECURRING_HORIZON_DAYS"`
	TxMaxAttempts        int `toml:"tx_max_attempts" env:"BOOKING_TX_MAX_ATTEMPTS"`
	TxRetryBackoffMs     int `toml:"tx_retry_backoff_ms" env:"BOOKING_TX_RETRY_BACKOFF_MS"`
	// SlotStepMinutes шаг сетки свободного времени, 0 = длительность услуги
	SlotStepMinutes int `toml:"slot_step_minutes" env:"BOOKING_SLOT_STEP_MINUTES"`
}

// Location часовой пояс по умолчанию
func (c BookingConfig) Location() (*time.Location, error) {
	if c.DefaultTimezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.DefaultTimezone)
}

// TxRetryBackoff пауза между повторами сериализуемой транзакции
func (c BookingConfig) TxRetryBackoff() time.Duration {
	return time.Duration(c.TxRetryBackoffMs) * time.Millisecond
}

// SlotStep шаг сетки свободного времени
func (c BookingConfig) SlotStep() time.Duration {
	return time.Duration(c.SlotStepMinutes) * time.Minute
}

// Load читает TOML файл, применяет значения по умолчанию и переопределения из окружения
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("config: stat %s: %w", path, err)
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default значения, используемые при отсутствии ключа в файле
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "appointment-service",
		},
		Booking: BookingConfig{
			DefaultTimezone:         "UTC",
			ApplyServiceBuffers:     false,
			MaxRecurringOccurrences: 366,
			RecurringHorizonDays:    90,
			TxMaxAttempts:           3,
			TxRetryBackoffMs:        20,
		},
	}
}

// Validate проверяет обязательные поля и диапазоны
func (c *Config) Validate() error {
	var problems []string

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, fmt.Sprintf("server.http_port out of range: %d", c.Server.HTTPPort))
	}
	if c.Database.Host == "" {
		problems = append(problems, "database.host is required")
	}
	if c.Database.DBName == "" {
		problems = append(problems, "database.dbname is required")
	}
	if c.Database.User == "" {
		problems = append(problems, "database.user is required")
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		problems = append(problems, fmt.Sprintf("metrics.path must start with '/': %q", c.Metrics.Path))
	}
	if _, err := c.Booking.Location(); err != nil {
		problems = append(problems, fmt.Sprintf("booking.default_timezone: %v", err))
	}
	if c.Booking.MaxRecurringOccurrences <= 0 {
		problems = append(problems, "booking.max_recurring_occurrences must be positive")
	}
	if c.Booking.RecurringHorizonDays <= 0 {
		problems = append(problems, "booking.recurring_horizon_days must be positive")
	}
	if c.Booking.TxMaxAttempts <= 0 {
		problems = append(problems, "booking.tx_max_attempts must be positive")
	}
	if c.Booking.TxRetryBackoffMs < 0 {
		problems = append(problems, "booking.tx_retry_backoff_ms must not be negative")
	}
	if c.Booking.SlotStepMinutes < 0 {
		problems = append(problems, "booking.slot_step_minutes must not be negative")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
