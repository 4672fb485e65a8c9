package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"intimacoes/internal/adapters/out/postgres"
	"intimacoes/internal/core/domain/model/kernel"
	"intimacoes/internal/core/domain/services"
	"intimacoes/internal/pkg/errs"
)

// Storage drivers accepted in STORAGE_DRIVER.
const (
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

// DefaultDeliveryFee is paid per delivered or returned document when DELIVERY_FEE is unset.
const DefaultDeliveryFee = "3.00"

type Config struct {
	HTTPPort      string
	StorageDriver string
	SQLitePath    string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBDriver   string

	DeliveryFee   string
	ArchivalDelay string

	AssistantBaseURL string
	AssistantAPIKey  string
	AssistantModel   string
	AssistantTimeout string

	SnapshotFlushSchedule  string
	DashboardStatsSchedule string

	LogLevel string
}

// Postgres returns the connection settings of the postgres snapshot store.
func (c Config) Postgres() postgres.Config {
	return postgres.Config{
		Host:     c.DBHost,
		Port:     c.DBPort,
		User:     c.DBUser,
		Password: c.DBPassword,
		DBName:   c.DBName,
		SSLMode:  c.DBSslMode,
		Driver:   c.DBDriver,
	}
}

// Fee parses DELIVERY_FEE.
func (c Config) Fee() (kernel.Money, error) {
	raw := c.DeliveryFee
	if raw == "" {
		raw = DefaultDeliveryFee
	}
	fee, err := kernel.MoneyFromString(raw)
	if err != nil {
		return kernel.Money{}, errs.NewValueIsInvalidErrorWithCause("DELIVERY_FEE", err)
	}
	return fee, nil
}

// ArchivalDelayDuration parses ARCHIVAL_DELAY as a Go duration ("96h"). An empty value means
// services.DefaultArchivalDelay; "0s" archives finalized batches immediately.
func (c Config) ArchivalDelayDuration() (time.Duration, error) {
	if strings.TrimSpace(c.ArchivalDelay) == "" {
		return services.DefaultArchivalDelay, nil
	}
	return parseDuration("ARCHIVAL_DELAY", c.ArchivalDelay)
}

// AssistantTimeoutDuration parses ASSISTANT_TIMEOUT. Zero means the client default.
func (c Config) AssistantTimeoutDuration() (time.Duration, error) {
	return parseDuration("ASSISTANT_TIMEOUT", c.AssistantTimeout)
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Validate checks the settings the service cannot start without.
func (c Config) Validate() error {
	var errList []error
	if c.HTTPPort == "" {
		errList = append(errList, errs.NewValueIsRequiredError("HTTP_PORT"))
	}

	switch strings.ToLower(c.StorageDriver) {
	case "", StorageSQLite:
	case StoragePostgres:
		if c.DBHost == "" {
			errList = append(errList, errs.NewValueIsRequiredError("DB_HOST"))
		}
		if c.DBName == "" {
			errList = append(errList, errs.NewValueIsRequiredError("DB_NAME"))
		}
	default:
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"STORAGE_DRIVER", fmt.Errorf("%q is not one of %s, %s", c.StorageDriver, StorageSQLite, StoragePostgres)))
	}

	if _, err := c.Fee(); err != nil {
		errList = append(errList, err)
	}
	if _, err := c.ArchivalDelayDuration(); err != nil {
		errList = append(errList, err)
	}
	if _, err := c.AssistantTimeoutDuration(); err != nil {
		errList = append(errList, err)
	}
	return errors.Join(errList...)
}

func parseDuration(name, raw string) (time.Duration, error) {
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	if d < 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%s is negative", d))
	}
	return d, nil
}
