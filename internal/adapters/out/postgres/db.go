package postgres

import (
	"context"
	"fmt"
	"net/url"

	// registers the "postgres" database/sql driver used when DB_DRIVER=pq
	_ "github.com/lib/pq"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Driver names accepted by Open.
const (
	DriverPGX = "pgx"
	DriverPQ  = "pq"
)

// Config holds the connection settings.
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	Driver   string
}

// DSN renders the connection URL.
func (c Config) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   c.Host + ":" + c.Port,
		Path:   "/" + c.DBName,
	}
	q := u.Query()
	if c.SSLMode != "" {
		q.Set("sslmode", c.SSLMode)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// Open connects to PostgreSQL with the configured driver and pings it.
// DriverPGX (the default) uses pgx through gorm.io/driver/postgres; DriverPQ uses lib/pq.
func Open(ctx context.Context, cfg Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "", DriverPGX:
		dialector = gormpostgres.Open(cfg.DSN())
	case DriverPQ:
		dialector = gormpostgres.New(gormpostgres.Config{
			DriverName: "postgres",
			DSN:        cfg.DSN(),
		})
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	if err = sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}
