package config

import (
	"fmt"
	"log/slog"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"blogly/models"
)

// InitDB opens the configured database, sizes the connection pool and
// migrates the schema.
func InitDB(conf DatabaseConfig) (*gorm.DB, error) {
	db, err := OpenDB(conf)
	if err != nil {
		return nil, err
	}

	if err := models.InitTable(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	slog.Info("Database connection established", "driver", conf.Driver)
	return db, nil
}

// OpenDB opens the configured database without migrating it.
func OpenDB(conf DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch conf.Driver {
	case "postgres":
		dialector = postgres.Open(conf.BuildDSN())
	case "sqlite":
		dialector = sqlite.Open(conf.BuildDSN())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", conf.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormLogger(conf.LogLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	if conf.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(conf.MaxOpenConns)
	}
	if conf.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(conf.MaxIdleConns)
	}
	if conf.MaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(conf.MaxLifetime)
	}

	return db, nil
}

// BuildDSN returns DSN verbatim when set, otherwise builds one for the driver.
// For sqlite, Database is the file path.
func (c DatabaseConfig) BuildDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	if c.Driver == "sqlite" {
		return c.Database
	}

	sslmode := "disable"
	if c.SSLMode {
		sslmode = "require"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		c.Host, c.Username, c.Password, c.Database, c.Port, sslmode)
}

func gormLogger(level string) logger.Interface {
	switch level {
	case "silent":
		return logger.Default.LogMode(logger.Silent)
	case "error":
		return logger.Default.LogMode(logger.Error)
	case "info":
		return logger.Default.LogMode(logger.Info)
	default:
		return logger.Default.LogMode(logger.Warn)
	}
}
