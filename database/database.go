package database

import (
	"context"
	"fmt"
	"time"

	"github.com/Burhanmalu/LUMARIYA/config"
	"github.com/Burhanmalu/LUMARIYA/models"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Models lists every table in dependency order.
var Models = []any{
	&models.User{},
	&models.Product{},
	&models.CartLine{},
	&models.Order{},
	&models.OrderItem{},
	&models.Address{},
}

// Open connects to Postgres and sizes the pool.
func Open(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		TranslateError: true,
		Logger:         newGormLogger(log),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpen)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdle)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// Setup brings the schema up to date. DB_AUTO_MIGRATE lets gorm derive the
// schema from the models, otherwise the embedded SQL migrations run.
func Setup(cfg *config.Config, db *gorm.DB, log zerolog.Logger) error {
	if cfg.DBAutoMigrate {
		log.Info().Msg("running gorm auto-migrate")
		return AutoMigrate(db)
	}
	return MigrateUp(cfg.DatabaseURL, log)
}

// indexes gorm tags cannot express; they mirror the SQL migrations.
var expressionIndexes = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_cart_line_identity
		ON cart (user_id, product_id, COALESCE(size, ''), COALESCE(color, ''))`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_addresses_one_default
		ON addresses (user_id) WHERE is_default`,
}

func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	for _, stmt := range expressionIndexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("auto-migrate index: %w", err)
		}
	}
	return nil
}

func newGormLogger(log zerolog.Logger) gormlogger.Interface {
	return gormlogger.New(
		zerologWriter{log: log.With().Str("component", "gorm").Logger()},
		gormlogger.Config{
			SlowThreshold:             500 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)
}

type zerologWriter struct {
	log zerolog.Logger
}

func (w zerologWriter) Printf(format string, args ...any) {
	w.log.Warn().Msgf(format, args...)
}
