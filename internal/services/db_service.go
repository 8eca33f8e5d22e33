package services

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/rxtech-lab/tokenomics-studio/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DBService handles database connection and lifecycle management
type DBService interface {
	GetDB() *gorm.DB
	Close() error
}

type dbService struct {
	db *gorm.DB
}

func newGormConfig() *gorm.Config {
	// only errors and slow queries; stdout is reserved for the MCP stdio transport
	gormLogger := logger.New(
		log.New(os.Stderr, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Error,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      false,
			Colorful:                  false,
		},
	)
	return &gorm.Config{Logger: gormLogger}
}

// NewSqliteDBService opens (and creates) a SQLite database. Use ":memory:"
// for an in-memory database.
func NewSqliteDBService(dbPath string) (DBService, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(dbPath), newGormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if dbPath == ":memory:" {
		// every pooled connection would otherwise get its own empty database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database handle: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return NewDBServiceFromDB(db)
}

// NewPostgresDBService connects to PostgreSQL with a connection URL
func NewPostgresDBService(url string) (DBService, error) {
	if url == "" {
		return nil, fmt.Errorf("postgres connection url is empty")
	}
	db, err := gorm.Open(postgres.Open(url), newGormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return NewDBServiceFromDB(db)
}

// NewDBServiceFromDB wraps an open connection and runs the migrations
func NewDBServiceFromDB(db *gorm.DB) (DBService, error) {
	service := &dbService{db: db}
	if err := service.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return service, nil
}

// GetDB returns the underlying GORM database instance
func (s *dbService) GetDB() *gorm.DB {
	return s.db
}

func (s *dbService) migrate() error {
	return s.db.AutoMigrate(
		&models.TokenomicsProject{},
		&models.PaymentTransaction{},
	)
}

// Close closes the database connection
func (s *dbService) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
