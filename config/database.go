package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	// Load env from .env
	godotenv.Load()
}

// OpenDatabase opens the embedded SQLite store and returns the handle.
// The caller owns the handle: open it once in main, inject it into the
// components that need it, and close it on shutdown via CloseDatabase.
func OpenDatabase() (*gorm.DB, error) {
	path := strings.TrimSpace(os.Getenv("DB_PATH"))
	if path == "" {
		path = "stall.db"
	}

	// busy_timeout keeps a second writer waiting instead of failing with
	// SQLITE_BUSY while a ledger transaction is in flight.
	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)",
		path,
		intFromEnv("DB_BUSY_TIMEOUT_MS", 5000),
	)

	db, err := gorm.Open(sqlite.Open(dsn), initConfig())
	if err != nil {
		return nil, fmt.Errorf("open database %q: %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// SQLite allows one writer at a time; pinning the pool to a single
	// connection makes every transaction serialize at the pool instead of
	// bouncing off SQLITE_BUSY.
	sqlDB.SetMaxOpenConns(intFromEnv("DB_MAX_OPEN_CONNS", 1))
	sqlDB.SetConnMaxIdleTime(time.Duration(intFromEnv("DB_CONN_MAX_IDLE_TIME_SECONDS", 60)) * time.Second)

	return db, nil
}

// CloseDatabase releases the underlying connection pool.
func CloseDatabase(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func initConfig() *gorm.Config {
	logLevel := logger.Warn
	if strings.EqualFold(strings.TrimSpace(os.Getenv("DB_LOG_QUERIES")), "true") {
		logLevel = logger.Info
	}
	return &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	}
}

func intFromEnv(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
