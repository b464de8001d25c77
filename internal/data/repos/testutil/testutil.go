package testutil

import (
	"testing"

	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/shepherd-backend/internal/data/db"
	"github.com/yungbote/shepherd-backend/internal/platform/logger"
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	log, err := logger.New("test")
	if err != nil {
		tb.Fatalf("failed to init logger: %v", err)
	}
	return log
}

// DB returns a fresh, migrated in-memory SQLite database closed at test end.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()
	svc, err := db.NewService(db.Config{Driver: "sqlite", SQLitePath: ":memory:", LogLevel: gormLogger.Silent}, Logger(tb))
	if err != nil {
		tb.Fatalf("open test db: %v", err)
	}
	tb.Cleanup(func() { _ = svc.Close() })
	if err := svc.AutoMigrateAll(); err != nil {
		tb.Fatalf("migrate test db: %v", err)
	}
	return svc.DB()
}
