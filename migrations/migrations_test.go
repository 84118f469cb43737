package migrations

import (
	"path/filepath"
	"testing"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMigrateAndRollback(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	if err := Migrate(db); err != nil {
		t.Fatal(err)
	}

	for _, table := range []string{"customers", "accounts", "transactions"} {
		if !db.Migrator().HasTable(table) {
			t.Fatalf("expected table %q to exist", table)
		}
	}

	// Running again is a no-op.
	if err := Migrate(db); err != nil {
		t.Fatal(err)
	}

	m := gormigrate.New(db, gormigrate.DefaultOptions, List())
	if err := m.RollbackLast(); err != nil {
		t.Fatal(err)
	}

	if db.Migrator().HasTable("transactions") {
		t.Fatal("expected transactions table to be dropped")
	}

	if !db.Migrator().HasTable("accounts") {
		t.Fatal("expected accounts table to remain")
	}
}
