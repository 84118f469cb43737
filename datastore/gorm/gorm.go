// Package gorm stores bank state in sqlite, postgresql or mysql.
package gorm

import (
	"github.com/flow-hydraulics/flow-bank/configs"
	"github.com/flow-hydraulics/flow-bank/migrations"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// New opens the configured database and runs pending migrations.
func New(cfg *configs.Config) (*gorm.DB, error) {
	d, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(d, options())
	if err != nil {
		return nil, err
	}

	if err := migrations.Migrate(db); err != nil {
		Close(db)
		return nil, err
	}

	log.WithFields(log.Fields{"type": cfg.DatabaseType}).Debug("Database ready")

	return db, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.WithFields(log.Fields{"error": err}).Warn("Unable to close database")
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.WithFields(log.Fields{"error": err}).Warn("Unable to close database")
	}
}
