// Package migrations holds the schema history of the gorm store.
package migrations

import (
	"github.com/flow-hydraulics/flow-bank/migrations/internal/m20261012"
	"github.com/flow-hydraulics/flow-bank/migrations/internal/m20261019"
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

func List() []*gormigrate.Migration {
	ms := []*gormigrate.Migration{
		{
			ID:       m20261012.ID,
			Migrate:  m20261012.Migrate,
			Rollback: m20261012.Rollback,
		},
		{
			ID:       m20261019.ID,
			Migrate:  m20261019.Migrate,
			Rollback: m20261019.Rollback,
		},
	}
	return ms
}

// Migrate brings the schema of db up to date.
func Migrate(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, List())
	return m.Migrate()
}
