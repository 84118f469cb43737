package gorm

import (
	"fmt"

	"github.com/flow-hydraulics/flow-bank/configs"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	dbTypePostgresql = "psql"
	dbTypeMysql      = "mysql"
	dbTypeSqlite     = "sqlite"
)

// dialector picks the gorm driver matching cfg.DatabaseType.
func dialector(cfg *configs.Config) (gorm.Dialector, error) {
	switch cfg.DatabaseType {
	case dbTypePostgresql:
		return postgres.Open(cfg.DatabaseDSN), nil
	case dbTypeMysql:
		return mysql.Open(cfg.DatabaseDSN), nil
	case dbTypeSqlite:
		return sqlite.Open(cfg.DatabaseDSN), nil
	default:
		return nil, fmt.Errorf("database type '%s' not supported", cfg.DatabaseType)
	}
}

func options() *gorm.Config {
	return &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}
}
