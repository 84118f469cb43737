package m20261019

import (
	"time"

	"gorm.io/gorm"
)

// Adds the deposit and withdrawal journal.

const ID = "20261019"

type Transaction struct {
	ID            string `gorm:"primaryKey;size:36"`
	AccountNumber int64  `gorm:"index"`
	Type          string `gorm:"size:16"`
	Amount        float64
	Balance       float64
	Position      int `gorm:"index"`
	CreatedAt     time.Time
}

func (Transaction) TableName() string {
	return "transactions"
}

func Migrate(tx *gorm.DB) error {
	return tx.AutoMigrate(&Transaction{})
}

func Rollback(tx *gorm.DB) error {
	return tx.Migrator().DropTable(&Transaction{})
}
