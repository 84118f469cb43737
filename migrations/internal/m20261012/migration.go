package m20261012

import (
	"gorm.io/gorm"
)

//
// This is the first migration that initializes the whole DB. Types are
// snapshot here so that the schema for this point in time is preserved and
// can be rolled back to from later migrations.
//

const ID = "20261012"

type Customer struct {
	ID       uint   `gorm:"primaryKey"`
	Name     string `gorm:"size:255;uniqueIndex;not null"`
	Address  string
	Contact  string `gorm:"size:10"`
	Position int
}

func (Customer) TableName() string {
	return "customers"
}

type Account struct {
	Number     int64 `gorm:"primaryKey;autoIncrement:false"`
	CustomerID uint  `gorm:"index;not null"`
	Balance    float64
	Position   int `gorm:"index"`
}

func (Account) TableName() string {
	return "accounts"
}

func Migrate(tx *gorm.DB) error {
	if err := tx.AutoMigrate(&Customer{}); err != nil {
		return err
	}

	if err := tx.AutoMigrate(&Account{}); err != nil {
		return err
	}

	return nil
}

func Rollback(tx *gorm.DB) error {
	if err := tx.Migrator().DropTable(&Account{}); err != nil {
		return err
	}

	if err := tx.Migrator().DropTable(&Customer{}); err != nil {
		return err
	}

	return nil
}
