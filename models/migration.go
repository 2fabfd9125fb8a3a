package models

import (
	"gorm.io/gorm"
)

func MigrateTable(db *gorm.DB) error {
	return db.AutoMigrate(
		&Item{}, &InventoryAdjustment{},
		&FilamentSpool{}, &FilamentUsageLog{},
		&SalesSession{}, &Sale{},
		&CustomOrder{}, &PrintJob{}, &Expense{},
	)
}
