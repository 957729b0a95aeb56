package infra

import (
	"coldstore/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and migrates the
// ledger schema. Edit-history tables are append-only; nothing in the codebase
// updates or deletes their rows.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := db.AutoMigrate(
		&model.Lot{},
		&model.Sale{},
		&model.ExitHistory{},
		&model.CashReceipt{},
		&model.ReceiptAllocation{},
		&model.Expense{},
		&model.CashTransfer{},
		&model.BuyerTransfer{},
		&model.FarmerToBuyerTransfer{},
		&model.TransferLeg{},
		&model.Discount{},
		&model.DiscountAllocation{},
		&model.LotEditHistory{},
		&model.SaleEditHistory{},
		&model.Asset{},
		&model.Liability{},
		&model.User{},
		&model.Settings{},
	); err != nil {
		return nil, err
	}

	return db, nil
}
