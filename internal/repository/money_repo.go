package repository

import (
	"context"
	"time"

	"coldstore/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ExpenseTypeSum is one P&L expense bucket.
type ExpenseTypeSum struct {
	ExpenseType string
	Total       decimal.Decimal
}

type MoneyRepository interface {
	CreateExpenseTx(tx *gorm.DB, e *model.Expense) error
	FindExpenseForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Expense, error)
	UpdateExpenseTx(tx *gorm.DB, e *model.Expense) error
	SumExpensesByTypeBetween(ctx context.Context, from, to time.Time) ([]ExpenseTypeSum, error)

	CreateCashTransferTx(tx *gorm.DB, t *model.CashTransfer) error
	FindCashTransferForUpdate(tx *gorm.DB, id uuid.UUID) (*model.CashTransfer, error)
	UpdateCashTransferTx(tx *gorm.DB, t *model.CashTransfer) error

	DB() *gorm.DB
}

type moneyRepo struct{ db *gorm.DB }

func NewMoneyRepository(db *gorm.DB) MoneyRepository { return &moneyRepo{db: db} }

func (r *moneyRepo) DB() *gorm.DB { return r.db }

func (r *moneyRepo) CreateExpenseTx(tx *gorm.DB, e *model.Expense) error {
	return tx.Create(e).Error
}

func (r *moneyRepo) FindExpenseForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Expense, error) {
	var e model.Expense
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&e, "id = ?", id).Error
	return &e, err
}

func (r *moneyRepo) UpdateExpenseTx(tx *gorm.DB, e *model.Expense) error {
	return tx.Save(e).Error
}

func (r *moneyRepo) SumExpensesByTypeBetween(ctx context.Context, from, to time.Time) ([]ExpenseTypeSum, error) {
	var out []ExpenseTypeSum
	err := r.db.WithContext(ctx).Model(&model.Expense{}).
		Select("expense_type, COALESCE(SUM(amount), 0) AS total").
		Where("is_reversed = false AND created_at >= ? AND created_at < ?", from, to).
		Group("expense_type").
		Scan(&out).Error
	return out, err
}

func (r *moneyRepo) CreateCashTransferTx(tx *gorm.DB, t *model.CashTransfer) error {
	return tx.Create(t).Error
}

func (r *moneyRepo) FindCashTransferForUpdate(tx *gorm.DB, id uuid.UUID) (*model.CashTransfer, error) {
	var t model.CashTransfer
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&t, "id = ?", id).Error
	return &t, err
}

func (r *moneyRepo) UpdateCashTransferTx(tx *gorm.DB, t *model.CashTransfer) error {
	return tx.Save(t).Error
}
