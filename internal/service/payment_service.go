package service

import (
	"context"
	"time"

	"coldstore/internal/calc"
	"coldstore/internal/domainerr"
	"coldstore/internal/dto"
	"coldstore/internal/model"
	"coldstore/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentService interface {
	// RecordReceipt books an inbound payment. For cold_merchant and sales_goods
	// payers the amount is allocated oldest-due-first against the buyer's open
	// sales; kata and others are pure income with no allocation.
	RecordReceipt(ctx context.Context, req dto.RecordReceiptRequest) (*dto.ReceiptResponse, error)
	RecordExpense(ctx context.Context, req dto.RecordExpenseRequest) (*dto.TransactionResponse, error)
	RecordCashTransfer(ctx context.Context, req dto.RecordCashTransferRequest) (*dto.TransactionResponse, error)
	// BuyerBalance replays the ledger; nothing here is served from a cache.
	BuyerBalance(ctx context.Context, buyer string) (*dto.BuyerBalanceResponse, error)
}

type paymentService struct {
	receipts repository.ReceiptRepository
	sales    repository.SaleRepository
	lots     repository.LotRepository
	money    repository.MoneyRepository
	seq      Sequencer
}

func NewPaymentService(
	receipts repository.ReceiptRepository,
	sales repository.SaleRepository,
	lots repository.LotRepository,
	money repository.MoneyRepository,
	seq Sequencer,
) PaymentService {
	return &paymentService{receipts: receipts, sales: sales, lots: lots, money: money, seq: seq}
}

func (s *paymentService) RecordReceipt(ctx context.Context, req dto.RecordReceiptRequest) (*dto.ReceiptResponse, error) {
	if !req.Amount.IsPositive() {
		return nil, domainerr.Validation("amount", "must be positive")
	}
	allocating := req.PayerType == model.PayerColdMerchant || req.PayerType == model.PayerSalesGoods
	if allocating && req.BuyerName == "" {
		return nil, domainerr.Validation("buyer_name", "required for this payer type")
	}

	txnID, err := s.seq.Next(ctx)
	if err != nil {
		return nil, err
	}

	receipt := &model.CashReceipt{
		TransactionID: txnID,
		PayerType:     req.PayerType,
		BuyerName:     req.BuyerName,
		Mode:          req.Mode,
		Amount:        req.Amount,
		Narration:     req.Narration,
	}

	txErr := runTx(ctx, s.receipts.DB(), func(tx *gorm.DB) error {
		if !allocating {
			receipt.AppliedAmount = decimal.Zero
			receipt.UnappliedAmount = req.Amount
			return s.receipts.CreateTx(tx, receipt)
		}

		open, err := s.sales.OutstandingByBuyer(tx, req.BuyerName)
		if err != nil {
			return err
		}
		dues := make([]calc.OutstandingDue, 0, len(open))
		byID := make(map[uuid.UUID]*model.Sale, len(open))
		for i := range open {
			sale := &open[i]
			byID[sale.ID] = sale
			dues = append(dues, calc.OutstandingDue{
				SaleID: sale.ID, SoldAt: sale.SoldAt, Due: sale.DueAmount,
			})
		}

		res := calc.AllocateFIFO(req.Amount, dues)
		receipt.AppliedAmount = res.Applied
		receipt.UnappliedAmount = res.Unapplied
		if err := s.receipts.CreateTx(tx, receipt); err != nil {
			return err
		}

		for _, a := range res.Allocations {
			sale := byID[a.SaleID]
			if err := s.applyToSale(ctx, tx, sale, a.Amount); err != nil {
				return err
			}
			alloc := &model.ReceiptAllocation{
				ReceiptID: receipt.ID,
				SaleID:    a.SaleID,
				Amount:    a.Amount,
			}
			if err := s.receipts.CreateAllocationTx(tx, alloc); err != nil {
				return err
			}
			receipt.Allocations = append(receipt.Allocations, *alloc)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return receiptToResponse(receipt), nil
}

// applyToSale settles part of a sale's due and mirrors the movement onto the
// lot's running totals.
func (s *paymentService) applyToSale(ctx context.Context, tx *gorm.DB, sale *model.Sale, amount decimal.Decimal) error {
	sale.DueAmount = sale.DueAmount.Sub(amount)
	sale.PaidAmount = sale.PaidAmount.Add(amount)
	if sale.DueAmount.IsNegative() {
		return domainerr.Consistencyf("sale", "%s due went negative", sale.ID)
	}
	if sale.DueAmount.IsZero() {
		sale.PaymentStatus = model.PaymentPaid
	} else {
		sale.PaymentStatus = model.PaymentPartial
	}
	if err := s.sales.UpdateTx(tx, sale); err != nil {
		return err
	}

	if sale.LotID == uuid.Nil {
		return nil
	}
	var lot *model.Lot
	var err error
	if tx == nil {
		lot, err = s.lots.FindByID(ctx, sale.LotID)
	} else {
		lot, err = s.lots.FindByIDForUpdate(tx, sale.LotID)
	}
	if err != nil {
		return err
	}
	lot.TotalDueCharge = lot.TotalDueCharge.Sub(amount)
	lot.TotalPaidCharge = lot.TotalPaidCharge.Add(amount)
	return s.lots.UpdateTx(tx, lot)
}

func (s *paymentService) RecordExpense(ctx context.Context, req dto.RecordExpenseRequest) (*dto.TransactionResponse, error) {
	if !req.Amount.IsPositive() {
		return nil, domainerr.Validation("amount", "must be positive")
	}
	txnID, err := s.seq.Next(ctx)
	if err != nil {
		return nil, err
	}
	e := &model.Expense{
		TransactionID: txnID,
		ExpenseType:   req.ExpenseType,
		Mode:          req.Mode,
		Amount:        req.Amount,
		Narration:     req.Narration,
	}
	txErr := runTx(ctx, s.money.DB(), func(tx *gorm.DB) error {
		return s.money.CreateExpenseTx(tx, e)
	})
	if txErr != nil {
		return nil, txErr
	}
	return &dto.TransactionResponse{
		ID:            e.ID.String(),
		TransactionID: e.TransactionID,
		Amount:        e.Amount,
		CreatedAt:     e.CreatedAt.Format(time.RFC3339),
	}, nil
}

func (s *paymentService) RecordCashTransfer(ctx context.Context, req dto.RecordCashTransferRequest) (*dto.TransactionResponse, error) {
	if !req.Amount.IsPositive() {
		return nil, domainerr.Validation("amount", "must be positive")
	}
	txnID, err := s.seq.Next(ctx)
	if err != nil {
		return nil, err
	}
	t := &model.CashTransfer{
		TransactionID: txnID,
		FromAccount:   req.FromAccount,
		ToAccount:     req.ToAccount,
		Amount:        req.Amount,
		Narration:     req.Narration,
	}
	txErr := runTx(ctx, s.money.DB(), func(tx *gorm.DB) error {
		return s.money.CreateCashTransferTx(tx, t)
	})
	if txErr != nil {
		return nil, txErr
	}
	return &dto.TransactionResponse{
		ID:            t.ID.String(),
		TransactionID: t.TransactionID,
		Amount:        t.Amount,
		CreatedAt:     t.CreatedAt.Format(time.RFC3339),
	}, nil
}

func (s *paymentService) BuyerBalance(ctx context.Context, buyer string) (*dto.BuyerBalanceResponse, error) {
	charged, err := s.sales.SumChargedByBuyer(ctx, buyer)
	if err != nil {
		return nil, err
	}
	due, err := s.sales.SumDueByBuyer(ctx, buyer)
	if err != nil {
		return nil, err
	}
	unapplied, err := s.receipts.SumUnappliedByBuyer(ctx, buyer)
	if err != nil {
		return nil, err
	}
	return &dto.BuyerBalanceResponse{
		BuyerName:      buyer,
		TotalCharged:   charged,
		TotalDue:       due,
		UnappliedFunds: unapplied,
	}, nil
}

func receiptToResponse(r *model.CashReceipt) *dto.ReceiptResponse {
	allocs := make([]dto.ReceiptAllocationResponse, 0, len(r.Allocations))
	for _, a := range r.Allocations {
		allocs = append(allocs, dto.ReceiptAllocationResponse{
			SaleID: a.SaleID.String(),
			Amount: a.Amount,
		})
	}
	return &dto.ReceiptResponse{
		ID:              r.ID.String(),
		TransactionID:   r.TransactionID,
		PayerType:       r.PayerType,
		BuyerName:       r.BuyerName,
		Mode:            r.Mode,
		Amount:          r.Amount,
		AppliedAmount:   r.AppliedAmount,
		UnappliedAmount: r.UnappliedAmount,
		Allocations:     allocs,
		IsReversed:      r.IsReversed,
		CreatedAt:       r.CreatedAt.Format(time.RFC3339),
	}
}
