package service

import (
	"context"
	"time"

	"coldstore/internal/domainerr"
	"coldstore/internal/dto"
	"coldstore/internal/model"
	"coldstore/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TransferService interface {
	// BuyerToBuyer moves an outstanding due from one buyer to another without
	// any goods or cash moving. The debit leg reduces the source buyer's open
	// sales oldest-first; the credit leg is an adjustment sale owed by the
	// recipient. Both legs share a TransferGroupID.
	BuyerToBuyer(ctx context.Context, req dto.BuyerTransferRequest) (*dto.TransferResponse, error)
	// FarmerToBuyer moves a farmer's receivable and self-sale debt onto a
	// buyer's ledger, typically when the buyer purchases the lot and assumes
	// the farmer's account.
	FarmerToBuyer(ctx context.Context, req dto.FarmerTransferRequest) (*dto.TransferResponse, error)
	// RecordDiscount waives part of the dues attributed to a farmer, spread
	// across the named buyers oldest-due-first.
	RecordDiscount(ctx context.Context, req dto.RecordDiscountRequest) (*dto.DiscountResponse, error)
}

type transferService struct {
	transfers repository.TransferRepository
	discounts repository.DiscountRepository
	sales     repository.SaleRepository
	seq       Sequencer
}

func NewTransferService(
	transfers repository.TransferRepository,
	discounts repository.DiscountRepository,
	sales repository.SaleRepository,
	seq Sequencer,
) TransferService {
	return &transferService{transfers: transfers, discounts: discounts, sales: sales, seq: seq}
}

func (s *transferService) BuyerToBuyer(ctx context.Context, req dto.BuyerTransferRequest) (*dto.TransferResponse, error) {
	if !req.Amount.IsPositive() {
		return nil, domainerr.Validation("amount", "must be positive")
	}
	if req.FromBuyer == req.ToBuyer {
		return nil, domainerr.Validation("to_buyer", "must differ from from_buyer")
	}

	txnID, err := s.seq.Next(ctx)
	if err != nil {
		return nil, err
	}
	group := uuid.New()
	now := time.Now()

	var transfer *model.BuyerTransfer
	txErr := runTx(ctx, s.transfers.DB(), func(tx *gorm.DB) error {
		// Both parties' open sales are locked inside the transaction, in name
		// order, so the balance snapshots below cannot go stale and two
		// concurrent transfers between the same pair cannot deadlock.
		fromOpen, toOpen, err := s.lockPairOutstanding(tx, req.FromBuyer, req.ToBuyer)
		if err != nil {
			return err
		}

		fromDueBefore := sumDues(fromOpen)
		toDueBefore := sumDues(toOpen)
		if req.Amount.GreaterThan(fromDueBefore) {
			return domainerr.Preconditionf("transfer %s exceeds %s's outstanding due %s",
				req.Amount.String(), req.FromBuyer, fromDueBefore.String())
		}

		// Debit legs, oldest first. Every take is recorded as an immutable
		// TransferLeg so this transfer can still be unwound exactly after the
		// same sale feeds later transfers.
		remaining := req.Amount
		for i := range fromOpen {
			if !remaining.IsPositive() {
				break
			}
			sale := &fromOpen[i]
			take := decimal.Min(remaining, sale.DueAmount)
			sale.DueAmount = sale.DueAmount.Sub(take)
			sale.TransferredOut = sale.TransferredOut.Add(take)
			sale.TransferredTo = req.ToBuyer
			if sale.DueAmount.IsZero() {
				sale.PaymentStatus = model.PaymentPaid
			} else {
				sale.PaymentStatus = model.PaymentPartial
			}
			if err := s.sales.UpdateTx(tx, sale); err != nil {
				return err
			}
			if err := s.transfers.CreateLegTx(tx, &model.TransferLeg{
				TransferGroupID: group,
				SaleID:          sale.ID,
				Amount:          take,
			}); err != nil {
				return err
			}
			remaining = remaining.Sub(take)
		}

		// Credit leg: the recipient now owes the moved amount.
		credit := &model.Sale{
			LotID:             uuid.Nil,
			SaleType:          model.SaleAdjustment,
			ColdStorageCharge: req.Amount,
			PaymentStatus:     model.PaymentDue,
			DueAmount:         req.Amount,
			BuyerName:         req.ToBuyer,
			TransferGroupID:   &group,
			TransferredFrom:   req.FromBuyer,
			IsAdjustment:      true,
			SoldAt:            now,
		}
		if err := s.sales.CreateTx(tx, credit); err != nil {
			return err
		}

		transfer = &model.BuyerTransfer{
			TransferGroupID:     group,
			CreditSaleID:        credit.ID,
			TransactionID:       txnID,
			FromBuyer:           req.FromBuyer,
			ToBuyer:             req.ToBuyer,
			Amount:              req.Amount,
			FromDueBalanceAfter: fromDueBefore.Sub(req.Amount),
			ToDueBalanceAfter:   toDueBefore.Add(req.Amount),
			Narration:           req.Narration,
		}
		return s.transfers.CreateBuyerTransferTx(tx, transfer)
	})
	if txErr != nil {
		return nil, txErr
	}

	return &dto.TransferResponse{
		ID:              transfer.ID.String(),
		TransactionID:   transfer.TransactionID,
		TransferGroupID: transfer.TransferGroupID.String(),
		Kind:            model.TransferBuyerToBuyer,
		FromParty:       transfer.FromBuyer,
		ToParty:         transfer.ToBuyer,
		Amount:          transfer.Amount,
		DueBalanceAfter: transfer.ToDueBalanceAfter,
		CreatedAt:       transfer.CreatedAt.Format(time.RFC3339),
	}, nil
}

func (s *transferService) FarmerToBuyer(ctx context.Context, req dto.FarmerTransferRequest) (*dto.TransferResponse, error) {
	if !req.TotalAmount.IsPositive() {
		return nil, domainerr.Validation("total_amount", "must be positive")
	}
	if req.ReceivablesTransferred.IsNegative() || req.SelfSalesTransferred.IsNegative() {
		return nil, domainerr.Validation("amounts", "must not be negative")
	}
	if !req.ReceivablesTransferred.Add(req.SelfSalesTransferred).Equal(req.TotalAmount) {
		return nil, domainerr.Validationf("total_amount",
			"receivables %s + self sales %s != total %s",
			req.ReceivablesTransferred.String(), req.SelfSalesTransferred.String(), req.TotalAmount.String())
	}

	txnID, err := s.seq.Next(ctx)
	if err != nil {
		return nil, err
	}
	group := uuid.New()
	now := time.Now()

	var transfer *model.FarmerToBuyerTransfer
	txErr := runTx(ctx, s.transfers.DB(), func(tx *gorm.DB) error {
		// Lock both parties' open sales inside the transaction, in name order.
		var selfOpen, buyerOpen []model.Sale
		var err error
		if req.FarmerName < req.ToBuyer {
			selfOpen, err = s.sales.OutstandingSelfSales(tx, req.FarmerName)
			if err == nil {
				buyerOpen, err = s.sales.OutstandingByBuyer(tx, req.ToBuyer)
			}
		} else {
			buyerOpen, err = s.sales.OutstandingByBuyer(tx, req.ToBuyer)
			if err == nil {
				selfOpen, err = s.sales.OutstandingSelfSales(tx, req.FarmerName)
			}
		}
		if err != nil {
			return err
		}
		buyerDueBefore := sumDues(buyerOpen)

		// Debit the farmer's self-sale dues, oldest first.
		if req.SelfSalesTransferred.IsPositive() {
			available := sumDues(selfOpen)
			if req.SelfSalesTransferred.GreaterThan(available) {
				return domainerr.Preconditionf("self-sale transfer %s exceeds %s's open self-sale dues %s",
					req.SelfSalesTransferred.String(), req.FarmerName, available.String())
			}
			remaining := req.SelfSalesTransferred
			for i := range selfOpen {
				if !remaining.IsPositive() {
					break
				}
				sale := &selfOpen[i]
				take := decimal.Min(remaining, sale.DueAmount)
				sale.DueAmount = sale.DueAmount.Sub(take)
				sale.TransferredOut = sale.TransferredOut.Add(take)
				sale.TransferredTo = req.ToBuyer
				if sale.DueAmount.IsZero() {
					sale.PaymentStatus = model.PaymentPaid
				} else {
					sale.PaymentStatus = model.PaymentPartial
				}
				if err := s.sales.UpdateTx(tx, sale); err != nil {
					return err
				}
				if err := s.transfers.CreateLegTx(tx, &model.TransferLeg{
					TransferGroupID: group,
					SaleID:          sale.ID,
					Amount:          take,
				}); err != nil {
					return err
				}
				remaining = remaining.Sub(take)
			}
		}

		// Credit leg: one adjustment carrying the whole assumed amount. The
		// receivable portion has no sale rows behind it, so there is nothing
		// to debit on that side.
		credit := &model.Sale{
			LotID:             uuid.Nil,
			FarmerName:        req.FarmerName,
			SaleType:          model.SaleAdjustment,
			ColdStorageCharge: req.TotalAmount,
			PaymentStatus:     model.PaymentDue,
			DueAmount:         req.TotalAmount,
			BuyerName:         req.ToBuyer,
			TransferGroupID:   &group,
			TransferredFrom:   req.FarmerName,
			IsAdjustment:      true,
			SoldAt:            now,
		}
		if err := s.sales.CreateTx(tx, credit); err != nil {
			return err
		}

		transfer = &model.FarmerToBuyerTransfer{
			TransferGroupID:        group,
			CreditSaleID:           credit.ID,
			TransactionID:          txnID,
			FarmerName:             req.FarmerName,
			ToBuyer:                req.ToBuyer,
			ReceivablesTransferred: req.ReceivablesTransferred,
			SelfSalesTransferred:   req.SelfSalesTransferred,
			TotalAmount:            req.TotalAmount,
			BuyerDueBalanceAfter:   buyerDueBefore.Add(req.TotalAmount),
			Narration:              req.Narration,
		}
		return s.transfers.CreateFarmerTransferTx(tx, transfer)
	})
	if txErr != nil {
		return nil, txErr
	}

	return &dto.TransferResponse{
		ID:              transfer.ID.String(),
		TransactionID:   transfer.TransactionID,
		TransferGroupID: transfer.TransferGroupID.String(),
		Kind:            model.TransferFarmerToBuyer,
		FromParty:       transfer.FarmerName,
		ToParty:         transfer.ToBuyer,
		Amount:          transfer.TotalAmount,
		DueBalanceAfter: transfer.BuyerDueBalanceAfter,
		CreatedAt:       transfer.CreatedAt.Format(time.RFC3339),
	}, nil
}

// lockPairOutstanding reads both buyers' open sales under row locks, always in
// name order.
func (s *transferService) lockPairOutstanding(tx *gorm.DB, from, to string) (fromOpen, toOpen []model.Sale, err error) {
	if from < to {
		fromOpen, err = s.sales.OutstandingByBuyer(tx, from)
		if err == nil {
			toOpen, err = s.sales.OutstandingByBuyer(tx, to)
		}
		return fromOpen, toOpen, err
	}
	toOpen, err = s.sales.OutstandingByBuyer(tx, to)
	if err == nil {
		fromOpen, err = s.sales.OutstandingByBuyer(tx, from)
	}
	return fromOpen, toOpen, err
}

func sumDues(sales []model.Sale) decimal.Decimal {
	sum := decimal.Zero
	for i := range sales {
		sum = sum.Add(sales[i].DueAmount)
	}
	return sum
}

func (s *transferService) RecordDiscount(ctx context.Context, req dto.RecordDiscountRequest) (*dto.DiscountResponse, error) {
	if !req.Amount.IsPositive() {
		return nil, domainerr.Validation("amount", "must be positive")
	}
	sum := decimal.Zero
	for _, a := range req.Allocations {
		if !a.Amount.IsPositive() {
			return nil, domainerr.Validation("allocations", "amounts must be positive")
		}
		sum = sum.Add(a.Amount)
	}
	if !sum.Equal(req.Amount) {
		return nil, domainerr.Validationf("amount",
			"allocations sum %s != discount %s", sum.String(), req.Amount.String())
	}

	txnID, err := s.seq.Next(ctx)
	if err != nil {
		return nil, err
	}

	discount := &model.Discount{
		TransactionID: txnID,
		FarmerName:    req.FarmerName,
		Amount:        req.Amount,
		Narration:     req.Narration,
	}

	txErr := runTx(ctx, s.discounts.DB(), func(tx *gorm.DB) error {
		if err := s.discounts.CreateTx(tx, discount); err != nil {
			return err
		}
		for _, allocation := range req.Allocations {
			open, err := s.sales.OutstandingByBuyer(tx, allocation.BuyerName)
			if err != nil {
				return err
			}
			available := decimal.Zero
			for i := range open {
				available = available.Add(open[i].DueAmount)
			}
			if allocation.Amount.GreaterThan(available) {
				return domainerr.Preconditionf("discount %s exceeds %s's outstanding due %s",
					allocation.Amount.String(), allocation.BuyerName, available.String())
			}

			remaining := allocation.Amount
			for i := range open {
				if !remaining.IsPositive() {
					break
				}
				sale := &open[i]
				take := decimal.Min(remaining, sale.DueAmount)
				sale.DueAmount = sale.DueAmount.Sub(take)
				sale.DiscountApplied = sale.DiscountApplied.Add(take)
				if sale.DueAmount.IsZero() {
					sale.PaymentStatus = model.PaymentPaid
				} else {
					sale.PaymentStatus = model.PaymentPartial
				}
				if err := s.sales.UpdateTx(tx, sale); err != nil {
					return err
				}
				remaining = remaining.Sub(take)
			}

			row := &model.DiscountAllocation{
				DiscountID: discount.ID,
				BuyerName:  allocation.BuyerName,
				Amount:     allocation.Amount,
			}
			if err := s.discounts.CreateAllocationTx(tx, row); err != nil {
				return err
			}
			discount.Allocations = append(discount.Allocations, *row)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return &dto.DiscountResponse{
		ID:            discount.ID.String(),
		TransactionID: discount.TransactionID,
		FarmerName:    discount.FarmerName,
		Amount:        discount.Amount,
		CreatedAt:     discount.CreatedAt.Format(time.RFC3339),
	}, nil
}
