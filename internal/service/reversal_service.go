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

// Reversal entity types, matching dto.ReverseRequest.EntityType.
const (
	EntityExit           = "exit"
	EntityReceipt        = "receipt"
	EntityExpense        = "expense"
	EntityCashTransfer   = "cash_transfer"
	EntityBuyerTransfer  = "buyer_transfer"
	EntityFarmerTransfer = "farmer_transfer"
	EntityDiscount       = "discount"
)

type ReversalService interface {
	// Reverse undoes a financial event by compensation: the original row stays,
	// flagged reversed, and every balance it moved is moved back. Reversing an
	// already-reversed record is a warning, not an error.
	Reverse(ctx context.Context, req dto.ReverseRequest) (*dto.ReverseResponse, error)
	// ReverseLatestExit undoes the most recent active exit recorded against a
	// sale, putting its bags back inside.
	ReverseLatestExit(ctx context.Context, saleID uuid.UUID) (*dto.ReverseResponse, error)
}

type reversalService struct {
	exits     repository.ExitRepository
	receipts  repository.ReceiptRepository
	sales     repository.SaleRepository
	lots      repository.LotRepository
	money     repository.MoneyRepository
	transfers repository.TransferRepository
	discounts repository.DiscountRepository
}

func NewReversalService(
	exits repository.ExitRepository,
	receipts repository.ReceiptRepository,
	sales repository.SaleRepository,
	lots repository.LotRepository,
	money repository.MoneyRepository,
	transfers repository.TransferRepository,
	discounts repository.DiscountRepository,
) ReversalService {
	return &reversalService{
		exits: exits, receipts: receipts, sales: sales, lots: lots,
		money: money, transfers: transfers, discounts: discounts,
	}
}

func (s *reversalService) Reverse(ctx context.Context, req dto.ReverseRequest) (*dto.ReverseResponse, error) {
	id, err := uuid.Parse(req.EntityID)
	if err != nil {
		return nil, domainerr.Validation("entity_id", "not a valid uuid")
	}

	resp := &dto.ReverseResponse{EntityType: req.EntityType, EntityID: req.EntityID}
	var noop *domainerr.NoOpWarning

	txErr := runTx(ctx, s.sales.DB(), func(tx *gorm.DB) error {
		var err error
		switch req.EntityType {
		case EntityExit:
			noop, err = s.reverseExit(ctx, tx, id)
		case EntityReceipt:
			noop, err = s.reverseReceipt(ctx, tx, id)
		case EntityExpense:
			noop, err = s.reverseExpense(ctx, tx, id)
		case EntityCashTransfer:
			noop, err = s.reverseCashTransfer(ctx, tx, id)
		case EntityBuyerTransfer:
			noop, err = s.reverseBuyerTransfer(ctx, tx, id)
		case EntityFarmerTransfer:
			noop, err = s.reverseFarmerTransfer(ctx, tx, id)
		case EntityDiscount:
			noop, err = s.reverseDiscount(ctx, tx, id)
		default:
			return domainerr.Validationf("entity_type", "unknown type %q", req.EntityType)
		}
		return err
	})
	if txErr != nil {
		return nil, txErr
	}

	if noop != nil {
		resp.Warning = noop.Error()
		return resp, nil
	}
	resp.Reversed = true
	return resp, nil
}

func (s *reversalService) ReverseLatestExit(ctx context.Context, saleID uuid.UUID) (*dto.ReverseResponse, error) {
	resp := &dto.ReverseResponse{EntityType: EntityExit}
	var noop *domainerr.NoOpWarning

	txErr := runTx(ctx, s.sales.DB(), func(tx *gorm.DB) error {
		exit, err := s.exits.FindLatestActiveBySale(tx, saleID)
		if err != nil {
			return err
		}
		resp.EntityID = exit.ID.String()
		noop, err = s.reverseExit(ctx, tx, exit.ID)
		return err
	})
	if txErr != nil {
		return nil, txErr
	}

	if noop != nil {
		resp.Warning = noop.Error()
		return resp, nil
	}
	resp.Reversed = true
	return resp, nil
}

func (s *reversalService) reverseExit(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domainerr.NoOpWarning, error) {
	exit, err := s.findExit(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if exit.IsReversed {
		return domainerr.NoOp("exit already reversed"), nil
	}

	sale, err := s.findSale(ctx, tx, exit.SaleID)
	if err != nil {
		return nil, err
	}
	sale.BagsExited -= exit.BagsExited
	if sale.BagsExited < 0 {
		return nil, domainerr.Consistencyf("sale", "%s exited bags went negative", sale.ID)
	}
	if err := s.sales.UpdateTx(tx, sale); err != nil {
		return nil, err
	}

	now := time.Now()
	exit.IsReversed = true
	exit.ReversedAt = &now
	return nil, s.exits.UpdateTx(tx, exit)
}

func (s *reversalService) reverseReceipt(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domainerr.NoOpWarning, error) {
	receipt, err := s.findReceipt(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if receipt.IsReversed {
		return domainerr.NoOp("receipt already reversed"), nil
	}

	for _, a := range receipt.Allocations {
		sale, err := s.findSale(ctx, tx, a.SaleID)
		if err != nil {
			return nil, err
		}
		sale.PaidAmount = sale.PaidAmount.Sub(a.Amount)
		sale.DueAmount = sale.DueAmount.Add(a.Amount)
		if sale.PaidAmount.IsNegative() {
			return nil, domainerr.Consistencyf("sale", "%s paid went negative", sale.ID)
		}
		if sale.PaidAmount.IsZero() {
			sale.PaymentStatus = model.PaymentDue
		} else {
			sale.PaymentStatus = model.PaymentPartial
		}
		if err := s.sales.UpdateTx(tx, sale); err != nil {
			return nil, err
		}

		if sale.LotID != uuid.Nil {
			lot, err := s.findLot(ctx, tx, sale.LotID)
			if err != nil {
				return nil, err
			}
			lot.TotalPaidCharge = lot.TotalPaidCharge.Sub(a.Amount)
			lot.TotalDueCharge = lot.TotalDueCharge.Add(a.Amount)
			if lot.TotalPaidCharge.IsNegative() {
				return nil, domainerr.Consistencyf("lot", "%d paid total went negative", lot.LotNumber)
			}
			if err := s.lots.UpdateTx(tx, lot); err != nil {
				return nil, err
			}
		}
	}

	now := time.Now()
	receipt.IsReversed = true
	receipt.ReversedAt = &now
	return nil, s.receipts.UpdateTx(tx, receipt)
}

func (s *reversalService) reverseExpense(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domainerr.NoOpWarning, error) {
	e, err := s.money.FindExpenseForUpdate(tx, id)
	if err != nil {
		return nil, err
	}
	if e.IsReversed {
		return domainerr.NoOp("expense already reversed"), nil
	}
	now := time.Now()
	e.IsReversed = true
	e.ReversedAt = &now
	return nil, s.money.UpdateExpenseTx(tx, e)
}

func (s *reversalService) reverseCashTransfer(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domainerr.NoOpWarning, error) {
	t, err := s.money.FindCashTransferForUpdate(tx, id)
	if err != nil {
		return nil, err
	}
	if t.IsReversed {
		return domainerr.NoOp("cash transfer already reversed"), nil
	}
	now := time.Now()
	t.IsReversed = true
	t.ReversedAt = &now
	return nil, s.money.UpdateCashTransferTx(tx, t)
}

func (s *reversalService) reverseBuyerTransfer(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domainerr.NoOpWarning, error) {
	t, err := s.transfers.FindBuyerTransferForUpdate(tx, id)
	if err != nil {
		return nil, err
	}
	if t.IsReversed {
		return domainerr.NoOp("buyer transfer already reversed"), nil
	}

	if err := s.unwindTransfer(ctx, tx, t.TransferGroupID, t.CreditSaleID, "buyer transfer"); err != nil {
		return nil, err
	}

	now := time.Now()
	t.IsReversed = true
	t.ReversedAt = &now
	if err := s.transfers.UpdateBuyerTransferTx(tx, t); err != nil {
		return nil, err
	}

	// Every later cached balance for both parties shifts by the reversed
	// amount: the sender gets the due back, the recipient sheds it.
	if err := s.shiftSnapshotsAfter(tx, t.FromBuyer, t.CreatedAt, t.Amount); err != nil {
		return nil, err
	}
	return nil, s.shiftSnapshotsAfter(tx, t.ToBuyer, t.CreatedAt, t.Amount.Neg())
}

func (s *reversalService) reverseFarmerTransfer(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domainerr.NoOpWarning, error) {
	t, err := s.transfers.FindFarmerTransferForUpdate(tx, id)
	if err != nil {
		return nil, err
	}
	if t.IsReversed {
		return domainerr.NoOp("farmer transfer already reversed"), nil
	}

	if err := s.unwindTransfer(ctx, tx, t.TransferGroupID, t.CreditSaleID, "farmer transfer"); err != nil {
		return nil, err
	}

	now := time.Now()
	t.IsReversed = true
	t.ReversedAt = &now
	if err := s.transfers.UpdateFarmerTransferTx(tx, t); err != nil {
		return nil, err
	}
	return nil, s.shiftSnapshotsAfter(tx, t.ToBuyer, t.CreatedAt, t.TotalAmount.Neg())
}

// unwindTransfer undoes one transfer exactly. The credit leg must still be
// fully outstanding; every source sale gets back the amount its recorded leg
// moved out.
func (s *reversalService) unwindTransfer(ctx context.Context, tx *gorm.DB, group, creditSaleID uuid.UUID, what string) error {
	credit, err := s.findSale(ctx, tx, creditSaleID)
	if err != nil {
		return err
	}
	settled := credit.PaidAmount.Add(credit.TransferredOut).Add(credit.DiscountApplied)
	if !settled.IsZero() {
		return domainerr.Consistencyf(what,
			"credit leg %s already settled for %s", credit.ID, settled.String())
	}
	now := time.Now()
	credit.IsReversed = true
	credit.ReversedAt = &now
	credit.DueAmount = decimal.Zero
	if err := s.sales.UpdateTx(tx, credit); err != nil {
		return err
	}

	legs, err := s.transfers.LegsByGroup(tx, group)
	if err != nil {
		return err
	}
	for i := range legs {
		leg := legs[i]
		sale, err := s.findSale(ctx, tx, leg.SaleID)
		if err != nil {
			return err
		}
		if sale.TransferredOut.LessThan(leg.Amount) {
			return domainerr.Consistencyf(what,
				"sale %s carries %s transferred out, leg moved %s",
				sale.ID, sale.TransferredOut.String(), leg.Amount.String())
		}
		sale.TransferredOut = sale.TransferredOut.Sub(leg.Amount)
		sale.DueAmount = sale.DueAmount.Add(leg.Amount)
		if sale.PaidAmount.IsZero() {
			sale.PaymentStatus = model.PaymentDue
		} else {
			sale.PaymentStatus = model.PaymentPartial
		}
		if err := s.sales.UpdateTx(tx, sale); err != nil {
			return err
		}
	}
	return nil
}

// shiftSnapshotsAfter adjusts every later cached DueBalanceAfter for the party
// by delta, keeping the stored history consistent with the rewritten ledger.
func (s *reversalService) shiftSnapshotsAfter(tx *gorm.DB, party string, after time.Time, delta decimal.Decimal) error {
	buyerTransfers, err := s.transfers.BuyerTransfersAfter(tx, party, after)
	if err != nil {
		return err
	}
	for i := range buyerTransfers {
		bt := &buyerTransfers[i]
		if bt.FromBuyer == party {
			bt.FromDueBalanceAfter = bt.FromDueBalanceAfter.Add(delta)
		}
		if bt.ToBuyer == party {
			bt.ToDueBalanceAfter = bt.ToDueBalanceAfter.Add(delta)
		}
		if err := s.transfers.UpdateBuyerTransferTx(tx, bt); err != nil {
			return err
		}
	}

	farmerTransfers, err := s.transfers.FarmerTransfersAfter(tx, party, after)
	if err != nil {
		return err
	}
	for i := range farmerTransfers {
		ft := &farmerTransfers[i]
		ft.BuyerDueBalanceAfter = ft.BuyerDueBalanceAfter.Add(delta)
		if err := s.transfers.UpdateFarmerTransferTx(tx, ft); err != nil {
			return err
		}
	}
	return nil
}

func (s *reversalService) reverseDiscount(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domainerr.NoOpWarning, error) {
	d, err := s.findDiscount(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if d.IsReversed {
		return domainerr.NoOp("discount already reversed"), nil
	}

	for _, a := range d.Allocations {
		discounted, err := s.sales.DiscountedByBuyer(tx, a.BuyerName)
		if err != nil {
			return nil, err
		}
		remaining := a.Amount
		for i := range discounted {
			if !remaining.IsPositive() {
				break
			}
			sale := &discounted[i]
			take := decimal.Min(remaining, sale.DiscountApplied)
			sale.DiscountApplied = sale.DiscountApplied.Sub(take)
			sale.DueAmount = sale.DueAmount.Add(take)
			if sale.PaidAmount.IsZero() {
				sale.PaymentStatus = model.PaymentDue
			} else {
				sale.PaymentStatus = model.PaymentPartial
			}
			if err := s.sales.UpdateTx(tx, sale); err != nil {
				return nil, err
			}
			remaining = remaining.Sub(take)
		}
		if !remaining.IsZero() {
			return nil, domainerr.Consistencyf("discount",
				"could not restore %s for buyer %s", remaining.String(), a.BuyerName)
		}
	}

	now := time.Now()
	d.IsReversed = true
	d.ReversedAt = &now
	return nil, s.discounts.UpdateTx(tx, d)
}

// Lookup helpers falling back to unlocked reads in unit-test mode.

func (s *reversalService) findSale(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Sale, error) {
	if tx == nil {
		return s.sales.FindByID(ctx, id)
	}
	return s.sales.FindByIDForUpdate(tx, id)
}

func (s *reversalService) findLot(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Lot, error) {
	if tx == nil {
		return s.lots.FindByID(ctx, id)
	}
	return s.lots.FindByIDForUpdate(tx, id)
}

func (s *reversalService) findExit(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.ExitHistory, error) {
	if tx == nil {
		return s.exits.FindByID(ctx, id)
	}
	return s.exits.FindByIDForUpdate(tx, id)
}

func (s *reversalService) findReceipt(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.CashReceipt, error) {
	if tx == nil {
		return s.receipts.FindByID(ctx, id)
	}
	return s.receipts.FindByIDForUpdate(tx, id)
}

func (s *reversalService) findDiscount(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Discount, error) {
	if tx == nil {
		return s.discounts.FindByID(ctx, id)
	}
	return s.discounts.FindByIDForUpdate(tx, id)
}
