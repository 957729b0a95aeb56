package service

import (
	"context"
	"encoding/json"
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

type LotService interface {
	CreateLot(ctx context.Context, req dto.CreateLotRequest) (*dto.LotResponse, error)
	GetLot(ctx context.Context, id uuid.UUID) (*dto.LotResponse, error)
	ListLots(ctx context.Context, filter dto.LotFilter) (*dto.LotListResponse, error)
	UpdateLot(ctx context.Context, id uuid.UUID, editedBy string, req dto.UpdateLotRequest) (*dto.LotResponse, error)
	ToggleUpForSale(ctx context.Context, id uuid.UUID, upForSale bool) error
	RecordPartialSale(ctx context.Context, lotID uuid.UUID, req dto.RecordSaleRequest) (*dto.SaleResponse, error)
	FinalizeSale(ctx context.Context, lotID uuid.UUID, req dto.RecordSaleRequest) (*dto.SaleResponse, error)
	SeasonReset(ctx context.Context) error
}

type lotService struct {
	lots     repository.LotRepository
	sales    repository.SaleRepository
	audit    repository.AuditRepository
	settings repository.SettingsRepository
}

func NewLotService(
	lots repository.LotRepository,
	sales repository.SaleRepository,
	audit repository.AuditRepository,
	settings repository.SettingsRepository,
) LotService {
	return &lotService{lots: lots, sales: sales, audit: audit, settings: settings}
}

func (s *lotService) CreateLot(ctx context.Context, req dto.CreateLotRequest) (*dto.LotResponse, error) {
	if req.AdvanceDeduction.IsNegative() || req.FreightDeduction.IsNegative() || req.OtherDeduction.IsNegative() {
		return nil, domainerr.Validation("deductions", "must not be negative")
	}

	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	num, err := s.lots.NextLotNumber(ctx, cfg.StartingLotNumber)
	if err != nil {
		return nil, err
	}

	lot := &model.Lot{
		LotNumber:        num,
		FarmerName:       req.FarmerName,
		Contact:          req.Contact,
		Village:          req.Village,
		Tehsil:           req.Tehsil,
		District:         req.District,
		State:            req.State,
		Chamber:          req.Chamber,
		Floor:            req.Floor,
		Position:         req.Position,
		BagType:          req.BagType,
		Quality:          req.Quality,
		PotatoSize:       req.PotatoSize,
		OriginalSize:     req.OriginalSize,
		RemainingSize:    req.OriginalSize,
		NetWeightKg:      req.NetWeightKg,
		AdvanceDeduction: req.AdvanceDeduction,
		FreightDeduction: req.FreightDeduction,
		OtherDeduction:   req.OtherDeduction,
		SaleStatus:       model.LotAvailable,
		Remarks:          req.Remarks,
	}
	if err := s.lots.Create(ctx, lot); err != nil {
		return nil, err
	}
	return lotToResponse(lot), nil
}

func (s *lotService) GetLot(ctx context.Context, id uuid.UUID) (*dto.LotResponse, error) {
	lot, err := s.lots.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return lotToResponse(lot), nil
}

func (s *lotService) ListLots(ctx context.Context, filter dto.LotFilter) (*dto.LotListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	lots, total, err := s.lots.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LotResponse, 0, len(lots))
	for i := range lots {
		items = append(items, *lotToResponse(&lots[i]))
	}
	return &dto.LotListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// UpdateLot changes non-financial fields only. The full before/after snapshots
// go into lot_edit_history inside the same transaction.
func (s *lotService) UpdateLot(ctx context.Context, id uuid.UUID, editedBy string, req dto.UpdateLotRequest) (*dto.LotResponse, error) {
	var updated *model.Lot
	txErr := runTx(ctx, s.lots.DB(), func(tx *gorm.DB) error {
		lot, err := s.findForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		prev, err := json.Marshal(lot)
		if err != nil {
			return err
		}

		lot.FarmerName = req.FarmerName
		lot.Contact = req.Contact
		lot.Village = req.Village
		lot.Tehsil = req.Tehsil
		lot.District = req.District
		lot.State = req.State
		lot.Chamber = req.Chamber
		lot.Floor = req.Floor
		lot.Position = req.Position
		lot.Remarks = req.Remarks

		next, err := json.Marshal(lot)
		if err != nil {
			return err
		}

		if err := s.lots.UpdateTx(tx, lot); err != nil {
			return err
		}
		if err := s.audit.AppendLotEditTx(tx, &model.LotEditHistory{
			LotID:    lot.ID,
			EditedBy: editedBy,
			Previous: string(prev),
			New:      string(next),
		}); err != nil {
			return err
		}
		updated = lot
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return lotToResponse(updated), nil
}

func (s *lotService) ToggleUpForSale(ctx context.Context, id uuid.UUID, upForSale bool) error {
	return runTx(ctx, s.lots.DB(), func(tx *gorm.DB) error {
		lot, err := s.findForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		if lot.SaleStatus != model.LotAvailable {
			return domainerr.Precondition("lot is already sold")
		}
		lot.UpForSale = upForSale
		return s.lots.UpdateTx(tx, lot)
	})
}

func (s *lotService) RecordPartialSale(ctx context.Context, lotID uuid.UUID, req dto.RecordSaleRequest) (*dto.SaleResponse, error) {
	return s.recordSale(ctx, lotID, req, false)
}

// FinalizeSale sells the entirety of the remaining quantity in one action and
// marks the lot sold.
func (s *lotService) FinalizeSale(ctx context.Context, lotID uuid.UUID, req dto.RecordSaleRequest) (*dto.SaleResponse, error) {
	return s.recordSale(ctx, lotID, req, true)
}

func (s *lotService) recordSale(ctx context.Context, lotID uuid.UUID, req dto.RecordSaleRequest, finalize bool) (*dto.SaleResponse, error) {
	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	var sale *model.Sale
	txErr := runTx(ctx, s.lots.DB(), func(tx *gorm.DB) error {
		lot, err := s.findForUpdate(ctx, tx, lotID)
		if err != nil {
			return err
		}
		if lot.SaleStatus != model.LotAvailable {
			return domainerr.Precondition("lot is already sold")
		}

		qty := req.Quantity
		if finalize {
			qty = lot.RemainingSize
		}
		if qty <= 0 {
			return domainerr.Validation("quantity", "nothing left to sell")
		}

		// Rate components: request overrides fall back to store settings.
		coldCharge := cfg.ColdChargePerBag
		hammali := cfg.HammaliPerBag
		if req.ColdCharge != nil {
			coldCharge = *req.ColdCharge
		}
		if req.Hammali != nil {
			hammali = *req.Hammali
		}
		if req.PricePerBag != nil {
			coldCharge = *req.PricePerBag
			hammali = decimal.Zero
		}
		perQuintal := cfg.PricePerQuintal
		if req.PricePerQuintal != nil {
			perQuintal = *req.PricePerQuintal
		}

		res, err := calc.ComputeCharge(calc.ChargeInput{
			Quantity:              qty,
			OriginalSize:          lot.OriginalSize,
			RemainingSize:         lot.RemainingSize,
			ChargeUnit:            cfg.ChargeUnit,
			ColdCharge:            coldCharge,
			Hammali:               hammali,
			PricePerQuintal:       perQuintal,
			NetWeightKg:           lot.NetWeightKg,
			BaseColdChargesBilled: lot.BaseColdChargesBilled,
		})
		if err != nil {
			return err
		}

		var reqPaid, reqDue decimal.Decimal
		if req.PaidAmount != nil {
			reqPaid = *req.PaidAmount
		}
		if req.DueAmount != nil {
			reqDue = *req.DueAmount
		}
		paid, due, err := calc.SplitCharge(req.PaymentStatus, res.Charge, reqPaid, reqDue)
		if err != nil {
			return err
		}

		deduction := calc.ProportionalEntryDeductions(qty, lot.OriginalSize,
			lot.AdvanceDeduction, lot.FreightDeduction, lot.OtherDeduction)

		saleType := model.SalePartial
		now := time.Now()
		lot.RemainingSize -= qty
		lot.BaseColdChargesBilled = res.BaseColdChargesBilled
		lot.TotalPaidCharge = lot.TotalPaidCharge.Add(paid)
		lot.TotalDueCharge = lot.TotalDueCharge.Add(due)
		if finalize || lot.RemainingSize == 0 {
			saleType = model.SaleFull
			lot.SaleStatus = model.LotSold
			lot.UpForSale = false
			lot.SoldAt = &now
		}

		sale = &model.Sale{
			LotID:             lot.ID,
			LotNumber:         lot.LotNumber,
			FarmerName:        lot.FarmerName,
			Village:           lot.Village,
			Chamber:           lot.Chamber,
			Floor:             lot.Floor,
			Position:          lot.Position,
			BagType:           lot.BagType,
			SaleType:          saleType,
			QuantitySold:      qty,
			ColdCharge:        coldCharge,
			Hammali:           hammali,
			ColdStorageCharge: res.Charge,
			EntryDeduction:    deduction,
			PaymentStatus:     req.PaymentStatus,
			PaidAmount:        paid,
			DueAmount:         due,
			BuyerName:         req.BuyerName,
			ExtraHammaliDue:   req.ExtraHammaliDue,
			ExtraGradingDue:   req.ExtraGradingDue,
			ExtraOtherDue:     req.ExtraOtherDue,
			SoldAt:            now,
		}
		if err := s.sales.CreateTx(tx, sale); err != nil {
			return err
		}
		return s.lots.UpdateTx(tx, lot)
	})
	if txErr != nil {
		return nil, txErr
	}
	return saleToResponse(sale), nil
}

// SeasonReset clears the lot register once everything has left the store.
// Sales and all financial history survive the reset — they carry their own
// snapshots of the lot data.
func (s *lotService) SeasonReset(ctx context.Context) error {
	return runTx(ctx, s.lots.DB(), func(tx *gorm.DB) error {
		inStock, err := s.lots.CountInStockTx(tx)
		if err != nil {
			return err
		}
		if inStock > 0 {
			return domainerr.Preconditionf("%d lots still have bags in storage", inStock)
		}
		return s.lots.DeleteAllTx(tx)
	})
}

// findForUpdate locks the lot row inside the transaction; in unit-test mode
// (nil tx) it falls back to the plain lookup.
func (s *lotService) findForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Lot, error) {
	if tx == nil {
		return s.lots.FindByID(ctx, id)
	}
	return s.lots.FindByIDForUpdate(tx, id)
}

func lotToResponse(l *model.Lot) *dto.LotResponse {
	return &dto.LotResponse{
		ID:              l.ID.String(),
		LotNumber:       l.LotNumber,
		FarmerName:      l.FarmerName,
		Contact:         l.Contact,
		Village:         l.Village,
		Tehsil:          l.Tehsil,
		District:        l.District,
		State:           l.State,
		Chamber:         l.Chamber,
		Floor:           l.Floor,
		Position:        l.Position,
		BagType:         l.BagType,
		Quality:         l.Quality,
		PotatoSize:      l.PotatoSize,
		OriginalSize:    l.OriginalSize,
		RemainingSize:   l.RemainingSize,
		NetWeightKg:     l.NetWeightKg,
		TotalPaidCharge: l.TotalPaidCharge,
		TotalDueCharge:  l.TotalDueCharge,
		SaleStatus:      l.SaleStatus,
		UpForSale:       l.UpForSale,
		Remarks:         l.Remarks,
		CreatedAt:       l.CreatedAt.Format(time.RFC3339),
	}
}

func saleToResponse(s *model.Sale) *dto.SaleResponse {
	lotID := ""
	if s.LotID != uuid.Nil {
		lotID = s.LotID.String()
	}
	return &dto.SaleResponse{
		ID:                s.ID.String(),
		LotID:             lotID,
		LotNumber:         s.LotNumber,
		FarmerName:        s.FarmerName,
		BuyerName:         s.BuyerName,
		SaleType:          s.SaleType,
		QuantitySold:      s.QuantitySold,
		ColdCharge:        s.ColdCharge,
		Hammali:           s.Hammali,
		ColdStorageCharge: s.ColdStorageCharge,
		EntryDeduction:    s.EntryDeduction,
		PaymentStatus:     s.PaymentStatus,
		PaidAmount:        s.PaidAmount,
		DueAmount:         s.DueAmount,
		TransferredOut:    s.TransferredOut,
		DiscountApplied:   s.DiscountApplied,
		IsAdjustment:      s.IsAdjustment,
		BagsExited:        s.BagsExited,
		SoldAt:            s.SoldAt.Format(time.RFC3339),
	}
}
