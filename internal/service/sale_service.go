package service

import (
	"context"
	"encoding/json"

	"coldstore/internal/calc"
	"coldstore/internal/domainerr"
	"coldstore/internal/dto"
	"coldstore/internal/model"
	"coldstore/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SaleService interface {
	GetSale(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error)
	ListSales(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error)
	// CorrectSale fixes payment metadata recorded wrong at sale time. The
	// before/after snapshots go to sale_edit_history; money that already moved
	// (transfers, discounts) is untouchable here.
	CorrectSale(ctx context.Context, id uuid.UUID, editedBy string, req dto.CorrectSaleRequest) (*dto.SaleResponse, error)
	ListSaleEdits(ctx context.Context, saleID uuid.UUID) ([]model.SaleEditHistory, error)
	ListLotEdits(ctx context.Context, lotID uuid.UUID) ([]model.LotEditHistory, error)
}

type saleService struct {
	sales repository.SaleRepository
	lots  repository.LotRepository
	audit repository.AuditRepository
}

func NewSaleService(
	sales repository.SaleRepository,
	lots repository.LotRepository,
	audit repository.AuditRepository,
) SaleService {
	return &saleService{sales: sales, lots: lots, audit: audit}
}

func (s *saleService) GetSale(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error) {
	sale, err := s.sales.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return saleToResponse(sale), nil
}

func (s *saleService) ListSales(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	sales, total, err := s.sales.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		items = append(items, *saleToResponse(&sales[i]))
	}
	return &dto.SaleListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *saleService) CorrectSale(ctx context.Context, id uuid.UUID, editedBy string, req dto.CorrectSaleRequest) (*dto.SaleResponse, error) {
	var updated *model.Sale
	txErr := runTx(ctx, s.sales.DB(), func(tx *gorm.DB) error {
		sale, err := s.findSaleForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		if sale.IsReversed {
			return domainerr.Precondition("sale is reversed")
		}

		prev, err := json.Marshal(sale)
		if err != nil {
			return err
		}

		// The correctable portion is what transfers and discounts have not
		// already claimed.
		residual := sale.ColdStorageCharge.
			Sub(sale.TransferredOut).
			Sub(sale.DiscountApplied)
		var reqPaid, reqDue = sale.PaidAmount, sale.DueAmount
		if req.PaidAmount != nil {
			reqPaid = *req.PaidAmount
		}
		if req.DueAmount != nil {
			reqDue = *req.DueAmount
		}
		paid, due, err := calc.SplitCharge(req.PaymentStatus, residual, reqPaid, reqDue)
		if err != nil {
			return err
		}

		paidDelta := paid.Sub(sale.PaidAmount)
		dueDelta := due.Sub(sale.DueAmount)

		sale.PaymentStatus = req.PaymentStatus
		sale.PaidAmount = paid
		sale.DueAmount = due
		if req.BuyerName != nil {
			sale.BuyerName = *req.BuyerName
		}

		next, err := json.Marshal(sale)
		if err != nil {
			return err
		}

		if err := s.sales.UpdateTx(tx, sale); err != nil {
			return err
		}
		if sale.LotID != uuid.Nil {
			lot, err := s.findLotForUpdate(ctx, tx, sale.LotID)
			if err != nil {
				return err
			}
			lot.TotalPaidCharge = lot.TotalPaidCharge.Add(paidDelta)
			lot.TotalDueCharge = lot.TotalDueCharge.Add(dueDelta)
			if err := s.lots.UpdateTx(tx, lot); err != nil {
				return err
			}
		}
		if err := s.audit.AppendSaleEditTx(tx, &model.SaleEditHistory{
			SaleID:   sale.ID,
			EditedBy: editedBy,
			Previous: string(prev),
			New:      string(next),
		}); err != nil {
			return err
		}
		updated = sale
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return saleToResponse(updated), nil
}

func (s *saleService) ListSaleEdits(ctx context.Context, saleID uuid.UUID) ([]model.SaleEditHistory, error) {
	return s.audit.ListSaleEdits(ctx, saleID)
}

func (s *saleService) ListLotEdits(ctx context.Context, lotID uuid.UUID) ([]model.LotEditHistory, error) {
	return s.audit.ListLotEdits(ctx, lotID)
}

func (s *saleService) findSaleForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Sale, error) {
	if tx == nil {
		return s.sales.FindByID(ctx, id)
	}
	return s.sales.FindByIDForUpdate(tx, id)
}

func (s *saleService) findLotForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Lot, error) {
	if tx == nil {
		return s.lots.FindByID(ctx, id)
	}
	return s.lots.FindByIDForUpdate(tx, id)
}
