package service

import (
	"context"
	"time"

	"coldstore/internal/domainerr"
	"coldstore/internal/dto"
	"coldstore/internal/infra"
	"coldstore/internal/model"
	"coldstore/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type ExitService interface {
	// RecordExit registers bags physically leaving the store against a sale.
	// Exit is independent of payment: unpaid buyers can still take delivery.
	RecordExit(ctx context.Context, saleID uuid.UUID, req dto.RecordExitRequest) (*dto.ExitResponse, error)
	ListExits(ctx context.Context, saleID uuid.UUID) ([]dto.ExitResponse, error)
}

type exitService struct {
	exits    repository.ExitRepository
	sales    repository.SaleRepository
	settings repository.SettingsRepository
	seq      Sequencer
	pdfPath  string
}

func NewExitService(
	exits repository.ExitRepository,
	sales repository.SaleRepository,
	settings repository.SettingsRepository,
	seq Sequencer,
	pdfPath string,
) ExitService {
	return &exitService{exits: exits, sales: sales, settings: settings, seq: seq, pdfPath: pdfPath}
}

func (s *exitService) RecordExit(ctx context.Context, saleID uuid.UUID, req dto.RecordExitRequest) (*dto.ExitResponse, error) {
	bill, err := s.seq.Next(ctx)
	if err != nil {
		return nil, err
	}

	var (
		exit *model.ExitHistory
		sale *model.Sale
	)
	txErr := runTx(ctx, s.exits.DB(), func(tx *gorm.DB) error {
		var err error
		if tx == nil {
			sale, err = s.sales.FindByID(ctx, saleID)
		} else {
			sale, err = s.sales.FindByIDForUpdate(tx, saleID)
		}
		if err != nil {
			return err
		}
		if sale.IsReversed {
			return domainerr.Precondition("sale is reversed")
		}

		remaining := sale.QuantitySold - sale.BagsExited
		if req.BagsExited > remaining {
			return domainerr.Validationf("bags_exited",
				"%d exceeds the %d bags still inside", req.BagsExited, remaining)
		}

		sale.BagsExited += req.BagsExited
		exit = &model.ExitHistory{
			SaleID:     sale.ID,
			BillNumber: bill,
			BagsExited: req.BagsExited,
		}
		if err := s.exits.CreateTx(tx, exit); err != nil {
			return err
		}
		return s.sales.UpdateTx(tx, sale)
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := exitToResponse(exit)

	// Gate pass generation happens after commit: a PDF failure must not void
	// the recorded exit.
	if s.pdfPath != "" {
		cfg, err := s.settings.Get(ctx)
		storeName := "Cold Storage"
		if err == nil {
			storeName = cfg.StoreName
		}
		path, err := infra.GenerateGatePass(storeName, sale, exit, s.pdfPath)
		if err != nil {
			log.Error().Err(err).Str("bill_number", exit.BillNumber).Msg("gate pass generation failed")
		} else {
			resp.GatePassPath = path
		}
	}
	return resp, nil
}

func (s *exitService) ListExits(ctx context.Context, saleID uuid.UUID) ([]dto.ExitResponse, error) {
	exits, err := s.exits.ListBySale(ctx, saleID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExitResponse, 0, len(exits))
	for i := range exits {
		out = append(out, *exitToResponse(&exits[i]))
	}
	return out, nil
}

func exitToResponse(e *model.ExitHistory) *dto.ExitResponse {
	return &dto.ExitResponse{
		ID:         e.ID.String(),
		SaleID:     e.SaleID.String(),
		BillNumber: e.BillNumber,
		BagsExited: e.BagsExited,
		IsReversed: e.IsReversed,
		CreatedAt:  e.CreatedAt.Format(time.RFC3339),
	}
}
