package service

import (
	"context"
	"testing"
	"time"

	"coldstore/internal/domainerr"
	"coldstore/internal/dto"
	"coldstore/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSaleFixture() (SaleService, *stubSaleRepo, *stubLotRepo, *stubAuditRepo) {
	sales := &stubSaleRepo{}
	lots := newStubLotRepo()
	audit := &stubAuditRepo{}
	return NewSaleService(sales, lots, audit), sales, lots, audit
}

func TestCorrectSale_SplitsOnlyTheResidual(t *testing.T) {
	svc, sales, lots, audit := newSaleFixture()
	ctx := context.Background()

	lot := &model.Lot{
		LotNumber: 1001, FarmerName: "Ram Kumar", Chamber: "A", BagType: model.BagSeed,
		OriginalSize: 100, RemainingSize: 60,
		TotalDueCharge: dec("70"), SaleStatus: model.LotAvailable,
	}
	require.NoError(t, lots.Create(ctx, lot))

	// 20 already moved by a transfer and 10 waived: only the remaining 70 is
	// correctable.
	sale := model.Sale{
		ID: uuid.New(), LotID: lot.ID, LotNumber: 1001, FarmerName: "Ram Kumar",
		SaleType: model.SalePartial, QuantitySold: 40,
		ColdStorageCharge: dec("100"),
		TransferredOut:    dec("20"),
		DiscountApplied:   dec("10"),
		DueAmount:         dec("70"),
		PaymentStatus:     model.PaymentDue,
		BuyerName:         "Mohan Traders",
		SoldAt:            time.Now(), CreatedAt: time.Now(),
	}
	sales.sales = append(sales.sales, sale)

	paid, due := dec("30"), dec("40")
	resp, err := svc.CorrectSale(ctx, sale.ID, "admin", dto.CorrectSaleRequest{
		PaymentStatus: model.PaymentPartial,
		PaidAmount:    &paid,
		DueAmount:     &due,
	})
	require.NoError(t, err)

	assert.True(t, resp.PaidAmount.Equal(dec("30")))
	assert.True(t, resp.DueAmount.Equal(dec("40")))

	// Invariant: paid + due + transferred + discount == charge.
	got, err := sales.FindByID(ctx, sale.ID)
	require.NoError(t, err)
	total := got.PaidAmount.Add(got.DueAmount).Add(got.TransferredOut).Add(got.DiscountApplied)
	assert.True(t, total.Equal(got.ColdStorageCharge))

	// Lot running totals move by the correction deltas.
	gotLot, err := lots.FindByID(ctx, lot.ID)
	require.NoError(t, err)
	assert.True(t, gotLot.TotalPaidCharge.Equal(dec("30")))
	assert.True(t, gotLot.TotalDueCharge.Equal(dec("40")))

	edits, err := audit.ListSaleEdits(ctx, sale.ID)
	require.NoError(t, err)
	require.Len(t, edits, 1)
	assert.Equal(t, "admin", edits[0].EditedBy)
	assert.NotEqual(t, edits[0].Previous, edits[0].New)
}

func TestCorrectSale_PartialSplitMustCoverResidual(t *testing.T) {
	svc, sales, _, _ := newSaleFixture()
	ctx := context.Background()

	sale := model.Sale{
		ID: uuid.New(), LotNumber: 1001, FarmerName: "Ram Kumar",
		SaleType: model.SalePartial, QuantitySold: 40,
		ColdStorageCharge: dec("100"), DueAmount: dec("100"),
		PaymentStatus: model.PaymentDue,
		SoldAt:        time.Now(), CreatedAt: time.Now(),
	}
	sales.sales = append(sales.sales, sale)

	paid, due := dec("30"), dec("30")
	_, err := svc.CorrectSale(ctx, sale.ID, "admin", dto.CorrectSaleRequest{
		PaymentStatus: model.PaymentPartial,
		PaidAmount:    &paid,
		DueAmount:     &due,
	})
	var ve *domainerr.ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestCorrectSale_MarkPaidSettlesResidualInFull(t *testing.T) {
	svc, sales, _, _ := newSaleFixture()
	ctx := context.Background()

	sale := model.Sale{
		ID: uuid.New(), LotNumber: 1001, FarmerName: "Ram Kumar",
		SaleType: model.SalePartial, QuantitySold: 40,
		ColdStorageCharge: dec("100"), DueAmount: dec("100"),
		PaymentStatus: model.PaymentDue,
		SoldAt:        time.Now(), CreatedAt: time.Now(),
	}
	sales.sales = append(sales.sales, sale)

	resp, err := svc.CorrectSale(ctx, sale.ID, "admin", dto.CorrectSaleRequest{
		PaymentStatus: model.PaymentPaid,
	})
	require.NoError(t, err)
	assert.True(t, resp.PaidAmount.Equal(dec("100")))
	assert.True(t, resp.DueAmount.Equal(decimal.Zero))
	assert.Equal(t, model.PaymentPaid, resp.PaymentStatus)
}

func TestCorrectSale_ReversedSaleIsImmutable(t *testing.T) {
	svc, sales, _, _ := newSaleFixture()
	ctx := context.Background()

	sale := model.Sale{
		ID: uuid.New(), LotNumber: 1001, FarmerName: "Ram Kumar",
		SaleType: model.SaleAdjustment, IsAdjustment: true, IsReversed: true,
		ColdStorageCharge: dec("100"),
		PaymentStatus:     model.PaymentDue,
		SoldAt:            time.Now(), CreatedAt: time.Now(),
	}
	sales.sales = append(sales.sales, sale)

	_, err := svc.CorrectSale(ctx, sale.ID, "admin", dto.CorrectSaleRequest{
		PaymentStatus: model.PaymentPaid,
	})
	var pe *domainerr.PreconditionError
	require.ErrorAs(t, err, &pe)
}

func TestCorrectSale_CanReassignBuyer(t *testing.T) {
	svc, sales, _, _ := newSaleFixture()
	ctx := context.Background()

	sale := model.Sale{
		ID: uuid.New(), LotNumber: 1001, FarmerName: "Ram Kumar",
		SaleType: model.SalePartial, QuantitySold: 40,
		ColdStorageCharge: dec("100"), DueAmount: dec("100"),
		PaymentStatus: model.PaymentDue, BuyerName: "Mohan Traders",
		SoldAt:        time.Now(), CreatedAt: time.Now(),
	}
	sales.sales = append(sales.sales, sale)

	buyer := "Gupta & Sons"
	resp, err := svc.CorrectSale(ctx, sale.ID, "admin", dto.CorrectSaleRequest{
		PaymentStatus: model.PaymentDue,
		BuyerName:     &buyer,
	})
	require.NoError(t, err)
	assert.Equal(t, "Gupta & Sons", resp.BuyerName)
}
