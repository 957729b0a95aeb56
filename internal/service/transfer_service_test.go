package service

import (
	"context"
	"testing"
	"time"

	"coldstore/internal/domainerr"
	"coldstore/internal/dto"
	"coldstore/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTransferFixture() (TransferService, *stubTransferRepo, *stubDiscountRepo, *stubSaleRepo) {
	transfers := &stubTransferRepo{}
	discounts := &stubDiscountRepo{}
	sales := &stubSaleRepo{}
	svc := NewTransferService(transfers, discounts, sales, &stubSequencer{})
	return svc, transfers, discounts, sales
}

func seedSelfSale(sales *stubSaleRepo, farmer, due string, soldAt time.Time) uuid.UUID {
	s := model.Sale{
		ID:                uuid.New(),
		LotNumber:         1001,
		FarmerName:        farmer,
		SaleType:          model.SalePartial,
		QuantitySold:      10,
		ColdStorageCharge: dec(due),
		DueAmount:         dec(due),
		PaymentStatus:     model.PaymentDue,
		SoldAt:            soldAt,
		CreatedAt:         soldAt,
	}
	sales.sales = append(sales.sales, s)
	return s.ID
}

func TestBuyerToBuyer_MovesDueOldestFirst(t *testing.T) {
	svc, transfers, _, sales := newTransferFixture()
	ctx := context.Background()
	t0 := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	older := seedDueSale(sales, "Mohan Traders", "100", t0, uuid.Nil)
	newer := seedDueSale(sales, "Mohan Traders", "80", t0.Add(time.Hour), uuid.Nil)

	resp, err := svc.BuyerToBuyer(ctx, dto.BuyerTransferRequest{
		FromBuyer: "Mohan Traders",
		ToBuyer:   "Gupta & Sons",
		Amount:    dec("120"),
	})
	require.NoError(t, err)
	assert.True(t, resp.Amount.Equal(dec("120")))
	assert.NotEmpty(t, resp.TransferGroupID)

	// Oldest sale drained first, the rest taken from the next one.
	first, err := sales.FindByID(ctx, older)
	require.NoError(t, err)
	assert.True(t, first.DueAmount.IsZero())
	assert.True(t, first.TransferredOut.Equal(dec("100")))
	assert.Equal(t, model.PaymentPaid, first.PaymentStatus)
	assert.Equal(t, "Gupta & Sons", first.TransferredTo)

	second, err := sales.FindByID(ctx, newer)
	require.NoError(t, err)
	assert.True(t, second.DueAmount.Equal(dec("60")))
	assert.True(t, second.TransferredOut.Equal(dec("20")))
	assert.Equal(t, model.PaymentPartial, second.PaymentStatus)

	// Credit leg: an adjustment sale owed by the recipient, same group.
	var credit *model.Sale
	for i := range sales.sales {
		if sales.sales[i].IsAdjustment {
			credit = &sales.sales[i]
		}
	}
	require.NotNil(t, credit)
	assert.Equal(t, "Gupta & Sons", credit.BuyerName)
	assert.Equal(t, model.SaleAdjustment, credit.SaleType)
	assert.True(t, credit.DueAmount.Equal(dec("120")))
	assert.Equal(t, uuid.Nil, credit.LotID)
	require.NotNil(t, credit.TransferGroupID)
	assert.Equal(t, resp.TransferGroupID, credit.TransferGroupID.String())

	require.Len(t, transfers.buyer, 1)
	row := transfers.buyer[0]
	assert.True(t, row.FromDueBalanceAfter.Equal(dec("60")))
	assert.True(t, row.ToDueBalanceAfter.Equal(dec("120")))
	assert.Equal(t, credit.ID, row.CreditSaleID)

	// One leg per drained sale, recording the exact amount taken.
	require.Len(t, transfers.legs, 2)
	assert.Equal(t, older, transfers.legs[0].SaleID)
	assert.True(t, transfers.legs[0].Amount.Equal(dec("100")))
	assert.Equal(t, newer, transfers.legs[1].SaleID)
	assert.True(t, transfers.legs[1].Amount.Equal(dec("20")))
	for _, leg := range transfers.legs {
		assert.Equal(t, resp.TransferGroupID, leg.TransferGroupID.String())
	}
}

func TestBuyerToBuyer_CannotExceedOutstandingDue(t *testing.T) {
	svc, _, _, sales := newTransferFixture()
	seedDueSale(sales, "Mohan Traders", "100", time.Now(), uuid.Nil)

	_, err := svc.BuyerToBuyer(context.Background(), dto.BuyerTransferRequest{
		FromBuyer: "Mohan Traders",
		ToBuyer:   "Gupta & Sons",
		Amount:    dec("150"),
	})
	var pe *domainerr.PreconditionError
	require.ErrorAs(t, err, &pe)
}

func TestBuyerToBuyer_RejectsSameParty(t *testing.T) {
	svc, _, _, _ := newTransferFixture()

	_, err := svc.BuyerToBuyer(context.Background(), dto.BuyerTransferRequest{
		FromBuyer: "Mohan Traders",
		ToBuyer:   "Mohan Traders",
		Amount:    dec("10"),
	})
	var ve *domainerr.ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestFarmerToBuyer_MovesSelfSalesAndReceivables(t *testing.T) {
	svc, transfers, _, sales := newTransferFixture()
	ctx := context.Background()
	selfSale := seedSelfSale(sales, "Ram Kumar", "70", time.Now())

	resp, err := svc.FarmerToBuyer(ctx, dto.FarmerTransferRequest{
		FarmerName:             "Ram Kumar",
		ToBuyer:                "Gupta & Sons",
		ReceivablesTransferred: dec("30"),
		SelfSalesTransferred:   dec("70"),
		TotalAmount:            dec("100"),
	})
	require.NoError(t, err)
	assert.True(t, resp.Amount.Equal(dec("100")))
	assert.True(t, resp.DueBalanceAfter.Equal(dec("100")))

	moved, err := sales.FindByID(ctx, selfSale)
	require.NoError(t, err)
	assert.True(t, moved.DueAmount.IsZero())
	assert.True(t, moved.TransferredOut.Equal(dec("70")))

	var credit *model.Sale
	for i := range sales.sales {
		if sales.sales[i].IsAdjustment {
			credit = &sales.sales[i]
		}
	}
	require.NotNil(t, credit)
	assert.Equal(t, "Gupta & Sons", credit.BuyerName)
	assert.Equal(t, "Ram Kumar", credit.TransferredFrom)
	assert.True(t, credit.DueAmount.Equal(dec("100")))

	require.Len(t, transfers.farmer, 1)
	assert.True(t, transfers.farmer[0].TotalAmount.Equal(dec("100")))
	assert.Equal(t, credit.ID, transfers.farmer[0].CreditSaleID)

	// Only the self-sales portion drains sale rows, so only it leaves legs.
	require.Len(t, transfers.legs, 1)
	assert.Equal(t, selfSale, transfers.legs[0].SaleID)
	assert.True(t, transfers.legs[0].Amount.Equal(dec("70")))
}

func TestFarmerToBuyer_ComponentsMustSumToTotal(t *testing.T) {
	svc, _, _, _ := newTransferFixture()

	_, err := svc.FarmerToBuyer(context.Background(), dto.FarmerTransferRequest{
		FarmerName:             "Ram Kumar",
		ToBuyer:                "Gupta & Sons",
		ReceivablesTransferred: dec("30"),
		SelfSalesTransferred:   dec("60"),
		TotalAmount:            dec("100"),
	})
	var ve *domainerr.ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestFarmerToBuyer_SelfSalesCannotExceedOpenDues(t *testing.T) {
	svc, _, _, sales := newTransferFixture()
	seedSelfSale(sales, "Ram Kumar", "40", time.Now())

	_, err := svc.FarmerToBuyer(context.Background(), dto.FarmerTransferRequest{
		FarmerName:           "Ram Kumar",
		ToBuyer:              "Gupta & Sons",
		SelfSalesTransferred: dec("70"),
		TotalAmount:          dec("70"),
	})
	var pe *domainerr.PreconditionError
	require.ErrorAs(t, err, &pe)
}

func TestRecordDiscount_SpreadsOldestDueFirst(t *testing.T) {
	svc, _, discounts, sales := newTransferFixture()
	ctx := context.Background()
	t0 := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	older := seedDueSale(sales, "Mohan Traders", "100", t0, uuid.Nil)
	newer := seedDueSale(sales, "Mohan Traders", "50", t0.Add(time.Hour), uuid.Nil)

	resp, err := svc.RecordDiscount(ctx, dto.RecordDiscountRequest{
		FarmerName: "Ram Kumar",
		Amount:     dec("120"),
		Allocations: []dto.DiscountAllocationRequest{
			{BuyerName: "Mohan Traders", Amount: dec("120")},
		},
	})
	require.NoError(t, err)
	assert.True(t, resp.Amount.Equal(dec("120")))

	first, err := sales.FindByID(ctx, older)
	require.NoError(t, err)
	assert.True(t, first.DueAmount.IsZero())
	assert.True(t, first.DiscountApplied.Equal(dec("100")))

	second, err := sales.FindByID(ctx, newer)
	require.NoError(t, err)
	assert.True(t, second.DueAmount.Equal(dec("30")))
	assert.True(t, second.DiscountApplied.Equal(dec("20")))

	require.Len(t, discounts.discounts, 1)
	require.Len(t, discounts.allocs, 1)
	assert.Equal(t, "Mohan Traders", discounts.allocs[0].BuyerName)
}

func TestRecordDiscount_AllocationsMustSumToAmount(t *testing.T) {
	svc, _, _, _ := newTransferFixture()

	_, err := svc.RecordDiscount(context.Background(), dto.RecordDiscountRequest{
		FarmerName: "Ram Kumar",
		Amount:     dec("100"),
		Allocations: []dto.DiscountAllocationRequest{
			{BuyerName: "Mohan Traders", Amount: dec("60")},
		},
	})
	var ve *domainerr.ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestRecordDiscount_CannotExceedBuyerOutstanding(t *testing.T) {
	svc, _, _, sales := newTransferFixture()
	seedDueSale(sales, "Mohan Traders", "50", time.Now(), uuid.Nil)

	_, err := svc.RecordDiscount(context.Background(), dto.RecordDiscountRequest{
		FarmerName: "Ram Kumar",
		Amount:     dec("80"),
		Allocations: []dto.DiscountAllocationRequest{
			{BuyerName: "Mohan Traders", Amount: dec("80")},
		},
	})
	var pe *domainerr.PreconditionError
	require.ErrorAs(t, err, &pe)
}
