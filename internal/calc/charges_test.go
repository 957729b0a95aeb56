package calc

import (
	"testing"

	"coldstore/internal/domainerr"
	"coldstore/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestComputeCharge_PerBag(t *testing.T) {
	res, err := ComputeCharge(ChargeInput{
		Quantity:              4,
		OriginalSize:          20,
		RemainingSize:         10,
		ChargeUnit:            model.ChargePerBag,
		ColdCharge:            dec("90"),
		Hammali:               dec("10"),
		BaseColdChargesBilled: true,
	})
	require.NoError(t, err)
	assert.True(t, res.Charge.Equal(dec("400")), "got %s", res.Charge)
	assert.Equal(t, 4, res.BilledQuantity)
}

func TestComputeCharge_TotalRemainingBasis(t *testing.T) {
	// Lot never billed base charges: selling 3 of 10 remaining charges all 10.
	res, err := ComputeCharge(ChargeInput{
		Quantity:              3,
		OriginalSize:          10,
		RemainingSize:         10,
		ChargeUnit:            model.ChargePerBag,
		ColdCharge:            dec("100"),
		Hammali:               dec("0"),
		BaseColdChargesBilled: false,
	})
	require.NoError(t, err)
	assert.True(t, res.Charge.Equal(dec("1000")), "got %s", res.Charge)
	assert.Equal(t, 10, res.BilledQuantity)
	assert.True(t, res.BaseColdChargesBilled)

	// Subsequent sale of 2 charges only for those 2.
	res2, err := ComputeCharge(ChargeInput{
		Quantity:              2,
		OriginalSize:          10,
		RemainingSize:         7,
		ChargeUnit:            model.ChargePerBag,
		ColdCharge:            dec("100"),
		Hammali:               dec("0"),
		BaseColdChargesBilled: res.BaseColdChargesBilled,
	})
	require.NoError(t, err)
	assert.True(t, res2.Charge.Equal(dec("200")), "got %s", res2.Charge)
	assert.Equal(t, 2, res2.BilledQuantity)
}

func TestComputeCharge_PerQuintal(t *testing.T) {
	w := dec("2000") // kg
	res, err := ComputeCharge(ChargeInput{
		Quantity:              5,
		OriginalSize:          20,
		RemainingSize:         20,
		ChargeUnit:            model.ChargePerQuintal,
		PricePerQuintal:       dec("300"),
		NetWeightKg:           &w,
		BaseColdChargesBilled: true,
	})
	require.NoError(t, err)
	// 5/20 × 2000/100 × 300 = 1500
	assert.True(t, res.Charge.Equal(dec("1500")), "got %s", res.Charge)
}

func TestComputeCharge_PerQuintalWithoutWeight(t *testing.T) {
	_, err := ComputeCharge(ChargeInput{
		Quantity:              1,
		OriginalSize:          10,
		RemainingSize:         10,
		ChargeUnit:            model.ChargePerQuintal,
		PricePerQuintal:       dec("300"),
		BaseColdChargesBilled: true,
	})
	var mde *domainerr.MissingDataError
	require.ErrorAs(t, err, &mde)
	assert.Equal(t, "netWeightKg", mde.Field)
}

func TestComputeCharge_QuantityExceedsRemaining(t *testing.T) {
	_, err := ComputeCharge(ChargeInput{
		Quantity:              11,
		OriginalSize:          20,
		RemainingSize:         10,
		ChargeUnit:            model.ChargePerBag,
		ColdCharge:            dec("1"),
		BaseColdChargesBilled: true,
	})
	var ve *domainerr.ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestProportionalEntryDeductions(t *testing.T) {
	got := ProportionalEntryDeductions(5, 20, dec("400"), dec("200"), dec("0"))
	assert.True(t, got.Equal(dec("150")), "got %s", got)
}

func TestProportionalEntryDeductions_ZeroLot(t *testing.T) {
	assert.True(t, ProportionalEntryDeductions(5, 0, dec("400"), dec("200"), dec("0")).IsZero())
}

func TestSplitCharge(t *testing.T) {
	charge := dec("500")

	paid, due, err := SplitCharge(model.PaymentPaid, charge, decimal.Zero, decimal.Zero)
	require.NoError(t, err)
	assert.True(t, paid.Equal(charge))
	assert.True(t, due.IsZero())

	paid, due, err = SplitCharge(model.PaymentDue, charge, decimal.Zero, decimal.Zero)
	require.NoError(t, err)
	assert.True(t, paid.IsZero())
	assert.True(t, due.Equal(charge))

	paid, due, err = SplitCharge(model.PaymentPartial, charge, dec("300"), dec("200"))
	require.NoError(t, err)
	assert.True(t, paid.Add(due).Equal(charge))
}

func TestSplitCharge_PartialMismatch(t *testing.T) {
	_, _, err := SplitCharge(model.PaymentPartial, dec("500"), dec("300"), dec("100"))
	var ve *domainerr.ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestSplitCharge_UnknownStatus(t *testing.T) {
	_, _, err := SplitCharge("settled", dec("500"), decimal.Zero, decimal.Zero)
	var ve *domainerr.ValidationError
	require.ErrorAs(t, err, &ve)
}
