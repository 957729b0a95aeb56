package calc

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocateFIFO_OldestFirst(t *testing.T) {
	t0 := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	saleA := uuid.New()
	saleB := uuid.New()

	// Dues of 100 (earlier sale A) and 50 (later sale B), receipt of 120:
	// A is settled in full, the remaining 20 goes to B.
	res := AllocateFIFO(dec("120"), []OutstandingDue{
		{SaleID: saleB, SoldAt: t0.Add(24 * time.Hour), Due: dec("50")},
		{SaleID: saleA, SoldAt: t0, Due: dec("100")},
	})

	require.Len(t, res.Allocations, 2)
	assert.Equal(t, saleA, res.Allocations[0].SaleID)
	assert.True(t, res.Allocations[0].Amount.Equal(dec("100")))
	assert.Equal(t, saleB, res.Allocations[1].SaleID)
	assert.True(t, res.Allocations[1].Amount.Equal(dec("20")))
	assert.True(t, res.Applied.Equal(dec("120")))
	assert.True(t, res.Unapplied.IsZero())
}

func TestAllocateFIFO_Overpayment(t *testing.T) {
	res := AllocateFIFO(dec("200"), []OutstandingDue{
		{SaleID: uuid.New(), SoldAt: time.Now(), Due: dec("150")},
	})
	assert.True(t, res.Applied.Equal(dec("150")))
	assert.True(t, res.Unapplied.Equal(dec("50")))
	assert.True(t, res.Applied.Add(res.Unapplied).Equal(dec("200")))
}

func TestAllocateFIFO_NoDues(t *testing.T) {
	res := AllocateFIFO(dec("75"), nil)
	assert.Empty(t, res.Allocations)
	assert.True(t, res.Applied.IsZero())
	assert.True(t, res.Unapplied.Equal(dec("75")))
}

func TestAllocateFIFO_SkipsSettledSales(t *testing.T) {
	open := uuid.New()
	res := AllocateFIFO(dec("40"), []OutstandingDue{
		{SaleID: uuid.New(), SoldAt: time.Now().Add(-time.Hour), Due: decimal.Zero},
		{SaleID: open, SoldAt: time.Now(), Due: dec("40")},
	})
	require.Len(t, res.Allocations, 1)
	assert.Equal(t, open, res.Allocations[0].SaleID)
}
