package calc

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OutstandingDue is one sale's unpaid balance, as seen by the allocator.
type OutstandingDue struct {
	SaleID uuid.UUID
	SoldAt time.Time
	Due    decimal.Decimal
}

// Allocation is the slice of a receipt applied to one sale.
type Allocation struct {
	SaleID uuid.UUID
	Amount decimal.Decimal
}

// AllocationResult splits a receipt into per-sale allocations and the
// unapplied remainder. Applied + Unapplied always equals the input amount.
type AllocationResult struct {
	Allocations []Allocation
	Applied     decimal.Decimal
	Unapplied   decimal.Decimal
}

// AllocateFIFO applies amount against dues oldest-first (by SoldAt, SaleID as
// tiebreaker for a stable order). Dues that are zero or negative are skipped.
func AllocateFIFO(amount decimal.Decimal, dues []OutstandingDue) AllocationResult {
	sorted := make([]OutstandingDue, len(dues))
	copy(sorted, dues)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].SoldAt.Equal(sorted[j].SoldAt) {
			return sorted[i].SaleID.String() < sorted[j].SaleID.String()
		}
		return sorted[i].SoldAt.Before(sorted[j].SoldAt)
	})

	res := AllocationResult{Applied: decimal.Zero, Unapplied: decimal.Zero}
	remaining := amount
	for _, d := range sorted {
		if remaining.IsZero() || remaining.IsNegative() {
			break
		}
		if !d.Due.IsPositive() {
			continue
		}
		take := decimal.Min(remaining, d.Due)
		res.Allocations = append(res.Allocations, Allocation{SaleID: d.SaleID, Amount: take})
		res.Applied = res.Applied.Add(take)
		remaining = remaining.Sub(take)
	}
	res.Unapplied = remaining
	return res
}
