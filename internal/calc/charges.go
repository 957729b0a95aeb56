// Package calc holds the pure settlement math: charge computation, payment
// splitting, entry-deduction apportioning and FIFO allocation. Nothing here
// touches storage — every function is a plain computation over its inputs.
package calc

import (
	"coldstore/internal/domainerr"
	"coldstore/internal/model"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ChargeInput carries everything the calculator needs for one sale.
type ChargeInput struct {
	Quantity      int
	OriginalSize  int
	RemainingSize int

	ChargeUnit string // model.ChargePerBag | model.ChargePerQuintal

	ColdCharge decimal.Decimal // per-bag component
	Hammali    decimal.Decimal // per-bag component

	PricePerQuintal decimal.Decimal
	NetWeightKg     *decimal.Decimal

	// BaseColdChargesBilled mirrors the lot flag. When false the charge is
	// computed against the entire remaining quantity so fixed charges are
	// collected exactly once.
	BaseColdChargesBilled bool
}

// ChargeResult is the computed charge plus the flag state after this sale.
type ChargeResult struct {
	Charge decimal.Decimal
	// BilledQuantity is the quantity the charge was computed against — equals
	// RemainingSize on the first (totalRemaining) billing, Quantity afterwards.
	BilledQuantity        int
	BaseColdChargesBilled bool
}

// ComputeCharge applies the configured billing basis.
//
// Per-bag:     charge = qty × (coldCharge + hammali)
// Per-quintal: charge = qty/originalSize × netWeightKg/100 × pricePerQuintal
func ComputeCharge(in ChargeInput) (ChargeResult, error) {
	if in.Quantity <= 0 {
		return ChargeResult{}, domainerr.Validation("quantity", "must be positive")
	}
	if in.Quantity > in.RemainingSize {
		return ChargeResult{}, domainerr.Validationf("quantity",
			"%d exceeds remaining %d", in.Quantity, in.RemainingSize)
	}
	if in.ColdCharge.IsNegative() || in.Hammali.IsNegative() {
		return ChargeResult{}, domainerr.Validation("charge", "components must not be negative")
	}

	billedQty := in.Quantity
	if !in.BaseColdChargesBilled {
		billedQty = in.RemainingSize
	}

	var charge decimal.Decimal
	switch in.ChargeUnit {
	case model.ChargePerQuintal:
		if in.NetWeightKg == nil {
			return ChargeResult{}, domainerr.MissingData("netWeightKg")
		}
		if in.OriginalSize <= 0 {
			return ChargeResult{}, domainerr.Validation("originalSize", "must be positive")
		}
		fraction := decimal.NewFromInt(int64(billedQty)).
			Div(decimal.NewFromInt(int64(in.OriginalSize)))
		charge = fraction.Mul(in.NetWeightKg.Div(hundred)).Mul(in.PricePerQuintal)
	case model.ChargePerBag, "":
		perBag := in.ColdCharge.Add(in.Hammali)
		charge = perBag.Mul(decimal.NewFromInt(int64(billedQty)))
	default:
		return ChargeResult{}, domainerr.Validationf("chargeUnit", "unknown unit %q", in.ChargeUnit)
	}

	return ChargeResult{
		Charge:                charge.Round(2),
		BilledQuantity:        billedQty,
		BaseColdChargesBilled: true,
	}, nil
}

// ProportionalEntryDeductions apportions one-time entry deductions across a
// partial sale in proportion to bags sold:
//
//	qtySold/originalSize × (advance + freight + other)
func ProportionalEntryDeductions(qtySold, originalSize int, advance, freight, other decimal.Decimal) decimal.Decimal {
	if originalSize <= 0 || qtySold <= 0 {
		return decimal.Zero
	}
	total := advance.Add(freight).Add(other)
	return decimal.NewFromInt(int64(qtySold)).
		Div(decimal.NewFromInt(int64(originalSize))).
		Mul(total).
		Round(2)
}

// SplitCharge resolves the paid/due split for a charge from the declared
// payment status. The invariant paid + due == charge holds by construction:
// "paid" and "due" ignore the caller-supplied amounts, "partial" validates
// them.
func SplitCharge(status string, charge, paid, due decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	switch status {
	case model.PaymentPaid:
		return charge, decimal.Zero, nil
	case model.PaymentDue:
		return decimal.Zero, charge, nil
	case model.PaymentPartial:
		if paid.IsNegative() || due.IsNegative() {
			return decimal.Zero, decimal.Zero,
				domainerr.Validation("paidAmount", "split amounts must not be negative")
		}
		if !paid.Add(due).Equal(charge) {
			return decimal.Zero, decimal.Zero,
				domainerr.Validationf("paidAmount", "paid %s + due %s != charge %s",
					paid.String(), due.String(), charge.String())
		}
		return paid, due, nil
	default:
		return decimal.Zero, decimal.Zero,
			domainerr.Validationf("paymentStatus", "unknown status %q", status)
	}
}
