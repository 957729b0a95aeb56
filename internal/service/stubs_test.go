package service

// In-memory repository stubs. runTx runs the closure with a nil *gorm.DB when
// the repo reports no database, so the services exercise their full
// transactional logic against these maps and slices.

import (
	"context"
	"fmt"
	"sort"
	"time"

	"coldstore/internal/dto"
	"coldstore/internal/model"
	"coldstore/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	_ repository.LotRepository      = (*stubLotRepo)(nil)
	_ repository.SaleRepository     = (*stubSaleRepo)(nil)
	_ repository.AuditRepository    = (*stubAuditRepo)(nil)
	_ repository.SettingsRepository = (*stubSettingsRepo)(nil)
	_ repository.ReceiptRepository  = (*stubReceiptRepo)(nil)
	_ repository.MoneyRepository    = (*stubMoneyRepo)(nil)
	_ repository.TransferRepository = (*stubTransferRepo)(nil)
	_ repository.DiscountRepository = (*stubDiscountRepo)(nil)
	_ repository.RegisterRepository = (*stubRegisterRepo)(nil)
	_ repository.ExitRepository     = (*stubExitRepo)(nil)
	_ Sequencer                     = (*stubSequencer)(nil)
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

type stubSequencer struct{ n int }

func (s *stubSequencer) Next(context.Context) (string, error) {
	s.n++
	return fmt.Sprintf("CF20250901%03d", s.n), nil
}

// ─── Lots ────────────────────────────────────────────────────────────────────

type stubLotRepo struct {
	lots map[uuid.UUID]model.Lot
}

func newStubLotRepo() *stubLotRepo { return &stubLotRepo{lots: map[uuid.UUID]model.Lot{}} }

func (r *stubLotRepo) DB() *gorm.DB { return nil }

func (r *stubLotRepo) Create(_ context.Context, l *model.Lot) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now()
	}
	r.lots[l.ID] = *l
	return nil
}

func (r *stubLotRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Lot, error) {
	l, ok := r.lots[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := l
	return &cp, nil
}

func (r *stubLotRepo) FindByIDForUpdate(_ *gorm.DB, id uuid.UUID) (*model.Lot, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubLotRepo) UpdateTx(_ *gorm.DB, l *model.Lot) error {
	if _, ok := r.lots[l.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.lots[l.ID] = *l
	return nil
}

func (r *stubLotRepo) List(_ context.Context, _ dto.LotFilter) ([]model.Lot, int64, error) {
	out := make([]model.Lot, 0, len(r.lots))
	for _, l := range r.lots {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LotNumber < out[j].LotNumber })
	return out, int64(len(out)), nil
}

func (r *stubLotRepo) CountInStockTx(*gorm.DB) (int64, error) {
	var n int64
	for _, l := range r.lots {
		if l.RemainingSize > 0 {
			n++
		}
	}
	return n, nil
}

func (r *stubLotRepo) DeleteAllTx(*gorm.DB) error {
	r.lots = map[uuid.UUID]model.Lot{}
	return nil
}

func (r *stubLotRepo) NextLotNumber(_ context.Context, starting int) (int, error) {
	max := 0
	for _, l := range r.lots {
		if l.LotNumber > max {
			max = l.LotNumber
		}
	}
	if max < starting {
		return starting, nil
	}
	return max + 1, nil
}

// ─── Sales ───────────────────────────────────────────────────────────────────

type stubSaleRepo struct {
	sales []model.Sale
}

func (r *stubSaleRepo) DB() *gorm.DB { return nil }

func (r *stubSaleRepo) CreateTx(_ *gorm.DB, s *model.Sale) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.SoldAt.IsZero() {
		s.SoldAt = time.Now()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = s.SoldAt
	}
	r.sales = append(r.sales, *s)
	return nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Sale, error) {
	for i := range r.sales {
		if r.sales[i].ID == id {
			cp := r.sales[i]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubSaleRepo) FindByIDForUpdate(_ *gorm.DB, id uuid.UUID) (*model.Sale, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubSaleRepo) UpdateTx(_ *gorm.DB, s *model.Sale) error {
	for i := range r.sales {
		if r.sales[i].ID == s.ID {
			r.sales[i] = *s
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubSaleRepo) List(_ context.Context, _ dto.SaleFilter) ([]model.Sale, int64, error) {
	out := append([]model.Sale(nil), r.sales...)
	return out, int64(len(out)), nil
}

func (r *stubSaleRepo) OutstandingByBuyer(_ *gorm.DB, buyer string) ([]model.Sale, error) {
	var out []model.Sale
	for _, s := range r.sales {
		if s.BuyerName == buyer && s.DueAmount.IsPositive() && !s.IsReversed {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SoldAt.Before(out[j].SoldAt) })
	return out, nil
}

func (r *stubSaleRepo) OutstandingSelfSales(_ *gorm.DB, farmer string) ([]model.Sale, error) {
	var out []model.Sale
	for _, s := range r.sales {
		if s.FarmerName == farmer && s.BuyerName == "" && s.DueAmount.IsPositive() && !s.IsReversed {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SoldAt.Before(out[j].SoldAt) })
	return out, nil
}

func (r *stubSaleRepo) DiscountedByBuyer(_ *gorm.DB, buyer string) ([]model.Sale, error) {
	var out []model.Sale
	for _, s := range r.sales {
		if s.BuyerName == buyer && s.DiscountApplied.IsPositive() && !s.IsReversed {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SoldAt.After(out[j].SoldAt) })
	return out, nil
}

func (r *stubSaleRepo) SumDueByBuyer(_ context.Context, buyer string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, s := range r.sales {
		if s.BuyerName == buyer && !s.IsReversed {
			sum = sum.Add(s.DueAmount)
		}
	}
	return sum, nil
}

func (r *stubSaleRepo) SumDueAll(context.Context) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, s := range r.sales {
		if !s.IsReversed {
			sum = sum.Add(s.DueAmount)
		}
	}
	return sum, nil
}

func (r *stubSaleRepo) SumChargedByBuyer(_ context.Context, buyer string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, s := range r.sales {
		if s.BuyerName == buyer && !s.IsReversed {
			sum = sum.Add(s.ColdStorageCharge)
		}
	}
	return sum, nil
}

func (r *stubSaleRepo) SumPaidBetween(_ context.Context, from, to time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, s := range r.sales {
		if !s.IsReversed && !s.SoldAt.Before(from) && s.SoldAt.Before(to) {
			sum = sum.Add(s.PaidAmount)
		}
	}
	return sum, nil
}

func (r *stubSaleRepo) SumExtrasBetween(_ context.Context, from, to time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, s := range r.sales {
		if !s.IsReversed && !s.SoldAt.Before(from) && s.SoldAt.Before(to) {
			sum = sum.Add(s.ExtraHammaliDue).Add(s.ExtraGradingDue).Add(s.ExtraOtherDue)
		}
	}
	return sum, nil
}

// ─── Audit ───────────────────────────────────────────────────────────────────

type stubAuditRepo struct {
	lotEdits  []model.LotEditHistory
	saleEdits []model.SaleEditHistory
}

func (r *stubAuditRepo) AppendLotEditTx(_ *gorm.DB, h *model.LotEditHistory) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	r.lotEdits = append(r.lotEdits, *h)
	return nil
}

func (r *stubAuditRepo) AppendSaleEditTx(_ *gorm.DB, h *model.SaleEditHistory) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	r.saleEdits = append(r.saleEdits, *h)
	return nil
}

func (r *stubAuditRepo) ListLotEdits(_ context.Context, lotID uuid.UUID) ([]model.LotEditHistory, error) {
	var out []model.LotEditHistory
	for _, h := range r.lotEdits {
		if h.LotID == lotID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (r *stubAuditRepo) ListSaleEdits(_ context.Context, saleID uuid.UUID) ([]model.SaleEditHistory, error) {
	var out []model.SaleEditHistory
	for _, h := range r.saleEdits {
		if h.SaleID == saleID {
			out = append(out, h)
		}
	}
	return out, nil
}

// ─── Settings ────────────────────────────────────────────────────────────────

type stubSettingsRepo struct{ s model.Settings }

func (r *stubSettingsRepo) Get(context.Context) (*model.Settings, error) {
	cp := r.s
	return &cp, nil
}

func (r *stubSettingsRepo) Update(_ context.Context, s *model.Settings) error {
	r.s = *s
	return nil
}

// ─── Receipts ────────────────────────────────────────────────────────────────

type stubReceiptRepo struct {
	receipts []model.CashReceipt
	allocs   []model.ReceiptAllocation
}

func (r *stubReceiptRepo) DB() *gorm.DB { return nil }

func (r *stubReceiptRepo) CreateTx(_ *gorm.DB, rc *model.CashReceipt) error {
	if rc.ID == uuid.Nil {
		rc.ID = uuid.New()
	}
	if rc.CreatedAt.IsZero() {
		rc.CreatedAt = time.Now()
	}
	cp := *rc
	cp.Allocations = nil
	r.receipts = append(r.receipts, cp)
	return nil
}

func (r *stubReceiptRepo) CreateAllocationTx(_ *gorm.DB, a *model.ReceiptAllocation) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.allocs = append(r.allocs, *a)
	return nil
}

func (r *stubReceiptRepo) FindByID(_ context.Context, id uuid.UUID) (*model.CashReceipt, error) {
	for i := range r.receipts {
		if r.receipts[i].ID == id {
			cp := r.receipts[i]
			for _, a := range r.allocs {
				if a.ReceiptID == id {
					cp.Allocations = append(cp.Allocations, a)
				}
			}
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubReceiptRepo) FindByIDForUpdate(_ *gorm.DB, id uuid.UUID) (*model.CashReceipt, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubReceiptRepo) UpdateTx(_ *gorm.DB, rc *model.CashReceipt) error {
	for i := range r.receipts {
		if r.receipts[i].ID == rc.ID {
			cp := *rc
			cp.Allocations = nil
			r.receipts[i] = cp
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubReceiptRepo) ListByBuyer(_ context.Context, buyer string, limit int) ([]model.CashReceipt, error) {
	var out []model.CashReceipt
	for _, rc := range r.receipts {
		if rc.BuyerName == buyer {
			out = append(out, rc)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubReceiptRepo) SumAppliedByBuyer(_ context.Context, buyer string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, rc := range r.receipts {
		if rc.BuyerName == buyer && !rc.IsReversed {
			sum = sum.Add(rc.AppliedAmount)
		}
	}
	return sum, nil
}

func (r *stubReceiptRepo) SumUnappliedByBuyer(_ context.Context, buyer string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, rc := range r.receipts {
		if rc.BuyerName == buyer && !rc.IsReversed {
			sum = sum.Add(rc.UnappliedAmount)
		}
	}
	return sum, nil
}

func (r *stubReceiptRepo) SumOtherIncomeBetween(_ context.Context, from, to time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, rc := range r.receipts {
		income := rc.PayerType == model.PayerKata || rc.PayerType == model.PayerOthers
		if income && !rc.IsReversed && !rc.CreatedAt.Before(from) && rc.CreatedAt.Before(to) {
			sum = sum.Add(rc.Amount)
		}
	}
	return sum, nil
}

// ─── Money ───────────────────────────────────────────────────────────────────

type stubMoneyRepo struct {
	expenses      []model.Expense
	cashTransfers []model.CashTransfer
}

func (r *stubMoneyRepo) DB() *gorm.DB { return nil }

func (r *stubMoneyRepo) CreateExpenseTx(_ *gorm.DB, e *model.Expense) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	r.expenses = append(r.expenses, *e)
	return nil
}

func (r *stubMoneyRepo) FindExpenseForUpdate(_ *gorm.DB, id uuid.UUID) (*model.Expense, error) {
	for i := range r.expenses {
		if r.expenses[i].ID == id {
			cp := r.expenses[i]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubMoneyRepo) UpdateExpenseTx(_ *gorm.DB, e *model.Expense) error {
	for i := range r.expenses {
		if r.expenses[i].ID == e.ID {
			r.expenses[i] = *e
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubMoneyRepo) SumExpensesByTypeBetween(_ context.Context, from, to time.Time) ([]repository.ExpenseTypeSum, error) {
	byType := map[string]decimal.Decimal{}
	for _, e := range r.expenses {
		if !e.IsReversed && !e.CreatedAt.Before(from) && e.CreatedAt.Before(to) {
			byType[e.ExpenseType] = byType[e.ExpenseType].Add(e.Amount)
		}
	}
	var out []repository.ExpenseTypeSum
	for t, total := range byType {
		out = append(out, repository.ExpenseTypeSum{ExpenseType: t, Total: total})
	}
	return out, nil
}

func (r *stubMoneyRepo) CreateCashTransferTx(_ *gorm.DB, t *model.CashTransfer) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	r.cashTransfers = append(r.cashTransfers, *t)
	return nil
}

func (r *stubMoneyRepo) FindCashTransferForUpdate(_ *gorm.DB, id uuid.UUID) (*model.CashTransfer, error) {
	for i := range r.cashTransfers {
		if r.cashTransfers[i].ID == id {
			cp := r.cashTransfers[i]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubMoneyRepo) UpdateCashTransferTx(_ *gorm.DB, t *model.CashTransfer) error {
	for i := range r.cashTransfers {
		if r.cashTransfers[i].ID == t.ID {
			r.cashTransfers[i] = *t
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ─── Transfers ───────────────────────────────────────────────────────────────

type stubTransferRepo struct {
	buyer  []model.BuyerTransfer
	farmer []model.FarmerToBuyerTransfer
	legs   []model.TransferLeg
}

func (r *stubTransferRepo) DB() *gorm.DB { return nil }

func (r *stubTransferRepo) CreateBuyerTransferTx(_ *gorm.DB, t *model.BuyerTransfer) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	r.buyer = append(r.buyer, *t)
	return nil
}

func (r *stubTransferRepo) FindBuyerTransferForUpdate(_ *gorm.DB, id uuid.UUID) (*model.BuyerTransfer, error) {
	for i := range r.buyer {
		if r.buyer[i].ID == id {
			cp := r.buyer[i]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubTransferRepo) UpdateBuyerTransferTx(_ *gorm.DB, t *model.BuyerTransfer) error {
	for i := range r.buyer {
		if r.buyer[i].ID == t.ID {
			r.buyer[i] = *t
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubTransferRepo) BuyerTransfersAfter(_ *gorm.DB, party string, after time.Time) ([]model.BuyerTransfer, error) {
	var out []model.BuyerTransfer
	for _, t := range r.buyer {
		touches := t.FromBuyer == party || t.ToBuyer == party
		if touches && !t.IsReversed && t.CreatedAt.After(after) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *stubTransferRepo) CreateLegTx(_ *gorm.DB, l *model.TransferLeg) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now()
	}
	r.legs = append(r.legs, *l)
	return nil
}

func (r *stubTransferRepo) LegsByGroup(_ *gorm.DB, group uuid.UUID) ([]model.TransferLeg, error) {
	var out []model.TransferLeg
	for _, l := range r.legs {
		if l.TransferGroupID == group {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *stubTransferRepo) CreateFarmerTransferTx(_ *gorm.DB, t *model.FarmerToBuyerTransfer) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	r.farmer = append(r.farmer, *t)
	return nil
}

func (r *stubTransferRepo) FindFarmerTransferForUpdate(_ *gorm.DB, id uuid.UUID) (*model.FarmerToBuyerTransfer, error) {
	for i := range r.farmer {
		if r.farmer[i].ID == id {
			cp := r.farmer[i]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubTransferRepo) UpdateFarmerTransferTx(_ *gorm.DB, t *model.FarmerToBuyerTransfer) error {
	for i := range r.farmer {
		if r.farmer[i].ID == t.ID {
			r.farmer[i] = *t
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubTransferRepo) FarmerTransfersAfter(_ *gorm.DB, buyer string, after time.Time) ([]model.FarmerToBuyerTransfer, error) {
	var out []model.FarmerToBuyerTransfer
	for _, t := range r.farmer {
		if t.ToBuyer == buyer && !t.IsReversed && t.CreatedAt.After(after) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *stubTransferRepo) ListBuyerTransfers(_ context.Context, buyer string, limit int) ([]model.BuyerTransfer, error) {
	var out []model.BuyerTransfer
	for _, t := range r.buyer {
		if t.FromBuyer == buyer || t.ToBuyer == buyer {
			out = append(out, t)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ─── Discounts ───────────────────────────────────────────────────────────────

type stubDiscountRepo struct {
	discounts []model.Discount
	allocs    []model.DiscountAllocation
}

func (r *stubDiscountRepo) DB() *gorm.DB { return nil }

func (r *stubDiscountRepo) CreateTx(_ *gorm.DB, d *model.Discount) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now()
	}
	cp := *d
	cp.Allocations = nil
	r.discounts = append(r.discounts, cp)
	return nil
}

func (r *stubDiscountRepo) CreateAllocationTx(_ *gorm.DB, a *model.DiscountAllocation) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.allocs = append(r.allocs, *a)
	return nil
}

func (r *stubDiscountRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Discount, error) {
	for i := range r.discounts {
		if r.discounts[i].ID == id {
			cp := r.discounts[i]
			for _, a := range r.allocs {
				if a.DiscountID == id {
					cp.Allocations = append(cp.Allocations, a)
				}
			}
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubDiscountRepo) FindByIDForUpdate(_ *gorm.DB, id uuid.UUID) (*model.Discount, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubDiscountRepo) UpdateTx(_ *gorm.DB, d *model.Discount) error {
	for i := range r.discounts {
		if r.discounts[i].ID == d.ID {
			cp := *d
			cp.Allocations = nil
			r.discounts[i] = cp
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ─── Registers ───────────────────────────────────────────────────────────────

type stubRegisterRepo struct {
	assets      []model.Asset
	liabilities []model.Liability
}

func (r *stubRegisterRepo) CreateAsset(_ context.Context, a *model.Asset) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.assets = append(r.assets, *a)
	return nil
}

func (r *stubRegisterRepo) UpdateAsset(_ context.Context, a *model.Asset) error {
	for i := range r.assets {
		if r.assets[i].ID == a.ID {
			r.assets[i] = *a
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubRegisterRepo) DeleteAsset(_ context.Context, id uuid.UUID) error {
	for i := range r.assets {
		if r.assets[i].ID == id {
			r.assets = append(r.assets[:i], r.assets[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *stubRegisterRepo) ListAssets(context.Context) ([]model.Asset, error) {
	return append([]model.Asset(nil), r.assets...), nil
}

func (r *stubRegisterRepo) CreateLiability(_ context.Context, l *model.Liability) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	r.liabilities = append(r.liabilities, *l)
	return nil
}

func (r *stubRegisterRepo) UpdateLiability(_ context.Context, l *model.Liability) error {
	for i := range r.liabilities {
		if r.liabilities[i].ID == l.ID {
			r.liabilities[i] = *l
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubRegisterRepo) DeleteLiability(_ context.Context, id uuid.UUID) error {
	for i := range r.liabilities {
		if r.liabilities[i].ID == id {
			r.liabilities = append(r.liabilities[:i], r.liabilities[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *stubRegisterRepo) ListLiabilities(context.Context) ([]model.Liability, error) {
	return append([]model.Liability(nil), r.liabilities...), nil
}

// ─── Exits ───────────────────────────────────────────────────────────────────

type stubExitRepo struct {
	exits []model.ExitHistory
}

func (r *stubExitRepo) DB() *gorm.DB { return nil }

func (r *stubExitRepo) CreateTx(_ *gorm.DB, e *model.ExitHistory) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	r.exits = append(r.exits, *e)
	return nil
}

func (r *stubExitRepo) FindByID(_ context.Context, id uuid.UUID) (*model.ExitHistory, error) {
	for i := range r.exits {
		if r.exits[i].ID == id {
			cp := r.exits[i]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubExitRepo) FindByIDForUpdate(_ *gorm.DB, id uuid.UUID) (*model.ExitHistory, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubExitRepo) FindLatestActiveBySale(_ *gorm.DB, saleID uuid.UUID) (*model.ExitHistory, error) {
	for i := len(r.exits) - 1; i >= 0; i-- {
		if r.exits[i].SaleID == saleID && !r.exits[i].IsReversed {
			cp := r.exits[i]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubExitRepo) UpdateTx(_ *gorm.DB, e *model.ExitHistory) error {
	for i := range r.exits {
		if r.exits[i].ID == e.ID {
			r.exits[i] = *e
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubExitRepo) ListBySale(_ context.Context, saleID uuid.UUID) ([]model.ExitHistory, error) {
	var out []model.ExitHistory
	for _, e := range r.exits {
		if e.SaleID == saleID {
			out = append(out, e)
		}
	}
	return out, nil
}
