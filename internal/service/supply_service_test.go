package service

import (
	"testing"

	"go-collector-ledger/internal/apperr"
	"go-collector-ledger/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type supplyFixture struct {
	store    *memStore
	supplies *memSupplyRepo
	ledger   *memLedgerRepo
	svc      SupplyService
}

func newSupplyFixture() *supplyFixture {
	store := newMemStore()
	supplies := &memSupplyRepo{store: store}
	ledger := &memLedgerRepo{store: store}
	svc := NewSupplyService(supplies, ledger, &memTxManager{store: store}, nil)
	return &supplyFixture{store: store, supplies: supplies, ledger: ledger, svc: svc}
}

func TestAddBatchPostsLedgerEntry(t *testing.T) {
	f := newSupplyFixture()

	id, err := f.svc.Add(&SupplyBatchInput{
		Description:       "bubble mailers",
		UnitCost:          "0.10",
		QuantityPurchased: 100,
		PurchasedAt:       "2026-08-01",
	})
	require.NoError(t, err)

	batch, err := f.supplies.FindByID(id)
	require.NoError(t, err)
	assert.Equal(t, 100, batch.QuantityPurchased)
	assert.Equal(t, 100, batch.QuantityAvailable)

	entries, err := f.ledger.FindAll()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	entry := entries[0]
	assert.True(t, entry.Amount.Equal(decimal.RequireFromString("-10.00")), "got %s", entry.Amount)
	assert.Equal(t, model.CategoryShippingSupplies, entry.Category)
	assert.Equal(t, "Shipping supplies: bubble mailers", entry.Description)
	assert.Equal(t, "2026-08-01", entry.EntryDate.Format("2006-01-02"))
}

func TestAddBatchRequiresDescription(t *testing.T) {
	f := newSupplyFixture()

	_, err := f.svc.Add(&SupplyBatchInput{UnitCost: "0.10", QuantityPurchased: 10})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
	assert.Empty(t, f.store.state.batches)
	assert.Empty(t, f.store.state.ledger)
}

func TestAddBatchRejectsNegativeUnitCost(t *testing.T) {
	f := newSupplyFixture()

	_, err := f.svc.Add(&SupplyBatchInput{
		Description:       "top loaders",
		UnitCost:          "-0.50",
		QuantityPurchased: 10,
	})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestConsumeComputesCost(t *testing.T) {
	f := newSupplyFixture()
	id, err := f.svc.Add(&SupplyBatchInput{
		Description:       "sleeves",
		UnitCost:          "0.25",
		QuantityPurchased: 20,
	})
	require.NoError(t, err)

	cost, err := f.svc.Consume(id, 4)
	require.NoError(t, err)
	assert.True(t, cost.Equal(decimal.RequireFromString("1.00")), "got %s", cost)

	batch, _ := f.supplies.FindByID(id)
	assert.Equal(t, 16, batch.QuantityAvailable)
}

func TestConsumeInsufficientLeavesQuantity(t *testing.T) {
	f := newSupplyFixture()
	id, err := f.svc.Add(&SupplyBatchInput{
		Description:       "boxes",
		UnitCost:          "1.00",
		QuantityPurchased: 3,
	})
	require.NoError(t, err)

	_, err = f.svc.Consume(id, 5)
	assert.ErrorIs(t, err, apperr.ErrInsufficientSupply)

	batch, _ := f.supplies.FindByID(id)
	assert.Equal(t, 3, batch.QuantityAvailable)
}

func TestConsumeRejectsNonPositiveQuantity(t *testing.T) {
	f := newSupplyFixture()

	_, err := f.svc.Consume(uuid.New(), 0)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
	_, err = f.svc.Consume(uuid.New(), -1)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestRestock(t *testing.T) {
	f := newSupplyFixture()
	id, err := f.svc.Add(&SupplyBatchInput{
		Description:       "team bags",
		UnitCost:          "0.05",
		QuantityPurchased: 50,
	})
	require.NoError(t, err)

	_, err = f.svc.Consume(id, 10)
	require.NoError(t, err)
	require.NoError(t, f.svc.Restock(id, 6))

	batch, _ := f.supplies.FindByID(id)
	assert.Equal(t, 46, batch.QuantityAvailable)
}

func TestRestockBeyondPurchased(t *testing.T) {
	f := newSupplyFixture()
	id, err := f.svc.Add(&SupplyBatchInput{
		Description:       "tape",
		UnitCost:          "2.00",
		QuantityPurchased: 5,
	})
	require.NoError(t, err)

	err = f.svc.Restock(id, 1)
	assert.ErrorIs(t, err, apperr.ErrCorruption)

	batch, _ := f.supplies.FindByID(id)
	assert.Equal(t, 5, batch.QuantityAvailable)
}

func TestUpdateBatchWhitelistsFields(t *testing.T) {
	f := newSupplyFixture()
	id, err := f.svc.Add(&SupplyBatchInput{
		Description:       "mailers",
		UnitCost:          "0.10",
		QuantityPurchased: 10,
	})
	require.NoError(t, err)

	err = f.svc.Update(id, map[string]interface{}{
		"supplier": "ULINE",
		"bogus":    "ignored",
	})
	require.NoError(t, err)

	batch, _ := f.supplies.FindByID(id)
	assert.Equal(t, "ULINE", batch.Supplier)
}

func TestDeleteBatchKeepsLedgerEntry(t *testing.T) {
	f := newSupplyFixture()
	id, err := f.svc.Add(&SupplyBatchInput{
		Description:       "envelopes",
		UnitCost:          "0.08",
		QuantityPurchased: 25,
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(id))

	_, err = f.supplies.FindByID(id)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	entries, _ := f.ledger.FindAll()
	assert.Len(t, entries, 1, "the purchase entry is a historical record")
}
