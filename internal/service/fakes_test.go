package service

import (
	"fmt"
	"reflect"
	"sort"
	"time"

	"go-collector-ledger/internal/apperr"
	"go-collector-ledger/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// The service tests run against in-memory stores. The fake transaction
// manager snapshots the whole store before each unit of work and restores it
// when the callback fails, so the all-or-nothing and round-trip properties
// are observable without a database.

type memState struct {
	cards   map[uuid.UUID]model.Card
	sealed  map[uuid.UUID]model.SealedProduct
	batches map[uuid.UUID]model.SupplyBatch
	ledger  []model.LedgerEntry
	events  map[uuid.UUID]model.SaleEvent
	items   []model.SaleItem
	usages  []model.SaleSupplyUsage
}

func newMemState() *memState {
	return &memState{
		cards:   make(map[uuid.UUID]model.Card),
		sealed:  make(map[uuid.UUID]model.SealedProduct),
		batches: make(map[uuid.UUID]model.SupplyBatch),
		events:  make(map[uuid.UUID]model.SaleEvent),
	}
}

func (s *memState) clone() *memState {
	out := newMemState()
	for k, v := range s.cards {
		out.cards[k] = v
	}
	for k, v := range s.sealed {
		out.sealed[k] = v
	}
	for k, v := range s.batches {
		out.batches[k] = v
	}
	for k, v := range s.events {
		out.events[k] = v
	}
	out.ledger = append([]model.LedgerEntry(nil), s.ledger...)
	out.items = append([]model.SaleItem(nil), s.items...)
	out.usages = append([]model.SaleSupplyUsage(nil), s.usages...)
	return out
}

type memStore struct {
	state *memState
}

func newMemStore() *memStore {
	return &memStore{state: newMemState()}
}

type memTxManager struct {
	store *memStore
}

func (m *memTxManager) Transaction(fn func(tx *gorm.DB) error) error {
	saved := m.store.state.clone()
	if err := fn(nil); err != nil {
		m.store.state = saved
		return err
	}
	return nil
}

func valuesEqual(a, b interface{}) bool {
	if da, ok := a.(decimal.Decimal); ok {
		if db, ok := b.(decimal.Decimal); ok {
			return da.Equal(db)
		}
	}
	return reflect.DeepEqual(a, b)
}

// ---- cards ----

type memCardRepo struct {
	store *memStore
}

func (r *memCardRepo) Create(card *model.Card) error {
	if card.ID == uuid.Nil {
		card.ID = uuid.New()
	}
	card.CreatedAt = time.Now()
	card.UpdatedAt = card.CreatedAt
	r.store.state.cards[card.ID] = *card
	return nil
}

func (r *memCardRepo) FindAll() ([]model.Card, error) {
	out := make([]model.Card, 0, len(r.store.state.cards))
	for _, c := range r.store.state.cards {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memCardRepo) FindByID(id uuid.UUID) (*model.Card, error) {
	return r.FindByIDTx(nil, id)
}

func (r *memCardRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Card, error) {
	c, ok := r.store.state.cards[id]
	if !ok {
		return nil, fmt.Errorf("%w: card %s", apperr.ErrNotFound, id)
	}
	return &c, nil
}

func (r *memCardRepo) UpdateFields(id uuid.UUID, fields map[string]interface{}) error {
	c, ok := r.store.state.cards[id]
	if !ok {
		return fmt.Errorf("%w: card %s", apperr.ErrNotFound, id)
	}
	applyCardFields(&c, fields)
	r.store.state.cards[id] = c
	return nil
}

func (r *memCardRepo) BulkUpdate(filters, updates map[string]interface{}) (int64, error) {
	var count int64
	for id, c := range r.store.state.cards {
		matched := true
		for key, want := range filters {
			if !valuesEqual(cardField(&c, key), want) {
				matched = false
				break
			}
		}
		if !matched {
			continue
		}
		applyCardFields(&c, updates)
		r.store.state.cards[id] = c
		count++
	}
	return count, nil
}

func (r *memCardRepo) Delete(id uuid.UUID) error {
	delete(r.store.state.cards, id)
	return nil
}

func (r *memCardRepo) AdjustQuantity(_ *gorm.DB, id uuid.UUID, delta int) error {
	c, ok := r.store.state.cards[id]
	if !ok {
		return fmt.Errorf("%w: card %s", apperr.ErrNotFound, id)
	}
	if c.Quantity+delta < 0 {
		return fmt.Errorf("%w: card %s", apperr.ErrInsufficientInventory, id)
	}
	c.Quantity += delta
	r.store.state.cards[id] = c
	return nil
}

func applyCardFields(c *model.Card, fields map[string]interface{}) {
	for key, value := range fields {
		switch key {
		case "name":
			c.Name = value.(string)
		case "set_code":
			c.SetCode = value.(string)
		case "collector_number":
			c.CollectorNumber = value.(string)
		case "condition":
			c.Condition = value.(string)
		case "language":
			c.Language = value.(string)
		case "is_foil":
			c.IsFoil = value.(bool)
		case "acquisition_price":
			c.AcquisitionPrice = value.(decimal.Decimal)
		case "market_price":
			c.MarketPrice = value.(decimal.Decimal)
		case "quantity":
			c.Quantity = value.(int)
		case "acquired_at":
			if value == nil {
				c.AcquiredAt = nil
			} else {
				c.AcquiredAt = value.(*time.Time)
			}
		case "notes":
			c.Notes = value.(string)
		}
	}
}

func cardField(c *model.Card, key string) interface{} {
	switch key {
	case "name":
		return c.Name
	case "set_code":
		return c.SetCode
	case "collector_number":
		return c.CollectorNumber
	case "condition":
		return c.Condition
	case "language":
		return c.Language
	case "is_foil":
		return c.IsFoil
	case "acquisition_price":
		return c.AcquisitionPrice
	case "market_price":
		return c.MarketPrice
	case "quantity":
		return c.Quantity
	case "acquired_at":
		return c.AcquiredAt
	case "notes":
		return c.Notes
	}
	return nil
}

// ---- sealed products ----

type memSealedRepo struct {
	store *memStore
}

func (r *memSealedRepo) Create(product *model.SealedProduct) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt
	r.store.state.sealed[product.ID] = *product
	return nil
}

func (r *memSealedRepo) FindAll() ([]model.SealedProduct, error) {
	out := make([]model.SealedProduct, 0, len(r.store.state.sealed))
	for _, p := range r.store.state.sealed {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memSealedRepo) FindByID(id uuid.UUID) (*model.SealedProduct, error) {
	return r.FindByIDTx(nil, id)
}

func (r *memSealedRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.SealedProduct, error) {
	p, ok := r.store.state.sealed[id]
	if !ok {
		return nil, fmt.Errorf("%w: sealed product %s", apperr.ErrNotFound, id)
	}
	return &p, nil
}

func (r *memSealedRepo) UpdateFields(id uuid.UUID, fields map[string]interface{}) error {
	p, ok := r.store.state.sealed[id]
	if !ok {
		return fmt.Errorf("%w: sealed product %s", apperr.ErrNotFound, id)
	}
	applySealedFields(&p, fields)
	r.store.state.sealed[id] = p
	return nil
}

func (r *memSealedRepo) BulkUpdate(filters, updates map[string]interface{}) (int64, error) {
	var count int64
	for id, p := range r.store.state.sealed {
		matched := true
		for key, want := range filters {
			if !valuesEqual(sealedField(&p, key), want) {
				matched = false
				break
			}
		}
		if !matched {
			continue
		}
		applySealedFields(&p, updates)
		r.store.state.sealed[id] = p
		count++
	}
	return count, nil
}

func (r *memSealedRepo) Delete(id uuid.UUID) error {
	delete(r.store.state.sealed, id)
	return nil
}

func (r *memSealedRepo) AdjustQuantity(_ *gorm.DB, id uuid.UUID, delta int) error {
	p, ok := r.store.state.sealed[id]
	if !ok {
		return fmt.Errorf("%w: sealed product %s", apperr.ErrNotFound, id)
	}
	if p.Quantity+delta < 0 {
		return fmt.Errorf("%w: sealed product %s", apperr.ErrInsufficientInventory, id)
	}
	p.Quantity += delta
	r.store.state.sealed[id] = p
	return nil
}

func applySealedFields(p *model.SealedProduct, fields map[string]interface{}) {
	for key, value := range fields {
		switch key {
		case "name":
			p.Name = value.(string)
		case "set_code":
			p.SetCode = value.(string)
		case "product_type":
			p.ProductType = value.(string)
		case "acquisition_price":
			p.AcquisitionPrice = value.(decimal.Decimal)
		case "market_price":
			p.MarketPrice = value.(decimal.Decimal)
		case "quantity":
			p.Quantity = value.(int)
		case "acquired_at":
			if value == nil {
				p.AcquiredAt = nil
			} else {
				p.AcquiredAt = value.(*time.Time)
			}
		case "notes":
			p.Notes = value.(string)
		}
	}
}

func sealedField(p *model.SealedProduct, key string) interface{} {
	switch key {
	case "name":
		return p.Name
	case "set_code":
		return p.SetCode
	case "product_type":
		return p.ProductType
	case "acquisition_price":
		return p.AcquisitionPrice
	case "market_price":
		return p.MarketPrice
	case "quantity":
		return p.Quantity
	case "acquired_at":
		return p.AcquiredAt
	case "notes":
		return p.Notes
	}
	return nil
}

// ---- supply batches ----

type memSupplyRepo struct {
	store *memStore
}

func (r *memSupplyRepo) Create(_ *gorm.DB, batch *model.SupplyBatch) error {
	if batch.ID == uuid.Nil {
		batch.ID = uuid.New()
	}
	batch.CreatedAt = time.Now()
	batch.UpdatedAt = batch.CreatedAt
	r.store.state.batches[batch.ID] = *batch
	return nil
}

func (r *memSupplyRepo) FindAll() ([]model.SupplyBatch, error) {
	out := make([]model.SupplyBatch, 0, len(r.store.state.batches))
	for _, b := range r.store.state.batches {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PurchasedAt.After(out[j].PurchasedAt) })
	return out, nil
}

func (r *memSupplyRepo) FindByID(id uuid.UUID) (*model.SupplyBatch, error) {
	b, ok := r.store.state.batches[id]
	if !ok {
		return nil, fmt.Errorf("%w: supply batch %s", apperr.ErrNotFound, id)
	}
	return &b, nil
}

func (r *memSupplyRepo) UpdateFields(id uuid.UUID, fields map[string]interface{}) error {
	b, ok := r.store.state.batches[id]
	if !ok {
		return fmt.Errorf("%w: supply batch %s", apperr.ErrNotFound, id)
	}
	for key, value := range fields {
		switch key {
		case "description":
			b.Description = value.(string)
		case "supplier":
			b.Supplier = value.(string)
		case "unit_cost":
			b.UnitCost = value.(decimal.Decimal)
		case "quantity_purchased":
			b.QuantityPurchased = value.(int)
		case "quantity_available":
			b.QuantityAvailable = value.(int)
		case "purchased_at":
			if value != nil {
				b.PurchasedAt = *value.(*time.Time)
			}
		case "notes":
			b.Notes = value.(string)
		}
	}
	r.store.state.batches[id] = b
	return nil
}

func (r *memSupplyRepo) Delete(id uuid.UUID) error {
	delete(r.store.state.batches, id)
	return nil
}

func (r *memSupplyRepo) Consume(_ *gorm.DB, id uuid.UUID, qty int) (decimal.Decimal, error) {
	b, ok := r.store.state.batches[id]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: supply batch %s", apperr.ErrNotFound, id)
	}
	if b.QuantityAvailable < qty {
		return decimal.Zero, fmt.Errorf("%w: supply batch %s", apperr.ErrInsufficientSupply, id)
	}
	b.QuantityAvailable -= qty
	r.store.state.batches[id] = b
	return b.UnitCost.Mul(decimal.NewFromInt(int64(qty))), nil
}

func (r *memSupplyRepo) Restock(_ *gorm.DB, id uuid.UUID, qty int) error {
	b, ok := r.store.state.batches[id]
	if !ok {
		return fmt.Errorf("%w: supply batch %s", apperr.ErrNotFound, id)
	}
	if b.QuantityAvailable+qty > b.QuantityPurchased {
		return fmt.Errorf("%w: supply batch %s", apperr.ErrCorruption, id)
	}
	b.QuantityAvailable += qty
	r.store.state.batches[id] = b
	return nil
}

// ---- ledger ----

type memLedgerRepo struct {
	store *memStore
}

func (r *memLedgerRepo) Create(_ *gorm.DB, entry *model.LedgerEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	entry.CreatedAt = time.Now()
	r.store.state.ledger = append(r.store.state.ledger, *entry)
	return nil
}

func (r *memLedgerRepo) FindAll() ([]model.LedgerEntry, error) {
	out := append([]model.LedgerEntry(nil), r.store.state.ledger...)
	sort.Slice(out, func(i, j int) bool { return out[i].EntryDate.After(out[j].EntryDate) })
	return out, nil
}

func (r *memLedgerRepo) Delete(id uuid.UUID) error {
	for i, e := range r.store.state.ledger {
		if e.ID == id {
			r.store.state.ledger = append(r.store.state.ledger[:i], r.store.state.ledger[i+1:]...)
			return nil
		}
	}
	return nil
}

// ---- sales ----

type memSaleRepo struct {
	store *memStore
}

func (r *memSaleRepo) CreateEvent(_ *gorm.DB, event *model.SaleEvent) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	event.CreatedAt = time.Now()
	r.store.state.events[event.ID] = *event
	return nil
}

func (r *memSaleRepo) CreateItem(_ *gorm.DB, item *model.SaleItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	r.store.state.items = append(r.store.state.items, *item)
	return nil
}

func (r *memSaleRepo) CreateSupplyUsage(_ *gorm.DB, usage *model.SaleSupplyUsage) error {
	if usage.ID == uuid.Nil {
		usage.ID = uuid.New()
	}
	r.store.state.usages = append(r.store.state.usages, *usage)
	return nil
}

func (r *memSaleRepo) FindAll() ([]model.SaleEvent, error) {
	out := make([]model.SaleEvent, 0, len(r.store.state.events))
	for id := range r.store.state.events {
		event, _ := r.FindByID(id)
		out = append(out, *event)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SaleDate.After(out[j].SaleDate) })
	return out, nil
}

func (r *memSaleRepo) FindByID(id uuid.UUID) (*model.SaleEvent, error) {
	event, ok := r.store.state.events[id]
	if !ok {
		return nil, fmt.Errorf("%w: sale event %s", apperr.ErrNotFound, id)
	}
	event.Items, _ = r.ItemsForEvent(nil, id)
	event.Supplies, _ = r.SuppliesForEvent(nil, id)
	return &event, nil
}

func (r *memSaleRepo) ItemsForEvent(_ *gorm.DB, eventID uuid.UUID) ([]model.SaleItem, error) {
	var out []model.SaleItem
	for _, item := range r.store.state.items {
		if item.SaleEventID == eventID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *memSaleRepo) SuppliesForEvent(_ *gorm.DB, eventID uuid.UUID) ([]model.SaleSupplyUsage, error) {
	var out []model.SaleSupplyUsage
	for _, usage := range r.store.state.usages {
		if usage.SaleEventID == eventID {
			out = append(out, usage)
		}
	}
	return out, nil
}

func (r *memSaleRepo) DeleteEvent(_ *gorm.DB, id uuid.UUID) error {
	if _, ok := r.store.state.events[id]; !ok {
		return fmt.Errorf("%w: sale event %s", apperr.ErrNotFound, id)
	}
	delete(r.store.state.events, id)

	items := r.store.state.items[:0]
	for _, item := range r.store.state.items {
		if item.SaleEventID != id {
			items = append(items, item)
		}
	}
	r.store.state.items = items

	usages := r.store.state.usages[:0]
	for _, usage := range r.store.state.usages {
		if usage.SaleEventID != id {
			usages = append(usages, usage)
		}
	}
	r.store.state.usages = usages
	return nil
}
