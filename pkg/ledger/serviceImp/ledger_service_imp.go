package serviceImp

import (
	"errors"
	"sync"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/JoeDalton318/farming-simulator/entities"
	"github.com/JoeDalton318/farming-simulator/pkg/fault"
	"github.com/JoeDalton318/farming-simulator/pkg/ledger/service"
	"github.com/JoeDalton318/farming-simulator/pkg/lockmap"
)

type ledgerSvc struct {
	db    *gorm.DB
	locks *lockmap.LockMap

	obsMu     sync.Mutex
	observers map[int]service.Handler
	nextObs   int
}

func New(db *gorm.DB) service.LedgerService {
	return &ledgerSvc{db: db, locks: lockmap.New(), observers: map[int]service.Handler{}}
}

func (s *ledgerSvc) Subscribe(h service.Handler) int {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()
	s.nextObs++
	s.observers[s.nextObs] = h
	return s.nextObs
}

func (s *ledgerSvc) Unsubscribe(id int) {
	s.obsMu.Lock()
	delete(s.observers, id)
	s.obsMu.Unlock()
}

func (s *ledgerSvc) notify(ev service.Event) {
	s.obsMu.Lock()
	handlers := make([]service.Handler, 0, len(s.observers))
	for _, h := range s.observers {
		handlers = append(handlers, h)
	}
	s.obsMu.Unlock()
	for _, h := range handlers {
		h(ev)
	}
}

func (s *ledgerSvc) Content(storageID uint) (*service.Snapshot, error) {
	var st entities.Storage
	if err := s.db.First(&st, storageID).Error; err != nil {
		return nil, storageErr(storageID, err)
	}
	var items []entities.StorageItem
	if err := s.db.Where("storage_id = ?", storageID).Order("item_type ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return &service.Snapshot{
		StorageID: st.StorageID,
		Type:      st.Type,
		Capacity:  st.Capacity,
		Used:      st.CurrentVolume,
		Available: st.Capacity - st.CurrentVolume,
		Full:      st.CurrentVolume >= st.Capacity,
		Items:     items,
	}, nil
}

// Atomic takes the storage lock, runs fn in one transaction and flushes the
// queued change events once the commit went through.
func (s *ledgerSvc) Atomic(storageID uint, fn func(tx *gorm.DB, m service.Mutator) error) error {
	s.locks.Lock(storageID)
	defer s.locks.Unlock(storageID)

	var pending []service.Event
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var st entities.Storage
		if err := tx.First(&st, storageID).Error; err != nil {
			return storageErr(storageID, err)
		}
		m := &mutator{tx: tx, st: &st, events: &pending}
		if err := fn(tx, m); err != nil {
			return err
		}
		return tx.Save(&st).Error
	})
	if err != nil {
		return err
	}
	for _, ev := range pending {
		s.notify(ev)
	}
	return nil
}

func (s *ledgerSvc) Add(storageID uint, itemType string, qty int64, valuePerUnit decimal.Decimal) (*entities.StorageItem, error) {
	var out entities.StorageItem
	err := s.Atomic(storageID, func(tx *gorm.DB, m service.Mutator) error {
		if err := m.Deposit(itemType, qty, valuePerUnit); err != nil {
			return err
		}
		item, err := m.Item(itemType)
		if err != nil {
			return err
		}
		out = *item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ledgerSvc) Remove(storageID uint, itemType string, qty int64) error {
	return s.Atomic(storageID, func(tx *gorm.DB, m service.Mutator) error {
		return m.Withdraw(itemType, qty)
	})
}

func (s *ledgerSvc) Sell(storageID uint, itemType string, qty int64) (*service.SaleResult, error) {
	var result service.SaleResult
	err := s.Atomic(storageID, func(tx *gorm.DB, m service.Mutator) error {
		item, err := m.Item(itemType)
		if err != nil {
			return err
		}
		if item.Quantity < qty {
			return fault.New(fault.InsufficientStock,
				"only %dL of %s held, requested %dL", item.Quantity, itemType, qty)
		}

		st := m.Storage()
		var farm entities.Farm
		if err := tx.First(&farm, st.FarmID).Error; err != nil {
			return fault.New(fault.NotFound, "farm %d not found", st.FarmID)
		}

		total := item.ValuePerUnit.Mul(decimal.NewFromInt(qty))
		rec := entities.Transaction{
			FarmID: st.FarmID, ItemType: itemType, Quantity: qty,
			TotalValue: total, Action: "sell",
		}
		if err := tx.Create(&rec).Error; err != nil {
			return err
		}

		remaining := item.Quantity - qty
		if err := m.Withdraw(itemType, qty); err != nil {
			return err
		}
		// One mutation, one notification: retag the queued withdrawal as a
		// sale instead of emitting a second event for the same change.
		m.(*mutator).markSold(total)

		farm.Cash = farm.Cash.Add(total)
		if err := tx.Save(&farm).Error; err != nil {
			return err
		}

		result = service.SaleResult{
			ItemType:          itemType,
			QuantitySold:      qty,
			TotalValue:        total,
			RemainingQuantity: remaining,
			TransactionID:     rec.TransactionID,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

type mutator struct {
	tx     *gorm.DB
	st     *entities.Storage
	events *[]service.Event
}

func (m *mutator) Storage() *entities.Storage { return m.st }

// markSold retags the most recently queued event as a sale carrying the
// proceeds, so a sale flushes a single item_sold event after commit.
func (m *mutator) markSold(total decimal.Decimal) {
	if n := len(*m.events); n > 0 {
		ev := &(*m.events)[n-1]
		ev.Type = service.EventItemSold
		ev.TotalValue = total
	}
}

func (m *mutator) Item(itemType string) (*entities.StorageItem, error) {
	var item entities.StorageItem
	err := m.tx.Where("storage_id = ? AND item_type = ?", m.st.StorageID, itemType).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fault.New(fault.InsufficientStock, "no %s in storage %d", itemType, m.st.StorageID)
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (m *mutator) Deposit(itemType string, qty int64, valuePerUnit decimal.Decimal) error {
	if qty <= 0 {
		return fault.New(fault.Validation, "quantity must be positive, got %d", qty)
	}
	if m.st.CurrentVolume+qty > m.st.Capacity {
		return fault.New(fault.CapacityExceeded,
			"only %dL of storage space available, need %dL", m.st.Capacity-m.st.CurrentVolume, qty)
	}

	var item entities.StorageItem
	err := m.tx.Where("storage_id = ? AND item_type = ?", m.st.StorageID, itemType).First(&item).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = entities.StorageItem{StorageID: m.st.StorageID, ItemType: itemType, Quantity: qty, ValuePerUnit: valuePerUnit}
		if err := m.tx.Create(&item).Error; err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		item.Quantity += qty
		item.ValuePerUnit = valuePerUnit
		if err := m.tx.Save(&item).Error; err != nil {
			return err
		}
	}

	m.st.CurrentVolume += qty
	*m.events = append(*m.events, service.Event{
		Type: service.EventItemAdded, StorageID: m.st.StorageID, ItemType: itemType,
		Delta: qty, Quantity: item.Quantity, Volume: m.st.CurrentVolume,
	})
	return nil
}

func (m *mutator) Withdraw(itemType string, qty int64) error {
	if qty <= 0 {
		return fault.New(fault.Validation, "quantity must be positive, got %d", qty)
	}
	item, err := m.Item(itemType)
	if err != nil {
		return err
	}
	if item.Quantity < qty {
		return fault.New(fault.InsufficientStock,
			"only %dL of %s held, requested %dL", item.Quantity, itemType, qty)
	}

	remaining := item.Quantity - qty
	// Zero rows are pruned rather than kept around.
	if remaining == 0 {
		if err := m.tx.Delete(item).Error; err != nil {
			return err
		}
	} else {
		item.Quantity = remaining
		if err := m.tx.Save(item).Error; err != nil {
			return err
		}
	}

	m.st.CurrentVolume -= qty
	*m.events = append(*m.events, service.Event{
		Type: service.EventItemRemoved, StorageID: m.st.StorageID, ItemType: itemType,
		Delta: -qty, Quantity: remaining, Volume: m.st.CurrentVolume,
	})
	return nil
}

func storageErr(id uint, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fault.New(fault.NotFound, "storage %d not found", id)
	}
	return err
}
