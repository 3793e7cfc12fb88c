package service

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/JoeDalton318/farming-simulator/entities"
)

// Event kinds emitted on every ledger mutation.
const (
	EventItemAdded   = "item_added"
	EventItemRemoved = "item_removed"
	EventItemSold    = "item_sold"
)

type Event struct {
	Type       string          `json:"type"`
	StorageID  uint            `json:"storage_id"`
	ItemType   string          `json:"item_type"`
	Delta      int64           `json:"delta"`
	Quantity   int64           `json:"quantity"` // resulting item quantity
	Volume     int64           `json:"volume"`   // resulting storage volume
	TotalValue decimal.Decimal `json:"total_value,omitempty"`
}

type Handler func(Event)

type SaleResult struct {
	ItemType          string          `json:"item_type"`
	QuantitySold      int64           `json:"quantity_sold"`
	TotalValue        decimal.Decimal `json:"total_value"`
	RemainingQuantity int64           `json:"remaining_quantity"`
	TransactionID     uint            `json:"transaction_id"`
}

type Snapshot struct {
	StorageID uint                   `json:"storage_id"`
	Type      string                 `json:"type"`
	Capacity  int64                  `json:"capacity"`
	Used      int64                  `json:"used"`
	Available int64                  `json:"available"`
	Full      bool                   `json:"full"`
	Items     []entities.StorageItem `json:"items"`
}

// Mutator batches capacity-checked stock moves inside one Atomic call.
// Either every move commits or none does; change events fire only after
// the commit.
type Mutator interface {
	Storage() *entities.Storage
	Deposit(itemType string, qty int64, valuePerUnit decimal.Decimal) error
	Withdraw(itemType string, qty int64) error
	Item(itemType string) (*entities.StorageItem, error)
}

// LedgerService is the bounded-capacity inventory container every producer
// and consumer on the farm goes through.
type LedgerService interface {
	Content(storageID uint) (*Snapshot, error)
	Add(storageID uint, itemType string, qty int64, valuePerUnit decimal.Decimal) (*entities.StorageItem, error)
	Remove(storageID uint, itemType string, qty int64) error
	Sell(storageID uint, itemType string, qty int64) (*SaleResult, error)

	// Atomic serializes on the storage, opens one transaction and hands the
	// caller a Mutator plus the raw tx for entity writes that must land in
	// the same commit (field reset, history rows, factory output).
	Atomic(storageID uint, fn func(tx *gorm.DB, m Mutator) error) error

	// Subscribe registers an observer and returns a handle for Unsubscribe.
	Subscribe(h Handler) int
	Unsubscribe(id int)
}
