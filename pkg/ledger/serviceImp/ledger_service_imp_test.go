package serviceImp

import (
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/JoeDalton318/farming-simulator/database"
	"github.com/JoeDalton318/farming-simulator/entities"
	"github.com/JoeDalton318/farming-simulator/pkg/fault"
	"github.com/JoeDalton318/farming-simulator/pkg/ledger/service"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedStorage(t *testing.T, db *gorm.DB, capacity int64) (uint, uint) {
	t.Helper()
	farm := entities.Farm{Name: "test", Cash: decimal.NewFromInt(100)}
	if err := db.Create(&farm).Error; err != nil {
		t.Fatalf("create farm: %v", err)
	}
	st := entities.Storage{FarmID: farm.FarmID, Type: entities.StorageTypeMain, Capacity: capacity}
	if err := db.Create(&st).Error; err != nil {
		t.Fatalf("create storage: %v", err)
	}
	return farm.FarmID, st.StorageID
}

func TestAddRespectsCapacity(t *testing.T) {
	db := testDB(t)
	_, stID := seedStorage(t, db, 100)
	svc := New(db)

	one := decimal.NewFromInt(1)
	if _, err := svc.Add(stID, "wheat", 60, one); err != nil {
		t.Fatalf("add 60: %v", err)
	}
	if _, err := svc.Add(stID, "barley", 40, one); err != nil {
		t.Fatalf("add 40: %v", err)
	}

	_, err := svc.Add(stID, "corn", 1, one)
	if fault.KindOf(err) != fault.CapacityExceeded {
		t.Fatalf("expected capacity_exceeded, got %v", err)
	}

	snap, err := svc.Content(stID)
	if err != nil {
		t.Fatalf("content: %v", err)
	}
	if snap.Used != 100 || !snap.Full {
		t.Fatalf("expected full storage at 100, got used=%d full=%v", snap.Used, snap.Full)
	}
	if len(snap.Items) != 2 {
		t.Fatalf("rejected add must not create an item, got %d items", len(snap.Items))
	}
}

func TestRemovePrunesEmptyRows(t *testing.T) {
	db := testDB(t)
	_, stID := seedStorage(t, db, 100)
	svc := New(db)

	if _, err := svc.Add(stID, "wheat", 10, decimal.NewFromInt(1)); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := svc.Remove(stID, "wheat", 20); fault.KindOf(err) != fault.InsufficientStock {
		t.Fatalf("expected insufficient_stock, got %v", err)
	}
	if err := svc.Remove(stID, "oat", 1); fault.KindOf(err) != fault.InsufficientStock {
		t.Fatalf("expected insufficient_stock for absent item, got %v", err)
	}

	if err := svc.Remove(stID, "wheat", 10); err != nil {
		t.Fatalf("remove all: %v", err)
	}
	snap, _ := svc.Content(stID)
	if snap.Used != 0 || len(snap.Items) != 0 {
		t.Fatalf("expected empty storage, got used=%d items=%d", snap.Used, len(snap.Items))
	}
}

func TestSellCreditsFarmAndRecordsTransaction(t *testing.T) {
	db := testDB(t)
	farmID, stID := seedStorage(t, db, 1000)
	svc := New(db)

	if _, err := svc.Add(stID, "wheat", 10, decimal.RequireFromString("2.5")); err != nil {
		t.Fatalf("add: %v", err)
	}

	res, err := svc.Sell(stID, "wheat", 4)
	if err != nil {
		t.Fatalf("sell: %v", err)
	}
	if !res.TotalValue.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("expected total 10, got %s", res.TotalValue)
	}
	if res.RemainingQuantity != 6 {
		t.Fatalf("expected 6 remaining, got %d", res.RemainingQuantity)
	}

	var farm entities.Farm
	db.First(&farm, farmID)
	if !farm.Cash.Equal(decimal.NewFromInt(110)) {
		t.Fatalf("expected farm cash 110, got %s", farm.Cash)
	}

	var rec entities.Transaction
	if err := db.First(&rec, res.TransactionID).Error; err != nil {
		t.Fatalf("transaction row: %v", err)
	}
	if rec.Action != "sell" || rec.Quantity != 4 {
		t.Fatalf("unexpected transaction %+v", rec)
	}

	_, err = svc.Sell(stID, "wheat", 7)
	if fault.KindOf(err) != fault.InsufficientStock {
		t.Fatalf("expected insufficient_stock, got %v", err)
	}
}

func TestSellEmitsSingleEvent(t *testing.T) {
	db := testDB(t)
	_, stID := seedStorage(t, db, 1000)
	svc := New(db)

	if _, err := svc.Add(stID, "wheat", 10, decimal.RequireFromString("2.5")); err != nil {
		t.Fatalf("add: %v", err)
	}

	var events []service.Event
	id := svc.Subscribe(func(ev service.Event) { events = append(events, ev) })
	defer svc.Unsubscribe(id)

	if _, err := svc.Sell(stID, "wheat", 4); err != nil {
		t.Fatalf("sell: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("one sale must emit one event, got %+v", events)
	}
	ev := events[0]
	if ev.Type != service.EventItemSold || ev.Delta != -4 || ev.Quantity != 6 {
		t.Fatalf("unexpected sale event %+v", ev)
	}
	if !ev.TotalValue.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("expected proceeds 10 on the event, got %s", ev.TotalValue)
	}
}

func TestNonPositiveQuantityIsInvalidArgument(t *testing.T) {
	db := testDB(t)
	_, stID := seedStorage(t, db, 100)
	svc := New(db)

	one := decimal.NewFromInt(1)
	if _, err := svc.Add(stID, "wheat", 0, one); fault.KindOf(err) != fault.Validation {
		t.Fatalf("expected invalid_argument for zero deposit, got %v", err)
	}
	if _, err := svc.Add(stID, "wheat", -5, one); fault.KindOf(err) != fault.Validation {
		t.Fatalf("expected invalid_argument for negative deposit, got %v", err)
	}
	if err := svc.Remove(stID, "wheat", 0); fault.KindOf(err) != fault.Validation {
		t.Fatalf("expected invalid_argument for zero withdrawal, got %v", err)
	}
}

func TestEventsFireOnlyAfterCommit(t *testing.T) {
	db := testDB(t)
	_, stID := seedStorage(t, db, 50)
	svc := New(db)

	var events []service.Event
	id := svc.Subscribe(func(ev service.Event) { events = append(events, ev) })
	defer svc.Unsubscribe(id)

	if _, err := svc.Add(stID, "wheat", 20, decimal.NewFromInt(1)); err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(events) != 1 || events[0].Type != service.EventItemAdded {
		t.Fatalf("expected one item_added event, got %+v", events)
	}

	events = nil
	err := svc.Atomic(stID, func(tx *gorm.DB, m service.Mutator) error {
		if err := m.Deposit("barley", 10, decimal.NewFromInt(1)); err != nil {
			return err
		}
		return m.Deposit("corn", 100, decimal.NewFromInt(1)) // exceeds capacity
	})
	if fault.KindOf(err) != fault.CapacityExceeded {
		t.Fatalf("expected capacity_exceeded, got %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("rolled back batch must emit no events, got %+v", events)
	}

	snap, _ := svc.Content(stID)
	if snap.Used != 20 {
		t.Fatalf("rollback must leave volume at 20, got %d", snap.Used)
	}
}
