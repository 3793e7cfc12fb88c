package serviceImp

import (
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/JoeDalton318/farming-simulator/database"
	"github.com/JoeDalton318/farming-simulator/entities"
	"github.com/JoeDalton318/farming-simulator/pkg/clock"
	"github.com/JoeDalton318/farming-simulator/pkg/fault"
	"github.com/JoeDalton318/farming-simulator/pkg/husbandry/service"
	ledgerImp "github.com/JoeDalton318/farming-simulator/pkg/ledger/serviceImp"
	"github.com/JoeDalton318/farming-simulator/pkg/lockmap"
)

type barn struct {
	db      *gorm.DB
	clk     *clock.Virtual
	svc     service.HusbandryService
	farmID  uint
	tankID  uint
	storage uint
}

func newBarn(t *testing.T) *barn {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	farm := entities.Farm{Name: "test", Cash: decimal.NewFromInt(10000)}
	if err := db.Create(&farm).Error; err != nil {
		t.Fatalf("create farm: %v", err)
	}
	st := entities.Storage{FarmID: farm.FarmID, Type: entities.StorageTypeMain, Capacity: 100000}
	if err := db.Create(&st).Error; err != nil {
		t.Fatalf("create storage: %v", err)
	}
	tank := entities.WaterTank{FarmID: farm.FarmID, Capacity: 20000, CurrentLevel: 20000}
	if err := db.Create(&tank).Error; err != nil {
		t.Fatalf("create tank: %v", err)
	}

	clk := clock.NewVirtual(time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC))
	svc := New(db, clk, ledgerImp.New(db), lockmap.New())
	return &barn{db: db, clk: clk, svc: svc, farmID: farm.FarmID, tankID: tank.TankID, storage: st.StorageID}
}

func (b *barn) cash(t *testing.T) decimal.Decimal {
	t.Helper()
	var farm entities.Farm
	if err := b.db.First(&farm, b.farmID).Error; err != nil {
		t.Fatalf("load farm: %v", err)
	}
	return farm.Cash
}

func (b *barn) tankLevel(t *testing.T) int64 {
	t.Helper()
	var tank entities.WaterTank
	if err := b.db.First(&tank, b.tankID).Error; err != nil {
		t.Fatalf("load tank: %v", err)
	}
	return tank.CurrentLevel
}

func TestBuyAnimalDeductsCost(t *testing.T) {
	b := newBarn(t)

	cow, err := b.svc.BuyAnimal(b.farmID, entities.SpeciesCow, "Berta")
	if err != nil {
		t.Fatalf("buy cow: %v", err)
	}
	if cow.Satiety != 10 || !cow.Alive || cow.WaterDraw != 3 {
		t.Fatalf("unexpected cow %+v", cow)
	}
	if !b.cash(t).Equal(decimal.NewFromInt(9990)) {
		t.Fatalf("expected cash 9990, got %s", b.cash(t))
	}

	if _, err := b.svc.BuyAnimal(b.farmID, "unicorn", "Star"); fault.KindOf(err) != fault.NotFound {
		t.Fatalf("expected not_found for unknown species, got %v", err)
	}
}

func TestBuyAnimalRequiresFunds(t *testing.T) {
	b := newBarn(t)
	b.db.Model(&entities.Farm{}).Where("farm_id = ?", b.farmID).Update("cash", decimal.NewFromInt(4))

	_, err := b.svc.BuyAnimal(b.farmID, entities.SpeciesSheep, "Dolly")
	if fault.KindOf(err) != fault.InsufficientFunds {
		t.Fatalf("expected insufficient_funds, got %v", err)
	}
	if !b.cash(t).Equal(decimal.NewFromInt(4)) {
		t.Fatalf("failed purchase must not touch cash, got %s", b.cash(t))
	}
}

func TestFeedClampsAndKills(t *testing.T) {
	b := newBarn(t)
	cow, err := b.svc.BuyAnimal(b.farmID, entities.SpeciesCow, "Berta")
	if err != nil {
		t.Fatalf("buy cow: %v", err)
	}

	fed, err := b.svc.Feed(cow.AnimalID, 5)
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if fed.Satiety != 10 {
		t.Fatalf("satiety caps at 10, got %d", fed.Satiety)
	}

	fed, err = b.svc.Feed(cow.AnimalID, -15)
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if fed.Satiety != -5 || fed.Alive {
		t.Fatalf("starved animal must die at -5, got %+v", fed)
	}

	// Death is permanent: feeding a dead animal fails.
	if _, err := b.svc.Feed(cow.AnimalID, 10); fault.KindOf(err) != fault.ResourceUnavailable {
		t.Fatalf("expected resource_unavailable, got %v", err)
	}
}

func TestCollectCow(t *testing.T) {
	b := newBarn(t)
	cow, err := b.svc.BuyAnimal(b.farmID, entities.SpeciesCow, "Berta")
	if err != nil {
		t.Fatalf("buy cow: %v", err)
	}

	res, err := b.svc.Collect(cow.AnimalID, b.tankID)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if res.Products["milk"] != 20 || res.Products["manure"] != 5 {
		t.Fatalf("unexpected products %+v", res.Products)
	}
	if b.tankLevel(t) != 19997 {
		t.Fatalf("expected 3L drawn, tank at %d", b.tankLevel(t))
	}

	var milk entities.StorageItem
	if err := b.db.Where("storage_id = ? AND item_type = ?", b.storage, "milk").First(&milk).Error; err != nil {
		t.Fatalf("milk not stored: %v", err)
	}
	if milk.Quantity != 20 {
		t.Fatalf("expected 20 milk, got %d", milk.Quantity)
	}

	rep, _ := b.svc.Health(cow.AnimalID)
	if rep.Satiety != 7 || rep.State != "healthy" {
		t.Fatalf("collection burns 3 feed, got %+v", rep)
	}
}

func TestCollectRefusesHungryAnimal(t *testing.T) {
	b := newBarn(t)
	cow, err := b.svc.BuyAnimal(b.farmID, entities.SpeciesCow, "Berta")
	if err != nil {
		t.Fatalf("buy cow: %v", err)
	}
	b.db.Model(&entities.Animal{}).Where("animal_id = ?", cow.AnimalID).Update("satiety", -1)

	if _, err := b.svc.Collect(cow.AnimalID, b.tankID); fault.KindOf(err) != fault.ResourceUnavailable {
		t.Fatalf("expected resource_unavailable, got %v", err)
	}

	rep, _ := b.svc.Health(cow.AnimalID)
	if rep.State != "deficit" {
		t.Fatalf("expected deficit state, got %q", rep.State)
	}
}

func TestCollectFailsOnEmptyTank(t *testing.T) {
	b := newBarn(t)
	cow, err := b.svc.BuyAnimal(b.farmID, entities.SpeciesCow, "Berta")
	if err != nil {
		t.Fatalf("buy cow: %v", err)
	}
	b.db.Model(&entities.WaterTank{}).Where("tank_id = ?", b.tankID).Update("current_level", 2)

	if _, err := b.svc.Collect(cow.AnimalID, b.tankID); fault.KindOf(err) != fault.ResourceUnavailable {
		t.Fatalf("expected resource_unavailable, got %v", err)
	}

	// The aborted run must leave satiety and storage untouched.
	rep, _ := b.svc.Health(cow.AnimalID)
	if rep.Satiety != 10 {
		t.Fatalf("aborted collect must not burn feed, satiety %d", rep.Satiety)
	}
	var count int64
	b.db.Model(&entities.StorageItem{}).Where("storage_id = ?", b.storage).Count(&count)
	if count != 0 {
		t.Fatalf("aborted collect must not deposit, found %d items", count)
	}
}

func TestGreenhouseCycle(t *testing.T) {
	b := newBarn(t)
	gh := entities.Greenhouse{FarmID: b.farmID, WaterDraw: 15}
	if err := b.db.Create(&gh).Error; err != nil {
		t.Fatalf("create greenhouse: %v", err)
	}

	// Inactive greenhouses do not produce.
	if _, err := b.svc.Produce(gh.GreenhouseID, b.tankID); fault.KindOf(err) != fault.ResourceUnavailable {
		t.Fatalf("expected resource_unavailable, got %v", err)
	}

	if _, err := b.svc.ActivateGreenhouse(gh.GreenhouseID, b.tankID); err != nil {
		t.Fatalf("activate: %v", err)
	}
	res, err := b.svc.Produce(gh.GreenhouseID, b.tankID)
	if err != nil {
		t.Fatalf("produce: %v", err)
	}
	if res.ItemType != "strawberry" || res.Quantity != 1500 {
		t.Fatalf("unexpected production %+v", res)
	}
	if b.tankLevel(t) != 19985 {
		t.Fatalf("expected 15L drawn, tank at %d", b.tankLevel(t))
	}

	if _, err := b.svc.DeactivateGreenhouse(gh.GreenhouseID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if _, err := b.svc.Produce(gh.GreenhouseID, b.tankID); fault.KindOf(err) != fault.ResourceUnavailable {
		t.Fatalf("deactivated greenhouse must not produce, got %v", err)
	}
}

func TestGreenhouseActivationNeedsWater(t *testing.T) {
	b := newBarn(t)
	gh := entities.Greenhouse{FarmID: b.farmID, WaterDraw: 15}
	if err := b.db.Create(&gh).Error; err != nil {
		t.Fatalf("create greenhouse: %v", err)
	}
	b.db.Model(&entities.WaterTank{}).Where("tank_id = ?", b.tankID).Update("current_level", 10)

	if _, err := b.svc.ActivateGreenhouse(gh.GreenhouseID, b.tankID); fault.KindOf(err) != fault.ResourceUnavailable {
		t.Fatalf("expected resource_unavailable, got %v", err)
	}
}

func TestFeedAllReportsPerAnimal(t *testing.T) {
	b := newBarn(t)
	cow, _ := b.svc.BuyAnimal(b.farmID, entities.SpeciesCow, "Berta")
	hen, _ := b.svc.BuyAnimal(b.farmID, entities.SpeciesChicken, "Hilda")
	b.db.Model(&entities.Animal{}).Where("animal_id = ?", cow.AnimalID).Update("satiety", 2)

	outcomes, err := b.svc.FeedAll(b.farmID, 3)
	if err != nil {
		t.Fatalf("feed all: %v", err)
	}
	if len(outcomes) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(outcomes))
	}
	for _, o := range outcomes {
		switch o.AnimalID {
		case cow.AnimalID:
			if o.Satiety != 5 {
				t.Fatalf("cow satiety expected 5, got %d", o.Satiety)
			}
		case hen.AnimalID:
			if o.Satiety != 10 {
				t.Fatalf("chicken satiety caps at 10, got %d", o.Satiety)
			}
		}
	}
}
