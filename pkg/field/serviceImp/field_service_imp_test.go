package serviceImp

import (
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/JoeDalton318/farming-simulator/database"
	"github.com/JoeDalton318/farming-simulator/entities"
	"github.com/JoeDalton318/farming-simulator/pkg/catalog"
	"github.com/JoeDalton318/farming-simulator/pkg/clock"
	"github.com/JoeDalton318/farming-simulator/pkg/fault"
	"github.com/JoeDalton318/farming-simulator/pkg/field/service"
	equipmentImp "github.com/JoeDalton318/farming-simulator/pkg/equipment/serviceImp"
	ledgerImp "github.com/JoeDalton318/farming-simulator/pkg/ledger/serviceImp"
)

type fixture struct {
	db    *gorm.DB
	clk   *clock.Virtual
	svc   service.FieldService
	farm  *entities.Farm
	field uint
}

func newFixture(t *testing.T) *fixture {
	return newFixtureCap(t, 100000)
}

func newFixtureCap(t *testing.T, capacity int64) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	farm, err := database.Seed(db, capacity)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	clk := clock.NewVirtual(time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC))
	led := ledgerImp.New(db)
	pool := equipmentImp.New(db, clk)
	svc := New(db, clk, catalog.NewDefault(), pool, led, 30*time.Second)

	var f entities.Field
	if err := db.Where("farm_id = ? AND number = ?", farm.FarmID, 1).First(&f).Error; err != nil {
		t.Fatalf("seeded field: %v", err)
	}
	return &fixture{db: db, clk: clk, svc: svc, farm: farm, field: f.FieldID}
}

func TestCultivationCycle(t *testing.T) {
	fx := newFixture(t)

	f, err := fx.svc.Plow(fx.field)
	if err != nil {
		t.Fatalf("plow: %v", err)
	}
	if f.Stage != entities.StagePlowed {
		t.Fatalf("expected plowed, got %s", f.Stage)
	}

	f, err = fx.svc.Plant(fx.field, "wheat")
	if err != nil {
		t.Fatalf("plant: %v", err)
	}
	if f.Stage != entities.StageSeeded || f.CropType != "wheat" || f.ExpectedYield != 1000 {
		t.Fatalf("unexpected field after plant: %+v", f)
	}
	if f.ReadyAt == nil || !f.ReadyAt.Equal(fx.clk.Now().Add(2*time.Minute)) {
		t.Fatalf("expected ready in 2 minutes, got %v", f.ReadyAt)
	}

	// Still growing: harvest must be refused.
	if _, err := fx.svc.Harvest(fx.field); fault.KindOf(err) != fault.Transition {
		t.Fatalf("expected invalid_transition on premature harvest, got %v", err)
	}

	fx.clk.Advance(2 * time.Minute)
	n, err := fx.svc.GrowthSweep()
	if err != nil {
		t.Fatalf("growth sweep: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 field advanced, got %d", n)
	}

	st, err := fx.svc.Status(fx.field)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if st.Stage != entities.StageReady {
		t.Fatalf("expected ready after sweep, got %s", st.Stage)
	}

	res, err := fx.svc.Harvest(fx.field)
	if err != nil {
		t.Fatalf("harvest: %v", err)
	}
	if res.Yield != 1000 || res.CropType != "wheat" {
		t.Fatalf("unexpected harvest %+v", res)
	}

	f, _ = fx.svc.Plow(fx.field) // harvested field is fallow again
	if f == nil || f.Stage != entities.StagePlowed {
		t.Fatalf("field must reset to fallow after harvest")
	}

	var item entities.StorageItem
	if err := fx.db.Where("storage_id = ? AND item_type = ?", res.StorageID, "wheat").First(&item).Error; err != nil {
		t.Fatalf("harvested wheat not in storage: %v", err)
	}
	if item.Quantity != 1000 {
		t.Fatalf("expected 1000 wheat stored, got %d", item.Quantity)
	}
}

func TestFertilizerBoostsYield(t *testing.T) {
	fx := newFixture(t)

	if _, err := fx.svc.Plow(fx.field); err != nil {
		t.Fatalf("plow: %v", err)
	}
	if _, err := fx.svc.Plant(fx.field, "wheat"); err != nil {
		t.Fatalf("plant: %v", err)
	}
	if _, err := fx.svc.Fertilize(fx.field); err != nil {
		t.Fatalf("fertilize: %v", err)
	}

	fx.clk.Advance(2 * time.Minute)
	if _, err := fx.svc.GrowthSweep(); err != nil {
		t.Fatalf("growth sweep: %v", err)
	}

	res, err := fx.svc.Harvest(fx.field)
	if err != nil {
		t.Fatalf("harvest: %v", err)
	}
	if res.Yield != 1500 || !res.Fertilized {
		t.Fatalf("expected fertilized yield 1500, got %+v", res)
	}
}

func TestTransitionTable(t *testing.T) {
	fx := newFixture(t)

	// Planting a fallow field skips plowing.
	if _, err := fx.svc.Plant(fx.field, "wheat"); fault.KindOf(err) != fault.Transition {
		t.Fatalf("expected invalid_transition, got %v", err)
	}
	// Fertilizing before seeding is meaningless.
	if _, err := fx.svc.Fertilize(fx.field); fault.KindOf(err) != fault.Transition {
		t.Fatalf("expected invalid_transition, got %v", err)
	}

	if _, err := fx.svc.Plow(fx.field); err != nil {
		t.Fatalf("plow: %v", err)
	}
	// Plowing twice is rejected.
	if _, err := fx.svc.Plow(fx.field); fault.KindOf(err) != fault.Transition {
		t.Fatalf("expected invalid_transition, got %v", err)
	}

	if _, err := fx.svc.Plant(fx.field, "moonberry"); fault.KindOf(err) != fault.UnknownCrop {
		t.Fatalf("expected unknown_crop, got %v", err)
	}
}

func TestHarvestHistory(t *testing.T) {
	fx := newFixture(t)

	fx.svc.Plow(fx.field)
	fx.svc.Plant(fx.field, "potato")
	fx.clk.Advance(2 * time.Minute)
	fx.svc.GrowthSweep()
	if _, err := fx.svc.Harvest(fx.field); err != nil {
		t.Fatalf("harvest: %v", err)
	}

	hist, err := fx.svc.History(fx.field)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(hist) != 3 {
		t.Fatalf("expected 3 history rows, got %d", len(hist))
	}
	actions := map[string]bool{}
	for _, h := range hist {
		actions[h.Action] = true
	}
	for _, want := range []string{"plow", "plant", "harvest"} {
		if !actions[want] {
			t.Fatalf("missing %s in history %+v", want, hist)
		}
	}
}

func TestHarvestRollsBackOnFullStorage(t *testing.T) {
	fx := newFixtureCap(t, 500) // wheat yields 1000, so the deposit must fail

	fx.svc.Plow(fx.field)
	fx.svc.Plant(fx.field, "wheat")
	fx.clk.Advance(2 * time.Minute)
	fx.svc.GrowthSweep()

	_, err := fx.svc.Harvest(fx.field)
	if fault.KindOf(err) != fault.CapacityExceeded {
		t.Fatalf("expected capacity_exceeded, got %v", err)
	}

	// The field must stay ready with its crop so a retry is possible.
	st, err := fx.svc.Status(fx.field)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if st.Stage != entities.StageReady || st.CropType != "wheat" || st.ExpectedYield != 1000 {
		t.Fatalf("failed harvest must leave the field untouched, got %+v", st)
	}

	// No harvest row and no stored grain either.
	var harvests int64
	fx.db.Model(&entities.FieldHistory{}).
		Where("field_id = ? AND action = ?", fx.field, "harvest").Count(&harvests)
	if harvests != 0 {
		t.Fatalf("failed harvest must not be recorded, got %d rows", harvests)
	}
	var storage entities.Storage
	if err := fx.db.Where("farm_id = ? AND type = ?", fx.farm.FarmID, entities.StorageTypeMain).
		First(&storage).Error; err != nil {
		t.Fatalf("main storage: %v", err)
	}
	if storage.CurrentVolume != 0 {
		t.Fatalf("failed harvest must not change the ledger, got volume %d", storage.CurrentVolume)
	}
}

func TestPlantLeasesCropVariants(t *testing.T) {
	fx := newFixture(t)
	pool := equipmentImp.New(fx.db, fx.clk)

	var grapePlanter entities.Equipment
	if err := fx.db.Where("farm_id = ? AND kind = ? AND subtype = ?",
		fx.farm.FarmID, "planter", "grape").First(&grapePlanter).Error; err != nil {
		t.Fatalf("grape planter: %v", err)
	}
	if err := pool.MarkMaintenance(grapePlanter.EquipmentID); err != nil {
		t.Fatalf("mark maintenance: %v", err)
	}

	// Standard planters are free, but grape demands its own variant.
	fx.svc.Plow(fx.field)
	if _, err := fx.svc.Plant(fx.field, "grape"); fault.KindOf(err) != fault.ResourceUnavailable {
		t.Fatalf("expected resource_unavailable without the grape planter, got %v", err)
	}

	if err := pool.ClearMaintenance(grapePlanter.EquipmentID); err != nil {
		t.Fatalf("clear maintenance: %v", err)
	}
	if _, err := fx.svc.Plant(fx.field, "grape"); err != nil {
		t.Fatalf("plant grape: %v", err)
	}
	if err := fx.db.First(&grapePlanter, grapePlanter.EquipmentID).Error; err != nil {
		t.Fatalf("reload grape planter: %v", err)
	}
	if grapePlanter.Available {
		t.Fatal("planting grape must lease the grape planter")
	}
}
