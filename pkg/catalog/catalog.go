// Package catalog holds the read-only crop reference data: growth time,
// yield, value and the equipment a planting run needs.
package catalog

import (
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	equipment "github.com/JoeDalton318/farming-simulator/pkg/equipment/service"
	"github.com/JoeDalton318/farming-simulator/pkg/fault"
)

type Crop struct {
	Name          string
	YieldPerHa    int64
	GrowthMinutes int
	BaseValue     decimal.Decimal
	Equipment     []equipment.Requirement // machines leased for a planting run
}

type Catalog struct {
	mu    sync.RWMutex
	crops map[string]Crop
}

// fieldKit builds the usual four-machine kit. Tractor and trailer take any
// unit; planter and harvester name the variant the crop calls for.
func fieldKit(planterSub, harvesterSub string) []equipment.Requirement {
	return []equipment.Requirement{
		{Kind: "tractor"},
		{Kind: "planter", Subtype: planterSub},
		{Kind: "harvester", Subtype: harvesterSub},
		{Kind: "trailer"},
	}
}

// defaults is the stock crop table; a workbook can override it.
var defaults = []Crop{
	{Name: "wheat", YieldPerHa: 1000, GrowthMinutes: 2, Equipment: fieldKit("standard", "standard")},
	{Name: "barley", YieldPerHa: 1000, GrowthMinutes: 2, Equipment: fieldKit("standard", "standard")},
	{Name: "oat", YieldPerHa: 1000, GrowthMinutes: 2, Equipment: fieldKit("standard", "standard")},
	{Name: "canola", YieldPerHa: 1000, GrowthMinutes: 2, Equipment: fieldKit("standard", "standard")},
	{Name: "soy", YieldPerHa: 1000, GrowthMinutes: 2, Equipment: fieldKit("standard", "standard")},
	{Name: "corn", YieldPerHa: 3000, GrowthMinutes: 2, Equipment: fieldKit("standard", "standard")},
	{Name: "sunflower", YieldPerHa: 3000, GrowthMinutes: 2, Equipment: fieldKit("standard", "standard")},
	{Name: "grape", YieldPerHa: 1500, GrowthMinutes: 2, Equipment: fieldKit("grape", "grape")},
	{Name: "olive", YieldPerHa: 1500, GrowthMinutes: 2, Equipment: fieldKit("tree", "olive")},
	{Name: "potato", YieldPerHa: 5000, GrowthMinutes: 2, Equipment: fieldKit("potato", "potato")},
	{Name: "beet", YieldPerHa: 3500, GrowthMinutes: 2, Equipment: fieldKit("standard", "beet")},
	{Name: "cotton", YieldPerHa: 750, GrowthMinutes: 2, Equipment: []equipment.Requirement{
		{Kind: "tractor"},
		{Kind: "planter", Subtype: "standard"},
		{Kind: "harvester", Subtype: "cotton"},
		{Kind: "trailer", Subtype: "semi"},
	}},
	{Name: "sugar_cane", YieldPerHa: 5000, GrowthMinutes: 2, Equipment: fieldKit("cane", "cane")},
	{Name: "poplar", YieldPerHa: 1500, GrowthMinutes: 2, Equipment: fieldKit("tree", "tree")},
	{Name: "vegetable", YieldPerHa: 2500, GrowthMinutes: 2, Equipment: fieldKit("vegetable", "vegetable")},
	{Name: "spinach", YieldPerHa: 3000, GrowthMinutes: 2, Equipment: fieldKit("standard", "spinach")},
	{Name: "pea", YieldPerHa: 7500, GrowthMinutes: 2, Equipment: fieldKit("standard", "pea")},
	{Name: "green_bean", YieldPerHa: 7500, GrowthMinutes: 2, Equipment: fieldKit("standard", "bean")},
	// Grass and cacao are hauled by hand, no trailer in the kit.
	{Name: "grass", YieldPerHa: 5000, GrowthMinutes: 1, BaseValue: decimal.NewFromFloat(0.5), Equipment: []equipment.Requirement{
		{Kind: "tractor"},
		{Kind: "planter", Subtype: "standard"},
		{Kind: "harvester", Subtype: "standard"},
	}},
	{Name: "cacao", YieldPerHa: 1000, GrowthMinutes: 3, BaseValue: decimal.NewFromInt(3), Equipment: []equipment.Requirement{
		{Kind: "tractor"},
		{Kind: "planter", Subtype: "tree"},
		{Kind: "harvester", Subtype: "tree"},
	}},
}

func NewDefault() *Catalog {
	c := &Catalog{crops: make(map[string]Crop, len(defaults))}
	for _, cr := range defaults {
		if cr.BaseValue.IsZero() {
			cr.BaseValue = decimal.NewFromInt(1)
		}
		if len(cr.Equipment) == 0 {
			cr.Equipment = fieldKit("standard", "standard")
		}
		c.crops[cr.Name] = cr
	}
	return c
}

func (c *Catalog) Lookup(name string) (Crop, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cr, ok := c.crops[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Crop{}, fault.New(fault.UnknownCrop, "crop %q is not in the catalog", name)
	}
	return cr, nil
}

func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.crops))
	for name := range c.crops {
		out = append(out, name)
	}
	return out
}

// reqString renders a requirement as "kind" or "kind:subtype"; parseReq is
// its inverse. This is the encoding used in workbook cells and in the
// persisted crops table.
func reqString(r equipment.Requirement) string {
	if r.Subtype == "" {
		return r.Kind
	}
	return r.Kind + ":" + r.Subtype
}

func parseReq(s string) equipment.Requirement {
	kind, subtype, _ := strings.Cut(s, ":")
	return equipment.Requirement{
		Kind:    strings.TrimSpace(kind),
		Subtype: strings.TrimSpace(subtype),
	}
}

func (c *Catalog) put(cr Crop) {
	c.mu.Lock()
	c.crops[cr.Name] = cr
	c.mu.Unlock()
}
