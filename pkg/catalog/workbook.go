package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	equipment "github.com/JoeDalton318/farming-simulator/pkg/equipment/service"
)

// LoadWorkbook overlays crop rows from an xlsx sheet onto the catalog.
// Expected headers (any casing, spaces/underscores ignored): Name, Yield,
// GrowthMinutes, BaseValue, Equipment (comma-separated kind:subtype pairs).
func (c *Catalog) LoadWorkbook(path string) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return err
	}
	if len(rows) < 2 {
		return fmt.Errorf("workbook %s: no crop rows", path)
	}

	norm := func(s string) string {
		s = strings.TrimSpace(strings.ToLower(s))
		s = strings.ReplaceAll(s, " ", "")
		s = strings.ReplaceAll(s, "_", "")
		return s
	}
	col := map[string]int{}
	for i, h := range rows[0] {
		col[norm(h)] = i
	}
	find := func(keys ...string) int {
		for _, k := range keys {
			if idx, ok := col[k]; ok {
				return idx
			}
		}
		return -1
	}

	cName := find("name", "crop")
	cYield := find("yield", "yieldperha", "yieldperhectare")
	cGrowth := find("growthminutes", "growth", "growthtime")
	cValue := find("basevalue", "value")
	cEquip := find("equipment", "equipmentneeds")
	if cName < 0 || cYield < 0 {
		return fmt.Errorf("workbook %s: missing name/yield columns", path)
	}

	cell := func(row []string, i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	for _, row := range rows[1:] {
		name := strings.ToLower(cell(row, cName))
		if name == "" {
			continue
		}
		cr := Crop{Name: name, GrowthMinutes: 2, BaseValue: decimal.NewFromInt(1), Equipment: fieldKit("standard", "standard")}
		if y, err := strconv.ParseInt(cell(row, cYield), 10, 64); err == nil {
			cr.YieldPerHa = y
		}
		if g, err := strconv.Atoi(cell(row, cGrowth)); err == nil && g > 0 {
			cr.GrowthMinutes = g
		}
		if v, err := decimal.NewFromString(cell(row, cValue)); err == nil && !v.IsZero() {
			cr.BaseValue = v
		}
		if eq := cell(row, cEquip); eq != "" {
			var reqs []equipment.Requirement
			for _, tok := range strings.Split(eq, ",") {
				if tok = strings.TrimSpace(tok); tok != "" {
					reqs = append(reqs, parseReq(tok))
				}
			}
			if len(reqs) > 0 {
				cr.Equipment = reqs
			}
		}
		c.put(cr)
	}
	return nil
}
