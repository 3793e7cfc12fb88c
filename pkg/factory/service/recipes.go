package service

import "github.com/JoeDalton318/farming-simulator/pkg/fault"

// Kind is the closed set of factory types. RecipeFor is the single place a
// new kind must be wired; an unknown kind is an UnsupportedFactory fault,
// not a silent no-op.
type Kind string

const (
	OilMill         Kind = "oil_mill"
	Sawmill         Kind = "sawmill"
	SugarRefinery   Kind = "sugar_refinery"
	Spinnery        Kind = "spinnery"
	Winery          Kind = "winery"
	Bakery          Kind = "bakery"
	ChipFactory     Kind = "chip_factory"
	WagonFactory    Kind = "wagon_factory"
	ToyFactory      Kind = "toy_factory"
	TextileWorkshop Kind = "textile_workshop"
	ManureFactory   Kind = "manure_factory"
	Dairy           Kind = "dairy"
	ChocolateWorks  Kind = "chocolate_factory"
)

// Recipe declares what a factory kind consumes and produces. AnyOf accepts
// exactly one of the listed inputs; AllOf requires every listed input, with
// identical quantities when EqualQty is set (otherwise the smallest supplied
// quantity drives the batch). Output quantity and unit value both scale by
// Multiplier; the unit value aggregates the input unit values.
type Recipe struct {
	Output     string
	Multiplier int64
	AnyOf      []string
	AllOf      []string
	EqualQty   bool
}

func RecipeFor(kind Kind) (Recipe, error) {
	switch kind {
	case OilMill:
		return Recipe{Output: "oil", Multiplier: 2, AnyOf: []string{"sunflower", "olive", "canola"}}, nil
	case Sawmill:
		return Recipe{Output: "plank", Multiplier: 2, AnyOf: []string{"poplar"}}, nil
	case SugarRefinery:
		return Recipe{Output: "sugar", Multiplier: 2, AnyOf: []string{"beet", "sugar_cane"}}, nil
	case Spinnery:
		return Recipe{Output: "yarn", Multiplier: 2, AnyOf: []string{"cotton"}}, nil
	case Winery:
		return Recipe{Output: "wine", Multiplier: 2, AnyOf: []string{"grape"}}, nil
	case Bakery:
		return Recipe{Output: "cake", Multiplier: 18,
			AllOf: []string{"sugar", "flour", "eggs", "butter", "strawberry", "chocolate"}, EqualQty: true}, nil
	case ChipFactory:
		return Recipe{Output: "chips", Multiplier: 6, AllOf: []string{"potato", "oil"}}, nil
	case WagonFactory:
		return Recipe{Output: "wagon", Multiplier: 4, AnyOf: []string{"wood"}}, nil
	case ToyFactory:
		return Recipe{Output: "toy", Multiplier: 3, AllOf: []string{"wood", "fabric"}}, nil
	case TextileWorkshop:
		return Recipe{Output: "clothing", Multiplier: 4, AllOf: []string{"fabric", "wool"}, EqualQty: true}, nil
	case ManureFactory:
		return Recipe{Output: "fertilizer", Multiplier: 2, AnyOf: []string{"manure"}}, nil
	case Dairy:
		return Recipe{Output: "butter", Multiplier: 1, AnyOf: []string{"milk"}}, nil
	case ChocolateWorks:
		return Recipe{Output: "chocolate", Multiplier: 2, AllOf: []string{"cacao", "sugar", "milk"}}, nil
	}
	return Recipe{}, fault.New(fault.UnsupportedFactory, "factory kind %q is not supported", kind)
}
