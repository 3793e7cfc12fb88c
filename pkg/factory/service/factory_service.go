package service

import (
	"github.com/shopspring/decimal"

	"github.com/JoeDalton318/farming-simulator/entities"
)

type InputItem struct {
	ItemType string `json:"item_type"`
	Quantity int64  `json:"quantity"`
}

type Output struct {
	FactoryID      uint            `json:"factory_id"`
	FarmID         uint            `json:"farm_id"`
	FactoryKind    string          `json:"factory_kind"`
	ItemType       string          `json:"item_type"`
	Quantity       int64           `json:"quantity"`
	ValuePerUnit   decimal.Decimal `json:"value_per_unit"`
	ProcessingSecs int64           `json:"processing_secs"`
}

// FactoryService turns ledger-resident raw materials into higher-value
// goods. Inputs are withdrawn and the output deposited in one atomic ledger
// transaction; the modeled processing time elapses in between validation
// and the mutation.
type FactoryService interface {
	List(farmID uint) ([]entities.Factory, error)
	Process(factoryID uint, inputs []InputItem) (*Output, error)
	SetOperational(factoryID uint, operational bool) error
}
