package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawReservation mirrors one node of the upstream reservations payload.
// The payload is a JSON object keyed by reservation id; field names follow
// the upstream API. Nested objects are pointers so a missing block is
// distinguishable from an empty one.
type RawReservation struct {
	Agent    *RawAgent `json:"corretor"`
	Unit     *RawUnit  `json:"unidade"`
	Terms    *RawTerms `json:"condicoes"`
	SaleDate string    `json:"data_venda"`
}

type RawAgent struct {
	Name   string `json:"corretor"`
	ID     *int64 `json:"idcorretor_cv"`
	Agency string `json:"imobiliaria"`
}

type RawUnit struct {
	Project string `json:"empreendimento"`
}

// Scalar leaves the batch cannot proceed without are pointers, like the
// nested blocks above: a zero contract value and an absent one must not be
// conflated.
type RawTerms struct {
	ContractValue *decimal.Decimal `json:"valor_contrato"`
}

// SaleRecord is one flattened reservation. Immutable once built.
type SaleRecord struct {
	ReservationID string          `json:"reservation_id"`
	AgentName     string          `json:"agent_name"`
	AgentID       int64           `json:"agent_id"`
	Project       string          `json:"project"`
	Agency        string          `json:"agency"`
	ContractValue decimal.Decimal `json:"contract_value"`
	SaleDate      time.Time       `json:"sale_date"`
}

// RankingEntry is one leaderboard row: a display-ready agent name and the
// summed contract value of that agent's records.
type RankingEntry struct {
	DisplayName string          `json:"displayName"`
	TotalValue  decimal.Decimal `json:"totalValue"`
}

// GoalProgress reports total sales against the two configured goals.
// Band is "red" below the first goal, "yellow" below the second, "green" at or above it.
type GoalProgress struct {
	Total      decimal.Decimal    `json:"total"`
	Thresholds [2]decimal.Decimal `json:"thresholds"`
	Band       string             `json:"band"`
}
