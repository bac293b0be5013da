package processors

import (
	"errors"
	"fmt"
	"sort"

	"github.com/username/premiado/src/logger"
	"github.com/username/premiado/src/models"
	"github.com/username/premiado/src/utils"
)

// ErrMalformedRecord marks a reservation missing a required field. The whole
// batch fails on the first malformed record rather than silently dropping it.
var ErrMalformedRecord = errors.New("malformed reservation record")

// ReservationProcessor flattens the upstream reservation map into sale
// records. Records whose raw agent name exactly matches an excluded name are
// skipped silently; that exclusion is configuration, not an error.
type ReservationProcessor struct {
	excludedAgents map[string]bool
}

func NewReservationProcessor(excludedAgents []string) *ReservationProcessor {
	excluded := make(map[string]bool, len(excludedAgents))
	for _, name := range excludedAgents {
		excluded[name] = true
	}
	return &ReservationProcessor{excludedAgents: excluded}
}

// Process maps reservation-id -> nested record into a flat, deterministic
// (key-ordered) list of sale records.
func (p *ReservationProcessor) Process(payload map[string]models.RawReservation) ([]models.SaleRecord, error) {
	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	records := make([]models.SaleRecord, 0, len(keys))
	skipped := 0
	for _, key := range keys {
		raw := payload[key]
		if raw.Agent == nil {
			return nil, fmt.Errorf("%w: reservation %s: missing corretor", ErrMalformedRecord, key)
		}
		// Excluded agents are skipped before the rest of the record is
		// looked at, so a malformed excluded reservation cannot fail the
		// batch.
		if p.excludedAgents[raw.Agent.Name] {
			skipped++
			continue
		}
		if err := validate(key, raw); err != nil {
			return nil, err
		}

		saleDate, err := utils.ParseSaleDate(raw.SaleDate)
		if err != nil {
			return nil, fmt.Errorf("%w: reservation %s: %v", ErrMalformedRecord, key, err)
		}

		records = append(records, models.SaleRecord{
			ReservationID: key,
			AgentName:     raw.Agent.Name,
			AgentID:       *raw.Agent.ID,
			Project:       raw.Unit.Project,
			Agency:        raw.Agent.Agency,
			ContractValue: *raw.Terms.ContractValue,
			SaleDate:      saleDate,
		})
	}

	if skipped > 0 && logger.L != nil {
		logger.L.Debug("Skipped reservations for excluded agents", "count", skipped)
	}
	return records, nil
}

func validate(key string, raw models.RawReservation) error {
	switch {
	case raw.Agent == nil:
		return fmt.Errorf("%w: reservation %s: missing corretor", ErrMalformedRecord, key)
	case raw.Agent.Name == "":
		return fmt.Errorf("%w: reservation %s: missing corretor.corretor", ErrMalformedRecord, key)
	case raw.Agent.ID == nil:
		return fmt.Errorf("%w: reservation %s: missing corretor.idcorretor_cv", ErrMalformedRecord, key)
	case raw.Agent.Agency == "":
		return fmt.Errorf("%w: reservation %s: missing corretor.imobiliaria", ErrMalformedRecord, key)
	case raw.Unit == nil:
		return fmt.Errorf("%w: reservation %s: missing unidade", ErrMalformedRecord, key)
	case raw.Unit.Project == "":
		return fmt.Errorf("%w: reservation %s: missing unidade.empreendimento", ErrMalformedRecord, key)
	case raw.Terms == nil:
		return fmt.Errorf("%w: reservation %s: missing condicoes", ErrMalformedRecord, key)
	case raw.Terms.ContractValue == nil:
		return fmt.Errorf("%w: reservation %s: missing condicoes.valor_contrato", ErrMalformedRecord, key)
	case raw.SaleDate == "":
		return fmt.Errorf("%w: reservation %s: missing data_venda", ErrMalformedRecord, key)
	}
	return nil
}
