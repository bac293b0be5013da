package processors

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/premiado/src/models"
)

func reservation(agent, project string, value int64, saleDate string) models.RawReservation {
	agentID := int64(7)
	contractValue := decimal.NewFromInt(value)
	return models.RawReservation{
		Agent:    &models.RawAgent{Name: agent, ID: &agentID, Agency: "BravoEA"},
		Unit:     &models.RawUnit{Project: project},
		Terms:    &models.RawTerms{ContractValue: &contractValue},
		SaleDate: saleDate,
	}
}

func TestProcessFlattensPayload(t *testing.T) {
	p := NewReservationProcessor(nil)
	payload := map[string]models.RawReservation{
		"res-2": reservation("maria silva", "BE DEODORO", 150000, "2024-02-01"),
		"res-1": reservation("joao prado", "BE BONIFÁCIO", 90000, "2024-01-15"),
	}

	records, err := p.Process(payload)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Output iterates in sorted key order.
	assert.Equal(t, "res-1", records[0].ReservationID)
	assert.Equal(t, "joao prado", records[0].AgentName)
	assert.Equal(t, "BE BONIFÁCIO", records[0].Project)
	assert.Equal(t, "BravoEA", records[0].Agency)
	assert.Equal(t, int64(7), records[0].AgentID)
	assert.True(t, records[0].ContractValue.Equal(decimal.NewFromInt(90000)))
	assert.Equal(t, 2024, records[0].SaleDate.Year())
	assert.Equal(t, "res-2", records[1].ReservationID)
}

func TestProcessSkipsExcludedAgent(t *testing.T) {
	excluded := "Evandro Rodrigues da Silva"
	p := NewReservationProcessor([]string{excluded})
	payload := map[string]models.RawReservation{
		"res-1": reservation(excluded, "BE DEODORO", 500000, "2024-01-01"),
		"res-2": reservation("maria silva", "BE DEODORO", 150000, "2024-02-01"),
	}

	records, err := p.Process(payload)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "maria silva", records[0].AgentName)

	// Exclusion is an exact raw-name match, not a normalized one.
	p = NewReservationProcessor([]string{"EVANDRO RODRIGUES DA SILVA"})
	records, err = p.Process(payload)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestProcessFailsOnMissingField(t *testing.T) {
	p := NewReservationProcessor(nil)

	broken := reservation("maria silva", "BE DEODORO", 150000, "2024-02-01")
	broken.Unit = nil
	payload := map[string]models.RawReservation{
		"res-1": reservation("joao prado", "BE BONIFÁCIO", 90000, "2024-01-15"),
		"res-2": broken,
	}

	records, err := p.Process(payload)
	require.ErrorIs(t, err, ErrMalformedRecord)
	assert.Contains(t, err.Error(), "res-2")
	assert.Contains(t, err.Error(), "unidade")
	assert.Nil(t, records, "a malformed record fails the whole batch")
}

func TestProcessFailsOnMissingScalarLeaf(t *testing.T) {
	p := NewReservationProcessor(nil)

	cases := []struct {
		name      string
		mutate    func(*models.RawReservation)
		wantField string
	}{
		{"empty condicoes", func(r *models.RawReservation) { r.Terms = &models.RawTerms{} }, "condicoes.valor_contrato"},
		{"missing agency", func(r *models.RawReservation) { r.Agent.Agency = "" }, "corretor.imobiliaria"},
		{"missing agent id", func(r *models.RawReservation) { r.Agent.ID = nil }, "corretor.idcorretor_cv"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			broken := reservation("maria silva", "BE DEODORO", 150000, "2024-02-01")
			tc.mutate(&broken)
			payload := map[string]models.RawReservation{"res-1": broken}

			records, err := p.Process(payload)
			require.ErrorIs(t, err, ErrMalformedRecord)
			assert.Contains(t, err.Error(), "res-1")
			assert.Contains(t, err.Error(), tc.wantField)
			assert.Nil(t, records)
		})
	}
}

func TestProcessFailsOnMissingLeavesInDecodedPayload(t *testing.T) {
	// Decoded from the wire, a present-but-empty condicoes block must not
	// slip a zero-valued record into the leaderboard.
	raw := `{
		"res-1": {
			"corretor": {"corretor": "joao prado"},
			"unidade": {"empreendimento": "BE DEODORO"},
			"condicoes": {},
			"data_venda": "2024-01-15"
		}
	}`
	var payload map[string]models.RawReservation
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))

	p := NewReservationProcessor(nil)
	records, err := p.Process(payload)
	require.ErrorIs(t, err, ErrMalformedRecord)
	assert.Contains(t, err.Error(), "res-1")
	assert.Nil(t, records)
}

func TestProcessSkipsMalformedExcludedAgent(t *testing.T) {
	excluded := "Evandro Rodrigues da Silva"
	p := NewReservationProcessor([]string{excluded})

	broken := reservation(excluded, "BE DEODORO", 500000, "2024-01-01")
	broken.Terms = nil // malformed, but the agent is excluded before validation
	payload := map[string]models.RawReservation{
		"res-1": broken,
		"res-2": reservation("maria silva", "BE DEODORO", 150000, "2024-02-01"),
	}

	records, err := p.Process(payload)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "maria silva", records[0].AgentName)
}

func TestProcessFailsOnBadSaleDate(t *testing.T) {
	p := NewReservationProcessor(nil)
	payload := map[string]models.RawReservation{
		"res-1": reservation("joao prado", "BE BONIFÁCIO", 90000, "not-a-date"),
	}

	_, err := p.Process(payload)
	require.ErrorIs(t, err, ErrMalformedRecord)
	assert.Contains(t, err.Error(), "res-1")
}

func TestProcessEmptyPayload(t *testing.T) {
	p := NewReservationProcessor(nil)
	records, err := p.Process(map[string]models.RawReservation{})
	require.NoError(t, err)
	assert.Empty(t, records)
}
