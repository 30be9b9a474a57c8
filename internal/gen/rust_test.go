package gen

import (
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lanabank/scenariogen/internal/scenario"
	"github.com/lanabank/scenariogen/internal/translate"
)

func fixtureScenario() *scenario.Scenario {
	return &scenario.Scenario{
		Name:        "Basic Lending Flow",
		Description: "Customer deposits, opens a facility, draws down",
		Seed:        42,
		StartTime:   time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		Events: []scenario.Event{
			{EventType: "CustomerEvent::Initialized", Entity: "customer_1", Values: map[string]any{}},
			{EventType: "DepositEvent::Initialized", Entity: "deposit_1", After: 24 * time.Hour, Values: map[string]any{
				"amount": 1000000,
			}},
			{EventType: "CollateralEvent::UpdatedViaManualInput", Entity: "collateral_1", Values: map[string]any{
				"collateral": 60000000,
			}},
			{EventType: "CreditFacilityEvent::Initialized", Entity: "facility_1", After: 3 * 24 * time.Hour, Values: map[string]any{
				"customer_id_ref":   "customer_1_ref",
				"collateral_id_ref": "collateral_1_ref",
				"amount":            500000,
				"terms": map[string]any{
					"annual_rate": "0.10",
					"duration":    map[string]any{"Months": 6},
				},
			}},
			{EventType: "DisbursalEvent::Initialized", Entity: "disbursal_1", After: 24 * time.Hour, Values: map[string]any{
				"amount": 250000,
			}},
			{EventType: "PaymentEvent::Initialized", Entity: "payment_1", After: 30 * 24 * time.Hour, Values: map[string]any{
				"amount": 52500,
			}},
			{EventType: "FooEvent::Bar", Entity: "foo_1", Values: map[string]any{}},
		},
	}
}

func TestScenarioGolden(t *testing.T) {
	g, err := New()
	require.NoError(t, err)

	s := fixtureScenario()
	actions, tracker := translate.Translate(s)
	code, err := g.Scenario(s, actions, tracker)
	require.NoError(t, err)

	gold := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	gold.Assert(t, "basic_lending_flow", code)
}

func TestModFileGolden(t *testing.T) {
	g, err := New()
	require.NoError(t, err)

	code, err := g.ModFile([]*scenario.Scenario{
		{Name: "Basic Lending Flow"},
		{Name: "Interest Accrual"},
	})
	require.NoError(t, err)

	gold := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	gold.Assert(t, "mod", code)
}

func TestScenarioRenderDeterministic(t *testing.T) {
	g, err := New()
	require.NoError(t, err)

	s := fixtureScenario()
	actions, tracker := translate.Translate(s)

	first, err := g.Scenario(s, actions, tracker)
	require.NoError(t, err)
	second, err := g.Scenario(s, actions, tracker)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestScenarioWithoutDescription(t *testing.T) {
	g, err := New()
	require.NoError(t, err)

	s := &scenario.Scenario{
		Name:      "No Description",
		StartTime: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
	}
	code, err := g.Scenario(s, nil, translate.NewEntityTracker())
	require.NoError(t, err)

	out := string(code)
	assert.Contains(t, out, "// Scenario: No Description\n\nuse")
	assert.Contains(t, out, "pub async fn no_description(")
}

func TestScenarioRendersLiquidationDays(t *testing.T) {
	g, err := New()
	require.NoError(t, err)

	days := 7
	terms := translate.NewTermsValues(nil)
	terms.LiquidationDays = &days

	actions := []translate.SimAction{{
		Type:   translate.ActionCreateProposal,
		Entity: "facility_1",
		Params: translate.CreateProposalParams{
			CustomerRef: "customer_1",
			Terms:       terms,
		},
	}}

	s := &scenario.Scenario{Name: "liq", StartTime: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}
	code, err := g.Scenario(s, actions, translate.NewEntityTracker())
	require.NoError(t, err)

	assert.Contains(t, string(code), ".obligation_liquidation_duration_from_due(FacilityDuration::Days(7))")
}
