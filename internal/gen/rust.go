// Package gen renders translated action plans as Rust source for the
// sim-bootstrap harness. It is mechanical: every semantic decision has
// already been made by the translator, so rendering is a straight mapping
// from canonical action parameters to source text.
package gen

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
	"time"

	"github.com/lanabank/scenariogen/internal/scenario"
	"github.com/lanabank/scenariogen/internal/translate"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Generator renders scenarios and the module manifest from embedded
// templates. A Generator is stateless and safe for concurrent use.
type Generator struct {
	tmpl *template.Template
}

// New parses the embedded templates.
func New() (*Generator, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &Generator{tmpl: tmpl}, nil
}

type scenarioData struct {
	Name        string
	Description string
	ModuleName  string
	Seed        int64
	StartTime   string
	Body        string
}

// Scenario renders one scenario's Rust source from its translated plan.
// The action list and the tracker arrive together as the translator's
// output unit; every cross-reference is already resolved into the action
// params, so rendering reads the tracker only if a future action kind
// needs a lookup the translator does not bake in.
func (g *Generator) Scenario(s *scenario.Scenario, actions []translate.SimAction, tracker *translate.EntityTracker) ([]byte, error) {
	var body bytes.Buffer
	for _, a := range actions {
		if err := renderAction(&body, a); err != nil {
			return nil, err
		}
		if a.WaitDays > 0 {
			fmt.Fprintf(&body, "    sim.advance_days(%d).await?;\n", a.WaitDays)
		}
		body.WriteByte('\n')
	}

	data := scenarioData{
		Name:        s.Name,
		Description: s.Description,
		ModuleName:  s.ModuleName(),
		Seed:        s.Seed,
		StartTime:   s.StartTime.UTC().Format(time.RFC3339),
		Body:        body.String(),
	}

	var out bytes.Buffer
	if err := g.tmpl.ExecuteTemplate(&out, "scenario.rs.tmpl", data); err != nil {
		return nil, fmt.Errorf("rendering scenario %q: %w", s.Name, err)
	}
	return out.Bytes(), nil
}

// ModFile renders the mod.rs manifest declaring every generated scenario
// module and a run_all entry point.
func (g *Generator) ModFile(scenarios []*scenario.Scenario) ([]byte, error) {
	modules := make([]string, 0, len(scenarios))
	for _, s := range scenarios {
		modules = append(modules, s.ModuleName())
	}

	var out bytes.Buffer
	err := g.tmpl.ExecuteTemplate(&out, "mod.rs.tmpl", struct{ Modules []string }{modules})
	if err != nil {
		return nil, fmt.Errorf("rendering mod.rs: %w", err)
	}
	return out.Bytes(), nil
}

// renderAction writes the Rust statements for one action. The switch is
// exhaustive over the parameter structs the translator can produce.
func renderAction(w *bytes.Buffer, a translate.SimAction) error {
	switch p := a.Params.(type) {
	case translate.CreateCustomerParams:
		fmt.Fprintf(w, "    let %s = sim.create_customer(%q, %q, CustomerType::%s).await?;\n",
			a.Entity, p.Suffix, p.Email, p.CustomerType)

	case translate.MakeDepositParams:
		fmt.Fprintf(w, "    sim.make_deposit(%q, dec!(%s)).await?;\n", a.Entity, p.AmountUSD)

	case translate.CreateProposalParams:
		renderTerms(w, a.Entity, p.Terms)
		fmt.Fprintf(w, "    sim.create_proposal(%q, &%s, dec!(%s), %s_terms).await?;\n",
			a.Entity, p.CustomerRef, p.AmountUSD, a.Entity)

	case translate.UpdateCollateralParams:
		if a.Type == translate.ActionUpdateCollateralForActivation {
			fmt.Fprintf(w, "    sim.update_collateral_for_activation(%q, Satoshis::from(%d)).await?;\n",
				a.Entity, p.Satoshis)
		} else {
			fmt.Fprintf(w, "    sim.update_collateral(%q, Satoshis::from(%d)).await?;\n",
				a.Entity, p.Satoshis)
		}

	case translate.InitiateDisbursalParams:
		fmt.Fprintf(w, "    sim.initiate_disbursal(%q, dec!(%s)).await?;\n", a.Entity, p.AmountUSD)

	case translate.RecordPaymentParams:
		fmt.Fprintf(w, "    sim.record_payment(%q, dec!(%s)).await?;\n", a.Entity, p.AmountUSD)

	case translate.CommentParams:
		fmt.Fprintf(w, "    // %s\n", p.Text)

	case translate.NoParams:
		return renderBareAction(w, a)

	default:
		return fmt.Errorf("no renderer for action %q", a.Type)
	}
	return nil
}

// renderBareAction handles the parameterless action kinds.
func renderBareAction(w *bytes.Buffer, a translate.SimAction) error {
	switch a.Type {
	case translate.ActionConcludeCustomerApproval:
		fmt.Fprintf(w, "    sim.conclude_customer_approval(%q).await?;\n", a.Entity)
	case translate.ActionWaitForApproval:
		fmt.Fprintf(w, "    sim.wait_for_approval(%q).await?;\n", a.Entity)
	case translate.ActionWaitForFacilityActivation:
		fmt.Fprintf(w, "    sim.wait_for_facility_activation(%q).await?;\n", a.Entity)
	case translate.ActionWaitForDisbursal:
		fmt.Fprintf(w, "    sim.wait_for_disbursal(%q).await?;\n", a.Entity)
	case translate.ActionCompleteFacility:
		fmt.Fprintf(w, "    sim.complete_facility(%q).await?;\n", a.Entity)
	case translate.ActionCreateTermsTemplate:
		fmt.Fprintf(w, "    sim.create_terms_template(%q).await?;\n", a.Entity)
	case translate.ActionAdvanceTime:
		// The clock movement itself rides on WaitDays; leave a marker so
		// the generated source still shows the event.
		fmt.Fprintf(w, "    // %s: time-driven transition\n", a.Entity)
	default:
		return fmt.Errorf("no renderer for action %q", a.Type)
	}
	return nil
}

// renderTerms writes the TermsInput builder chain for a proposal.
func renderTerms(w *bytes.Buffer, entity string, t translate.TermsValues) {
	fmt.Fprintf(w, "    let %s_terms = TermsInput::builder()\n", entity)
	fmt.Fprintf(w, "        .annual_rate(dec!(%s))\n", t.AnnualRate)
	fmt.Fprintf(w, "        .duration(FacilityDuration::Months(%d))\n", t.DurationMonths)
	fmt.Fprintf(w, "        .interest_due_duration_from_accrual(FacilityDuration::Days(%d))\n", t.InterestDueDays)
	fmt.Fprintf(w, "        .obligation_overdue_duration_from_due(FacilityDuration::Days(%d))\n", t.OverdueDays)
	if t.LiquidationDays != nil {
		fmt.Fprintf(w, "        .obligation_liquidation_duration_from_due(FacilityDuration::Days(%d))\n", *t.LiquidationDays)
	}
	fmt.Fprintf(w, "        .accrual_interval(InterestInterval::%s)\n", t.AccrualInterval)
	fmt.Fprintf(w, "        .accrual_cycle_interval(InterestInterval::%s)\n", t.AccrualCycleInterval)
	fmt.Fprintf(w, "        .one_time_fee_rate(dec!(%s))\n", t.OneTimeFeeRate)
	fmt.Fprintf(w, "        .initial_cvl(dec!(%s))\n", t.InitialCVL)
	fmt.Fprintf(w, "        .margin_call_cvl(dec!(%s))\n", t.MarginCallCVL)
	fmt.Fprintf(w, "        .liquidation_cvl(dec!(%s))\n", t.LiquidationCVL)
	fmt.Fprintf(w, "        .disbursal_policy(DisbursalPolicy::%s)\n", t.DisbursalPolicy)
	fmt.Fprintf(w, "        .build();\n")
}
