// Package translate converts ordered scenario events into the ordered
// action plan the code generator renders. Translation is best-effort by
// construction: unknown event types, malformed offsets, and unresolvable
// cross-references all degrade visibly instead of failing.
package translate

import (
	"strings"
	"time"

	"github.com/lanabank/scenariogen/internal/scenario"
)

// Conventional fallback keys used when a facility event omits or fails to
// resolve its cross-references.
const (
	defaultCustomerKey   = "customer_1"
	defaultCollateralKey = "collateral_1"
	defaultFacilityKey   = "facility_1"
)

// Default minor-unit amounts per action kind.
const (
	defaultDepositCents   = 10_000_000
	defaultProposalCents  = 500_000
	defaultDisbursalCents = 500_000
	defaultCollateralSats = 25_000_000
)

const customerEntityPrefix = "customer_"

// Translate converts a scenario into its ordered action list and the
// entity tracker the generator uses for cross-references. It walks the
// events twice: a registration pass that resolves forward references
// (a facility's collateral amount can appear later in the sequence), then
// a generation pass that emits actions in event order.
//
// Translate is deterministic: the same scenario value always yields the
// same actions and tracker contents.
func Translate(s *scenario.Scenario) ([]SimAction, *EntityTracker) {
	tracker := NewEntityTracker()

	// Pass 1: entity registration.
	for _, ev := range s.Events {
		switch ev.EventType {
		case "CollateralEvent::UpdatedViaManualInput", "CollateralEvent::UpdatedViaCustodianSync":
			tracker.RecordCollateral(ev.Entity, amountOr(ev.Values, "collateral", defaultCollateralSats))

		case "CustomerEvent::Initialized":
			tracker.RegisterCustomer(ev.Entity, customerSuffix(ev))

		case "CreditFacilityEvent::Initialized":
			tracker.RegisterFacility(ev.Entity, FacilityInfo{
				CustomerRef:   stripRef(stringOr(ev.Values, "customer_id_ref", defaultCustomerKey)),
				CollateralRef: stripRef(stringOr(ev.Values, "collateral_id_ref", defaultCollateralKey)),
				Amount:        amountOr(ev.Values, "amount", defaultProposalCents),
				Terms:         NewTermsValues(mapValue(ev.Values, "terms")),
			})
		}
	}

	// Pass 2: action generation. Skipped events contribute nothing and
	// their wait is dropped with them.
	var actions []SimAction
	for _, ev := range s.Events {
		wait := waitDays(ev.After)

		m, known := eventToAction[ev.EventType]
		if !known {
			actions = append(actions, SimAction{
				Type:     ActionComment,
				Entity:   ev.Entity,
				Params:   CommentParams{Text: "TODO: " + ev.EventType},
				WaitDays: wait,
			})
			continue
		}

		switch m.kind {
		case mapSkip:
			continue

		case mapMulti:
			steps := expandMulti(m.multi, ev, tracker)
			for i := range steps {
				if i == 0 {
					steps[i].WaitDays = wait
				} else {
					steps[i].WaitDays = 0
				}
			}
			actions = append(actions, steps...)

		case mapDirect:
			actions = append(actions, SimAction{
				Type:     m.action,
				Entity:   ev.Entity,
				Params:   directParams(m.action, ev, tracker),
				WaitDays: wait,
			})
		}
	}

	return actions, tracker
}

// waitDays truncates an event offset to whole simulated days.
func waitDays(d time.Duration) int {
	return int(d / (24 * time.Hour))
}

// customerSuffix derives the display suffix for a customer entity: an
// explicit "suffix" value wins, otherwise the conventional prefix is
// stripped from the entity key.
func customerSuffix(ev scenario.Event) string {
	if s, ok := ev.Values["suffix"].(string); ok && s != "" {
		return s
	}
	return strings.TrimPrefix(ev.Entity, customerEntityPrefix)
}

// directParams builds the normalized parameter struct for a single-action
// mapping.
func directParams(action ActionType, ev scenario.Event, tracker *EntityTracker) Params {
	switch action {
	case ActionCreateCustomer:
		suffix, ok := tracker.CustomerSuffix(ev.Entity)
		if !ok {
			suffix = customerSuffix(ev)
		}
		return CreateCustomerParams{
			Suffix:       suffix,
			Email:        stringOr(ev.Values, "email", ev.Entity+"@example.com"),
			CustomerType: stringOr(ev.Values, "customer_type", "Individual"),
		}

	case ActionMakeDeposit:
		return MakeDepositParams{
			AmountUSD: centsToUSD(amountOr(ev.Values, "amount", defaultDepositCents)),
		}

	case ActionCreateProposal:
		return CreateProposalParams{
			CustomerRef: stripRef(stringOr(ev.Values, "customer_id_ref", defaultCustomerKey)),
			AmountUSD:   centsToUSD(amountOr(ev.Values, "amount", defaultProposalCents)),
			Terms:       NewTermsValues(mapValue(ev.Values, "terms")),
		}

	case ActionUpdateCollateral:
		return UpdateCollateralParams{
			Satoshis: amountOr(ev.Values, "collateral", defaultCollateralSats),
		}

	case ActionInitiateDisbursal:
		amount := amountOr(ev.Values, "amount", defaultDisbursalCents)
		tracker.RegisterDisbursal(ev.Entity, DisbursalInfo{
			FacilityRef: stripRef(stringOr(ev.Values, "facility_id_ref", defaultFacilityKey)),
			Amount:      amount,
		})
		return InitiateDisbursalParams{AmountUSD: centsToUSD(amount)}

	case ActionRecordPayment:
		return RecordPaymentParams{
			AmountUSD: centsToUSD(amountOr(ev.Values, "amount", 0)),
		}

	default:
		return NoParams{}
	}
}

// expandMulti expands a multi-action mapping into its fixed step sequence.
// Wait days are assigned by the caller.
func expandMulti(name string, ev scenario.Event, tracker *EntityTracker) []SimAction {
	switch name {
	case multiCreateFacility:
		return expandCreateFacility(ev, tracker)
	default:
		return nil
	}
}

// expandCreateFacility turns a facility-initialization event into the full
// proposal flow. The Pass 1 registration is authoritative for which
// customer and collateral the facility belongs to; this event's own values
// are a fallback only for amounts.
func expandCreateFacility(ev scenario.Event, tracker *EntityTracker) []SimAction {
	fac, ok := tracker.Facility(ev.Entity)
	if !ok {
		fac = FacilityInfo{
			CustomerRef:   defaultCustomerKey,
			CollateralRef: defaultCollateralKey,
			Amount:        amountOr(ev.Values, "amount", defaultProposalCents),
			Terms:         NewTermsValues(mapValue(ev.Values, "terms")),
		}
	}

	satoshis, tracked := tracker.CollateralAmount(fac.CollateralRef)
	if !tracked {
		satoshis = amountOr(ev.Values, "collateral", defaultCollateralSats)
	}

	return []SimAction{
		{
			Type:   ActionCreateProposal,
			Entity: ev.Entity,
			Params: CreateProposalParams{
				CustomerRef: fac.CustomerRef,
				AmountUSD:   centsToUSD(fac.Amount),
				Terms:       fac.Terms,
			},
		},
		{Type: ActionConcludeCustomerApproval, Entity: ev.Entity, Params: NoParams{}},
		{Type: ActionWaitForApproval, Entity: ev.Entity, Params: NoParams{}},
		{
			Type:   ActionUpdateCollateralForActivation,
			Entity: ev.Entity,
			Params: UpdateCollateralParams{Satoshis: satoshis},
		},
		{Type: ActionWaitForFacilityActivation, Entity: ev.Entity, Params: NoParams{}},
	}
}
