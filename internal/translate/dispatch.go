package translate

import "sort"

// mappingKind classifies a dispatch-table entry.
type mappingKind uint8

const (
	// mapSkip drops the event: the transition is automatic or implicit
	// in another action, so it contributes nothing to the output.
	mapSkip mappingKind = iota
	// mapDirect emits exactly one action.
	mapDirect
	// mapMulti expands the event into a fixed multi-action sequence.
	mapMulti
)

type eventMapping struct {
	kind   mappingKind
	action ActionType // set for mapDirect
	multi  string     // set for mapMulti
}

// multiCreateFacility names the one multi-action expansion in the table.
const multiCreateFacility = "create_facility"

func skip() eventMapping               { return eventMapping{kind: mapSkip} }
func direct(a ActionType) eventMapping { return eventMapping{kind: mapDirect, action: a} }
func multi(name string) eventMapping   { return eventMapping{kind: mapMulti, multi: name} }

// eventToAction maps domain event types to how they translate. The table
// is expected to lag the full domain event vocabulary; event types absent
// here degrade to a comment action rather than failing translation.
var eventToAction = map[string]eventMapping{
	// Customer lifecycle
	"CustomerEvent::Initialized":  direct(ActionCreateCustomer),
	"CustomerEvent::EmailUpdated": skip(),

	// Deposits
	"DepositAccountEvent::Initialized": skip(), // implicit in create_customer
	"DepositEvent::Initialized":        direct(ActionMakeDeposit),
	"DepositEvent::Reverted":           skip(),

	// Withdrawals
	"WithdrawalEvent::Initialized": skip(),
	"WithdrawalEvent::Confirmed":   skip(),
	"WithdrawalEvent::Denied":      skip(),
	"WithdrawalEvent::Cancelled":   skip(),

	// Credit facility proposal
	"CreditFacilityProposalEvent::Initialized":               direct(ActionCreateProposal),
	"CreditFacilityProposalEvent::CustomerApprovalConcluded": direct(ActionConcludeCustomerApproval),
	"CreditFacilityProposalEvent::ApprovalProcessConcluded":  direct(ActionWaitForApproval),

	// Approval process
	"ApprovalProcessEvent::Initialized": skip(),
	"ApprovalProcessEvent::Approved":    skip(), // handled by the wait
	"ApprovalProcessEvent::Denied":      skip(),
	"ApprovalProcessEvent::Concluded":   skip(),

	// Collateral
	"CollateralEvent::Initialized":             skip(), // implicit in pending facility
	"CollateralEvent::UpdatedViaManualInput":   direct(ActionUpdateCollateral),
	"CollateralEvent::UpdatedViaCustodianSync": direct(ActionUpdateCollateral),

	// Pending credit facility
	"PendingCreditFacilityEvent::Initialized":                   skip(),
	"PendingCreditFacilityEvent::CollateralizationStateChanged": skip(),
	"PendingCreditFacilityEvent::Completed":                     skip(),

	// Credit facility. Initialized triggers the full proposal flow.
	"CreditFacilityEvent::Initialized":                           multi(multiCreateFacility),
	"CreditFacilityEvent::InterestAccrualCycleStarted":           direct(ActionAdvanceTime),
	"CreditFacilityEvent::InterestAccrualCycleConcluded":         skip(),
	"CreditFacilityEvent::CollateralizationStateChanged":         skip(),
	"CreditFacilityEvent::CollateralizationRatioChanged":         skip(),
	"CreditFacilityEvent::PartialLiquidationInitiated":           skip(),
	"CreditFacilityEvent::ProceedsFromPartialLiquidationApplied": skip(),
	"CreditFacilityEvent::Matured":                               direct(ActionAdvanceTime),
	"CreditFacilityEvent::Completed":                             direct(ActionCompleteFacility),

	// Disbursal
	"DisbursalEvent::Initialized":              direct(ActionInitiateDisbursal),
	"DisbursalEvent::ApprovalProcessConcluded": skip(),
	"DisbursalEvent::Settled":                  direct(ActionWaitForDisbursal),

	// Obligations
	"ObligationEvent::Initialized":       skip(),
	"ObligationEvent::DueRecorded":       direct(ActionAdvanceTime),
	"ObligationEvent::OverdueRecorded":   direct(ActionAdvanceTime),
	"ObligationEvent::DefaultedRecorded": direct(ActionAdvanceTime),
	"ObligationEvent::PaymentAllocated":  skip(),
	"ObligationEvent::Completed":         skip(),

	// Payments
	"PaymentEvent::Initialized":           direct(ActionRecordPayment),
	"PaymentAllocationEvent::Initialized": skip(),

	// Liquidation
	"LiquidationEvent::Initialized":                             skip(),
	"LiquidationEvent::CollateralSentOut":                       skip(),
	"LiquidationEvent::ProceedsReceivedAndLiquidationCompleted": skip(),

	// Other
	"CustodianEvent::Initialized":      skip(),
	"CustodianEvent::ConfigUpdated":    skip(),
	"ProspectEvent::Initialized":       skip(),
	"ProspectEvent::KycStarted":        skip(),
	"ProspectEvent::KycPending":        skip(),
	"ProspectEvent::KycApproved":       skip(),
	"ProspectEvent::KycDeclined":       skip(),
	"ProspectEvent::ManuallyConverted": skip(),
	"ProspectEvent::Closed":            skip(),
	"TermsTemplateEvent::Initialized":  direct(ActionCreateTermsTemplate),
	"CommitteeEvent::Initialized":      skip(),
	"CommitteeEvent::MemberAdded":      skip(),
	"ReportEvent::Initialized":         skip(),
	"ReportRunEvent::Initialized":      skip(),
	"ReportRunEvent::StateUpdated":     skip(),
	"ChartEvent::Initialized":          skip(),
	"ChartEvent::BaseConfigSet":        skip(),
	"ChartNodeEvent::Initialized":      skip(),
	"ChartNodeEvent::ChildNodeAdded":   skip(),
	"RoleEvent::Initialized":           skip(),
	"UserEvent::Initialized":           skip(),
}

// Label returns the dispatch-table label for an eventMapping: the action
// tag, "skip", or "multi:<name>".
func (m eventMapping) Label() string {
	switch m.kind {
	case mapSkip:
		return "skip"
	case mapMulti:
		return "multi:" + m.multi
	default:
		return string(m.action)
	}
}

// Mappings exposes the dispatch table for external tooling: event types
// grouped by the label of what they produce, both sides sorted. The table
// is a fixed constant; callers must not mutate the result's slices.
func Mappings() map[string][]string {
	grouped := make(map[string][]string)
	for event, m := range eventToAction {
		label := m.Label()
		grouped[label] = append(grouped[label], event)
	}
	for _, events := range grouped {
		sort.Strings(events)
	}
	return grouped
}

// KnownEvents returns every event type in the dispatch table, sorted.
func KnownEvents() []string {
	events := make([]string, 0, len(eventToAction))
	for event := range eventToAction {
		events = append(events, event)
	}
	sort.Strings(events)
	return events
}
