package translate

import "github.com/shopspring/decimal"

// ActionType enumerates the orchestration steps the generator knows how to
// render. The set is closed; unrecognized events degrade to ActionComment.
type ActionType string

const (
	ActionCreateCustomer                ActionType = "create_customer"
	ActionMakeDeposit                   ActionType = "make_deposit"
	ActionCreateProposal                ActionType = "create_proposal"
	ActionConcludeCustomerApproval      ActionType = "conclude_customer_approval"
	ActionWaitForApproval               ActionType = "wait_for_approval"
	ActionUpdateCollateral              ActionType = "update_collateral"
	ActionUpdateCollateralForActivation ActionType = "update_collateral_for_activation"
	ActionWaitForFacilityActivation     ActionType = "wait_for_facility_activation"
	ActionInitiateDisbursal             ActionType = "initiate_disbursal"
	ActionWaitForDisbursal              ActionType = "wait_for_disbursal"
	ActionRecordPayment                 ActionType = "record_payment"
	ActionAdvanceTime                   ActionType = "advance_time"
	ActionCompleteFacility              ActionType = "complete_facility"
	ActionCreateTermsTemplate           ActionType = "create_terms_template"
	ActionComment                       ActionType = "comment"
)

// SimAction is one unit of generated orchestration. Actions are produced
// once by Translate and never mutated afterwards; the code generator reads
// them as-is.
type SimAction struct {
	Type   ActionType
	Entity string
	Params Params

	// WaitDays is how many simulated days the clock advances after this
	// action executes. Only the first action of a multi-step expansion
	// carries the source event's wait; the rest carry zero.
	WaitDays int
}

// Params is a sealed interface over the per-action parameter structs.
// Each action kind has exactly one parameter shape; the normalization
// rules in terms.go and translate.go produce these canonical values.
type Params interface {
	params()
}

// NoParams is used by actions that carry no parameters: the approval and
// activation waits, time advances, facility completion, and terms
// templates.
type NoParams struct{}

func (NoParams) params() {}

// CreateCustomerParams seeds one simulated customer.
type CreateCustomerParams struct {
	Suffix       string // display suffix, entity key with "customer_" stripped
	Email        string
	CustomerType string // "Individual" or "Company"
}

func (CreateCustomerParams) params() {}

// MakeDepositParams funds a customer's deposit account.
type MakeDepositParams struct {
	AmountUSD decimal.Decimal
}

func (MakeDepositParams) params() {}

// CreateProposalParams opens a credit facility proposal.
type CreateProposalParams struct {
	CustomerRef string
	AmountUSD   decimal.Decimal
	Terms       TermsValues
}

func (CreateProposalParams) params() {}

// UpdateCollateralParams posts collateral. Satoshis are passed through
// unscaled from the source event.
type UpdateCollateralParams struct {
	Satoshis int64
}

func (UpdateCollateralParams) params() {}

// InitiateDisbursalParams draws down against an active facility.
type InitiateDisbursalParams struct {
	AmountUSD decimal.Decimal
}

func (InitiateDisbursalParams) params() {}

// RecordPaymentParams repays against outstanding obligations.
type RecordPaymentParams struct {
	AmountUSD decimal.Decimal
}

func (RecordPaymentParams) params() {}

// CommentParams is the degraded output for event types absent from the
// dispatch table. Text carries a "TODO: <event_type>" marker so the
// generated artifact still renders while flagging the gap.
type CommentParams struct {
	Text string
}

func (CommentParams) params() {}

// centsToUSD converts a minor-unit amount to dollars exactly, with no
// binary-float intermediate.
func centsToUSD(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}
