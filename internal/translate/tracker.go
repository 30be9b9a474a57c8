package translate

// FacilityInfo is what the tracker knows about one credit facility:
// which customer requested it, which collateral backs it, the requested
// amount in cents, and the normalized terms.
type FacilityInfo struct {
	CustomerRef   string
	CollateralRef string
	Amount        int64
	Terms         TermsValues
}

// CollateralInfo records the latest posted amount for a collateral entity
// and, once a facility registers against it, the owning facility key.
// Recorded distinguishes an explicit zero update from no update at all,
// since registering a facility creates the entry without an amount.
type CollateralInfo struct {
	Satoshis    int64
	Recorded    bool
	FacilityRef string
}

// DisbursalInfo ties a disbursal entity back to its facility.
type DisbursalInfo struct {
	FacilityRef string
	Amount      int64
}

// EntityTracker is the scenario-scoped resolution table built during
// translation. It is constructed fresh per Translate call, read-only once
// handed to the code generator, and discarded afterwards. Nothing is
// shared between scenarios, so a batch driver may translate scenarios in
// parallel without coordination.
type EntityTracker struct {
	customers  map[string]string
	facilities map[string]FacilityInfo
	collateral map[string]CollateralInfo
	disbursals map[string]DisbursalInfo
}

// NewEntityTracker returns an empty tracker.
func NewEntityTracker() *EntityTracker {
	return &EntityTracker{
		customers:  make(map[string]string),
		facilities: make(map[string]FacilityInfo),
		collateral: make(map[string]CollateralInfo),
		disbursals: make(map[string]DisbursalInfo),
	}
}

// RegisterCustomer records a customer entity and its display suffix.
func (t *EntityTracker) RegisterCustomer(entity, suffix string) {
	t.customers[entity] = suffix
}

// CustomerSuffix resolves a customer entity key to its display suffix.
func (t *EntityTracker) CustomerSuffix(entity string) (string, bool) {
	s, ok := t.customers[entity]
	return s, ok
}

// RegisterFacility records a facility and links its collateral entity back
// to the facility for reverse lookup. The tracked collateral amount, if
// any, is preserved.
func (t *EntityTracker) RegisterFacility(entity string, info FacilityInfo) {
	t.facilities[entity] = info
	coll := t.collateral[info.CollateralRef]
	coll.FacilityRef = entity
	t.collateral[info.CollateralRef] = coll
}

// Facility resolves a facility entity key.
func (t *EntityTracker) Facility(entity string) (FacilityInfo, bool) {
	f, ok := t.facilities[entity]
	return f, ok
}

// RecordCollateral tracks the most recent posted amount for a collateral
// entity. Later updates overwrite earlier ones.
func (t *EntityTracker) RecordCollateral(entity string, satoshis int64) {
	coll := t.collateral[entity]
	coll.Satoshis = satoshis
	coll.Recorded = true
	t.collateral[entity] = coll
}

// CollateralAmount returns the tracked amount for a collateral entity.
// The bool is false when no update event has supplied an amount yet; an
// explicit zero update counts as tracked.
func (t *EntityTracker) CollateralAmount(entity string) (int64, bool) {
	coll, ok := t.collateral[entity]
	if !ok || !coll.Recorded {
		return 0, false
	}
	return coll.Satoshis, true
}

// RegisterDisbursal ties a disbursal entity to its facility.
func (t *EntityTracker) RegisterDisbursal(entity string, info DisbursalInfo) {
	t.disbursals[entity] = info
}

// FacilityForDisbursal reverse-resolves a disbursal entity to the facility
// it draws against.
func (t *EntityTracker) FacilityForDisbursal(entity string) (string, bool) {
	d, ok := t.disbursals[entity]
	if !ok {
		return "", false
	}
	return d.FacilityRef, true
}

// FacilityForCollateral reverse-resolves a collateral entity to the
// facility it backs.
func (t *EntityTracker) FacilityForCollateral(entity string) (string, bool) {
	c, ok := t.collateral[entity]
	if !ok || c.FacilityRef == "" {
		return "", false
	}
	return c.FacilityRef, true
}

// Customers returns the number of registered customers.
func (t *EntityTracker) Customers() int { return len(t.customers) }

// Facilities returns the number of registered facilities.
func (t *EntityTracker) Facilities() int { return len(t.facilities) }
