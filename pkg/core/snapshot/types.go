// Package snapshot computes the point-in-time unit economics of a business
// model: revenue, cost, profitability, efficiency ratios, cash runway and
// valuation. The calculation is a pure function of its inputs and follows an
// "always produce a number" contract: every degenerate case (no customers,
// zero churn, zero spend) resolves to 0 or a documented sentinel, never to
// NaN, Inf or an error.
package snapshot

// Sentinel values surfaced to consumers in place of unbounded ratios.
// These literals are part of the serialized contract; UI logic branches on
// them, so they are exported constants rather than an optional type.
const (
	// SentinelRunway is reported when the business is cash-flow positive
	// (runway is effectively infinite).
	SentinelRunway = 999.0

	// SentinelCAC is reported when acquisition spend exists but no new
	// paying subscribers were acquired.
	SentinelCAC = 99999.0

	// SentinelPayback is reported when CAC can never be recovered from
	// recurring gross profit.
	SentinelPayback = 999.0

	// SentinelBurnMultiplier is reported when the business burns cash while
	// net new ARR is flat or shrinking.
	SentinelBurnMultiplier = 999.0
)

// Financials is the immutable snapshot of the current month's steady-state
// economics. It is recomputed wholesale on every input change and never
// mutated in place.
type Financials struct {
	// Revenue (accrual, monthly unless noted)
	MRR              float64 `json:"mrr"`
	ARR              float64 `json:"arr"`
	OneTimeRevenue   float64 `json:"oneTimeRevenue"`
	ExpansionRevenue float64 `json:"expansionRevenue"`
	TotalRevenue     float64 `json:"totalRevenue"`

	// Costs
	COGS             float64 `json:"cogs"`
	PaymentFees      float64 `json:"paymentFees"`
	Payroll          float64 `json:"payroll"`
	Opex             float64 `json:"opex"`
	AcquisitionSpend float64 `json:"acquisitionSpend"`
	Commissions      float64 `json:"commissions"`
	TotalExpenses    float64 `json:"totalExpenses"`

	// Profitability
	GrossProfit                 float64 `json:"grossProfit"`
	GrossMarginPercent          float64 `json:"grossMarginPercent"`
	RecurringGrossMarginPercent float64 `json:"recurringGrossMarginPercent"`
	NetMonthly                  float64 `json:"netMonthly"`
	ProfitMargin                float64 `json:"profitMargin"`

	// Efficiency
	CAC              float64 `json:"cac"`
	LTV              float64 `json:"ltv"`
	LTVCACRatio      float64 `json:"ltvCacRatio"`
	CACPaybackMonths float64 `json:"cacPaybackMonths"`
	MagicNumber      float64 `json:"magicNumber"`
	BurnMultiplier   float64 `json:"burnMultiplier"`
	RuleOf40         float64 `json:"ruleOf40"`
	NRR              float64 `json:"nrr"`

	// Cash
	CashInflow   float64 `json:"cashInflow"`
	GrossBurn    float64 `json:"grossBurn"`
	BurnRate     float64 `json:"burnRate"`
	RunwayMonths float64 `json:"runwayMonths"`

	// Growth
	BlendedGrowthRate   float64 `json:"blendedGrowthRate"`
	BlendedChurnRate    float64 `json:"blendedChurnRate"`
	RecurringGrowthRate float64 `json:"recurringGrowthRate"`
	RecurringChurnRate  float64 `json:"recurringChurnRate"`
	NetNewARR           float64 `json:"netNewArr"`

	// Population
	TotalSubscribers      float64 `json:"totalSubscribers"`
	PayingSubscribers     float64 `json:"payingSubscribers"`
	NewPayingSubscribers  float64 `json:"newPayingSubscribers"`
	ConversionRate        float64 `json:"conversionRate"`
	ARPU                  float64 `json:"arpu"`
	ARPPU                 float64 `json:"arppu"`

	// Valuation
	Valuation    float64 `json:"valuation"`
	FounderValue float64 `json:"founderValue"`

	// Derived carriers consumed by the projector and cohort generator.
	RecurringARPPU          float64 `json:"recurringArppu"`
	RecurringCostRatio      float64 `json:"recurringCostRatio"`      // recurring unit costs / mrr
	OneTimeProfitPerNewUser float64 `json:"oneTimeProfitPerNewUser"` // setup/lifetime profit seeding cohort LTV
}
