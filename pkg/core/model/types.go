// Package model defines the input side of the simulator: pricing plans,
// headcount, fixed operating expenses and the global scenario parameters.
// These are plain value objects; the engine reads them and never mutates them.
package model

// BillingInterval identifies how a plan charges its subscribers.
type BillingInterval string

const (
	IntervalMonthly  BillingInterval = "monthly"
	IntervalYearly   BillingInterval = "yearly"
	IntervalLifetime BillingInterval = "lifetime"
	IntervalOneTime  BillingInterval = "onetime"
)

// IsRecurring reports whether the interval produces recurring revenue.
// Lifetime and one-time plans are excluded from recurring aggregates so they
// cannot dilute SaaS-specific ratios (ARPPU, recurring margin, churn).
func (b BillingInterval) IsRecurring() bool {
	return b == IntervalMonthly || b == IntervalYearly
}

// Plan is a pricing tier. Price is the recurring price per interval
// (0 for pure one-time plans); SetupFee is charged once at acquisition;
// for lifetime plans Price itself is the one-time deal value.
// GrowthRate and ChurnRate are monthly percentages specific to this plan;
// scenario-level modifiers (marketing efficiency, viral rate) are layered
// on top of GrowthRate, not substituted for it.
type Plan struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       float64         `json:"price"`
	Interval    BillingInterval `json:"interval"`
	SetupFee    float64         `json:"setupFee"`
	UnitCost    float64         `json:"unitCost"`
	Subscribers float64         `json:"subscribers"`
	GrowthRate  float64         `json:"growthRate"`
	ChurnRate   float64         `json:"churnRate"`
}

// MonthlyPrice returns the accrual revenue one subscriber generates per month.
// Yearly prices are spread over twelve months; lifetime and one-time plans
// have no recurring component.
func (p Plan) MonthlyPrice() float64 {
	switch p.Interval {
	case IntervalMonthly:
		return p.Price
	case IntervalYearly:
		return p.Price / 12
	default:
		return 0
	}
}

// IsPaying reports whether subscribers of this plan count as paying customers.
func (p Plan) IsPaying() bool {
	return p.Price > 0
}

// Employee is a headcount line. Count is a multiplier so a single line can
// represent a team of identical roles.
type Employee struct {
	Role         string  `json:"role"`
	AnnualSalary float64 `json:"annualSalary"`
	Count        float64 `json:"count"`
}

// MonthlyCost returns the pre-tax monthly payroll cost of this line.
func (e Employee) MonthlyCost() float64 {
	return e.AnnualSalary / 12 * e.Count
}

// OperatingExpense is a fixed monthly cost line. IsAcquisitionSpend
// partitions expenses into CAC spend vs. general OpEx; a line is never both.
type OperatingExpense struct {
	Name               string  `json:"name"`
	Category           string  `json:"category"`
	MonthlyAmount      float64 `json:"monthlyAmount"`
	IsAcquisitionSpend bool    `json:"isAcquisitionSpend"`
}

// ScenarioParams is the global tunable rate set. All rates are percentages
// unless noted; MarketingEfficiency and ValuationMultiple are multipliers.
type ScenarioParams struct {
	StartingCash float64 `json:"startingCash"`

	// Top-level slider aggregates. Informational only: the simulation's
	// actual growth/churn are per-plan, modulated by MarketingEfficiency
	// and ViralRate.
	GrowthRate float64 `json:"growthRate"`
	ChurnRate  float64 `json:"churnRate"`

	MarketingEfficiency   float64 `json:"marketingEfficiency"`   // multiplier on each plan's growth rate
	ViralRate             float64 `json:"viralRate"`             // additive % growth on every plan
	ExpansionRate         float64 `json:"expansionRate"`         // monthly % of trailing recurring revenue added as upsell
	PaymentProcessingRate float64 `json:"paymentProcessingRate"` // % fee on all revenue, cash and accrual
	PayrollTax            float64 `json:"payrollTax"`            // % load on salaries
	OpexInflationRate     float64 `json:"opexInflationRate"`     // annual % step-up at months 13/25/37/49
	SalaryGrowthRate      float64 `json:"salaryGrowthRate"`      // annual % step-up at months 13/25/37/49
	CommissionRate        float64 `json:"commissionRate"`        // % of new ARR / deal value paid to sales
	MinChurnFloor         float64 `json:"minChurnFloor"`         // % floor substituted for churn in LTV
	ValuationMultiple     float64 `json:"valuationMultiple"`     // x ARR
	FounderEquity         float64 `json:"founderEquity"`         // % of valuation attributable to the founder
}

// DefaultScenarioParams returns a neutral parameter set: no growth modifiers,
// no fees, and the standard LTV churn floor.
func DefaultScenarioParams() ScenarioParams {
	return ScenarioParams{
		MarketingEfficiency: 1.0,
		MinChurnFloor:       0.5,
		ValuationMultiple:   8.0,
		FounderEquity:       100.0,
	}
}

// EffectiveGrowthRate returns the monthly % growth actually applied to a plan:
// the plan's own rate scaled by marketing efficiency, plus the uniform viral rate.
func (sp ScenarioParams) EffectiveGrowthRate(p Plan) float64 {
	return p.GrowthRate*sp.MarketingEfficiency + sp.ViralRate
}

// BusinessModel bundles the four input collections. This is the unit a saved
// scenario persists and the request body the simulation API accepts.
type BusinessModel struct {
	Plans     []Plan             `json:"plans"`
	Employees []Employee         `json:"employees"`
	Expenses  []OperatingExpense `json:"expenses"`
	Params    ScenarioParams     `json:"params"`
}
