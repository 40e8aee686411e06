package snapshot

import (
	"saas_simulator/pkg/core/model"
)

// Totals is the raw aggregate record produced by folding over the plan list.
// It deliberately keeps accrual figures and cash figures in separate fields:
// monthly recurring revenue (accrual) is not the same number as monthly cash
// inflow for any plan with yearly or lifetime billing, and mixing the two is
// the classic failure mode of this kind of model.
type Totals struct {
	// Accrual revenue
	MRR            float64 // recurring revenue recognized this month, all plans
	OneTimeRevenue float64 // setup fees + lifetime/one-time deal value from new users

	// Cash collected beyond the accrual view: yearly plans collect a full
	// year of price up front while accrual spreads it over twelve months.
	YearlyUpfrontCash float64

	// Variable costs
	UnitCosts          float64
	RecurringMRR       float64
	RecurringUnitCosts float64

	// Population
	TotalSubscribers     float64
	PayingSubscribers    float64
	RecurringSubscribers float64
	NewUsers             float64
	ChurnedUsers         float64
	NewPayingUsers       float64

	// Subscriber-weighted rate sums (divide by the matching population to
	// get the blended rate)
	WeightedGrowth          float64
	WeightedChurn           float64
	RecurringWeightedGrowth float64
	RecurringWeightedChurn  float64

	// P&L deltas implied by this month's population change
	NewMRR           float64
	ChurnedMRR       float64
	NewUnitCosts     float64
	ChurnedUnitCosts float64

	// Commission bases. NewRecurringARR is the gross annualized contract
	// value of new recurring signups (not net of churn); NewDealValue is the
	// one-time value of lifetime/one-time deals closed this month.
	NewRecurringARR float64
	NewDealValue    float64

	// Per-new-user averages are derived from these in the ratio step.
	OneTimeRevenueFromNew float64 // setup fee + lifetime price, accrual view
	SetupFeesFromNew      float64 // setup fees only
}

// Accumulate folds the plan list into raw totals. It applies the scenario's
// growth modifiers per plan (plan growth x marketing efficiency + viral rate)
// but leaves every ratio to the derivation step so the two halves stay
// independently testable.
func Accumulate(plans []model.Plan, params model.ScenarioParams) Totals {
	var t Totals

	for _, p := range plans {
		monthly := p.MonthlyPrice()
		subs := p.Subscribers

		growth := params.EffectiveGrowthRate(p)
		churn := p.ChurnRate

		newUsers := subs * growth / 100
		if newUsers < 0 {
			newUsers = 0
		}
		churned := subs * churn / 100

		t.MRR += monthly * subs
		t.UnitCosts += p.UnitCost * subs
		t.TotalSubscribers += subs
		t.NewUsers += newUsers
		t.ChurnedUsers += churned
		t.WeightedGrowth += growth * subs
		t.WeightedChurn += churn * subs

		t.NewMRR += monthly * newUsers
		t.ChurnedMRR += monthly * churned
		t.NewUnitCosts += p.UnitCost * newUsers
		t.ChurnedUnitCosts += p.UnitCost * churned

		if p.Interval.IsRecurring() {
			t.RecurringMRR += monthly * subs
			t.RecurringUnitCosts += p.UnitCost * subs
			t.RecurringSubscribers += subs
			t.RecurringWeightedGrowth += growth * subs
			t.RecurringWeightedChurn += churn * subs
			t.NewRecurringARR += monthly * newUsers * 12
		} else {
			t.NewDealValue += p.Price * newUsers
		}

		if p.IsPaying() {
			t.PayingSubscribers += subs
			t.NewPayingUsers += newUsers
		}

		// One-time recognition for this month's new users. Accrual takes the
		// setup fee plus the full lifetime/one-time price; cash additionally
		// takes a whole year of a yearly plan's price up front.
		oneTime := p.SetupFee * newUsers
		if !p.Interval.IsRecurring() {
			oneTime += p.Price * newUsers
		}
		t.OneTimeRevenue += oneTime
		t.OneTimeRevenueFromNew += oneTime
		t.SetupFeesFromNew += p.SetupFee * newUsers

		if p.Interval == model.IntervalYearly {
			// Full annual price collected now, minus the 1/12 already in MRR
			// via the new users joining the recurring base next month.
			t.YearlyUpfrontCash += p.Price * newUsers
		}
	}

	return t
}
