package forecast

import (
	"math"

	"saas_simulator/pkg/core/model"
	"saas_simulator/pkg/core/snapshot"
)

// planState is the per-plan state carried month to month.
type planState struct {
	plan model.Plan

	// subscribers compounds growth and churn together.
	subscribers float64

	// base is the original subscriber cohort decayed purely by churn. It
	// drives the straight-line renewal cash of yearly plans independently
	// of new growth.
	base float64

	// newByMonth records how many users joined in each simulated month,
	// needed to recognize a yearly plan's renewal exactly twelve months
	// after acquisition.
	newByMonth []float64
}

// Project simulates horizonMonths forward from the current state of the
// business. It returns the ordered monthly projections and the 1-based index
// of the first month where accrual net income turns positive, or nil if
// break-even is never reached within the horizon.
//
// Fixed costs come from the snapshot; growth and churn come from the raw
// plan parameters, so the projection compounds the same processes the
// snapshot measures at a single instant.
func Project(plans []model.Plan, snap snapshot.Financials, params model.ScenarioParams, horizonMonths int) ([]Projection, *int) {
	states := make([]*planState, len(plans))
	for i, p := range plans {
		states[i] = &planState{
			plan:        p,
			subscribers: p.Subscribers,
			base:        p.Subscribers,
			newByMonth:  make([]float64, 0, horizonMonths),
		}
	}

	payroll := snap.Payroll
	opex := snap.Opex + snap.AcquisitionSpend
	cash := params.StartingCash

	// Expansion revenue accumulates as a rolling balance: each month it
	// grows by a % of the prior month's non-one-time revenue and decays by
	// the blended recurring churn rate. Upsold revenue is not permanent; it
	// rides the same churn curve as the base it was sold into.
	expansion := 0.0
	priorRecurring := snap.MRR + snap.ExpansionRevenue

	projections := make([]Projection, 0, horizonMonths)
	var breakEven *int

	for month := 1; month <= horizonMonths; month++ {
		// Annual step-ups land at the month boundaries 12/24/36/48, i.e.
		// the first month of each new simulated year.
		if month == 13 || month == 25 || month == 37 || month == 49 {
			payroll *= 1 + params.SalaryGrowthRate/100
			opex *= 1 + params.OpexInflationRate/100
		}

		var (
			recurringRevenue float64
			oneTimeRevenue   float64
			cashIn           float64
			cogs             float64
			newARR           float64 // commission base, annualized recurring
			newDeals         float64 // commission base, one-time deal value
			newPaying        float64
			totalSubs        float64
		)

		for _, st := range states {
			p := st.plan
			growth := params.EffectiveGrowthRate(p)
			churn := p.ChurnRate

			newUsers := st.subscribers * growth / 100
			if newUsers < 0 {
				newUsers = 0
			}
			churned := st.subscribers * churn / 100

			st.newByMonth = append(st.newByMonth, newUsers)
			st.subscribers += newUsers - churned
			st.base *= 1 - churn/100

			if p.IsPaying() {
				newPaying += newUsers
			}
			totalSubs += st.subscribers
			cogs += p.UnitCost * st.subscribers

			// Accrual: recurring price over the live population, one-time
			// recognition for this month's signups.
			recurringRevenue += p.MonthlyPrice() * st.subscribers
			oneTimeRevenue += p.SetupFee * newUsers
			if !p.Interval.IsRecurring() {
				oneTimeRevenue += p.Price * newUsers
			}

			// Cash: setup fees always land immediately.
			cashIn += p.SetupFee * newUsers

			switch p.Interval {
			case model.IntervalMonthly:
				cashIn += p.Price * st.subscribers
				newARR += p.Price * newUsers * 12
			case model.IntervalYearly:
				// Three components: (a) the surviving base cohort's renewals
				// smoothed across the year, (b) new signups paying a full
				// year up front, (c) the exact renewal of the cohort that
				// joined twelve months ago, decayed by a year of churn.
				cashIn += st.base / 12 * p.Price
				cashIn += p.Price * newUsers
				if month > 12 {
					lagged := st.newByMonth[month-13]
					cashIn += lagged * p.Price * math.Pow(1-churn/100, 12)
				}
				newARR += p.Price * newUsers
			default:
				// Lifetime/one-time deals are single cash events, never
				// annualized for commission.
				cashIn += p.Price * newUsers
				newDeals += p.Price * newUsers
			}
		}

		// Expansion balance update: decay first, then layer this month's
		// upsell on the trailing recurring base.
		expansion = expansion*(1-snap.RecurringChurnRate/100) + priorRecurring*params.ExpansionRate/100
		priorRecurring = recurringRevenue + expansion

		cogs += expansion * snap.RecurringCostRatio

		totalRevenue := recurringRevenue + expansion + oneTimeRevenue
		totalCashIn := cashIn + expansion

		// The processing fee applies separately to the accrual total and the
		// cash total; they differ whenever yearly or lifetime plans sell.
		accrualFees := totalRevenue * params.PaymentProcessingRate / 100
		cashFees := totalCashIn * params.PaymentProcessingRate / 100

		commissions := (newARR + newDeals) * params.CommissionRate / 100

		netIncome := totalRevenue - accrualFees - cogs - payroll - opex - commissions
		cashFlow := totalCashIn - cashFees - cogs - payroll - opex - commissions
		cash += cashFlow

		if breakEven == nil && netIncome > 0 {
			m := month
			breakEven = &m
		}

		projections = append(projections, Projection{
			Month:                month,
			Revenue:              totalRevenue,
			OneTimeRevenue:       oneTimeRevenue,
			COGS:                 cogs,
			GrossProfit:          totalRevenue - cogs,
			Payroll:              payroll,
			Opex:                 opex,
			Commissions:          commissions,
			NetIncome:            netIncome,
			Subscribers:          math.Round(totalSubs),
			NewPayingSubscribers: newPaying,
			CashBalance:          cash,
			CashFlow:             cashFlow,
		})
	}

	return projections, breakEven
}
