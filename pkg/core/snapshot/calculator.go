package snapshot

import (
	"math"

	"saas_simulator/pkg/core/model"
)

// Calculate produces the full Financials snapshot for the given business
// model. It never returns an error for well-formed (non-negative) inputs;
// degenerate cases resolve to 0 or a documented sentinel.
func Calculate(plans []model.Plan, employees []model.Employee, expenses []model.OperatingExpense, params model.ScenarioParams) Financials {
	return Derive(Accumulate(plans, params), employees, expenses, params)
}

// Derive computes every ratio and derived figure from the folded totals.
// It is split from Accumulate so that the aggregate-gathering and the
// numerically delicate ratio logic can be tested independently.
func Derive(t Totals, employees []model.Employee, expenses []model.OperatingExpense, params model.ScenarioParams) Financials {
	var f Financials

	// =========================================================================
	// REVENUE
	// =========================================================================
	f.MRR = t.MRR
	f.ARR = t.MRR * 12
	f.OneTimeRevenue = t.OneTimeRevenue

	// Expansion revenue is modeled as a % of ARR converted to an implied
	// monthly amount. Its COGS rides on the blended recurring unit-cost
	// ratio so margin stays consistent without re-deriving costs per
	// upsold dollar.
	f.ExpansionRevenue = f.ARR * params.ExpansionRate / 100 / 12
	f.RecurringCostRatio = safeDiv(t.RecurringUnitCosts, t.MRR)

	f.TotalRevenue = f.MRR + f.ExpansionRevenue + f.OneTimeRevenue

	// =========================================================================
	// COSTS
	// =========================================================================
	f.COGS = t.UnitCosts + f.ExpansionRevenue*f.RecurringCostRatio
	f.PaymentFees = f.TotalRevenue * params.PaymentProcessingRate / 100

	for _, e := range employees {
		f.Payroll += e.MonthlyCost()
	}
	f.Payroll *= 1 + params.PayrollTax/100

	for _, ex := range expenses {
		if ex.IsAcquisitionSpend {
			f.AcquisitionSpend += ex.MonthlyAmount
		} else {
			f.Opex += ex.MonthlyAmount
		}
	}

	// Commission is paid on gross new deal value, not net of churn: the
	// annualized contract value of new recurring signups plus one-time
	// lifetime deals closed this month.
	f.Commissions = (t.NewRecurringARR + t.NewDealValue) * params.CommissionRate / 100

	f.TotalExpenses = f.COGS + f.PaymentFees + f.Payroll + f.Opex + f.AcquisitionSpend + f.Commissions

	// =========================================================================
	// PROFITABILITY
	// =========================================================================
	f.GrossProfit = f.TotalRevenue - f.COGS
	f.GrossMarginPercent = safeDiv(f.GrossProfit, f.TotalRevenue) * 100
	f.RecurringGrossMarginPercent = safeDiv(t.RecurringMRR-t.RecurringUnitCosts, t.RecurringMRR) * 100
	f.NetMonthly = f.TotalRevenue - f.TotalExpenses
	f.ProfitMargin = safeDiv(f.NetMonthly, f.TotalRevenue) * 100

	// =========================================================================
	// GROWTH
	// =========================================================================
	f.BlendedGrowthRate = safeDiv(t.WeightedGrowth, t.TotalSubscribers)
	f.BlendedChurnRate = safeDiv(t.WeightedChurn, t.TotalSubscribers)
	f.RecurringGrowthRate = safeDiv(t.RecurringWeightedGrowth, t.RecurringSubscribers)
	f.RecurringChurnRate = safeDiv(t.RecurringWeightedChurn, t.RecurringSubscribers)

	// Net new ARR nets this month's new recurring revenue against churned
	// revenue in dollar terms (unlike the commission base above).
	f.NetNewARR = (t.NewMRR - t.ChurnedMRR) * 12

	// =========================================================================
	// POPULATION
	// =========================================================================
	f.TotalSubscribers = t.TotalSubscribers
	f.PayingSubscribers = t.PayingSubscribers
	f.NewPayingSubscribers = t.NewPayingUsers
	f.ConversionRate = safeDiv(t.PayingSubscribers, t.TotalSubscribers) * 100
	f.ARPU = safeDiv(t.MRR, t.TotalSubscribers)
	f.ARPPU = safeDiv(t.MRR, t.PayingSubscribers)
	f.RecurringARPPU = safeDiv(t.RecurringMRR, t.RecurringSubscribers)

	// =========================================================================
	// CASH
	// =========================================================================
	// Cash inflow = accrual revenue + the yearly-upfront divergence, with the
	// processing fee applied to the cash total (which differs from the
	// accrual total whenever yearly plans sell).
	grossCashIn := f.MRR + f.ExpansionRevenue + f.OneTimeRevenue + t.YearlyUpfrontCash
	f.CashInflow = grossCashIn - grossCashIn*params.PaymentProcessingRate/100

	cashOut := f.COGS + f.Payroll + f.Opex + f.AcquisitionSpend + f.Commissions
	f.GrossBurn = cashOut

	netCash := f.CashInflow - cashOut
	if netCash < 0 {
		f.BurnRate = -netCash
	}

	// Runway: months of cash at current burn. Cash-positive businesses with
	// cash in the bank report the 999 sentinel; an empty bank that is not
	// burning reports 0, not infinity.
	switch {
	case f.BurnRate > 0:
		f.RunwayMonths = params.StartingCash / f.BurnRate
	case params.StartingCash > 0:
		f.RunwayMonths = SentinelRunway
	default:
		f.RunwayMonths = 0
	}

	// =========================================================================
	// EFFICIENCY
	// =========================================================================
	// CAC = (acquisition spend + commissions from new logos) / new paying
	// subscribers. Spending with zero acquisition is reported as the 99999
	// sentinel rather than infinity.
	acquisitionTotal := f.AcquisitionSpend + f.Commissions
	switch {
	case t.NewPayingUsers > 0:
		f.CAC = acquisitionTotal / t.NewPayingUsers
	case acquisitionTotal > 0:
		f.CAC = SentinelCAC
	}

	// LTV = one-time profit + recurring LTV.
	//
	//   oneTimeProfit = avg one-time revenue per new paying user x gross margin
	//   recurringLtv  = (recurring ARPPU x recurring gross margin)
	//                   / (max(minChurnFloor, recurringChurn) / 100)
	//
	// The churn floor is mandatory: zero churn would otherwise produce an
	// unbounded LTV.
	oneTimeRevPerNew := safeDiv(t.OneTimeRevenueFromNew, t.NewPayingUsers)
	f.OneTimeProfitPerNewUser = oneTimeRevPerNew * f.GrossMarginPercent / 100

	churnForLTV := math.Max(params.MinChurnFloor, f.RecurringChurnRate)
	recurringLTV := 0.0
	if churnForLTV > 0 {
		recurringLTV = (f.RecurringARPPU * f.RecurringGrossMarginPercent / 100) / (churnForLTV / 100)
	}
	f.LTV = f.OneTimeProfitPerNewUser + recurringLTV

	if f.CAC > 0 {
		f.LTVCACRatio = f.LTV / f.CAC
	}

	// CAC payback: months of recurring gross profit needed to recover the
	// setup-fee-adjusted CAC.
	setupFeePerNew := safeDiv(t.SetupFeesFromNew, t.NewPayingUsers)
	adjustedCAC := math.Max(0, f.CAC-setupFeePerNew)
	monthlyRecurringProfit := f.RecurringARPPU * f.RecurringGrossMarginPercent / 100
	switch {
	case adjustedCAC == 0 && t.NewPayingUsers > 0:
		f.CACPaybackMonths = 0
	case monthlyRecurringProfit <= 0:
		if adjustedCAC > 0 {
			f.CACPaybackMonths = SentinelPayback
		}
	default:
		f.CACPaybackMonths = adjustedCAC / monthlyRecurringProfit
	}

	// Magic number: net new ARR per dollar of acquisition spend.
	if acquisitionTotal > 0 {
		f.MagicNumber = f.NetNewARR / acquisitionTotal
	}

	// Burn multiplier: dollars burned per dollar of net new ARR. Burning
	// while flat or shrinking is reported as the 999 sentinel.
	if f.BurnRate > 0 {
		if f.NetNewARR > 0 {
			f.BurnMultiplier = f.BurnRate / f.NetNewARR
		} else {
			f.BurnMultiplier = SentinelBurnMultiplier
		}
	}

	// Rule of 40 = annualized revenue growth % + profit margin %. The
	// monthly growth implied by net new ARR is compounded over a year:
	//
	//   (1 + (netNewArr/12) / (arr/12))^12 - 1
	annualizedGrowth := 0.0
	if f.ARR > 0 {
		monthlyGrowth := (f.NetNewARR / 12) / (f.ARR / 12)
		if 1+monthlyGrowth > 0 {
			annualizedGrowth = (math.Pow(1+monthlyGrowth, 12) - 1) * 100
		} else {
			annualizedGrowth = -100
		}
	}
	f.RuleOf40 = annualizedGrowth + f.ProfitMargin

	// NRR = 100 + expansion - recurring churn.
	f.NRR = 100 + params.ExpansionRate - f.RecurringChurnRate

	// =========================================================================
	// VALUATION
	// =========================================================================
	f.Valuation = f.ARR * params.ValuationMultiple
	f.FounderValue = f.Valuation * params.FounderEquity / 100

	return f
}

// safeDiv returns a/b, or 0 when the denominator is 0. The snapshot contract
// forbids NaN/Inf in any output field.
func safeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}
