package forecast

import (
	"math"
	"reflect"
	"testing"

	"saas_simulator/pkg/core/model"
	"saas_simulator/pkg/core/snapshot"
)

func almost(a, b float64) bool {
	return math.Abs(a-b) < 0.0001
}

func TestYearlyPlanFirstMonthCash(t *testing.T) {
	// $499/yr, 5 subscribers, no growth/churn, no setup fee. Month 1 cash
	// comes from base renewal smoothing (5/12 * 499) since there is no
	// "twelve months ago" cohort yet; accrual revenue is 5 * 499/12.
	plans := []model.Plan{{
		Price:       499,
		Interval:    model.IntervalYearly,
		Subscribers: 5,
	}}
	params := model.ScenarioParams{}
	snap := snapshot.Calculate(plans, nil, nil, params)

	projections, _ := Project(plans, snap, params, 1)
	if len(projections) != 1 {
		t.Fatalf("expected 1 projection, got %d", len(projections))
	}

	expected := 5.0 / 12.0 * 499.0
	if !almost(projections[0].Revenue, expected) {
		t.Errorf("month-1 accrual revenue: expected %f, got %f", expected, projections[0].Revenue)
	}
	// No costs in this model, so cash flow equals cash inflow.
	if !almost(projections[0].CashFlow, expected) {
		t.Errorf("month-1 cash inflow: expected %f, got %f", expected, projections[0].CashFlow)
	}
}

func TestYearlyRenewalLaggedCohort(t *testing.T) {
	// $1200/yr, 100 subscribers, 10% monthly growth, no churn. The cohort
	// acquired in month 1 renews exactly in month 13 with full survival.
	plans := []model.Plan{{
		Price:       1200,
		Interval:    model.IntervalYearly,
		Subscribers: 100,
		GrowthRate:  10,
	}}
	params := model.DefaultScenarioParams()
	snap := snapshot.Calculate(plans, nil, nil, params)

	projections, _ := Project(plans, snap, params, 13)

	// Subscribers compound at 10%: subs_m = 100 * 1.1^m, and the month-m
	// signup count is 10 * 1.1^(m-1). With zero churn the base cohort holds
	// at 100, smoothing 100/12 * 1200 = 10000 of renewal cash per month.
	newUsers := func(m int) float64 { return 10 * math.Pow(1.1, float64(m-1)) }

	cash12 := 10000 + 1200*newUsers(12)
	if !almost(projections[11].CashFlow, cash12) {
		t.Errorf("month-12 cash: expected %f, got %f", cash12, projections[11].CashFlow)
	}

	// Month 13 adds the exact renewal of the month-1 cohort on top.
	cash13 := 10000 + 1200*newUsers(13) + 1200*newUsers(1)
	if !almost(projections[12].CashFlow, cash13) {
		t.Errorf("month-13 cash: expected %f, got %f", cash13, projections[12].CashFlow)
	}

	// Accrual stays smooth: revenue_13 = 100 * subs_13, no renewal spike.
	rev13 := 100 * 100 * math.Pow(1.1, 13)
	if !almost(projections[12].Revenue, rev13) {
		t.Errorf("month-13 accrual revenue: expected %f, got %f", rev13, projections[12].Revenue)
	}
}

func TestCashLedgerInvariant(t *testing.T) {
	plans := []model.Plan{
		{Price: 29, Interval: model.IntervalMonthly, UnitCost: 4, Subscribers: 200, GrowthRate: 5, ChurnRate: 2},
		{Price: 950, Interval: model.IntervalYearly, UnitCost: 10, Subscribers: 30, GrowthRate: 3, ChurnRate: 1, SetupFee: 100},
	}
	employees := []model.Employee{{Role: "Engineer", AnnualSalary: 140000, Count: 2}}
	expenses := []model.OperatingExpense{
		{Name: "Ads", MonthlyAmount: 3000, IsAcquisitionSpend: true},
		{Name: "Rent", MonthlyAmount: 1800},
	}
	params := model.DefaultScenarioParams()
	params.StartingCash = 50000
	params.PaymentProcessingRate = 2.9
	params.ExpansionRate = 1
	params.CommissionRate = 8
	params.SalaryGrowthRate = 4
	params.OpexInflationRate = 3

	snap := snapshot.Calculate(plans, employees, expenses, params)
	projections, _ := Project(plans, snap, params, 60)

	if !almost(projections[0].CashBalance, params.StartingCash+projections[0].CashFlow) {
		t.Errorf("month 1: balance %f != starting %f + flow %f",
			projections[0].CashBalance, params.StartingCash, projections[0].CashFlow)
	}
	for i := 1; i < len(projections); i++ {
		want := projections[i-1].CashBalance + projections[i].CashFlow
		if !almost(projections[i].CashBalance, want) {
			t.Errorf("month %d: balance %f != previous + flow %f", i+1, projections[i].CashBalance, want)
		}
	}
}

func TestBreakEvenIsFirstProfitableMonth(t *testing.T) {
	// Small base growing 20%/mo against 5k of fixed opex: loses money for
	// several months, then crosses into profit exactly once.
	plans := []model.Plan{{
		Price:       100,
		Interval:    model.IntervalMonthly,
		Subscribers: 10,
		GrowthRate:  20,
	}}
	expenses := []model.OperatingExpense{{Name: "Fixed", MonthlyAmount: 5000}}
	params := model.DefaultScenarioParams()
	snap := snapshot.Calculate(plans, nil, expenses, params)

	projections, breakEven := Project(plans, snap, params, 24)

	if breakEven == nil {
		t.Fatal("expected break-even within 24 months")
	}
	for _, p := range projections {
		if p.Month < *breakEven && p.NetIncome > 0 {
			t.Errorf("month %d is profitable before reported break-even %d", p.Month, *breakEven)
		}
	}
	if projections[*breakEven-1].NetIncome <= 0 {
		t.Errorf("break-even month %d has non-positive net income %f",
			*breakEven, projections[*breakEven-1].NetIncome)
	}
}

func TestBreakEvenNeverReached(t *testing.T) {
	expenses := []model.OperatingExpense{{Name: "Fixed", MonthlyAmount: 5000}}
	params := model.DefaultScenarioParams()
	snap := snapshot.Calculate(nil, nil, expenses, params)

	projections, breakEven := Project(nil, snap, params, 12)
	if breakEven != nil {
		t.Errorf("expected nil break-even, got month %d", *breakEven)
	}
	// The cash balance keeps falling and is allowed to go negative.
	if projections[11].CashBalance >= 0 {
		t.Errorf("expected negative cash balance, got %f", projections[11].CashBalance)
	}
}

func TestFixedCostStepUps(t *testing.T) {
	employees := []model.Employee{{Role: "Engineer", AnnualSalary: 120000, Count: 1}}
	expenses := []model.OperatingExpense{{Name: "Rent", MonthlyAmount: 1000}}
	params := model.DefaultScenarioParams()
	params.SalaryGrowthRate = 10
	params.OpexInflationRate = 5

	snap := snapshot.Calculate(nil, employees, expenses, params)
	projections, _ := Project(nil, snap, params, 60)

	// Payroll holds at 10000 through month 12, then steps 10% at each of
	// months 13, 25, 37, 49. OpEx does the same at 5%.
	checks := []struct {
		month   int
		payroll float64
		opex    float64
	}{
		{12, 10000, 1000},
		{13, 11000, 1050},
		{24, 11000, 1050},
		{25, 12100, 1102.5},
		{37, 13310, 1157.625},
		{49, 14641, 1215.50625},
		{60, 14641, 1215.50625},
	}
	for _, c := range checks {
		got := projections[c.month-1]
		if !almost(got.Payroll, c.payroll) {
			t.Errorf("month %d payroll: expected %f, got %f", c.month, c.payroll, got.Payroll)
		}
		if !almost(got.Opex, c.opex) {
			t.Errorf("month %d opex: expected %f, got %f", c.month, c.opex, got.Opex)
		}
	}
}

func TestProjectionIsDeterministic(t *testing.T) {
	plans := []model.Plan{
		{Price: 49, Interval: model.IntervalMonthly, UnitCost: 7, Subscribers: 80, GrowthRate: 8, ChurnRate: 3},
	}
	params := model.DefaultScenarioParams()
	params.StartingCash = 20000
	snap := snapshot.Calculate(plans, nil, nil, params)

	a, aBE := Project(plans, snap, params, 36)
	b, bBE := Project(plans, snap, params, 36)

	if !reflect.DeepEqual(a, b) {
		t.Error("identical inputs must produce identical projections")
	}
	if (aBE == nil) != (bBE == nil) || (aBE != nil && *aBE != *bBE) {
		t.Error("break-even month must be deterministic")
	}
}

func TestMonthIndexIsMonotonic(t *testing.T) {
	params := model.DefaultScenarioParams()
	snap := snapshot.Calculate(nil, nil, nil, params)
	projections, _ := Project(nil, snap, params, 18)

	if len(projections) != 18 {
		t.Fatalf("expected 18 projections, got %d", len(projections))
	}
	for i, p := range projections {
		if p.Month != i+1 {
			t.Errorf("projection %d has month %d, want %d", i, p.Month, i+1)
		}
	}
}
