package snapshot

import (
	"testing"

	"saas_simulator/pkg/core/model"
)

func TestAccumulateCashAccrualDivergence(t *testing.T) {
	// Yearly plan $1200/yr, 10 subscribers, 10% growth, $50 setup fee.
	// One new user this instant.
	plans := []model.Plan{{
		Price:       1200,
		Interval:    model.IntervalYearly,
		SetupFee:    50,
		Subscribers: 10,
		GrowthRate:  10,
	}}
	params := model.DefaultScenarioParams()

	tot := Accumulate(plans, params)

	// Accrual: MRR spreads the yearly price, 10 * 1200/12 = 1000; one-time
	// revenue is the setup fee only, 1 * 50.
	if !almost(tot.MRR, 1000) {
		t.Errorf("MRR: expected 1000, got %f", tot.MRR)
	}
	if !almost(tot.OneTimeRevenue, 50) {
		t.Errorf("OneTimeRevenue: expected 50, got %f", tot.OneTimeRevenue)
	}
	// Cash: the new user pays the full year up front.
	if !almost(tot.YearlyUpfrontCash, 1200) {
		t.Errorf("YearlyUpfrontCash: expected 1200, got %f", tot.YearlyUpfrontCash)
	}
	// Commission base for a yearly signup is the annual contract value:
	// 1 user * 100/mo * 12.
	if !almost(tot.NewRecurringARR, 1200) {
		t.Errorf("NewRecurringARR: expected 1200, got %f", tot.NewRecurringARR)
	}
}

func TestAccumulateLifetimePlanStaysOutOfRecurring(t *testing.T) {
	plans := []model.Plan{
		{Price: 30, Interval: model.IntervalMonthly, Subscribers: 100, ChurnRate: 2},
		{Price: 500, Interval: model.IntervalLifetime, Subscribers: 20, GrowthRate: 5, ChurnRate: 50},
	}
	tot := Accumulate(plans, model.DefaultScenarioParams())

	// The lifetime plan's wild churn must not leak into recurring rates.
	if !almost(tot.RecurringSubscribers, 100) {
		t.Errorf("RecurringSubscribers: expected 100, got %f", tot.RecurringSubscribers)
	}
	if !almost(tot.RecurringWeightedChurn, 2*100) {
		t.Errorf("RecurringWeightedChurn: expected 200, got %f", tot.RecurringWeightedChurn)
	}
	// Lifetime deals feed the one-time commission base: 1 new user * 500.
	if !almost(tot.NewDealValue, 500) {
		t.Errorf("NewDealValue: expected 500, got %f", tot.NewDealValue)
	}
	// And lifetime price is recognized in full at acquisition (accrual).
	if !almost(tot.OneTimeRevenue, 500) {
		t.Errorf("OneTimeRevenue: expected 500, got %f", tot.OneTimeRevenue)
	}
}

func TestAccumulateNegativeGrowthFloorsNewUsers(t *testing.T) {
	plans := []model.Plan{{
		Price:       30,
		Interval:    model.IntervalMonthly,
		Subscribers: 100,
		GrowthRate:  -5,
		ChurnRate:   3,
	}}
	tot := Accumulate(plans, model.DefaultScenarioParams())

	// Negative growth produces zero new users, never negative ones; decline
	// is modeled through churn.
	if tot.NewUsers != 0 {
		t.Errorf("NewUsers: expected 0 with negative growth, got %f", tot.NewUsers)
	}
	if !almost(tot.ChurnedUsers, 3) {
		t.Errorf("ChurnedUsers: expected 3, got %f", tot.ChurnedUsers)
	}
}

func TestAccumulateMarketingEfficiencyAndViralRate(t *testing.T) {
	plans := []model.Plan{{
		Price:       30,
		Interval:    model.IntervalMonthly,
		Subscribers: 100,
		GrowthRate:  4,
	}}
	params := model.DefaultScenarioParams()
	params.MarketingEfficiency = 1.5
	params.ViralRate = 1

	tot := Accumulate(plans, params)

	// Effective growth = 4 * 1.5 + 1 = 7% -> 7 new users.
	if !almost(tot.NewUsers, 7) {
		t.Errorf("NewUsers: expected 7, got %f", tot.NewUsers)
	}
	if !almost(tot.WeightedGrowth, 700) {
		t.Errorf("WeightedGrowth: expected 700, got %f", tot.WeightedGrowth)
	}
}
