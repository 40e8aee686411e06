package export

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"saas_simulator/pkg/core/forecast"
	"saas_simulator/pkg/core/model"
	"saas_simulator/pkg/core/snapshot"
)

func TestHeaderOrderIsFixed(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	assert.Equal(t, "Month,Revenue,COGS,Gross Profit,Payroll,OpEx,Net Income,Cash Balance", strings.TrimSpace(buf.String()))
}

func TestCurrencyFieldsHaveTwoDecimals(t *testing.T) {
	projections := []forecast.Projection{{
		Month:       1,
		Revenue:     1234.5678,
		COGS:        100,
		GrossProfit: 1134.5678,
		Payroll:     0,
		Opex:        99.999,
		NetIncome:   -50.125,
		CashBalance: 10000,
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, projections))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "1,1234.57,100.00,1134.57,0.00,100.00,-50.12,10000.00", lines[1])
}

func TestRoundTripReproducesFigures(t *testing.T) {
	// A full simulated run must survive export and re-parse with every
	// currency figure intact to two decimal places, in header order.
	plans := []model.Plan{
		{Price: 29, Interval: model.IntervalMonthly, UnitCost: 4, Subscribers: 150, GrowthRate: 6, ChurnRate: 2},
		{Price: 950, Interval: model.IntervalYearly, UnitCost: 12, Subscribers: 25, GrowthRate: 4, ChurnRate: 1, SetupFee: 99},
	}
	employees := []model.Employee{{Role: "Engineer", AnnualSalary: 130000, Count: 2}}
	expenses := []model.OperatingExpense{
		{Name: "Ads", MonthlyAmount: 2500, IsAcquisitionSpend: true},
		{Name: "Rent", MonthlyAmount: 1500},
	}
	params := model.DefaultScenarioParams()
	params.StartingCash = 75000
	params.PaymentProcessingRate = 2.9
	params.CommissionRate = 5

	snap := snapshot.Calculate(plans, employees, expenses, params)
	projections, _ := forecast.Project(plans, snap, params, 36)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, projections))

	parsed, err := ParseCSV(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, parsed, len(projections))

	for i, p := range projections {
		got := parsed[i]
		assert.Equal(t, p.Month, got.Month)
		assertCents(t, p.Revenue, got.Revenue, "revenue", i)
		assertCents(t, p.COGS, got.COGS, "cogs", i)
		assertCents(t, p.GrossProfit, got.GrossProfit, "gross profit", i)
		assertCents(t, p.Payroll, got.Payroll, "payroll", i)
		assertCents(t, p.Opex, got.Opex, "opex", i)
		assertCents(t, p.NetIncome, got.NetIncome, "net income", i)
		assertCents(t, p.CashBalance, got.CashBalance, "cash balance", i)
	}
}

func assertCents(t *testing.T, want, got float64, field string, row int) {
	t.Helper()
	assert.InDelta(t, want, got, 0.005, "row %d %s", row, field)
}

func TestParseRejectsMalformedInput(t *testing.T) {
	_, err := ParseCSV(strings.NewReader(""))
	assert.Error(t, err)

	_, err = ParseCSV(strings.NewReader("Month,Revenue\n1,10.00\n"))
	assert.Error(t, err)

	_, err = ParseCSV(strings.NewReader("Month,Revenue,COGS,Gross Profit,Payroll,OpEx,Net Income,Cash Balance\nx,1,2,3,4,5,6,7\n"))
	assert.Error(t, err)
}

func TestNegativeCashBalanceSurvivesExport(t *testing.T) {
	projections := []forecast.Projection{{Month: 1, CashBalance: -1234.567, NetIncome: -1234.567}}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, projections))

	parsed, err := ParseCSV(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.True(t, math.Abs(parsed[0].CashBalance-(-1234.57)) < 0.005)
}
