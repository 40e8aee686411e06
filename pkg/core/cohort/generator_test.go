package cohort

import (
	"math"
	"testing"

	"saas_simulator/pkg/core/forecast"
	"saas_simulator/pkg/core/snapshot"
)

func almost(a, b float64) bool {
	return math.Abs(a-b) < 0.0001
}

func fakeProjections(n int) []forecast.Projection {
	out := make([]forecast.Projection, n)
	for i := range out {
		out[i] = forecast.Projection{Month: i + 1, NewPayingSubscribers: float64(10 + i)}
	}
	return out
}

func TestGenerateOneCohortPerAcquisitionMonth(t *testing.T) {
	snap := snapshot.Financials{RecurringChurnRate: 5, RecurringARPPU: 50, RecurringGrossMarginPercent: 80}

	cohorts := Generate(fakeProjections(24), snap)
	if len(cohorts) != AcquisitionMonths {
		t.Fatalf("expected %d cohorts, got %d", AcquisitionMonths, len(cohorts))
	}
	for i, c := range cohorts {
		if c.AcquisitionMonth != i+1 {
			t.Errorf("cohort %d: acquisition month %d, want %d", i, c.AcquisitionMonth, i+1)
		}
		if len(c.Metrics) != CurveMonths {
			t.Errorf("cohort %d: %d metric points, want %d", i, len(c.Metrics), CurveMonths)
		}
		if !almost(c.Size, float64(10+i)) {
			t.Errorf("cohort %d: size %f, want %d", i, c.Size, 10+i)
		}
	}

	// Shorter projections cap the cohort count.
	cohorts = Generate(fakeProjections(7), snap)
	if len(cohorts) != 7 {
		t.Errorf("expected 7 cohorts for a 7-month projection, got %d", len(cohorts))
	}
}

func TestRetentionCompoundsBlendedChurn(t *testing.T) {
	// 10% churn: retention walks 100 -> 90 -> 81 -> 72.9 ...
	snap := snapshot.Financials{RecurringChurnRate: 10}

	cohorts := Generate(fakeProjections(1), snap)
	m := cohorts[0].Metrics

	expected := 100.0
	for i := 0; i < CurveMonths; i++ {
		if !almost(m[i].RetentionRate, expected) {
			t.Errorf("M%d retention: expected %f, got %f", i, expected, m[i].RetentionRate)
		}
		expected *= 0.9
	}
}

func TestCumulativeLTVSeededWithOneTimeProfit(t *testing.T) {
	snap := snapshot.Financials{
		RecurringChurnRate:          10,
		RecurringARPPU:              100,
		RecurringGrossMarginPercent: 80,
		OneTimeProfitPerNewUser:     40,
	}

	cohorts := Generate(fakeProjections(1), snap)
	m := cohorts[0].Metrics

	// M0 carries only the one-time setup profit.
	if !almost(m[0].CumulativeLTV, 40) {
		t.Errorf("M0 LTV: expected 40, got %f", m[0].CumulativeLTV)
	}
	// M1 adds 90%% retention of $80 monthly recurring profit: 40 + 72.
	if !almost(m[1].CumulativeLTV, 112) {
		t.Errorf("M1 LTV: expected 112, got %f", m[1].CumulativeLTV)
	}
	// M2 adds 81%% of 80: 112 + 64.8.
	if !almost(m[2].CumulativeLTV, 176.8) {
		t.Errorf("M2 LTV: expected 176.8, got %f", m[2].CumulativeLTV)
	}
}

func TestBreakevenFlagsFirstCoveringMonth(t *testing.T) {
	snap := snapshot.Financials{
		RecurringChurnRate:          0,
		RecurringARPPU:              100,
		RecurringGrossMarginPercent: 100,
		CAC:                         250,
	}

	cohorts := Generate(fakeProjections(1), snap)
	m := cohorts[0].Metrics

	// Cumulative profit is 0, 100, 200, 300, ... so CAC 250 is covered at M3.
	for i, metric := range m {
		want := i == 3
		if metric.IsBreakeven != want {
			t.Errorf("M%d breakeven: expected %v, got %v (cumulative %f)", i, want, metric.IsBreakeven, metric.CumulativeLTV)
		}
	}
}

func TestNoBreakevenWithoutCAC(t *testing.T) {
	snap := snapshot.Financials{RecurringARPPU: 100, RecurringGrossMarginPercent: 100}

	cohorts := Generate(fakeProjections(1), snap)
	for i, metric := range cohorts[0].Metrics {
		if metric.IsBreakeven {
			t.Errorf("M%d: breakeven must not fire when CAC is 0", i)
		}
	}
}
