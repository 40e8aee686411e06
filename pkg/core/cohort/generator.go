// Package cohort derives per-acquisition-month retention and profitability
// curves from a projection run. This is a synthetic breakdown, not a true
// cohort tracker: every cohort reuses the snapshot's blended recurring churn
// rate, per-user recurring gross profit and snapshot-wide CAC, because the
// projector does not carry per-cohort rates. That simplification is part of
// the contract and is preserved deliberately.
package cohort

import (
	"saas_simulator/pkg/core/forecast"
	"saas_simulator/pkg/core/snapshot"
)

// AcquisitionMonths is how many leading projection months produce a cohort.
const AcquisitionMonths = 12

// CurveMonths is the number of forward metric points per cohort (M0..M12).
const CurveMonths = 13

// Metric is one point on a cohort's survival/profit curve.
type Metric struct {
	MonthIndex    int     `json:"monthIndex"`
	RetentionRate float64 `json:"retentionRate"` // %
	CumulativeLTV float64 `json:"cumulativeLtv"` // currency
	IsBreakeven   bool    `json:"isBreakeven"`
}

// Cohort is the curve for one acquisition month.
type Cohort struct {
	AcquisitionMonth int      `json:"acquisitionMonth"`
	Size             float64  `json:"size"` // new paying subscribers that month
	CAC              float64  `json:"cac"`  // snapshot value, constant across cohorts
	Metrics          []Metric `json:"metrics"`
}

// Generate builds one cohort per acquisition month in the first twelve
// projection months. Retention compounds the blended churn rate iteratively;
// cumulative LTV is seeded at month 0 with the one-time setup profit and
// accrues retention-weighted recurring gross profit per user after that.
// IsBreakeven marks the first month where cumulative LTV covers CAC.
func Generate(projections []forecast.Projection, snap snapshot.Financials) []Cohort {
	months := AcquisitionMonths
	if len(projections) < months {
		months = len(projections)
	}

	churn := snap.RecurringChurnRate
	monthlyProfit := snap.RecurringARPPU * snap.RecurringGrossMarginPercent / 100

	cohorts := make([]Cohort, 0, months)
	for i := 0; i < months; i++ {
		c := Cohort{
			AcquisitionMonth: projections[i].Month,
			Size:             projections[i].NewPayingSubscribers,
			CAC:              snap.CAC,
			Metrics:          make([]Metric, 0, CurveMonths),
		}

		retention := 100.0
		cumulative := snap.OneTimeProfitPerNewUser
		brokeEven := false

		for m := 0; m < CurveMonths; m++ {
			if m > 0 {
				retention *= 1 - churn/100
				cumulative += retention / 100 * monthlyProfit
			}

			breakeven := false
			if !brokeEven && snap.CAC > 0 && cumulative >= snap.CAC {
				breakeven = true
				brokeEven = true
			}

			c.Metrics = append(c.Metrics, Metric{
				MonthIndex:    m,
				RetentionRate: retention,
				CumulativeLTV: cumulative,
				IsBreakeven:   breakeven,
			})
		}

		cohorts = append(cohorts, c)
	}

	return cohorts
}
