// Package forecast projects a business model forward month by month,
// keeping an accrual P&L and a cash ledger in parallel. The projector is
// deterministic for fixed inputs and carries state only within a single run.
package forecast

// Projection is one simulated month. The sequence is append-only during
// generation and immutable once returned.
type Projection struct {
	Month                int     `json:"month"` // 1-based
	Revenue              float64 `json:"revenue"`
	OneTimeRevenue       float64 `json:"oneTimeRevenue"`
	COGS                 float64 `json:"cogs"`
	GrossProfit          float64 `json:"grossProfit"`
	Payroll              float64 `json:"payroll"`
	Opex                 float64 `json:"opex"`
	Commissions          float64 `json:"commissions"`
	NetIncome            float64 `json:"netIncome"`
	Subscribers          float64 `json:"subscribers"` // rounded total
	NewPayingSubscribers float64 `json:"newPayingSubscribers"`
	CashBalance          float64 `json:"cashBalance"`
	CashFlow             float64 `json:"cashFlow"`
}
