// Package export serializes projection runs into the CSV shape consumed by
// spreadsheet users. The column order and two-decimal currency formatting are
// a compatibility contract; do not reorder or reformat.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"saas_simulator/pkg/core/forecast"
)

// Header is the fixed CSV header row.
var Header = []string{"Month", "Revenue", "COGS", "Gross Profit", "Payroll", "OpEx", "Net Income", "Cash Balance"}

// WriteCSV writes the full projection sequence, header row first, currency
// fields rounded to two decimals.
func WriteCSV(w io.Writer, projections []forecast.Projection) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, p := range projections {
		row := []string{
			strconv.Itoa(p.Month),
			money(p.Revenue),
			money(p.COGS),
			money(p.GrossProfit),
			money(p.Payroll),
			money(p.Opex),
			money(p.NetIncome),
			money(p.CashBalance),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row for month %d: %w", p.Month, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ParseCSV reads a projection CSV back into records. Only the exported
// columns are recovered; fields the CSV does not carry stay zero.
func ParseCSV(r io.Reader) ([]forecast.Projection, error) {
	cr := csv.NewReader(r)

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty CSV")
	}
	if len(rows[0]) != len(Header) {
		return nil, fmt.Errorf("unexpected header width: got %d columns, want %d", len(rows[0]), len(Header))
	}

	projections := make([]forecast.Projection, 0, len(rows)-1)
	for i, row := range rows[1:] {
		month, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: bad month %q: %w", i+1, row[0], err)
		}

		vals := make([]float64, len(row)-1)
		for j, cell := range row[1:] {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: bad value %q in column %s: %w", i+1, cell, Header[j+1], err)
			}
			vals[j] = v
		}

		projections = append(projections, forecast.Projection{
			Month:       month,
			Revenue:     vals[0],
			COGS:        vals[1],
			GrossProfit: vals[2],
			Payroll:     vals[3],
			Opex:        vals[4],
			NetIncome:   vals[5],
			CashBalance: vals[6],
		})
	}

	return projections, nil
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
