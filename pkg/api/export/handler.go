// Package export serves the projection CSV download.
package export

import (
	"encoding/json"
	"net/http"

	"saas_simulator/pkg/api/simulation"
	"saas_simulator/pkg/core/export"
	"saas_simulator/pkg/core/forecast"
	"saas_simulator/pkg/core/snapshot"
)

// HandleCSV runs a projection for the posted business model and streams it
// back as an attachment in the documented column order.
func HandleCSV(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req simulation.RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.HorizonMonths <= 0 {
		req.HorizonMonths = simulation.DefaultHorizonMonths
	}

	snap := snapshot.Calculate(req.Plans, req.Employees, req.Expenses, req.Params)
	projections, _ := forecast.Project(req.Plans, snap, req.Params, req.HorizonMonths)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="projection.csv"`)
	if err := export.WriteCSV(w, projections); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
