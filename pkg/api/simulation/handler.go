// Package simulation exposes the engine over HTTP: one call runs the
// snapshot calculator, the forward projector and the cohort generator on the
// posted business model. The engine is pure, so the handler is safe for
// concurrent requests without any locking.
package simulation

import (
	"encoding/json"
	"net/http"

	"saas_simulator/pkg/core/cohort"
	"saas_simulator/pkg/core/forecast"
	"saas_simulator/pkg/core/model"
	"saas_simulator/pkg/core/snapshot"
)

// DefaultHorizonMonths is used when the request does not specify a horizon.
const DefaultHorizonMonths = 60

// RunRequest is a business model plus the projection horizon.
type RunRequest struct {
	model.BusinessModel
	HorizonMonths int `json:"horizonMonths"`
}

// RunResponse bundles the three engine outputs.
type RunResponse struct {
	Snapshot       snapshot.Financials   `json:"snapshot"`
	Projections    []forecast.Projection `json:"projections"`
	Cohorts        []cohort.Cohort       `json:"cohorts"`
	BreakEvenMonth *int                  `json:"breakEvenMonth"` // null if never reached
}

// HandleRun runs the full simulation.
func HandleRun(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.HorizonMonths <= 0 {
		req.HorizonMonths = DefaultHorizonMonths
	}

	snap := snapshot.Calculate(req.Plans, req.Employees, req.Expenses, req.Params)
	projections, breakEven := forecast.Project(req.Plans, snap, req.Params, req.HorizonMonths)
	cohorts := cohort.Generate(projections, snap)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(RunResponse{
		Snapshot:       snap,
		Projections:    projections,
		Cohorts:        cohorts,
		BreakEvenMonth: breakEven,
	})
}

// HandleSnapshot runs only the snapshot calculator, for UI surfaces that
// re-render KPI tiles on every keystroke and do not need the projection.
func HandleSnapshot(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var m model.BusinessModel
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	snap := snapshot.Calculate(m.Plans, m.Employees, m.Expenses, m.Params)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snap)
}

func setCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}
