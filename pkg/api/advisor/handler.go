// Package advisor exposes the natural-language snapshot review. The
// simulation runs synchronously here, but the text generation is the one
// genuinely slow call in the system; clients should treat it as cancellable
// and the engine is never blocked by it.
package advisor

import (
	"encoding/json"
	"fmt"
	"net/http"

	coreadvisor "saas_simulator/pkg/core/advisor"
	"saas_simulator/pkg/core/model"
	"saas_simulator/pkg/core/snapshot"
)

// Handler holds the advisor dependency.
type Handler struct {
	advisor *coreadvisor.Advisor
}

// NewHandler creates an advisor handler.
func NewHandler(a *coreadvisor.Advisor) *Handler {
	return &Handler{advisor: a}
}

// ReviewResponse is the advisory payload for one business model.
type ReviewResponse struct {
	Review          *coreadvisor.Review             `json:"review"`
	Recommendations []coreadvisor.Recommendation    `json:"recommendations,omitempty"`
	Snapshot        snapshot.Financials             `json:"snapshot"`
}

// HandleReview computes the snapshot for the posted model and forwards it to
// the advisory provider. Recommendations are best-effort: a failure there
// still returns the prose review.
func (h *Handler) HandleReview(w http.ResponseWriter, r *http.Request) {
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

	var m model.BusinessModel
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	snap := snapshot.Calculate(m.Plans, m.Employees, m.Expenses, m.Params)

	review, err := h.advisor.Review(r.Context(), snap)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	resp := ReviewResponse{Review: review, Snapshot: snap}
	if recs, err := h.advisor.Recommend(r.Context(), snap); err == nil {
		resp.Recommendations = recs
	} else {
		fmt.Printf("[advisor] recommendations unavailable: %v\n", err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
