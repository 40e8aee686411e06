// Package scenario exposes CRUD for saved scenarios.
package scenario

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"saas_simulator/pkg/core/model"
	"saas_simulator/pkg/core/store"
)

// Handler wraps the scenario repository.
type Handler struct {
	repo *store.ScenarioRepo
}

// NewHandler creates a scenario handler.
func NewHandler(repo *store.ScenarioRepo) *Handler {
	return &Handler{repo: repo}
}

// SaveRequest names a business model for persistence. ID is optional; an
// empty ID creates a new scenario.
type SaveRequest struct {
	ID    string              `json:"id,omitempty"`
	Name  string              `json:"name"`
	Model model.BusinessModel `json:"model"`
}

// HandleScenarios serves GET (list) and POST (save) on /api/scenarios.
func (h *Handler) HandleScenarios(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		scenarios, err := h.repo.List(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(scenarios)
	case http.MethodPost:
		var req SaveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.Name == "" {
			http.Error(w, "scenario name is required", http.StatusBadRequest)
			return
		}

		s := store.Scenario{Name: req.Name, Model: req.Model}
		if req.ID != "" {
			id, err := uuid.Parse(req.ID)
			if err != nil {
				http.Error(w, "invalid scenario id", http.StatusBadRequest)
				return
			}
			s.ID = id
		}

		if err := h.repo.Save(r.Context(), &s); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(s)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleScenario serves GET and DELETE on /api/scenario?id=<uuid>.
func (h *Handler) HandleScenario(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	id, err := uuid.Parse(r.URL.Query().Get("id"))
	if err != nil {
		http.Error(w, "invalid scenario id", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		s, err := h.repo.Load(r.Context(), id)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(s)
	case http.MethodDelete:
		if err := h.repo.Delete(r.Context(), id); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func setCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}
