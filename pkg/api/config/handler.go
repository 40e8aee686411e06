// Package config exposes the advisory provider configuration.
package config

import (
	"encoding/json"
	"fmt"
	"net/http"

	"saas_simulator/pkg/core/agent"
)

// Response describes the current provider selection.
type Response struct {
	ActiveProvider string   `json:"active_provider"`
	Available      []string `json:"available"`
}

// SwitchRequest selects a new global provider.
type SwitchRequest struct {
	Provider string `json:"provider"`
}

// Handler holds the agent manager.
type Handler struct {
	mgr *agent.Manager
}

// NewHandler creates a config handler.
func NewHandler(mgr *agent.Manager) *Handler {
	return &Handler{mgr: mgr}
}

// HandleConfig reports the active and available providers.
func (h *Handler) HandleConfig(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Response{
		ActiveProvider: h.mgr.ActiveProvider(),
		Available:      h.mgr.Available(),
	})
}

// HandleSwitch changes the global provider at runtime.
func (h *Handler) HandleSwitch(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	var req SwitchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.mgr.SetActiveProvider(req.Provider); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	fmt.Fprintf(w, "Success: switched to %s", req.Provider)
}
