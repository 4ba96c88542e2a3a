// ABOUTME: HTTP handlers for the context introspection API
// ABOUTME: Exposes GET /contexts and POST /contexts/reset for the dashboard

package gateway

import (
	"encoding/json"
	"net/http"
	"time"
)

// ContextResponse is the JSON shape of one user context in GET /contexts.
type ContextResponse struct {
	UserID          string         `json:"user_id"`
	Flow            string         `json:"flow"`
	Step            string         `json:"step"`
	Variables       map[string]any `json:"variables"`
	LastInteraction string         `json:"last_interaction"`
}

// ResetResponse is the JSON response for POST /contexts/reset.
type ResetResponse struct {
	Success bool `json:"success"`
}

// handleListContexts handles GET /contexts requests.
// It returns a JSON array of all persisted user contexts. Ordering is not
// guaranteed.
func (g *Gateway) handleListContexts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	contexts, err := g.store.ListContexts(r.Context())
	if err != nil {
		g.logger.Error("failed to list contexts", "error", err)
		g.sendJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	response := make([]ContextResponse, 0, len(contexts))
	for _, uc := range contexts {
		response = append(response, ContextResponse{
			UserID:          uc.UserID,
			Flow:            uc.Flow,
			Step:            uc.Step,
			Variables:       uc.Variables,
			LastInteraction: uc.LastInteraction.Format(time.RFC3339),
		})
	}

	g.writeJSON(w, http.StatusOK, response)
}

// handleResetContexts handles POST /contexts/reset requests.
// It deletes every persisted context. Irreversible.
func (g *Gateway) handleResetContexts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if err := g.store.ResetContexts(r.Context()); err != nil {
		g.logger.Error("failed to reset contexts", "error", err)
		g.sendJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	g.logger.Info("contexts reset via API")
	g.writeJSON(w, http.StatusOK, ResetResponse{Success: true})
}

// handleHealth handles GET /health requests.
func (g *Gateway) handleHealth(w http.ResponseWriter, r *http.Request) {
	g.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady handles GET /health/ready requests.
// Readiness requires the store to answer a listing query.
func (g *Gateway) handleReady(w http.ResponseWriter, r *http.Request) {
	if _, err := g.store.ListContexts(r.Context()); err != nil {
		g.logger.Error("readiness check failed", "error", err)
		g.sendJSONError(w, http.StatusServiceUnavailable, "store unavailable")
		return
	}
	g.writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// writeJSON writes a JSON response with the given status code.
func (g *Gateway) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		g.logger.Error("failed to encode response", "error", err)
	}
}

// sendJSONError writes a JSON error response with the given status code.
func (g *Gateway) sendJSONError(w http.ResponseWriter, status int, message string) {
	g.writeJSON(w, status, map[string]string{"error": message})
}
