package rest

import (
	"encoding/json"
	"net/http"

	"github.com/moodtune-labs/moodtune/backend/internal/core/services"
	"github.com/moodtune-labs/moodtune/backend/internal/worker"
)

const errCodeModelUnavailable = "MODEL_UNAVAILABLE"

// chatRequest defines what the client sends us
type chatRequest struct {
	Text       string   `json:"text"`
	SessionID  string   `json:"sessionId"`
	Context    []string `json:"context"`
	UserGenres []string `json:"userGenres"`
}

// Chat handles POST /chat
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	// 1. Decode the Request Body
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// 2. Validate Input
	// An empty message is allowed when a session provides the context.
	if req.Text == "" && req.SessionID == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	// 3. Call the Service (The Core Logic)
	// We pass the Context so the service can cancel long-running tasks if the user disconnects
	analysis, err := h.svc.AnalyzeMessage(r.Context(), services.ChatRequest{
		Text:       req.Text,
		SessionID:  req.SessionID,
		Context:    req.Context,
		UserGenres: req.UserGenres,
	})
	if err != nil {
		// The only hard failure in the cycle is the embedding backend.
		writeErrorWithCode(w, http.StatusBadGateway, err.Error(), errCodeModelUnavailable)
		return
	}

	// Persist off the request path. A dropped write never fails the reply.
	if req.SessionID != "" && h.pool != nil {
		msg := h.svc.MessageFor(req.SessionID, req.Text, analysis)
		var previews []string
		for _, t := range analysis.Tracks {
			if t.PreviewURL != "" {
				previews = append(previews, t.PreviewURL)
			}
		}
		h.pool.Submit(worker.Job{Message: msg, PreviewURLs: previews})
	}

	// 4. Return the Response
	writeJSON(w, http.StatusOK, analysis)
}
