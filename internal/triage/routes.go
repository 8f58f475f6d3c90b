package triage

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// internalErrorReply is the fixed user-facing message for unexpected
// failures; internals are never exposed to the caller.
const internalErrorReply = "I encountered an internal error. Please try again."

// RegisterRoutes mounts the chat and session endpoints on the given router.
func RegisterRoutes(r chi.Router, engine *Engine, store *Store) {
	r.Post("/api/chat", handleChat(engine))
	r.Get("/api/sessions/{sessionID}/history", handleHistory(store))
}

func handleChat(engine *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("triage: panic handling chat: %v", rec)
				writeJSON(w, http.StatusInternalServerError, map[string]string{"voice_response": internalErrorReply})
			}
		}()

		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}

		if strings.TrimSpace(req.SessionID) == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Session ID is required"})
			return
		}

		resp := engine.HandleChat(r.Context(), req.SessionID, req.Message)
		writeJSON(w, http.StatusOK, resp)
	}
}

func handleHistory(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, "sessionID")

		turns, err := store.Turns(r.Context(), sessionID)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"voice_response": internalErrorReply})
			return
		}
		if turns == nil {
			turns = []Turn{}
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"session_id": sessionID,
			"turns":      turns,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
