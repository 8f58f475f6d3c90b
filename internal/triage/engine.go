package triage

import (
	"context"
	"fmt"
	"log"

	"github.com/arogya-ai/triage-server/internal/geo"
	"github.com/arogya-ai/triage-server/internal/llm"
)

// apologyReply is returned when the model call fails. The turn is not
// persisted and no retry is attempted.
const apologyReply = "I apologize, but I'm currently experiencing a technical issue. Please try again."

// FacilityFinder resolves a free-text location into nearby facilities.
// geo.Resolver is the production implementation.
type FacilityFinder interface {
	FindNearby(ctx context.Context, query string) ([]geo.Facility, error)
}

// Engine orchestrates one chat turn: history replay, the model call, the
// stage transition, and the optional facility search. All dependencies are
// passed in explicitly.
type Engine struct {
	store       *Store
	provider    llm.Provider
	model       string
	temperature float64
	finder      FacilityFinder
}

// NewEngine creates an Engine.
func NewEngine(store *Store, provider llm.Provider, model string, temperature float64, finder FacilityFinder) *Engine {
	return &Engine{
		store:       store,
		provider:    provider,
		model:       model,
		temperature: temperature,
		finder:      finder,
	}
}

// HandleChat processes one inbound user message and returns the response
// envelope. External failures are degraded, never surfaced: a storage read
// failure falls back to an empty history, a model failure yields the apology
// reply without persistence, and a geocode failure skips the facilities
// stage for this turn.
func (e *Engine) HandleChat(ctx context.Context, sessionID, userText string) *ChatResponse {
	prior, err := e.store.LatestStatus(ctx, sessionID)
	if err != nil {
		log.Printf("triage: reading status for session %s: %v", sessionID, err)
		prior = StatusIntakeStart
	}

	history, err := e.store.History(ctx, sessionID)
	if err != nil {
		log.Printf("triage: reading history for session %s: %v", sessionID, err)
		history = nil
	}

	resp, err := e.provider.Complete(ctx, llm.CompletionRequest{
		Model:       e.model,
		Messages:    BuildMessages(history, userText),
		Temperature: e.temperature,
	})
	if err != nil {
		log.Printf("triage: model call for session %s: %v", sessionID, err)
		return &ChatResponse{Status: string(StatusIntake), VoiceResponse: apologyReply}
	}
	reply := resp.Content

	out := &ChatResponse{Status: string(StatusIntake), VoiceResponse: reply}
	next := StatusIntake

	// The persisted stage drives the search; the reply-text trigger is the
	// legacy safety net for sessions whose turns predate stage tracking.
	if prior == StatusAwaitingLocation || ShouldSearch(reply) {
		facilities, err := e.finder.FindNearby(ctx, userText)
		if err != nil {
			log.Printf("triage: facility search for session %s: %v", sessionID, err)
		} else {
			plan := reply
			out.IsFinal = true
			out.Status = string(StatusComplete)
			out.TreatmentPlan = &plan
			out.MapData = facilities
			out.VoiceResponse = fmt.Sprintf("I found %d facilities near you. Please check the map below.", len(facilities))
			next = StatusComplete
		}
	}

	if !out.IsFinal {
		switch {
		case prior == StatusAwaitingLocation:
			// Failed or skipped search: keep waiting for a usable location.
			next = StatusAwaitingLocation
		case IsLocationRequest(reply):
			next = StatusAwaitingLocation
		}
	}

	if err := e.store.AppendExchange(ctx, sessionID, userText, reply, next); err != nil {
		log.Printf("triage: persisting turns for session %s: %v", sessionID, err)
	}

	return out
}
