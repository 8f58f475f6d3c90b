package triage

import (
	"time"

	"github.com/arogya-ai/triage-server/internal/geo"
)

// Status is the persisted triage stage of a session. The stage is carried on
// every stored turn and transitioned by the engine; the latest turn's status
// is the session's current stage.
type Status string

const (
	// StatusIntakeStart is the virtual stage of a session with no turns yet.
	StatusIntakeStart Status = "INTAKE_START"
	// StatusIntake means the assistant is still gathering symptoms.
	StatusIntake Status = "INTAKE"
	// StatusAwaitingLocation means advice was given and the assistant asked
	// for the user's location.
	StatusAwaitingLocation Status = "AWAITING_LOCATION"
	// StatusComplete means facilities were returned.
	StatusComplete Status = "COMPLETE"
)

// Sender labels for stored turns.
const (
	SenderUser      = "user"
	SenderAssistant = "assistant"

	// senderLegacyAI is an old writer's label for assistant turns. It is
	// tolerated on read and normalized before history reaches the model.
	senderLegacyAI = "ai"
)

// Turn is one immutable message in a session's chronological log.
type Turn struct {
	ID           string    `json:"id"`
	SessionID    string    `json:"session_id"`
	Sender       string    `json:"sender"`
	Message      string    `json:"message"`
	TriageStatus Status    `json:"triage_status"`
	Timestamp    time.Time `json:"timestamp"`
}

// HistoryEntry is the minimal projection of a turn used to rebuild the
// model's conversation context.
type HistoryEntry struct {
	Sender  string
	Message string
}

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

// ChatResponse is the envelope returned to the caller. TreatmentPlan and
// MapData are null until the facilities stage concludes the intake.
type ChatResponse struct {
	Status        string         `json:"status"`
	IsFinal       bool           `json:"is_final"`
	VoiceResponse string         `json:"voice_response"`
	TreatmentPlan *string        `json:"treatment_plan"`
	MapData       []geo.Facility `json:"map_data"`
}
