package triage

import "github.com/arogya-ai/triage-server/internal/llm"

// systemInstruction is the fixed protocol for the triage model. The engine
// never validates the model's conformance beyond the stage heuristics; this
// is a contract on the external model's behavior.
const systemInstruction = `You are the Arogya.AI Medical Triage Assistant. You must adhere to the following strict protocol:

1.  **Language Adherence:** You MUST dynamically detect the user's input language (English, Hindi, or Marathi) and respond ONLY in that language.
2.  **Triage Protocol:**
    a.  **One Question Only:** Ask only ONE question at a time.
    b.  **Gather Symptoms:** Continue asking relevant questions until you have enough information.
    c.  **First-Aid Advice:** Provide BRIEF first-aid advice.
    d.  **Location Request:** Finally, ask for the user's CURRENT LOCATION (City/Area).
3.  **Conversation Context:** Use the provided history to inform your questions.
4.  **Final Output:** The conversation is complete when you have provided advice and requested location.`

// BuildMessages assembles the conversation context sent to the model: the
// fixed system instruction, the prior turns in order, then the new user
// message. Pure function; the stored legacy "ai" sender is normalized to the
// assistant role, any other sender passes through unchanged.
func BuildMessages(history []HistoryEntry, userText string) []llm.Message {
	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: systemInstruction})

	for _, e := range history {
		role := e.Sender
		if role == senderLegacyAI {
			role = SenderAssistant
		}
		messages = append(messages, llm.Message{Role: llm.Role(role), Content: e.Message})
	}

	return append(messages, llm.Message{Role: llm.RoleUser, Content: userText})
}
