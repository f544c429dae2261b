// Package wellness manages the wellness chat transcript: single-shot chat
// completions, server-streamed research progress, and voice transcript
// forwarding via an external collaborator.
package wellness

import "time"

// Message roles as stored in the transcript.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one entry in the append-only chat transcript.
type Message struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// ChatRequest is the single-shot completion request body.
type ChatRequest struct {
	Message string `json:"message"`
	Context string `json:"context,omitempty"`
}

// ChatResponse is the single-shot completion response body.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// ResearchUpdate is one server-streamed research progress frame. A frame
// carrying a non-nil Result is terminal.
type ResearchUpdate struct {
	Status   string          `json:"status"`
	Progress float64         `json:"progress"`
	Result   *ResearchResult `json:"result,omitempty"`
}

// ResearchResult is the payload of the terminal research frame.
type ResearchResult struct {
	Summary string   `json:"summary"`
	Sources []string `json:"sources,omitempty"`
}
