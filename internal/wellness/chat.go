package wellness

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/notelab/notelab-cli/internal/api"
	appErrors "github.com/notelab/notelab-cli/internal/errors"
	"github.com/notelab/notelab-cli/internal/jsonutil"
)

// backend is the slice of the API client the chat uses.
type backend interface {
	Post(ctx context.Context, path string, body, out interface{}) error
	Stream(ctx context.Context, path string, body interface{}) (<-chan api.StreamEvent, error)
}

// Voice is the external voice collaborator. The chat only toggles its
// listening flag and forwards completed transcripts; capture and synthesis
// live behind this interface.
type Voice interface {
	// StartListening begins capture. onTranscript is invoked once per
	// completed utterance.
	StartListening(ctx context.Context, onTranscript func(transcript string)) error

	// StopListening ends capture.
	StopListening() error

	// Speak synthesizes the given text.
	Speak(ctx context.Context, text string) error
}

// Recorder persists transcript messages. Nil disables persistence.
type Recorder interface {
	SaveMessage(ctx context.Context, conversation string, msg Message) error
}

// Chat holds the append-only wellness transcript plus the transient typing,
// researching, and listening flags. One chat or research call is expected in
// flight at a time per instance; the mutex keeps the transcript coherent if
// that expectation is violated.
type Chat struct {
	mu       sync.Mutex
	client   backend
	logger   *logrus.Logger
	voice    Voice
	recorder Recorder

	// conversation names the transcript for persistence.
	conversation string

	messages    []Message
	typing      bool
	researching bool
	listening   bool
	lastError   string
}

// NewChat creates a wellness chat. voice and recorder may be nil.
func NewChat(client backend, logger *logrus.Logger, voice Voice, recorder Recorder, conversation string) *Chat {
	if conversation == "" {
		conversation = "wellness"
	}
	return &Chat{
		client:       client,
		logger:       logger,
		voice:        voice,
		recorder:     recorder,
		conversation: conversation,
	}
}

// Messages returns a snapshot of the transcript.
func (c *Chat) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Message(nil), c.messages...)
}

// IsTyping reports whether a chat completion is in flight.
func (c *Chat) IsTyping() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.typing
}

// IsResearching reports whether a research stream is being consumed.
func (c *Chat) IsResearching() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.researching
}

// IsListening reports whether voice capture is active.
func (c *Chat) IsListening() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.listening
}

// Err returns the message of the last failed operation, empty when the last
// operation succeeded.
func (c *Chat) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastError
}

// Send appends the user's message, requests a completion, and appends the
// assistant's reply. Empty or whitespace content is rejected before any
// network call.
func (c *Chat) Send(ctx context.Context, content string) (*Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		err := appErrors.EmptyFieldError("message")
		c.setError(err)
		return nil, err
	}

	c.append(ctx, newMessage(RoleUser, content))

	c.mu.Lock()
	c.typing = true
	c.lastError = ""
	c.mu.Unlock()

	var resp ChatResponse
	err := c.client.Post(ctx, "/ai/chat", ChatRequest{Message: content}, &resp)

	c.mu.Lock()
	c.typing = false
	c.mu.Unlock()

	if err != nil {
		wrapped := appErrors.WrapWithContext(err, "send chat message")
		c.setError(wrapped)
		return nil, wrapped
	}

	reply := newMessage(RoleAssistant, resp.Reply)
	c.append(ctx, reply)

	return &reply, nil
}

// Research streams research progress for the query. onUpdate is invoked for
// every frame; the frame carrying a result is terminal and its summary is
// appended to the transcript. onUpdate may be nil.
func (c *Chat) Research(ctx context.Context, query string, onUpdate func(ResearchUpdate)) (*ResearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		err := appErrors.EmptyFieldError("research query")
		c.setError(err)
		return nil, err
	}

	c.append(ctx, newMessage(RoleUser, query))

	c.mu.Lock()
	c.researching = true
	c.lastError = ""
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.researching = false
		c.mu.Unlock()
	}()

	events, err := c.client.Stream(ctx, "/research/stream", map[string]string{"query": query})
	if err != nil {
		wrapped := appErrors.WrapWithContext(err, "start research stream")
		c.setError(wrapped)
		return nil, wrapped
	}

	for event := range events {
		if event.Err != nil {
			wrapped := appErrors.StreamError("research", event.Err)
			c.setError(wrapped)
			return nil, wrapped
		}

		update, err := jsonutil.UnmarshalJSON[ResearchUpdate](event.Data)
		if err != nil {
			c.logger.WithError(err).Debug("Skipping malformed research frame")
			continue
		}

		if onUpdate != nil {
			onUpdate(update)
		}

		if update.Result != nil {
			c.append(ctx, newMessage(RoleAssistant, update.Result.Summary))
			return update.Result, nil
		}
	}

	wrapped := appErrors.StreamError("research", appErrors.ErrStreamEnded)
	c.setError(wrapped)
	return nil, wrapped
}

// StartListening begins voice capture. Completed transcripts are forwarded
// to Send; reply synthesis goes back through the collaborator.
func (c *Chat) StartListening(ctx context.Context) error {
	if c.voice == nil {
		return appErrors.ErrVoiceUnavailable
	}

	c.mu.Lock()
	if c.listening {
		c.mu.Unlock()
		return nil
	}
	c.listening = true
	c.mu.Unlock()

	err := c.voice.StartListening(ctx, func(transcript string) {
		reply, err := c.Send(ctx, transcript)
		if err != nil {
			c.logger.WithError(err).Warn("Failed to forward voice transcript")
			return
		}
		if err := c.voice.Speak(ctx, reply.Content); err != nil {
			c.logger.WithError(err).Warn("Failed to speak reply")
		}
	})
	if err != nil {
		c.mu.Lock()
		c.listening = false
		c.mu.Unlock()
		return appErrors.WrapWithContext(err, "start voice capture")
	}

	return nil
}

// StopListening ends voice capture.
func (c *Chat) StopListening() error {
	if c.voice == nil {
		return appErrors.ErrVoiceUnavailable
	}

	c.mu.Lock()
	c.listening = false
	c.mu.Unlock()

	if err := c.voice.StopListening(); err != nil {
		return appErrors.WrapWithContext(err, "stop voice capture")
	}

	return nil
}

func (c *Chat) append(ctx context.Context, msg Message) {
	c.mu.Lock()
	c.messages = append(c.messages, msg)
	c.mu.Unlock()

	if c.recorder != nil {
		if err := c.recorder.SaveMessage(ctx, c.conversation, msg); err != nil {
			c.logger.WithError(err).Warn("Failed to persist chat message")
		}
	}
}

func (c *Chat) setError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastError = err.Error()
}

func newMessage(role, content string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
}
