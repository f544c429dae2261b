package wellness

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notelab/notelab-cli/internal/api"
	appErrors "github.com/notelab/notelab-cli/internal/errors"
)

type fakeBackend struct {
	postCalls int
	postFn    func(path string, body, out interface{}) error
	streamFn  func(path string, body interface{}) (<-chan api.StreamEvent, error)
}

func (f *fakeBackend) Post(_ context.Context, path string, body, out interface{}) error {
	f.postCalls++
	if f.postFn == nil {
		return nil
	}
	return f.postFn(path, body, out)
}

func (f *fakeBackend) Stream(_ context.Context, path string, body interface{}) (<-chan api.StreamEvent, error) {
	return f.streamFn(path, body)
}

type fakeVoice struct {
	mu           sync.Mutex
	onTranscript func(string)
	spoken       []string
	stopped      bool
}

func (f *fakeVoice) StartListening(_ context.Context, onTranscript func(string)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onTranscript = onTranscript
	return nil
}

func (f *fakeVoice) StopListening() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
	return nil
}

func (f *fakeVoice) Speak(_ context.Context, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.spoken = append(f.spoken, text)
	return nil
}

type fakeRecorder struct {
	mu    sync.Mutex
	saved []Message
}

func (f *fakeRecorder) SaveMessage(_ context.Context, _ string, msg Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, msg)
	return nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func frame(t *testing.T, update ResearchUpdate) api.StreamEvent {
	t.Helper()
	data, err := json.Marshal(update)
	require.NoError(t, err)
	return api.StreamEvent{Data: data}
}

func TestSend(t *testing.T) {
	t.Run("appends user and assistant messages", func(t *testing.T) {
		backend := &fakeBackend{
			postFn: func(path string, body, out interface{}) error {
				require.Equal(t, "/ai/chat", path)
				require.Equal(t, ChatRequest{Message: "how do I sleep better"}, body)
				*out.(*ChatResponse) = ChatResponse{Reply: "keep a regular schedule"}
				return nil
			},
		}
		recorder := &fakeRecorder{}
		chat := NewChat(backend, testLogger(), nil, recorder, "")

		reply, err := chat.Send(context.Background(), "how do I sleep better")
		require.NoError(t, err)
		assert.Equal(t, RoleAssistant, reply.Role)
		assert.Equal(t, "keep a regular schedule", reply.Content)

		messages := chat.Messages()
		require.Len(t, messages, 2)
		assert.Equal(t, RoleUser, messages[0].Role)
		assert.NotEmpty(t, messages[0].ID)
		assert.Equal(t, RoleAssistant, messages[1].Role)
		assert.False(t, chat.IsTyping())
		assert.Empty(t, chat.Err())
		assert.Len(t, recorder.saved, 2)
	})

	t.Run("whitespace message never reaches the network", func(t *testing.T) {
		backend := &fakeBackend{}
		chat := NewChat(backend, testLogger(), nil, nil, "")

		_, err := chat.Send(context.Background(), "   ")

		require.Error(t, err)
		assert.Zero(t, backend.postCalls)
		assert.Empty(t, chat.Messages())
		assert.NotEmpty(t, chat.Err())
	})

	t.Run("failure keeps the user message and records the error", func(t *testing.T) {
		backend := &fakeBackend{
			postFn: func(string, interface{}, interface{}) error {
				return appErrors.APIResponseError(500, "boom")
			},
		}
		chat := NewChat(backend, testLogger(), nil, nil, "")

		_, err := chat.Send(context.Background(), "hello")

		require.Error(t, err)
		messages := chat.Messages()
		require.Len(t, messages, 1)
		assert.Equal(t, RoleUser, messages[0].Role)
		assert.False(t, chat.IsTyping())
		assert.NotEmpty(t, chat.Err())
	})
}

func TestResearch(t *testing.T) {
	t.Run("consumes progress frames until the terminal result", func(t *testing.T) {
		events := make(chan api.StreamEvent, 3)
		backend := &fakeBackend{
			streamFn: func(path string, _ interface{}) (<-chan api.StreamEvent, error) {
				require.Equal(t, "/research/stream", path)
				return events, nil
			},
		}
		chat := NewChat(backend, testLogger(), nil, nil, "")

		events <- frame(t, ResearchUpdate{Status: "searching", Progress: 0.3})
		events <- frame(t, ResearchUpdate{Status: "summarizing", Progress: 0.8})
		events <- frame(t, ResearchUpdate{
			Status:   "complete",
			Progress: 1,
			Result:   &ResearchResult{Summary: "drink more water", Sources: []string{"https://example.com"}},
		})
		close(events)

		var updates []ResearchUpdate
		result, err := chat.Research(context.Background(), "hydration", func(u ResearchUpdate) {
			updates = append(updates, u)
		})

		require.NoError(t, err)
		assert.Equal(t, "drink more water", result.Summary)
		assert.Len(t, updates, 3)
		assert.False(t, chat.IsResearching())

		messages := chat.Messages()
		require.Len(t, messages, 2)
		assert.Equal(t, "hydration", messages[0].Content)
		assert.Equal(t, "drink more water", messages[1].Content)
	})

	t.Run("stream ending without a result is an error", func(t *testing.T) {
		events := make(chan api.StreamEvent, 1)
		events <- frame(t, ResearchUpdate{Status: "searching", Progress: 0.5})
		close(events)

		backend := &fakeBackend{
			streamFn: func(string, interface{}) (<-chan api.StreamEvent, error) {
				return events, nil
			},
		}
		chat := NewChat(backend, testLogger(), nil, nil, "")

		_, err := chat.Research(context.Background(), "hydration", nil)

		require.ErrorIs(t, err, appErrors.ErrStreamEnded)
		assert.False(t, chat.IsResearching())
		assert.NotEmpty(t, chat.Err())
	})

	t.Run("stream error frame aborts the research", func(t *testing.T) {
		events := make(chan api.StreamEvent, 1)
		events <- api.StreamEvent{Err: appErrors.ErrTest}
		close(events)

		backend := &fakeBackend{
			streamFn: func(string, interface{}) (<-chan api.StreamEvent, error) {
				return events, nil
			},
		}
		chat := NewChat(backend, testLogger(), nil, nil, "")

		_, err := chat.Research(context.Background(), "hydration", nil)

		require.ErrorIs(t, err, appErrors.ErrTest)
		assert.False(t, chat.IsResearching())
	})

	t.Run("empty query never opens a stream", func(t *testing.T) {
		backend := &fakeBackend{
			streamFn: func(string, interface{}) (<-chan api.StreamEvent, error) {
				t.Fatal("stream should not be opened")
				return nil, nil
			},
		}
		chat := NewChat(backend, testLogger(), nil, nil, "")

		_, err := chat.Research(context.Background(), "  ", nil)
		require.Error(t, err)
	})
}

func TestVoice(t *testing.T) {
	t.Run("forwards completed transcripts and speaks the reply", func(t *testing.T) {
		backend := &fakeBackend{
			postFn: func(_ string, _, out interface{}) error {
				*out.(*ChatResponse) = ChatResponse{Reply: "take a deep breath"}
				return nil
			},
		}
		voice := &fakeVoice{}
		chat := NewChat(backend, testLogger(), voice, nil, "")

		require.NoError(t, chat.StartListening(context.Background()))
		assert.True(t, chat.IsListening())

		voice.onTranscript("I feel stressed")

		messages := chat.Messages()
		require.Len(t, messages, 2)
		assert.Equal(t, "I feel stressed", messages[0].Content)
		require.Len(t, voice.spoken, 1)
		assert.Equal(t, "take a deep breath", voice.spoken[0])

		require.NoError(t, chat.StopListening())
		assert.False(t, chat.IsListening())
		assert.True(t, voice.stopped)
	})

	t.Run("listening without a collaborator is rejected", func(t *testing.T) {
		chat := NewChat(&fakeBackend{}, testLogger(), nil, nil, "")

		err := chat.StartListening(context.Background())
		require.ErrorIs(t, err, appErrors.ErrVoiceUnavailable)
		assert.False(t, chat.IsListening())
	})
}
