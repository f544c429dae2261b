package api

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"

	appErrors "github.com/notelab/notelab-cli/internal/errors"
	"github.com/notelab/notelab-cli/internal/jsonutil"
)

// SSE framing constants. The backend emits "data: {...}" frames and ends
// chat streams with a literal "[DONE]" payload.
const (
	ssePrefix     = "data:"
	sseDoneMarker = "[DONE]"
)

// maxStreamLineSize bounds a single SSE frame (1 MiB).
const maxStreamLineSize = 1 << 20

// StreamEvent is one server-sent frame. Err is set on the final event when
// the stream terminated abnormally; otherwise the channel simply closes
// after the [DONE] marker or EOF.
type StreamEvent struct {
	Data json.RawMessage
	Err  error
}

// Stream issues a POST request and consumes the SSE response. Events are
// delivered on the returned channel, which closes when the stream ends.
// Cancel ctx to abort mid-stream.
func (c *Client) Stream(ctx context.Context, path string, body interface{}) (<-chan StreamEvent, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, appErrors.WrapWithContext(err, "wait for rate limiter")
	}

	var payload []byte
	if body != nil {
		data, err := jsonutil.MarshalJSON(body)
		if err != nil {
			return nil, err
		}
		payload = data
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, payload)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")

	// Streams run for as long as the server keeps sending; the per-request
	// timeout of the default client would cut them off.
	streamClient := &http.Client{Transport: c.httpClient.Transport}

	resp, err := streamClient.Do(req)
	if err != nil {
		return nil, appErrors.WrapWithContext(err, "open stream")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer func() { _ = resp.Body.Close() }()
		return nil, decodeError(resp)
	}

	events := make(chan StreamEvent, 4)
	go c.readStream(ctx, resp, events)

	return events, nil
}

// readStream scans SSE frames from the response body into the events
// channel until [DONE], EOF, or cancellation.
func (c *Client) readStream(ctx context.Context, resp *http.Response, events chan<- StreamEvent) {
	defer close(events)
	defer func() { _ = resp.Body.Close() }()

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), maxStreamLineSize)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		text := string(line)
		if !strings.HasPrefix(text, ssePrefix) {
			// Comments and other SSE fields are ignored.
			continue
		}

		data := strings.TrimSpace(strings.TrimPrefix(text, ssePrefix))
		if data == sseDoneMarker {
			return
		}

		select {
		case events <- StreamEvent{Data: json.RawMessage(data)}:
		case <-ctx.Done():
			return
		}
	}

	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		c.logger.WithError(err).Warn("Stream reader aborted")
		select {
		case events <- StreamEvent{Err: appErrors.StreamError("read stream", err)}:
		case <-ctx.Done():
		}
	}
}
