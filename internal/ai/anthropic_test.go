package ai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnthropicClientComplete(t *testing.T) {
	var got anthropicRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "secret", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.NoError(t, json.Unmarshal(body, &got))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"id": "msg_1", "type": "message", "role": "assistant", "model": "test-model",
			"content": [{"type": "text", "text": "hello "}, {"type": "tool_use"}, {"type": "text", "text": "world"}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 12, "output_tokens": 3}
		}`)
	}))
	defer srv.Close()

	c := NewAnthropicClient(Options{APIKey: "secret", Endpoint: srv.URL, Model: "test-model"})
	resp, err := c.Complete(context.Background(), Request{
		System: "be brief",
		Messages: []Message{{
			Role:    "user",
			Content: []Block{ImageBlock("image/png", []byte{1, 2, 3}), TextBlock("read this")},
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, "hello world", resp.Content)
	assert.Equal(t, 12, resp.InputTokens)
	assert.Equal(t, 3, resp.OutputTokens)
	assert.Equal(t, "test-model", resp.Model)
	assert.False(t, resp.WasTruncated())

	assert.Equal(t, "test-model", got.Model)
	assert.Equal(t, DefaultMaxTokens, got.MaxTokens)
	assert.Equal(t, "be brief", got.System)
	require.Len(t, got.Messages, 1)
	blocks := got.Messages[0].Content
	require.Len(t, blocks, 2)
	assert.Equal(t, "image", blocks[0].Type)
	require.NotNil(t, blocks[0].Source)
	assert.Equal(t, "base64", blocks[0].Source.Type)
	assert.Equal(t, "image/png", blocks[0].Source.MediaType)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte{1, 2, 3}), blocks[0].Source.Data)
	assert.Equal(t, "text", blocks[1].Type)
	assert.Equal(t, "read this", blocks[1].Text)
}

func TestAnthropicClientRequestMaxTokens(t *testing.T) {
	var got anthropicRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		io.WriteString(w, `{"content": [], "stop_reason": "max_tokens"}`)
	}))
	defer srv.Close()

	c := NewAnthropicClient(Options{APIKey: "k", Endpoint: srv.URL, MaxTokens: 99})
	resp, err := c.Complete(context.Background(), Request{MaxTokens: 7})
	require.NoError(t, err)
	assert.Equal(t, 7, got.MaxTokens)
	assert.Equal(t, DefaultModel, got.Model)
	assert.True(t, resp.WasTruncated())
}

func TestAnthropicClientErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"api error", http.StatusTooManyRequests, `{"type":"error","error":{"type":"rate_limit_error","message":"slow down"}}`, "API error (429): rate_limit_error - slow down"},
		{"plain error", http.StatusBadGateway, `upstream down`, "API error (502): upstream down"},
		{"bad json", http.StatusOK, `{"content": [`, "failed to parse response"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			c := NewAnthropicClient(Options{APIKey: "k", Endpoint: srv.URL})
			_, err := c.Complete(context.Background(), Request{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestAnthropicClientMissingKey(t *testing.T) {
	c := NewAnthropicClient(Options{Endpoint: "http://127.0.0.1:1"})
	_, err := c.Complete(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestAnthropicClientContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{}`)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := NewAnthropicClient(Options{APIKey: "k", Endpoint: srv.URL})
	_, err := c.Complete(ctx, Request{})
	assert.ErrorIs(t, err, context.Canceled)
}
