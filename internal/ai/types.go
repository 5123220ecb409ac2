package ai

import (
	"context"
	"time"
)

// Client is a generative model endpoint.
type Client interface {
	Complete(ctx context.Context, req Request) (*Response, error)
}

// Block is one piece of message content: text or an image.
type Block struct {
	Type      string // "text" or "image"
	Text      string
	MediaType string
	Data      []byte
}

func TextBlock(text string) Block {
	return Block{Type: "text", Text: text}
}

// ImageBlock carries raw image bytes; the client handles the encoding.
func ImageBlock(mediaType string, data []byte) Block {
	return Block{Type: "image", MediaType: mediaType, Data: data}
}

// Message is one conversation turn.
type Message struct {
	Role    string // "user" or "assistant"
	Content []Block
}

// Request configures a completion. A zero MaxTokens uses the client default.
type Request struct {
	System    string
	Messages  []Message
	MaxTokens int
}

// Response from a completion
type Response struct {
	Content      string
	InputTokens  int
	OutputTokens int
	Duration     time.Duration
	Model        string
	StopReason   string // "end_turn", "max_tokens", "stop_sequence"
}

// WasTruncated returns true if the response hit the token limit
func (r *Response) WasTruncated() bool {
	return r.StopReason == "max_tokens"
}
