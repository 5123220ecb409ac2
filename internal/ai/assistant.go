// Package ai asks a generative model to transcribe handwriting and summarize
// notes.
package ai

import (
	"context"
	"log/slog"
	"strings"
)

// Fixed texts returned in place of a model answer when a call fails.
const (
	TranscriptionFallback = "[Transcription unavailable]"
	SummaryFallback       = "[Summary unavailable]"
)

// NoHandwriting is the model's answer for an image without legible writing.
const NoHandwriting = "[No handwriting]"

const (
	transcribePrompt = "Transcribe the handwriting in this image into plain text. " +
		"Reply with the text only. If there is no legible writing, reply with exactly " + NoHandwriting + "."
	summarizePrompt = "Summarize the following note in a few sentences. Reply with the summary only."
)

// Assistant turns model calls into best-effort text. It never returns an
// error: every failure is logged and replaced by a fallback string.
type Assistant struct {
	client Client
}

func NewAssistant(c Client) *Assistant {
	return &Assistant{client: c}
}

// Transcribe reads the handwriting in a PNG image.
func (a *Assistant) Transcribe(ctx context.Context, png []byte) string {
	if len(png) == 0 {
		logger().Warn("nothing to transcribe", slog.String("component", "ai"))
		return TranscriptionFallback
	}
	return a.ask(ctx, "transcribe", TranscriptionFallback, Message{
		Role:    "user",
		Content: []Block{ImageBlock("image/png", png), TextBlock(transcribePrompt)},
	})
}

// Summarize condenses note text.
func (a *Assistant) Summarize(ctx context.Context, text string) string {
	if strings.TrimSpace(text) == "" {
		logger().Warn("nothing to summarize", slog.String("component", "ai"))
		return SummaryFallback
	}
	return a.ask(ctx, "summarize", SummaryFallback, Message{
		Role:    "user",
		Content: []Block{TextBlock(summarizePrompt + "\n\n" + text)},
	})
}

func (a *Assistant) ask(ctx context.Context, task, fallback string, msg Message) string {
	if a.client == nil {
		logger().Warn("no model client", slog.String("component", "ai"), slog.String("task", task))
		return fallback
	}
	resp, err := a.client.Complete(ctx, Request{Messages: []Message{msg}})
	if err != nil {
		logger().Warn("model call failed", slog.String("component", "ai"),
			slog.String("task", task), slog.Any("error", err))
		return fallback
	}
	out := strings.TrimSpace(resp.Content)
	if out == "" {
		logger().Warn("model returned no text", slog.String("component", "ai"), slog.String("task", task))
		return fallback
	}
	if resp.WasTruncated() {
		logger().Info("model answer truncated", slog.String("component", "ai"), slog.String("task", task))
	}
	return out
}
