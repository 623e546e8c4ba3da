// Package ai wraps the external language-model collaborator behind a
// single Reply call. The upstream may fail or time out; callers always get
// an answer because every failure degrades to a deterministic keyword
// fallback.
package ai

import (
	"context"
	"log"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const systemPrompt = "You are ReGen, an AI waste and sustainability assistant. " +
	"You give practical, friendly guidance on recycling, biogas, composting and sustainability."

// Assistant answers recycling questions, preferring the OpenAI API and
// falling back to canned keyword responses when the upstream is
// unavailable or no API key is configured.
type Assistant struct {
	client *openai.Client
}

// New builds an Assistant. An empty API key disables the upstream entirely
// so Reply serves fallback answers only.
func New(apiKey string) *Assistant {
	a := &Assistant{}
	if apiKey != "" {
		a.client = openai.NewClient(apiKey)
	}
	return a
}

// Reply returns guidance for the given message. Upstream errors are logged
// and swallowed; the keyword fallback is the answer of last resort.
func (a *Assistant) Reply(ctx context.Context, message string) string {
	if a.client != nil {
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: "gpt-4o-mini",
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: message},
			},
			MaxTokens: 200,
		})
		if err == nil && len(resp.Choices) > 0 {
			if text := strings.TrimSpace(resp.Choices[0].Message.Content); text != "" {
				return text
			}
		}
		if err != nil {
			log.Printf("ai: upstream failed, using fallback: %v", err)
		}
	}
	return Fallback(message)
}

// Fallback matches keywords in the message and returns a canned answer.
// Deterministic by construction: the first matching category wins.
func Fallback(message string) string {
	m := strings.ToLower(message)
	switch {
	case strings.Contains(m, "plastic"):
		return "Rinse plastic containers and check the resin code before recycling. " +
			"Codes 1 (PET) and 2 (HDPE) are accepted almost everywhere; drop them at your nearest recycling center."
	case strings.Contains(m, "organic"), strings.Contains(m, "biogas"), strings.Contains(m, "compost"):
		return "Organic waste is great for composting or biogas digestion. " +
			"Keep food scraps separate from other waste, and log the weight so your CO2 savings count toward your points."
	case strings.Contains(m, "paper"), strings.Contains(m, "cardboard"):
		return "Flatten cardboard boxes and keep paper dry and free of food residue. " +
			"Greasy or wet paper belongs in organic waste instead."
	default:
		return "I can help you with recycling questions! Try asking about plastic, " +
			"organic waste and composting, or paper and cardboard. You can also log waste " +
			"entries to track your CO2 savings and earn points."
	}
}
