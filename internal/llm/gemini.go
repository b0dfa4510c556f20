package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Gemini calls the Gemini API.
type Gemini struct {
	client      *genai.Client
	model       string
	temperature float32
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Gemini{client: client, model: model, temperature: 0.2}, nil
}

func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:     &g.temperature,
		MaxOutputTokens: 1024,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	if resp == nil {
		return "", fmt.Errorf("gemini generate: nil response")
	}
	return resp.Text(), nil
}
