package llm

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const (
	ProviderGroq   = "groq"
	ProviderGemini = "gemini"
)

// Spec names one backend as provider and model.
type Spec struct {
	Provider string
	Model    string
}

func (s Spec) String() string {
	return s.Provider + ":" + s.Model
}

// ParseSpecs reads a comma-separated "provider:model" list.
func ParseSpecs(raw string) ([]Spec, error) {
	var out []Spec
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		provider, model, ok := strings.Cut(part, ":")
		provider = strings.ToLower(strings.TrimSpace(provider))
		model = strings.TrimSpace(model)
		if !ok || model == "" {
			return nil, fmt.Errorf("backend %q must be provider:model", part)
		}
		if provider != ProviderGroq && provider != ProviderGemini {
			return nil, fmt.Errorf("backend %q: unknown provider %q", part, provider)
		}
		out = append(out, Spec{Provider: provider, Model: model})
	}
	return out, nil
}

// Credentials holds the provider keys and endpoints.
type Credentials struct {
	GroqAPIKey   string
	GroqBaseURL  string
	GeminiAPIKey string
}

// NewBackends builds the generators for specs. Backends whose provider has no
// key are skipped with a warning.
func NewBackends(ctx context.Context, specs []Spec, creds Credentials, log *zap.Logger) ([]Backend, error) {
	if log == nil {
		log = zap.NewNop()
	}

	out := make([]Backend, 0, len(specs))
	for _, spec := range specs {
		switch spec.Provider {
		case ProviderGroq:
			if creds.GroqAPIKey == "" {
				log.Warn("skipping backend without api key", zap.String("backend", spec.String()))
				continue
			}
			out = append(out, Backend{Name: spec.String(), Generator: NewOpenAI(creds.GroqAPIKey, creds.GroqBaseURL, spec.Model)})
		case ProviderGemini:
			if creds.GeminiAPIKey == "" {
				log.Warn("skipping backend without api key", zap.String("backend", spec.String()))
				continue
			}
			g, err := NewGemini(ctx, creds.GeminiAPIKey, spec.Model)
			if err != nil {
				return nil, fmt.Errorf("backend %s: %w", spec, err)
			}
			out = append(out, Backend{Name: spec.String(), Generator: g})
		}
	}
	return out, nil
}
