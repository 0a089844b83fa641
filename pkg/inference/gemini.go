package inference

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/agentstation/skillmap/pkg/errors"
	"github.com/agentstation/skillmap/pkg/institutions"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.5-flash"

const geminiPrompt = `Classify the following skill-development institution.
Return only a JSON object with the keys:
  "domains": object mapping a snake_case skill domain to a number between 0 and 1,
  "tools": array of objects {"name": string, "category": string},
  "specializations": array of strings.
Use only information present in the record.

Institution:
%s`

// Gemini infers skills with a Gemini model through the Gemini API.
// Unlike Keyword it is not deterministic; it is opt-in.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini inferrer using apiKey.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, &errors.ConfigError{
			Component: "gemini",
			Message:   "GEMINI_API_KEY is required for gemini inference",
		}
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.NewConfigError("gemini", "failed to create GenAI client", err)
	}

	return &Gemini{client: client, model: model}, nil
}

// Name returns the inferrer name.
func (g *Gemini) Name() string {
	return "gemini"
}

// Infer asks the model to classify inst.
func (g *Gemini) Infer(ctx context.Context, inst institutions.Institution) (Skills, error) {
	// Enrichment fields are what we are asking for; don't leak them into the prompt.
	inst.Domains, inst.Tools, inst.Specializations = nil, nil, nil

	record, err := json.MarshalIndent(inst, "", "  ")
	if err != nil {
		return Skills{}, err
	}

	resp, err := g.client.Models.GenerateContent(ctx,
		g.model,
		genai.Text(fmt.Sprintf(geminiPrompt, record)),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
		},
	)
	if err != nil {
		return Skills{}, fmt.Errorf("gemini generate failed: %w", err)
	}

	return parseSkills(resp.Text())
}

// parseSkills decodes a model reply, tolerating a fenced code block.
func parseSkills(text string) (Skills, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	if text == "" {
		return Skills{}, errors.NewParseError("json", "", "empty model response", nil)
	}

	var skills Skills
	if err := json.Unmarshal([]byte(text), &skills); err != nil {
		return Skills{}, errors.WrapParse("json", "", err)
	}
	return skills, nil
}
