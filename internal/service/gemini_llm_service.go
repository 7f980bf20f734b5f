package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"github.com/tsootsoo/dictees/config"
	"github.com/tsootsoo/dictees/internal/correction"
	"google.golang.org/api/option"
)

type geminiLLMService struct {
	client    *genai.Client
	modelName string
}

func NewGeminiLLMService(cfg *config.Config) (LLMService, error) {
	if cfg.LLM.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. GeminiLLMService will be non-functional.")
		return &geminiLLMService{modelName: cfg.LLM.GeminiModel}, nil
	}
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.LLM.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	return &geminiLLMService{client: client, modelName: cfg.LLM.GeminiModel}, nil
}

func (s *geminiLLMService) Name() string { return ProviderGemini }

// Invoke asks Gemini for a JSON answer matching the request schema. A model
// handle is created per call since its settings are not safe to share.
func (s *geminiLLMService) Invoke(ctx context.Context, req correction.Request) (string, error) {
	if s.client == nil {
		return "", &correction.ModelInvocationError{Provider: ProviderGemini, Err: fmt.Errorf("gemini client not initialized")}
	}

	model := s.client.GenerativeModel(s.modelName)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.System)}}
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = toGenaiSchema(req.Schema)

	resp, err := model.GenerateContent(ctx, genai.Text(req.User))
	if err != nil {
		return "", &correction.ModelInvocationError{Provider: ProviderGemini, Err: err}
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", &correction.ModelInvocationError{Provider: ProviderGemini, Err: correction.ErrEmptyResponse}
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	if b.Len() == 0 {
		return "", &correction.ModelInvocationError{Provider: ProviderGemini, Err: correction.ErrEmptyResponse}
	}
	return b.String(), nil
}

func (s *geminiLLMService) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

// toGenaiSchema converts the JSON schema subset used for corrections.
// Keywords Gemini does not model (bounds, additionalProperties) are dropped.
func toGenaiSchema(m map[string]any) *genai.Schema {
	if m == nil {
		return nil
	}
	s := &genai.Schema{}
	switch m["type"] {
	case "object":
		s.Type = genai.TypeObject
	case "array":
		s.Type = genai.TypeArray
	case "integer":
		s.Type = genai.TypeInteger
	case "number":
		s.Type = genai.TypeNumber
	case "boolean":
		s.Type = genai.TypeBoolean
	default:
		s.Type = genai.TypeString
	}
	if desc, ok := m["description"].(string); ok {
		s.Description = desc
	}
	if props, ok := m["properties"].(map[string]any); ok {
		s.Properties = make(map[string]*genai.Schema, len(props))
		for name, raw := range props {
			if child, ok := raw.(map[string]any); ok {
				s.Properties[name] = toGenaiSchema(child)
			}
		}
	}
	if items, ok := m["items"].(map[string]any); ok {
		s.Items = toGenaiSchema(items)
	}
	if req, ok := m["required"].([]string); ok {
		s.Required = append([]string(nil), req...)
	}
	return s
}
