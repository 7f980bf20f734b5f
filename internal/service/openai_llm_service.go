package service

import (
	"context"
	"fmt"

	oai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/shared"
	"github.com/rs/zerolog/log"
	"github.com/tsootsoo/dictees/config"
	"github.com/tsootsoo/dictees/internal/correction"
)

type openAILLMService struct {
	client oai.Client
	model  string
}

func NewOpenAILLMService(cfg *config.Config) (LLMService, error) {
	if cfg.LLM.OpenAIModel == "" {
		return nil, fmt.Errorf("openai: model must not be empty")
	}
	if cfg.LLM.OpenAIApiKey == "" {
		log.Warn().Msg("OPENAI_API_KEY is not set. Dictation corrections will fail until it is configured.")
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(cfg.LLM.OpenAIApiKey),
		option.WithMaxRetries(0),
	}
	if cfg.LLM.OpenAIBaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(cfg.LLM.OpenAIBaseURL))
	}

	return &openAILLMService{
		client: oai.NewClient(reqOpts...),
		model:  cfg.LLM.OpenAIModel,
	}, nil
}

func (s *openAILLMService) Name() string { return ProviderOpenAI }

// Invoke sends one chat completion constrained by the strict JSON schema of
// the request and returns the message content.
func (s *openAILLMService) Invoke(ctx context.Context, req correction.Request) (string, error) {
	params := oai.ChatCompletionNewParams{
		Model: shared.ChatModel(s.model),
		Messages: []oai.ChatCompletionMessageParamUnion{
			oai.SystemMessage(req.System),
			oai.UserMessage(req.User),
		},
		ResponseFormat: oai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &shared.ResponseFormatJSONSchemaParam{
				JSONSchema: shared.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:   req.SchemaName,
					Schema: req.Schema,
					Strict: param.NewOpt(true),
				},
			},
		},
	}

	resp, err := s.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", &correction.ModelInvocationError{Provider: ProviderOpenAI, Err: err}
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", &correction.ModelInvocationError{Provider: ProviderOpenAI, Err: correction.ErrEmptyResponse}
	}
	log.Debug().
		Str("model", s.model).
		Int64("promptTokens", resp.Usage.PromptTokens).
		Int64("completionTokens", resp.Usage.CompletionTokens).
		Msg("OpenAI correction completed")
	return resp.Choices[0].Message.Content, nil
}
