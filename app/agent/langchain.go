package agent

import (
	"context"
	"errors"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"

	"docqa/types"
)

const systemPrompt = `You are a precise document analyst. You answer strictly from the supplied context, quote exact source text, and never invent information.`

// Completion defaults: bounded output, low temperature to keep answers
// stable across identical inputs.
const (
	defaultMaxTokens   = 1000
	defaultTemperature = 0.1
)

// LangChainCompleter calls an OpenAI-compatible chat endpoint via
// langchaingo. Gemini, OpenRouter and local servers all speak this protocol.
type LangChainCompleter struct {
	llm         *openai.LLM
	maxTokens   int
	temperature float64
}

func NewLangChainCompleter(cfg types.Config) (*LangChainCompleter, error) {
	if cfg.LLMAPIKey == "" {
		return nil, errors.New("LLM_API_KEY is not configured")
	}
	opts := []openai.Option{
		openai.WithToken(cfg.LLMAPIKey),
		openai.WithModel(cfg.LLMModel),
	}
	if cfg.LLMURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.LLMURL))
	}
	llm, err := openai.New(opts...)
	if err != nil {
		return nil, err
	}
	return &LangChainCompleter{
		llm:         llm,
		maxTokens:   defaultMaxTokens,
		temperature: defaultTemperature,
	}, nil
}

func (c *LangChainCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(schema.ChatMessageTypeHuman, prompt),
	}
	resp, err := c.llm.GenerateContent(ctx, messages,
		llms.WithMaxTokens(c.maxTokens),
		llms.WithTemperature(c.temperature),
	)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("completion returned no choices")
	}
	return resp.Choices[0].Content, nil
}
