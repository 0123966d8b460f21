// Package question phrases the next missing-field question. The scripted
// writer returns the fixed copy verbatim; the OpenAI writer rephrases it in a
// warmer register and is always backed by the scripted fallback in the
// decision engine.
package question

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/rs/zerolog/log"

	contractx "github.com/kanchang12/wastekingjennifer-sub000/agent/contract"
)

// Scripted returns the fixed question text unchanged.
type Scripted struct{}

var _ contractx.QuestionWriter = Scripted{}

func (Scripted) NextQuestion(_ context.Context, req contractx.QuestionRequest) (string, error) {
	if strings.TrimSpace(req.Scripted) == "" {
		return "", fmt.Errorf("%w: scripted question is empty", contractx.ErrValidation)
	}
	return req.Scripted, nil
}

// Config configures the OpenAI question writer.
type Config struct {
	APIKey string `split_words:"true" required:"true"`
	Model  string `split_words:"true" default:"gpt-4o-mini"`
}

// OpenAIWriter rephrases scripted questions with a chat model. Any model
// error or malformed output is returned to the caller, who falls back to the
// scripted copy.
type OpenAIWriter struct {
	client *openai.Client
	model  string
}

var _ contractx.QuestionWriter = (*OpenAIWriter)(nil)

func NewOpenAIWriter(cfg Config) (*OpenAIWriter, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("%w: openai api key is required", contractx.ErrValidation)
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIWriter{
		client: &client,
		model:  strings.TrimSpace(cfg.Model),
	}, nil
}

func MustNewOpenAIWriter(cfg Config) *OpenAIWriter {
	w, err := NewOpenAIWriter(cfg)
	if err != nil {
		panic(err)
	}
	return w
}

const systemPrompt = `You are a friendly phone agent for a UK waste-collection company.
Rephrase the given question naturally. Ask for exactly the same piece of information.
Reply with one short question only, nothing else.`

func (w *OpenAIWriter) NextQuestion(ctx context.Context, req contractx.QuestionRequest) (string, error) {
	var user strings.Builder
	fmt.Fprintf(&user, "Field needed: %s\nScripted question: %s\n", req.Field, req.Scripted)
	if len(req.Known) > 0 {
		user.WriteString("Already known:\n")
		for k, v := range req.Known {
			fmt.Fprintf(&user, "- %s: %s\n", k, v)
		}
	}

	resp, err := w.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(w.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(user.String()),
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: question completion: %v", contractx.ErrGateway, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no completion choices", contractx.ErrGateway)
	}

	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" || !strings.Contains(out, "?") || strings.Count(out, "?") > 1 {
		log.Debug().Str("field", req.Field).Str("output", out).Msg("question writer output rejected")
		return "", fmt.Errorf("%w: model output is not a single question", contractx.ErrValidation)
	}
	return out, nil
}
