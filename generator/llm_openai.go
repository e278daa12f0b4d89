package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

var (
	// ErrNetwork wraps transport failures and timeouts. The only error class
	// a caller might reasonably retry.
	ErrNetwork = errors.New("completion request failed")
	// ErrMalformedResponse means the service answered but not with a usable
	// completion: no choices, or an empty message.
	ErrMalformedResponse = errors.New("malformed completion response")
)

// StatusError is a non-success HTTP status from the completion service.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("completion service returned HTTP %d", e.Code)
}

// OpenAILLM implements LLMClient using the official openai-go SDK (chat
// completions). Exactly one attempt per Complete call: the SDK's built-in
// retries are disabled so failure classification stays the caller's call.
type OpenAILLM struct {
	model string
	opts  []option.RequestOption
}

func NewOpenAILLM(cfg LLMSettings) (*OpenAILLM, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai api key missing")
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(timeout),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &OpenAILLM{model: model, opts: opts}, nil
}

func (o *OpenAILLM) Complete(ctx context.Context, prompt string) (string, error) {
	client := openai.NewClient(o.opts...)

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", &StatusError{Code: apiErr.StatusCode}
		}
		return "", fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices", ErrMalformedResponse)
	}
	text := resp.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty message content", ErrMalformedResponse)
	}
	return text, nil
}
