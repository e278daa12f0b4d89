package generator

import (
	"context"
	"time"
)

// DefaultModel is used when the caller does not pick one.
const DefaultModel = "gpt-5-mini"

// LLMClient abstracts the completion service so it can be mocked.
type LLMClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// LLMSettings configures a concrete client. APIKey is the plaintext bearer
// credential for this client's lifetime only; callers must not reuse it
// elsewhere.
type LLMSettings struct {
	Model   string
	APIKey  string
	BaseURL string
	Timeout time.Duration
}
