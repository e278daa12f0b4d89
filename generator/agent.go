package generator

import (
	"context"
	"errors"
)

// Agent turns notebook source into a design-document Draft.
type Agent struct {
	llm      LLMClient
	template string
}

func NewAgent(llm LLMClient) (*Agent, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	return &Agent{llm: llm, template: DefaultTemplate()}, nil
}

// Generate builds the prompt, performs the single completion call, and
// post-processes the reply. Fails on the first error; no retries.
func (a *Agent) Generate(ctx context.Context, source string) (Draft, error) {
	prompt := BuildPrompt(a.template, source)

	raw, err := a.llm.Complete(ctx, prompt)
	if err != nil {
		return Draft{}, err
	}
	return PostProcess(raw)
}
