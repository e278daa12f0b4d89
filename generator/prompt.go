package generator

import (
	_ "embed"
)

//go:embed templates/prompt.md
var defaultTemplate string

// DefaultTemplate returns the built-in instruction template, including the
// output skeleton the model must fill in.
func DefaultTemplate() string {
	return defaultTemplate
}

// BuildPrompt joins the instruction template and the notebook source into the
// single user message sent to the model. Pure concatenation: no escaping, no
// size check (the completion endpoint enforces its own limit), and empty
// source is passed through as-is.
func BuildPrompt(template, source string) string {
	return template + "\n\nHier is de Notebook.py:\n\n" + source
}
