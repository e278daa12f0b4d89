package generator

import (
	"context"
	"fmt"
	"time"
)

// MockLLM returns a template-shaped document without calling any model.
// Used by -offline and as the test seam.
type MockLLM struct {
	Notebook string
}

func (m MockLLM) Complete(_ context.Context, prompt string) (string, error) {
	name := m.Notebook
	if name == "" {
		name = "notebook"
	}
	return fmt.Sprintf(`---
author: Team Data & BI
notebook: %s
created: %s
---

# Beschrijving

Placeholder-document, gegenereerd zonder model. De prompt was %d tekens lang.

## Functioneel ontwerp

| Stap | Omschrijving | Bron | Doel |
| ---- | ------------ | ---- | ---- |
| 1 | Nog niet gedocumenteerd | - | - |

## Technisch ontwerp

| Onderdeel | Type | Omschrijving |
| --------- | ---- | ------------ |
| main | functie | Nog niet gedocumenteerd |
`, name, time.Now().Format("2006-01-02"), len(prompt)), nil
}
