package llm

import (
	"context"
	"errors"
	"fmt"
)

// Ladder walks an ordered list of model identifiers, retrying the next one
// on transient failure. Credential errors abort the whole ladder
// immediately: a different model cannot fix a bad key.
type Ladder struct {
	provider Provider
	models   []string
}

// NewLadder creates a model fallback ladder over the given provider
func NewLadder(provider Provider, models []string) *Ladder {
	return &Ladder{
		provider: provider,
		models:   models,
	}
}

// Extract attempts each model in order and returns the first valid result
func (l *Ladder) Extract(ctx context.Context, text string) (*WarrantFields, error) {
	if l.provider == nil {
		return nil, fmt.Errorf("no provider configured")
	}

	models := l.models
	if len(models) == 0 {
		models = []string{""} // Provider default
	}

	var lastErr error
	for _, model := range models {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		fields, err := l.provider.ExtractWarrant(ctx, ExtractRequest{
			Text:  text,
			Model: model,
		})
		if err != nil {
			if errors.Is(err, ErrUnauthorized) {
				return nil, err
			}
			lastErr = err
			continue
		}

		if !fields.Valid() {
			lastErr = ErrIncompleteResponse
			continue
		}
		return fields, nil
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("no models configured")
	}
	return nil, lastErr
}
