package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

// fakeProvider scripts one result per attempted model
type fakeProvider struct {
	results map[string]fakeResult
	calls   []string
}

type fakeResult struct {
	fields *WarrantFields
	err    error
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) IsAvailable(ctx context.Context) bool { return true }

func (p *fakeProvider) ExtractWarrant(ctx context.Context, req ExtractRequest) (*WarrantFields, error) {
	p.calls = append(p.calls, req.Model)
	r, ok := p.results[req.Model]
	if !ok {
		return nil, fmt.Errorf("unscripted model %q", req.Model)
	}
	return r.fields, r.err
}

func TestLadder_FirstModelSucceeds(t *testing.T) {
	provider := &fakeProvider{results: map[string]fakeResult{
		"small": {fields: &WarrantFields{Name: "JOÃO CARLOS DA SILVA"}},
	}}
	ladder := NewLadder(provider, []string{"small", "large"})

	fields, err := ladder.Extract(context.Background(), "texto")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if fields.Name != "JOÃO CARLOS DA SILVA" {
		t.Errorf("fields.Name = %q", fields.Name)
	}
	if len(provider.calls) != 1 {
		t.Errorf("provider called %d times, want 1", len(provider.calls))
	}
}

func TestLadder_TransientErrorFallsToNextModel(t *testing.T) {
	provider := &fakeProvider{results: map[string]fakeResult{
		"small": {err: fmt.Errorf("rate limited")},
		"large": {fields: &WarrantFields{Name: "MARIA APARECIDA SOUZA"}},
	}}
	ladder := NewLadder(provider, []string{"small", "large"})

	fields, err := ladder.Extract(context.Background(), "texto")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if fields.Name != "MARIA APARECIDA SOUZA" {
		t.Errorf("fields.Name = %q", fields.Name)
	}
	if len(provider.calls) != 2 {
		t.Errorf("provider called %d times, want 2", len(provider.calls))
	}
}

func TestLadder_UnauthorizedAbortsImmediately(t *testing.T) {
	provider := &fakeProvider{results: map[string]fakeResult{
		"small": {err: fmt.Errorf("attempt: %w", ErrUnauthorized)},
		"large": {fields: &WarrantFields{Name: "NUNCA ALCANÇADO"}},
	}}
	ladder := NewLadder(provider, []string{"small", "large"})

	_, err := ladder.Extract(context.Background(), "texto")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("Extract() error = %v, want ErrUnauthorized", err)
	}
	if len(provider.calls) != 1 {
		t.Errorf("provider called %d times, want 1 (no retry on bad credentials)", len(provider.calls))
	}
}

func TestLadder_IncompleteResponseTriesNextModel(t *testing.T) {
	provider := &fakeProvider{results: map[string]fakeResult{
		"small": {fields: &WarrantFields{Name: "   "}},
		"large": {fields: &WarrantFields{Name: "PEDRO HENRIQUE ALMEIDA"}},
	}}
	ladder := NewLadder(provider, []string{"small", "large"})

	fields, err := ladder.Extract(context.Background(), "texto")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if fields.Name != "PEDRO HENRIQUE ALMEIDA" {
		t.Errorf("fields.Name = %q", fields.Name)
	}
}

func TestLadder_AllModelsExhausted(t *testing.T) {
	provider := &fakeProvider{results: map[string]fakeResult{
		"small": {fields: &WarrantFields{}},
	}}
	ladder := NewLadder(provider, []string{"small"})

	_, err := ladder.Extract(context.Background(), "texto")
	if !errors.Is(err, ErrIncompleteResponse) {
		t.Fatalf("Extract() error = %v, want ErrIncompleteResponse", err)
	}
}

func TestLadder_NoProvider(t *testing.T) {
	ladder := NewLadder(nil, []string{"small"})
	if _, err := ladder.Extract(context.Background(), "texto"); err == nil {
		t.Fatal("Extract() error = nil, want error")
	}
}

func TestLadder_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	provider := &fakeProvider{results: map[string]fakeResult{}}
	ladder := NewLadder(provider, []string{"small"})

	_, err := ladder.Extract(ctx, "texto")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Extract() error = %v, want context.Canceled", err)
	}
	if len(provider.calls) != 0 {
		t.Errorf("provider called %d times after cancellation", len(provider.calls))
	}
}
