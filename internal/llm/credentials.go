package llm

import (
	"os"

	gocache "github.com/patrickmn/go-cache"
)

// KeySource resolves provider credentials with a memoize-once policy and no
// invalidation: credentials are effectively static for a process lifetime.
// It is an explicitly constructed object, injected where needed, not a
// package-level global.
type KeySource struct {
	cache  *gocache.Cache
	lookup func(string) string
}

// NewKeySource creates a key source reading from the environment
func NewKeySource() *KeySource {
	return NewKeySourceFrom(os.Getenv)
}

// NewKeySourceFrom creates a key source with a custom lookup (for tests)
func NewKeySourceFrom(lookup func(string) string) *KeySource {
	return &KeySource{
		cache:  gocache.New(gocache.NoExpiration, 0),
		lookup: lookup,
	}
}

// Key returns the credential stored under the given environment variable,
// memoized on first use
func (s *KeySource) Key(envVar string) string {
	if cached, found := s.cache.Get(envVar); found {
		return cached.(string)
	}
	value := s.lookup(envVar)
	s.cache.Set(envVar, value, gocache.NoExpiration)
	return value
}

// Enabled reports whether the AI-assisted strategy can run for the given
// provider. OpenAI requires a key; Ollama is local and needs none; an empty
// provider means the strategy is disabled.
func (s *KeySource) Enabled(provider string) bool {
	switch provider {
	case "openai":
		return s.Key("OPENAI_API_KEY") != ""
	case "ollama":
		return true
	default:
		return false
	}
}
