package registry

import (
	"sync"

	"github.com/researchbot/researchbot/internal/core"
)

// Factory types for pluggable components.
type ClientFactory func(apiKey, model string, temperature float64) (core.LLMClient, error)
type SearchFactory func(maxResults int) (core.SearchProvider, error)

var (
	mu              sync.RWMutex
	llmClients      = make(map[string]ClientFactory)
	searchProviders = make(map[string]SearchFactory)
)

func RegisterClient(name string, f ClientFactory) {
	mu.Lock()
	defer mu.Unlock()
	llmClients[name] = f
}

func RegisterSearch(name string, f SearchFactory) {
	mu.Lock()
	defer mu.Unlock()
	searchProviders[name] = f
}

func GetClientFactory(name string) (ClientFactory, bool) {
	mu.RLock()
	defer mu.RUnlock()
	f, ok := llmClients[name]
	return f, ok
}

func GetSearchFactory(name string) (SearchFactory, bool) {
	mu.RLock()
	defer mu.RUnlock()
	f, ok := searchProviders[name]
	return f, ok
}
