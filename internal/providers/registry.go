package providers

import (
	"fmt"
	"log/slog"
	"sync"
)

// Registry holds the configured LLM clients with their rate limiters.
// It supports config-driven instantiation and thread-safe access.
type Registry struct {
	mu       sync.RWMutex
	clients  map[string]LLMClient
	limiters map[string]*RateLimiter
	logger   *slog.Logger
}

// NewRegistry creates a new empty provider registry.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		clients:  make(map[string]LLMClient),
		limiters: make(map[string]*RateLimiter),
		logger:   logger.With("component", "providers"),
	}
}

// Register registers an LLM client by name.
func (r *Registry) Register(name string, client LLMClient) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[name] = client
	r.limiters[name] = NewRateLimiter(client.RequestsPerMinute())
	r.logger.Info("registered LLM client", "name", name, "rpm", client.RequestsPerMinute())
}

// Unregister removes an LLM client by name.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, name)
	delete(r.limiters, name)
	r.logger.Info("unregistered LLM client", "name", name)
}

// Get returns an LLM client and its rate limiter by name.
func (r *Registry) Get(name string) (LLMClient, *RateLimiter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	client, ok := r.clients[name]
	if !ok {
		return nil, nil, fmt.Errorf("LLM client not found: %s", name)
	}
	return client, r.limiters[name], nil
}

// Has checks if an LLM client is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.clients[name]
	return ok
}

// List returns all registered LLM client names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.clients))
	for name := range r.clients {
		names = append(names, name)
	}
	return names
}
