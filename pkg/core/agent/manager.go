// Package agent routes advisory roles to configured text-generation
// providers. Roles ("advisor", "recommender") can pin a provider in
// config/models.yaml; everything else follows the global active provider,
// which is switchable at runtime through the config API.
package agent

import (
	"context"
	"fmt"
	"sync"

	"saas_simulator/pkg/core/llm"
)

// Config mirrors config/models.yaml.
type Config struct {
	ActiveProvider string                `yaml:"active_provider"`
	Roles          map[string]RoleConfig `yaml:"roles"`
}

// RoleConfig optionally overrides the provider or model for one role.
type RoleConfig struct {
	Provider    string `yaml:"provider"`
	Model       string `yaml:"model"`
	Description string `yaml:"description"`
}

// Manager holds the provider registry and the active selection.
type Manager struct {
	mu     sync.RWMutex
	config Config

	providers map[string]llm.Provider
}

// NewManager builds a manager with the full provider registry. An empty or
// unknown active provider falls back to gemini.
func NewManager(config Config) *Manager {
	if config.ActiveProvider == "" {
		config.ActiveProvider = "gemini"
	}
	return &Manager{
		config: config,
		providers: map[string]llm.Provider{
			"gemini":   &llm.GeminiProvider{},
			"deepseek": &llm.DeepSeekProvider{},
		},
	}
}

// ProviderFor resolves the provider for a role: role override first, then
// the global active provider, then gemini.
func (m *Manager) ProviderFor(role string) llm.Provider {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if rc, ok := m.config.Roles[role]; ok && rc.Provider != "" {
		if p, ok := m.providers[rc.Provider]; ok {
			return p
		}
	}
	if p, ok := m.providers[m.config.ActiveProvider]; ok {
		return p
	}
	return m.providers["gemini"]
}

// Generate resolves the role's provider and model override and runs one
// generation call.
func (m *Manager) Generate(ctx context.Context, role, prompt, systemPrompt string, opts llm.Options) (string, error) {
	provider := m.ProviderFor(role)

	m.mu.RLock()
	if rc, ok := m.config.Roles[role]; ok && rc.Model != "" && opts.Model == "" {
		opts.Model = rc.Model
	}
	m.mu.RUnlock()

	return provider.Generate(ctx, prompt, systemPrompt, opts)
}

// ActiveProvider returns the current global provider name.
func (m *Manager) ActiveProvider() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config.ActiveProvider
}

// Available lists the registered provider names.
func (m *Manager) Available() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.providers))
	for name := range m.providers {
		names = append(names, name)
	}
	return names
}

// SetActiveProvider switches the global provider at runtime.
func (m *Manager) SetActiveProvider(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.providers[name]; !ok {
		return fmt.Errorf("unknown provider: %s", name)
	}
	m.config.ActiveProvider = name
	return nil
}

// Register adds or replaces a provider. Tests use this to inject fakes.
func (m *Manager) Register(p llm.Provider) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.providers[p.Name()] = p
}
