// Package prompt is a small registry of prompt templates defined in JSON
// files under resources/prompts, so advisory wording can change without a
// rebuild. User prompts are Go text templates rendered against a variable
// map.
package prompt

import (
	"bytes"
	"fmt"
	"sync"
	"text/template"
)

// Template is one reusable prompt. UserTemplate is a text/template body;
// SystemPrompt is sent verbatim.
type Template struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	SystemPrompt string `json:"system_prompt"`
	UserTemplate string `json:"user_prompt_template"`
	Version      string `json:"version"`
}

// Registry holds templates by ID.
type Registry struct {
	mu        sync.RWMutex
	templates map[string]*Template
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// Get returns the process-wide registry.
func Get() *Registry {
	once.Do(func() {
		defaultRegistry = &Registry{templates: make(map[string]*Template)}
	})
	return defaultRegistry
}

// Register adds or replaces a template.
func (r *Registry) Register(t *Template) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.templates[t.ID] = t
}

// Lookup returns the template with the given ID, or nil.
func (r *Registry) Lookup(id string) *Template {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.templates[id]
}

// Count reports how many templates are registered.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.templates)
}

// Render produces the system prompt and the rendered user prompt for the
// template, substituting vars into the user template.
func (r *Registry) Render(id string, vars map[string]interface{}) (system, user string, err error) {
	t := r.Lookup(id)
	if t == nil {
		return "", "", fmt.Errorf("prompt %q not registered", id)
	}

	tmpl, err := template.New(t.ID).Parse(t.UserTemplate)
	if err != nil {
		return "", "", fmt.Errorf("prompt %q has a bad template: %w", id, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, vars); err != nil {
		return "", "", fmt.Errorf("prompt %q failed to render: %w", id, err)
	}

	return t.SystemPrompt, buf.String(), nil
}
