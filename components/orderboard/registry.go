package orderboard

import (
	"fmt"
	"sync"
)

// WidgetHook lets packages register widget kinds/providers during init().
type WidgetHook func(reg *Registry) error

var (
	globalHookMu sync.Mutex
	globalHooks  []WidgetHook
)

// RegisterWidgetHook registers a hook executed against new registries.
func RegisterWidgetHook(h WidgetHook) {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	globalHooks = append(globalHooks, h)
}

// WidgetDefinition describes one widget kind: display metadata plus the JSON
// schema its partial-update payloads must satisfy.
type WidgetDefinition struct {
	Type        WidgetType     `json:"type" yaml:"type"`
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Schema      map[string]any `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// ProviderRegistry stores widget definitions and dataset providers
// discoverable via hooks or manifests.
type ProviderRegistry interface {
	RegisterDefinition(def WidgetDefinition) error
	RegisterProvider(t WidgetType, provider DatasetProvider) error
	Definition(t WidgetType) (WidgetDefinition, bool)
	Provider(t WidgetType) (DatasetProvider, bool)
	Definitions() []WidgetDefinition
}

// Registry implements ProviderRegistry with hook + manifest support.
type Registry struct {
	mu          sync.RWMutex
	definitions map[WidgetType]WidgetDefinition
	providers   map[WidgetType]DatasetProvider
}

// NewRegistry builds a registry seeded with the built-in widget kinds and
// applies global hooks.
func NewRegistry() *Registry {
	reg := &Registry{
		definitions: map[WidgetType]WidgetDefinition{},
		providers:   map[WidgetType]DatasetProvider{},
	}
	reg.registerDefaults()
	_ = reg.ApplyHooks()
	return reg
}

func (r *Registry) registerDefaults() {
	for _, def := range DefaultWidgetDefinitions() {
		_ = r.RegisterDefinition(def)
		if provider, ok := defaultProviders[def.Type]; ok {
			_ = r.RegisterProvider(def.Type, provider)
		}
	}
}

// ApplyHooks executes registered widget hooks.
func (r *Registry) ApplyHooks() error {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	for _, hook := range globalHooks {
		if err := hook(r); err != nil {
			return err
		}
	}
	return nil
}

// RegisterDefinition stores widget kind metadata.
func (r *Registry) RegisterDefinition(def WidgetDefinition) error {
	if def.Type == "" {
		return fmt.Errorf("widget definition type is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.definitions[def.Type] = def
	return nil
}

// RegisterProvider associates a dataset provider with a widget kind.
func (r *Registry) RegisterProvider(t WidgetType, provider DatasetProvider) error {
	if t == "" {
		return fmt.Errorf("widget type is required to register provider")
	}
	if provider == nil {
		return fmt.Errorf("provider cannot be nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.definitions[t]; !ok {
		return fmt.Errorf("widget definition %s not found", t)
	}
	r.providers[t] = provider
	return nil
}

// Definition fetches a widget definition by kind.
func (r *Registry) Definition(t WidgetType) (WidgetDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.definitions[t]
	return def, ok
}

// Provider fetches a dataset provider by kind.
func (r *Registry) Provider(t WidgetType) (DatasetProvider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	provider, ok := r.providers[t]
	return provider, ok
}

// Definitions returns all registered definitions.
func (r *Registry) Definitions() []WidgetDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]WidgetDefinition, 0, len(r.definitions))
	for _, def := range r.definitions {
		defs = append(defs, def)
	}
	return defs
}
