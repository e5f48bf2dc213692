package orderboard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ConfigValidator checks widget update payloads and order drafts before any
// repository mutation is attempted.
type ConfigValidator interface {
	ValidateWidgetPatch(t WidgetType, patch WidgetPatch) error
	ValidateOrderDraft(draft OrderDraft) error
}

// JSONSchemaValidator compiles the per-kind widget schemas and the order
// draft schema lazily and caches the compiled form.
type JSONSchemaValidator struct {
	mu       sync.RWMutex
	compiled map[string]*jsonschema.Schema
}

// NewJSONSchemaValidator builds a validator backed by jsonschema v5.
func NewJSONSchemaValidator() *JSONSchemaValidator {
	return &JSONSchemaValidator{
		compiled: make(map[string]*jsonschema.Schema),
	}
}

// ValidateWidgetPatch ensures the payload only carries fields legal for the
// widget kind, within their declared bounds.
func (v *JSONSchemaValidator) ValidateWidgetPatch(t WidgetType, patch WidgetPatch) error {
	schema, err := v.schemaFor("widget."+string(t), func() map[string]any {
		return widgetPatchSchema(t)
	})
	if err != nil {
		return err
	}
	payload, err := normalizePayload(map[string]any(patch))
	if err != nil {
		return fmt.Errorf("orderboard: normalize patch for %s: %w", t, err)
	}
	if err := schema.Validate(payload); err != nil {
		return fmt.Errorf("orderboard: widget patch for %s failed validation: %w", t, err)
	}
	return nil
}

// ValidateOrderDraft enforces the order form rules: required fields present,
// quantity at least 1, unit price above 0.
func (v *JSONSchemaValidator) ValidateOrderDraft(draft OrderDraft) error {
	schema, err := v.schemaFor("order.draft", orderDraftSchema)
	if err != nil {
		return err
	}
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("orderboard: marshal order draft: %w", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("orderboard: normalize order draft: %w", err)
	}
	if err := schema.Validate(payload); err != nil {
		return fmt.Errorf("orderboard: order draft failed validation: %w", err)
	}
	return nil
}

func (v *JSONSchemaValidator) schemaFor(name string, build func() map[string]any) (*jsonschema.Schema, error) {
	v.mu.RLock()
	schema, ok := v.compiled[name]
	v.mu.RUnlock()
	if ok {
		return schema, nil
	}
	data, err := json.Marshal(build())
	if err != nil {
		return nil, fmt.Errorf("orderboard: marshal schema %s: %w", name, err)
	}
	compiler := jsonschema.NewCompiler()
	resource := name + ".json"
	if err := compiler.AddResource(resource, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("orderboard: load schema %s: %w", name, err)
	}
	compiled, err := compiler.Compile(resource)
	if err != nil {
		return nil, fmt.Errorf("orderboard: compile schema %s: %w", name, err)
	}
	v.mu.Lock()
	v.compiled[name] = compiled
	v.mu.Unlock()
	return compiled, nil
}

// normalizePayload round-trips through JSON so typed values (ints, enums)
// take the shapes the schema engine expects.
func normalizePayload(payload map[string]any) (map[string]any, error) {
	if payload == nil {
		return map[string]any{}, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type noopConfigValidator struct{}

func (noopConfigValidator) ValidateWidgetPatch(WidgetType, WidgetPatch) error { return nil }
func (noopConfigValidator) ValidateOrderDraft(OrderDraft) error               { return nil }
