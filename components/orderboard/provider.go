package orderboard

import "context"

// DatasetProvider computes the derived dataset a widget renders from the
// date-filtered order collection and the widget configuration.
type DatasetProvider interface {
	Fetch(ctx context.Context, req DatasetRequest) (WidgetData, error)
}

// ProviderFunc adapts a function to the DatasetProvider interface.
type ProviderFunc func(ctx context.Context, req DatasetRequest) (WidgetData, error)

// Fetch implements DatasetProvider.
func (f ProviderFunc) Fetch(ctx context.Context, req DatasetRequest) (WidgetData, error) {
	return f(ctx, req)
}

// DatasetRequest carries the inputs a provider needs. Orders are already
// date-filtered; providers must treat them as read-only.
type DatasetRequest struct {
	Config WidgetConfig
	Orders []CustomerOrder
	// Page selects the table widget page; other kinds ignore it.
	Page int
}

// WidgetData is the opaque derived payload handed to the render layer.
type WidgetData map[string]any
