package orderboard

import (
	"github.com/ettle/strcase"
)

const defaultChartColor = "#54bd95"

// widgetDefault carries the grid footprint and settings seed for one kind.
type widgetDefault struct {
	Width    int
	Height   int
	Settings WidgetSettings
}

var widgetDefaults = map[WidgetType]widgetDefault{
	WidgetKPI: {
		Width:  3,
		Height: 2,
		Settings: KPISettings{
			Aggregation:      AggregateSum,
			DataFormat:       FormatNumber,
			DecimalPrecision: 0,
		},
	},
	WidgetBarChart: {
		Width:    5,
		Height:   5,
		Settings: ChartSettings{ChartColor: defaultChartColor, ShowDataLabels: true},
	},
	WidgetLineChart: {
		Width:    5,
		Height:   5,
		Settings: ChartSettings{ChartColor: defaultChartColor, ShowDataLabels: true},
	},
	WidgetAreaChart: {
		Width:    5,
		Height:   5,
		Settings: ChartSettings{ChartColor: defaultChartColor, ShowDataLabels: true},
	},
	WidgetScatterPlot: {
		Width:    5,
		Height:   5,
		Settings: ChartSettings{ChartColor: defaultChartColor, ShowDataLabels: false},
	},
	WidgetPieChart: {
		Width:    4,
		Height:   4,
		Settings: PieSettings{ShowLegend: true, ChartColor: defaultChartColor},
	},
	WidgetTable: {
		Width:  6,
		Height: 4,
		Settings: TableSettings{
			Columns:       []string{"firstName", "lastName", "product", "totalAmount", "status"},
			SortDirection: SortAsc,
			PageSize:      10,
			Filters:       []TableFilter{},
			EnableFilters: false,
			FontSize:      14,
			HeaderBgColor: defaultChartColor,
		},
	},
}

// NewWidgetConfig builds a widget from the common base merged with the kind
// defaults. Kind defaults win over the generic base; later user edits win
// over both.
func NewWidgetConfig(id string, t WidgetType, x, y int) WidgetConfig {
	cfg := WidgetConfig{
		ID:     id,
		Type:   t,
		Title:  defaultWidgetTitle(t),
		X:      x,
		Y:      y,
		Width:  4,
		Height: 4,
	}
	if def, ok := widgetDefaults[t]; ok {
		if def.Width > 0 {
			cfg.Width = def.Width
		}
		if def.Height > 0 {
			cfg.Height = def.Height
		}
		if def.Settings != nil {
			cfg.Settings = def.Settings.clone()
		}
	}
	return cfg
}

func defaultWidgetTitle(t WidgetType) string {
	return "New " + strcase.ToCase(string(t), strcase.LowerCase, ' ')
}

// WidgetDisplayName returns the palette label for a widget kind.
func WidgetDisplayName(t WidgetType) string {
	return strcase.ToCase(string(t), strcase.TitleCase, ' ')
}

// DefaultWidgetDefinitions returns the registry entries for the built-in
// widget kinds, including the JSON schema their update payloads must satisfy.
func DefaultWidgetDefinitions() []WidgetDefinition {
	defs := make([]WidgetDefinition, 0, len(widgetDefaults))
	for _, t := range WidgetTypes() {
		defs = append(defs, WidgetDefinition{
			Type:        t,
			Name:        WidgetDisplayName(t),
			Description: widgetDescription(t),
			Schema:      widgetPatchSchema(t),
		})
	}
	return defs
}

func widgetDescription(t WidgetType) string {
	switch t {
	case WidgetKPI:
		return "Single aggregated metric card."
	case WidgetBarChart:
		return "Grouped totals as vertical bars."
	case WidgetLineChart:
		return "Grouped totals as a trend line."
	case WidgetAreaChart:
		return "Grouped totals as a filled trend."
	case WidgetScatterPlot:
		return "Raw value-vs-value points per order."
	case WidgetPieChart:
		return "Order counts per category."
	case WidgetTable:
		return "Filterable, sortable, paginated order grid."
	default:
		return ""
	}
}

func fieldKeys(kind FieldKind) []string {
	var keys []string
	for _, f := range orderFields {
		if kind == "" || f.Kind == kind {
			keys = append(keys, f.Key)
		}
	}
	return keys
}

func commonPatchProperties() map[string]any {
	return map[string]any{
		"title":       map[string]any{"type": "string", "minLength": 1},
		"description": map[string]any{"type": "string"},
		"width":       map[string]any{"type": "integer", "minimum": 1, "maximum": 12},
		"height":      map[string]any{"type": "integer", "minimum": 1},
		"x":           map[string]any{"type": "integer", "minimum": 0},
		"y":           map[string]any{"type": "integer", "minimum": 0},
	}
}

// widgetPatchSchema describes the legal partial-update payload for a kind.
// The variant tag itself is not patchable so no schema admits a type key.
func widgetPatchSchema(t WidgetType) map[string]any {
	props := commonPatchProperties()
	switch t {
	case WidgetKPI:
		props["metric"] = map[string]any{"type": "string", "enum": fieldKeys(FieldNumber)}
		props["aggregation"] = map[string]any{
			"type": "string",
			"enum": []string{string(AggregateSum), string(AggregateAverage), string(AggregateCount)},
		}
		props["dataFormat"] = map[string]any{
			"type": "string",
			"enum": []string{string(FormatNumber), string(FormatCurrency)},
		}
		props["decimalPrecision"] = map[string]any{"type": "integer", "minimum": 0, "maximum": 4}
	case WidgetBarChart, WidgetLineChart, WidgetAreaChart, WidgetScatterPlot:
		props["xAxis"] = map[string]any{"type": "string", "enum": fieldKeys("")}
		props["yAxis"] = map[string]any{"type": "string", "enum": fieldKeys(FieldNumber)}
		props["chartColor"] = map[string]any{"type": "string"}
		props["showDataLabels"] = map[string]any{"type": "boolean"}
	case WidgetPieChart:
		props["dataField"] = map[string]any{"type": "string", "enum": fieldKeys("")}
		props["showLegend"] = map[string]any{"type": "boolean"}
		props["chartColor"] = map[string]any{"type": "string"}
	case WidgetTable:
		props["columns"] = map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string", "enum": fieldKeys("")},
		}
		props["sortField"] = map[string]any{"type": "string", "enum": fieldKeys("")}
		props["sortDirection"] = map[string]any{
			"type": "string",
			"enum": []string{string(SortAsc), string(SortDesc)},
		}
		props["pageSize"] = map[string]any{"type": "integer", "enum": []int{5, 10, 15}}
		props["filters"] = map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []string{"field", "operator", "value"},
				"properties": map[string]any{
					"field": map[string]any{"type": "string", "enum": fieldKeys("")},
					"operator": map[string]any{
						"type": "string",
						"enum": []string{
							string(OpEquals), string(OpContains),
							string(OpGreater), string(OpLess),
						},
					},
					"value": map[string]any{"type": "string"},
				},
				"additionalProperties": false,
			},
		}
		props["enableFilters"] = map[string]any{"type": "boolean"}
		props["fontSize"] = map[string]any{"type": "integer", "minimum": 8, "maximum": 32}
		props["headerBgColor"] = map[string]any{"type": "string"}
	}
	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"additionalProperties": false,
	}
}

// orderDraftSchema validates new-order payloads before any mutation happens.
func orderDraftSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"required": []string{
			"firstName", "lastName", "email", "country",
			"product", "quantity", "unitPrice", "status", "createdBy",
		},
		"properties": map[string]any{
			"firstName":     map[string]any{"type": "string", "minLength": 1},
			"lastName":      map[string]any{"type": "string", "minLength": 1},
			"email":         map[string]any{"type": "string", "minLength": 1},
			"phone":         map[string]any{"type": "string"},
			"streetAddress": map[string]any{"type": "string"},
			"city":          map[string]any{"type": "string"},
			"state":         map[string]any{"type": "string"},
			"postalCode":    map[string]any{"type": "string"},
			"country":       map[string]any{"type": "string", "enum": Countries},
			"product":       map[string]any{"type": "string", "minLength": 1},
			"quantity":      map[string]any{"type": "integer", "minimum": 1},
			"unitPrice":     map[string]any{"type": "number", "exclusiveMinimum": 0},
			"status": map[string]any{
				"type": "string",
				"enum": []string{
					string(StatusPending), string(StatusInProgress), string(StatusCompleted),
				},
			},
			"createdBy": map[string]any{"type": "string", "minLength": 1},
		},
		"additionalProperties": false,
	}
}
