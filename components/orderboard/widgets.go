package orderboard

import (
	"encoding/json"
	"fmt"
)

// WidgetType tags the widget configuration variant. The tag is fixed at
// creation time; updates may only touch same-kind fields.
type WidgetType string

const (
	WidgetKPI         WidgetType = "kpi"
	WidgetBarChart    WidgetType = "bar-chart"
	WidgetLineChart   WidgetType = "line-chart"
	WidgetAreaChart   WidgetType = "area-chart"
	WidgetScatterPlot WidgetType = "scatter-plot"
	WidgetPieChart    WidgetType = "pie-chart"
	WidgetTable       WidgetType = "table"
)

// WidgetTypes returns every supported widget kind in palette order.
func WidgetTypes() []WidgetType {
	return []WidgetType{
		WidgetKPI,
		WidgetBarChart,
		WidgetLineChart,
		WidgetAreaChart,
		WidgetScatterPlot,
		WidgetPieChart,
		WidgetTable,
	}
}

// Aggregation reduces a numeric field across a set of orders.
type Aggregation string

const (
	AggregateSum     Aggregation = "sum"
	AggregateAverage Aggregation = "average"
	AggregateCount   Aggregation = "count"
)

// DataFormat selects how a KPI value is rendered.
type DataFormat string

const (
	FormatNumber   DataFormat = "number"
	FormatCurrency DataFormat = "currency"
)

// SortDirection orders table rows.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// FilterOperator compares a table column against a filter value.
type FilterOperator string

const (
	OpEquals   FilterOperator = "equals"
	OpContains FilterOperator = "contains"
	OpGreater  FilterOperator = "greater"
	OpLess     FilterOperator = "less"
)

// TableFilter is one predicate of a table widget's filter chain.
type TableFilter struct {
	Field    string         `json:"field"`
	Operator FilterOperator `json:"operator"`
	Value    string         `json:"value"`
}

// WidgetSettings is the closed set of per-kind configuration payloads. Read
// sites switch on the widget type and match exhaustively.
type WidgetSettings interface {
	isWidgetSettings()
	clone() WidgetSettings
}

// KPISettings binds a KPI card to a numeric metric.
type KPISettings struct {
	Metric           string      `json:"metric,omitempty"`
	Aggregation      Aggregation `json:"aggregation"`
	DataFormat       DataFormat  `json:"dataFormat"`
	DecimalPrecision int         `json:"decimalPrecision"`
}

// ChartSettings configures bar, line, area, and scatter widgets.
type ChartSettings struct {
	XAxis          string `json:"xAxis,omitempty"`
	YAxis          string `json:"yAxis,omitempty"`
	ChartColor     string `json:"chartColor"`
	ShowDataLabels bool   `json:"showDataLabels"`
}

// PieSettings configures pie widgets, which count orders per group.
type PieSettings struct {
	DataField  string `json:"dataField,omitempty"`
	ShowLegend bool   `json:"showLegend"`
	ChartColor string `json:"chartColor"`
}

// TableSettings configures the tabular widget.
type TableSettings struct {
	Columns       []string      `json:"columns"`
	SortField     string        `json:"sortField,omitempty"`
	SortDirection SortDirection `json:"sortDirection"`
	PageSize      int           `json:"pageSize"`
	Filters       []TableFilter `json:"filters"`
	EnableFilters bool          `json:"enableFilters"`
	FontSize      int           `json:"fontSize"`
	HeaderBgColor string        `json:"headerBgColor"`
}

func (KPISettings) isWidgetSettings()   {}
func (ChartSettings) isWidgetSettings() {}
func (PieSettings) isWidgetSettings()   {}
func (TableSettings) isWidgetSettings() {}

func (s KPISettings) clone() WidgetSettings   { return s }
func (s ChartSettings) clone() WidgetSettings { return s }
func (s PieSettings) clone() WidgetSettings   { return s }
func (s TableSettings) clone() WidgetSettings {
	out := s
	out.Columns = append([]string(nil), s.Columns...)
	out.Filters = append([]TableFilter(nil), s.Filters...)
	return out
}

// WidgetConfig is one widget on a dashboard: common placement attributes plus
// the kind-specific settings variant matching Type.
type WidgetConfig struct {
	ID          string
	Type        WidgetType
	Title       string
	Description string
	Width       int
	Height      int
	X           int
	Y           int
	Settings    WidgetSettings
}

// Clone returns a deep copy safe to hand outside the repository.
func (w WidgetConfig) Clone() WidgetConfig {
	out := w
	if w.Settings != nil {
		out.Settings = w.Settings.clone()
	}
	return out
}

// widgetEnvelope is the flat wire shape shared by every variant. Kind-specific
// fields are pointers so a round-trip only carries the fields the variant owns.
type widgetEnvelope struct {
	ID          string     `json:"id"`
	Type        WidgetType `json:"type"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Width       int        `json:"width"`
	Height      int        `json:"height"`
	X           int        `json:"x"`
	Y           int        `json:"y"`

	Metric           *string      `json:"metric,omitempty"`
	Aggregation      *Aggregation `json:"aggregation,omitempty"`
	DataFormat       *DataFormat  `json:"dataFormat,omitempty"`
	DecimalPrecision *int         `json:"decimalPrecision,omitempty"`

	XAxis          *string `json:"xAxis,omitempty"`
	YAxis          *string `json:"yAxis,omitempty"`
	ChartColor     *string `json:"chartColor,omitempty"`
	ShowDataLabels *bool   `json:"showDataLabels,omitempty"`

	DataField  *string `json:"dataField,omitempty"`
	ShowLegend *bool   `json:"showLegend,omitempty"`

	Columns       []string       `json:"columns,omitempty"`
	SortField     *string        `json:"sortField,omitempty"`
	SortDirection *SortDirection `json:"sortDirection,omitempty"`
	PageSize      *int           `json:"pageSize,omitempty"`
	Filters       []TableFilter  `json:"filters,omitempty"`
	EnableFilters *bool          `json:"enableFilters,omitempty"`
	FontSize      *int           `json:"fontSize,omitempty"`
	HeaderBgColor *string        `json:"headerBgColor,omitempty"`
}

// MarshalJSON flattens the settings variant into the common envelope so the
// persisted layout matches the snapshot format consumers expect.
func (w WidgetConfig) MarshalJSON() ([]byte, error) {
	env := widgetEnvelope{
		ID:          w.ID,
		Type:        w.Type,
		Title:       w.Title,
		Description: w.Description,
		Width:       w.Width,
		Height:      w.Height,
		X:           w.X,
		Y:           w.Y,
	}
	switch s := w.Settings.(type) {
	case KPISettings:
		if s.Metric != "" {
			env.Metric = &s.Metric
		}
		env.Aggregation = &s.Aggregation
		env.DataFormat = &s.DataFormat
		env.DecimalPrecision = &s.DecimalPrecision
	case ChartSettings:
		if s.XAxis != "" {
			env.XAxis = &s.XAxis
		}
		if s.YAxis != "" {
			env.YAxis = &s.YAxis
		}
		env.ChartColor = &s.ChartColor
		env.ShowDataLabels = &s.ShowDataLabels
	case PieSettings:
		if s.DataField != "" {
			env.DataField = &s.DataField
		}
		env.ShowLegend = &s.ShowLegend
		env.ChartColor = &s.ChartColor
	case TableSettings:
		env.Columns = s.Columns
		if s.SortField != "" {
			env.SortField = &s.SortField
		}
		env.SortDirection = &s.SortDirection
		env.PageSize = &s.PageSize
		env.Filters = s.Filters
		env.EnableFilters = &s.EnableFilters
		env.FontSize = &s.FontSize
		env.HeaderBgColor = &s.HeaderBgColor
	case nil:
	default:
		return nil, fmt.Errorf("orderboard: unknown widget settings %T", w.Settings)
	}
	return json.Marshal(env)
}

// UnmarshalJSON rebuilds the settings variant from the flat envelope based on
// the type tag.
func (w *WidgetConfig) UnmarshalJSON(data []byte) error {
	var env widgetEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	cfg := WidgetConfig{
		ID:          env.ID,
		Type:        env.Type,
		Title:       env.Title,
		Description: env.Description,
		Width:       env.Width,
		Height:      env.Height,
		X:           env.X,
		Y:           env.Y,
	}
	switch env.Type {
	case WidgetKPI:
		s := KPISettings{}
		if env.Metric != nil {
			s.Metric = *env.Metric
		}
		if env.Aggregation != nil {
			s.Aggregation = *env.Aggregation
		}
		if env.DataFormat != nil {
			s.DataFormat = *env.DataFormat
		}
		if env.DecimalPrecision != nil {
			s.DecimalPrecision = *env.DecimalPrecision
		}
		cfg.Settings = s
	case WidgetBarChart, WidgetLineChart, WidgetAreaChart, WidgetScatterPlot:
		s := ChartSettings{}
		if env.XAxis != nil {
			s.XAxis = *env.XAxis
		}
		if env.YAxis != nil {
			s.YAxis = *env.YAxis
		}
		if env.ChartColor != nil {
			s.ChartColor = *env.ChartColor
		}
		if env.ShowDataLabels != nil {
			s.ShowDataLabels = *env.ShowDataLabels
		}
		cfg.Settings = s
	case WidgetPieChart:
		s := PieSettings{}
		if env.DataField != nil {
			s.DataField = *env.DataField
		}
		if env.ShowLegend != nil {
			s.ShowLegend = *env.ShowLegend
		}
		if env.ChartColor != nil {
			s.ChartColor = *env.ChartColor
		}
		cfg.Settings = s
	case WidgetTable:
		s := TableSettings{Columns: env.Columns, Filters: env.Filters}
		if env.SortField != nil {
			s.SortField = *env.SortField
		}
		if env.SortDirection != nil {
			s.SortDirection = *env.SortDirection
		}
		if env.PageSize != nil {
			s.PageSize = *env.PageSize
		}
		if env.EnableFilters != nil {
			s.EnableFilters = *env.EnableFilters
		}
		if env.FontSize != nil {
			s.FontSize = *env.FontSize
		}
		if env.HeaderBgColor != nil {
			s.HeaderBgColor = *env.HeaderBgColor
		}
		cfg.Settings = s
	default:
		return fmt.Errorf("orderboard: unknown widget type %q", env.Type)
	}
	*w = cfg
	return nil
}

// WidgetPatch is a partial update decoded from a flat JSON object. The id and
// type keys are ignored: the variant tag is immutable after creation.
type WidgetPatch map[string]any

// apply merges the patch into the config. Common attributes merge for every
// kind; kind-specific keys only apply to the matching variant.
func (p WidgetPatch) apply(w *WidgetConfig) {
	if v, ok := p.string("title"); ok {
		w.Title = v
	}
	if v, ok := p.string("description"); ok {
		w.Description = v
	}
	if v, ok := p.int("width"); ok {
		w.Width = v
	}
	if v, ok := p.int("height"); ok {
		w.Height = v
	}
	if v, ok := p.int("x"); ok {
		w.X = v
	}
	if v, ok := p.int("y"); ok {
		w.Y = v
	}

	switch s := w.Settings.(type) {
	case KPISettings:
		if v, ok := p.string("metric"); ok {
			s.Metric = v
		}
		if v, ok := p.string("aggregation"); ok {
			s.Aggregation = Aggregation(v)
		}
		if v, ok := p.string("dataFormat"); ok {
			s.DataFormat = DataFormat(v)
		}
		if v, ok := p.int("decimalPrecision"); ok {
			s.DecimalPrecision = v
		}
		w.Settings = s
	case ChartSettings:
		if v, ok := p.string("xAxis"); ok {
			s.XAxis = v
		}
		if v, ok := p.string("yAxis"); ok {
			s.YAxis = v
		}
		if v, ok := p.string("chartColor"); ok {
			s.ChartColor = v
		}
		if v, ok := p.bool("showDataLabels"); ok {
			s.ShowDataLabels = v
		}
		w.Settings = s
	case PieSettings:
		if v, ok := p.string("dataField"); ok {
			s.DataField = v
		}
		if v, ok := p.bool("showLegend"); ok {
			s.ShowLegend = v
		}
		if v, ok := p.string("chartColor"); ok {
			s.ChartColor = v
		}
		w.Settings = s
	case TableSettings:
		if v, ok := p.stringSlice("columns"); ok {
			s.Columns = v
		}
		if v, ok := p.string("sortField"); ok {
			s.SortField = v
		}
		if v, ok := p.string("sortDirection"); ok {
			s.SortDirection = SortDirection(v)
		}
		if v, ok := p.int("pageSize"); ok {
			s.PageSize = v
		}
		if v, ok := p.filters("filters"); ok {
			s.Filters = v
		}
		if v, ok := p.bool("enableFilters"); ok {
			s.EnableFilters = v
		}
		if v, ok := p.int("fontSize"); ok {
			s.FontSize = v
		}
		if v, ok := p.string("headerBgColor"); ok {
			s.HeaderBgColor = v
		}
		w.Settings = s
	}
}

func (p WidgetPatch) string(key string) (string, bool) {
	v, ok := p[key].(string)
	return v, ok
}

func (p WidgetPatch) bool(key string) (bool, bool) {
	v, ok := p[key].(bool)
	return v, ok
}

func (p WidgetPatch) int(key string) (int, bool) {
	switch v := p[key].(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func (p WidgetPatch) stringSlice(key string) ([]string, bool) {
	switch v := p[key].(type) {
	case []string:
		return append([]string(nil), v...), true
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out, true
	default:
		return nil, false
	}
}

func (p WidgetPatch) filters(key string) ([]TableFilter, bool) {
	raw, ok := p[key]
	if !ok {
		return nil, false
	}
	switch v := raw.(type) {
	case []TableFilter:
		return append([]TableFilter(nil), v...), true
	case []any:
		out := make([]TableFilter, 0, len(v))
		for _, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			f := TableFilter{}
			if s, ok := m["field"].(string); ok {
				f.Field = s
			}
			if s, ok := m["operator"].(string); ok {
				f.Operator = FilterOperator(s)
			}
			if s, ok := m["value"].(string); ok {
				f.Value = s
			}
			out = append(out, f)
		}
		return out, true
	default:
		return nil, false
	}
}
