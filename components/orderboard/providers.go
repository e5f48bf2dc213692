package orderboard

import (
	"context"
	"fmt"
)

func errSettingsMismatch(cfg WidgetConfig, want WidgetType) error {
	return fmt.Errorf("orderboard: widget %s settings do not match kind %s", cfg.ID, want)
}

var defaultProviders = map[WidgetType]DatasetProvider{
	WidgetKPI:         ProviderFunc(fetchKPI),
	WidgetBarChart:    ProviderFunc(fetchChart),
	WidgetLineChart:   ProviderFunc(fetchChart),
	WidgetAreaChart:   ProviderFunc(fetchChart),
	WidgetScatterPlot: ProviderFunc(fetchScatter),
	WidgetPieChart:    ProviderFunc(fetchPie),
	WidgetTable:       ProviderFunc(fetchTable),
}

func fetchKPI(_ context.Context, req DatasetRequest) (WidgetData, error) {
	s, ok := req.Config.Settings.(KPISettings)
	if !ok {
		return nil, errSettingsMismatch(req.Config, WidgetKPI)
	}
	value := KPIValue(req.Orders, s)
	return WidgetData{
		"value":       value,
		"formatted":   FormatKPIValue(value, s),
		"metric":      s.Metric,
		"aggregation": string(s.Aggregation),
	}, nil
}

func fetchChart(_ context.Context, req DatasetRequest) (WidgetData, error) {
	s, ok := req.Config.Settings.(ChartSettings)
	if !ok {
		return nil, errSettingsMismatch(req.Config, req.Config.Type)
	}
	return WidgetData{
		"series":         ChartSeries(req.Orders, s),
		"xAxisLabel":     FieldLabel(s.XAxis),
		"yAxisLabel":     FieldLabel(s.YAxis),
		"color":          s.ChartColor,
		"showDataLabels": s.ShowDataLabels,
	}, nil
}

func fetchScatter(_ context.Context, req DatasetRequest) (WidgetData, error) {
	s, ok := req.Config.Settings.(ChartSettings)
	if !ok {
		return nil, errSettingsMismatch(req.Config, WidgetScatterPlot)
	}
	return WidgetData{
		"points":     ScatterSeries(req.Orders, s),
		"xAxisLabel": FieldLabel(s.XAxis),
		"yAxisLabel": FieldLabel(s.YAxis),
		"color":      s.ChartColor,
	}, nil
}

func fetchPie(_ context.Context, req DatasetRequest) (WidgetData, error) {
	s, ok := req.Config.Settings.(PieSettings)
	if !ok {
		return nil, errSettingsMismatch(req.Config, WidgetPieChart)
	}
	return WidgetData{
		"series":     PieSeries(req.Orders, s),
		"fieldLabel": FieldLabel(s.DataField),
		"showLegend": s.ShowLegend,
		"color":      s.ChartColor,
	}, nil
}

func fetchTable(_ context.Context, req DatasetRequest) (WidgetData, error) {
	s, ok := req.Config.Settings.(TableSettings)
	if !ok {
		return nil, errSettingsMismatch(req.Config, WidgetTable)
	}
	view := BuildTableView(req.Orders, s, req.Page)
	return WidgetData{
		"table":         view,
		"fontSize":      s.FontSize,
		"headerBgColor": s.HeaderBgColor,
	}, nil
}
