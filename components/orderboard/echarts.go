package orderboard

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const defaultChartHeight = "360px"

var sharedChartCache = NewChartCache(5 * time.Minute)

// ChartRenderer turns a widget's aggregated dataset into embeddable markup.
// Implementations report ok=false for widget kinds they do not draw.
type ChartRenderer interface {
	RenderChart(cfg WidgetConfig, data WidgetData) (html string, ok bool, err error)
}

// EChartsRenderer renders chart widgets server-side with go-echarts.
type EChartsRenderer struct {
	cache      RenderCache
	theme      string
	assetsHost string
}

// EChartsRendererOption customizes renderer behavior.
type EChartsRendererOption func(*EChartsRenderer)

// WithRenderCache injects a render cache.
func WithRenderCache(cache RenderCache) EChartsRendererOption {
	return func(r *EChartsRenderer) {
		r.cache = cache
	}
}

// WithChartTheme sets a static theme (defaults to Walden).
func WithChartTheme(theme string) EChartsRendererOption {
	return func(r *EChartsRenderer) {
		r.theme = theme
	}
}

// WithChartAssetsHost rewrites the assets host so ECharts JS loads from a CDN.
func WithChartAssetsHost(host string) EChartsRendererOption {
	return func(r *EChartsRenderer) {
		r.assetsHost = host
	}
}

// NewEChartsRenderer builds a renderer with the shared TTL cache.
func NewEChartsRenderer(options ...EChartsRendererOption) *EChartsRenderer {
	r := &EChartsRenderer{
		cache: sharedChartCache,
		theme: types.ThemeWalden,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// RenderChart draws bar, line, area, pie, and scatter widgets. KPI and table
// widgets have no chart body and report ok=false.
func (r *EChartsRenderer) RenderChart(cfg WidgetConfig, data WidgetData) (string, bool, error) {
	switch cfg.Type {
	case WidgetBarChart, WidgetLineChart, WidgetAreaChart, WidgetPieChart, WidgetScatterPlot:
	default:
		return "", false, nil
	}

	renderFn := func() (string, error) {
		return r.render(cfg, data)
	}

	var (
		html string
		err  error
	)
	if r.cache != nil {
		key := fmt.Sprintf("%s:%s:%s:%s", cfg.ID, cfg.Type, renderDigest(cfg), renderDigest(data))
		html, err = r.cache.GetOrRender(key, renderFn)
	} else {
		html, err = renderFn()
	}
	if err != nil {
		return "", false, err
	}
	return html, true, nil
}

func (r *EChartsRenderer) render(cfg WidgetConfig, data WidgetData) (string, error) {
	switch cfg.Type {
	case WidgetBarChart:
		return r.renderBar(cfg, seriesFromData(data))
	case WidgetLineChart:
		return r.renderLine(cfg, seriesFromData(data), false)
	case WidgetAreaChart:
		return r.renderLine(cfg, seriesFromData(data), true)
	case WidgetPieChart:
		return r.renderPie(cfg, seriesFromData(data))
	case WidgetScatterPlot:
		return r.renderScatter(cfg, pointsFromData(data))
	default:
		return "", fmt.Errorf("orderboard: no chart renderer for widget kind %s", cfg.Type)
	}
}

func (r *EChartsRenderer) renderBar(cfg WidgetConfig, series []SeriesPoint) (string, error) {
	settings, _ := cfg.Settings.(ChartSettings)
	bar := charts.NewBar()
	bar.SetGlobalOptions(r.globalOptions(cfg)...)
	bar.SetXAxis(seriesNames(series))
	bar.AddSeries(FieldLabel(settings.YAxis), toBarData(series))
	bar.SetSeriesOptions(chartSeriesOptions(settings)...)
	return renderChart(bar)
}

func (r *EChartsRenderer) renderLine(cfg WidgetConfig, series []SeriesPoint, area bool) (string, error) {
	settings, _ := cfg.Settings.(ChartSettings)
	line := charts.NewLine()
	line.SetGlobalOptions(r.globalOptions(cfg)...)
	line.SetXAxis(seriesNames(series))
	line.AddSeries(FieldLabel(settings.YAxis), toLineData(series))
	seriesOpts := append(chartSeriesOptions(settings),
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	if area {
		seriesOpts = append(seriesOpts,
			charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: opts.Float(0.4)}))
	}
	line.SetSeriesOptions(seriesOpts...)
	return renderChart(line)
}

func (r *EChartsRenderer) renderPie(cfg WidgetConfig, series []SeriesPoint) (string, error) {
	settings, _ := cfg.Settings.(PieSettings)
	pie := charts.NewPie()
	global := r.globalOptions(cfg)
	if !settings.ShowLegend {
		global = append(global, charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}))
	}
	pie.SetGlobalOptions(global...)
	pie.AddSeries(FieldLabel(settings.DataField), toPieData(series))
	return renderChart(pie)
}

func (r *EChartsRenderer) renderScatter(cfg WidgetConfig, points []ScatterPoint) (string, error) {
	settings, _ := cfg.Settings.(ChartSettings)
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(r.globalOptions(cfg)...)
	scatter.AddSeries(FieldLabel(settings.YAxis), toScatterData(points))
	scatter.SetSeriesOptions(chartSeriesOptions(settings)...)
	return renderChart(scatter)
}

func (r *EChartsRenderer) globalOptions(cfg WidgetConfig) []charts.GlobalOpts {
	initOpts := opts.Initialization{
		Theme:  r.theme,
		Width:  "100%",
		Height: defaultChartHeight,
	}
	if r.assetsHost != "" {
		initOpts.AssetsHost = r.assetsHost
	}
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: cfg.Title, Subtitle: cfg.Description}),
		charts.WithInitializationOpts(initOpts),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}

func chartSeriesOptions(settings ChartSettings) []charts.SeriesOpts {
	out := []charts.SeriesOpts{}
	if color := strings.TrimSpace(settings.ChartColor); color != "" {
		out = append(out, charts.WithItemStyleOpts(opts.ItemStyle{Color: color}))
	}
	if settings.ShowDataLabels {
		out = append(out, charts.WithLabelOpts(opts.Label{Show: opts.Bool(true)}))
	}
	return out
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func seriesFromData(data WidgetData) []SeriesPoint {
	series, _ := data["series"].([]SeriesPoint)
	return series
}

func pointsFromData(data WidgetData) []ScatterPoint {
	points, _ := data["points"].([]ScatterPoint)
	return points
}

func seriesNames(series []SeriesPoint) []string {
	names := make([]string, len(series))
	for i, point := range series {
		names[i] = point.Name
	}
	return names
}

func toBarData(series []SeriesPoint) []opts.BarData {
	data := make([]opts.BarData, len(series))
	for i, point := range series {
		data[i] = opts.BarData{Name: point.Name, Value: point.Value}
	}
	return data
}

func toLineData(series []SeriesPoint) []opts.LineData {
	data := make([]opts.LineData, len(series))
	for i, point := range series {
		data[i] = opts.LineData{Name: point.Name, Value: point.Value}
	}
	return data
}

func toPieData(series []SeriesPoint) []opts.PieData {
	data := make([]opts.PieData, len(series))
	for i, point := range series {
		data[i] = opts.PieData{Name: point.Name, Value: point.Value}
	}
	return data
}

func toScatterData(points []ScatterPoint) []opts.ScatterData {
	data := make([]opts.ScatterData, len(points))
	for i, point := range points {
		data[i] = opts.ScatterData{
			Name:  point.Label,
			Value: []float64{point.X, point.Y},
		}
	}
	return data
}
