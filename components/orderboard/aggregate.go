package orderboard

// The aggregation engine is pure: every function here maps (orders, settings)
// to a derived dataset without touching shared state, so results can be
// recomputed freely whenever a repository notifies a change.

// unknownGroupLabel stands in for missing grouping keys.
const unknownGroupLabel = "Unknown"

// SeriesPoint is one category of a bar/line/area/pie series.
type SeriesPoint struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// ScatterPoint is one order plotted as a raw (x, y) pair.
type ScatterPoint struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label"`
}

// KPIValue reduces the configured metric across the orders. Count ignores
// the metric entirely; average over zero orders is 0, not NaN.
func KPIValue(orders []CustomerOrder, s KPISettings) float64 {
	if s.Aggregation == AggregateCount {
		return float64(len(orders))
	}
	if s.Metric == "" || len(orders) == 0 {
		return 0
	}
	var total float64
	for _, o := range orders {
		total += NumericFieldValue(o, s.Metric)
	}
	switch s.Aggregation {
	case AggregateAverage:
		return total / float64(len(orders))
	default:
		return total
	}
}

// ChartSeries groups orders by the string value of the x-axis field and sums
// the numeric y-axis field within each group. Categories appear in first-seen
// order of distinct x values.
func ChartSeries(orders []CustomerOrder, s ChartSettings) []SeriesPoint {
	if s.XAxis == "" || s.YAxis == "" {
		return nil
	}
	index := make(map[string]int)
	var points []SeriesPoint
	for _, o := range orders {
		key := StringFieldValue(o, s.XAxis)
		if key == "" {
			key = unknownGroupLabel
		}
		value := NumericFieldValue(o, s.YAxis)
		if i, ok := index[key]; ok {
			points[i].Value += value
			continue
		}
		index[key] = len(points)
		points = append(points, SeriesPoint{Name: key, Value: value})
	}
	return points
}

// ScatterSeries plots one point per order with no grouping, labelled with the
// customer name.
func ScatterSeries(orders []CustomerOrder, s ChartSettings) []ScatterPoint {
	if s.XAxis == "" || s.YAxis == "" {
		return nil
	}
	points := make([]ScatterPoint, len(orders))
	for i, o := range orders {
		points[i] = ScatterPoint{
			X:     NumericFieldValue(o, s.XAxis),
			Y:     NumericFieldValue(o, s.YAxis),
			Label: o.FullName(),
		}
	}
	return points
}

// PieSeries counts orders per distinct value of the data field, in first-seen
// order. The slice value is a count, never a sum.
func PieSeries(orders []CustomerOrder, s PieSettings) []SeriesPoint {
	if s.DataField == "" {
		return nil
	}
	index := make(map[string]int)
	var points []SeriesPoint
	for _, o := range orders {
		key := StringFieldValue(o, s.DataField)
		if key == "" {
			key = unknownGroupLabel
		}
		if i, ok := index[key]; ok {
			points[i].Value++
			continue
		}
		index[key] = len(points)
		points = append(points, SeriesPoint{Name: key, Value: 1})
	}
	return points
}
