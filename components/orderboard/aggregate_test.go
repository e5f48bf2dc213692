package orderboard

import "testing"

func sampleOrders() []CustomerOrder {
	return []CustomerOrder{
		{FirstName: "Ada", LastName: "Lovelace", Country: "Canada", Product: "Fiber Internet 300 Mbps", Quantity: 2, UnitPrice: 50, TotalAmount: 100, Status: StatusPending},
		{FirstName: "Grace", LastName: "Hopper", Country: "Canada", Product: "5G Unlimited Mobile Plan", Quantity: 1, UnitPrice: 30, TotalAmount: 30, Status: StatusCompleted},
		{FirstName: "Alan", LastName: "Turing", Country: "Singapore", Product: "Fiber Internet 300 Mbps", Quantity: 4, UnitPrice: 25, TotalAmount: 100, Status: StatusPending},
	}
}

func TestKPIValueSum(t *testing.T) {
	got := KPIValue(sampleOrders(), KPISettings{Metric: "totalAmount", Aggregation: AggregateSum})
	if got != 230 {
		t.Fatalf("expected sum 230, got %v", got)
	}
}

func TestKPIValueAverage(t *testing.T) {
	got := KPIValue(sampleOrders(), KPISettings{Metric: "quantity", Aggregation: AggregateAverage})
	want := 7.0 / 3.0
	if got != want {
		t.Fatalf("expected average %v, got %v", want, got)
	}
}

func TestKPIValueAverageOfNoOrdersIsZero(t *testing.T) {
	got := KPIValue(nil, KPISettings{Metric: "totalAmount", Aggregation: AggregateAverage})
	if got != 0 {
		t.Fatalf("expected 0 for empty collection, got %v", got)
	}
}

func TestKPIValueCountIgnoresMetric(t *testing.T) {
	got := KPIValue(sampleOrders(), KPISettings{Aggregation: AggregateCount})
	if got != 3 {
		t.Fatalf("expected count 3, got %v", got)
	}
}

func TestChartSeriesGroupsAndSums(t *testing.T) {
	series := ChartSeries(sampleOrders(), ChartSettings{XAxis: "country", YAxis: "totalAmount"})
	if len(series) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(series))
	}
	if series[0].Name != "Canada" || series[0].Value != 130 {
		t.Fatalf("expected Canada=130 first, got %s=%v", series[0].Name, series[0].Value)
	}
	if series[1].Name != "Singapore" || series[1].Value != 100 {
		t.Fatalf("expected Singapore=100 second, got %s=%v", series[1].Name, series[1].Value)
	}
}

func TestChartSeriesLabelsMissingGroup(t *testing.T) {
	orders := []CustomerOrder{{Country: "", TotalAmount: 10}}
	series := ChartSeries(orders, ChartSettings{XAxis: "country", YAxis: "totalAmount"})
	if len(series) != 1 || series[0].Name != "Unknown" {
		t.Fatalf("expected Unknown group, got %+v", series)
	}
}

func TestChartSeriesRequiresBothAxes(t *testing.T) {
	if got := ChartSeries(sampleOrders(), ChartSettings{XAxis: "country"}); got != nil {
		t.Fatalf("expected nil series without y axis, got %+v", got)
	}
}

func TestScatterSeriesIsUngrouped(t *testing.T) {
	points := ScatterSeries(sampleOrders(), ChartSettings{XAxis: "quantity", YAxis: "totalAmount"})
	if len(points) != 3 {
		t.Fatalf("expected one point per order, got %d", len(points))
	}
	if points[0].X != 2 || points[0].Y != 100 {
		t.Fatalf("unexpected first point %+v", points[0])
	}
	if points[0].Label != "Ada Lovelace" {
		t.Fatalf("expected full-name label, got %q", points[0].Label)
	}
}

func TestPieSeriesCountsPerGroup(t *testing.T) {
	series := PieSeries(sampleOrders(), PieSettings{DataField: "status"})
	if len(series) != 2 {
		t.Fatalf("expected 2 slices, got %d", len(series))
	}
	if series[0].Name != string(StatusPending) || series[0].Value != 2 {
		t.Fatalf("expected Pending=2 first, got %s=%v", series[0].Name, series[0].Value)
	}
	if series[1].Name != string(StatusCompleted) || series[1].Value != 1 {
		t.Fatalf("expected Completed=1 second, got %s=%v", series[1].Name, series[1].Value)
	}
}
