package orderboard

import "testing"

func tableOrders() []CustomerOrder {
	return []CustomerOrder{
		{ID: "o1", FirstName: "Ada", LastName: "Lovelace", Product: "Fiber Internet 300 Mbps", TotalAmount: 100, Quantity: 2, Status: StatusPending},
		{ID: "o2", FirstName: "Grace", LastName: "Hopper", Product: "5G Unlimited Mobile Plan", TotalAmount: 30, Quantity: 1, Status: StatusCompleted},
		{ID: "o3", FirstName: "Alan", LastName: "Turing", Product: "Fiber Internet 1 Gbps", TotalAmount: 250, Quantity: 5, Status: StatusInProgress},
	}
}

func rowIDs(view TableView) []string {
	ids := make([]string, len(view.Rows))
	for i, row := range view.Rows {
		ids[i] = row.ID
	}
	return ids
}

func TestEqualsFilterIsCaseInsensitive(t *testing.T) {
	view := BuildTableView(tableOrders(), TableSettings{
		EnableFilters: true,
		Filters:       []TableFilter{{Field: "firstName", Operator: OpEquals, Value: "ada"}},
	}, 1)
	if len(view.Rows) != 1 || view.Rows[0].ID != "o1" {
		t.Fatalf("expected only o1, got %v", rowIDs(view))
	}
}

func TestContainsFilter(t *testing.T) {
	view := BuildTableView(tableOrders(), TableSettings{
		EnableFilters: true,
		Filters:       []TableFilter{{Field: "product", Operator: OpContains, Value: "fiber"}},
	}, 1)
	if len(view.Rows) != 2 {
		t.Fatalf("expected 2 fiber rows, got %v", rowIDs(view))
	}
}

func TestGreaterFilterOnNumericField(t *testing.T) {
	view := BuildTableView(tableOrders(), TableSettings{
		EnableFilters: true,
		Filters:       []TableFilter{{Field: "totalAmount", Operator: OpGreater, Value: "50"}},
	}, 1)
	if len(view.Rows) != 2 {
		t.Fatalf("expected 2 rows above 50, got %v", rowIDs(view))
	}
}

func TestGreaterFilterOnStringFieldMatchesNothing(t *testing.T) {
	view := BuildTableView(tableOrders(), TableSettings{
		EnableFilters: true,
		Filters:       []TableFilter{{Field: "firstName", Operator: OpGreater, Value: "A"}},
	}, 1)
	if len(view.Rows) != 0 {
		t.Fatalf("expected numeric comparison on a string field to match nothing, got %v", rowIDs(view))
	}
}

func TestFiltersDisabledAreIgnored(t *testing.T) {
	view := BuildTableView(tableOrders(), TableSettings{
		EnableFilters: false,
		Filters:       []TableFilter{{Field: "firstName", Operator: OpEquals, Value: "ada"}},
	}, 1)
	if len(view.Rows) != 3 {
		t.Fatalf("expected all rows when filters are disabled, got %v", rowIDs(view))
	}
}

func TestEmptyFilterEntriesAreSkipped(t *testing.T) {
	view := BuildTableView(tableOrders(), TableSettings{
		EnableFilters: true,
		Filters: []TableFilter{
			{Field: "", Operator: OpEquals, Value: "x"},
			{Field: "firstName", Operator: OpEquals, Value: ""},
		},
	}, 1)
	if len(view.Rows) != 3 {
		t.Fatalf("expected incomplete filters to be skipped, got %v", rowIDs(view))
	}
}

func TestFilterChainIsConjunction(t *testing.T) {
	view := BuildTableView(tableOrders(), TableSettings{
		EnableFilters: true,
		Filters: []TableFilter{
			{Field: "product", Operator: OpContains, Value: "fiber"},
			{Field: "totalAmount", Operator: OpGreater, Value: "200"},
		},
	}, 1)
	if len(view.Rows) != 1 || view.Rows[0].ID != "o3" {
		t.Fatalf("expected only o3 to satisfy both filters, got %v", rowIDs(view))
	}
}

func TestNumericSortDescending(t *testing.T) {
	view := BuildTableView(tableOrders(), TableSettings{
		SortField:     "totalAmount",
		SortDirection: SortDesc,
	}, 1)
	want := []string{"o3", "o1", "o2"}
	got := rowIDs(view)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestLexicographicSortAscending(t *testing.T) {
	view := BuildTableView(tableOrders(), TableSettings{
		SortField:     "firstName",
		SortDirection: SortAsc,
	}, 1)
	want := []string{"o1", "o3", "o2"}
	got := rowIDs(view)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestPaginationSplitsAndClamps(t *testing.T) {
	orders := make([]CustomerOrder, 5)
	for i := range orders {
		orders[i].ID = string(rune('a' + i))
	}
	settings := TableSettings{PageSize: 2}

	first := BuildTableView(orders, settings, 1)
	if first.PageCount != 3 || len(first.Rows) != 2 {
		t.Fatalf("unexpected first page: count=%d rows=%d", first.PageCount, len(first.Rows))
	}

	last := BuildTableView(orders, settings, 3)
	if len(last.Rows) != 1 {
		t.Fatalf("expected 1 row on last page, got %d", len(last.Rows))
	}

	clampedHigh := BuildTableView(orders, settings, 99)
	if clampedHigh.Page != 3 {
		t.Fatalf("expected page clamp to 3, got %d", clampedHigh.Page)
	}

	clampedLow := BuildTableView(orders, settings, 0)
	if clampedLow.Page != 1 {
		t.Fatalf("expected page clamp to 1, got %d", clampedLow.Page)
	}
}

func TestEmptyResultStillReportsOnePage(t *testing.T) {
	view := BuildTableView(nil, TableSettings{PageSize: 10}, 1)
	if view.PageCount != 1 || view.Page != 1 {
		t.Fatalf("expected single empty page, got page=%d count=%d", view.Page, view.PageCount)
	}
}

func TestDefaultColumnsAndPageSize(t *testing.T) {
	view := BuildTableView(tableOrders(), TableSettings{}, 1)
	if view.PageSize != 10 {
		t.Fatalf("expected default page size 10, got %d", view.PageSize)
	}
	wantCols := []string{"firstName", "lastName", "product", "totalAmount", "status"}
	if len(view.Columns) != len(wantCols) {
		t.Fatalf("expected %d default columns, got %d", len(wantCols), len(view.Columns))
	}
	for i, key := range wantCols {
		if view.Columns[i].Key != key {
			t.Fatalf("expected column %s at %d, got %s", key, i, view.Columns[i].Key)
		}
	}
}

func TestCellTextPlaceholder(t *testing.T) {
	if got := CellText(CustomerOrder{}, "firstName"); got != tableCellPlaceholder {
		t.Fatalf("expected placeholder for missing value, got %q", got)
	}
	if got := CellText(CustomerOrder{FirstName: "Ada"}, "firstName"); got != "Ada" {
		t.Fatalf("expected literal value, got %q", got)
	}
}
