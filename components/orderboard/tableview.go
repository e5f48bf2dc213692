package orderboard

import (
	"sort"
	"strconv"
	"strings"
)

// tableCellPlaceholder renders missing string values in table cells.
const tableCellPlaceholder = "—"

// TableView is the derived dataset of a table widget: the filtered, sorted
// window of orders for the requested page plus pagination metadata.
type TableView struct {
	Columns   []OrderField    `json:"columns"`
	Rows      []CustomerOrder `json:"rows"`
	Page      int             `json:"page"`
	PageCount int             `json:"pageCount"`
	PageSize  int             `json:"pageSize"`
	TotalRows int             `json:"totalRows"`
}

// BuildTableView applies the widget's filter chain (logical AND), sort, and
// pagination to the already date-filtered orders. Pages are 1-indexed and
// clamped into [1, pageCount]; an empty result still reports one page.
func BuildTableView(orders []CustomerOrder, s TableSettings, page int) TableView {
	rows := make([]CustomerOrder, len(orders))
	copy(rows, orders)

	if s.EnableFilters {
		for _, f := range s.Filters {
			if f.Field == "" || f.Value == "" {
				continue
			}
			rows = applyTableFilter(rows, f)
		}
	}

	if s.SortField != "" {
		sortRows(rows, s.SortField, s.SortDirection)
	}

	pageSize := s.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}
	total := len(rows)
	pageCount := (total + pageSize - 1) / pageSize
	if pageCount < 1 {
		pageCount = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pageCount {
		page = pageCount
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return TableView{
		Columns:   tableColumns(s),
		Rows:      rows[start:end],
		Page:      page,
		PageCount: pageCount,
		PageSize:  pageSize,
		TotalRows: total,
	}
}

func tableColumns(s TableSettings) []OrderField {
	keys := s.Columns
	if len(keys) == 0 {
		keys = []string{"firstName", "lastName", "product", "totalAmount", "status"}
	}
	columns := make([]OrderField, 0, len(keys))
	for _, key := range keys {
		if f, ok := FieldByKey(key); ok {
			columns = append(columns, f)
			continue
		}
		columns = append(columns, OrderField{Key: key, Label: key, Kind: FieldString})
	}
	return columns
}

func applyTableFilter(rows []CustomerOrder, f TableFilter) []CustomerOrder {
	out := rows[:0]
	for _, o := range rows {
		if matchTableFilter(o, f) {
			out = append(out, o)
		}
	}
	return out
}

// matchTableFilter evaluates one predicate. equals/contains compare strings
// case-insensitively; greater/less compare numbers and only apply to numeric
// fields; a numeric comparison against a non-numeric field matches nothing.
func matchTableFilter(o CustomerOrder, f TableFilter) bool {
	switch f.Operator {
	case OpEquals:
		return strings.EqualFold(StringFieldValue(o, f.Field), f.Value)
	case OpContains:
		return strings.Contains(
			strings.ToLower(StringFieldValue(o, f.Field)),
			strings.ToLower(f.Value),
		)
	case OpGreater, OpLess:
		field, ok := FieldByKey(f.Field)
		if !ok || field.Kind != FieldNumber {
			return false
		}
		threshold, err := strconv.ParseFloat(strings.TrimSpace(f.Value), 64)
		if err != nil {
			return false
		}
		value := NumericFieldValue(o, f.Field)
		if f.Operator == OpGreater {
			return value > threshold
		}
		return value < threshold
	default:
		return true
	}
}

func sortRows(rows []CustomerOrder, field string, direction SortDirection) {
	meta, _ := FieldByKey(field)
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if direction == SortDesc {
			a, b = b, a
		}
		switch meta.Kind {
		case FieldNumber:
			return NumericFieldValue(a, field) < NumericFieldValue(b, field)
		case FieldDate:
			return a.CreatedAt.Before(b.CreatedAt)
		default:
			return StringFieldValue(a, field) < StringFieldValue(b, field)
		}
	})
}

// CellText renders one table cell. Missing string values come back as an
// em-dash placeholder rather than an empty cell.
func CellText(o CustomerOrder, key string) string {
	text := StringFieldValue(o, key)
	if text == "" {
		return tableCellPlaceholder
	}
	return text
}
