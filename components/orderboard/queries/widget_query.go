package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	orderboard "github.com/goliatone/go-orderboard/components/orderboard"
)

// WidgetDataInput identifies one widget and an optional table page.
type WidgetDataInput struct {
	UserID      string `json:"user_id"`
	DashboardID string `json:"dashboard_id"`
	WidgetID    string `json:"widget_id"`
	Page        int    `json:"page"`
}

type widgetReadService interface {
	WidgetData(ctx context.Context, userID, dashboardID, widgetID string, page int) (orderboard.WidgetData, error)
}

// WidgetDataQuery recomputes the derived dataset for one widget.
type WidgetDataQuery struct {
	service widgetReadService
}

// NewWidgetDataQuery builds the query.
func NewWidgetDataQuery(service widgetReadService) *WidgetDataQuery {
	return &WidgetDataQuery{service: service}
}

var _ gocommand.Querier[WidgetDataInput, orderboard.WidgetData] = (*WidgetDataQuery)(nil)

// Query fetches the widget dataset.
func (q *WidgetDataQuery) Query(ctx context.Context, input WidgetDataInput) (orderboard.WidgetData, error) {
	page := input.Page
	if page <= 0 {
		page = 1
	}
	return q.service.WidgetData(ctx, input.UserID, input.DashboardID, input.WidgetID, page)
}
