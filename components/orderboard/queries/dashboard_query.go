package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	orderboard "github.com/goliatone/go-orderboard/components/orderboard"
)

// DashboardInput identifies a dashboard for a user.
type DashboardInput struct {
	UserID      string `json:"user_id"`
	DashboardID string `json:"dashboard_id"`
}

type dashboardReadService interface {
	ResolveDashboard(ctx context.Context, userID, dashboardID string) (orderboard.ResolvedDashboard, error)
	Dashboards(userID string) []orderboard.Dashboard
	Session(userID string) orderboard.Session
}

// ResolvedDashboardQuery recomputes every widget's dataset for a dashboard.
type ResolvedDashboardQuery struct {
	service dashboardReadService
}

// NewResolvedDashboardQuery builds the query.
func NewResolvedDashboardQuery(service dashboardReadService) *ResolvedDashboardQuery {
	return &ResolvedDashboardQuery{service: service}
}

var _ gocommand.Querier[DashboardInput, orderboard.ResolvedDashboard] = (*ResolvedDashboardQuery)(nil)

// Query resolves the dashboard with live widget data.
func (q *ResolvedDashboardQuery) Query(ctx context.Context, input DashboardInput) (orderboard.ResolvedDashboard, error) {
	return q.service.ResolveDashboard(ctx, input.UserID, input.DashboardID)
}

// DashboardListInput identifies a user.
type DashboardListInput struct {
	UserID string `json:"user_id"`
}

// DashboardListResult pairs the dashboards with the session so callers can
// highlight the current one.
type DashboardListResult struct {
	Dashboards []orderboard.Dashboard `json:"dashboards"`
	Session    orderboard.Session     `json:"session"`
}

// DashboardListQuery lists a user's dashboards and interaction state.
type DashboardListQuery struct {
	service dashboardReadService
}

// NewDashboardListQuery builds the query.
func NewDashboardListQuery(service dashboardReadService) *DashboardListQuery {
	return &DashboardListQuery{service: service}
}

var _ gocommand.Querier[DashboardListInput, DashboardListResult] = (*DashboardListQuery)(nil)

// Query lists the dashboards.
func (q *DashboardListQuery) Query(_ context.Context, input DashboardListInput) (DashboardListResult, error) {
	return DashboardListResult{
		Dashboards: q.service.Dashboards(input.UserID),
		Session:    q.service.Session(input.UserID),
	}, nil
}
