package httpapi

import (
	"context"
	"errors"

	orderboard "github.com/goliatone/go-orderboard/components/orderboard"
	"github.com/goliatone/go-orderboard/components/orderboard/commands"
	"github.com/goliatone/go-orderboard/components/orderboard/queries"
)

// Executor is the transport-facing facade over the shared commands and
// queries. Router adapters depend on this interface instead of concrete
// command types.
type Executor interface {
	CreateOrder(ctx context.Context, input commands.CreateOrderInput) error
	UpdateOrder(ctx context.Context, input commands.UpdateOrderInput) error
	DeleteOrder(ctx context.Context, input commands.DeleteOrderInput) error
	ListOrders(ctx context.Context, input queries.OrderListInput) ([]orderboard.CustomerOrder, error)

	CreateDashboard(ctx context.Context, input commands.CreateDashboardInput) error
	UpdateDashboard(ctx context.Context, input commands.UpdateDashboardInput) error
	DeleteDashboard(ctx context.Context, input commands.DeleteDashboardInput) error
	ListDashboards(ctx context.Context, input queries.DashboardListInput) (queries.DashboardListResult, error)
	ResolveDashboard(ctx context.Context, input queries.DashboardInput) (orderboard.ResolvedDashboard, error)

	AddWidget(ctx context.Context, input commands.AddWidgetInput) error
	UpdateWidget(ctx context.Context, input commands.UpdateWidgetInput) error
	RemoveWidget(ctx context.Context, input commands.RemoveWidgetInput) error
	MoveWidget(ctx context.Context, input commands.MoveWidgetInput) error
	WidgetData(ctx context.Context, input queries.WidgetDataInput) (orderboard.WidgetData, error)

	SetDateFilter(ctx context.Context, input commands.SetDateFilterInput) error
	SelectWidget(ctx context.Context, input commands.SelectWidgetInput) error
	SetConfiguring(ctx context.Context, input commands.SetConfiguringInput) error
	OpenDashboard(ctx context.Context, input commands.OpenDashboardInput) error
}

// CommandExecutor implements Executor on top of the Handlers wiring.
type CommandExecutor struct {
	Handlers *Handlers
}

var _ Executor = (*CommandExecutor)(nil)

var errNotWired = errors.New("httpapi: endpoint is not wired")

func (e *CommandExecutor) CreateOrder(ctx context.Context, input commands.CreateOrderInput) error {
	if e.Handlers == nil || e.Handlers.CreateOrder == nil {
		return errNotWired
	}
	return e.Handlers.CreateOrder.Execute(ctx, input)
}

func (e *CommandExecutor) UpdateOrder(ctx context.Context, input commands.UpdateOrderInput) error {
	if e.Handlers == nil || e.Handlers.UpdateOrder == nil {
		return errNotWired
	}
	return e.Handlers.UpdateOrder.Execute(ctx, input)
}

func (e *CommandExecutor) DeleteOrder(ctx context.Context, input commands.DeleteOrderInput) error {
	if e.Handlers == nil || e.Handlers.DeleteOrder == nil {
		return errNotWired
	}
	return e.Handlers.DeleteOrder.Execute(ctx, input)
}

func (e *CommandExecutor) ListOrders(ctx context.Context, input queries.OrderListInput) ([]orderboard.CustomerOrder, error) {
	if e.Handlers == nil || e.Handlers.Orders == nil {
		return nil, errNotWired
	}
	return e.Handlers.Orders.Query(ctx, input)
}

func (e *CommandExecutor) CreateDashboard(ctx context.Context, input commands.CreateDashboardInput) error {
	if e.Handlers == nil || e.Handlers.CreateDashboard == nil {
		return errNotWired
	}
	return e.Handlers.CreateDashboard.Execute(ctx, input)
}

func (e *CommandExecutor) UpdateDashboard(ctx context.Context, input commands.UpdateDashboardInput) error {
	if e.Handlers == nil || e.Handlers.UpdateDashboard == nil {
		return errNotWired
	}
	return e.Handlers.UpdateDashboard.Execute(ctx, input)
}

func (e *CommandExecutor) DeleteDashboard(ctx context.Context, input commands.DeleteDashboardInput) error {
	if e.Handlers == nil || e.Handlers.DeleteDashboard == nil {
		return errNotWired
	}
	return e.Handlers.DeleteDashboard.Execute(ctx, input)
}

func (e *CommandExecutor) ListDashboards(ctx context.Context, input queries.DashboardListInput) (queries.DashboardListResult, error) {
	if e.Handlers == nil || e.Handlers.Dashboards == nil {
		return queries.DashboardListResult{}, errNotWired
	}
	return e.Handlers.Dashboards.Query(ctx, input)
}

func (e *CommandExecutor) ResolveDashboard(ctx context.Context, input queries.DashboardInput) (orderboard.ResolvedDashboard, error) {
	if e.Handlers == nil || e.Handlers.Dashboard == nil {
		return orderboard.ResolvedDashboard{}, errNotWired
	}
	return e.Handlers.Dashboard.Query(ctx, input)
}

func (e *CommandExecutor) AddWidget(ctx context.Context, input commands.AddWidgetInput) error {
	if e.Handlers == nil || e.Handlers.AddWidget == nil {
		return errNotWired
	}
	return e.Handlers.AddWidget.Execute(ctx, input)
}

func (e *CommandExecutor) UpdateWidget(ctx context.Context, input commands.UpdateWidgetInput) error {
	if e.Handlers == nil || e.Handlers.UpdateWidget == nil {
		return errNotWired
	}
	return e.Handlers.UpdateWidget.Execute(ctx, input)
}

func (e *CommandExecutor) RemoveWidget(ctx context.Context, input commands.RemoveWidgetInput) error {
	if e.Handlers == nil || e.Handlers.RemoveWidget == nil {
		return errNotWired
	}
	return e.Handlers.RemoveWidget.Execute(ctx, input)
}

func (e *CommandExecutor) MoveWidget(ctx context.Context, input commands.MoveWidgetInput) error {
	if e.Handlers == nil || e.Handlers.MoveWidget == nil {
		return errNotWired
	}
	return e.Handlers.MoveWidget.Execute(ctx, input)
}

func (e *CommandExecutor) WidgetData(ctx context.Context, input queries.WidgetDataInput) (orderboard.WidgetData, error) {
	if e.Handlers == nil || e.Handlers.WidgetData == nil {
		return nil, errNotWired
	}
	return e.Handlers.WidgetData.Query(ctx, input)
}

func (e *CommandExecutor) SetDateFilter(ctx context.Context, input commands.SetDateFilterInput) error {
	if e.Handlers == nil || e.Handlers.SetDateFilter == nil {
		return errNotWired
	}
	return e.Handlers.SetDateFilter.Execute(ctx, input)
}

func (e *CommandExecutor) SelectWidget(ctx context.Context, input commands.SelectWidgetInput) error {
	if e.Handlers == nil || e.Handlers.SelectWidget == nil {
		return errNotWired
	}
	return e.Handlers.SelectWidget.Execute(ctx, input)
}

func (e *CommandExecutor) SetConfiguring(ctx context.Context, input commands.SetConfiguringInput) error {
	if e.Handlers == nil || e.Handlers.SetConfiguring == nil {
		return errNotWired
	}
	return e.Handlers.SetConfiguring.Execute(ctx, input)
}

func (e *CommandExecutor) OpenDashboard(ctx context.Context, input commands.OpenDashboardInput) error {
	if e.Handlers == nil || e.Handlers.OpenDashboard == nil {
		return errNotWired
	}
	return e.Handlers.OpenDashboard.Execute(ctx, input)
}
