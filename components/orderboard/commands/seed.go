package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	orderboard "github.com/goliatone/go-orderboard/components/orderboard"
)

// SeedDemoDataInput controls demo data generation.
type SeedDemoDataInput struct {
	UserID    string `json:"user_id"`
	Orders    int    `json:"orders"`
	Seed      int64  `json:"seed"`
	Dashboard string `json:"dashboard"`
}

type seedService interface {
	CreateOrder(ctx context.Context, userID string, draft orderboard.OrderDraft) (orderboard.CustomerOrder, error)
	CreateDashboard(ctx context.Context, userID, name string) (orderboard.Dashboard, error)
	AddWidget(ctx context.Context, userID, dashboardID string, t orderboard.WidgetType, x, y int) (orderboard.WidgetConfig, error)
}

// SeedDemoDataCommand fills a user's workspace with deterministic demo
// orders and a starter dashboard carrying one widget of each kind.
type SeedDemoDataCommand struct {
	service   seedService
	telemetry Telemetry
}

// NewSeedDemoDataCommand builds a command instance.
func NewSeedDemoDataCommand(service seedService, telemetry Telemetry) *SeedDemoDataCommand {
	return &SeedDemoDataCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SeedDemoDataInput] = (*SeedDemoDataCommand)(nil)

// Execute runs the seed pipeline.
func (c *SeedDemoDataCommand) Execute(ctx context.Context, msg SeedDemoDataInput) error {
	if c.service == nil {
		return errors.New("seed command requires service")
	}
	count := msg.Orders
	if count <= 0 {
		count = 25
	}
	for _, draft := range orderboard.DemoOrderDrafts(count, msg.Seed) {
		if _, err := c.service.CreateOrder(ctx, msg.UserID, draft); err != nil {
			return err
		}
	}

	name := msg.Dashboard
	if name == "" {
		name = "Demo Dashboard"
	}
	dash, err := c.service.CreateDashboard(ctx, msg.UserID, name)
	if err != nil {
		return err
	}
	for i, t := range orderboard.WidgetTypes() {
		if _, err := c.service.AddWidget(ctx, msg.UserID, dash.ID, t, (i%3)*5, (i/3)*5); err != nil {
			return err
		}
	}

	c.telemetry.Record(ctx, "orderboard.command.seed", map[string]any{
		"user_id":      msg.UserID,
		"orders":       count,
		"dashboard_id": dash.ID,
	})
	return nil
}
