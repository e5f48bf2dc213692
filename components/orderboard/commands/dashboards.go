package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	orderboard "github.com/goliatone/go-orderboard/components/orderboard"
)

// CreateDashboardInput names a new dashboard for a user.
type CreateDashboardInput struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

type dashboardWriteService interface {
	CreateDashboard(ctx context.Context, userID, name string) (orderboard.Dashboard, error)
	UpdateDashboard(ctx context.Context, userID, dashboardID string, patch orderboard.DashboardPatch) error
	DeleteDashboard(ctx context.Context, userID, dashboardID string) error
}

// CreateDashboardCommand wraps Service.CreateDashboard.
type CreateDashboardCommand struct {
	service   dashboardWriteService
	telemetry Telemetry
}

// NewCreateDashboardCommand builds a command instance.
func NewCreateDashboardCommand(service dashboardWriteService, telemetry Telemetry) *CreateDashboardCommand {
	return &CreateDashboardCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[CreateDashboardInput] = (*CreateDashboardCommand)(nil)

// Execute creates the dashboard and makes it current.
func (c *CreateDashboardCommand) Execute(ctx context.Context, msg CreateDashboardInput) error {
	if c.service == nil {
		return errors.New("create dashboard command requires service")
	}
	dash, err := c.service.CreateDashboard(ctx, msg.UserID, msg.Name)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "orderboard.command.dashboard.create", map[string]any{"dashboard_id": dash.ID})
	return nil
}

// UpdateDashboardInput carries a rename or date filter change.
type UpdateDashboardInput struct {
	UserID      string                    `json:"user_id"`
	DashboardID string                    `json:"dashboard_id"`
	Patch       orderboard.DashboardPatch `json:"patch"`
}

// UpdateDashboardCommand wraps Service.UpdateDashboard.
type UpdateDashboardCommand struct {
	service   dashboardWriteService
	telemetry Telemetry
}

// NewUpdateDashboardCommand builds a command instance.
func NewUpdateDashboardCommand(service dashboardWriteService, telemetry Telemetry) *UpdateDashboardCommand {
	return &UpdateDashboardCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[UpdateDashboardInput] = (*UpdateDashboardCommand)(nil)

// Execute applies the dashboard patch.
func (c *UpdateDashboardCommand) Execute(ctx context.Context, msg UpdateDashboardInput) error {
	if c.service == nil {
		return errors.New("update dashboard command requires service")
	}
	if err := c.service.UpdateDashboard(ctx, msg.UserID, msg.DashboardID, msg.Patch); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "orderboard.command.dashboard.update", map[string]any{"dashboard_id": msg.DashboardID})
	return nil
}

// DeleteDashboardInput identifies the dashboard to remove.
type DeleteDashboardInput struct {
	UserID      string `json:"user_id"`
	DashboardID string `json:"dashboard_id"`
}

// DeleteDashboardCommand wraps Service.DeleteDashboard.
type DeleteDashboardCommand struct {
	service   dashboardWriteService
	telemetry Telemetry
}

// NewDeleteDashboardCommand builds a command instance.
func NewDeleteDashboardCommand(service dashboardWriteService, telemetry Telemetry) *DeleteDashboardCommand {
	return &DeleteDashboardCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[DeleteDashboardInput] = (*DeleteDashboardCommand)(nil)

// Execute removes the dashboard.
func (c *DeleteDashboardCommand) Execute(ctx context.Context, msg DeleteDashboardInput) error {
	if c.service == nil {
		return errors.New("delete dashboard command requires service")
	}
	if err := c.service.DeleteDashboard(ctx, msg.UserID, msg.DashboardID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "orderboard.command.dashboard.delete", map[string]any{"dashboard_id": msg.DashboardID})
	return nil
}
