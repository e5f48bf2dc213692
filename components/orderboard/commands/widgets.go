package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	orderboard "github.com/goliatone/go-orderboard/components/orderboard"
)

// AddWidgetInput places a new widget of the given kind on a dashboard.
type AddWidgetInput struct {
	UserID      string                `json:"user_id"`
	DashboardID string                `json:"dashboard_id"`
	Type        orderboard.WidgetType `json:"type"`
	X           int                   `json:"x"`
	Y           int                   `json:"y"`
}

type widgetWriteService interface {
	AddWidget(ctx context.Context, userID, dashboardID string, t orderboard.WidgetType, x, y int) (orderboard.WidgetConfig, error)
	UpdateWidget(ctx context.Context, userID, dashboardID, widgetID string, patch orderboard.WidgetPatch) error
	RemoveWidget(ctx context.Context, userID, dashboardID, widgetID string) error
	MoveWidget(ctx context.Context, userID, dashboardID, widgetID string, x, y int) error
}

// AddWidgetCommand wraps Service.AddWidget.
type AddWidgetCommand struct {
	service   widgetWriteService
	telemetry Telemetry
}

// NewAddWidgetCommand builds a command instance.
func NewAddWidgetCommand(service widgetWriteService, telemetry Telemetry) *AddWidgetCommand {
	return &AddWidgetCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[AddWidgetInput] = (*AddWidgetCommand)(nil)

// Execute creates the widget from kind defaults.
func (c *AddWidgetCommand) Execute(ctx context.Context, msg AddWidgetInput) error {
	if c.service == nil {
		return errors.New("add widget command requires service")
	}
	cfg, err := c.service.AddWidget(ctx, msg.UserID, msg.DashboardID, msg.Type, msg.X, msg.Y)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "orderboard.command.widget.add", map[string]any{
		"widget_id":   cfg.ID,
		"widget_type": string(msg.Type),
	})
	return nil
}

// UpdateWidgetInput carries a partial widget configuration update.
type UpdateWidgetInput struct {
	UserID      string                 `json:"user_id"`
	DashboardID string                 `json:"dashboard_id"`
	WidgetID    string                 `json:"widget_id"`
	Patch       orderboard.WidgetPatch `json:"patch"`
}

// UpdateWidgetCommand wraps Service.UpdateWidget.
type UpdateWidgetCommand struct {
	service   widgetWriteService
	telemetry Telemetry
}

// NewUpdateWidgetCommand builds a command instance.
func NewUpdateWidgetCommand(service widgetWriteService, telemetry Telemetry) *UpdateWidgetCommand {
	return &UpdateWidgetCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[UpdateWidgetInput] = (*UpdateWidgetCommand)(nil)

// Execute validates and merges the widget patch.
func (c *UpdateWidgetCommand) Execute(ctx context.Context, msg UpdateWidgetInput) error {
	if c.service == nil {
		return errors.New("update widget command requires service")
	}
	if err := c.service.UpdateWidget(ctx, msg.UserID, msg.DashboardID, msg.WidgetID, msg.Patch); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "orderboard.command.widget.update", map[string]any{"widget_id": msg.WidgetID})
	return nil
}

// RemoveWidgetInput identifies the widget to drop.
type RemoveWidgetInput struct {
	UserID      string `json:"user_id"`
	DashboardID string `json:"dashboard_id"`
	WidgetID    string `json:"widget_id"`
}

// RemoveWidgetCommand wraps Service.RemoveWidget.
type RemoveWidgetCommand struct {
	service   widgetWriteService
	telemetry Telemetry
}

// NewRemoveWidgetCommand builds a command instance.
func NewRemoveWidgetCommand(service widgetWriteService, telemetry Telemetry) *RemoveWidgetCommand {
	return &RemoveWidgetCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[RemoveWidgetInput] = (*RemoveWidgetCommand)(nil)

// Execute removes the widget.
func (c *RemoveWidgetCommand) Execute(ctx context.Context, msg RemoveWidgetInput) error {
	if c.service == nil {
		return errors.New("remove widget command requires service")
	}
	if err := c.service.RemoveWidget(ctx, msg.UserID, msg.DashboardID, msg.WidgetID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "orderboard.command.widget.remove", map[string]any{"widget_id": msg.WidgetID})
	return nil
}

// MoveWidgetInput repositions a widget on the dashboard grid.
type MoveWidgetInput struct {
	UserID      string `json:"user_id"`
	DashboardID string `json:"dashboard_id"`
	WidgetID    string `json:"widget_id"`
	X           int    `json:"x"`
	Y           int    `json:"y"`
}

// MoveWidgetCommand wraps Service.MoveWidget.
type MoveWidgetCommand struct {
	service   widgetWriteService
	telemetry Telemetry
}

// NewMoveWidgetCommand builds a command instance.
func NewMoveWidgetCommand(service widgetWriteService, telemetry Telemetry) *MoveWidgetCommand {
	return &MoveWidgetCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[MoveWidgetInput] = (*MoveWidgetCommand)(nil)

// Execute updates the widget's grid position.
func (c *MoveWidgetCommand) Execute(ctx context.Context, msg MoveWidgetInput) error {
	if c.service == nil {
		return errors.New("move widget command requires service")
	}
	return c.service.MoveWidget(ctx, msg.UserID, msg.DashboardID, msg.WidgetID, msg.X, msg.Y)
}
