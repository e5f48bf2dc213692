package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	orderboard "github.com/goliatone/go-orderboard/components/orderboard"
)

type sessionService interface {
	ActivateUser(ctx context.Context, userID string)
	SetCurrentDashboard(ctx context.Context, userID, dashboardID string)
	SetConfiguring(ctx context.Context, userID string, configuring bool)
	SelectWidget(ctx context.Context, userID, widgetID string)
	SetDateFilter(ctx context.Context, userID string, filter orderboard.DateFilter)
}

// SetDateFilterInput changes the global order window for a user.
type SetDateFilterInput struct {
	UserID string                `json:"user_id"`
	Filter orderboard.DateFilter `json:"filter"`
}

// SetDateFilterCommand wraps Service.SetDateFilter.
type SetDateFilterCommand struct {
	service   sessionService
	telemetry Telemetry
}

// NewSetDateFilterCommand builds a command instance.
func NewSetDateFilterCommand(service sessionService, telemetry Telemetry) *SetDateFilterCommand {
	return &SetDateFilterCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SetDateFilterInput] = (*SetDateFilterCommand)(nil)

// Execute applies the filter.
func (c *SetDateFilterCommand) Execute(ctx context.Context, msg SetDateFilterInput) error {
	if c.service == nil {
		return errors.New("date filter command requires service")
	}
	c.service.SetDateFilter(ctx, msg.UserID, msg.Filter)
	c.telemetry.Record(ctx, "orderboard.command.session.filter", map[string]any{"filter": string(msg.Filter)})
	return nil
}

// SelectWidgetInput marks a widget active; an empty widget id clears the
// selection.
type SelectWidgetInput struct {
	UserID   string `json:"user_id"`
	WidgetID string `json:"widget_id"`
}

// SelectWidgetCommand wraps Service.SelectWidget.
type SelectWidgetCommand struct {
	service sessionService
}

// NewSelectWidgetCommand builds a command instance.
func NewSelectWidgetCommand(service sessionService) *SelectWidgetCommand {
	return &SelectWidgetCommand{service: service}
}

var _ gocommand.Commander[SelectWidgetInput] = (*SelectWidgetCommand)(nil)

// Execute updates the selection.
func (c *SelectWidgetCommand) Execute(ctx context.Context, msg SelectWidgetInput) error {
	if c.service == nil {
		return errors.New("select widget command requires service")
	}
	c.service.SelectWidget(ctx, msg.UserID, msg.WidgetID)
	return nil
}

// SetConfiguringInput toggles configure mode.
type SetConfiguringInput struct {
	UserID      string `json:"user_id"`
	Configuring bool   `json:"configuring"`
}

// SetConfiguringCommand wraps Service.SetConfiguring.
type SetConfiguringCommand struct {
	service sessionService
}

// NewSetConfiguringCommand builds a command instance.
func NewSetConfiguringCommand(service sessionService) *SetConfiguringCommand {
	return &SetConfiguringCommand{service: service}
}

var _ gocommand.Commander[SetConfiguringInput] = (*SetConfiguringCommand)(nil)

// Execute toggles configure mode, clearing the selection.
func (c *SetConfiguringCommand) Execute(ctx context.Context, msg SetConfiguringInput) error {
	if c.service == nil {
		return errors.New("configure command requires service")
	}
	c.service.SetConfiguring(ctx, msg.UserID, msg.Configuring)
	return nil
}

// OpenDashboardInput switches the session's current dashboard.
type OpenDashboardInput struct {
	UserID      string `json:"user_id"`
	DashboardID string `json:"dashboard_id"`
}

// OpenDashboardCommand wraps Service.SetCurrentDashboard.
type OpenDashboardCommand struct {
	service sessionService
}

// NewOpenDashboardCommand builds a command instance.
func NewOpenDashboardCommand(service sessionService) *OpenDashboardCommand {
	return &OpenDashboardCommand{service: service}
}

var _ gocommand.Commander[OpenDashboardInput] = (*OpenDashboardCommand)(nil)

// Execute opens the dashboard.
func (c *OpenDashboardCommand) Execute(ctx context.Context, msg OpenDashboardInput) error {
	if c.service == nil {
		return errors.New("open dashboard command requires service")
	}
	c.service.SetCurrentDashboard(ctx, msg.UserID, msg.DashboardID)
	return nil
}

// ActivateUserInput switches the active user.
type ActivateUserInput struct {
	UserID string `json:"user_id"`
}

// ActivateUserCommand wraps Service.ActivateUser: the user's first dashboard
// becomes current and configure mode plus selection reset.
type ActivateUserCommand struct {
	service   sessionService
	telemetry Telemetry
}

// NewActivateUserCommand builds a command instance.
func NewActivateUserCommand(service sessionService, telemetry Telemetry) *ActivateUserCommand {
	return &ActivateUserCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ActivateUserInput] = (*ActivateUserCommand)(nil)

// Execute resets the session for the user.
func (c *ActivateUserCommand) Execute(ctx context.Context, msg ActivateUserInput) error {
	if c.service == nil {
		return errors.New("activate user command requires service")
	}
	c.service.ActivateUser(ctx, msg.UserID)
	c.telemetry.Record(ctx, "orderboard.command.session.activate", map[string]any{"user_id": msg.UserID})
	return nil
}
