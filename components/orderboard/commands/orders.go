package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	orderboard "github.com/goliatone/go-orderboard/components/orderboard"
)

// CreateOrderInput carries a validated order draft for a user.
type CreateOrderInput struct {
	UserID string                `json:"user_id"`
	Draft  orderboard.OrderDraft `json:"draft"`
}

type orderWriteService interface {
	CreateOrder(ctx context.Context, userID string, draft orderboard.OrderDraft) (orderboard.CustomerOrder, error)
	UpdateOrder(ctx context.Context, userID, orderID string, patch orderboard.OrderPatch) error
	DeleteOrder(ctx context.Context, userID, orderID string) error
}

// CreateOrderCommand wraps Service.CreateOrder so transports can submit order
// forms without linking against the service.
type CreateOrderCommand struct {
	service   orderWriteService
	telemetry Telemetry
}

// NewCreateOrderCommand builds a command instance.
func NewCreateOrderCommand(service orderWriteService, telemetry Telemetry) *CreateOrderCommand {
	return &CreateOrderCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[CreateOrderInput] = (*CreateOrderCommand)(nil)

// Execute validates and stores the order.
func (c *CreateOrderCommand) Execute(ctx context.Context, msg CreateOrderInput) error {
	if c.service == nil {
		return errors.New("create order command requires service")
	}
	order, err := c.service.CreateOrder(ctx, msg.UserID, msg.Draft)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "orderboard.command.order.create", map[string]any{"order_id": order.ID})
	return nil
}

// UpdateOrderInput identifies the order and carries the partial update.
type UpdateOrderInput struct {
	UserID  string                `json:"user_id"`
	OrderID string                `json:"order_id"`
	Patch   orderboard.OrderPatch `json:"patch"`
}

// UpdateOrderCommand wraps Service.UpdateOrder.
type UpdateOrderCommand struct {
	service   orderWriteService
	telemetry Telemetry
}

// NewUpdateOrderCommand builds a command instance.
func NewUpdateOrderCommand(service orderWriteService, telemetry Telemetry) *UpdateOrderCommand {
	return &UpdateOrderCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[UpdateOrderInput] = (*UpdateOrderCommand)(nil)

// Execute merges the patch into the order.
func (c *UpdateOrderCommand) Execute(ctx context.Context, msg UpdateOrderInput) error {
	if c.service == nil {
		return errors.New("update order command requires service")
	}
	if err := c.service.UpdateOrder(ctx, msg.UserID, msg.OrderID, msg.Patch); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "orderboard.command.order.update", map[string]any{"order_id": msg.OrderID})
	return nil
}

// DeleteOrderInput identifies the order to remove.
type DeleteOrderInput struct {
	UserID  string `json:"user_id"`
	OrderID string `json:"order_id"`
}

// DeleteOrderCommand wraps Service.DeleteOrder.
type DeleteOrderCommand struct {
	service   orderWriteService
	telemetry Telemetry
}

// NewDeleteOrderCommand builds a command instance.
func NewDeleteOrderCommand(service orderWriteService, telemetry Telemetry) *DeleteOrderCommand {
	return &DeleteOrderCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[DeleteOrderInput] = (*DeleteOrderCommand)(nil)

// Execute removes the order.
func (c *DeleteOrderCommand) Execute(ctx context.Context, msg DeleteOrderInput) error {
	if c.service == nil {
		return errors.New("delete order command requires service")
	}
	if err := c.service.DeleteOrder(ctx, msg.UserID, msg.OrderID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "orderboard.command.order.delete", map[string]any{"order_id": msg.OrderID})
	return nil
}
