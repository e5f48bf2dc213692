package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	orderboard "github.com/goliatone/go-orderboard/components/orderboard"
)

// OrderListInput identifies a user's order collection. When Filtered is set
// the session's global date filter is applied.
type OrderListInput struct {
	UserID   string `json:"user_id"`
	Filtered bool   `json:"filtered"`
}

type orderReadService interface {
	Orders(userID string) []orderboard.CustomerOrder
	FilteredOrders(userID string) []orderboard.CustomerOrder
}

// OrderListQuery lists a user's orders.
type OrderListQuery struct {
	service orderReadService
}

// NewOrderListQuery builds the query.
func NewOrderListQuery(service orderReadService) *OrderListQuery {
	return &OrderListQuery{service: service}
}

var _ gocommand.Querier[OrderListInput, []orderboard.CustomerOrder] = (*OrderListQuery)(nil)

// Query lists the orders.
func (q *OrderListQuery) Query(_ context.Context, input OrderListInput) ([]orderboard.CustomerOrder, error) {
	if input.Filtered {
		return q.service.FilteredOrders(input.UserID), nil
	}
	return q.service.Orders(input.UserID), nil
}
