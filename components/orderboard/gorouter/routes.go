package gorouter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	router "github.com/goliatone/go-router"

	orderboard "github.com/goliatone/go-orderboard/components/orderboard"
	"github.com/goliatone/go-orderboard/components/orderboard/commands"
	"github.com/goliatone/go-orderboard/components/orderboard/httpapi"
	"github.com/goliatone/go-orderboard/components/orderboard/queries"
)

// UserResolver extracts the acting user id from a router.Context.
type UserResolver func(router.Context) string

// Config wires go-router with the orderboard API and change broadcast.
type Config[T any] struct {
	Router       router.Router[T]
	API          httpapi.Executor
	Broadcast    *orderboard.BroadcastHook
	UserResolver UserResolver
	BasePath     string
	Routes       RouteConfig
}

// RouteConfig customizes the relative paths used for orderboard endpoints.
type RouteConfig struct {
	Orders      string
	OrderID     string
	Dashboards  string
	DashboardID string
	Widgets     string
	WidgetID    string
	WidgetData  string
	WidgetMove  string
	Session     string
	DateFilter  string
	Select      string
	Configure   string
	Open        string
	WebSocket   string
}

func (c Config[T]) routes() RouteConfig {
	routes := c.Routes
	if routes.Orders == "" {
		routes.Orders = "/orders"
	}
	if routes.OrderID == "" {
		routes.OrderID = "/orders/:id"
	}
	if routes.Dashboards == "" {
		routes.Dashboards = "/dashboards"
	}
	if routes.DashboardID == "" {
		routes.DashboardID = "/dashboards/:id"
	}
	if routes.Widgets == "" {
		routes.Widgets = "/dashboards/:id/widgets"
	}
	if routes.WidgetID == "" {
		routes.WidgetID = "/dashboards/:id/widgets/:widgetId"
	}
	if routes.WidgetData == "" {
		routes.WidgetData = "/dashboards/:id/widgets/:widgetId/data"
	}
	if routes.WidgetMove == "" {
		routes.WidgetMove = "/dashboards/:id/widgets/:widgetId/move"
	}
	if routes.Session == "" {
		routes.Session = "/session"
	}
	if routes.DateFilter == "" {
		routes.DateFilter = "/session/date-filter"
	}
	if routes.Select == "" {
		routes.Select = "/session/select"
	}
	if routes.Configure == "" {
		routes.Configure = "/session/configure"
	}
	if routes.Open == "" {
		routes.Open = "/session/open"
	}
	if routes.WebSocket == "" {
		routes.WebSocket = "/ws"
	}
	return routes
}

// Register mounts orderboard routes (REST plus WebSocket) on a go-router
// router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.API == nil {
		return errors.New("gorouter: api executor is required")
	}
	routes := cfg.routes()
	base := cfg.BasePath
	if base == "" {
		base = "/board"
	}
	resolver := cfg.UserResolver
	if resolver == nil {
		resolver = defaultUserResolver
	}

	group := cfg.Router.Group(base)

	registerOrders(group, cfg.API, resolver, routes)
	registerDashboards(group, cfg.API, resolver, routes)
	registerWidgets(group, cfg.API, resolver, routes)
	registerSession(group, cfg.API, resolver, routes)

	if cfg.Broadcast != nil {
		registerWebSocket(group, cfg.Broadcast, routes.WebSocket)
	}

	return nil
}

func registerOrders[T any](r router.Router[T], api httpapi.Executor, resolver UserResolver, routes RouteConfig) {
	r.Get(routes.Orders, router.WrapHandler(func(ctx router.Context) error {
		orders, err := api.ListOrders(ctx.Context(), queries.OrderListInput{
			UserID:   resolver(ctx),
			Filtered: ctx.Query("filtered") == "true",
		})
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, orders)
	}))

	r.Post(routes.Orders, router.WrapHandler(func(ctx router.Context) error {
		var draft orderboard.OrderDraft
		if err := json.Unmarshal(ctx.Body(), &draft); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		input := commands.CreateOrderInput{UserID: resolver(ctx), Draft: draft}
		if err := api.CreateOrder(ctx.Context(), input); err != nil {
			return respondError(ctx, http.StatusUnprocessableEntity, err)
		}
		return ctx.JSON(http.StatusCreated, map[string]string{"status": "created"})
	}))

	r.Put(routes.OrderID, router.WrapHandler(func(ctx router.Context) error {
		var patch orderboard.OrderPatch
		if err := json.Unmarshal(ctx.Body(), &patch); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		input := commands.UpdateOrderInput{
			UserID:  resolver(ctx),
			OrderID: ctx.Param("id"),
			Patch:   patch,
		}
		if err := api.UpdateOrder(ctx.Context(), input); err != nil {
			return respondError(ctx, http.StatusUnprocessableEntity, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "updated"})
	}))

	r.Delete(routes.OrderID, router.WrapHandler(func(ctx router.Context) error {
		input := commands.DeleteOrderInput{UserID: resolver(ctx), OrderID: ctx.Param("id")}
		if err := api.DeleteOrder(ctx.Context(), input); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusNoContent, map[string]string{"status": "removed"})
	}))
}

func registerDashboards[T any](r router.Router[T], api httpapi.Executor, resolver UserResolver, routes RouteConfig) {
	r.Get(routes.Dashboards, router.WrapHandler(func(ctx router.Context) error {
		result, err := api.ListDashboards(ctx.Context(), queries.DashboardListInput{UserID: resolver(ctx)})
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, result)
	}))

	r.Post(routes.Dashboards, router.WrapHandler(func(ctx router.Context) error {
		var payload struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		input := commands.CreateDashboardInput{UserID: resolver(ctx), Name: payload.Name}
		if err := api.CreateDashboard(ctx.Context(), input); err != nil {
			return respondError(ctx, http.StatusUnprocessableEntity, err)
		}
		return ctx.JSON(http.StatusCreated, map[string]string{"status": "created"})
	}))

	r.Get(routes.DashboardID, router.WrapHandler(func(ctx router.Context) error {
		resolved, err := api.ResolveDashboard(ctx.Context(), queries.DashboardInput{
			UserID:      resolver(ctx),
			DashboardID: ctx.Param("id"),
		})
		if err != nil {
			return respondError(ctx, http.StatusNotFound, err)
		}
		return ctx.JSON(http.StatusOK, resolved)
	}))

	r.Put(routes.DashboardID, router.WrapHandler(func(ctx router.Context) error {
		var patch orderboard.DashboardPatch
		if err := json.Unmarshal(ctx.Body(), &patch); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		input := commands.UpdateDashboardInput{
			UserID:      resolver(ctx),
			DashboardID: ctx.Param("id"),
			Patch:       patch,
		}
		if err := api.UpdateDashboard(ctx.Context(), input); err != nil {
			return respondError(ctx, http.StatusUnprocessableEntity, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "updated"})
	}))

	r.Delete(routes.DashboardID, router.WrapHandler(func(ctx router.Context) error {
		input := commands.DeleteDashboardInput{UserID: resolver(ctx), DashboardID: ctx.Param("id")}
		if err := api.DeleteDashboard(ctx.Context(), input); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusNoContent, map[string]string{"status": "removed"})
	}))
}

func registerWidgets[T any](r router.Router[T], api httpapi.Executor, resolver UserResolver, routes RouteConfig) {
	r.Post(routes.Widgets, router.WrapHandler(func(ctx router.Context) error {
		var payload struct {
			Type orderboard.WidgetType `json:"type"`
			X    int                   `json:"x"`
			Y    int                   `json:"y"`
		}
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		input := commands.AddWidgetInput{
			UserID:      resolver(ctx),
			DashboardID: ctx.Param("id"),
			Type:        payload.Type,
			X:           payload.X,
			Y:           payload.Y,
		}
		if err := api.AddWidget(ctx.Context(), input); err != nil {
			return respondError(ctx, http.StatusUnprocessableEntity, err)
		}
		return ctx.JSON(http.StatusCreated, map[string]string{"status": "created"})
	}))

	r.Put(routes.WidgetID, router.WrapHandler(func(ctx router.Context) error {
		var patch orderboard.WidgetPatch
		if err := json.Unmarshal(ctx.Body(), &patch); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		input := commands.UpdateWidgetInput{
			UserID:      resolver(ctx),
			DashboardID: ctx.Param("id"),
			WidgetID:    ctx.Param("widgetId"),
			Patch:       patch,
		}
		if err := api.UpdateWidget(ctx.Context(), input); err != nil {
			return respondError(ctx, http.StatusUnprocessableEntity, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "updated"})
	}))

	r.Delete(routes.WidgetID, router.WrapHandler(func(ctx router.Context) error {
		input := commands.RemoveWidgetInput{
			UserID:      resolver(ctx),
			DashboardID: ctx.Param("id"),
			WidgetID:    ctx.Param("widgetId"),
		}
		if err := api.RemoveWidget(ctx.Context(), input); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusNoContent, map[string]string{"status": "removed"})
	}))

	r.Post(routes.WidgetMove, router.WrapHandler(func(ctx router.Context) error {
		var payload struct {
			X int `json:"x"`
			Y int `json:"y"`
		}
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		input := commands.MoveWidgetInput{
			UserID:      resolver(ctx),
			DashboardID: ctx.Param("id"),
			WidgetID:    ctx.Param("widgetId"),
			X:           payload.X,
			Y:           payload.Y,
		}
		if err := api.MoveWidget(ctx.Context(), input); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "moved"})
	}))

	r.Get(routes.WidgetData, router.WrapHandler(func(ctx router.Context) error {
		input := queries.WidgetDataInput{
			UserID:      resolver(ctx),
			DashboardID: ctx.Param("id"),
			WidgetID:    ctx.Param("widgetId"),
		}
		if page := ctx.Query("page"); page != "" {
			input.Page = atoiDefault(page, 1)
		}
		data, err := api.WidgetData(ctx.Context(), input)
		if err != nil {
			return respondError(ctx, http.StatusNotFound, err)
		}
		return ctx.JSON(http.StatusOK, data)
	}))
}

func registerSession[T any](r router.Router[T], api httpapi.Executor, resolver UserResolver, routes RouteConfig) {
	r.Post(routes.DateFilter, router.WrapHandler(func(ctx router.Context) error {
		var payload struct {
			Filter orderboard.DateFilter `json:"filter"`
		}
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		input := commands.SetDateFilterInput{UserID: resolver(ctx), Filter: payload.Filter}
		if err := api.SetDateFilter(ctx.Context(), input); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "filtered"})
	}))

	r.Post(routes.Select, router.WrapHandler(func(ctx router.Context) error {
		var payload struct {
			WidgetID string `json:"widgetId"`
		}
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		input := commands.SelectWidgetInput{UserID: resolver(ctx), WidgetID: payload.WidgetID}
		if err := api.SelectWidget(ctx.Context(), input); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "selected"})
	}))

	r.Post(routes.Configure, router.WrapHandler(func(ctx router.Context) error {
		var payload struct {
			Configuring bool `json:"configuring"`
		}
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		input := commands.SetConfiguringInput{UserID: resolver(ctx), Configuring: payload.Configuring}
		if err := api.SetConfiguring(ctx.Context(), input); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "configured"})
	}))

	r.Post(routes.Open, router.WrapHandler(func(ctx router.Context) error {
		var payload struct {
			DashboardID string `json:"dashboardId"`
		}
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		input := commands.OpenDashboardInput{UserID: resolver(ctx), DashboardID: payload.DashboardID}
		if err := api.OpenDashboard(ctx.Context(), input); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "opened"})
	}))
}

func registerWebSocket[T any](r router.Router[T], hook *orderboard.BroadcastHook, path string) {
	cfg := router.DefaultWebSocketConfig()
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		events, cancel := hook.Subscribe()
		defer cancel()
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := ws.WriteJSON(event); err != nil {
					return err
				}
			case <-ws.Context().Done():
				return ws.Close()
			}
		}
	})
}

func defaultUserResolver(ctx router.Context) string {
	if v, ok := ctx.Locals("user_id").(string); ok {
		return v
	}
	return ctx.Query("user_id")
}

func respondError(ctx router.Context, status int, err error) error {
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}

func atoiDefault(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
