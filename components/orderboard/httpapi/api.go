package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	gocommand "github.com/goliatone/go-command"
	orderboard "github.com/goliatone/go-orderboard/components/orderboard"
	"github.com/goliatone/go-orderboard/components/orderboard/commands"
	"github.com/goliatone/go-orderboard/components/orderboard/queries"
)

// Handlers exposes HTTP endpoints backed by shared commands and queries.
type Handlers struct {
	CreateOrder     gocommand.Commander[commands.CreateOrderInput]
	UpdateOrder     gocommand.Commander[commands.UpdateOrderInput]
	DeleteOrder     gocommand.Commander[commands.DeleteOrderInput]
	CreateDashboard gocommand.Commander[commands.CreateDashboardInput]
	UpdateDashboard gocommand.Commander[commands.UpdateDashboardInput]
	DeleteDashboard gocommand.Commander[commands.DeleteDashboardInput]
	AddWidget       gocommand.Commander[commands.AddWidgetInput]
	UpdateWidget    gocommand.Commander[commands.UpdateWidgetInput]
	RemoveWidget    gocommand.Commander[commands.RemoveWidgetInput]
	MoveWidget      gocommand.Commander[commands.MoveWidgetInput]
	SetDateFilter   gocommand.Commander[commands.SetDateFilterInput]
	SelectWidget    gocommand.Commander[commands.SelectWidgetInput]
	SetConfiguring  gocommand.Commander[commands.SetConfiguringInput]
	OpenDashboard   gocommand.Commander[commands.OpenDashboardInput]

	Dashboards gocommand.Querier[queries.DashboardListInput, queries.DashboardListResult]
	Dashboard  gocommand.Querier[queries.DashboardInput, orderboard.ResolvedDashboard]
	WidgetData gocommand.Querier[queries.WidgetDataInput, orderboard.WidgetData]
	Orders     gocommand.Querier[queries.OrderListInput, []orderboard.CustomerOrder]
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handlers) HandleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var payload commands.CreateOrderInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.CreateOrder.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handlers) HandleUpdateOrder(w http.ResponseWriter, r *http.Request, orderID string) {
	var payload commands.UpdateOrderInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	payload.OrderID = orderID
	if err := h.UpdateOrder.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleDeleteOrder(w http.ResponseWriter, r *http.Request, userID, orderID string) {
	input := commands.DeleteOrderInput{UserID: userID, OrderID: orderID}
	if err := h.DeleteOrder.Execute(r.Context(), input); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) HandleListOrders(w http.ResponseWriter, r *http.Request) {
	input := queries.OrderListInput{
		UserID:   r.URL.Query().Get("user_id"),
		Filtered: r.URL.Query().Get("filtered") == "true",
	}
	orders, err := h.Orders.Query(r.Context(), input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handlers) HandleCreateDashboard(w http.ResponseWriter, r *http.Request) {
	var payload commands.CreateDashboardInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.CreateDashboard.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handlers) HandleUpdateDashboard(w http.ResponseWriter, r *http.Request, dashboardID string) {
	var payload commands.UpdateDashboardInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	payload.DashboardID = dashboardID
	if err := h.UpdateDashboard.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleDeleteDashboard(w http.ResponseWriter, r *http.Request, userID, dashboardID string) {
	input := commands.DeleteDashboardInput{UserID: userID, DashboardID: dashboardID}
	if err := h.DeleteDashboard.Execute(r.Context(), input); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) HandleListDashboards(w http.ResponseWriter, r *http.Request) {
	input := queries.DashboardListInput{UserID: r.URL.Query().Get("user_id")}
	result, err := h.Dashboards.Query(r.Context(), input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handlers) HandleResolveDashboard(w http.ResponseWriter, r *http.Request, dashboardID string) {
	input := queries.DashboardInput{
		UserID:      r.URL.Query().Get("user_id"),
		DashboardID: dashboardID,
	}
	resolved, err := h.Dashboard.Query(r.Context(), input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, resolved)
}

func (h *Handlers) HandleAddWidget(w http.ResponseWriter, r *http.Request) {
	var payload commands.AddWidgetInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.AddWidget.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handlers) HandleUpdateWidget(w http.ResponseWriter, r *http.Request, widgetID string) {
	var payload commands.UpdateWidgetInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	payload.WidgetID = widgetID
	if err := h.UpdateWidget.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleRemoveWidget(w http.ResponseWriter, r *http.Request, userID, dashboardID, widgetID string) {
	input := commands.RemoveWidgetInput{UserID: userID, DashboardID: dashboardID, WidgetID: widgetID}
	if err := h.RemoveWidget.Execute(r.Context(), input); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) HandleMoveWidget(w http.ResponseWriter, r *http.Request) {
	var payload commands.MoveWidgetInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.MoveWidget.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleWidgetData(w http.ResponseWriter, r *http.Request, dashboardID, widgetID string) {
	input := queries.WidgetDataInput{
		UserID:      r.URL.Query().Get("user_id"),
		DashboardID: dashboardID,
		WidgetID:    widgetID,
	}
	if page := r.URL.Query().Get("page"); page != "" {
		input.Page, _ = strconv.Atoi(page)
	}
	data, err := h.WidgetData.Query(r.Context(), input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (h *Handlers) HandleSetDateFilter(w http.ResponseWriter, r *http.Request) {
	var payload commands.SetDateFilterInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.SetDateFilter.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleSelectWidget(w http.ResponseWriter, r *http.Request) {
	var payload commands.SelectWidgetInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.SelectWidget.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleSetConfiguring(w http.ResponseWriter, r *http.Request) {
	var payload commands.SetConfiguringInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.SetConfiguring.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleOpenDashboard(w http.ResponseWriter, r *http.Request) {
	var payload commands.OpenDashboardInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.OpenDashboard.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}
