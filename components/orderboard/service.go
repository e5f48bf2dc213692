package orderboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// newWidgetID is swappable in tests for deterministic ids.
var newWidgetID = uuid.NewString

var (
	errMissingUser       = errors.New("orderboard: user id is required")
	errMissingName       = errors.New("orderboard: dashboard name is required")
	errUnknownWidgetKind = errors.New("orderboard: unknown widget kind")
)

// Options configures the orderboard Service. Every collaborator is provided
// via interface so applications can swap implementations.
type Options struct {
	Orders     OrderRepository
	Dashboards DashboardRepository
	Sessions   SessionStore
	Providers  ProviderRegistry
	Validator  ConfigValidator
	Snapshots  SnapshotStore
	ChangeHook ChangeHook
	Telemetry  Telemetry
	Renderer   ChartRenderer
	Now        func() time.Time
}

// Service orchestrates the order and dashboard repositories, the widget
// registry, and the interaction state for the dashboard builder.
//
// All mutation goes through the service; each successful mutation notifies
// the change hook and flushes a snapshot best-effort, so every read that
// follows a write observes that write.
type Service struct {
	opts Options
}

// NewService builds a Service with safe defaults.
func NewService(opts Options) *Service {
	if opts.Orders == nil {
		opts.Orders = NewInMemoryOrderStore()
	}
	if opts.Dashboards == nil {
		opts.Dashboards = NewInMemoryDashboardStore()
	}
	if opts.Sessions == nil {
		opts.Sessions = NewInMemorySessionStore()
	}
	if opts.Providers == nil {
		opts.Providers = NewRegistry()
	}
	if opts.Validator == nil {
		opts.Validator = NewJSONSchemaValidator()
	}
	if opts.ChangeHook == nil {
		opts.ChangeHook = noopChangeHook{}
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Now().UTC() }
	}
	return &Service{opts: opts}
}

// Restore rehydrates the repositories and sessions from the snapshot store.
func (s *Service) Restore(ctx context.Context) error {
	if s.opts.Snapshots == nil {
		return nil
	}
	snapshot, found, err := s.opts.Snapshots.Load()
	if err != nil {
		return fmt.Errorf("orderboard: restore snapshot: %w", err)
	}
	if !found {
		return nil
	}
	for user, dashboards := range snapshot.UserDashboards {
		s.opts.Dashboards.Replace(user, dashboards)
	}
	for user, orders := range snapshot.UserOrders {
		s.opts.Orders.Replace(user, orders)
	}
	for user, sess := range snapshot.Sessions {
		s.opts.Sessions.SetCurrentDashboard(user, sess.CurrentDashboardID)
		s.opts.Sessions.SetDateFilter(user, sess.DateFilter)
	}
	s.record(ctx, "orderboard.snapshot.restore", map[string]any{
		"users": len(snapshot.UserDashboards),
	})
	return nil
}

// flush persists a snapshot. The write is best-effort: failures are recorded
// via telemetry and never surfaced to the mutating caller.
func (s *Service) flush(ctx context.Context) {
	if s.opts.Snapshots == nil {
		return
	}
	snapshot := Snapshot{
		UserDashboards: s.opts.Dashboards.All(),
		UserOrders:     s.opts.Orders.All(),
		Sessions:       s.sessionsSnapshot(),
	}
	if err := s.opts.Snapshots.Save(snapshot); err != nil {
		s.record(ctx, "orderboard.snapshot.error", map[string]any{"error": err.Error()})
	}
}

func (s *Service) sessionsSnapshot() map[string]Session {
	type enumerator interface {
		All() map[string]Session
	}
	if e, ok := s.opts.Sessions.(enumerator); ok {
		return e.All()
	}
	return nil
}

func (s *Service) record(ctx context.Context, event string, payload map[string]any) {
	s.opts.Telemetry.Record(ctx, event, payload)
}

func (s *Service) notify(ctx context.Context, event ChangeEvent) {
	if err := s.opts.ChangeHook.Changed(ctx, event); err != nil {
		s.record(ctx, "orderboard.hook.error", map[string]any{
			"scope": event.Scope,
			"error": err.Error(),
		})
	}
}

// --- orders ---

// CreateOrder validates the draft and adds the order to the user's
// collection. The derived total and timestamps are assigned by the store.
func (s *Service) CreateOrder(ctx context.Context, userID string, draft OrderDraft) (CustomerOrder, error) {
	if userID == "" {
		return CustomerOrder{}, errMissingUser
	}
	if err := s.opts.Validator.ValidateOrderDraft(draft); err != nil {
		return CustomerOrder{}, err
	}
	order := s.opts.Orders.Add(userID, draft)
	s.notify(ctx, ChangeEvent{UserID: userID, Scope: ScopeOrder, Reason: "create", OrderID: order.ID})
	s.record(ctx, "orderboard.order.create", map[string]any{"order_id": order.ID})
	s.flush(ctx)
	return order, nil
}

// UpdateOrder merges the patch into the matching order. Unknown order ids
// are a silent no-op.
func (s *Service) UpdateOrder(ctx context.Context, userID, orderID string, patch OrderPatch) error {
	if userID == "" {
		return errMissingUser
	}
	if _, ok := s.opts.Orders.Update(userID, orderID, patch); !ok {
		return nil
	}
	s.notify(ctx, ChangeEvent{UserID: userID, Scope: ScopeOrder, Reason: "update", OrderID: orderID})
	s.record(ctx, "orderboard.order.update", map[string]any{"order_id": orderID})
	s.flush(ctx)
	return nil
}

// DeleteOrder removes the order if present; otherwise it is a silent no-op.
func (s *Service) DeleteOrder(ctx context.Context, userID, orderID string) error {
	if userID == "" {
		return errMissingUser
	}
	if !s.opts.Orders.Delete(userID, orderID) {
		return nil
	}
	s.notify(ctx, ChangeEvent{UserID: userID, Scope: ScopeOrder, Reason: "delete", OrderID: orderID})
	s.record(ctx, "orderboard.order.delete", map[string]any{"order_id": orderID})
	s.flush(ctx)
	return nil
}

// Orders returns the user's full order collection.
func (s *Service) Orders(userID string) []CustomerOrder {
	return s.opts.Orders.Orders(userID)
}

// FilteredOrders returns the user's orders constrained by the session's
// global date filter.
func (s *Service) FilteredOrders(userID string) []CustomerOrder {
	sess := s.opts.Sessions.Session(userID)
	return FilterOrdersByDate(s.opts.Orders.Orders(userID), sess.DateFilter, s.opts.Now())
}

// --- dashboards ---

// CreateDashboard creates an empty dashboard and makes it the user's current
// one.
func (s *Service) CreateDashboard(ctx context.Context, userID, name string) (Dashboard, error) {
	if userID == "" {
		return Dashboard{}, errMissingUser
	}
	if name == "" {
		return Dashboard{}, errMissingName
	}
	dash := s.opts.Dashboards.Create(userID, name)
	s.opts.Sessions.SetCurrentDashboard(userID, dash.ID)
	s.notify(ctx, ChangeEvent{UserID: userID, Scope: ScopeDashboard, Reason: "create", DashboardID: dash.ID})
	s.record(ctx, "orderboard.dashboard.create", map[string]any{"dashboard_id": dash.ID})
	s.flush(ctx)
	return dash, nil
}

// UpdateDashboard renames or re-filters the dashboard. Unknown ids are a
// silent no-op.
func (s *Service) UpdateDashboard(ctx context.Context, userID, dashboardID string, patch DashboardPatch) error {
	if userID == "" {
		return errMissingUser
	}
	if _, ok := s.opts.Dashboards.Update(userID, dashboardID, patch); !ok {
		return nil
	}
	s.notify(ctx, ChangeEvent{UserID: userID, Scope: ScopeDashboard, Reason: "update", DashboardID: dashboardID})
	s.record(ctx, "orderboard.dashboard.update", map[string]any{"dashboard_id": dashboardID})
	s.flush(ctx)
	return nil
}

// DeleteDashboard removes the dashboard and clears the current-dashboard
// reference when it pointed there.
func (s *Service) DeleteDashboard(ctx context.Context, userID, dashboardID string) error {
	if userID == "" {
		return errMissingUser
	}
	if !s.opts.Dashboards.Delete(userID, dashboardID) {
		return nil
	}
	s.opts.Sessions.DashboardDeleted(userID, dashboardID)
	s.notify(ctx, ChangeEvent{UserID: userID, Scope: ScopeDashboard, Reason: "delete", DashboardID: dashboardID})
	s.record(ctx, "orderboard.dashboard.delete", map[string]any{"dashboard_id": dashboardID})
	s.flush(ctx)
	return nil
}

// Dashboards lists the user's dashboards.
func (s *Service) Dashboards(userID string) []Dashboard {
	return s.opts.Dashboards.List(userID)
}

// Dashboard fetches one dashboard.
func (s *Service) Dashboard(userID, dashboardID string) (Dashboard, bool) {
	return s.opts.Dashboards.Get(userID, dashboardID)
}

// CurrentDashboard resolves the session's open dashboard.
func (s *Service) CurrentDashboard(userID string) (Dashboard, bool) {
	sess := s.opts.Sessions.Session(userID)
	if sess.CurrentDashboardID == "" {
		return Dashboard{}, false
	}
	return s.opts.Dashboards.Get(userID, sess.CurrentDashboardID)
}

// --- widgets ---

// AddWidget builds a widget from kind defaults merged over the common base
// and appends it to the dashboard. An unknown dashboard id is a silent
// no-op returning the zero config.
func (s *Service) AddWidget(ctx context.Context, userID, dashboardID string, t WidgetType, x, y int) (WidgetConfig, error) {
	if userID == "" {
		return WidgetConfig{}, errMissingUser
	}
	if _, ok := s.opts.Providers.Definition(t); !ok {
		return WidgetConfig{}, fmt.Errorf("%w: %s", errUnknownWidgetKind, t)
	}
	cfg := NewWidgetConfig(newWidgetID(), t, x, y)
	if !s.opts.Dashboards.AddWidget(userID, dashboardID, cfg) {
		return WidgetConfig{}, nil
	}
	s.notify(ctx, ChangeEvent{UserID: userID, Scope: ScopeWidget, Reason: "add", DashboardID: dashboardID, WidgetID: cfg.ID})
	s.record(ctx, "orderboard.widget.add", map[string]any{
		"dashboard_id": dashboardID,
		"widget_type":  string(t),
	})
	s.flush(ctx)
	return cfg, nil
}

// UpdateWidget validates and shallow-merges a partial update into the
// matching widget. The variant tag never changes; unknown ids are a silent
// no-op.
func (s *Service) UpdateWidget(ctx context.Context, userID, dashboardID, widgetID string, patch WidgetPatch) error {
	if userID == "" {
		return errMissingUser
	}
	widget, ok := s.opts.Dashboards.Widget(userID, dashboardID, widgetID)
	if !ok {
		return nil
	}
	if err := s.opts.Validator.ValidateWidgetPatch(widget.Type, patch); err != nil {
		return err
	}
	if _, ok := s.opts.Dashboards.UpdateWidget(userID, dashboardID, widgetID, patch); !ok {
		return nil
	}
	s.notify(ctx, ChangeEvent{UserID: userID, Scope: ScopeWidget, Reason: "update", DashboardID: dashboardID, WidgetID: widgetID})
	s.record(ctx, "orderboard.widget.update", map[string]any{"widget_id": widgetID})
	s.flush(ctx)
	return nil
}

// RemoveWidget drops the widget and clears the selection when it pointed at
// the removed widget.
func (s *Service) RemoveWidget(ctx context.Context, userID, dashboardID, widgetID string) error {
	if userID == "" {
		return errMissingUser
	}
	if !s.opts.Dashboards.RemoveWidget(userID, dashboardID, widgetID) {
		return nil
	}
	s.opts.Sessions.WidgetRemoved(userID, widgetID)
	s.notify(ctx, ChangeEvent{UserID: userID, Scope: ScopeWidget, Reason: "remove", DashboardID: dashboardID, WidgetID: widgetID})
	s.record(ctx, "orderboard.widget.remove", map[string]any{"widget_id": widgetID})
	s.flush(ctx)
	return nil
}

// MoveWidget updates grid position only.
func (s *Service) MoveWidget(ctx context.Context, userID, dashboardID, widgetID string, x, y int) error {
	if userID == "" {
		return errMissingUser
	}
	if !s.opts.Dashboards.MoveWidget(userID, dashboardID, widgetID, x, y) {
		return nil
	}
	s.notify(ctx, ChangeEvent{UserID: userID, Scope: ScopeWidget, Reason: "move", DashboardID: dashboardID, WidgetID: widgetID})
	s.flush(ctx)
	return nil
}

// --- session / interaction state ---

// Session returns the user's interaction state.
func (s *Service) Session(userID string) Session {
	return s.opts.Sessions.Session(userID)
}

// ActivateUser switches the active user: their first dashboard becomes
// current and configure mode plus selection reset.
func (s *Service) ActivateUser(ctx context.Context, userID string) {
	if userID == "" {
		return
	}
	dashboards := s.opts.Dashboards.List(userID)
	first := ""
	if len(dashboards) > 0 {
		first = dashboards[0].ID
	}
	s.opts.Sessions.SetCurrentDashboard(userID, first)
	s.opts.Sessions.SetConfiguring(userID, false)
	s.record(ctx, "orderboard.session.activate", map[string]any{"user_id": userID})
}

// SetCurrentDashboard opens a dashboard.
func (s *Service) SetCurrentDashboard(ctx context.Context, userID, dashboardID string) {
	s.opts.Sessions.SetCurrentDashboard(userID, dashboardID)
	s.notify(ctx, ChangeEvent{UserID: userID, Scope: ScopeSession, Reason: "open", DashboardID: dashboardID})
}

// SetConfiguring toggles configure mode; leaving it clears the selection.
func (s *Service) SetConfiguring(ctx context.Context, userID string, configuring bool) {
	s.opts.Sessions.SetConfiguring(userID, configuring)
	s.notify(ctx, ChangeEvent{UserID: userID, Scope: ScopeSession, Reason: "configure"})
}

// SelectWidget marks a widget active for configuration; an empty id clears
// the selection, matching a canvas background click.
func (s *Service) SelectWidget(ctx context.Context, userID, widgetID string) {
	if widgetID == "" {
		s.opts.Sessions.ClearSelection(userID)
	} else {
		s.opts.Sessions.SelectWidget(userID, widgetID)
	}
	s.notify(ctx, ChangeEvent{UserID: userID, Scope: ScopeSession, Reason: "select", WidgetID: widgetID})
}

// SetDateFilter changes the global order window feeding every widget.
func (s *Service) SetDateFilter(ctx context.Context, userID string, filter DateFilter) {
	s.opts.Sessions.SetDateFilter(userID, filter)
	s.notify(ctx, ChangeEvent{UserID: userID, Scope: ScopeSession, Reason: "filter"})
	s.flush(ctx)
}

// --- derived datasets ---

// WidgetData recomputes the derived dataset for one widget against the
// current date-filtered order collection.
func (s *Service) WidgetData(ctx context.Context, userID, dashboardID, widgetID string, page int) (WidgetData, error) {
	widget, ok := s.opts.Dashboards.Widget(userID, dashboardID, widgetID)
	if !ok {
		return nil, fmt.Errorf("orderboard: widget %s not found on dashboard %s", widgetID, dashboardID)
	}
	return s.fetchWidgetData(ctx, userID, widget, page)
}

// ResolvedDashboard pairs a dashboard with the derived dataset of each of
// its widgets, keyed by widget id.
type ResolvedDashboard struct {
	Dashboard Dashboard
	Data      map[string]WidgetData
}

// ResolveDashboard recomputes every widget's dataset for the dashboard.
// Provider failures degrade to a missing entry, recorded via telemetry.
func (s *Service) ResolveDashboard(ctx context.Context, userID, dashboardID string) (ResolvedDashboard, error) {
	dash, ok := s.opts.Dashboards.Get(userID, dashboardID)
	if !ok {
		return ResolvedDashboard{}, fmt.Errorf("orderboard: dashboard %s not found", dashboardID)
	}
	resolved := ResolvedDashboard{
		Dashboard: dash,
		Data:      make(map[string]WidgetData, len(dash.Widgets)),
	}
	for _, widget := range dash.Widgets {
		data, err := s.fetchWidgetData(ctx, userID, widget, 1)
		if err != nil {
			s.record(ctx, "orderboard.widget.provider_error", map[string]any{
				"widget_id": widget.ID,
				"error":     err.Error(),
			})
			continue
		}
		resolved.Data[widget.ID] = data
	}
	s.record(ctx, "orderboard.dashboard.resolve", map[string]any{
		"dashboard_id": dashboardID,
		"widgets":      len(dash.Widgets),
	})
	return resolved, nil
}

func (s *Service) fetchWidgetData(ctx context.Context, userID string, widget WidgetConfig, page int) (WidgetData, error) {
	provider, ok := s.opts.Providers.Provider(widget.Type)
	if !ok {
		return nil, fmt.Errorf("%w: %s", errUnknownWidgetKind, widget.Type)
	}
	data, err := provider.Fetch(ctx, DatasetRequest{
		Config: widget,
		Orders: s.FilteredOrders(userID),
		Page:   page,
	})
	if err != nil {
		return nil, err
	}
	if s.opts.Renderer != nil {
		if html, ok, err := s.opts.Renderer.RenderChart(widget, data); err != nil {
			s.record(ctx, "orderboard.widget.render_error", map[string]any{
				"widget_id": widget.ID,
				"error":     err.Error(),
			})
		} else if ok {
			data["chart_html"] = html
		}
	}
	return data, nil
}
