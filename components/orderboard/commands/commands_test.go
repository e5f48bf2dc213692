package commands

import (
	"context"
	"errors"
	"sync"
	"testing"

	orderboard "github.com/goliatone/go-orderboard/components/orderboard"
)

// fakeService records every call so tests can assert the commands delegate
// with the right arguments.
type fakeService struct {
	mu    sync.Mutex
	calls []string
	args  map[string]any
	fail  error
}

func newFakeService() *fakeService {
	return &fakeService{args: map[string]any{}}
}

func (f *fakeService) record(name string, arg any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
	f.args[name] = arg
}

func (f *fakeService) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == name {
			n++
		}
	}
	return n
}

func (f *fakeService) CreateOrder(_ context.Context, userID string, draft orderboard.OrderDraft) (orderboard.CustomerOrder, error) {
	f.record("CreateOrder", draft)
	if f.fail != nil {
		return orderboard.CustomerOrder{}, f.fail
	}
	return orderboard.CustomerOrder{ID: "o1", FirstName: draft.FirstName}, nil
}

func (f *fakeService) UpdateOrder(_ context.Context, userID, orderID string, patch orderboard.OrderPatch) error {
	f.record("UpdateOrder", orderID)
	return f.fail
}

func (f *fakeService) DeleteOrder(_ context.Context, userID, orderID string) error {
	f.record("DeleteOrder", orderID)
	return f.fail
}

func (f *fakeService) CreateDashboard(_ context.Context, userID, name string) (orderboard.Dashboard, error) {
	f.record("CreateDashboard", name)
	if f.fail != nil {
		return orderboard.Dashboard{}, f.fail
	}
	return orderboard.Dashboard{ID: "d1", Name: name}, nil
}

func (f *fakeService) UpdateDashboard(_ context.Context, userID, dashboardID string, patch orderboard.DashboardPatch) error {
	f.record("UpdateDashboard", dashboardID)
	return f.fail
}

func (f *fakeService) DeleteDashboard(_ context.Context, userID, dashboardID string) error {
	f.record("DeleteDashboard", dashboardID)
	return f.fail
}

func (f *fakeService) AddWidget(_ context.Context, userID, dashboardID string, t orderboard.WidgetType, x, y int) (orderboard.WidgetConfig, error) {
	f.record("AddWidget", t)
	if f.fail != nil {
		return orderboard.WidgetConfig{}, f.fail
	}
	return orderboard.NewWidgetConfig("w1", t, x, y), nil
}

func (f *fakeService) UpdateWidget(_ context.Context, userID, dashboardID, widgetID string, patch orderboard.WidgetPatch) error {
	f.record("UpdateWidget", patch)
	return f.fail
}

func (f *fakeService) RemoveWidget(_ context.Context, userID, dashboardID, widgetID string) error {
	f.record("RemoveWidget", widgetID)
	return f.fail
}

func (f *fakeService) MoveWidget(_ context.Context, userID, dashboardID, widgetID string, x, y int) error {
	f.record("MoveWidget", widgetID)
	return f.fail
}

func (f *fakeService) ActivateUser(_ context.Context, userID string) {
	f.record("ActivateUser", userID)
}

func (f *fakeService) SetCurrentDashboard(_ context.Context, userID, dashboardID string) {
	f.record("SetCurrentDashboard", dashboardID)
}

func (f *fakeService) SetConfiguring(_ context.Context, userID string, configuring bool) {
	f.record("SetConfiguring", configuring)
}

func (f *fakeService) SelectWidget(_ context.Context, userID, widgetID string) {
	f.record("SelectWidget", widgetID)
}

func (f *fakeService) SetDateFilter(_ context.Context, userID string, filter orderboard.DateFilter) {
	f.record("SetDateFilter", filter)
}

func TestCreateOrderCommand(t *testing.T) {
	svc := newFakeService()
	cmd := NewCreateOrderCommand(svc, nil)
	err := cmd.Execute(context.Background(), CreateOrderInput{
		UserID: "user-1",
		Draft:  orderboard.OrderDraft{FirstName: "Ada"},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if svc.count("CreateOrder") != 1 {
		t.Fatalf("expected one CreateOrder call")
	}
}

func TestCreateOrderCommandPropagatesError(t *testing.T) {
	svc := newFakeService()
	svc.fail = errors.New("invalid draft")
	cmd := NewCreateOrderCommand(svc, nil)
	if err := cmd.Execute(context.Background(), CreateOrderInput{UserID: "user-1"}); err == nil {
		t.Fatalf("expected service error to propagate")
	}
}

func TestCommandsRequireService(t *testing.T) {
	ctx := context.Background()
	if err := NewCreateOrderCommand(nil, nil).Execute(ctx, CreateOrderInput{}); err == nil {
		t.Fatalf("expected nil service error")
	}
	if err := NewAddWidgetCommand(nil, nil).Execute(ctx, AddWidgetInput{}); err == nil {
		t.Fatalf("expected nil service error")
	}
	if err := NewSeedDemoDataCommand(nil, nil).Execute(ctx, SeedDemoDataInput{}); err == nil {
		t.Fatalf("expected nil service error")
	}
	if err := NewSetDateFilterCommand(nil, nil).Execute(ctx, SetDateFilterInput{}); err == nil {
		t.Fatalf("expected nil service error")
	}
}

func TestWidgetCommandsDelegate(t *testing.T) {
	svc := newFakeService()
	ctx := context.Background()

	if err := NewAddWidgetCommand(svc, nil).Execute(ctx, AddWidgetInput{UserID: "u", DashboardID: "d1", Type: orderboard.WidgetKPI}); err != nil {
		t.Fatalf("AddWidget: %v", err)
	}
	if got := svc.args["AddWidget"]; got != orderboard.WidgetKPI {
		t.Fatalf("expected kpi kind forwarded, got %v", got)
	}

	patch := orderboard.WidgetPatch{"title": "Revenue"}
	if err := NewUpdateWidgetCommand(svc, nil).Execute(ctx, UpdateWidgetInput{UserID: "u", DashboardID: "d1", WidgetID: "w1", Patch: patch}); err != nil {
		t.Fatalf("UpdateWidget: %v", err)
	}
	if err := NewRemoveWidgetCommand(svc, nil).Execute(ctx, RemoveWidgetInput{UserID: "u", DashboardID: "d1", WidgetID: "w1"}); err != nil {
		t.Fatalf("RemoveWidget: %v", err)
	}
	if err := NewMoveWidgetCommand(svc, nil).Execute(ctx, MoveWidgetInput{UserID: "u", DashboardID: "d1", WidgetID: "w1", X: 4, Y: 2}); err != nil {
		t.Fatalf("MoveWidget: %v", err)
	}
	for _, call := range []string{"AddWidget", "UpdateWidget", "RemoveWidget", "MoveWidget"} {
		if svc.count(call) != 1 {
			t.Fatalf("expected one %s call", call)
		}
	}
}

func TestSessionCommandsDelegate(t *testing.T) {
	svc := newFakeService()
	ctx := context.Background()

	NewActivateUserCommand(svc, nil).Execute(ctx, ActivateUserInput{UserID: "user-1"})
	NewOpenDashboardCommand(svc).Execute(ctx, OpenDashboardInput{UserID: "user-1", DashboardID: "d2"})
	NewSetConfiguringCommand(svc).Execute(ctx, SetConfiguringInput{UserID: "user-1", Configuring: true})
	NewSelectWidgetCommand(svc).Execute(ctx, SelectWidgetInput{UserID: "user-1", WidgetID: "w9"})
	NewSetDateFilterCommand(svc, nil).Execute(ctx, SetDateFilterInput{UserID: "user-1", Filter: orderboard.FilterLast7Days})

	if svc.args["SetCurrentDashboard"] != "d2" {
		t.Fatalf("expected dashboard id forwarded")
	}
	if svc.args["SetConfiguring"] != true {
		t.Fatalf("expected configure flag forwarded")
	}
	if svc.args["SelectWidget"] != "w9" {
		t.Fatalf("expected widget id forwarded")
	}
	if svc.args["SetDateFilter"] != orderboard.FilterLast7Days {
		t.Fatalf("expected filter forwarded")
	}
}

func TestSeedDemoDataCommand(t *testing.T) {
	svc := newFakeService()
	cmd := NewSeedDemoDataCommand(svc, nil)
	err := cmd.Execute(context.Background(), SeedDemoDataInput{UserID: "user-1", Orders: 10, Seed: 42})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := svc.count("CreateOrder"); got != 10 {
		t.Fatalf("expected 10 orders, got %d", got)
	}
	if svc.count("CreateDashboard") != 1 {
		t.Fatalf("expected one dashboard")
	}
	if got := svc.count("AddWidget"); got != len(orderboard.WidgetTypes()) {
		t.Fatalf("expected one widget per kind, got %d", got)
	}
	if svc.args["CreateDashboard"] != "Demo Dashboard" {
		t.Fatalf("expected default dashboard name, got %v", svc.args["CreateDashboard"])
	}
}

func TestSeedDemoDataCommandDefaultsOrderCount(t *testing.T) {
	svc := newFakeService()
	cmd := NewSeedDemoDataCommand(svc, nil)
	if err := cmd.Execute(context.Background(), SeedDemoDataInput{UserID: "user-1", Dashboard: "My Board"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := svc.count("CreateOrder"); got != 25 {
		t.Fatalf("expected default 25 orders, got %d", got)
	}
	if svc.args["CreateDashboard"] != "My Board" {
		t.Fatalf("expected custom dashboard name")
	}
}
