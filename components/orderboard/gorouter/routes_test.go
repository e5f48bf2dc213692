package gorouter

import (
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"testing"

	router "github.com/goliatone/go-router"

	orderboard "github.com/goliatone/go-orderboard/components/orderboard"
	"github.com/goliatone/go-orderboard/components/orderboard/commands"
	"github.com/goliatone/go-orderboard/components/orderboard/queries"
)

func TestRegisterValidatesConfig(t *testing.T) {
	if err := Register(Config[struct{}]{}); err == nil {
		t.Fatalf("expected error when router missing")
	}
	if err := Register(Config[struct{}]{Router: newMockRouter()}); err == nil {
		t.Fatalf("expected error when api executor missing")
	}
}

func TestRegisterMountsDefaultRoutes(t *testing.T) {
	mock := newMockRouter()
	cfg := Config[struct{}]{
		Router: mock,
		API:    &recordingExecutor{},
	}
	if err := Register(cfg); err != nil {
		t.Fatalf("register returned error: %v", err)
	}

	expected := []string{
		"GET:/board/orders",
		"POST:/board/orders",
		"PUT:/board/orders/:id",
		"DELETE:/board/orders/:id",
		"GET:/board/dashboards",
		"POST:/board/dashboards",
		"GET:/board/dashboards/:id",
		"PUT:/board/dashboards/:id",
		"DELETE:/board/dashboards/:id",
		"POST:/board/dashboards/:id/widgets",
		"PUT:/board/dashboards/:id/widgets/:widgetId",
		"DELETE:/board/dashboards/:id/widgets/:widgetId",
		"POST:/board/dashboards/:id/widgets/:widgetId/move",
		"GET:/board/dashboards/:id/widgets/:widgetId/data",
		"POST:/board/session/date-filter",
		"POST:/board/session/select",
		"POST:/board/session/configure",
		"POST:/board/session/open",
	}
	for _, key := range expected {
		if _, ok := mock.routes[key]; !ok {
			t.Fatalf("expected route %s to be registered", key)
		}
	}
	if len(mock.ws) != 0 {
		t.Fatalf("expected no websocket route without a broadcast hook")
	}
}

func TestRegisterMountsWebSocketWithBroadcast(t *testing.T) {
	mock := newMockRouter()
	cfg := Config[struct{}]{
		Router:    mock,
		API:       &recordingExecutor{},
		Broadcast: orderboard.NewBroadcastHook(),
	}
	if err := Register(cfg); err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if _, ok := mock.ws["/board/ws"]; !ok {
		t.Fatalf("expected websocket route registered")
	}
}

func TestRegisterHonorsBasePath(t *testing.T) {
	mock := newMockRouter()
	cfg := Config[struct{}]{
		Router:   mock,
		API:      &recordingExecutor{},
		BasePath: "/api/v1",
	}
	if err := Register(cfg); err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if _, ok := mock.routes["GET:/api/v1/orders"]; !ok {
		t.Fatalf("expected base path to prefix routes")
	}
}

func TestCreateOrderRouteDelegates(t *testing.T) {
	mock := newMockRouter()
	exec := &recordingExecutor{}
	if err := Register(Config[struct{}]{Router: mock, API: exec}); err != nil {
		t.Fatalf("register returned error: %v", err)
	}

	h := mock.routes["POST:/board/orders"]
	ctx := newMockContext()
	ctx.locals["user_id"] = "user-1"
	ctx.requestBody = []byte(`{"firstName":"Ada","lastName":"Lovelace","quantity":2,"unitPrice":50}`)
	if err := h(ctx); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if exec.createOrder.UserID != "user-1" {
		t.Fatalf("expected resolver to read locals, got %q", exec.createOrder.UserID)
	}
	if exec.createOrder.Draft.FirstName != "Ada" || exec.createOrder.Draft.Quantity != 2 {
		t.Fatalf("unexpected draft %+v", exec.createOrder.Draft)
	}
	if ctx.status != 201 {
		t.Fatalf("expected 201 response, got %d", ctx.status)
	}
}

func TestWidgetDataRouteReadsParams(t *testing.T) {
	mock := newMockRouter()
	exec := &recordingExecutor{data: orderboard.WidgetData{"value": 7.0}}
	if err := Register(Config[struct{}]{Router: mock, API: exec}); err != nil {
		t.Fatalf("register returned error: %v", err)
	}

	h := mock.routes["GET:/board/dashboards/:id/widgets/:widgetId/data"]
	ctx := newMockContext()
	ctx.params["id"] = "d1"
	ctx.params["widgetId"] = "w1"
	ctx.query["user_id"] = "user-1"
	ctx.query["page"] = "2"
	if err := h(ctx); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if exec.widgetData.DashboardID != "d1" || exec.widgetData.WidgetID != "w1" {
		t.Fatalf("unexpected input %+v", exec.widgetData)
	}
	if exec.widgetData.Page != 2 {
		t.Fatalf("expected page 2, got %d", exec.widgetData.Page)
	}
	if exec.widgetData.UserID != "user-1" {
		t.Fatalf("expected resolver to fall back to query param")
	}
}

func TestAtoiDefault(t *testing.T) {
	if got := atoiDefault("3", 1); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
	if got := atoiDefault("zero", 1); got != 1 {
		t.Fatalf("expected fallback for garbage, got %d", got)
	}
	if got := atoiDefault("-2", 1); got != 1 {
		t.Fatalf("expected fallback for negative, got %d", got)
	}
}

// --- Test helpers ---

type mockRouter struct {
	prefix string
	routes map[string]router.HandlerFunc
	ws     map[string]func(router.WebSocketContext) error
}

func newMockRouter() *mockRouter {
	return &mockRouter{
		routes: map[string]router.HandlerFunc{},
		ws:     map[string]func(router.WebSocketContext) error{},
	}
}

func (m *mockRouter) Group(prefix string) router.Router[struct{}] {
	return &mockRouter{
		prefix: m.prefix + prefix,
		routes: m.routes,
		ws:     m.ws,
	}
}

func (m *mockRouter) record(method, path string, handler router.HandlerFunc) {
	m.routes[method+":"+m.prefix+path] = handler
}

func (m *mockRouter) Get(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo {
	m.record(string(router.GET), path, handler)
	return mockRouteInfo{}
}

func (m *mockRouter) Post(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo {
	m.record(string(router.POST), path, handler)
	return mockRouteInfo{}
}

func (m *mockRouter) Put(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo {
	m.record(string(router.PUT), path, handler)
	return mockRouteInfo{}
}

func (m *mockRouter) Delete(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo {
	m.record(string(router.DELETE), path, handler)
	return mockRouteInfo{}
}

func (m *mockRouter) WebSocket(path string, cfg router.WebSocketConfig, handler func(router.WebSocketContext) error) router.RouteInfo {
	m.ws[m.prefix+path] = handler
	return mockRouteInfo{}
}

func (m *mockRouter) Handle(method router.HTTPMethod, path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo {
	m.record(string(method), path, handler)
	return mockRouteInfo{}
}

func (m *mockRouter) Mount(prefix string) router.Router[struct{}] {
	return m.Group(prefix)
}

func (m *mockRouter) WithGroup(path string, cb func(r router.Router[struct{}])) router.Router[struct{}] {
	cb(m.Group(path))
	return m
}

func (m *mockRouter) Use(mw ...router.MiddlewareFunc) router.Router[struct{}] { return m }

func (m *mockRouter) Patch(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo {
	m.record(string(router.PATCH), path, handler)
	return mockRouteInfo{}
}

func (m *mockRouter) Head(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo {
	m.record(string(router.HEAD), path, handler)
	return mockRouteInfo{}
}

func (m *mockRouter) Static(prefix, root string, config ...router.Static) router.Router[struct{}] {
	return m
}

func (m *mockRouter) Routes() []router.RouteDefinition { return nil }

func (m *mockRouter) ValidateRoutes() []error { return nil }

func (m *mockRouter) PrintRoutes() {}

func (m *mockRouter) WithLogger(router.Logger) router.Router[struct{}] { return m }

type mockRouteInfo struct{}

func (mockRouteInfo) SetName(string) router.RouteInfo        { return mockRouteInfo{} }
func (mockRouteInfo) SetDescription(string) router.RouteInfo { return mockRouteInfo{} }
func (mockRouteInfo) SetSummary(string) router.RouteInfo     { return mockRouteInfo{} }
func (mockRouteInfo) AddTags(...string) router.RouteInfo     { return mockRouteInfo{} }
func (mockRouteInfo) AddParameter(name, in string, required bool, schema map[string]any) router.RouteInfo {
	return mockRouteInfo{}
}
func (mockRouteInfo) SetRequestBody(desc string, required bool, content map[string]any) router.RouteInfo {
	return mockRouteInfo{}
}
func (mockRouteInfo) AddResponse(code int, desc string, content map[string]any) router.RouteInfo {
	return mockRouteInfo{}
}

type mockContext struct {
	ctx         context.Context
	headers     map[string]string
	requestBody []byte
	body        []byte
	locals      map[any]any
	params      map[string]string
	query       map[string]string
	status      int
}

func newMockContext() *mockContext {
	return &mockContext{
		ctx:     context.Background(),
		headers: map[string]string{},
		locals:  map[any]any{},
		params:  map[string]string{},
		query:   map[string]string{},
	}
}

func (m *mockContext) Context() context.Context {
	return m.ctx
}

func (m *mockContext) SetHeader(k, v string) router.Context {
	m.headers[k] = v
	return m
}

func (m *mockContext) Send(b []byte) error {
	m.body = append([]byte{}, b...)
	return nil
}

func (m *mockContext) JSON(code int, v any) error {
	m.status = code
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.body = data
	return nil
}

func (m *mockContext) Body() []byte { return m.requestBody }

func (m *mockContext) Param(name string, defaultValue ...string) string {
	if v, ok := m.params[name]; ok {
		return v
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

func (m *mockContext) Query(name string, defaultValue ...string) string {
	if v, ok := m.query[name]; ok {
		return v
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

func (m *mockContext) Locals(key any, value ...any) any {
	if len(value) == 0 {
		return m.locals[key]
	}
	m.locals[key] = value[0]
	return value[0]
}

func (m *mockContext) Method() string { return "" }
func (m *mockContext) Path() string   { return "" }

func (m *mockContext) ParamsInt(key string, defaultValue int) int { return defaultValue }

func (m *mockContext) QueryValues(name string) []string {
	if v, ok := m.query[name]; ok {
		return []string{v}
	}
	return nil
}

func (m *mockContext) QueryInt(name string, defaultValue int) int { return defaultValue }

func (m *mockContext) Queries() map[string]string { return m.query }

func (m *mockContext) LocalsMerge(key any, value map[string]any) map[string]any { return value }

func (m *mockContext) Render(name string, bind any, layouts ...string) error { return nil }

func (m *mockContext) Cookie(cookie *router.Cookie) {}

func (m *mockContext) Cookies(key string, defaultValue ...string) string {
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

func (m *mockContext) CookieParser(out any) error { return nil }

func (m *mockContext) Redirect(location string, status ...int) error { return nil }

func (m *mockContext) RedirectToRoute(routeName string, params router.ViewContext, status ...int) error {
	return nil
}

func (m *mockContext) RedirectBack(fallback string, status ...int) error { return nil }

func (m *mockContext) Header(string) string { return "" }
func (m *mockContext) Referer() string      { return "" }
func (m *mockContext) OriginalURL() string  { return "" }

func (m *mockContext) FormFile(key string) (*multipart.FileHeader, error) { return nil, nil }

func (m *mockContext) FormValue(key string, defaultValue ...string) string {
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

func (m *mockContext) IP() string { return "" }

func (m *mockContext) Status(code int) router.Context {
	m.status = code
	return m
}

func (m *mockContext) SendString(body string) error { return m.Send([]byte(body)) }

func (m *mockContext) SendStatus(code int) error {
	m.status = code
	return nil
}

func (m *mockContext) SendStream(r io.Reader) error { return nil }

func (m *mockContext) NoContent(code int) error {
	m.status = code
	return nil
}

func (m *mockContext) Set(key string, value any) { m.locals[key] = value }

func (m *mockContext) Get(key string, def any) any {
	if v, ok := m.locals[key]; ok {
		return v
	}
	return def
}

func (m *mockContext) GetString(key string, def string) string {
	if v, ok := m.locals[key].(string); ok {
		return v
	}
	return def
}

func (m *mockContext) GetInt(key string, def int) int {
	if v, ok := m.locals[key].(int); ok {
		return v
	}
	return def
}

func (m *mockContext) GetBool(key string, def bool) bool {
	if v, ok := m.locals[key].(bool); ok {
		return v
	}
	return def
}

func (m *mockContext) Bind(v any) error { return json.Unmarshal(m.requestBody, v) }

func (m *mockContext) SetContext(ctx context.Context) { m.ctx = ctx }

func (m *mockContext) Next() error { return nil }

func (m *mockContext) RouteName() string { return "" }

func (m *mockContext) RouteParams() map[string]string { return m.params }

// recordingExecutor captures the last input per endpoint.
type recordingExecutor struct {
	createOrder commands.CreateOrderInput
	widgetData  queries.WidgetDataInput
	data        orderboard.WidgetData
}

func (e *recordingExecutor) CreateOrder(_ context.Context, input commands.CreateOrderInput) error {
	e.createOrder = input
	return nil
}

func (e *recordingExecutor) UpdateOrder(context.Context, commands.UpdateOrderInput) error { return nil }
func (e *recordingExecutor) DeleteOrder(context.Context, commands.DeleteOrderInput) error { return nil }

func (e *recordingExecutor) ListOrders(context.Context, queries.OrderListInput) ([]orderboard.CustomerOrder, error) {
	return nil, nil
}

func (e *recordingExecutor) CreateDashboard(context.Context, commands.CreateDashboardInput) error {
	return nil
}

func (e *recordingExecutor) UpdateDashboard(context.Context, commands.UpdateDashboardInput) error {
	return nil
}

func (e *recordingExecutor) DeleteDashboard(context.Context, commands.DeleteDashboardInput) error {
	return nil
}

func (e *recordingExecutor) ListDashboards(context.Context, queries.DashboardListInput) (queries.DashboardListResult, error) {
	return queries.DashboardListResult{}, nil
}

func (e *recordingExecutor) ResolveDashboard(context.Context, queries.DashboardInput) (orderboard.ResolvedDashboard, error) {
	return orderboard.ResolvedDashboard{}, nil
}

func (e *recordingExecutor) AddWidget(context.Context, commands.AddWidgetInput) error    { return nil }
func (e *recordingExecutor) UpdateWidget(context.Context, commands.UpdateWidgetInput) error {
	return nil
}
func (e *recordingExecutor) RemoveWidget(context.Context, commands.RemoveWidgetInput) error {
	return nil
}
func (e *recordingExecutor) MoveWidget(context.Context, commands.MoveWidgetInput) error { return nil }

func (e *recordingExecutor) WidgetData(_ context.Context, input queries.WidgetDataInput) (orderboard.WidgetData, error) {
	e.widgetData = input
	return e.data, nil
}

func (e *recordingExecutor) SetDateFilter(context.Context, commands.SetDateFilterInput) error {
	return nil
}
func (e *recordingExecutor) SelectWidget(context.Context, commands.SelectWidgetInput) error {
	return nil
}
func (e *recordingExecutor) SetConfiguring(context.Context, commands.SetConfiguringInput) error {
	return nil
}
func (e *recordingExecutor) OpenDashboard(context.Context, commands.OpenDashboardInput) error {
	return nil
}
