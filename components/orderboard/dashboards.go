package orderboard

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DashboardPatch is a partial dashboard update. The widget sequence is
// managed through the widget operations, never patched wholesale.
type DashboardPatch struct {
	Name       *string     `json:"name,omitempty"`
	DateFilter *DateFilter `json:"dateFilter,omitempty"`
}

// DashboardRepository holds per-user dashboard collections and their widget
// sequences. Mutations against unknown ids are silent no-ops reporting false.
type DashboardRepository interface {
	Create(userID, name string) Dashboard
	Update(userID, dashboardID string, patch DashboardPatch) (Dashboard, bool)
	Delete(userID, dashboardID string) bool
	Get(userID, dashboardID string) (Dashboard, bool)
	List(userID string) []Dashboard

	AddWidget(userID, dashboardID string, cfg WidgetConfig) bool
	Widget(userID, dashboardID, widgetID string) (WidgetConfig, bool)
	UpdateWidget(userID, dashboardID, widgetID string, patch WidgetPatch) (WidgetConfig, bool)
	RemoveWidget(userID, dashboardID, widgetID string) bool
	MoveWidget(userID, dashboardID, widgetID string, x, y int) bool

	Replace(userID string, dashboards []Dashboard)
	All() map[string][]Dashboard
}

// InMemoryDashboardStore is the concurrency-safe default dashboard repository.
type InMemoryDashboardStore struct {
	mu     sync.RWMutex
	byUser map[string][]Dashboard
	now    func() time.Time
	newID  func() string
}

// NewInMemoryDashboardStore creates an empty store.
func NewInMemoryDashboardStore() *InMemoryDashboardStore {
	return &InMemoryDashboardStore{
		byUser: make(map[string][]Dashboard),
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
}

// Create builds an empty dashboard with the default date filter.
func (s *InMemoryDashboardStore) Create(userID, name string) Dashboard {
	now := s.now()
	dash := Dashboard{
		ID:         s.newID(),
		UserID:     userID,
		Name:       name,
		Widgets:    []WidgetConfig{},
		DateFilter: FilterAllTime,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.mu.Lock()
	s.byUser[userID] = append(s.byUser[userID], dash)
	s.mu.Unlock()
	return cloneDashboard(dash)
}

// Update merges the patch and bumps UpdatedAt.
func (s *InMemoryDashboardStore) Update(userID, dashboardID string, patch DashboardPatch) (Dashboard, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	dash := s.find(userID, dashboardID)
	if dash == nil {
		return Dashboard{}, false
	}
	if patch.Name != nil {
		dash.Name = *patch.Name
	}
	if patch.DateFilter != nil {
		dash.DateFilter = *patch.DateFilter
	}
	dash.UpdatedAt = s.now()
	return cloneDashboard(*dash), true
}

// Delete removes the dashboard and everything it owns.
func (s *InMemoryDashboardStore) Delete(userID, dashboardID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	dashboards := s.byUser[userID]
	for i := range dashboards {
		if dashboards[i].ID == dashboardID {
			s.byUser[userID] = append(dashboards[:i:i], dashboards[i+1:]...)
			return true
		}
	}
	return false
}

// Get returns a copy of the dashboard.
func (s *InMemoryDashboardStore) Get(userID, dashboardID string) (Dashboard, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if dash := s.find(userID, dashboardID); dash != nil {
		return cloneDashboard(*dash), true
	}
	return Dashboard{}, false
}

// List returns copies of the user's dashboards in creation order.
func (s *InMemoryDashboardStore) List(userID string) []Dashboard {
	s.mu.RLock()
	defer s.mu.RUnlock()
	dashboards := s.byUser[userID]
	out := make([]Dashboard, len(dashboards))
	for i, d := range dashboards {
		out[i] = cloneDashboard(d)
	}
	return out
}

// AddWidget appends the widget to the dashboard's sequence.
func (s *InMemoryDashboardStore) AddWidget(userID, dashboardID string, cfg WidgetConfig) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	dash := s.find(userID, dashboardID)
	if dash == nil {
		return false
	}
	dash.Widgets = append(dash.Widgets, cfg.Clone())
	dash.UpdatedAt = s.now()
	return true
}

// Widget returns a copy of the matching widget.
func (s *InMemoryDashboardStore) Widget(userID, dashboardID, widgetID string) (WidgetConfig, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	dash := s.find(userID, dashboardID)
	if dash == nil {
		return WidgetConfig{}, false
	}
	for _, w := range dash.Widgets {
		if w.ID == widgetID {
			return w.Clone(), true
		}
	}
	return WidgetConfig{}, false
}

// UpdateWidget shallow-merges the patch into the matching widget. The widget
// keeps its variant tag; only same-kind fields apply.
func (s *InMemoryDashboardStore) UpdateWidget(userID, dashboardID, widgetID string, patch WidgetPatch) (WidgetConfig, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	dash := s.find(userID, dashboardID)
	if dash == nil {
		return WidgetConfig{}, false
	}
	for i := range dash.Widgets {
		if dash.Widgets[i].ID != widgetID {
			continue
		}
		patch.apply(&dash.Widgets[i])
		dash.UpdatedAt = s.now()
		return dash.Widgets[i].Clone(), true
	}
	return WidgetConfig{}, false
}

// RemoveWidget drops the widget from the sequence.
func (s *InMemoryDashboardStore) RemoveWidget(userID, dashboardID, widgetID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	dash := s.find(userID, dashboardID)
	if dash == nil {
		return false
	}
	for i := range dash.Widgets {
		if dash.Widgets[i].ID == widgetID {
			dash.Widgets = append(dash.Widgets[:i:i], dash.Widgets[i+1:]...)
			dash.UpdatedAt = s.now()
			return true
		}
	}
	return false
}

// MoveWidget updates position only.
func (s *InMemoryDashboardStore) MoveWidget(userID, dashboardID, widgetID string, x, y int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	dash := s.find(userID, dashboardID)
	if dash == nil {
		return false
	}
	for i := range dash.Widgets {
		if dash.Widgets[i].ID == widgetID {
			dash.Widgets[i].X = x
			dash.Widgets[i].Y = y
			dash.UpdatedAt = s.now()
			return true
		}
	}
	return false
}

// Replace swaps the user's dashboards wholesale, used on snapshot restore.
func (s *InMemoryDashboardStore) Replace(userID string, dashboards []Dashboard) {
	copied := make([]Dashboard, len(dashboards))
	for i, d := range dashboards {
		copied[i] = cloneDashboard(d)
	}
	s.mu.Lock()
	s.byUser[userID] = copied
	s.mu.Unlock()
}

// All returns a copy of every user partition, used on snapshot flush.
func (s *InMemoryDashboardStore) All() map[string][]Dashboard {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string][]Dashboard, len(s.byUser))
	for user, dashboards := range s.byUser {
		copied := make([]Dashboard, len(dashboards))
		for i, d := range dashboards {
			copied[i] = cloneDashboard(d)
		}
		out[user] = copied
	}
	return out
}

func (s *InMemoryDashboardStore) find(userID, dashboardID string) *Dashboard {
	dashboards := s.byUser[userID]
	for i := range dashboards {
		if dashboards[i].ID == dashboardID {
			return &dashboards[i]
		}
	}
	return nil
}

func cloneDashboard(d Dashboard) Dashboard {
	out := d
	out.Widgets = make([]WidgetConfig, len(d.Widgets))
	for i, w := range d.Widgets {
		out.Widgets[i] = w.Clone()
	}
	return out
}
