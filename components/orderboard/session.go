package orderboard

import "sync"

// Session is the per-user interaction state: which dashboard is open, which
// widget is selected for configuration, and the global date filter applied
// to every widget's order view.
type Session struct {
	CurrentDashboardID string     `json:"currentDashboardId,omitempty"`
	SelectedWidgetID   string     `json:"selectedWidgetId,omitempty"`
	Configuring        bool       `json:"configuring"`
	DateFilter         DateFilter `json:"dateFilter"`
}

// SessionStore tracks interaction state per user.
type SessionStore interface {
	Session(userID string) Session
	SetCurrentDashboard(userID, dashboardID string)
	SetConfiguring(userID string, configuring bool)
	SelectWidget(userID, widgetID string)
	ClearSelection(userID string)
	SetDateFilter(userID string, filter DateFilter)

	// WidgetRemoved clears the selection when it pointed at the removed
	// widget; other selections stay put.
	WidgetRemoved(userID, widgetID string)
	// DashboardDeleted clears the current-dashboard reference when it pointed
	// at the deleted dashboard.
	DashboardDeleted(userID, dashboardID string)
}

// InMemorySessionStore is the concurrency-safe default session store.
type InMemorySessionStore struct {
	mu   sync.RWMutex
	data map[string]Session
}

// NewInMemorySessionStore creates an empty session store.
func NewInMemorySessionStore() *InMemorySessionStore {
	return &InMemorySessionStore{data: make(map[string]Session)}
}

// Session returns the stored state or defaults.
func (s *InMemorySessionStore) Session(userID string) Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sess, ok := s.data[userID]; ok {
		return sess
	}
	return Session{DateFilter: FilterAllTime}
}

// SetCurrentDashboard switches the open dashboard.
func (s *InMemorySessionStore) SetCurrentDashboard(userID, dashboardID string) {
	s.update(userID, func(sess *Session) {
		sess.CurrentDashboardID = dashboardID
	})
}

// SetConfiguring toggles configure mode. Leaving configure mode always clears
// the widget selection.
func (s *InMemorySessionStore) SetConfiguring(userID string, configuring bool) {
	s.update(userID, func(sess *Session) {
		sess.Configuring = configuring
		sess.SelectedWidgetID = ""
	})
}

// SelectWidget marks a widget active for configuration.
func (s *InMemorySessionStore) SelectWidget(userID, widgetID string) {
	s.update(userID, func(sess *Session) {
		sess.SelectedWidgetID = widgetID
	})
}

// ClearSelection drops the active widget, e.g. on a canvas background click.
func (s *InMemorySessionStore) ClearSelection(userID string) {
	s.update(userID, func(sess *Session) {
		sess.SelectedWidgetID = ""
	})
}

// SetDateFilter changes the global order window.
func (s *InMemorySessionStore) SetDateFilter(userID string, filter DateFilter) {
	s.update(userID, func(sess *Session) {
		sess.DateFilter = filter
	})
}

// WidgetRemoved clears a matching selection.
func (s *InMemorySessionStore) WidgetRemoved(userID, widgetID string) {
	s.update(userID, func(sess *Session) {
		if sess.SelectedWidgetID == widgetID {
			sess.SelectedWidgetID = ""
		}
	})
}

// DashboardDeleted clears a matching current-dashboard reference.
func (s *InMemorySessionStore) DashboardDeleted(userID, dashboardID string) {
	s.update(userID, func(sess *Session) {
		if sess.CurrentDashboardID == dashboardID {
			sess.CurrentDashboardID = ""
		}
	})
}

// All copies every stored session, keyed by user id.
func (s *InMemorySessionStore) All() map[string]Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]Session, len(s.data))
	for user, sess := range s.data {
		out[user] = sess
	}
	return out
}

func (s *InMemorySessionStore) update(userID string, fn func(*Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.data[userID]
	if !ok {
		sess = Session{DateFilter: FilterAllTime}
	}
	fn(&sess)
	s.data[userID] = sess
}
