package orderboard

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// OrderDraft is the caller-supplied portion of a new order. Identity,
// creation time, and the derived total are assigned by the repository.
type OrderDraft struct {
	FirstName     string      `json:"firstName"`
	LastName      string      `json:"lastName"`
	Email         string      `json:"email"`
	Phone         string      `json:"phone,omitempty"`
	StreetAddress string      `json:"streetAddress,omitempty"`
	City          string      `json:"city,omitempty"`
	State         string      `json:"state,omitempty"`
	PostalCode    string      `json:"postalCode,omitempty"`
	Country       string      `json:"country"`
	Product       string      `json:"product"`
	Quantity      int         `json:"quantity"`
	UnitPrice     float64     `json:"unitPrice"`
	Status        OrderStatus `json:"status"`
	CreatedBy     string      `json:"createdBy"`
}

// OrderPatch is a partial order update. Nil fields are left untouched. When
// Quantity or UnitPrice is present the total is recomputed from the merged
// values.
type OrderPatch struct {
	FirstName     *string      `json:"firstName,omitempty"`
	LastName      *string      `json:"lastName,omitempty"`
	Email         *string      `json:"email,omitempty"`
	Phone         *string      `json:"phone,omitempty"`
	StreetAddress *string      `json:"streetAddress,omitempty"`
	City          *string      `json:"city,omitempty"`
	State         *string      `json:"state,omitempty"`
	PostalCode    *string      `json:"postalCode,omitempty"`
	Country       *string      `json:"country,omitempty"`
	Product       *string      `json:"product,omitempty"`
	Quantity      *int         `json:"quantity,omitempty"`
	UnitPrice     *float64     `json:"unitPrice,omitempty"`
	Status        *OrderStatus `json:"status,omitempty"`
	CreatedBy     *string      `json:"createdBy,omitempty"`
}

// orderTotal is the single derivation point for the total amount. Every
// mutation path that touches quantity or unit price goes through it.
func orderTotal(quantity int, unitPrice float64) float64 {
	return float64(quantity) * unitPrice
}

// OrderRepository holds per-user order collections.
type OrderRepository interface {
	Add(userID string, draft OrderDraft) CustomerOrder
	Update(userID, orderID string, patch OrderPatch) (CustomerOrder, bool)
	Delete(userID, orderID string) bool
	Orders(userID string) []CustomerOrder
	Replace(userID string, orders []CustomerOrder)
	All() map[string][]CustomerOrder
}

// InMemoryOrderStore is the concurrency-safe default order repository.
type InMemoryOrderStore struct {
	mu     sync.RWMutex
	byUser map[string][]CustomerOrder
	now    func() time.Time
	newID  func() string
}

// NewInMemoryOrderStore creates an empty store.
func NewInMemoryOrderStore() *InMemoryOrderStore {
	return &InMemoryOrderStore{
		byUser: make(map[string][]CustomerOrder),
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
}

// Add assigns identity and creation time and derives the total.
func (s *InMemoryOrderStore) Add(userID string, draft OrderDraft) CustomerOrder {
	order := CustomerOrder{
		ID:            s.newID(),
		FirstName:     draft.FirstName,
		LastName:      draft.LastName,
		Email:         draft.Email,
		Phone:         draft.Phone,
		StreetAddress: draft.StreetAddress,
		City:          draft.City,
		State:         draft.State,
		PostalCode:    draft.PostalCode,
		Country:       draft.Country,
		Product:       draft.Product,
		Quantity:      draft.Quantity,
		UnitPrice:     draft.UnitPrice,
		TotalAmount:   orderTotal(draft.Quantity, draft.UnitPrice),
		Status:        draft.Status,
		CreatedBy:     draft.CreatedBy,
		CreatedAt:     s.now(),
	}
	s.mu.Lock()
	s.byUser[userID] = append(s.byUser[userID], order)
	s.mu.Unlock()
	return order
}

// Update merges the patch into the matching record. Unknown ids are a no-op
// and report false.
func (s *InMemoryOrderStore) Update(userID, orderID string, patch OrderPatch) (CustomerOrder, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	orders := s.byUser[userID]
	for i := range orders {
		if orders[i].ID != orderID {
			continue
		}
		merged := mergeOrder(orders[i], patch)
		orders[i] = merged
		return merged, true
	}
	return CustomerOrder{}, false
}

func mergeOrder(o CustomerOrder, patch OrderPatch) CustomerOrder {
	if patch.FirstName != nil {
		o.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		o.LastName = *patch.LastName
	}
	if patch.Email != nil {
		o.Email = *patch.Email
	}
	if patch.Phone != nil {
		o.Phone = *patch.Phone
	}
	if patch.StreetAddress != nil {
		o.StreetAddress = *patch.StreetAddress
	}
	if patch.City != nil {
		o.City = *patch.City
	}
	if patch.State != nil {
		o.State = *patch.State
	}
	if patch.PostalCode != nil {
		o.PostalCode = *patch.PostalCode
	}
	if patch.Country != nil {
		o.Country = *patch.Country
	}
	if patch.Product != nil {
		o.Product = *patch.Product
	}
	if patch.Status != nil {
		o.Status = *patch.Status
	}
	if patch.CreatedBy != nil {
		o.CreatedBy = *patch.CreatedBy
	}
	if patch.Quantity != nil || patch.UnitPrice != nil {
		if patch.Quantity != nil {
			o.Quantity = *patch.Quantity
		}
		if patch.UnitPrice != nil {
			o.UnitPrice = *patch.UnitPrice
		}
		o.TotalAmount = orderTotal(o.Quantity, o.UnitPrice)
	}
	return o
}

// Delete removes the record if present.
func (s *InMemoryOrderStore) Delete(userID, orderID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	orders := s.byUser[userID]
	for i := range orders {
		if orders[i].ID == orderID {
			s.byUser[userID] = append(orders[:i:i], orders[i+1:]...)
			return true
		}
	}
	return false
}

// Orders returns a copy of the user's collection in insertion order.
func (s *InMemoryOrderStore) Orders(userID string) []CustomerOrder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	orders := s.byUser[userID]
	out := make([]CustomerOrder, len(orders))
	copy(out, orders)
	return out
}

// Replace swaps the user's collection wholesale, used on snapshot restore.
func (s *InMemoryOrderStore) Replace(userID string, orders []CustomerOrder) {
	copied := make([]CustomerOrder, len(orders))
	copy(copied, orders)
	s.mu.Lock()
	s.byUser[userID] = copied
	s.mu.Unlock()
}

// All returns a copy of every user partition, used on snapshot flush.
func (s *InMemoryOrderStore) All() map[string][]CustomerOrder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string][]CustomerOrder, len(s.byUser))
	for user, orders := range s.byUser {
		copied := make([]CustomerOrder, len(orders))
		copy(copied, orders)
		out[user] = copied
	}
	return out
}

// FilterOrdersByDate returns the subset of orders whose creation time
// satisfies the filter relative to now. Window boundaries are inclusive.
func FilterOrdersByDate(orders []CustomerOrder, filter DateFilter, now time.Time) []CustomerOrder {
	if filter == "" || filter == FilterAllTime {
		out := make([]CustomerOrder, len(orders))
		copy(out, orders)
		return out
	}
	out := make([]CustomerOrder, 0, len(orders))
	for _, o := range orders {
		if matchDateFilter(o.CreatedAt, filter, now) {
			out = append(out, o)
		}
	}
	return out
}

func matchDateFilter(createdAt time.Time, filter DateFilter, now time.Time) bool {
	switch filter {
	case FilterToday:
		y1, m1, d1 := createdAt.Date()
		y2, m2, d2 := now.Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	case FilterLast7Days:
		return withinDays(createdAt, now, 7)
	case FilterLast30Days:
		return withinDays(createdAt, now, 30)
	case FilterLast90Days:
		return withinDays(createdAt, now, 90)
	default:
		return true
	}
}

func withinDays(createdAt, now time.Time, days int) bool {
	return now.Sub(createdAt) <= time.Duration(days)*24*time.Hour
}
