package orderboard

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

var demoFirstNames = []string{
	"Olivia", "Liam", "Emma", "Noah", "Ava",
	"Ethan", "Sophia", "Mason", "Isabella", "Lucas",
}

var demoLastNames = []string{
	"Tan", "Nguyen", "Smith", "Garcia", "Chen",
	"Patel", "Brown", "Kim", "Wilson", "Lee",
}

var demoStatuses = []OrderStatus{StatusPending, StatusInProgress, StatusCompleted}

// DemoOrderDrafts generates n deterministic order drafts for seeding demo
// data. The same seed always yields the same drafts.
func DemoOrderDrafts(n int, seed int64) []OrderDraft {
	rng := rand.New(rand.NewSource(seed))
	drafts := make([]OrderDraft, 0, n)
	for i := 0; i < n; i++ {
		first := demoFirstNames[rng.Intn(len(demoFirstNames))]
		last := demoLastNames[rng.Intn(len(demoLastNames))]
		drafts = append(drafts, OrderDraft{
			FirstName:     first,
			LastName:      last,
			Email:         fmt.Sprintf("%s.%s%d@example.com", strings.ToLower(first), strings.ToLower(last), i+1),
			Phone:         fmt.Sprintf("+1-555-%04d", rng.Intn(10000)),
			StreetAddress: fmt.Sprintf("%d Harbor Street", 100+rng.Intn(900)),
			City:          "Springfield",
			State:         "CA",
			PostalCode:    fmt.Sprintf("%05d", 10000+rng.Intn(90000)),
			Country:       Countries[rng.Intn(len(Countries))],
			Product:       Products[rng.Intn(len(Products))],
			Quantity:      1 + rng.Intn(5),
			UnitPrice:     float64(20+rng.Intn(180)) + 0.99,
			Status:        demoStatuses[rng.Intn(len(demoStatuses))],
			CreatedBy:     "demo",
		})
	}
	return drafts
}

// SpreadCreatedAt rewrites order creation times so seeded data covers the
// last ninety days, giving every date filter something to show.
func SpreadCreatedAt(orders []CustomerOrder, now time.Time, seed int64) []CustomerOrder {
	rng := rand.New(rand.NewSource(seed))
	out := make([]CustomerOrder, len(orders))
	for i, order := range orders {
		order.CreatedAt = now.Add(-time.Duration(rng.Intn(90*24)) * time.Hour)
		out[i] = order
	}
	return out
}
