// Package sample serves the demo expense collection the tracker starts with.
package sample

import (
	"context"
	"time"

	"expensetracker/internal/core"
)

// DefaultLatency mimics a remote fetch.
const DefaultLatency = 500 * time.Millisecond

type seed struct {
	id          string
	units       int64
	category    core.Category
	description string
	daysAgo     int
}

var seeds = []seed{
	{"exp1", 2500, core.Food, "Grocery shopping", 5},
	{"exp2", 1400, core.Transport, "Grab ride", 7},
	{"exp3", 6000, core.Bills, "Electricity bill", 10},
	{"exp4", 4500, core.Shopping, "New shirt", 15},
	{"exp5", 1800, core.Entertainment, "Movie tickets", 20},
	{"exp6", 3500, core.Health, "Doctor's appointment", 25},
	{"exp7", 10000, core.Education, "Online course", 30},
	{"exp8", 750, core.Other, "Donation", 35},
	{"exp9", 3200, core.Food, "Restaurant dinner", 40},
	{"exp10", 1200, core.Transport, "Taxi fare", 45},
	{"exp11", 5500, core.Bills, "Water bill", 50},
	{"exp12", 8000, core.Shopping, "New shoes", 55},
	{"exp13", 2500, core.Entertainment, "Concert tickets", 60},
	{"exp14", 1500, core.Health, "Medicine", 65},
	{"exp15", 7500, core.Education, "Books", 70},
	{"exp16", 1000, core.Other, "Gift", 75},
}

// Source returns the sample collection after a simulated delay.
type Source struct {
	Latency time.Duration
	Now     func() time.Time
}

func NewSource(latency time.Duration) *Source {
	return &Source{Latency: latency, Now: time.Now}
}

// Expenses returns a fresh copy of the sample collection, dated relative to
// today. It returns ctx.Err() if the context ends before the delay elapses.
func (s *Source) Expenses(ctx context.Context) ([]core.Expense, error) {
	if s.Latency > 0 {
		timer := time.NewTimer(s.Latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return Expenses(core.DateOf(now())), nil
}

// Expenses builds the sample collection with dates counted back from today.
func Expenses(today core.Date) []core.Expense {
	out := make([]core.Expense, 0, len(seeds))
	for _, sd := range seeds {
		out = append(out, core.Expense{
			ID:          sd.id,
			Amount:      core.FromUnits(sd.units),
			Category:    sd.category,
			Description: sd.description,
			Date:        core.Date{Time: today.AddDate(0, 0, -sd.daysAgo)},
		})
	}
	return out
}
