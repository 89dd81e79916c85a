// Package aggregate derives read-only views from an expense collection and the
// current settings. Every function is pure: inputs are never modified and the
// same inputs always yield the same output.
package aggregate

import (
	"sort"
	"time"

	"github.com/jinzhu/now"

	"expensetracker/internal/core"
)

const (
	monthKeyLayout   = "2006-01"
	monthLabelLayout = "Jan 2006"
)

// TotalSpent sums every amount. An empty collection totals zero.
func TotalSpent(expenses []core.Expense) core.Money {
	var total core.Money
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// RemainingBudget is the monthly budget minus the total spent. A negative
// result means the budget is overspent.
func RemainingBudget(expenses []core.Expense, settings core.Settings) core.Money {
	return settings.MonthlyBudget.Sub(TotalSpent(expenses))
}

// ByCategory sums amounts per category. Categories without expenses are
// absent from the map.
func ByCategory(expenses []core.Expense) map[core.Category]core.Money {
	out := make(map[core.Category]core.Money)
	for _, e := range expenses {
		out[e.Category] = out[e.Category].Add(e.Amount)
	}
	return out
}

// CategorySeries turns a category map into a chart series sorted by amount
// descending, ties broken by category order.
func CategorySeries(byCategory map[core.Category]core.Money) []core.CategoryAmount {
	series := make([]core.CategoryAmount, 0, len(byCategory))
	for c, amount := range byCategory {
		series = append(series, core.CategoryAmount{
			Category: c,
			Amount:   amount,
			Color:    c.Color(),
		})
	}
	sort.Slice(series, func(i, j int) bool {
		if series[i].Amount.Cents != series[j].Amount.Cents {
			return series[i].Amount.Cents > series[j].Amount.Cents
		}
		return series[i].Category < series[j].Category
	})
	return series
}

// Filter selects expenses by inclusive date bounds and category. Nil fields
// do not constrain.
type Filter struct {
	Start    *core.Date
	End      *core.Date
	Category *core.Category
}

// IsEmpty reports whether f matches everything.
func (f Filter) IsEmpty() bool {
	return f.Start == nil && f.End == nil && f.Category == nil
}

// Match reports whether e satisfies every bound of f.
func (f Filter) Match(e core.Expense) bool {
	if f.Start != nil && e.Date.Compare(*f.Start) < 0 {
		return false
	}
	if f.End != nil && e.Date.Compare(*f.End) > 0 {
		return false
	}
	if f.Category != nil && e.Category != *f.Category {
		return false
	}
	return true
}

// Apply returns the matching expenses in their original order.
func (f Filter) Apply(expenses []core.Expense) []core.Expense {
	out := make([]core.Expense, 0, len(expenses))
	for _, e := range expenses {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	return out
}

// FilterExpenses is shorthand for Filter{...}.Apply(expenses).
func FilterExpenses(expenses []core.Expense, start, end *core.Date, category *core.Category) []core.Expense {
	return Filter{Start: start, End: end, Category: category}.Apply(expenses)
}

// MonthlySeries produces one bucket per calendar month between the earliest
// and latest expense, months without spending included. Every bucket carries
// the current monthly budget. An empty collection yields an empty series.
func MonthlySeries(expenses []core.Expense, settings core.Settings) []core.MonthlyComparison {
	if len(expenses) == 0 {
		return []core.MonthlyComparison{}
	}

	first, last := expenses[0].Date, expenses[0].Date
	actual := make(map[string]core.Money)
	for _, e := range expenses {
		if e.Date.Compare(first) < 0 {
			first = e.Date
		}
		if e.Date.Compare(last) > 0 {
			last = e.Date
		}
		key := monthKey(e.Date.Time)
		actual[key] = actual[key].Add(e.Amount)
	}

	start := now.With(first.Time).BeginningOfMonth()
	end := now.With(last.Time).BeginningOfMonth()

	var series []core.MonthlyComparison
	for m := start; !m.After(end); m = m.AddDate(0, 1, 0) {
		key := monthKey(m)
		series = append(series, core.MonthlyComparison{
			Month:  key,
			Label:  m.Format(monthLabelLayout),
			Actual: actual[key],
			Budget: settings.MonthlyBudget,
		})
	}
	return series
}

func monthKey(t time.Time) string {
	return t.Format(monthKeyLayout)
}

// Summarize computes every view at once.
func Summarize(expenses []core.Expense, settings core.Settings) core.Summary {
	total := TotalSpent(expenses)
	return core.Summary{
		Count:      len(expenses),
		Currency:   settings.Currency,
		Budget:     settings.MonthlyBudget,
		Total:      total,
		Remaining:  settings.MonthlyBudget.Sub(total),
		ByCategory: CategorySeries(ByCategory(expenses)),
		Monthly:    MonthlySeries(expenses, settings),
	}
}
