package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"

	"expensetracker/internal/aggregate"
	"expensetracker/internal/cache"
	"expensetracker/internal/core"
	"expensetracker/internal/log"
	"expensetracker/internal/settings"
	"expensetracker/internal/store"
)

// SummaryKey identifies a summary by the state it was computed from. Any
// mutation bumps a revision, so a cached summary is never stale.
type SummaryKey struct {
	Expenses uint64
	Settings uint64
	Filter   string
}

func (k SummaryKey) String() string {
	return fmt.Sprintf("%d/%d/%s", k.Expenses, k.Settings, k.Filter)
}

// Dashboard serves derived views of the expense collection.
type Dashboard struct {
	store    *store.Store
	settings *settings.Store
	cache    cache.Cache[SummaryKey, core.Summary]
	group    singleflight.Group
	logger   *log.Logger
}

func NewDashboard(st *store.Store, set *settings.Store, c cache.Cache[SummaryKey, core.Summary], logger *log.Logger) *Dashboard {
	return &Dashboard{
		store:    st,
		settings: set,
		cache:    c,
		logger:   logger.WithComponent(log.ComponentDashboard),
	}
}

// Summary returns every aggregate over the expenses matching f.
func (d *Dashboard) Summary(ctx context.Context, f aggregate.Filter) core.Summary {
	expenses, expRev := d.store.Snapshot()
	set, setRev := d.settings.Snapshot()
	key := SummaryKey{Expenses: expRev, Settings: setRev, Filter: filterKey(f)}

	if d.cache != nil {
		if sum, ok := d.cache.Get(key); ok {
			return sum
		}
	}

	v, _, shared := d.group.Do(key.String(), func() (any, error) {
		sum := aggregate.Summarize(f.Apply(expenses), set)
		if d.cache != nil {
			d.cache.Set(key, sum)
		}
		return sum, nil
	})

	d.logger.DebugContext(ctx, "Summary computed",
		log.FieldRevision, expRev,
		log.FieldCount, len(expenses),
		"shared", shared)
	return v.(core.Summary)
}

func (d *Dashboard) Categories(ctx context.Context, f aggregate.Filter) []core.CategoryAmount {
	return d.Summary(ctx, f).ByCategory
}

func (d *Dashboard) Monthly(ctx context.Context, f aggregate.Filter) []core.MonthlyComparison {
	return d.Summary(ctx, f).Monthly
}

func filterKey(f aggregate.Filter) string {
	var start, end, cat string
	if f.Start != nil {
		start = f.Start.String()
	}
	if f.End != nil {
		end = f.End.String()
	}
	if f.Category != nil {
		cat = f.Category.String()
	}
	return start + ".." + end + "|" + cat
}
