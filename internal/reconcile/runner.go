package reconcile

import (
	"fmt"
	"time"

	"github.com/pfrederiksen/toto-draws/internal/draw"
	"github.com/pfrederiksen/toto-draws/internal/logger"
	"github.com/pfrederiksen/toto-draws/internal/prize"
	"github.com/pfrederiksen/toto-draws/internal/store"
)

// checkpointEvery bounds how much work a crashed batch loses.
const checkpointEvery = 50

// Source is where draws come from: a catalog of fetchable draws plus the
// ability to fetch one draw or the latest one.
type Source interface {
	ListDraws() []draw.Locator
	FetchDraw(draw.Locator) (*draw.Record, error)
	FetchLatest() (*draw.Record, error)
}

// Runner reconciles the remote catalog against the local store, fetching and
// persisting whatever is missing.
type Runner struct {
	source Source
	store  store.Store
	now    func() time.Time
}

// NewRunner creates a Runner over a source and a store.
func NewRunner(source Source, st store.Store) *Runner {
	return &Runner{
		source: source,
		store:  st,
		now:    time.Now,
	}
}

// Result summarizes one update run. Errors holds per-draw failures; the run
// continues past them.
type Result struct {
	Appended int
	Skipped  int
	Errors   []string
}

// Update loads the local snapshot, diffs it against the remote catalog, and
// fetches every draw the store is missing. Each fetched draw gets its prize
// pool estimates computed before persisting. Progress is checkpointed during
// large batches so an interrupted run keeps what it fetched.
//
// An unreadable store is not fatal: the run proceeds from an empty baseline
// and every cataloged draw is treated as missing. An empty catalog falls back
// to fetching just the latest draw.
func (r *Runner) Update() (Result, error) {
	var result Result

	snapshot, err := r.store.Load()
	if err != nil {
		logger.Warn("Store unreadable, reconciling from empty baseline", logger.Fields{
			"error": err.Error(),
		})
		snapshot = store.NewSnapshot()
	}

	start := r.now()
	catalog := r.source.ListDraws()
	logger.RecordTiming("catalog_list", time.Since(start))

	if len(catalog) == 0 {
		return r.updateFromLatest(snapshot)
	}

	existing := make(map[int]bool, len(snapshot.Draws))
	for n := range snapshot.Draws {
		existing[n] = true
	}

	missing := Missing(catalog, existing)
	logger.Info("Reconciled catalog against store", logger.Fields{
		"cataloged": len(catalog),
		"stored":    len(snapshot.Draws),
		"to_fetch":  len(missing),
	})

	sinceCheckpoint := 0
	for _, loc := range missing {
		if loc.QueryString == "" {
			logger.Warn("Skipping unfetchable catalog entry", logger.Fields{
				"locator": loc.String(),
			})
			result.Skipped++
			continue
		}

		rec, err := r.source.FetchDraw(loc)
		if err != nil {
			logger.IncrCounter("draws_failed")
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", loc, err))
			continue
		}

		prize.Apply(rec)
		if snapshot.Upsert(rec) {
			result.Appended++
			logger.IncrCounter("draws_appended")
		} else {
			// Over-included entry whose number we could not recover up
			// front; the fetch confirmed we already had it.
			result.Skipped++
		}

		sinceCheckpoint++
		if sinceCheckpoint >= checkpointEvery {
			sinceCheckpoint = 0
			if err := r.store.Save(snapshot); err != nil {
				logger.Warn("Checkpoint save failed", logger.Fields{
					"error": err.Error(),
				})
			} else {
				logger.Debug("Checkpointed snapshot", logger.Fields{
					"draws": len(snapshot.Draws),
				})
			}
		}
	}

	if err := r.store.Save(snapshot); err != nil {
		return result, fmt.Errorf("saving snapshot: %w", err)
	}
	return result, nil
}

// updateFromLatest handles an unreachable or empty archive: fetch the latest
// draw directly, and log the Monday/Thursday dates the outage may be hiding.
func (r *Runner) updateFromLatest(snapshot *store.Snapshot) (Result, error) {
	var result Result

	logger.Warn("Draw catalog empty, falling back to latest draw", nil)
	for _, loc := range PlaceholderLocators(ExpectedDrawDates(r.now(), DefaultScheduleWindow)) {
		if !snapshotHasDate(snapshot, loc.DrawDate) {
			logger.Debug("Expected draw date not in store", logger.Fields{
				"date": loc.DrawDate.Format("2006-01-02"),
			})
		}
	}

	rec, err := r.source.FetchLatest()
	if err != nil {
		return result, fmt.Errorf("fetching latest draw: %w", err)
	}

	prize.Apply(rec)
	if snapshot.Upsert(rec) {
		result.Appended++
		logger.IncrCounter("draws_appended")
	} else {
		result.Skipped++
	}

	if err := r.store.Save(snapshot); err != nil {
		return result, fmt.Errorf("saving snapshot: %w", err)
	}
	return result, nil
}

func snapshotHasDate(snapshot *store.Snapshot, date time.Time) bool {
	for _, rec := range snapshot.Draws {
		if rec.DrawDate.Equal(date) {
			return true
		}
	}
	return false
}
