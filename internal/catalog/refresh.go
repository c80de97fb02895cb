package catalog

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultRefreshInterval is how often the catalog is rebuilt.
const DefaultRefreshInterval = time.Hour

// FeedResult is one feed's contribution to a refresh cycle.
type FeedResult struct {
	Entries []Entry

	// ImageTemplate is set only by feeds that publish a URL template.
	ImageTemplate string
}

// Feed fetches one provider's emote dataset.
type Feed interface {
	Name() string
	Source() Source
	Fetch(ctx context.Context) (FeedResult, error)
}

// OnRefresh is invoked after every cycle in which at least one feed updated.
type OnRefresh func(ctx context.Context)

// Refresher periodically rebuilds the catalog from its feeds and swaps the
// new snapshot into the store.
type Refresher struct {
	store     *Store
	feeds     []Feed
	interval  time.Duration
	onRefresh OnRefresh
}

// NewRefresher creates a refresher for the given store and feeds.
func NewRefresher(store *Store, feeds []Feed, interval time.Duration, cb OnRefresh) *Refresher {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &Refresher{
		store:     store,
		feeds:     feeds,
		interval:  interval,
		onRefresh: cb,
	}
}

// Run refreshes once immediately and then on every tick. It blocks until ctx
// is cancelled.
func (r *Refresher) Run(ctx context.Context) {
	slog.Info("Catalog refresher started", "feeds", len(r.feeds), "interval", r.interval)

	r.Refresh(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Catalog refresher stopped")
			return
		case <-ticker.C:
			r.Refresh(ctx)
		}
	}
}

// Refresh runs one cycle: fetch every feed, merge the results into a new
// snapshot, and swap it in. A feed that fails or returns nothing keeps its
// previous generation's entries, so one provider outage never shrinks the
// catalog to empty.
func (r *Refresher) Refresh(ctx context.Context) {
	prev := r.store.Snapshot()
	results := make([]FeedResult, len(r.feeds))
	updated := make([]bool, len(r.feeds))

	g, fetchCtx := errgroup.WithContext(ctx)
	for i, feed := range r.feeds {
		g.Go(func() error {
			res, err := feed.Fetch(fetchCtx)
			if err != nil {
				slog.Warn("Catalog feed failed, keeping previous entries", "feed", feed.Name(), "err", err)
				return nil
			}
			if len(res.Entries) == 0 {
				slog.Warn("Catalog feed returned no entries, keeping previous", "feed", feed.Name())
				return nil
			}
			results[i] = res
			updated[i] = true
			return nil
		})
	}
	g.Wait()

	next := &Snapshot{ImageTemplate: prev.ImageTemplate}
	anyUpdated := false
	for i, feed := range r.feeds {
		if updated[i] {
			anyUpdated = true
			next.Entries = append(next.Entries, results[i].Entries...)
			if results[i].ImageTemplate != "" {
				next.ImageTemplate = results[i].ImageTemplate
			}
			continue
		}
		next.Entries = append(next.Entries, carryOver(prev, feed.Source())...)
	}

	if !anyUpdated {
		slog.Error("Catalog refresh: every feed failed, keeping previous snapshot", "entries", len(prev.Entries))
		return
	}

	r.store.Replace(next)
	slog.Info("Catalog refreshed", "entries", len(next.Entries))

	if r.onRefresh != nil {
		r.onRefresh(ctx)
	}
}

func carryOver(prev *Snapshot, src Source) []Entry {
	var kept []Entry
	for _, e := range prev.Entries {
		if e.Source == src {
			kept = append(kept, e)
		}
	}
	return kept
}
