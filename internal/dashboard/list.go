package dashboard

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/trogers1052/stock-dashboard/internal/models"
)

// ListController owns the working set and the list page state
type ListController struct {
	collection Collection
	publisher  Publisher
	pageSize   int

	mu           sync.Mutex
	state        State
	observers    map[int]func(View)
	nextObserver int

	// loadGen numbers each Load; appliedGen is the newest one applied.
	// deleted maps ids acknowledged as deleted while loads were in flight
	// to the loadGen at acknowledgment.
	loadGen    uint64
	appliedGen uint64
	loading    int
	deleted    map[string]uint64
}

// NewListController creates a ListController with an empty working set
func NewListController(collection Collection, opts ...Option) *ListController {
	o := buildOptions(opts)
	return &ListController{
		collection: collection,
		publisher:  o.publisher,
		pageSize:   o.pageSize,
		state:      State{CurrentPage: 1},
		observers:  make(map[int]func(View)),
		deleted:    make(map[string]uint64),
	}
}

// State returns a snapshot of the current state
func (c *ListController) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// View derives the current page
func (c *ListController) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return BuildView(c.state, c.pageSize)
}

// Subscribe registers fn to receive the view after every applied event.
// The returned func removes the subscription.
func (c *ListController) Subscribe(fn func(View)) func() {
	c.mu.Lock()
	id := c.nextObserver
	c.nextObserver++
	c.observers[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.observers, id)
		c.mu.Unlock()
	}
}

// Apply applies ev, keeps the current page in range and notifies observers
func (c *ListController) Apply(ev Event) View {
	c.mu.Lock()
	view, observers := c.applyLocked(ev)
	c.mu.Unlock()

	notify(observers, view)
	return view
}

// applyLocked must be called with c.mu held
func (c *ListController) applyLocked(ev Event) (View, []func(View)) {
	ev.apply(&c.state, c.pageSize)
	filtered := Filter(c.state.Records, c.state.SearchQuery, c.state.SelectedTradeCode)
	c.state.CurrentPage = clampPage(c.state.CurrentPage, TotalPages(len(filtered), c.pageSize))
	view := BuildView(c.state, c.pageSize)
	observers := make([]func(View), 0, len(c.observers))
	for _, fn := range c.observers {
		observers = append(observers, fn)
	}
	return view, observers
}

func notify(observers []func(View), view View) {
	for _, fn := range observers {
		fn(view)
	}
}

// Load fetches the full collection into the working set. A load that
// finishes after a newer one is discarded, and records deleted while it
// was in flight are left out.
func (c *ListController) Load(ctx context.Context) error {
	c.mu.Lock()
	c.loadGen++
	gen := c.loadGen
	c.loading++
	c.mu.Unlock()

	records, err := c.collection.ListAll(ctx)

	c.mu.Lock()
	c.loading--
	if err != nil {
		c.forgetDeletedLocked()
		c.mu.Unlock()
		log.Error().Err(err).Msg("Failed to load stock records")
		return fmt.Errorf("failed to load stock records: %w", err)
	}
	if gen < c.appliedGen {
		c.forgetDeletedLocked()
		c.mu.Unlock()
		log.Debug().Uint64("generation", gen).Msg("Discarded stale stock record load")
		return nil
	}

	kept := make([]models.StockRecord, 0, len(records))
	for _, r := range records {
		if deletedAt, ok := c.deleted[r.ID]; ok && deletedAt >= gen {
			continue
		}
		kept = append(kept, r)
	}
	c.appliedGen = gen
	c.forgetDeletedLocked()
	view, observers := c.applyLocked(RecordsLoaded{Records: kept})
	c.mu.Unlock()

	notify(observers, view)
	log.Debug().Int("count", len(kept)).Msg("Loaded stock records")
	return nil
}

// forgetDeletedLocked drops the deletion marks once no load is in flight
func (c *ListController) forgetDeletedLocked() {
	if c.loading == 0 && len(c.deleted) > 0 {
		c.deleted = make(map[string]uint64)
	}
}

// Delete removes id remotely and, once the server acknowledges, locally.
// On failure the working set is left unchanged.
func (c *ListController) Delete(ctx context.Context, id string) error {
	if err := c.collection.Delete(ctx, id); err != nil {
		log.Error().Err(err).Str("id", id).Msg("Failed to delete stock record")
		return fmt.Errorf("failed to delete stock record %s: %w", id, err)
	}

	c.mu.Lock()
	if c.loading > 0 {
		c.deleted[id] = c.loadGen
	}
	view, observers := c.applyLocked(RecordRemoved{ID: id})
	c.mu.Unlock()
	notify(observers, view)

	if c.publisher != nil {
		if err := c.publisher.PublishRecordDeleted(ctx, id); err != nil {
			log.Warn().Err(err).Str("id", id).Msg("Failed to publish record deleted event")
		}
	}
	return nil
}

// Export asks the remote API to write the dataset to path and returns its message
func (c *ListController) Export(ctx context.Context, path string) (string, error) {
	msg, err := c.collection.Export(ctx, path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("Failed to export stock records")
		return "", fmt.Errorf("failed to export stock records: %w", err)
	}
	return msg, nil
}

// SetSearchQuery filters rows by trade code substring
func (c *ListController) SetSearchQuery(query string) View {
	return c.Apply(SearchChanged{Query: query})
}

// ResetSearch clears the search text
func (c *ListController) ResetSearch() View {
	return c.Apply(SearchReset{})
}

// SelectTradeCode filters rows by exact trade code. Empty selects all.
func (c *ListController) SelectTradeCode(code string) View {
	return c.Apply(TradeCodeSelected{TradeCode: code})
}

// NextPage is a no-op on the last page
func (c *ListController) NextPage() View {
	return c.Apply(NextPage{})
}

// PreviousPage is a no-op on the first page
func (c *ListController) PreviousPage() View {
	return c.Apply(PreviousPage{})
}

// GoToPage jumps to page, clamped into range
func (c *ListController) GoToPage(page int) View {
	return c.Apply(PageSelected{Page: page})
}

// ApplyRemoteEvent folds a mutation made by another dashboard instance into
// the working set
func (c *ListController) ApplyRemoteEvent(event models.StockEvent) error {
	switch event.EventType {
	case models.EventRecordCreated:
		if event.Record == nil {
			return fmt.Errorf("created event %s has no record", event.EventID)
		}
		c.Apply(RecordAdded{Record: *event.Record})
	case models.EventRecordUpdated:
		if event.Record == nil {
			return fmt.Errorf("updated event %s has no record", event.EventID)
		}
		c.Apply(RecordReplaced{Record: *event.Record})
	case models.EventRecordDeleted:
		c.Apply(RecordRemoved{ID: event.RecordID})
	default:
		return fmt.Errorf("unknown event type: %s", event.EventType)
	}
	return nil
}
