package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/worldsacross/tutor-viewer/internal/listing"
	"github.com/worldsacross/tutor-viewer/internal/model"
)

// directory is the list view-controller shared by tutors, students and
// classes: it owns a snapshot of one upstream collection plus the search,
// filter and page state of a single viewer. HTTP handlers never touch that
// state; they answer through Query, which works on a clone.
type directory[T, V any] struct {
	fetch    func(ctx context.Context) ([]T, error)
	decorate func(T) T
	view     func(item T, now time.Time) V
	idOf     func(T) model.ID
	header   model.PageHeader
	log      zerolog.Logger
	now      func() time.Time

	mu       sync.RWMutex
	list     *listing.Collection[T]
	loadedAt time.Time
	started  uint64 // loads begun
	applied  uint64 // sequence of the load behind the snapshot
}

// Load fetches the collection. On failure the error is logged and returned,
// and the previous snapshot, search term and page stay as they were. When
// loads overlap, a response never replaces the snapshot of a load that
// started after it.
func (d *directory[T, V]) Load(ctx context.Context) error {
	d.mu.Lock()
	d.started++
	seq := d.started
	d.mu.Unlock()

	items, err := d.fetch(ctx)
	if err != nil {
		d.log.Error().Err(err).Msg("Failed to load collection")
		return err
	}

	if d.decorate != nil {
		for i := range items {
			items[i] = d.decorate(items[i])
		}
	}

	d.mu.Lock()
	if seq < d.applied {
		d.mu.Unlock()
		d.log.Debug().Uint64("seq", seq).Msg("Discarded superseded load")
		return nil
	}
	d.list.Replace(items)
	d.applied = seq
	d.loadedAt = d.now()
	d.mu.Unlock()

	d.log.Debug().Int("count", len(items)).Msg("Collection loaded")
	return nil
}

// Loaded reports whether at least one Load succeeded.
func (d *directory[T, V]) Loaded() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return !d.loadedAt.IsZero()
}

// LoadedAt is the time of the last successful Load.
func (d *directory[T, V]) LoadedAt() time.Time {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.loadedAt
}

// Header returns the page title block.
func (d *directory[T, V]) Header() model.PageHeader {
	return d.header
}

// SetClock overrides the time source used for derived fields.
func (d *directory[T, V]) SetClock(now func() time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.now = now
}

func (d *directory[T, V]) clock() time.Time {
	d.mu.RLock()
	now := d.now
	d.mu.RUnlock()
	return now()
}

// Count is the size of the full collection.
func (d *directory[T, V]) Count() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.list.Len()
}

// All returns the full collection.
func (d *directory[T, V]) All() []T {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.list.All()
}

// SetSearchTerm filters the viewer state and goes back to page 1.
func (d *directory[T, V]) SetSearchTerm(term string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.list.SetSearchTerm(term)
}

// SetPage moves the viewer to page n; out-of-range values are ignored.
func (d *directory[T, V]) SetPage(n int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.list.SetPage(n)
}

// PageNumbers returns 1..TotalPages of the viewer state.
func (d *directory[T, V]) PageNumbers() []int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.list.PageNumbers()
}

// Page returns the viewer's current page with derived fields.
func (d *directory[T, V]) Page() listing.PageResult[V] {
	d.mu.RLock()
	p := d.list.Page()
	d.mu.RUnlock()
	return d.mapPage(p)
}

// Filtered returns the viewer's whole filtered view with derived fields.
func (d *directory[T, V]) Filtered() []V {
	d.mu.RLock()
	items := d.list.Filtered()
	d.mu.RUnlock()
	return d.mapItems(items)
}

func (d *directory[T, V]) setFilter(f listing.Filter[T]) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.list.SetFilter(f)
}

// Get looks a record up by id in the current snapshot.
func (d *directory[T, V]) Get(id model.ID) (V, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, it := range d.list.All() {
		if d.idOf(it) == id {
			return d.view(it, d.now()), true
		}
	}
	var zero V
	return zero, false
}

// query applies search, filter and page to a private clone of the snapshot
// and returns it, leaving the viewer state untouched.
func (d *directory[T, V]) query(search string, filter listing.Filter[T], page int) *listing.Collection[T] {
	d.mu.RLock()
	c := d.list.Clone()
	d.mu.RUnlock()

	c.SetSearchTerm(search)
	c.SetFilter(filter)
	c.SetPage(page)
	return c
}

func (d *directory[T, V]) mapPage(p listing.PageResult[T]) listing.PageResult[V] {
	now := d.clock()
	return listing.Map(p, func(it T) V { return d.view(it, now) })
}

func (d *directory[T, V]) mapItems(items []T) []V {
	now := d.clock()
	out := make([]V, len(items))
	for i, it := range items {
		out[i] = d.view(it, now)
	}
	return out
}
