package listdata

import "sync"

// Dataset holds the rows currently rendered for one list view. The
// controller replaces the rows wholesale when it serves a page; the
// optimistic executor edits single rows in place so the operator sees a
// change before the backend confirms it. Reads hand out copies, callers
// never observe a row mid-edit.
type Dataset[T any] struct {
	mu    sync.RWMutex
	items []T
	idOf  func(T) string
}

// NewDataset returns an empty dataset. idOf extracts the entity ID rows
// are addressed by.
func NewDataset[T any](idOf func(T) string) *Dataset[T] {
	return &Dataset[T]{idOf: idOf}
}

// SetItems replaces every row.
func (d *Dataset[T]) SetItems(items []T) {
	rows := make([]T, len(items))
	copy(rows, items)

	d.mu.Lock()
	d.items = rows
	d.mu.Unlock()
}

// Items returns a copy of the current rows.
func (d *Dataset[T]) Items() []T {
	d.mu.RLock()
	defer d.mu.RUnlock()

	rows := make([]T, len(d.items))
	copy(rows, d.items)
	return rows
}

// Len returns how many rows are rendered.
func (d *Dataset[T]) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.items)
}

// Find returns the row with the given ID.
func (d *Dataset[T]) Find(id string) (T, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, item := range d.items {
		if d.idOf(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Replace swaps the row with the given ID for item. It reports false when
// the row is no longer rendered, in which case nothing changes.
func (d *Dataset[T]) Replace(id string, item T) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i := range d.items {
		if d.idOf(d.items[i]) == id {
			d.items[i] = item
			return true
		}
	}
	return false
}

// Apply reads the row with the given ID, applies fn, and stores the result
// as one atomic step. It returns the value the row held before fn ran, so
// the caller can restore it on rollback.
func (d *Dataset[T]) Apply(id string, fn func(T) T) (prev T, ok bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i := range d.items {
		if d.idOf(d.items[i]) == id {
			prev = d.items[i]
			d.items[i] = fn(prev)
			return prev, true
		}
	}
	return prev, false
}
