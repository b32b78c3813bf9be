package listdata

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/puzpuzpuz/xsync/v3"
	"go.uber.org/zap"
)

// ErrNotInView reports a mutation aimed at an entity that is not part of
// the currently rendered rows.
var ErrNotInView = errors.New("listdata: entity not in current view")

// Update describes one optimistic field mutation.
type Update[T any] struct {
	// EntityID addresses the row.
	EntityID string

	// Field names the mutated field. Fencing is scoped to the
	// (entity, field) pair, so concurrent edits to different fields of
	// one row never interfere.
	Field string

	// Loading is the pending set the row's control is keyed on.
	Loading *LoadingSet

	// Apply computes the projected row shown until the backend answers.
	Apply func(T) T

	// Call performs the remote mutation. A non-nil result is the
	// backend's authoritative version of the row and replaces the
	// projection.
	Call func(ctx context.Context) (*T, error)

	// Revert restores the mutated field of cur from prev, leaving the
	// other fields alone. Nil falls back to replacing the whole row with
	// prev on rollback, which is only safe while no other field of the
	// row is being edited at the same time.
	Revert func(cur, prev T) T

	// OnError, if set, is invoked after the rollback with the failure.
	// The UI surfaces it as a toast or inline notice.
	OnError func(error)

	// AfterSuccess, if set, runs once per confirmed mutation. Stats
	// refresh hangs off this hook.
	AfterSuccess func()
}

func (u Update[T]) validate() error {
	switch {
	case u.EntityID == "":
		return errors.New("listdata: update requires EntityID")
	case u.Field == "":
		return fmt.Errorf("listdata: update for entity %q requires Field", u.EntityID)
	case u.Loading == nil:
		return fmt.Errorf("listdata: update for entity %q requires Loading", u.EntityID)
	case u.Apply == nil:
		return fmt.Errorf("listdata: update for entity %q requires Apply", u.EntityID)
	case u.Call == nil:
		return fmt.Errorf("listdata: update for entity %q requires Call", u.EntityID)
	}
	return nil
}

// Executor applies optimistic mutations to a dataset and reconciles them
// with the backend's answer.
//
// Per update: snapshot the row, show the projection, mark the row pending,
// call the backend. Success keeps the projection or swaps in the
// authoritative row; failure restores the exact snapshot. The pending
// token is released exactly once on every path.
//
// Overlapping updates to one (entity, field) are fenced with a monotonic
// sequence: when an update settles after a newer one started, it releases
// its token and writes nothing, whatever the backend answered. The last
// update started owns the row.
type Executor[T any] struct {
	kind    string
	seqs    *xsync.MapOf[string, uint64]
	logger  *zap.Logger
	metrics *Metrics
	wg      sync.WaitGroup
}

// NewExecutor returns an executor for one list kind. A nil logger
// disables logging, nil metrics disable counting.
func NewExecutor[T any](kind string, logger *zap.Logger, metrics *Metrics) *Executor[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor[T]{
		kind:    kind,
		seqs:    xsync.NewMapOf[string, uint64](),
		logger:  logger,
		metrics: metrics,
	}
}

// Do applies the update to view optimistically and launches the remote
// call in the background. It returns once the projection is visible,
// without waiting for the backend. ErrNotInView means the entity is not
// rendered and nothing was changed or called.
func (e *Executor[T]) Do(ctx context.Context, view *Dataset[T], u Update[T]) error {
	if err := u.validate(); err != nil {
		return err
	}

	seq := e.nextSeq(u.EntityID, u.Field)

	prev, ok := view.Apply(u.EntityID, u.Apply)
	if !ok {
		return ErrNotInView
	}

	u.Loading.Add(u.EntityID)
	e.wg.Add(1)
	go e.settle(ctx, view, u, prev, seq)
	return nil
}

func (e *Executor[T]) settle(ctx context.Context, view *Dataset[T], u Update[T], prev T, seq uint64) {
	defer e.wg.Done()
	defer u.Loading.Remove(u.EntityID)

	confirmed, err := u.Call(ctx)
	latest := e.isLatest(u.EntityID, u.Field, seq)

	if err != nil {
		if latest {
			// Roll back. A row that left the view in the meantime stays
			// gone.
			if u.Revert != nil {
				view.Apply(u.EntityID, func(cur T) T { return u.Revert(cur, prev) })
			} else {
				view.Replace(u.EntityID, prev)
			}
			e.metrics.RecordMutation(e.kind, OutcomeRolledBack)
		} else {
			e.metrics.RecordMutation(e.kind, OutcomeDropped)
		}
		e.logger.Warn("mutation failed",
			zap.String("kind", e.kind),
			zap.String("entity_id", u.EntityID),
			zap.String("field", u.Field),
			zap.Bool("rolled_back", latest),
			zap.Error(err),
		)
		if u.OnError != nil {
			u.OnError(err)
		}
		return
	}

	if latest && confirmed != nil {
		view.Replace(u.EntityID, *confirmed)
	}
	e.metrics.RecordMutation(e.kind, OutcomeConfirmed)
	if u.AfterSuccess != nil {
		u.AfterSuccess()
	}
}

func (e *Executor[T]) nextSeq(id, field string) uint64 {
	seq, _ := e.seqs.Compute(seqKey(id, field), func(cur uint64, _ bool) (uint64, bool) {
		return cur + 1, false
	})
	return seq
}

func (e *Executor[T]) isLatest(id, field string, seq uint64) bool {
	cur, _ := e.seqs.Load(seqKey(id, field))
	return cur == seq
}

func seqKey(id, field string) string {
	return id + "\x00" + field
}

// Wait blocks until every launched mutation has settled. Shutdown and
// tests use it; the UI never has to.
func (e *Executor[T]) Wait() {
	e.wg.Wait()
}
