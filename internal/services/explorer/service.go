package explorer

import (
	"context"
	"fmt"
	"sync"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"stockpick/internal/domain"
)

// ErrEnumerationFailed is reported when an enumeration fails unexpectedly.
// The request can be retried.
var ErrEnumerationFailed = errors.New(domain.ErrMsgEnumerationFailure)

// Service owns the UI-facing session state.
type Service struct {
	store domain.InventoryStore
	enum  domain.Enumerator
	sel   domain.SelectionService
	log   *logrus.Entry

	// run serialises enumeration and commit.
	run sync.Mutex

	mu      sync.Mutex
	size    int
	gen     uint64
	cancel  context.CancelFunc
	results domain.EnumerationResult
	status  domain.Status
}

func New(
	store domain.InventoryStore,
	enum domain.Enumerator,
	sel domain.SelectionService,
	size int,
	log *logrus.Entry,
) *Service {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Service{
		store:   store,
		enum:    enum,
		sel:     sel,
		log:     log.WithField("component", "explorer"),
		size:    size,
		results: domain.EnumerationResult{Combinations: []domain.Combination{}},
		status:  domain.Status{Kind: domain.StatusOK, Message: "ready"},
	}
}

// Size returns the target combination size.
func (s *Service) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.size
}

// SetSize changes the target size used by the next Run. A size below one is
// rejected and the previous size and results are kept.
func (s *Service) SetSize(n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n < 1 {
		err := domain.InvalidArgumentf(domain.ErrMsgSizeNotPositive+" (got %d)", n)
		s.status = domain.Status{Kind: domain.StatusError, Message: err.Error()}
		return err
	}
	s.size = n
	return nil
}

// Ceiling returns the store's current ceiling.
func (s *Service) Ceiling() decimal.Decimal { return s.store.Ceiling() }

// SetCeiling updates the ceiling on the store.
func (s *Service) SetCeiling(d decimal.Decimal) error { return s.store.SetCeiling(d) }

// Run enumerates the current inventory at the current size and ceiling and
// publishes the result. A call superseded by a newer Run or Commit returns
// ErrCancelled and publishes nothing.
func (s *Service) Run(ctx context.Context) (domain.EnumerationResult, error) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	size := s.size
	if s.cancel != nil {
		s.cancel()
	}
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()
	defer cancel()

	s.run.Lock()
	defer s.run.Unlock()

	if s.superseded(gen) {
		return domain.EnumerationResult{}, errors.Wrap(domain.ErrCancelled, "superseded before start")
	}

	snap := s.store.Snapshot()
	res, err := s.enumerate(runCtx, snap, size)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return domain.EnumerationResult{}, errors.Wrap(domain.ErrCancelled, "superseded")
	}
	s.cancel = nil

	switch {
	case err == nil:
		res.SnapshotVersion = snap.Version
		res.Digest = snap.Digest
		s.results = res
		s.status = domain.Status{Kind: domain.StatusOK, Message: summary(res)}
		s.log.WithFields(logrus.Fields{
			"size":      size,
			"ceiling":   snap.Ceiling.String(),
			"version":   snap.Version,
			"found":     len(res.Combinations),
			"visited":   res.Visited,
			"digest":    snap.Digest,
			"truncated": res.Truncated,
		}).Info("enumeration published")
		return res, nil
	case errors.Is(err, domain.ErrCancelled):
		s.status = domain.Status{Kind: domain.StatusCancelled, Message: "enumeration cancelled"}
	case errors.Is(err, domain.ErrInvalidArgument):
		s.status = domain.Status{Kind: domain.StatusError, Message: err.Error()}
	default:
		s.status = domain.Status{Kind: domain.StatusError, Message: domain.ErrMsgEnumerationFailure}
	}
	return domain.EnumerationResult{}, err
}

// enumerate runs the enumerator, turning a panic into ErrEnumerationFailed.
func (s *Service) enumerate(ctx context.Context, snap domain.Snapshot, size int) (res domain.EnumerationResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.log.WithField("panic", r).Error("enumeration crashed")
			res, err = domain.EnumerationResult{}, errors.WithStack(ErrEnumerationFailed)
		}
	}()
	return s.enum.Enumerate(ctx, snap.Items, size, snap.Ceiling)
}

func (s *Service) superseded(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return gen != s.gen
}

// Commit cancels any running enumeration, waits for it to stop, then commits
// combination through the selection service.
func (s *Service) Commit(ctx context.Context, combination domain.Combination) (domain.CommitOutcome, error) {
	s.mu.Lock()
	s.gen++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.run.Lock()
	defer s.run.Unlock()

	out, err := s.sel.Commit(ctx, combination)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.status = domain.Status{Kind: domain.StatusError, Message: err.Error()}
		return out, err
	}
	msg := fmt.Sprintf("selected %s", combination.Names())
	if n := len(out.Removed); n > 0 {
		msg += fmt.Sprintf("; %d item(s) out of stock", n)
	}
	s.status = domain.Status{Kind: domain.StatusOK, Message: msg}
	return out, nil
}

// Pick commits the n-th (1-based) combination of the current results.
func (s *Service) Pick(ctx context.Context, n int) (domain.CommitOutcome, error) {
	s.mu.Lock()
	combos := s.results.Combinations
	s.mu.Unlock()
	if n < 1 || n > len(combos) {
		return domain.CommitOutcome{}, domain.InvalidArgumentf("no combination %d (have %d)", n, len(combos))
	}
	return s.Commit(ctx, combos[n-1])
}

// Results returns the last published enumeration result.
func (s *Service) Results() domain.EnumerationResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := s.results
	res.Combinations = append([]domain.Combination(nil), s.results.Combinations...)
	return res
}

// Status returns the current status line.
func (s *Service) Status() domain.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Service) Selections() []domain.SelectionRecord { return s.sel.Selections() }

func (s *Service) Removals() []domain.RemovalRecord { return s.sel.Removals() }

// Reset clears the selection and removal history.
func (s *Service) Reset() { s.sel.Reset() }

// Watch re-runs enumeration whenever the store publishes a new snapshot and
// hands every published result (or failure) to fn. Superseded runs are not
// reported. Watch returns when ctx is done.
func (s *Service) Watch(ctx context.Context, fn func(domain.EnumerationResult, error)) error {
	updates, unsubscribe := s.store.Subscribe()
	defer unsubscribe()

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-updates:
			if !ok {
				return nil
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				res, err := s.Run(ctx)
				if errors.Is(err, domain.ErrCancelled) {
					return
				}
				fn(res, err)
			}()
		}
	}
}

func summary(res domain.EnumerationResult) string {
	msg := fmt.Sprintf("%d combination(s) of %d within %s", len(res.Combinations), res.Size, res.Ceiling.StringFixed(2))
	if res.Truncated {
		msg += " (truncated)"
	}
	return msg
}
