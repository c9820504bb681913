package selection

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"stockpick/internal/domain"
)

// Apply commits combination against inventory and returns the next inventory
// together with the records the commit produced. inventory is not mutated.
func Apply(inventory []domain.Item, combination domain.Combination, ceiling decimal.Decimal, now time.Time) (domain.CommitOutcome, error) {
	if combination.Len() == 0 {
		return domain.CommitOutcome{}, domain.InvalidArgumentf(domain.ErrMsgEmptyCombination)
	}

	wanted := make(map[domain.ItemID]struct{}, combination.Len())
	for _, id := range combination.IDs() {
		if _, dup := wanted[id]; dup {
			return domain.CommitOutcome{}, domain.InvalidArgumentf(domain.ErrMsgDuplicateInCombo, id)
		}
		wanted[id] = struct{}{}
	}

	present := make(map[domain.ItemID]struct{}, len(inventory))
	for _, it := range inventory {
		present[it.ID] = struct{}{}
	}
	var missing []domain.ItemID
	for _, id := range combination.IDs() {
		if _, ok := present[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
		return domain.CommitOutcome{}, domain.InconsistentStatef(domain.ErrMsgItemsMissing, missing)
	}

	selection := domain.SelectionRecord{
		ID:          uuid.New(),
		Combination: domain.NewCombination(combination.Items),
		Ceiling:     ceiling,
		CommittedAt: now,
	}

	next := make([]domain.Item, 0, len(inventory))
	var removed []domain.RemovalRecord
	for _, it := range inventory {
		if _, ok := wanted[it.ID]; !ok {
			next = append(next, it)
			continue
		}
		it.Stock--
		if it.Stock <= 0 {
			removed = append(removed, domain.RemovalRecord{
				ID:          uuid.New(),
				SelectionID: selection.ID,
				Item:        it,
				RemovedAt:   now,
			})
			continue
		}
		next = append(next, it)
	}

	return domain.CommitOutcome{Items: next, Selection: selection, Removed: removed}, nil
}

// Service applies commits to an inventory store and keeps the session history.
type Service struct {
	store domain.InventoryStore
	log   *logrus.Entry
	now   func() time.Time

	mu         sync.Mutex
	selections []domain.SelectionRecord
	removals   []domain.RemovalRecord
}

func New(store domain.InventoryStore, log *logrus.Entry) *Service {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Service{
		store: store,
		log:   log.WithField("component", "selection"),
		now:   time.Now,
	}
}

// Commit applies combination atomically against the store. On error the
// inventory and both histories are left unchanged.
func (s *Service) Commit(ctx context.Context, combination domain.Combination) (domain.CommitOutcome, error) {
	if err := ctx.Err(); err != nil {
		return domain.CommitOutcome{}, errors.Wrap(err, "commit")
	}

	ceiling := s.store.Ceiling()
	now := s.now()

	var outcome domain.CommitOutcome
	_, err := s.store.Update(func(items []domain.Item) ([]domain.Item, error) {
		var err error
		outcome, err = Apply(items, combination, ceiling, now)
		if err != nil {
			return nil, err
		}
		return outcome.Items, nil
	})
	if err != nil {
		s.log.WithError(err).WithField("items", combination.IDs()).Warn("commit rejected")
		return domain.CommitOutcome{}, err
	}

	s.mu.Lock()
	s.selections = append(s.selections, outcome.Selection)
	s.removals = append(s.removals, outcome.Removed...)
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{
		"selection": outcome.Selection.ID,
		"items":     combination.IDs(),
		"total":     outcome.Selection.Combination.Total.String(),
		"removed":   len(outcome.Removed),
	}).Info("combination committed")
	return outcome, nil
}

// Selections returns a copy of the selection history in commit order.
func (s *Service) Selections() []domain.SelectionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.SelectionRecord, len(s.selections))
	copy(out, s.selections)
	return out
}

// Removals returns a copy of the removal history in commit order.
func (s *Service) Removals() []domain.RemovalRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.RemovalRecord, len(s.removals))
	copy(out, s.removals)
	return out
}

// Reset clears both histories.
func (s *Service) Reset() {
	s.mu.Lock()
	s.selections = nil
	s.removals = nil
	s.mu.Unlock()
	s.log.Info("history cleared")
}

// Compile-time assertion that Service implements domain.SelectionService.
var _ domain.SelectionService = (*Service)(nil)
