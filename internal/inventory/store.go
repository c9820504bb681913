package inventory

import (
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"stockpick/internal/crypto"
	"stockpick/internal/domain"
)

// Store is the single source of truth for the active inventory.
type Store struct {
	mu      sync.RWMutex
	items   []domain.Item
	ceiling decimal.Decimal
	version uint64
	digest  domain.Digest

	subsMu    sync.Mutex
	subs      map[int]chan domain.Snapshot
	nextID    int
	published uint64

	log *logrus.Entry
}

// New returns a Store seeded with items and ceiling.
func New(items []domain.Item, ceiling decimal.Decimal, log *logrus.Entry) (*Store, error) {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	s := &Store{
		ceiling: ceiling,
		subs:    make(map[int]chan domain.Snapshot),
		log:     log.WithField("component", "inventory"),
	}
	admitted, err := s.admit(items)
	if err != nil {
		return nil, err
	}
	s.items = admitted
	s.digest = crypto.SnapshotDigest(s.items, s.ceiling)
	return s, nil
}

// ReplaceItems swaps the whole item list.
func (s *Store) ReplaceItems(items []domain.Item) error {
	admitted, err := s.admit(items)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.items = admitted
	snap := s.commitLocked()
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{"items": len(admitted), "version": snap.Version}).Info("inventory replaced")
	s.publish(snap)
	return nil
}

// SetCeiling changes the price ceiling used by enumeration.
func (s *Store) SetCeiling(ceiling decimal.Decimal) error {
	s.mu.Lock()
	if s.ceiling.Equal(ceiling) {
		s.mu.Unlock()
		return nil
	}
	s.ceiling = ceiling
	snap := s.commitLocked()
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{"ceiling": ceiling.String(), "version": snap.Version}).Info("ceiling changed")
	s.publish(snap)
	return nil
}

// Items returns a copy of the active items in order.
func (s *Store) Items() []domain.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.CloneItems(s.items)
}

// Ceiling returns the current price ceiling.
func (s *Store) Ceiling() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ceiling
}

// Snapshot returns a consistent copy of items, ceiling and version.
func (s *Store) Snapshot() domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Update applies fn to a copy of the items under the write lock. The returned
// list replaces the inventory after admission checks; fn's error aborts.
func (s *Store) Update(fn func(items []domain.Item) ([]domain.Item, error)) (domain.Snapshot, error) {
	s.mu.Lock()
	next, err := fn(domain.CloneItems(s.items))
	if err != nil {
		s.mu.Unlock()
		return domain.Snapshot{}, err
	}
	admitted, err := s.admit(next)
	if err != nil {
		s.mu.Unlock()
		return domain.Snapshot{}, err
	}
	s.items = admitted
	snap := s.commitLocked()
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{"items": len(admitted), "version": snap.Version}).Debug("inventory updated")
	s.publish(snap)
	return snap, nil
}

// Sort reorders the inventory by column. The sort is stable, so equal keys
// keep their relative order; strings compare case-insensitively.
func (s *Store) Sort(column domain.Column, descending bool) error {
	less, err := lessFor(column)
	if err != nil {
		return err
	}
	_, err = s.Update(func(items []domain.Item) ([]domain.Item, error) {
		sort.SliceStable(items, func(i, j int) bool {
			if descending {
				return less(items[j], items[i])
			}
			return less(items[i], items[j])
		})
		return items, nil
	})
	return err
}

// Subscribe returns a channel receiving the newest snapshot after each
// mutation, and a func that unsubscribes. A slow reader only sees the latest.
func (s *Store) Subscribe() (<-chan domain.Snapshot, func()) {
	ch := make(chan domain.Snapshot, 1)

	s.subsMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	s.subsMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subsMu.Lock()
			delete(s.subs, id)
			s.subsMu.Unlock()
			close(ch)
		})
	}
}

// admit validates items and drops exhausted ones. It returns a fresh slice.
func (s *Store) admit(items []domain.Item) ([]domain.Item, error) {
	seen := make(map[domain.ItemID]struct{}, len(items))
	out := make([]domain.Item, 0, len(items))
	for _, it := range items {
		if _, dup := seen[it.ID]; dup {
			return nil, domain.InvalidArgumentf(domain.ErrMsgDuplicateItemID, it.ID)
		}
		seen[it.ID] = struct{}{}
		if it.Stock < 0 {
			return nil, domain.InvalidArgumentf(domain.ErrMsgNegativeStock, it.ID, it.Stock)
		}
		if it.Stock == 0 {
			s.log.WithField("item", it.ID).Debug("skipping item without stock")
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

func (s *Store) commitLocked() domain.Snapshot {
	s.version++
	s.digest = crypto.SnapshotDigest(s.items, s.ceiling)
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() domain.Snapshot {
	return domain.Snapshot{
		Items:   domain.CloneItems(s.items),
		Ceiling: s.ceiling,
		Version: s.version,
		Digest:  s.digest,
	}
}

// publish hands snap to every subscriber, replacing any undelivered older one.
func (s *Store) publish(snap domain.Snapshot) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	if snap.Version <= s.published {
		return
	}
	s.published = snap.Version
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- snap
	}
}

func lessFor(column domain.Column) (func(a, b domain.Item) bool, error) {
	switch column {
	case domain.ColumnID:
		return func(a, b domain.Item) bool { return a.ID < b.ID }, nil
	case domain.ColumnName:
		return func(a, b domain.Item) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }, nil
	case domain.ColumnStock:
		return func(a, b domain.Item) bool { return a.Stock < b.Stock }, nil
	case domain.ColumnImporter:
		return func(a, b domain.Item) bool { return strings.ToLower(a.Importer) < strings.ToLower(b.Importer) }, nil
	case domain.ColumnUnitPrice:
		return func(a, b domain.Item) bool { return a.UnitPrice.LessThan(b.UnitPrice) }, nil
	case domain.ColumnStockForAllUnit:
		return func(a, b domain.Item) bool { return a.StockForAllUnit.LessThan(b.StockForAllUnit) }, nil
	default:
		return nil, domain.InvalidArgumentf(domain.ErrMsgUnknownColumn, column)
	}
}

// Compile-time assertion that Store implements domain.InventoryStore.
var _ domain.InventoryStore = (*Store)(nil)
