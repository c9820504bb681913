package explorer_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockpick/internal/combination"
	"stockpick/internal/domain"
	"stockpick/internal/inventory"
	"stockpick/internal/services/explorer"
	"stockpick/internal/services/selection"
)

type enumerateFunc func(ctx context.Context, items []domain.Item, size int, ceiling decimal.Decimal) (domain.EnumerationResult, error)

// stubEnumerator delegates to fn when set and to the real search otherwise.
type stubEnumerator struct {
	mu sync.Mutex
	fn enumerateFunc
}

func (s *stubEnumerator) set(fn enumerateFunc) {
	s.mu.Lock()
	s.fn = fn
	s.mu.Unlock()
}

func (s *stubEnumerator) Enumerate(ctx context.Context, items []domain.Item, size int, ceiling decimal.Decimal) (domain.EnumerationResult, error) {
	s.mu.Lock()
	fn := s.fn
	s.mu.Unlock()
	if fn != nil {
		return fn(ctx, items, size, ceiling)
	}
	return combination.Enumerate(ctx, items, size, ceiling, combination.Options{})
}

// blockFirst returns an enumerateFunc whose first call blocks until its
// context is cancelled. started is closed once that call is running.
func blockFirst(started chan struct{}, onCancel func()) enumerateFunc {
	var calls int32
	return func(ctx context.Context, items []domain.Item, size int, ceiling decimal.Decimal) (domain.EnumerationResult, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(started)
			<-ctx.Done()
			if onCancel != nil {
				onCancel()
			}
			return domain.EnumerationResult{}, errors.Wrap(domain.ErrCancelled, ctx.Err().Error())
		}
		return combination.Enumerate(ctx, items, size, ceiling, combination.Options{})
	}
}

func setup(t *testing.T) (*inventory.Store, *stubEnumerator, *explorer.Service) {
	t.Helper()
	logger, _ := test.NewNullLogger()
	log := logrus.NewEntry(logger)
	items := []domain.Item{
		{ID: 1, Name: "chair", Stock: 2, UnitPrice: decimal.NewFromInt(5)},
		{ID: 2, Name: "table", Stock: 3, UnitPrice: decimal.NewFromInt(6)},
		{ID: 3, Name: "lamp", Stock: 1, UnitPrice: decimal.NewFromInt(7)},
		{ID: 4, Name: "rug", Stock: 1, UnitPrice: decimal.NewFromInt(3)},
	}
	store, err := inventory.New(items, decimal.NewFromInt(10), log)
	require.NoError(t, err)
	enum := &stubEnumerator{}
	svc := explorer.New(store, enum, selection.New(store, log), 2, log)
	return store, enum, svc
}

func idsOf(res domain.EnumerationResult) [][]domain.ItemID {
	out := make([][]domain.ItemID, len(res.Combinations))
	for i, c := range res.Combinations {
		out[i] = c.IDs()
	}
	return out
}

func TestRun_Publishes(t *testing.T) {
	store, _, svc := setup(t)

	res, err := svc.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, [][]domain.ItemID{{1, 4}, {2, 4}, {3, 4}}, idsOf(res))
	assert.Equal(t, store.Snapshot().Digest, res.Digest)
	assert.Equal(t, store.Snapshot().Version, res.SnapshotVersion)
	assert.Equal(t, idsOf(res), idsOf(svc.Results()))
	assert.Equal(t, domain.StatusOK, svc.Status().Kind)
}

func TestSetSize_InvalidKeepsState(t *testing.T) {
	_, _, svc := setup(t)
	before, err := svc.Run(context.Background())
	require.NoError(t, err)

	err = svc.SetSize(0)

	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	assert.Equal(t, 2, svc.Size())
	assert.Equal(t, domain.StatusError, svc.Status().Kind)
	assert.Equal(t, idsOf(before), idsOf(svc.Results()))
}

func TestRun_InvalidInitialSize(t *testing.T) {
	logger, _ := test.NewNullLogger()
	log := logrus.NewEntry(logger)
	store, err := inventory.New(nil, decimal.NewFromInt(10), log)
	require.NoError(t, err)
	svc := explorer.New(store, combination.New(combination.Options{}), selection.New(store, log), 0, log)

	_, err = svc.Run(context.Background())

	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	assert.Equal(t, domain.StatusError, svc.Status().Kind)
	assert.Empty(t, svc.Results().Combinations)
}

func TestRun_NewerSupersedesOlder(t *testing.T) {
	_, enum, svc := setup(t)
	started := make(chan struct{})
	enum.set(blockFirst(started, nil))

	first := make(chan error, 1)
	go func() {
		_, err := svc.Run(context.Background())
		first <- err
	}()
	<-started

	res, err := svc.Run(context.Background())
	require.NoError(t, err)

	select {
	case err := <-first:
		assert.ErrorIs(t, err, domain.ErrCancelled)
	case <-time.After(2 * time.Second):
		t.Fatal("superseded run did not return")
	}
	assert.Equal(t, idsOf(res), idsOf(svc.Results()))
	assert.Equal(t, domain.StatusOK, svc.Status().Kind)
}

func TestRun_PanicIsRecovered(t *testing.T) {
	_, enum, svc := setup(t)
	before, err := svc.Run(context.Background())
	require.NoError(t, err)

	enum.set(func(context.Context, []domain.Item, int, decimal.Decimal) (domain.EnumerationResult, error) {
		panic("index out of range")
	})
	_, err = svc.Run(context.Background())

	assert.ErrorIs(t, err, explorer.ErrEnumerationFailed)
	assert.Equal(t, domain.Status{Kind: domain.StatusError, Message: domain.ErrMsgEnumerationFailure}, svc.Status())
	assert.Equal(t, idsOf(before), idsOf(svc.Results()))
}

func TestRun_ParentCancelled(t *testing.T) {
	_, _, svc := setup(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Run(ctx)

	assert.ErrorIs(t, err, domain.ErrCancelled)
	assert.Equal(t, domain.StatusCancelled, svc.Status().Kind)
}

func TestCommit_WaitsForEnumeration(t *testing.T) {
	store, enum, svc := setup(t)
	res, err := svc.Run(context.Background())
	require.NoError(t, err)

	started := make(chan struct{})
	var seenAtCancel int32
	enum.set(blockFirst(started, func() {
		atomic.StoreInt32(&seenAtCancel, int32(len(store.Items())))
	}))
	running := make(chan error, 1)
	go func() {
		_, err := svc.Run(context.Background())
		running <- err
	}()
	<-started

	out, err := svc.Commit(context.Background(), res.Combinations[0])
	require.NoError(t, err)

	assert.ErrorIs(t, <-running, domain.ErrCancelled)
	assert.Equal(t, int32(4), atomic.LoadInt32(&seenAtCancel), "commit must not run while enumerating")
	assert.Len(t, store.Items(), 3)
	require.Len(t, out.Removed, 1)
	assert.Equal(t, domain.ItemID(4), out.Removed[0].Item.ID)
	assert.Len(t, svc.Selections(), 1)
	assert.Len(t, svc.Removals(), 1)
	assert.Equal(t, domain.StatusOK, svc.Status().Kind)
}

func TestPick(t *testing.T) {
	_, _, svc := setup(t)
	_, err := svc.Run(context.Background())
	require.NoError(t, err)

	_, err = svc.Pick(context.Background(), 9)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = svc.Pick(context.Background(), 1)
	require.NoError(t, err)

	_, err = svc.Pick(context.Background(), 2)
	assert.ErrorIs(t, err, domain.ErrInconsistentState, "results are stale until the next run")
	assert.Equal(t, domain.StatusError, svc.Status().Kind)

	svc.Reset()
	assert.Empty(t, svc.Selections())
}

func TestWatch_RerunsOnStoreChange(t *testing.T) {
	_, _, svc := setup(t)
	ctx, cancel := context.WithCancel(context.Background())

	results := make(chan domain.EnumerationResult, 16)
	done := make(chan error, 1)
	go func() {
		done <- svc.Watch(ctx, func(res domain.EnumerationResult, err error) {
			if err != nil {
				return
			}
			select {
			case results <- res:
			default:
			}
		})
	}()

	ceiling := int64(100)
	var got domain.EnumerationResult
	require.Eventually(t, func() bool {
		ceiling++
		_ = svc.SetCeiling(decimal.NewFromInt(ceiling))
		select {
		case got = <-results:
			return true
		case <-time.After(20 * time.Millisecond):
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)

	assert.Len(t, got.Combinations, 6)
	assert.True(t, got.Ceiling.GreaterThan(decimal.NewFromInt(100)))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop")
	}
}
