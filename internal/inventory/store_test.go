package inventory_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockpick/internal/domain"
	"stockpick/internal/inventory"
)

func setup(t *testing.T, items ...domain.Item) *inventory.Store {
	t.Helper()
	logger, _ := test.NewNullLogger()
	store, err := inventory.New(items, decimal.NewFromInt(10), logrus.NewEntry(logger))
	require.NoError(t, err)
	return store
}

func product(id int64, name string, stock int, price int64) domain.Item {
	return domain.Item{ID: domain.ItemID(id), Name: name, Stock: stock, UnitPrice: decimal.NewFromInt(price)}
}

func itemIDs(items []domain.Item) []domain.ItemID {
	out := make([]domain.ItemID, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestNew_Validation(t *testing.T) {
	t.Run("duplicate ids", func(t *testing.T) {
		_, err := inventory.New([]domain.Item{product(1, "a", 1, 1), product(1, "b", 1, 1)}, decimal.Zero, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})

	t.Run("negative stock", func(t *testing.T) {
		_, err := inventory.New([]domain.Item{product(1, "a", -1, 1)}, decimal.Zero, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})

	t.Run("zero stock is not admitted", func(t *testing.T) {
		store := setup(t, product(1, "a", 0, 1), product(2, "b", 3, 1))
		assert.Equal(t, []domain.ItemID{2}, itemIDs(store.Items()))
	})
}

func TestStore_CopiesDoNotAlias(t *testing.T) {
	store := setup(t, product(1, "a", 2, 1))

	items := store.Items()
	items[0].Stock = 50
	snap := store.Snapshot()
	snap.Items[0].Name = "changed"

	got := store.Items()
	assert.Equal(t, 2, got[0].Stock)
	assert.Equal(t, "a", got[0].Name)
}

func TestStore_VersionAndDigest(t *testing.T) {
	store := setup(t, product(1, "a", 2, 1))
	first := store.Snapshot()
	assert.Equal(t, uint64(0), first.Version)
	assert.NotEmpty(t, first.Digest)

	require.NoError(t, store.SetCeiling(decimal.NewFromInt(20)))
	second := store.Snapshot()
	assert.Equal(t, uint64(1), second.Version)
	assert.NotEqual(t, first.Digest, second.Digest)
	assert.True(t, store.Ceiling().Equal(decimal.NewFromInt(20)))

	// Same ceiling is a no-op.
	require.NoError(t, store.SetCeiling(decimal.RequireFromString("20.0")))
	assert.Equal(t, uint64(1), store.Snapshot().Version)

	require.NoError(t, store.ReplaceItems([]domain.Item{product(5, "e", 1, 4)}))
	third := store.Snapshot()
	assert.Equal(t, uint64(2), third.Version)
	assert.Equal(t, []domain.ItemID{5}, itemIDs(third.Items))
}

func TestStore_ReplaceItemsRejectsInvalidAndKeepsState(t *testing.T) {
	store := setup(t, product(1, "a", 2, 1))

	err := store.ReplaceItems([]domain.Item{product(2, "b", -4, 1)})

	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	assert.Equal(t, []domain.ItemID{1}, itemIDs(store.Items()))
}

func TestStore_Update(t *testing.T) {
	store := setup(t, product(1, "a", 2, 1), product(2, "b", 1, 1))

	t.Run("applies and drops exhausted items", func(t *testing.T) {
		snap, err := store.Update(func(items []domain.Item) ([]domain.Item, error) {
			for i := range items {
				items[i].Stock--
			}
			return items, nil
		})
		require.NoError(t, err)
		assert.Equal(t, []domain.ItemID{1}, itemIDs(snap.Items))
		assert.Equal(t, 1, snap.Items[0].Stock)
	})

	t.Run("error aborts", func(t *testing.T) {
		before := store.Snapshot()
		boom := errors.New("boom")
		_, err := store.Update(func(items []domain.Item) ([]domain.Item, error) {
			items[0].Stock = 100
			return nil, boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, before, store.Snapshot())
	})
}

func TestStore_Sort(t *testing.T) {
	items := []domain.Item{
		{ID: 1, Name: "banana", Stock: 3, UnitPrice: decimal.NewFromInt(2), Importer: "Zeta"},
		{ID: 2, Name: "Apple", Stock: 1, UnitPrice: decimal.NewFromInt(5), Importer: "alpha"},
		{ID: 3, Name: "cherry", Stock: 3, UnitPrice: decimal.NewFromInt(1), Importer: "Beta"},
	}

	cases := []struct {
		column     domain.Column
		descending bool
		want       []domain.ItemID
	}{
		{domain.ColumnName, false, []domain.ItemID{2, 1, 3}},
		{domain.ColumnUnitPrice, false, []domain.ItemID{3, 1, 2}},
		{domain.ColumnUnitPrice, true, []domain.ItemID{2, 1, 3}},
		{domain.ColumnStock, false, []domain.ItemID{2, 1, 3}},
		{domain.ColumnStock, true, []domain.ItemID{1, 3, 2}},
		{domain.ColumnImporter, false, []domain.ItemID{2, 3, 1}},
		{domain.ColumnID, true, []domain.ItemID{3, 2, 1}},
	}
	for _, tc := range cases {
		t.Run(string(tc.column), func(t *testing.T) {
			store := setup(t, items...)
			require.NoError(t, store.Sort(tc.column, tc.descending))
			assert.Equal(t, tc.want, itemIDs(store.Items()))
		})
	}

	t.Run("unknown column", func(t *testing.T) {
		store := setup(t, items...)
		err := store.Sort("colour", false)
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})
}

func TestStore_Subscribe(t *testing.T) {
	store := setup(t, product(1, "a", 2, 1))
	ch, cancel := store.Subscribe()
	defer cancel()

	require.NoError(t, store.SetCeiling(decimal.NewFromInt(11)))
	require.NoError(t, store.SetCeiling(decimal.NewFromInt(12)))

	select {
	case snap := <-ch:
		assert.Equal(t, uint64(2), snap.Version, "only the latest snapshot is kept")
		assert.True(t, snap.Ceiling.Equal(decimal.NewFromInt(12)))
	case <-time.After(time.Second):
		t.Fatal("no snapshot delivered")
	}

	cancel()
	_, open := <-ch
	assert.False(t, open)
	require.NoError(t, store.SetCeiling(decimal.NewFromInt(13)))
}
