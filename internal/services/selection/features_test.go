package selection_test

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/cucumber/godog"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"stockpick/internal/combination"
	"stockpick/internal/domain"
	"stockpick/internal/inventory"
	"stockpick/internal/services/selection"
)

type selectionTestContext struct {
	log     *logrus.Entry
	store   *inventory.Store
	service *selection.Service
	result  domain.EnumerationResult
	err     error
}

func (c *selectionTestContext) reset() {
	logger, _ := test.NewNullLogger()
	c.log = logrus.NewEntry(logger)
	c.store = nil
	c.service = nil
	c.result = domain.EnumerationResult{}
	c.err = nil
}

func (c *selectionTestContext) anInventory(table *godog.Table) error {
	var items []domain.Item
	for i, row := range table.Rows {
		if i == 0 {
			continue // header
		}
		id, err := strconv.ParseInt(row.Cells[0].Value, 10, 64)
		if err != nil {
			return err
		}
		stock, err := strconv.Atoi(row.Cells[2].Value)
		if err != nil {
			return err
		}
		price, err := decimal.NewFromString(row.Cells[3].Value)
		if err != nil {
			return err
		}
		items = append(items, domain.Item{
			ID:        domain.ItemID(id),
			Name:      row.Cells[1].Value,
			Stock:     stock,
			UnitPrice: price,
		})
	}
	store, err := inventory.New(items, decimal.Zero, c.log)
	if err != nil {
		return err
	}
	c.store = store
	c.service = selection.New(store, c.log)
	return nil
}

func (c *selectionTestContext) aCeilingOf(ceiling string) error {
	d, err := decimal.NewFromString(ceiling)
	if err != nil {
		return err
	}
	return c.store.SetCeiling(d)
}

func (c *selectionTestContext) iEnumerateCombinationsOfSize(size int) error {
	snap := c.store.Snapshot()
	c.result, c.err = combination.Enumerate(context.Background(), snap.Items, size, snap.Ceiling, combination.Options{})
	return nil
}

func (c *selectionTestContext) iCommitCombination(n int) error {
	if n < 1 || n > len(c.result.Combinations) {
		return fmt.Errorf("combination %d out of range (have %d)", n, len(c.result.Combinations))
	}
	_, c.err = c.service.Commit(context.Background(), c.result.Combinations[n-1])
	return nil
}

func (c *selectionTestContext) theCombinationsAre(want string) error {
	if c.err != nil {
		return fmt.Errorf("expected combinations but got error: %v", c.err)
	}
	got := make([]string, len(c.result.Combinations))
	for i, combo := range c.result.Combinations {
		ids := make([]string, combo.Len())
		for j, id := range combo.IDs() {
			ids[j] = id.String()
		}
		got[i] = strings.Join(ids, "+")
	}
	if strings.Join(got, ", ") != want {
		return fmt.Errorf("expected %q, got %q", want, strings.Join(got, ", "))
	}
	return nil
}

func (c *selectionTestContext) thereAreNoCombinations() error {
	if c.err != nil {
		return fmt.Errorf("expected empty result but got error: %v", c.err)
	}
	if len(c.result.Combinations) != 0 {
		return fmt.Errorf("expected no combinations, got %d", len(c.result.Combinations))
	}
	return nil
}

func (c *selectionTestContext) theRequestFailsWith(kind string) error {
	sentinels := map[string]error{
		"invalid argument":   domain.ErrInvalidArgument,
		"inconsistent state": domain.ErrInconsistentState,
	}
	want, ok := sentinels[kind]
	if !ok {
		return fmt.Errorf("unknown error kind %q", kind)
	}
	if !errors.Is(c.err, want) {
		return fmt.Errorf("expected %s, got %v", kind, c.err)
	}
	return nil
}

func (c *selectionTestContext) findItem(id int64) (domain.Item, bool) {
	for _, it := range c.store.Items() {
		if it.ID == domain.ItemID(id) {
			return it, true
		}
	}
	return domain.Item{}, false
}

func (c *selectionTestContext) itemHasStock(id int64, stock int) error {
	it, ok := c.findItem(id)
	if !ok {
		return fmt.Errorf("item %d not in inventory", id)
	}
	if it.Stock != stock {
		return fmt.Errorf("item %d: expected stock %d, got %d", id, stock, it.Stock)
	}
	return nil
}

func (c *selectionTestContext) itemIsNoLongerInTheInventory(id int64) error {
	if _, ok := c.findItem(id); ok {
		return fmt.Errorf("item %d still in inventory", id)
	}
	return nil
}

func (c *selectionTestContext) theRemovalsListItem(id int64) error {
	for _, r := range c.service.Removals() {
		if r.Item.ID == domain.ItemID(id) {
			return nil
		}
	}
	return fmt.Errorf("item %d not in removals", id)
}

func (c *selectionTestContext) thereIsSelection(n int) error {
	if got := len(c.service.Selections()); got != n {
		return fmt.Errorf("expected %d selections, got %d", n, got)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &selectionTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^an inventory:$`, tc.anInventory)
	ctx.Step(`^a ceiling of (-?[\d.]+)$`, tc.aCeilingOf)

	// When steps
	ctx.Step(`^I enumerate combinations of size (-?\d+)$`, tc.iEnumerateCombinationsOfSize)
	ctx.Step(`^I commit combination (\d+)$`, tc.iCommitCombination)

	// Then steps
	ctx.Step(`^the combinations are "([^"]*)"$`, tc.theCombinationsAre)
	ctx.Step(`^there are no combinations$`, tc.thereAreNoCombinations)
	ctx.Step(`^the request fails with "([^"]*)"$`, tc.theRequestFailsWith)
	ctx.Step(`^item (\d+) has stock (\d+)$`, tc.itemHasStock)
	ctx.Step(`^item (\d+) is no longer in the inventory$`, tc.itemIsNoLongerInTheInventory)
	ctx.Step(`^the removals list item (\d+)$`, tc.theRemovalsListItem)
	ctx.Step(`^there (?:is|are) (\d+) selections?$`, tc.thereIsSelection)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../../../features/selection.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
