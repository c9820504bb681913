package combination

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"stockpick/internal/domain"
)

// defaultCheckEvery is how many expanded nodes pass between context polls.
const defaultCheckEvery = 1024

// Options tunes an enumeration run. The zero value reproduces the plain search.
type Options struct {
	// MaxResults stops the search once this many combinations were found
	// and another one exists. Zero means unlimited.
	MaxResults int
	// CheckEvery is the context polling interval in expanded nodes.
	CheckEvery int
	// Logger receives one debug line per run. Optional.
	Logger *logrus.Entry
}

// Enumerator is a reusable domain.Enumerator bound to a set of options.
type Enumerator struct {
	opts Options
}

// New returns an Enumerator using opts for every run.
func New(opts Options) *Enumerator { return &Enumerator{opts: opts} }

// Enumerate implements domain.Enumerator.
func (e *Enumerator) Enumerate(
	ctx context.Context,
	items []domain.Item,
	size int,
	ceiling decimal.Decimal,
) (domain.EnumerationResult, error) {
	return Enumerate(ctx, items, size, ceiling, e.opts)
}

// Enumerate returns every combination of exactly size items whose total unit
// price is at most ceiling. items is never modified.
func Enumerate(
	ctx context.Context,
	items []domain.Item,
	size int,
	ceiling decimal.Decimal,
	opts Options,
) (domain.EnumerationResult, error) {
	res := domain.EnumerationResult{Size: size, Ceiling: ceiling}
	if size < 1 {
		return res, domain.InvalidArgumentf(domain.ErrMsgSizeNotPositive+" (got %d)", size)
	}
	if err := ctx.Err(); err != nil {
		return res, errors.Wrap(domain.ErrCancelled, err.Error())
	}
	if size > len(items) {
		res.Combinations = []domain.Combination{}
		return res, nil
	}

	s := &search{
		ctx:        ctx,
		items:      items,
		size:       size,
		ceiling:    ceiling,
		prune:      nonNegative(items),
		maxResults: opts.MaxResults,
		checkEvery: opts.CheckEvery,
		picked:     make([]int, 0, size),
		out:        []domain.Combination{},
	}
	if s.checkEvery <= 0 {
		s.checkEvery = defaultCheckEvery
	}
	s.walk(0, decimal.Zero)

	if opts.Logger != nil {
		opts.Logger.WithFields(logrus.Fields{
			"items":     len(items),
			"size":      size,
			"ceiling":   ceiling.String(),
			"visited":   s.visited,
			"found":     len(s.out),
			"pruning":   s.prune,
			"truncated": s.truncated,
		}).Debug("enumeration finished")
	}

	if s.err != nil {
		return res, errors.Wrap(domain.ErrCancelled, s.err.Error())
	}
	res.Combinations = s.out
	res.Visited = s.visited
	res.Truncated = s.truncated
	return res, nil
}

// search holds the mutable state of one backtracking run.
type search struct {
	ctx        context.Context
	items      []domain.Item
	size       int
	ceiling    decimal.Decimal
	prune      bool
	maxResults int
	checkEvery int

	visited   int
	picked    []int
	out       []domain.Combination
	truncated bool
	err       error
}

// walk extends the partial combination from index start. It returns false
// when the whole search must stop (cancellation or result cap).
func (s *search) walk(start int, total decimal.Decimal) bool {
	s.visited++
	if s.visited%s.checkEvery == 0 {
		if err := s.ctx.Err(); err != nil {
			s.err = err
			return false
		}
	}

	if len(s.picked) == s.size {
		if total.GreaterThan(s.ceiling) {
			return true
		}
		if s.maxResults > 0 && len(s.out) >= s.maxResults {
			s.truncated = true
			return false
		}
		s.emit(total)
		return true
	}

	// Candidates past last can never complete a combination of s.size.
	last := len(s.items) - (s.size - len(s.picked))
	for i := start; i <= last; i++ {
		next := total.Add(s.items[i].UnitPrice)
		if s.prune && next.GreaterThan(s.ceiling) {
			continue
		}
		s.picked = append(s.picked, i)
		ok := s.walk(i+1, next)
		s.picked = s.picked[:len(s.picked)-1]
		if !ok {
			return false
		}
	}
	return true
}

func (s *search) emit(total decimal.Decimal) {
	items := make([]domain.Item, len(s.picked))
	for i, idx := range s.picked {
		items[i] = s.items[idx]
	}
	s.out = append(s.out, domain.Combination{Items: items, Total: total})
}

// nonNegative reports whether pruning on the running total is sound for items.
func nonNegative(items []domain.Item) bool {
	for _, it := range items {
		if it.UnitPrice.IsNegative() {
			return false
		}
	}
	return true
}

// Compile-time assertion that Enumerator implements domain.Enumerator.
var _ domain.Enumerator = (*Enumerator)(nil)
