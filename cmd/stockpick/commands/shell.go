package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"stockpick/internal/app"
	"stockpick/internal/domain"
	"stockpick/internal/report"
)

const shellHelp = `commands:
  size N               set items per combination and run
  limit X              set the price limit (runs again automatically)
  run                  enumerate now and print the combinations
  show                 print the last combinations
  pick N               commit combination N and decrement stock
  sort COLUMN [desc]   reorder the catalog; this changes combination order
  catalog              print the product table
  selected             print committed selections
  removed              print items removed when their stock ran out
  export WHAT [FILE]   WHAT is combos, products, selected or removed
  reload               re-read the catalog and clear the history
  status               print the status line
  help                 show this text
  quit                 leave the shell
`

// shell: interactive session over stdin/stdout.
func shellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return newShell(appCtx, cmd.InOrStdin(), cmd.OutOrStdout()).run(cmd.Context())
		},
	}
}

type shell struct {
	app *app.App
	in  io.Reader

	mu  sync.Mutex // serialises writes to out
	out io.Writer
}

func newShell(a *app.App, in io.Reader, out io.Writer) *shell {
	return &shell{app: a, in: in, out: out}
}

// run processes commands until quit, end of input or ctx cancellation.
// Store changes re-run the enumeration in the background.
func (s *shell) run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// A blocked terminal read cannot be interrupted, so the reader is not
	// part of the group; it exits on its own at end of input.
	lines := make(chan string)
	go s.read(ctx, lines)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.app.Explorer.Watch(gctx, s.onResult)
	})
	g.Go(func() error {
		defer cancel()
		return s.loop(gctx, lines)
	})
	return g.Wait()
}

func (s *shell) read(ctx context.Context, lines chan<- string) {
	defer close(lines)
	sc := bufio.NewScanner(s.in)
	for sc.Scan() {
		select {
		case lines <- sc.Text():
		case <-ctx.Done():
			return
		}
	}
	if err := sc.Err(); err != nil {
		s.app.Log.WithError(err).Warn("stopped reading input")
	}
}

func (s *shell) loop(ctx context.Context, lines <-chan string) error {
	s.printf("%d products, limit %s, size %d. Type help for commands.\n",
		len(s.app.Inventory.Items()), s.app.Inventory.Ceiling().StringFixed(2), s.app.Explorer.Size())
	s.runAndShow(ctx)
	s.printf("> ")
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if quit := s.exec(ctx, line); quit {
				return nil
			}
			s.printf("> ")
		}
	}
}

// exec runs one command line and reports whether the shell should stop.
func (s *shell) exec(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	var err error
	switch cmd {
	case "quit", "exit", "q":
		return true
	case "help", "?":
		s.printf("%s", shellHelp)
	case "size":
		err = s.setSize(ctx, args)
	case "limit":
		err = s.setLimit(args)
	case "run":
		s.runAndShow(ctx)
	case "show":
		res := s.app.Explorer.Results()
		s.table(report.Combinations(res.Combinations, res.Ceiling))
	case "pick":
		err = s.pick(ctx, args)
	case "sort":
		err = s.sort(args)
	case "catalog":
		s.table(report.Products(s.app.Inventory.Items()))
	case "selected":
		s.table(report.Selections(s.app.Explorer.Selections()))
	case "removed":
		s.table(report.Removals(s.app.Explorer.Removals(), s.app.Inventory.Ceiling()))
	case "export":
		err = s.export(ctx, args)
	case "reload":
		if err = s.app.Reload(ctx); err == nil {
			s.printf("catalog reloaded: %d products\n", len(s.app.Inventory.Items()))
		}
	case "status":
		st := s.app.Explorer.Status()
		s.printf("[%s] %s\n", st.Kind, st.Message)
	default:
		err = errors.Errorf("unknown command %q (try help)", cmd)
	}
	if err != nil {
		s.printf("error: %v\n", err)
	}
	return false
}

func (s *shell) setSize(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: size N")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return domain.InvalidArgumentf("size %q is not a number", args[0])
	}
	if err := s.app.Explorer.SetSize(n); err != nil {
		return err
	}
	s.runAndShow(ctx)
	return nil
}

func (s *shell) setLimit(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: limit X")
	}
	d, err := decimal.NewFromString(strings.TrimPrefix(args[0], "$"))
	if err != nil {
		return domain.InvalidArgumentf("limit %q is not a number", args[0])
	}
	if err := s.app.Explorer.SetCeiling(d); err != nil {
		return err
	}
	s.printf("limit set to %s\n", d.StringFixed(2))
	return nil
}

func (s *shell) pick(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: pick N")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return domain.InvalidArgumentf("pick %q is not a number", args[0])
	}
	out, err := s.app.Explorer.Pick(ctx, n)
	if err != nil {
		return err
	}
	s.printf("%s\n", s.app.Explorer.Status().Message)
	for _, r := range out.Removed {
		s.printf("  out of stock: %s\n", r.Item.Name)
	}
	return nil
}

func (s *shell) sort(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errors.New("usage: sort COLUMN [desc]")
	}
	desc := len(args) == 2 && strings.EqualFold(args[1], "desc")
	if err := s.app.Inventory.Sort(parseColumn(args[0]), desc); err != nil {
		return err
	}
	s.table(report.Products(s.app.Inventory.Items()))
	return nil
}

func (s *shell) export(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errors.New("usage: export combos|products|selected|removed [FILE]")
	}
	var file string
	if len(args) == 2 {
		file = args[1]
	}

	var fn func(context.Context, string) (string, error)
	switch strings.ToLower(args[0]) {
	case "combos", "combinations":
		fn = s.app.ExportCombinations
	case "products", "catalog":
		fn = s.app.ExportProducts
	case "selected":
		fn = s.app.ExportSelected
	case "removed":
		fn = s.app.ExportRemoved
	default:
		return errors.Errorf("cannot export %q", args[0])
	}
	path, err := fn(ctx, file)
	if err != nil {
		return err
	}
	s.printf("exported %s\n", path)
	return nil
}

// runAndShow enumerates and prints the result table or the failure.
func (s *shell) runAndShow(ctx context.Context) {
	res, err := s.app.Explorer.Run(ctx)
	switch {
	case errors.Is(err, domain.ErrCancelled):
		s.printf("enumeration cancelled\n")
	case err != nil:
		s.printf("error: %s\n", s.app.Explorer.Status().Message)
	default:
		s.table(report.Combinations(res.Combinations, res.Ceiling))
		s.printf("%s\n", s.app.Explorer.Status().Message)
	}
}

// onResult reports background re-runs triggered by store changes.
func (s *shell) onResult(res domain.EnumerationResult, err error) {
	if err != nil {
		s.printf("\nerror: %s\n", s.app.Explorer.Status().Message)
		return
	}
	s.printf("\n* %d combination(s) for limit %s, type show to list them\n",
		len(res.Combinations), res.Ceiling.StringFixed(2))
}

func (s *shell) printf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, format, args...)
}

func (s *shell) table(t domain.Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	renderTable(s.out, t)
}
