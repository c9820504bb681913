package app

import (
	"context"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"stockpick/internal/domain"
	"stockpick/internal/export"
	"stockpick/internal/inventory"
	"stockpick/internal/report"
	explorersvc "stockpick/internal/services/explorer"
)

// App is one running session: the inventory, the explorer that enumerates
// and commits against it, and the exporter.
type App struct {
	Config    Config
	Log       *logrus.Logger
	Catalog   domain.CatalogSource
	Inventory *inventory.Store
	Explorer  *explorersvc.Service
	Exporter  domain.Exporter
}

// Reload re-reads the catalog into the inventory and clears the history.
func (a *App) Reload(ctx context.Context) error {
	items, err := a.Catalog.LoadCatalog(ctx)
	if err != nil {
		return err
	}
	if err := a.Inventory.ReplaceItems(items); err != nil {
		return err
	}
	a.Explorer.Reset()
	return nil
}

// ExportPath resolves file against the export directory, using def when
// file is empty. Absolute paths are kept.
func (a *App) ExportPath(file, def string) string {
	if file == "" {
		file = def
	}
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(a.Config.ExportDir, file)
}

// ExportProducts writes the current inventory and returns the path written.
func (a *App) ExportProducts(ctx context.Context, file string) (string, error) {
	path := a.ExportPath(file, export.ProductsFile)
	return path, a.Exporter.Export(ctx, path, report.ProductRecords(a.Inventory.Items()))
}

// ExportCombinations writes the last published enumeration result.
func (a *App) ExportCombinations(ctx context.Context, file string) (string, error) {
	path := a.ExportPath(file, export.CombinationsFile)
	res := a.Explorer.Results()
	return path, a.Exporter.Export(ctx, path, report.Combinations(res.Combinations, res.Ceiling))
}

// ExportSelected writes the selection history.
func (a *App) ExportSelected(ctx context.Context, file string) (string, error) {
	path := a.ExportPath(file, export.SelectedFile)
	return path, a.Exporter.Export(ctx, path, report.Selections(a.Explorer.Selections()))
}

// ExportRemoved writes the removal history against the current ceiling.
func (a *App) ExportRemoved(ctx context.Context, file string) (string, error) {
	path := a.ExportPath(file, export.RemovedFile)
	return path, a.Exporter.Export(ctx, path, report.Removals(a.Explorer.Removals(), a.Inventory.Ceiling()))
}
