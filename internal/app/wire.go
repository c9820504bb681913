package app

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"stockpick/internal/combination"
	"stockpick/internal/domain"
	"stockpick/internal/export"
	"stockpick/internal/inventory"
	explorersvc "stockpick/internal/services/explorer"
	selectionsvc "stockpick/internal/services/selection"
	"stockpick/internal/store"
)

// Wire constructs the dependency graph from cfg and loads the catalog.
func Wire(ctx context.Context, cfg Config, log *logrus.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Catalog == "" {
		return nil, domain.InvalidArgumentf("no catalog: pass --catalog or set %s_CATALOG", EnvPrefix)
	}
	entry := logrus.NewEntry(log)

	// Catalog source and initial inventory
	catalog, err := store.OpenCatalog(cfg.Catalog)
	if err != nil {
		return nil, err
	}
	items, err := catalog.LoadCatalog(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "load catalog %s", cfg.Catalog)
	}
	inv, err := inventory.New(items, cfg.Ceiling, entry)
	if err != nil {
		return nil, errors.Wrapf(err, "catalog %s", cfg.Catalog)
	}

	// Services
	enum := combination.New(combination.Options{
		MaxResults: cfg.MaxResults,
		Logger:     entry.WithField("component", "combination"),
	})
	selection := selectionsvc.New(inv, entry)
	explorer := explorersvc.New(inv, enum, selection, cfg.Size, entry)

	log.WithFields(logrus.Fields{
		"catalog": cfg.Catalog,
		"items":   len(inv.Items()),
		"ceiling": cfg.Ceiling.String(),
		"size":    cfg.Size,
	}).Debug("app wired")

	return &App{
		Config:    cfg,
		Log:       log,
		Catalog:   catalog,
		Inventory: inv,
		Explorer:  explorer,
		Exporter:  export.NewXLSXExporter(entry),
	}, nil
}
