package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/viper"

	"github.com/denisok6893-rgb/property-compare/internal/config"
	"github.com/denisok6893-rgb/property-compare/internal/domain"
	"github.com/denisok6893-rgb/property-compare/internal/logger"
	"github.com/denisok6893-rgb/property-compare/internal/matching"
	"github.com/denisok6893-rgb/property-compare/internal/output"
	"github.com/denisok6893-rgb/property-compare/internal/storage"
)

// app carries what every subcommand needs once flags and config are read.
type app struct {
	v          *viper.Viper
	configFile string
	cfg        *config.Config
	log        logger.Logger
	out        io.Writer
}

func (a *app) loadDataset(ctx context.Context) (*domain.Dataset, error) {
	if err := a.cfg.RequireSource(); err != nil {
		return nil, err
	}
	if a.cfg.Dataset != "" {
		return storage.LoadDatasets(a.cfg.Dataset, a.log)
	}

	if _, err := os.Stat(a.cfg.Snapshot); err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	store, err := storage.OpenSnapshot(a.cfg.Snapshot)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer store.Close()

	ds, err := store.LoadDataset(ctx, a.cfg.Project)
	if err != nil {
		return nil, err
	}
	a.log.Info("snapshot loaded", map[string]interface{}{
		"snapshot":   a.cfg.Snapshot,
		"project":    a.cfg.Project,
		"properties": len(ds.Properties),
	})
	return ds, nil
}

func (a *app) model() (*matching.Model, error) {
	if a.cfg.Profile == "" {
		return matching.DefaultModel(), nil
	}
	m, p, err := matching.LoadProfile(a.cfg.Profile, nil)
	if err != nil {
		return nil, err
	}
	a.log.Debug("weight profile applied", map[string]interface{}{
		"profile": a.cfg.Profile,
		"name":    p.Name,
		"mode":    string(m.Mode()),
		"weights": len(p.Weights),
	})
	return m, nil
}

func (a *app) engine() (*matching.Engine, error) {
	m, err := a.model()
	if err != nil {
		return nil, err
	}
	return matching.NewEngine(m), nil
}

func (a *app) render(r output.Report) error {
	f, err := output.NewFormatter(a.cfg.Format, a.cfg.Limit)
	if err != nil {
		return err
	}
	return f.Format(a.out, r)
}
