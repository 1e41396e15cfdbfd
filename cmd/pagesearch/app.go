package main

import (
	"github.com/Alp4ka/pagesearch"
	"github.com/Alp4ka/pagesearch/internal/config"
	"github.com/Alp4ka/pagesearch/internal/logger"
	"github.com/Alp4ka/pagesearch/internal/storage"
	"github.com/rs/zerolog"
)

type app struct {
	cfg      *config.Config
	log      zerolog.Logger
	executor *pagesearch.Executor
	close    func() error
}

func newApp() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(&cfg.Logger)
	if err != nil {
		return nil, err
	}

	db, err := storage.Open(cfg.Database, log)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	store, err := storage.NewStore(db, cfg.Database.Driver, cfg.Storage)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	return &app{
		cfg:      cfg,
		log:      log,
		executor: pagesearch.NewExecutor(store, pagesearch.WithLogger(log)),
		close:    sqlDB.Close,
	}, nil
}
