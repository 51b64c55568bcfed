package main

import (
	"context"
	"net/http"
	"os"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"max.ks1230/finance-tracker/internal/config"
	"max.ks1230/finance-tracker/internal/logger"
	"max.ks1230/finance-tracker/internal/model/input"
	"max.ks1230/finance-tracker/internal/model/netincome"
	"max.ks1230/finance-tracker/internal/model/storage"
	"max.ks1230/finance-tracker/internal/tracing"
)

func main() {
	defer logger.Sync()
	logger.Info("Tracker init - start")

	conf, err := config.New()
	if err != nil {
		logger.Fatal("failed to init config:", zap.Error(err))
	}

	tracer, err := tracing.Init(conf.Tracing())
	if err != nil {
		logger.Fatal("failed to init tracing:", zap.Error(err))
	}
	defer func() {
		if err := tracer.Close(); err != nil {
			logger.Error("failed to close tracer", zap.Error(err))
		}
	}()

	serveMetrics(conf.Metrics().Addr())

	in := input.New(os.Stdin, os.Stdout)
	expenses, incomes, closeStore, err := newRepositories(conf, in)
	if err != nil {
		logger.Fatal("failed to init storage:", zap.Error(err))
	}
	defer closeStore()

	calc := netincome.NewCalculator(conf.App(), expenses, incomes, in, os.Stdout)

	logger.Info("Tracker init - end", zap.String("store", conf.App().Store()))

	newMenu(expenses, incomes, calc, in, os.Stdout).run(context.Background())
}

func newRepositories(conf *config.Service, in *input.Reader) (storage.ExpenseRepository, storage.IncomeRepository, func(), error) {
	var (
		pool    *storage.Pool
		dialect storage.Dialect
		err     error
	)
	switch conf.App().Store() {
	case config.StoreMemory:
		return storage.NewInMemExpenseStorage(in), storage.NewInMemIncomeStorage(in), func() {}, nil
	case config.StoreSQLite:
		dialect = storage.SQLite
		pool, err = storage.NewPool(dialect, conf.SQLite().Path(), 1)
	default:
		dialect = storage.Postgres
		pool, err = storage.NewPool(dialect, conf.Postgres().DSN(), conf.Postgres().MaxOpenConns())
	}
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "open "+dialect.Name())
	}
	return storage.NewExpenseStorage(pool, dialect, in), storage.NewIncomeStorage(pool, dialect, in), pool.Close, nil
}

func serveMetrics(addr string) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		logger.Info("metrics listening", zap.String("addr", addr))
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Error("metrics server stopped", zap.Error(err))
		}
	}()
}
