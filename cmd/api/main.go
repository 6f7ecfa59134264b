package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/hookledger/hookledger/config"
	"github.com/hookledger/hookledger/exchange"
	exchangepg "github.com/hookledger/hookledger/exchange/postgres"
	exchangeredis "github.com/hookledger/hookledger/exchange/redis"
	"github.com/hookledger/hookledger/integration"
	integrationpg "github.com/hookledger/hookledger/integration/postgres"
	chihandlers "github.com/hookledger/hookledger/internal/http/chi"
	"github.com/hookledger/hookledger/metrics"
)

const TIMEOUT = 30 * time.Second

/* main wires the packages together: config, storage, services, transport.
 * Imports only flow downwards: the application imports business layers,
 * which import the storage layer.
 */

func main() {
	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Println(err)
		return
	}
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT,
	)
	defer stop()

	integrationRepo, err := integrationpg.NewRepository(cfg.PostgresDSN)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer integrationRepo.Close(ctx)
	if err := integrationRepo.CreateTable(ctx); err != nil {
		fmt.Println(err)
		return
	}

	// The metrics collector reads exchange counts from this SQL handle under
	// every storage driver, so the exchanges table must exist even when the
	// exchange store lives in Redis.
	if err := (&exchangepg.Repository{DB: integrationRepo.DB}).CreateTable(ctx); err != nil {
		fmt.Println(err)
		return
	}

	exchangeRepo, cleanup, err := openExchangeRepository(ctx, cfg)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer cleanup()

	exchangeService := exchange.NewService(exchangeRepo)
	if cfg.RetentionLimit > 0 {
		exchangeService.Keep = cfg.RetentionLimit
	}
	integrationService := integration.NewService(integrationRepo, exchangeRepo)

	collector := metrics.NewStoreCollector(integrationRepo.DB)
	exporter, err := metrics.NewOTelExporter(collector)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer exporter.Shutdown(ctx)

	r := chihandlers.Handlers(ctx, integrationService, exchangeService)
	r.Handle("/metrics", exporter.ServeHTTP())

	srv := &http.Server{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Addr:         ":" + cfg.Port,
		Handler:      r,
	}

	errShutdown := make(chan error, 1)
	go shutdown(srv, ctx, errShutdown)
	fmt.Printf("Listening on port %s\n", cfg.Port)
	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		fmt.Println(err)
		return
	}
	err = <-errShutdown
	if err != nil {
		fmt.Println(err)
		return
	}
}

// openExchangeRepository picks the exchange store backend from config
func openExchangeRepository(ctx context.Context, cfg *config.Config) (exchange.Repository, func(), error) {
	switch cfg.StorageDriver {
	case "redis":
		repo, err := exchangeredis.NewRepository(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() { repo.Close(ctx) }, nil
	case "postgres":
		repo, err := exchangepg.NewRepository(cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		if err := repo.CreateTable(ctx); err != nil {
			repo.Close(ctx)
			return nil, nil, err
		}
		return repo, func() { repo.Close(ctx) }, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver: %s", cfg.StorageDriver)
	}
}

func shutdown(server *http.Server, ctxShutdown context.Context, errShutdown chan error) {
	<-ctxShutdown.Done()

	ctxTimeout, stop := context.WithTimeout(context.Background(), TIMEOUT)
	defer stop()

	err := server.Shutdown(ctxTimeout)
	switch err {
	case nil:
		fmt.Printf("\nShutting down server...\n")
		errShutdown <- nil
	case context.DeadlineExceeded:
		errShutdown <- fmt.Errorf("forcing closing the server")
	default:
		errShutdown <- fmt.Errorf("forcing closing the server")
	}
}
