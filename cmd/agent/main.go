package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fieldcare/clinsync/internal/adapter"
	"github.com/fieldcare/clinsync/internal/auth"
	"github.com/fieldcare/clinsync/internal/config"
	"github.com/fieldcare/clinsync/internal/crypto"
	"github.com/fieldcare/clinsync/internal/logger"
	"github.com/fieldcare/clinsync/internal/service"
	"github.com/fieldcare/clinsync/internal/store"
	"github.com/fieldcare/clinsync/internal/workers"
	"github.com/fieldcare/clinsync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewAgentLogger("clinsync-agent")
	cfg, err := config.GetAgentConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	db, err := store.NewConnectSQLite(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error opening local store")
	}
	defer db.Close()

	local := store.NewLocalDocumentRepository(db, log)
	state := store.NewSyncStateRepository(db, log)

	remote, err := adapter.NewHTTPRemoteStore(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating remote store adapter")
	}

	creds := auth.NewCredentialProvider(remote, models.DeviceCredentials{
		DeviceID:  cfg.Device.ID,
		DeviceKey: cfg.Device.Key,
		Label:     cfg.Device.Label,
	}, cfg.Sync.TokenLeeway, log)

	services := service.NewAgentServices(local, state, remote, creds, cfg.Sync, log)

	if cfg.Device.Passphrase != "" {
		dataKey := crypto.NewDocumentCipher().DeriveKey(cfg.Device.Passphrase, []byte(cfg.Device.KeySalt))
		services.DocumentService.SetEncryptionKey(dataKey)
		services.Orchestrator.SetEncryptionKey(dataKey)
	}

	if err = services.Orchestrator.Restore(ctx); err != nil {
		log.Fatal().Err(err).Msg("error restoring sync state")
	}

	background := workers.New(
		workers.NewConnectivityWatcher(remote, services.Orchestrator, services.Orchestrator, cfg.Sync.ProbeInterval, log),
		workers.NewSyncJob(services.Orchestrator, cfg.Sync.Interval, log),
	)
	background.Start(ctx)
	defer background.Stop()

	// SIGHUP forces a fresh cycle, aborting one already in flight; the way
	// out of a sticky error state without waiting for the next tick
	reload := make(chan os.Signal, 1)
	signal.Notify(reload, syscall.SIGHUP)
	go func() {
		for range reload {
			log.Info().Msg("forced sync requested")
			if syncErr := services.Orchestrator.ForceSync(ctx); syncErr != nil {
				log.Err(syncErr).Msg("forced sync failed")
			}
		}
	}()

	log.Info().Str("device", cfg.Device.ID).Msg("agent started")

	<-ctx.Done()
	log.Info().Msg("agent shutting down")
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
