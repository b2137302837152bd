package service

import (
	"github.com/fieldcare/clinsync/internal/adapter"
	"github.com/fieldcare/clinsync/internal/audit"
	"github.com/fieldcare/clinsync/internal/auth"
	"github.com/fieldcare/clinsync/internal/config"
	"github.com/fieldcare/clinsync/internal/crypto"
	"github.com/fieldcare/clinsync/internal/logger"
	"github.com/fieldcare/clinsync/internal/resolver"
	"github.com/fieldcare/clinsync/internal/staging"
	"github.com/fieldcare/clinsync/internal/store"
)

type AgentServices struct {
	DocumentService AgentDocumentService
	Orchestrator    SyncOrchestrator
}

func NewAgentServices(
	local store.LocalDocumentRepository,
	state store.SyncStateRepository,
	remote adapter.RemoteStore,
	creds auth.CredentialProvider,
	cfg config.Sync,
	log *logger.Logger,
) *AgentServices {
	cipher := crypto.NewDocumentCipher()
	stagingCache := staging.New(cfg.StagingMaxDocs, cfg.StagingMaxBytes, log)
	res := resolver.New(resolver.DefaultStrategies())
	sink := audit.NewLogSink(log)

	return &AgentServices{
		DocumentService: NewAgentDocumentService(local, cipher, log),
		Orchestrator:    NewSyncOrchestrator(local, state, remote, creds, stagingCache, res, cipher, sink, cfg, log),
	}
}
