package service

import (
	"github.com/fieldcare/clinsync/internal/config"
	"github.com/fieldcare/clinsync/internal/logger"
	"github.com/fieldcare/clinsync/internal/store"
)

type Services struct {
	AuthService     AuthService
	DocumentService DocumentService
}

func NewServices(devices store.DeviceRepository, documents store.ServerDocumentRepository, cfg config.ServerApp, logger *logger.Logger) *Services {
	return &Services{
		AuthService:     NewAuthService(devices, cfg, logger),
		DocumentService: NewDocumentService(documents, logger),
	}
}
