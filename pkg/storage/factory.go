package storage

import (
	"gitlab.connectwisedev.com/product-management/pkg/config"
)

// New builds the Gateway selected by cfg.StorageBackend.
func New(cfg config.Config) (Gateway, error) {
	switch cfg.StorageBackend {
	case "postgres":
		return NewPostgresGateway(cfg)
	case "memory":
		return NewMemoryGateway(), nil
	default:
		return NewDynamoGateway(cfg)
	}
}
