package bootstrap

import (
	"context"

	"go.uber.org/zap"

	"github.com/folio-works/portfolio-backend/config"
	"github.com/folio-works/portfolio-backend/internal/projects/repository"
)

// OpenStore returns the configured project store and a func that releases it.
func OpenStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (repository.Store, func(), error) {
	if cfg.Store.Driver == config.StoreMemory {
		log.Warn("using in-memory project store; data is lost on restart")
		return repository.NewMemoryStore(), func() {}, nil
	}

	client, err := OpenFirestore(ctx, cfg.Firebase)
	if err != nil {
		return nil, nil, err
	}
	return repository.NewFirestoreStore(client, cfg.Store.Collection), func() { client.Close() }, nil
}
