package catalog

import (
	"context"

	"go.uber.org/zap"
)

type CatalogService interface {
	ListSources(ctx context.Context) ([]SourceSummary, error)
	GetSource(ctx context.Context, id string) (*DataSource, error)
}

type CatalogServiceImpl struct {
	Provider SchemaProvider
	Logger   *zap.Logger
}

func NewCatalogService(provider SchemaProvider, logger *zap.Logger) CatalogService {
	return &CatalogServiceImpl{Provider: provider, Logger: logger}
}

func (s *CatalogServiceImpl) ListSources(ctx context.Context) ([]SourceSummary, error) {
	return s.Provider.ListSources(ctx)
}

func (s *CatalogServiceImpl) GetSource(ctx context.Context, id string) (*DataSource, error) {
	src, err := s.Provider.GetSource(ctx, id)
	if err != nil {
		s.Logger.Warn("data source lookup failed", zap.String("sourceId", id), zap.Error(err))
		return nil, err
	}
	return src, nil
}
