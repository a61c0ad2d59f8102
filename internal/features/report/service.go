package report

import (
	"context"
	"time"

	"go-compliance/internal/common/apperr"
	"go-compliance/internal/connectors"
	"go-compliance/internal/features/audit"
	"go-compliance/internal/features/catalog"
	"go-compliance/internal/features/export"

	"go.uber.org/zap"
)

type ReportService interface {
	CreateReport(ctx context.Context, def *ReportDefinition) error
	GetReport(ctx context.Context, id string) (*ReportDefinition, error)
	ListReports(ctx context.Context) ([]ReportDefinition, error)
	UpdateReport(ctx context.Context, id string, def *ReportDefinition) error
	DeleteReport(ctx context.Context, id string, actorID string) error

	Preview(ctx context.Context, cfg *ReportConfig, page, limit int) (*ReportResult, error)
	Export(ctx context.Context, cfg *ReportConfig, format string, actorID string) (*export.Payload, error)
}

type ReportServiceImpl struct {
	ReportRepo     ReportRepository
	CatalogService catalog.CatalogService
	Records        connectors.RecordFetcher
	Exporter       *export.Exporter
	AuditService   audit.AuditService
	Logger         *zap.Logger
}

func NewReportService(
	reportRepo ReportRepository,
	catalogService catalog.CatalogService,
	records connectors.RecordFetcher,
	exporter *export.Exporter,
	auditService audit.AuditService,
	logger *zap.Logger,
) ReportService {
	return &ReportServiceImpl{
		ReportRepo:     reportRepo,
		CatalogService: catalogService,
		Records:        records,
		Exporter:       exporter,
		AuditService:   auditService,
		Logger:         logger,
	}
}

func (s *ReportServiceImpl) CreateReport(ctx context.Context, def *ReportDefinition) error {
	if err := validateConfig(&def.ReportConfig); err != nil {
		return err
	}
	if err := s.ReportRepo.Create(ctx, def); err != nil {
		return err
	}
	_ = s.AuditService.LogChange(ctx, audit.AuditActionCreate, "report_definitions", def.ID.Hex(), def.CreatedBy, map[string]audit.Change{
		"report": {New: def},
	})
	return nil
}

func (s *ReportServiceImpl) GetReport(ctx context.Context, id string) (*ReportDefinition, error) {
	return s.ReportRepo.Get(ctx, id)
}

func (s *ReportServiceImpl) ListReports(ctx context.Context) ([]ReportDefinition, error) {
	return s.ReportRepo.List(ctx)
}

func (s *ReportServiceImpl) UpdateReport(ctx context.Context, id string, def *ReportDefinition) error {
	if err := validateConfig(&def.ReportConfig); err != nil {
		return err
	}
	oldDef, _ := s.ReportRepo.Get(ctx, id)
	if err := s.ReportRepo.Update(ctx, id, def); err != nil {
		return err
	}
	_ = s.AuditService.LogChange(ctx, audit.AuditActionUpdate, "report_definitions", id, def.CreatedBy, map[string]audit.Change{
		"report": {Old: oldDef, New: def},
	})
	return nil
}

func (s *ReportServiceImpl) DeleteReport(ctx context.Context, id string, actorID string) error {
	oldDef, _ := s.ReportRepo.Get(ctx, id)
	if err := s.ReportRepo.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.AuditService.LogChange(ctx, audit.AuditActionDelete, "report_definitions", id, actorID, map[string]audit.Change{
		"report": {Old: oldDef, New: "DELETED"},
	})
	return nil
}

// Preview runs the full pipeline for one page: load raw records,
// keep those passing every filter, project to the selected labels,
// then slice. Record order is whatever the store returned.
func (s *ReportServiceImpl) Preview(ctx context.Context, cfg *ReportConfig, page, limit int) (*ReportResult, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	if page < 1 {
		return nil, apperr.NewValidation("page", "must be at least 1")
	}
	if limit < 1 {
		return nil, apperr.NewValidation("limit", "must be at least 1")
	}

	projected, _, err := s.runPipeline(ctx, cfg)
	if err != nil {
		return nil, err
	}

	total := len(projected)
	totalPages := (total + limit - 1) / limit

	start := (page - 1) * limit
	end := start + limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return &ReportResult{
		Records: projected[start:end],
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

// Export runs the same pipeline unpaged and hands the full result set
// to the chosen strategy. An empty result set yields a nil payload.
func (s *ReportServiceImpl) Export(ctx context.Context, cfg *ReportConfig, format string, actorID string) (*export.Payload, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	projected, source, err := s.runPipeline(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var filterLines []string
	for i := range cfg.Filters {
		p := &cfg.Filters[i]
		if p.FieldID == "" || isEmptyValue(p.Value) {
			continue
		}
		filterLines = append(filterLines, p.Describe(source))
	}

	result := &export.Result{
		Title:   cfg.Name,
		Columns: cfg.OutputColumns(),
		Records: projected,
		Summary: &export.Summary{
			TotalRecords: len(projected),
			GeneratedAt:  time.Now(),
			Filters:      filterLines,
		},
	}

	payload, err := s.Exporter.Export(result, format, export.Options{IncludeSummary: true})
	if err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, nil
	}

	s.Logger.Info("report exported",
		zap.String("report", cfg.Name),
		zap.String("format", format),
		zap.Int("records", payload.RecordCount),
	)
	_ = s.AuditService.LogChange(ctx, audit.AuditActionExport, "report_definitions", cfg.Name, actorID, map[string]audit.Change{
		"export": {New: payload.Filename},
	})
	return payload, nil
}

// runPipeline loads, filters and projects the record set for a config.
func (s *ReportServiceImpl) runPipeline(ctx context.Context, cfg *ReportConfig) ([]map[string]any, *catalog.DataSource, error) {
	source, err := s.CatalogService.GetSource(ctx, cfg.DataSource)
	if err != nil {
		return nil, nil, err
	}

	if err := ValidateFilters(cfg.Filters, source); err != nil {
		return nil, nil, err
	}

	records, err := s.Records.Fetch(ctx, cfg.DataSource)
	if err != nil {
		return nil, nil, err
	}

	projected := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		if !matchesAll(cfg.Filters, source, rec) {
			continue
		}
		projected = append(projected, projectRecord(rec, cfg.Fields))
	}
	return projected, source, nil
}

func validateConfig(cfg *ReportConfig) error {
	if cfg.Name == "" {
		return apperr.NewValidation("name", "is required")
	}
	if cfg.DataSource == "" {
		return apperr.NewValidation("data_source", "is required")
	}
	if len(cfg.Fields) == 0 {
		return apperr.NewValidation("fields", "select at least one field")
	}
	return nil
}
