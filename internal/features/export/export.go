package export

import (
	"fmt"
	"strconv"
	"time"

	"go-compliance/internal/common/apperr"
	"go-compliance/pkg/utils"

	"go.uber.org/zap"
)

// Format names accepted by the exporter.
const (
	FormatCSV      = "csv"
	FormatXLSX     = "xlsx"
	FormatPDF      = "pdf"       // text table, preferred for data fidelity
	FormatPDFImage = "pdf-image" // rasterized table snapshot
)

// Result is the unpaged, projected record set handed to a strategy.
// Columns carries the output order; the record maps cannot.
type Result struct {
	Title   string
	Columns []string
	Records []map[string]any
	Summary *Summary
}

// Summary is the optional block rendered above PDF tables.
type Summary struct {
	TotalRecords int
	GeneratedAt  time.Time
	Filters      []string // human-readable "field operator value" lines
}

// Options tune strategy rendering.
type Options struct {
	IncludeSummary bool
}

// Strategy renders a result into one on-disk format.
type Strategy interface {
	Render(result *Result, opts Options) ([]byte, error)
	ContentType() string
	Extension() string
}

// Payload is a finished export ready to hand to the transport layer.
type Payload struct {
	Format      string `json:"format"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
	RecordCount int    `json:"record_count"`
}

type Exporter struct {
	strategies map[string]Strategy
	logger     *zap.Logger
}

func NewExporter(logger *zap.Logger) *Exporter {
	return &Exporter{
		strategies: map[string]Strategy{
			FormatCSV:      &CSVStrategy{},
			FormatXLSX:     &ExcelStrategy{},
			FormatPDF:      &PDFTableStrategy{},
			FormatPDFImage: &PDFImageStrategy{},
		},
		logger: logger,
	}
}

// Export renders the result with the named strategy. An empty record
// set is a no-op: nil payload, nil error, one warning in the log.
func (e *Exporter) Export(result *Result, format string, opts Options) (*Payload, error) {
	strategy, ok := e.strategies[format]
	if !ok {
		return nil, apperr.NewValidation("format", fmt.Sprintf("unsupported format: %s", format))
	}

	if len(result.Records) == 0 {
		e.logger.Warn("export skipped: no records to export",
			zap.String("report", result.Title),
			zap.String("format", format),
		)
		return nil, nil
	}

	data, err := strategy.Render(result, opts)
	if err != nil {
		return nil, apperr.NewExport(format, err)
	}

	return &Payload{
		Format:      format,
		Filename:    exportFilename(result.Title, strategy.Extension()),
		ContentType: strategy.ContentType(),
		Data:        data,
		RecordCount: len(result.Records),
	}, nil
}

// exportFilename is timestamp-suffixed so repeated exports never collide.
func exportFilename(title, ext string) string {
	base := utils.Slugify(title)
	if base == "" {
		base = "report"
	}
	return fmt.Sprintf("%s_%s.%s", base, time.Now().Format("20060102_150405"), ext)
}

// cellString renders one record value for textual output formats.
func cellString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case time.Time:
		return val.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprintf("%v", val)
	}
}
