package report

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appaudit "github.com/invoicemonk/backend/internal/application/audit"
	appbilling "github.com/invoicemonk/backend/internal/application/billing"
	"github.com/invoicemonk/backend/internal/domain/audit"
	"github.com/invoicemonk/backend/internal/domain/billing"
	"github.com/invoicemonk/backend/internal/domain/invoicing"
	"github.com/invoicemonk/backend/internal/domain/shared"
)

// Format selects the export encoding
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat validates a requested export format. An empty value
// defaults to CSV.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", shared.NewDomainError("INVALID_FORMAT", "Export format must be csv or json")
	}
}

// ContentType returns the MIME type served for the format
func (f Format) ContentType() string {
	if f == FormatJSON {
		return "application/json"
	}
	return "text/csv"
}

// ExportService produces CSV and JSON exports of generated reports.
// Every export is gated by the tier's monthly export quota and leaves
// behind a manifest digesting the exact bytes handed out.
type ExportService struct {
	reports      *ReportService
	entitlements *appbilling.EntitlementService
	audits       *appaudit.Service
	logger       *zap.Logger
}

// NewExportService creates a new export service
func NewExportService(
	reports *ReportService,
	entitlements *appbilling.EntitlementService,
	audits *appaudit.Service,
	logger *zap.Logger,
) *ExportService {
	return &ExportService{
		reports:      reports,
		entitlements: entitlements,
		audits:       audits,
		logger:       logger,
	}
}

// Export carries the produced file plus its manifest
type Export struct {
	Filename string
	Content  []byte
	Manifest *audit.ExportManifest
}

// Export generates the requested report, encodes it in the requested
// format and records the export manifest
func (s *ExportService) Export(ctx context.Context, input GenerateInput, format Format, actorID uuid.UUID) (*Export, error) {
	ent, err := s.entitlements.CheckMonthly(ctx, input.BusinessID, billing.FeatureExports, 1)
	if err != nil {
		return nil, err
	}
	if err := s.entitlements.Require(ent); err != nil {
		return nil, err
	}

	result, err := s.reports.Generate(ctx, input)
	if err != nil {
		return nil, err
	}
	var content []byte
	if format == FormatJSON {
		content, err = EncodeJSON(result)
	} else {
		content, err = EncodeCSV(result)
	}
	if err != nil {
		return nil, err
	}
	digest := invoicing.HashBytes(content)

	scope := audit.ExportScope{
		ReportType: result.Type.String(),
		Format:     string(format),
		AccountID:  input.AccountID,
		FromDate:   result.Period.From,
		ToDate:     result.Period.To,
	}
	manifest, err := s.audits.RecordExport(ctx, input.BusinessID, actorID, scope, result.RowCount(), digest)
	if err != nil {
		return nil, err
	}

	if err := s.entitlements.Consume(ctx, input.BusinessID, billing.FeatureExports, 1); err != nil {
		s.logger.Warn("Failed to consume export quota", zap.Error(err))
	}

	s.logger.Info("Report exported",
		zap.String("business_id", input.BusinessID.String()),
		zap.String("report_type", result.Type.String()),
		zap.String("format", string(format)),
		zap.String("digest", digest))

	return &Export{
		Filename: result.Type.String() + "_" + result.Period.From.Format("20060102") + "_" + result.Period.To.Format("20060102") + "." + string(format),
		Content:  content,
		Manifest: manifest,
	}, nil
}
