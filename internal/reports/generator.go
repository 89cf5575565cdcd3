package reports

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"fmt"

	"fjacquet/spend-insights/internal/logging"

	"github.com/gocarina/gocsv"
)

// Supported output formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatXML  = "xml"
)

// csvBOM prefixes CSV reports so spreadsheet tools detect UTF-8 (Cyrillic
// headers and categories).
const csvBOM = "\ufeff"

// ReportGenerator renders artifacts in the supported formats.
type ReportGenerator struct {
	logger logging.Logger
}

// NewReportGenerator creates a new instance of ReportGenerator.
func NewReportGenerator(logger logging.Logger) *ReportGenerator {
	return &ReportGenerator{logger: logging.OrNop(logger)}
}

// GenerateReport renders report as csv, json or xml.
func (g *ReportGenerator) GenerateReport(report Artifact, format string) ([]byte, error) {
	switch format {
	case FormatCSV:
		return g.generateCSVReport(report)
	case FormatJSON:
		return g.generateJSONReport(report)
	case FormatXML:
		return g.generateXMLReport(report)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

// generateCSVReport writes a BOM, a header line and the report rows.
func (g *ReportGenerator) generateCSVReport(report Artifact) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(csvBOM)
	if err := gocsv.MarshalCSV(report.Rows(), gocsv.NewSafeCSVWriter(csv.NewWriter(&buf))); err != nil {
		g.logger.WithError(err).Error("Failed to marshal CSV report")
		return nil, fmt.Errorf("failed to marshal CSV report: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *ReportGenerator) generateJSONReport(report Artifact) ([]byte, error) {
	jsonReport, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return jsonReport, nil
}

func (g *ReportGenerator) generateXMLReport(report Artifact) ([]byte, error) {
	xmlReport, err := xml.MarshalIndent(report, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal XML report")
		return nil, fmt.Errorf("failed to marshal XML report: %w", err)
	}
	return []byte(xml.Header + string(xmlReport)), nil
}
