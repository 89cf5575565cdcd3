package reports

import (
	"fmt"
	"path/filepath"
	"time"

	"fjacquet/spend-insights/internal/dateutils"
	"fjacquet/spend-insights/internal/fileutils"
	"fjacquet/spend-insights/internal/logging"
)

// WeekdayFileName is the fixed file name of the weekday report.
func WeekdayFileName(format string) string {
	if format == "" {
		format = FormatCSV
	}
	return "report_weekday." + format
}

// Sink persists a computed report.
type Sink interface {
	// Write stores artifact under fileName ("" picks a default name) and
	// returns where it went.
	Write(artifact Artifact, fileName string) (string, error)
}

// FileSink writes reports into a directory.
type FileSink struct {
	dir       string
	format    string
	clock     func() time.Time
	generator *ReportGenerator
	logger    logging.Logger
}

// NewFileSink creates a sink writing format files into dir.
func NewFileSink(dir, format string, clock func() time.Time, logger logging.Logger) *FileSink {
	if clock == nil {
		clock = time.Now
	}
	if format == "" {
		format = FormatCSV
	}
	logger = logging.OrNop(logger)
	return &FileSink{
		dir:       dir,
		format:    format,
		clock:     clock,
		generator: NewReportGenerator(logger),
		logger:    logger,
	}
}

// DefaultFileName returns report_<name>_<YYYYmmdd_HHMMSS>.<ext>.
func DefaultFileName(name string, at time.Time, ext string) string {
	return fmt.Sprintf("report_%s_%s.%s", name, at.Format(dateutils.ReportStampLayout), ext)
}

// Write implements Sink.
func (s *FileSink) Write(artifact Artifact, fileName string) (string, error) {
	if fileName == "" {
		fileName = DefaultFileName(artifact.Name(), s.clock(), s.format)
	}

	data, err := s.generator.GenerateReport(artifact, s.format)
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, fileName)
	if err := fileutils.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to save report %s: %w", artifact.Name(), err)
	}

	s.logger.Info("Report saved",
		logging.F(logging.FieldReport, artifact.Name()),
		logging.F(logging.FieldOutputFile, path))

	return path, nil
}

// Generate computes a report and hands it to sink. The artifact is returned
// together with the location it was written to.
func Generate[A Artifact](sink Sink, fileName string, compute func() (A, error)) (A, string, error) {
	artifact, err := compute()
	if err != nil {
		var zero A
		return zero, "", err
	}

	location, err := sink.Write(artifact, fileName)
	if err != nil {
		return artifact, "", err
	}
	return artifact, location, nil
}
