package reports

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fjacquet/spend-insights/internal/logging"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCategoryReport() *CategoryReport {
	return &CategoryReport{
		Category: "Кафе",
		From:     "2025-02-20 00:00:00",
		To:       "2025-05-20 00:00:00",
		Items: []CategoryRow{
			{Date: "2025-05-01 10:00:00", Amount: decimal.RequireFromString("250.5"), Category: "Кафе", Description: "Кофейня, центр"},
		},
	}
}

func TestReportGenerator_GenerateReport_CSV(t *testing.T) {
	data, err := NewReportGenerator(nil).GenerateReport(sampleCategoryReport(), FormatCSV)
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(string(data), csvBOM))
	lines := strings.Split(strings.TrimSpace(strings.TrimPrefix(string(data), csvBOM)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "date,amount,category,description", lines[0])
	assert.Equal(t, `2025-05-01 10:00:00,250.5,Кафе,"Кофейня, центр"`, lines[1])
}

func TestReportGenerator_GenerateReport_EmptyCSVHasHeader(t *testing.T) {
	data, err := NewReportGenerator(nil).GenerateReport(&WeekdayReport{Items: []WeekdayRow{}}, FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "\ufeffweekday,average_amount,transactions\n", string(data))
}

func TestReportGenerator_GenerateReport_JSON(t *testing.T) {
	data, err := NewReportGenerator(nil).GenerateReport(sampleCategoryReport(), FormatJSON)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "Кафе", decoded["category"])
	rows := decoded["rows"].([]any)
	require.Len(t, rows, 1)
	assert.Equal(t, 250.5, rows[0].(map[string]any)["amount"])
}

func TestReportGenerator_GenerateReport_WeekdayJSON(t *testing.T) {
	report := &WeekdayReport{Items: []WeekdayRow{
		{Weekday: "Monday", AverageAmount: decimal.RequireFromString("200.00"), Transactions: 2},
	}}
	data, err := NewReportGenerator(nil).GenerateReport(report, FormatJSON)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	row := decoded["rows"].([]any)[0].(map[string]any)
	assert.Equal(t, 200.0, row["average_amount"])
	assert.Equal(t, 2.0, row["transactions"])
}

func TestReportGenerator_GenerateReport_XML(t *testing.T) {
	data, err := NewReportGenerator(nil).GenerateReport(sampleCategoryReport(), FormatXML)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), xml.Header))

	var decoded struct {
		Category string `xml:"category,attr"`
		Rows     []struct {
			Amount string `xml:"amount"`
		} `xml:"row"`
	}
	require.NoError(t, xml.Unmarshal(data, &decoded))
	assert.Equal(t, "Кафе", decoded.Category)
	require.Len(t, decoded.Rows, 1)
	assert.Equal(t, "250.5", decoded.Rows[0].Amount)
}

func TestReportGenerator_UnsupportedFormat(t *testing.T) {
	_, err := NewReportGenerator(nil).GenerateReport(sampleCategoryReport(), "pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported report format")
}

func TestFileSink_Write(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	at := time.Date(2025, 5, 20, 14, 30, 5, 0, time.UTC)
	logger := logging.NewMockLogger()
	sink := NewFileSink(dir, FormatCSV, fixedClock(at), logger)

	path, err := sink.Write(sampleCategoryReport(), "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "report_spending_by_category_20250520_143005.csv"), path)
	assert.FileExists(t, path)
	assert.True(t, logger.HasEntry("INFO", "Report saved"))

	path, err = sink.Write(&WeekdayReport{Items: []WeekdayRow{}}, WeekdayFileName(FormatCSV))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "report_weekday.csv"), path)
}

func TestFileSink_WriteFailurePropagates(t *testing.T) {
	// a regular file where the directory should be
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	sink := NewFileSink(filepath.Join(blocker, "reports"), FormatJSON, nil, nil)
	_, err := sink.Write(sampleCategoryReport(), "")
	assert.Error(t, err)
}

type memorySink struct {
	names []string
	err   error
}

func (m *memorySink) Write(artifact Artifact, fileName string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.names = append(m.names, artifact.Name()+":"+fileName)
	return "memory://" + fileName, nil
}

func TestGenerate(t *testing.T) {
	sink := &memorySink{}
	report, location, err := Generate(sink, "custom.csv", func() (*CategoryReport, error) {
		return sampleCategoryReport(), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Кафе", report.Category)
	assert.Equal(t, "memory://custom.csv", location)
	assert.Equal(t, []string{"spending_by_category:custom.csv"}, sink.names)

	_, _, err = Generate(sink, "", func() (*CategoryReport, error) {
		return nil, errors.New("boom")
	})
	assert.EqualError(t, err, "boom")
	assert.Len(t, sink.names, 1)

	failing := &memorySink{err: errors.New("disk full")}
	report, _, err = Generate(failing, "", func() (*CategoryReport, error) {
		return sampleCategoryReport(), nil
	})
	assert.EqualError(t, err, "disk full")
	assert.NotNil(t, report)
}

func TestWeekdayFileName(t *testing.T) {
	assert.Equal(t, "report_weekday.csv", WeekdayFileName(""))
	assert.Equal(t, "report_weekday.json", WeekdayFileName(FormatJSON))
}
