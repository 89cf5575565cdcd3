package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"fjacquet/spend-insights/internal/dateutils"
	"fjacquet/spend-insights/internal/fileutils"
	"fjacquet/spend-insights/internal/ledger"
	"fjacquet/spend-insights/internal/logging"
	"fjacquet/spend-insights/internal/models"
	"fjacquet/spend-insights/internal/parsererror"
	"fjacquet/spend-insights/internal/reports"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

var ledgerExtensions = []string{".xlsx", ".xlsm", ".csv"}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleMainPage handles GET /api/main-page?date=YYYY-MM-DD HH:MM:SS&file=name
func (s *Server) handleMainPage(w http.ResponseWriter, r *http.Request) {
	reference := r.URL.Query().Get("date")
	if reference == "" {
		reference = s.c.GetClock()().Format(dateutils.DateLayoutFull)
	}

	source := s.c.LedgerSource(s.ledgerPath(r))
	s.writeMainPage(w, r, reference, source)
}

type mainPageRequest struct {
	Date         string          `json:"date"`
	Transactions []ledger.Record `json:"transactions"`
}

// handleMainPageRecords handles POST /api/main-page with inline row records.
func (s *Server) handleMainPageRecords(w http.ResponseWriter, r *http.Request) {
	var req mainPageRequest
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	if err := decoder.Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.writeMainPage(w, r, req.Date, ledger.FromRecords(req.Transactions))
}

func (s *Server) writeMainPage(w http.ResponseWriter, r *http.Request, reference string, source ledger.Source) {
	resp := s.c.GetHomepage().Build(r.Context(), reference, source)
	status := http.StatusOK
	if resp.Failed() {
		status = http.StatusUnprocessableEntity
	}
	WriteJSON(w, status, resp)
}

// handleCategoryReport handles GET /api/reports/category?category=X&date=...
func (s *Server) handleCategoryReport(w http.ResponseWriter, r *http.Request) {
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	if category == "" {
		WriteError(w, http.StatusBadRequest, "category is required")
		return
	}

	reference, err := reports.ParseReference(r.URL.Query().Get("date"))
	if err != nil {
		s.writeFailure(w, err)
		return
	}

	report, location, err := s.c.GetReportRunner().Category(s.c.LedgerSource(s.ledgerPath(r)), category, reference)
	if err != nil {
		s.writeFailure(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"report": report,
		"file":   filepath.Base(location),
	})
}

// handleWeekdayReport handles GET /api/reports/weekday?date=...
func (s *Server) handleWeekdayReport(w http.ResponseWriter, r *http.Request) {
	reference, err := reports.ParseReference(r.URL.Query().Get("date"))
	if err != nil {
		s.writeFailure(w, err)
		return
	}

	report, location, err := s.c.GetReportRunner().Weekday(s.c.LedgerSource(s.ledgerPath(r)), reference)
	if err != nil {
		s.writeFailure(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"report": report,
		"file":   filepath.Base(location),
	})
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	s.writeFileList(w, "reports", s.c.GetConfig().Data.ReportsDir)
}

func (s *Server) handleListLedgers(w http.ResponseWriter, r *http.Request) {
	s.writeFileList(w, "ledgers", s.c.GetConfig().Data.Directory, ledgerExtensions...)
}

func (s *Server) writeFileList(w http.ResponseWriter, key, dir string, extensions ...string) {
	names := []string{}
	if fileutils.DirectoryExists(dir) {
		found, err := fileutils.ListFiles(dir, extensions...)
		if err != nil {
			s.writeFailure(w, err)
			return
		}
		names = found
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		key:     names,
		"count": len(names),
	})
}

// handleDownloadReport handles GET /api/reports/{name}
func (s *Server) handleDownloadReport(w http.ResponseWriter, r *http.Request) {
	name := filepath.Base(mux.Vars(r)["name"])
	path := filepath.Join(s.c.GetConfig().Data.ReportsDir, name)
	if !fileutils.FileExists(path) {
		WriteError(w, http.StatusNotFound, "report not found: "+name)
		return
	}
	http.ServeFile(w, r, path)
}

// handleCashback handles GET /api/cashback?year=2024&month=6
func (s *Server) handleCashback(w http.ResponseWriter, r *http.Request) {
	year, errYear := strconv.Atoi(r.URL.Query().Get("year"))
	month, errMonth := strconv.Atoi(r.URL.Query().Get("month"))
	if errYear != nil || errMonth != nil {
		WriteError(w, http.StatusBadRequest, "year and month must be integers")
		return
	}

	table, err := s.c.GetLoader().Load(s.c.LedgerSource(s.ledgerPath(r)))
	if err != nil {
		s.writeFailure(w, err)
		return
	}

	result := s.c.GetCalculator().AnalyzeProfitableCategories(table, year, month)
	status := http.StatusOK
	if result.Failed() {
		status = http.StatusUnprocessableEntity
	}
	WriteJSON(w, status, result)
}

// handleInvest handles GET /api/invest?month=YYYY-MM&limit=50
func (s *Server) handleInvest(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	limit, err := decimal.NewFromString(r.URL.Query().Get("limit"))
	if err != nil || !limit.IsPositive() {
		WriteError(w, http.StatusBadRequest, "limit must be a positive number")
		return
	}

	table, err := s.c.GetLoader().Load(s.c.LedgerSource(s.ledgerPath(r)))
	if err != nil {
		s.writeFailure(w, err)
		return
	}

	savings := s.c.GetCalculator().InvestmentBank(month, table.Records, limit)
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"month":   month,
		"limit":   models.Number(limit),
		"savings": models.Number(savings),
	})
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, s.c.GetSettingsStore().Load())
}

func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var settings models.UserSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	settings = settings.Normalized()
	if err := s.c.GetSettingsStore().Save(settings); err != nil {
		s.writeFailure(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, settings)
}

// ledgerPath resolves the optional ?file= parameter inside the data directory.
func (s *Server) ledgerPath(r *http.Request) string {
	name := r.URL.Query().Get("file")
	if name == "" {
		return ""
	}
	return filepath.Join(s.c.GetConfig().Data.Directory, filepath.Base(name))
}

func (s *Server) writeFailure(w http.ResponseWriter, err error) {
	var (
		dateErr     *parsererror.DateFormatError
		columnsErr  *parsererror.MissingColumnsError
		notFoundErr *parsererror.FileNotFoundError
		formatErr   *parsererror.InvalidFormatError
	)

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &dateErr):
		status = http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		status = http.StatusNotFound
	case errors.As(err, &columnsErr), errors.As(err, &formatErr):
		status = http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		s.logger.WithError(err).Error("Request failed")
	} else {
		s.logger.WithError(err).Warn("Request rejected", logging.F(logging.FieldStatus, status))
	}
	WriteError(w, status, parsererror.Describe(err))
}
